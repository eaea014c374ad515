package scene

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/mogaika/bindec_tools/mesh"
	"github.com/mogaika/bindec_tools/utils/gltfutils"
)

func testScene() *Scene {
	s := New()
	for i := 0; i < 2; i++ {
		e := s.AddEmpty("e", i, mgl64.Vec3{0, 0, float64(i)})
		s.InsertKeyframe(e, 1)
		e.Location = mgl64.Vec3{1, 0, float64(i)}
		s.InsertKeyframe(e, 3)
	}
	s.AddEmpty("static", 5, mgl64.Vec3{})

	m := mesh.New("tri")
	n := mgl32.Vec3{0, 0, 1}
	m.AddTriangle(m.AddVertex(mgl32.Vec3{}, n), m.AddVertex(mgl32.Vec3{1, 0, 0}, n), m.AddVertex(mgl32.Vec3{0, 1, 0}, n))
	c := s.NewCollection("caps")
	s.Move(s.AddObject("tri", m), s.Root, c)

	s.AddArmature(&Armature{
		Name:     "arm",
		Bones:    []*Bone{{Name: "Head", Head: mgl64.Vec3{0, 0, 1}, Tail: mgl64.Vec3{0, 0, 2}}},
		Bindings: []Binding{{Index: 0, Bone: "Head", Weight: 1}},
	})
	return s
}

func TestExportGLTF(t *testing.T) {
	s := testScene()
	doc := gltfutils.NewDocument()
	tfse := s.ExportGLTF(doc)

	// 3 empties, collection + mesh, armature + bone
	if len(doc.Nodes) != 7 {
		t.Fatalf("nodes %d", len(doc.Nodes))
	}
	if len(doc.Scenes[0].Nodes) != 5 {
		t.Errorf("root nodes %v", doc.Scenes[0].Nodes)
	}
	if len(doc.Meshes) != 1 || doc.Meshes[0].Name != "tri" {
		t.Errorf("meshes %v", doc.Meshes)
	}
	if len(doc.Animations) != 1 || len(doc.Animations[0].Channels) != 2 {
		t.Fatalf("animations %v", doc.Animations)
	}

	collection := doc.Nodes[tfse.CollectionNodes["caps"]]
	if len(collection.Children) != 1 || collection.Children[0] != tfse.ObjectNodes["tri"] {
		t.Errorf("collection children %v", collection.Children)
	}
	if e := doc.Nodes[tfse.EmptyNodes[1]]; e.Translation != [3]float32{0, 0, 1} {
		t.Errorf("empty translation %v", e.Translation)
	}

	var buf bytes.Buffer
	if err := gltfutils.ExportBinary(&buf, doc); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("glTF")) {
		t.Errorf("not a glb container")
	}
	loaded, err := gltfutils.ImportBinary(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Nodes) != len(doc.Nodes) || len(loaded.Animations) != 1 {
		t.Errorf("loaded %d nodes %d animations", len(loaded.Nodes), len(loaded.Animations))
	}
}

func TestExportFbx(t *testing.T) {
	s := testScene()
	f := s.ExportFbxDefault("test.fbx")

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("Kaydara FBX Binary")) {
		t.Errorf("not a binary fbx")
	}
}

func TestExportFormats(t *testing.T) {
	s := testScene()
	s.FrameEnd = 3
	s.FrameSet(2)

	for _, format := range ExportFormats {
		var buf bytes.Buffer
		if err := s.Export(&buf, format, nil); err != nil {
			t.Errorf("Export(%s): %v", format, err)
			continue
		}
		if buf.Len() == 0 {
			t.Errorf("Export(%s) is empty", format)
		}
	}
	if s.Frame != 2 {
		t.Errorf("current frame changed to %d", s.Frame)
	}

	var buf bytes.Buffer
	if err := s.Export(&buf, "bindec", nil); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 || lines[1] != "[3]{0.500000,0.00000,0.000000}{0.500000,0.00000,1.000000}{0.000000,0.00000,0.000000}END" {
		t.Errorf("bindec export %q", lines)
	}

	if err := s.Export(&buf, "blend", nil); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestFormatFromPath(t *testing.T) {
	for path, format := range map[string]string{
		"out/scene.GLB": "glb",
		"caps.obj":      "obj",
		"anim.bindec":   "bindec",
		"no_extension":  "",
	} {
		if got := FormatFromPath(path); got != format {
			t.Errorf("FormatFromPath(%q)=%q; expected %q", path, got, format)
		}
	}
}
