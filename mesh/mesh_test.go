package mesh

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
)

func triangle(name string, z float32) *Mesh {
	m := New(name)
	n := mgl32.Vec3{0, 0, 1}
	a := m.AddVertex(mgl32.Vec3{0, 0, z}, n)
	b := m.AddVertex(mgl32.Vec3{1, 0, z}, n)
	c := m.AddVertex(mgl32.Vec3{0, 1, z}, n)
	m.AddTriangle(a, b, c)
	return m
}

func TestJoin(t *testing.T) {
	a := triangle("a", 0)
	b := triangle("b", 1)
	j := Join("ab", a, b)

	if len(j.Vertices) != 6 || j.TrianglesCount() != 2 {
		t.Fatalf("joined %d vertices %d triangles", len(j.Vertices), j.TrianglesCount())
	}
	if j.Indexes[3] != 3 || j.Indexes[5] != 5 {
		t.Errorf("indexes not offset: %v", j.Indexes)
	}
	if len(a.Indexes) != 3 || a.Indexes[0] != 0 {
		t.Errorf("source modified: %v", a.Indexes)
	}
}

func TestTransformAndBounds(t *testing.T) {
	m := triangle("t", 0)
	q := mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 0, 1})
	m.Transform(q, mgl32.Vec3{10, 0, 0})

	min, max := m.Bounds()
	if !min.ApproxEqualThreshold(mgl32.Vec3{9, 0, 0}, 1e-5) || !max.ApproxEqualThreshold(mgl32.Vec3{10, 1, 0}, 1e-5) {
		t.Errorf("bounds %v %v", min, max)
	}
	if !m.Normals[0].ApproxEqualThreshold(mgl32.Vec3{0, 0, 1}, 1e-5) {
		t.Errorf("normal %v", m.Normals[0])
	}
}

func TestExportObj(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportObj(&buf, []*Mesh{triangle("first part", 0), triangle("", 1)}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, line := range []string{
		"o first_part",
		"o mesh01",
		"f 1//1 2//2 3//3",
		"f 4//4 5//5 6//6",
		"vn 0.000000 0.000000 1.000000",
	} {
		if !strings.Contains(out, line+"\n") {
			t.Errorf("missing line %q in\n%s", line, out)
		}
	}
	if n := strings.Count(out, "\nv "); n != 6 {
		t.Errorf("vertex lines %d", n)
	}
}

func TestPolygonVertexIndex(t *testing.T) {
	m := Join("ab", triangle("a", 0), triangle("b", 1))
	want := []int32{0, 1, -3, 3, 4, -6}
	got := m.PolygonVertexIndex()
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("PolygonVertexIndex()=%v; expected %v", got, want)
			break
		}
	}
}

func TestExportGLTF(t *testing.T) {
	doc := gltf.NewDocument()
	index := triangle("t", 0).ExportGLTF(doc)
	if index != 0 || len(doc.Meshes) != 1 {
		t.Fatalf("mesh index %d, meshes %d", index, len(doc.Meshes))
	}
	primitive := doc.Meshes[0].Primitives[0]
	if _, ok := primitive.Attributes["NORMAL"]; !ok {
		t.Error("normals not exported")
	}
	if primitive.Indices == nil || doc.Accessors[*primitive.Indices].Count != 3 {
		t.Error("indices accessor invalid")
	}
	if doc.Accessors[primitive.Attributes["POSITION"]].Count != 3 {
		t.Error("position accessor invalid")
	}
}
