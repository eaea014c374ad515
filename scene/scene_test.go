package scene

import (
	"bytes"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/mogaika/bindec_tools/bindec"
	"github.com/mogaika/bindec_tools/utils"
)

func TestEvaluate(t *testing.T) {
	s := New()
	e := s.AddEmpty("e", 0, mgl64.Vec3{})
	e.Location = mgl64.Vec3{10, 0, 0}
	s.InsertKeyframe(e, 10)
	e.Location = mgl64.Vec3{0, 0, 0}
	s.InsertKeyframe(e, 0)
	e.Location = mgl64.Vec3{0, 4, 0}
	s.InsertKeyframe(e, 4)

	tests := []struct {
		frame int
		out   mgl64.Vec3
	}{
		{-5, mgl64.Vec3{0, 0, 0}},
		{0, mgl64.Vec3{0, 0, 0}},
		{2, mgl64.Vec3{0, 2, 0}},
		{4, mgl64.Vec3{0, 4, 0}},
		{7, mgl64.Vec3{5, 2, 0}},
		{10, mgl64.Vec3{10, 0, 0}},
		{99, mgl64.Vec3{10, 0, 0}},
	}
	for _, test := range tests {
		if result := e.Evaluate(test.frame); !result.ApproxEqual(test.out) {
			t.Errorf("Evaluate(%d)=%v; expected %v", test.frame, result, test.out)
		}
	}

	e.Location = mgl64.Vec3{1, 1, 1}
	s.InsertKeyframe(e, 4)
	if len(e.Keyframes) != 3 || e.Evaluate(4) != (mgl64.Vec3{1, 1, 1}) {
		t.Errorf("key at same frame not replaced: %v", e.Keyframes)
	}
}

func TestAddEmptyReplacesIndex(t *testing.T) {
	s := New()
	s.AddEmpty("a", 3, mgl64.Vec3{1, 0, 0})
	s.AddEmpty("b", 1, mgl64.Vec3{2, 0, 0})
	s.AddEmpty("c", 3, mgl64.Vec3{3, 0, 0})

	if len(s.Empties) != 2 {
		t.Fatalf("empties %d", len(s.Empties))
	}
	if s.EmptyByIndex(3).Name != "c" {
		t.Errorf("index 3 is %q", s.EmptyByIndex(3).Name)
	}
	indices := s.PointIndices()
	if len(indices) != 2 || indices[0] != 1 || indices[1] != 3 {
		t.Errorf("indices %v", indices)
	}
}

func TestCollections(t *testing.T) {
	s := New()
	a := s.NewCollection("Caps")
	b := s.NewCollection("Caps")
	if a.Name != "Caps" || b.Name != "Caps.001" {
		t.Errorf("names %q %q", a.Name, b.Name)
	}

	a.Link(&MeshObject{Name: "x"})
	a.Link(&MeshObject{Name: "y"})
	if o := a.Unlink("x"); o == nil || o.Name != "x" {
		t.Errorf("unlink returned %v", o)
	}
	b.Link(&MeshObject{Name: "x"})
	if a.Object("x") != nil || b.Object("x") == nil || len(a.Objects) != 1 {
		t.Errorf("objects %v %v", a.Objects, b.Objects)
	}
}

func TestImportAnimation(t *testing.T) {
	a := bindec.Parse("[2]{1,0,0}{2,0,0}END[2]{1,1,0}{2,0,0}END[1]{1,2,0}END", &utils.Collector{})

	s := New()
	empties := s.ImportAnimation(a, ImportOptions{})
	if len(empties) != 2 || empties[0].Name != "Empty_0" || empties[1].Index != 1 {
		t.Fatalf("empties %v", empties)
	}
	if s.FrameStart != 1 || s.FrameEnd != 3 {
		t.Errorf("frame range [%d, %d]", s.FrameStart, s.FrameEnd)
	}
	e0 := s.EmptyByIndex(0)
	if len(e0.Keyframes) != 2 || e0.Keyframes[0].Frame != 2 || e0.Keyframes[1].Frame != 3 {
		t.Errorf("keyframes %v", e0.Keyframes)
	}
	// without baseline key frame 1 holds first key
	if e0.Evaluate(1) != (mgl64.Vec3{1, 1, 0}) {
		t.Errorf("frame 1 %v", e0.Evaluate(1))
	}

	s = New()
	s.ImportAnimation(a, ImportOptions{KeyBaseline: true})
	e0 = s.EmptyByIndex(0)
	if len(e0.Keyframes) != 3 || e0.Evaluate(1) != (mgl64.Vec3{1, 0, 0}) {
		t.Errorf("baseline keyframes %v", e0.Keyframes)
	}
	if e0.Location != (mgl64.Vec3{1, 0, 0}) {
		t.Errorf("scene not evaluated at start frame: %v", e0.Location)
	}
}

func TestSceneRoundTrip(t *testing.T) {
	text := "[3]{1.000000,2.00000,3.000000}{0.000000,0.00000,0.000000}{-1.000000,-1.00000,-1.000000}END\n" +
		"[3]{1.500000,2.00000,3.000000}{0.000000,0.50000,0.000000}{-1.000000,-1.00000,-1.000000}END\n" +
		"[3]{2.000000,2.00000,3.000000}{0.000000,1.00000,0.000000}{-1.000000,-1.00000,-2.000000}END\n"
	a := bindec.Parse(text, &utils.Collector{})

	s := New()
	s.ImportAnimation(a, ImportOptions{KeyBaseline: true})

	var buf bytes.Buffer
	if err := bindec.Encode(&buf, s, nil, s.FrameStart, s.FrameEnd); err != nil {
		t.Fatal(err)
	}
	if buf.String() != text {
		t.Errorf("exported\n%s\nexpected\n%s", buf.String(), text)
	}
	if s.Frame != s.FrameEnd {
		t.Errorf("current frame %d", s.Frame)
	}
}

func TestArmatureLookup(t *testing.T) {
	s := New()
	a := s.AddArmature(&Armature{
		Name:  "Rig",
		Bones: []*Bone{{Name: "Head"}, {Name: "Body"}},
		Bindings: []Binding{
			{Index: 0, Bone: "Head", Weight: 1},
			{Index: 3, Bone: "Body", Weight: 1},
			{Index: 1, Bone: "Head", Weight: 1},
		},
	})
	again := s.AddArmature(&Armature{Name: "Rig"})
	if again.Name != "Rig.001" {
		t.Errorf("second armature %q", again.Name)
	}
	if a.Bone("Body") == nil || a.Bone("Leg") != nil {
		t.Error("bone lookup")
	}
	if bound := a.BoundTo("Head"); len(bound) != 2 || bound[0] != 0 || bound[1] != 1 {
		t.Errorf("bound %v", bound)
	}
}

func TestMoveObject(t *testing.T) {
	s := New()
	o := s.AddObject("cap", nil)
	c := s.NewCollection("Caps")
	s.Move(o, s.Root, c)

	if len(s.Root.Objects) != 0 || c.Object("cap") != o {
		t.Errorf("root %v collection %v", s.Root.Objects, c.Objects)
	}
	s.AddObject("other", nil)
	if n := len(s.Objects()); n != 2 {
		t.Errorf("objects %d", n)
	}
}
