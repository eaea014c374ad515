package skeleton

import (
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/text/encoding/charmap"

	"github.com/mogaika/bindec_tools/scene"
	"github.com/mogaika/bindec_tools/utils"
)

const testDocument = `<?xml version="1.0"?>
<Skeleton>
	<Nodes>
		<N1 X="0" Y="0" Z="0"/>
		<N2 X="0" Y="0" Z="50"/>
		<N12/>
		<Hip Type="Node" X="10" Y="20" Z="30"/>
		<Junk X="1"/>
		<N7 X="abc"/>
	</Nodes>
	<Edges>
		<Spine Type="Edge" End1="N1" End2="N2" Radius="5"/>
		<RightWeapon Type="Edge" End1="N1" End2="N2"/>
		<Lost Type="Edge" End1="N1" End2="Missing"/>
		<Untyped End1="N1" End2="N2"/>
		<Half Type="Edge" End1="N1"/>
		<Neck Type="Edge" End1="N2" End2="Hip" Radius="bad"/>
	</Edges>
</Skeleton>`

func closeTo(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestNodes(t *testing.T) {
	root, err := Decode([]byte(testDocument), charmap.Windows1251)
	if err != nil {
		t.Fatal(err)
	}
	var log utils.Collector
	nodes := ParseNodes(root.Find(SectionNodes), 0.1, &log)

	for _, tc := range []struct {
		name string
		pos  mgl32.Vec3
	}{
		{"N1", mgl32.Vec3{0, 0, 0}},
		{"N2", mgl32.Vec3{0, 0, 5}},
		{"N12", mgl32.Vec3{0, 0, 0}},
		{"Hip", mgl32.Vec3{1, 2, 3}},
	} {
		pos, ok := nodes[tc.name]
		if !ok {
			t.Errorf("node %s not found", tc.name)
			continue
		}
		if !pos.ApproxEqualThreshold(tc.pos, 1e-5) {
			t.Errorf("node %s at %v, want %v", tc.name, pos, tc.pos)
		}
	}
	if _, ok := nodes["Junk"]; ok {
		t.Error("Junk must not be a node")
	}
	if _, ok := nodes["N7"]; ok {
		t.Error("N7 with broken coordinate must be skipped")
	}
	if len(log.Messages) != 1 {
		t.Errorf("expected one diagnostic, got %v", log.Messages)
	}
}

func TestImport(t *testing.T) {
	root, err := Decode([]byte(testDocument), nil)
	if err != nil {
		t.Fatal(err)
	}
	s := scene.New()
	var log utils.Collector
	r := Import(s, root, DefaultOptions(), &log)

	if r.Collection == nil || r.Collection.Name != DefaultOptions().CollectionName {
		t.Fatalf("collection %+v", r.Collection)
	}
	if len(r.Capsules) != 2 {
		t.Fatalf("created %d capsules", len(r.Capsules))
	}
	if r.Skipped != 2 {
		t.Errorf("skipped %d edges, want 2", r.Skipped)
	}
	// N7 coordinates, Lost and Half edges; summary is not a diagnostic
	if len(log.Messages) != 3 {
		t.Errorf("diagnostics %q", log.Messages)
	}
	if len(s.Root.Objects) != 0 {
		t.Errorf("root still holds %d objects", len(s.Root.Objects))
	}

	spine := r.Capsules[0]
	if spine.Name != "Spine" || r.Collection.Object("Spine") == nil {
		t.Errorf("spine not linked: %v", spine.Name)
	}
	if !closeTo(spine.Radius, 0.5) || !closeTo(spine.Depth, 4) {
		t.Errorf("spine radius %v depth %v", spine.Radius, spine.Depth)
	}

	neck := r.Capsules[1]
	if neck.Name != "Neck" || !closeTo(neck.Radius, FallbackRadius) {
		t.Errorf("neck %v radius %v", neck.Name, neck.Radius)
	}

	for _, o := range r.Collection.Objects {
		if strings.Contains(o.Name, ReservedEdgeMarker) {
			t.Errorf("weapon edge %s imported", o.Name)
		}
	}
}

func TestImportMissingSections(t *testing.T) {
	root, err := Decode([]byte(`<Skeleton><Edges/></Skeleton>`), nil)
	if err != nil {
		t.Fatal(err)
	}
	s := scene.New()
	var log utils.Collector
	r := Import(s, root, DefaultOptions(), &log)
	if r.Collection != nil || len(s.Collections) != 0 {
		t.Error("collection created without nodes")
	}
	if len(log.Messages) != 1 {
		t.Errorf("diagnostics %v", log.Messages)
	}

	root, err = Decode([]byte(`<Skeleton><Nodes><N1/></Nodes></Skeleton>`), nil)
	if err != nil {
		t.Fatal(err)
	}
	log.Messages = nil
	r = Import(s, root, DefaultOptions(), &log)
	if r.Collection == nil || len(r.Nodes) != 1 || len(r.Capsules) != 0 {
		t.Errorf("unexpected result %+v", r)
	}
	if len(log.Messages) != 1 {
		t.Errorf("diagnostics %v", log.Messages)
	}
}

func TestImportCodePage(t *testing.T) {
	doc := `<?xml version="1.0" encoding="windows-1251"?>
<Скелет>
	<Nodes>
		<NУзел X="10"/>
		<N2 X="10" Z="40"/>
	</Nodes>
	<Edges>
		<Рука Type="Edge" End1="NУзел" End2="N2"/>
	</Edges>
</Скелет>`
	data, err := charmap.Windows1251.NewEncoder().String(doc)
	if err != nil {
		t.Fatal(err)
	}

	s := scene.New()
	r, err := ImportData(s, []byte(data), charmap.Windows1251, DefaultOptions(), &utils.Collector{})
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Capsules) != 1 || r.Capsules[0].Name != "Рука" {
		t.Fatalf("capsules %v", r.Capsules)
	}
	if pos := r.Nodes["NУзел"]; !closeTo(pos.X(), 1) {
		t.Errorf("node position %v", pos)
	}
}

func TestCollectionNameTaken(t *testing.T) {
	s := scene.New()
	opts := DefaultOptions()
	for i := 0; i < 2; i++ {
		if _, err := ImportData(s, []byte(testDocument), nil, opts, &utils.Collector{}); err != nil {
			t.Fatal(err)
		}
	}
	if len(s.Collections) != 2 || s.Collections[1].Name != opts.CollectionName+".001" {
		t.Errorf("collections %v", s.Collections)
	}
}
