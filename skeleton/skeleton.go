package skeleton

import (
	"io/ioutil"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"

	"github.com/mogaika/bindec_tools/capsule"
	"github.com/mogaika/bindec_tools/config"
	"github.com/mogaika/bindec_tools/scene"
	"github.com/mogaika/bindec_tools/utils"
)

const (
	SectionNodes = "Nodes"
	SectionEdges = "Edges"

	TypeNode = "Node"
	TypeEdge = "Edge"

	// edges of this kind are attachments, not body parts
	ReservedEdgeMarker = "Weapon"

	FallbackRadius = 0.1
)

type Options struct {
	ScaleFactor    float64
	RadiusScale    float64
	CollectionName string
}

func DefaultOptions() Options {
	return Options{
		ScaleFactor:    config.DefaultScaleFactor,
		RadiusScale:    config.DefaultRadiusScale,
		CollectionName: config.DefaultCollectionName,
	}
}

func OptionsFromSettings(s *config.Settings) Options {
	return Options{
		ScaleFactor:    s.ScaleFactor,
		RadiusScale:    s.RadiusScale,
		CollectionName: s.CollectionName,
	}
}

type Result struct {
	Nodes map[string]mgl32.Vec3
	// Collection is nil when Nodes section is missing
	Collection *scene.Collection
	Capsules   []*capsule.Capsule
	Skipped    int
}

func IsNode(e *Element) bool {
	return e.Get("Type", "") == TypeNode || strings.HasPrefix(e.Tag(), "N")
}

func IsEdge(e *Element) bool {
	return !strings.Contains(e.Tag(), ReservedEdgeMarker) && e.Get("Type", "") == TypeEdge
}

func parseCoord(e *Element, name string, scale float64) (float32, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(e.Get(name, "0")), 64)
	if err != nil {
		return 0, errors.Wrapf(err, "Invalid %s", name)
	}
	return float32(v * scale), nil
}

// ParseNodes builds node table of Nodes section, later duplicates win
func ParseNodes(section *Element, scale float64, l utils.Logger) map[string]mgl32.Vec3 {
	nodes := make(map[string]mgl32.Vec3)
	for _, elem := range section.Children {
		if !IsNode(elem) {
			continue
		}
		var pos mgl32.Vec3
		var err error
		for i, name := range []string{"X", "Y", "Z"} {
			if pos[i], err = parseCoord(elem, name, scale); err != nil {
				break
			}
		}
		if err != nil {
			l.Printf("Failed to parse node %s: %v", elem.Tag(), err)
			continue
		}
		nodes[elem.Tag()] = pos
	}
	return nodes
}

func edgeRadius(e *Element, scale float64) float32 {
	r, err := strconv.ParseFloat(strings.TrimSpace(e.Get("Radius", "1")), 64)
	if err != nil {
		return FallbackRadius
	}
	return float32(r * scale)
}

// Import creates capsule for every body edge of skeleton document and
// moves them into fresh collection of scene
func Import(s *scene.Scene, root *Element, opts Options, l utils.Logger) *Result {
	l = utils.OrDefault(l, "skeleton")
	result := &Result{Capsules: make([]*capsule.Capsule, 0)}

	nodesElem := root.Find(SectionNodes)
	if nodesElem == nil {
		l.Printf("There is no %s section in file", SectionNodes)
		return result
	}
	result.Nodes = ParseNodes(nodesElem, opts.ScaleFactor, l)

	result.Collection = s.NewCollection(opts.CollectionName)

	edgesElem := root.Find(SectionEdges)
	if edgesElem == nil {
		l.Printf("There is no %s section in file", SectionEdges)
		return result
	}

	for _, edge := range edgesElem.Children {
		if !IsEdge(edge) {
			continue
		}

		end1, _ := edge.Lookup("End1")
		end2, _ := edge.Lookup("End2")
		if end1 == "" || end2 == "" {
			l.Printf("Edge %s has no End1/End2", edge.Tag())
			result.Skipped++
			continue
		}
		a, okA := result.Nodes[end1]
		b, okB := result.Nodes[end2]
		if !okA || !okB {
			l.Printf("Nodes not found for edge %s: %s %s", edge.Tag(), end1, end2)
			result.Skipped++
			continue
		}

		c := capsule.Build(edge.Tag(), a, b, edgeRadius(edge, opts.RadiusScale))
		o := s.AddObject(c.Name, c.Mesh)
		s.Move(o, s.Root, result.Collection)
		result.Capsules = append(result.Capsules, c)
	}

	log.Printf("[skeleton] Created %d capsule segments from %d nodes", len(result.Capsules), len(result.Nodes))
	return result
}

func ImportData(s *scene.Scene, data []byte, cm *charmap.Charmap, opts Options, l utils.Logger) (*Result, error) {
	root, err := Decode(data, cm)
	if err != nil {
		return nil, err
	}
	return Import(s, root, opts, l), nil
}

func ImportFile(s *scene.Scene, path string, cm *charmap.Charmap, opts Options, l utils.Logger) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to open %q", path)
	}
	defer f.Close()

	data, err := ioutil.ReadAll(f)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to read %q", path)
	}
	return ImportData(s, data, cm, opts, l)
}
