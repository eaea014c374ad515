package gltfutils

import (
	"io"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

const FramesPerSecond = 24

func NewDocument() *gltf.Document {
	return gltf.NewDocument()
}

// NewNode returns node with explicit identity transform
func NewNode(name string) *gltf.Node {
	return &gltf.Node{
		Name:     name,
		Rotation: [4]float32{0, 0, 0, 1},
		Scale:    [3]float32{1, 1, 1},
	}
}

// AddNode appends node to doc, parent nil places node into default scene
func AddNode(doc *gltf.Document, parent *uint32, node *gltf.Node) uint32 {
	index := uint32(len(doc.Nodes))
	doc.Nodes = append(doc.Nodes, node)
	if parent == nil {
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, index)
	} else {
		p := doc.Nodes[*parent]
		p.Children = append(p.Children, index)
	}
	return index
}

// FrameTime converts 1-based frame number to seconds
func FrameTime(frame int) float32 {
	return float32(frame-1) / FramesPerSecond
}

// TranslationTrack is linear translation channel of one node
type TranslationTrack struct {
	Node   uint32
	Times  []float32
	Values [][3]float32
}

// AddTranslationAnimation writes tracks as single animation, tracks
// without keys are ignored
func AddTranslationAnimation(doc *gltf.Document, name string, tracks []TranslationTrack) *gltf.Animation {
	anim := &gltf.Animation{
		Name:     name,
		Channels: make([]*gltf.Channel, 0),
		Samplers: make([]*gltf.AnimationSampler, 0),
	}

	for _, track := range tracks {
		if len(track.Times) == 0 {
			continue
		}

		input := modeler.WriteAccessor(doc, gltf.TargetNone, track.Times)
		minTime, maxTime := track.Times[0], track.Times[0]
		for _, t := range track.Times {
			if t < minTime {
				minTime = t
			}
			if t > maxTime {
				maxTime = t
			}
		}
		doc.Accessors[input].Min = []float32{minTime}
		doc.Accessors[input].Max = []float32{maxTime}

		output := modeler.WriteAccessor(doc, gltf.TargetNone, track.Values)

		sampler := uint32(len(anim.Samplers))
		anim.Samplers = append(anim.Samplers, &gltf.AnimationSampler{
			Input:         gltf.Index(input),
			Output:        gltf.Index(output),
			Interpolation: gltf.InterpolationLinear,
		})
		anim.Channels = append(anim.Channels, &gltf.Channel{
			Sampler: gltf.Index(sampler),
			Target: gltf.ChannelTarget{
				Node: gltf.Index(track.Node),
				Path: gltf.TRSTranslation,
			},
		})
	}

	if len(anim.Channels) != 0 {
		doc.Animations = append(doc.Animations, anim)
	}
	return anim
}

func ExportBinary(w io.Writer, doc *gltf.Document) error {
	encoder := gltf.NewEncoder(w)
	encoder.AsBinary = true
	if err := encoder.Encode(doc); err != nil {
		return errors.Wrapf(err, "Failed to encode glb")
	}
	return nil
}

func ImportBinary(r io.Reader) (*gltf.Document, error) {
	doc := &gltf.Document{}
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return nil, errors.Wrapf(err, "Failed to decode gltf")
	}
	return doc, nil
}
