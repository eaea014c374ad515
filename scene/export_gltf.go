package scene

import (
	"fmt"

	"github.com/qmuntal/gltf"

	"github.com/mogaika/bindec_tools/utils"
	"github.com/mogaika/bindec_tools/utils/gltfutils"
)

const AnimationName = "bindec"

type GLTFSceneExported struct {
	EmptyNodes      map[int]uint32
	CollectionNodes map[string]uint32
	ObjectNodes     map[string]uint32
	ArmatureNodes   map[string]uint32
}

func (s *Scene) exportGLTFObjects(doc *gltf.Document, parent *uint32, objects []*MeshObject, tfse *GLTFSceneExported) {
	for _, o := range objects {
		node := gltfutils.NewNode(o.Name)
		node.Mesh = gltf.Index(o.Mesh.ExportGLTF(doc))
		tfse.ObjectNodes[o.Name] = gltfutils.AddNode(doc, parent, node)
	}
}

// ExportGLTF writes empties with their location animation, collections
// with capsule meshes and armatures as node hierarchy
func (s *Scene) ExportGLTF(doc *gltf.Document) *GLTFSceneExported {
	tfse := &GLTFSceneExported{
		EmptyNodes:      make(map[int]uint32),
		CollectionNodes: make(map[string]uint32),
		ObjectNodes:     make(map[string]uint32),
		ArmatureNodes:   make(map[string]uint32),
	}

	tracks := make([]gltfutils.TranslationTrack, 0, len(s.Empties))
	for _, e := range s.Empties {
		node := gltfutils.NewNode(e.Name)
		node.Translation = utils.Vec3To32(e.Evaluate(s.FrameStart))
		node.Extras = map[string]interface{}{"index": e.Index}
		nodeIndex := gltfutils.AddNode(doc, nil, node)
		tfse.EmptyNodes[e.Index] = nodeIndex

		track := gltfutils.TranslationTrack{
			Node:   nodeIndex,
			Times:  make([]float32, len(e.Keyframes)),
			Values: make([][3]float32, len(e.Keyframes)),
		}
		for i, key := range e.Keyframes {
			track.Times[i] = gltfutils.FrameTime(key.Frame)
			track.Values[i] = utils.Vec3To32(key.Location)
		}
		tracks = append(tracks, track)
	}
	gltfutils.AddTranslationAnimation(doc, AnimationName, tracks)

	s.exportGLTFObjects(doc, nil, s.Root.Objects, tfse)
	for _, c := range s.Collections {
		collectionNode := gltfutils.AddNode(doc, nil, gltfutils.NewNode(c.Name))
		tfse.CollectionNodes[c.Name] = collectionNode
		s.exportGLTFObjects(doc, &collectionNode, c.Objects, tfse)
	}

	for _, a := range s.Armatures {
		armatureNode := gltfutils.AddNode(doc, nil, gltfutils.NewNode(a.Name))
		tfse.ArmatureNodes[a.Name] = armatureNode
		for _, b := range a.Bones {
			node := gltfutils.NewNode(b.Name)
			node.Translation = utils.Vec3To32(b.Head)
			tail := utils.Vec3To32(b.Tail)
			node.Extras = map[string]interface{}{
				"tail":   []float32{tail[0], tail[1], tail[2]},
				"points": a.BoundTo(b.Name),
			}
			gltfutils.AddNode(doc, &armatureNode, node)
		}
	}

	return tfse
}

func (s *Scene) ExportGLTFDefault() *gltf.Document {
	doc := gltfutils.NewDocument()
	s.ExportGLTF(doc)
	doc.Asset.Generator = fmt.Sprintf("bindec_tools (frames %d-%d)", s.FrameStart, s.FrameEnd)
	return doc
}
