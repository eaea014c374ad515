package scene

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/mogaika/fbx"
	"github.com/mogaika/fbx/builders/bfbx73"

	"github.com/mogaika/bindec_tools/utils/fbxbuilder"
)

func fbxModel(f *fbxbuilder.FBXBuilder, name, kind string, pos mgl64.Vec3) *fbx.Node {
	id := f.GenerateId()
	model := bfbx73.Model(id, name+"\x00\x01Model", kind).AddNodes(
		bfbx73.Version(232),
		bfbx73.Properties70().AddNodes(
			bfbx73.P("InheritType", "enum", "", "", int32(1)),
			bfbx73.P("Lcl Translation", "Lcl Translation", "", "A+", pos[0], pos[1], pos[2]),
		),
		bfbx73.Shading(true),
		bfbx73.Culling("CullingOff"),
	)

	typeFlags := "Null"
	if kind == "LimbNode" {
		typeFlags = "Skeleton"
	}
	nodeAttribute := bfbx73.NodeAttribute(f.GenerateId(), name+"\x00\x01NodeAttribute", kind).AddNodes(
		bfbx73.TypeFlags(typeFlags),
	)

	f.AddObjects(model, nodeAttribute)
	f.AddConnections(bfbx73.C("OO", nodeAttribute.Properties[0].(int64), id))
	return model
}

func fbxId(n *fbx.Node) int64 {
	return n.Properties[0].(int64)
}

// ExportFbx writes scene as it is at current frame. Empties are null
// models, collections are null parents of capsule meshes.
func (s *Scene) ExportFbx(f *fbxbuilder.FBXBuilder) {
	for _, e := range s.Empties {
		model := fbxModel(f, e.Name, "Null", e.Location)
		f.AddConnections(bfbx73.C("OO", fbxId(model), int64(0)))
	}

	for _, o := range s.Root.Objects {
		feo := o.Mesh.ExportFbx(f)
		f.AddConnections(bfbx73.C("OO", feo.FbxModelId, int64(0)))
	}

	for _, c := range s.Collections {
		parent := fbxModel(f, c.Name, "Null", mgl64.Vec3{})
		f.AddConnections(bfbx73.C("OO", fbxId(parent), int64(0)))
		for _, o := range c.Objects {
			feo := o.Mesh.ExportFbx(f)
			f.AddConnections(bfbx73.C("OO", feo.FbxModelId, fbxId(parent)))
		}
	}

	for _, a := range s.Armatures {
		parent := fbxModel(f, a.Name, "Null", mgl64.Vec3{})
		f.AddConnections(bfbx73.C("OO", fbxId(parent), int64(0)))
		for _, b := range a.Bones {
			bone := fbxModel(f, b.Name, "LimbNode", b.Head)
			f.AddConnections(bfbx73.C("OO", fbxId(bone), fbxId(parent)))
		}
	}
}

func (s *Scene) ExportFbxDefault(filename string) *fbxbuilder.FBXBuilder {
	f := fbxbuilder.NewFBXBuilder(filename)
	s.ExportFbx(f)
	return f
}
