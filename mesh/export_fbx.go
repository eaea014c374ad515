package mesh

import (
	"github.com/mogaika/fbx"
	"github.com/mogaika/fbx/builders/bfbx73"

	"github.com/mogaika/bindec_tools/utils/fbxbuilder"
)

type FbxExportObject struct {
	FbxGeometryId int64
	FbxGeometry   *fbx.Node
	FbxModelId    int64
	FbxModel      *fbx.Node
}

// PolygonVertexIndex returns fbx polygon list, last index of every
// triangle is stored as -(index)-1
func (m *Mesh) PolygonVertexIndex() []int32 {
	indexes := make([]int32, len(m.Indexes))
	for i, index := range m.Indexes {
		if i%3 == 2 {
			indexes[i] = -int32(index) - 1
		} else {
			indexes[i] = int32(index)
		}
	}
	return indexes
}

// ExportFbx adds mesh model and geometry objects, model is not connected
// to any parent
func (m *Mesh) ExportFbx(f *fbxbuilder.FBXBuilder) *FbxExportObject {
	vertices := make([]float64, 0, len(m.Vertices)*3)
	for _, v := range m.Vertices {
		vertices = append(vertices, float64(v[0]), float64(v[1]), float64(v[2]))
	}

	feo := &FbxExportObject{FbxGeometryId: f.GenerateId()}

	geometryLayer := bfbx73.Layer(0).AddNodes(
		bfbx73.Version(100),
	)

	geometry := bfbx73.Geometry(feo.FbxGeometryId, m.Name+"\x00\x01Geometry", "Mesh").AddNodes(
		bfbx73.Properties70().AddNodes(
			bfbx73.P("Color", "ColorRGB", "Color", "", float64(1), float64(1), float64(1)),
		),
		bfbx73.GeometryVersion(124),
		bfbx73.Vertices(vertices),
		bfbx73.PolygonVertexIndex(m.PolygonVertexIndex()),
		geometryLayer,
	)

	if m.HaveNormals() {
		normals := make([]float64, 0, len(m.Normals)*3)
		for _, n := range m.Normals {
			normals = append(normals, float64(n[0]), float64(n[1]), float64(n[2]))
		}

		geometry.AddNode(
			bfbx73.LayerElementNormal(0).AddNodes(
				bfbx73.Version(101),
				bfbx73.Name(""),
				bfbx73.MappingInformationType("ByVertice"),
				bfbx73.ReferenceInformationType("Direct"),
				bfbx73.Normals(normals),
			),
		)
		geometryLayer.AddNode(
			bfbx73.LayerElement().AddNodes(
				bfbx73.Type("LayerElementNormal"),
				bfbx73.TypedIndex(0),
			),
		)
	}

	feo.FbxGeometry = geometry
	feo.FbxModelId = f.GenerateId()
	feo.FbxModel = bfbx73.Model(feo.FbxModelId, m.Name+"\x00\x01Model", "Mesh").AddNodes(
		bfbx73.Version(232),
		bfbx73.Properties70().AddNodes(
			bfbx73.P("InheritType", "enum", "", "", int32(1)),
			bfbx73.P("DefaultAttributeIndex", "int", "Integer", "", int32(0)),
			bfbx73.P("Lcl Translation", "Lcl Translation", "", "A", float64(0), float64(0), float64(0)),
			bfbx73.P("Lcl Rotation", "Lcl Rotation", "", "A", float64(0), float64(0), float64(0)),
			bfbx73.P("Lcl Scaling", "Lcl Scaling", "", "A", float64(1), float64(1), float64(1)),
		),
		bfbx73.Shading(true),
		bfbx73.Culling("CullingOff"),
	)

	f.AddObjects(feo.FbxModel, geometry)
	f.AddConnections(bfbx73.C("OO", feo.FbxGeometryId, feo.FbxModelId))
	return feo
}
