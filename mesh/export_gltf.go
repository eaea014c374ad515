package mesh

import (
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

func (m *Mesh) HaveNormals() bool {
	return len(m.Normals) != 0 && len(m.Normals) == len(m.Vertices)
}

// ExportGLTF writes mesh buffers into doc and returns mesh index
func (m *Mesh) ExportGLTF(doc *gltf.Document) uint32 {
	positions := make([][3]float32, len(m.Vertices))
	for iVertex, v := range m.Vertices {
		positions[iVertex] = v
	}

	attributes := make(map[string]uint32)
	attributes["POSITION"] = modeler.WritePosition(doc, positions)

	if m.HaveNormals() {
		normals := make([][3]float32, len(m.Normals))
		for iVertex, normal := range m.Normals {
			if normal.Len() > 0.5 {
				normal = normal.Normalize()
			}
			normals[iVertex] = normal
		}
		attributes["NORMAL"] = modeler.WriteNormal(doc, normals)
	}

	indices := make([]uint32, len(m.Indexes))
	copy(indices, m.Indexes)
	indicesAccessor := modeler.WriteIndices(doc, indices)

	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name: m.Name,
		Primitives: []*gltf.Primitive{
			&gltf.Primitive{
				Indices:    &indicesAccessor,
				Attributes: attributes,
			},
		},
	})
	return uint32(len(doc.Meshes) - 1)
}
