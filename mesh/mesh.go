package mesh

import (
	"github.com/go-gl/mathgl/mgl32"
)

type Position = mgl32.Vec3
type Normal = mgl32.Vec3

// Mesh is an indexed triangle list, normals are per vertex
type Mesh struct {
	Name     string
	Vertices []Position
	Normals  []Normal
	Indexes  []uint32
}

func New(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]Position, 0),
		Normals:  make([]Normal, 0),
		Indexes:  make([]uint32, 0),
	}
}

func (m *Mesh) AddVertex(pos Position, normal Normal) uint32 {
	m.Vertices = append(m.Vertices, pos)
	m.Normals = append(m.Normals, normal)
	return uint32(len(m.Vertices) - 1)
}

func (m *Mesh) AddTriangle(a, b, c uint32) {
	m.Indexes = append(m.Indexes, a, b, c)
}

func (m *Mesh) TrianglesCount() int {
	return len(m.Indexes) / 3
}

// Transform rotates then translates the mesh in place
func (m *Mesh) Transform(rotation mgl32.Quat, translation mgl32.Vec3) *Mesh {
	for i := range m.Vertices {
		m.Vertices[i] = rotation.Rotate(m.Vertices[i]).Add(translation)
	}
	for i := range m.Normals {
		m.Normals[i] = rotation.Rotate(m.Normals[i])
	}
	return m
}

func (m *Mesh) Bounds() (min, max mgl32.Vec3) {
	if len(m.Vertices) == 0 {
		return
	}
	min, max = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		for i := range v {
			if v[i] < min[i] {
				min[i] = v[i]
			}
			if v[i] > max[i] {
				max[i] = v[i]
			}
		}
	}
	return min, max
}

// Join merges meshes into new one, sources are not modified
func Join(name string, meshes ...*Mesh) *Mesh {
	result := New(name)
	for _, m := range meshes {
		offset := uint32(len(result.Vertices))
		result.Vertices = append(result.Vertices, m.Vertices...)
		result.Normals = append(result.Normals, m.Normals...)
		for _, index := range m.Indexes {
			result.Indexes = append(result.Indexes, index+offset)
		}
	}
	return result
}
