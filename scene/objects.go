package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/mogaika/bindec_tools/mesh"
)

type MeshObject struct {
	Name string
	Mesh *mesh.Mesh
}

type Collection struct {
	Name    string
	Objects []*MeshObject
}

func (c *Collection) Link(o *MeshObject) {
	c.Objects = append(c.Objects, o)
}

func (c *Collection) Unlink(name string) *MeshObject {
	for i, o := range c.Objects {
		if o.Name == name {
			c.Objects = append(c.Objects[:i], c.Objects[i+1:]...)
			return o
		}
	}
	return nil
}

func (c *Collection) Object(name string) *MeshObject {
	for _, o := range c.Objects {
		if o.Name == name {
			return o
		}
	}
	return nil
}

type Bone struct {
	Name string
	Head mgl64.Vec3
	Tail mgl64.Vec3
}

// Binding rigidly attaches point to bone
type Binding struct {
	Index  int
	Bone   string
	Weight float64
}

type Armature struct {
	Name     string
	Bones    []*Bone
	Bindings []Binding
}

func (a *Armature) Bone(name string) *Bone {
	for _, b := range a.Bones {
		if b.Name == name {
			return b
		}
	}
	return nil
}

// BoundTo lists point indices attached to bone
func (a *Armature) BoundTo(bone string) []int {
	indices := make([]int, 0)
	for _, b := range a.Bindings {
		if b.Bone == bone {
			indices = append(indices, b.Index)
		}
	}
	return indices
}
