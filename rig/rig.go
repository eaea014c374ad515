// Package rig builds a coarse armature for bindec point clouds.
//
// Points are grouped into body parts by fixed index ranges, so the result
// only makes sense for the 30 point layout the exporter writes.
package rig

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/mogaika/bindec_tools/scene"
)

const ArmatureName = "Bindec_Skeleton"

var BoneAxis = mgl64.Vec3{0, 0, 1}

// Group is inclusive-exclusive index range [First, Last)
type Group struct {
	Name  string
	First int
	Last  int
}

func (g Group) Contains(index int) bool {
	return index >= g.First && index < g.Last
}

var BodyGroups = []Group{
	{"Head", 0, 5},
	{"Left_Hand", 5, 10},
	{"Right_Hand", 10, 15},
	{"Body", 15, 20},
	{"Left_Leg", 20, 25},
	{"Right_Leg", 25, 30},
}

// Build places one bone per non-empty group at centroid of its points
// and binds every member with full weight
func Build(points []scene.IndexedPoint) *scene.Armature {
	a := &scene.Armature{
		Name:     ArmatureName,
		Bones:    make([]*scene.Bone, 0, len(BodyGroups)),
		Bindings: make([]scene.Binding, 0),
	}

	for _, group := range BodyGroups {
		var sum mgl64.Vec3
		members := make([]int, 0)
		for _, p := range points {
			if group.Contains(p.Index) {
				sum = sum.Add(p.Location)
				members = append(members, p.Index)
			}
		}
		if len(members) == 0 {
			continue
		}

		head := sum.Mul(1 / float64(len(members)))
		a.Bones = append(a.Bones, &scene.Bone{
			Name: group.Name,
			Head: head,
			Tail: head.Add(BoneAxis),
		})
		for _, index := range members {
			a.Bindings = append(a.Bindings, scene.Binding{Index: index, Bone: group.Name, Weight: 1.0})
		}
	}

	return a
}

// Apply rigs empties of scene at current frame
func Apply(s *scene.Scene) *scene.Armature {
	return s.AddArmature(Build(s.IndexedPoints()))
}
