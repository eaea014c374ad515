package capsule

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/bindec_tools/mesh"
	"github.com/mogaika/bindec_tools/utils"
)

const (
	Epsilon = 0.001

	CylinderVertices = 32
	SphereSegments   = 32
	SphereRings      = 16
)

var axisZ = mgl32.Vec3{0, 0, 1}

// Placement of capsule primitives between two joints
type Placement struct {
	A, B   mgl32.Vec3
	Radius float32

	// Length is Epsilon for coincident joints, Direction is zero then
	Length    float32
	Direction mgl32.Vec3

	Center   mgl32.Vec3
	Depth    float32
	Rotation mgl32.Quat

	BottomCenter mgl32.Vec3
	TopCenter    mgl32.Vec3
}

func Place(a, b mgl32.Vec3, radius float32) Placement {
	p := Placement{A: a, B: b, Radius: radius, Rotation: mgl32.QuatIdent()}

	delta := b.Sub(a)
	p.Length = delta.Len()
	if p.Length == 0 {
		p.Length = Epsilon
	} else {
		p.Direction = delta.Mul(1 / p.Length)
		p.Rotation = mgl32.QuatBetweenVectors(axisZ, p.Direction)
	}

	p.Depth = p.Length - 2*radius
	if p.Depth < Epsilon {
		p.Depth = Epsilon
	}
	p.Center = a.Add(b).Mul(0.5)
	p.BottomCenter = a.Add(p.Direction.Mul(radius))
	p.TopCenter = b.Sub(p.Direction.Mul(radius))
	return p
}

// Euler rotation of cylinder in degrees
func (p Placement) Euler() mgl32.Vec3 {
	return utils.RadiansToDegreesV3(utils.QuatToEuler(p.Rotation))
}

type Capsule struct {
	Name string
	Placement
	Mesh *mesh.Mesh
}

func Build(name string, a, b mgl32.Vec3, radius float32) *Capsule {
	p := Place(a, b, radius)

	cylinder := Cylinder(name+"_cyl", radius, p.Depth, CylinderVertices).Transform(p.Rotation, p.Center)
	top := UVSphere(name+"_top", radius, SphereSegments, SphereRings).Transform(mgl32.QuatIdent(), p.TopCenter)
	bottom := UVSphere(name+"_bottom", radius, SphereSegments, SphereRings).Transform(mgl32.QuatIdent(), p.BottomCenter)

	return &Capsule{
		Name:      name,
		Placement: p,
		Mesh:      mesh.Join(name, cylinder, top, bottom),
	}
}
