package capsule

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/bindec_tools/mesh"
)

func ringPoint(iVertex, count int) (float32, float32) {
	angle := 2 * math.Pi * float64(iVertex) / float64(count)
	return float32(math.Cos(angle)), float32(math.Sin(angle))
}

// Cylinder along +Z centered at origin, with filled caps
func Cylinder(name string, radius, depth float32, vertices int) *mesh.Mesh {
	m := mesh.New(name)
	h := depth / 2

	bottom := make([]uint32, vertices)
	top := make([]uint32, vertices)
	for i := 0; i < vertices; i++ {
		c, s := ringPoint(i, vertices)
		n := mgl32.Vec3{c, s, 0}
		bottom[i] = m.AddVertex(mgl32.Vec3{c * radius, s * radius, -h}, n)
		top[i] = m.AddVertex(mgl32.Vec3{c * radius, s * radius, h}, n)
	}
	for i := 0; i < vertices; i++ {
		next := (i + 1) % vertices
		m.AddTriangle(bottom[i], bottom[next], top[next])
		m.AddTriangle(bottom[i], top[next], top[i])
	}

	up := mgl32.Vec3{0, 0, 1}
	down := mgl32.Vec3{0, 0, -1}
	topCenter := m.AddVertex(mgl32.Vec3{0, 0, h}, up)
	bottomCenter := m.AddVertex(mgl32.Vec3{0, 0, -h}, down)
	for i := 0; i < vertices; i++ {
		c, s := ringPoint(i, vertices)
		top[i] = m.AddVertex(mgl32.Vec3{c * radius, s * radius, h}, up)
		bottom[i] = m.AddVertex(mgl32.Vec3{c * radius, s * radius, -h}, down)
	}
	for i := 0; i < vertices; i++ {
		next := (i + 1) % vertices
		m.AddTriangle(topCenter, top[i], top[next])
		m.AddTriangle(bottomCenter, bottom[next], bottom[i])
	}

	return m
}

// UVSphere centered at origin with poles on Z axis
func UVSphere(name string, radius float32, segments, rings int) *mesh.Mesh {
	m := mesh.New(name)

	topPole := m.AddVertex(mgl32.Vec3{0, 0, radius}, mgl32.Vec3{0, 0, 1})
	latitudes := make([][]uint32, rings-1)
	for iRing := range latitudes {
		phi := math.Pi * float64(iRing+1) / float64(rings)
		z := float32(math.Cos(phi))
		rho := float32(math.Sin(phi))

		latitudes[iRing] = make([]uint32, segments)
		for iSegment := 0; iSegment < segments; iSegment++ {
			c, s := ringPoint(iSegment, segments)
			n := mgl32.Vec3{c * rho, s * rho, z}
			latitudes[iRing][iSegment] = m.AddVertex(n.Mul(radius), n)
		}
	}
	bottomPole := m.AddVertex(mgl32.Vec3{0, 0, -radius}, mgl32.Vec3{0, 0, -1})

	for iSegment := 0; iSegment < segments; iSegment++ {
		next := (iSegment + 1) % segments

		first := latitudes[0]
		m.AddTriangle(topPole, first[iSegment], first[next])

		for iRing := 0; iRing+1 < len(latitudes); iRing++ {
			upper := latitudes[iRing]
			lower := latitudes[iRing+1]
			m.AddTriangle(lower[iSegment], lower[next], upper[next])
			m.AddTriangle(lower[iSegment], upper[next], upper[iSegment])
		}

		last := latitudes[len(latitudes)-1]
		m.AddTriangle(bottomPole, last[next], last[iSegment])
	}

	return m
}
