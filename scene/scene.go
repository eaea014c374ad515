package scene

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/mogaika/bindec_tools/mesh"
)

const (
	DefaultFrameStart = 1
	DefaultFrameEnd   = 250

	RootCollectionName = "Scene Collection"
)

type Keyframe struct {
	Frame    int
	Location mgl64.Vec3
}

// Empty is a marker object identified by its point index
type Empty struct {
	Name      string
	Index     int
	Location  mgl64.Vec3
	Keyframes []Keyframe
}

// Evaluate location channel at frame: constant outside keyed range,
// linear between keys
func (e *Empty) Evaluate(frame int) mgl64.Vec3 {
	keys := e.Keyframes
	if len(keys) == 0 {
		return e.Location
	}
	if frame <= keys[0].Frame {
		return keys[0].Location
	}
	last := keys[len(keys)-1]
	if frame >= last.Frame {
		return last.Location
	}
	i := sort.Search(len(keys), func(i int) bool { return keys[i].Frame >= frame })
	next := keys[i]
	if next.Frame == frame {
		return next.Location
	}
	prev := keys[i-1]
	t := float64(frame-prev.Frame) / float64(next.Frame-prev.Frame)
	return prev.Location.Add(next.Location.Sub(prev.Location).Mul(t))
}

type IndexedPoint struct {
	Index    int
	Location mgl64.Vec3
}

type Scene struct {
	FrameStart int
	FrameEnd   int
	Frame      int

	Empties     []*Empty
	Root        *Collection // objects not linked to any child collection
	Collections []*Collection
	Armatures   []*Armature

	byIndex map[int]*Empty
}

func New() *Scene {
	return &Scene{
		FrameStart:  DefaultFrameStart,
		FrameEnd:    DefaultFrameEnd,
		Frame:       DefaultFrameStart,
		Empties:     make([]*Empty, 0),
		Root:        &Collection{Name: RootCollectionName, Objects: make([]*MeshObject, 0)},
		Collections: make([]*Collection, 0),
		Armatures:   make([]*Armature, 0),
		byIndex:     make(map[int]*Empty),
	}
}

// AddEmpty replaces empty that already holds the index
func (s *Scene) AddEmpty(name string, index int, location mgl64.Vec3) *Empty {
	e := &Empty{Name: name, Index: index, Location: location, Keyframes: make([]Keyframe, 0)}
	if old, ex := s.byIndex[index]; ex {
		for i := range s.Empties {
			if s.Empties[i] == old {
				s.Empties[i] = e
			}
		}
	} else {
		s.Empties = append(s.Empties, e)
	}
	s.byIndex[index] = e
	return e
}

func (s *Scene) EmptyByIndex(index int) *Empty {
	return s.byIndex[index]
}

// InsertKeyframe stores current location of empty at frame
func (s *Scene) InsertKeyframe(e *Empty, frame int) {
	key := Keyframe{Frame: frame, Location: e.Location}
	i := sort.Search(len(e.Keyframes), func(i int) bool { return e.Keyframes[i].Frame >= frame })
	if i < len(e.Keyframes) && e.Keyframes[i].Frame == frame {
		e.Keyframes[i] = key
		return
	}
	e.Keyframes = append(e.Keyframes, Keyframe{})
	copy(e.Keyframes[i+1:], e.Keyframes[i:])
	e.Keyframes[i] = key
}

// FrameSet moves current frame and re-evaluates animated locations
func (s *Scene) FrameSet(frame int) {
	s.Frame = frame
	for _, e := range s.Empties {
		if len(e.Keyframes) != 0 {
			e.Location = e.Evaluate(frame)
		}
	}
}

func (s *Scene) PointIndices() []int {
	indices := make([]int, 0, len(s.Empties))
	for _, e := range s.Empties {
		indices = append(indices, e.Index)
	}
	sort.Ints(indices)
	return indices
}

func (s *Scene) Sample(frame int) (map[int]mgl64.Vec3, error) {
	if frame < 0 {
		return nil, errors.Errorf("Invalid frame %d", frame)
	}
	s.FrameSet(frame)
	result := make(map[int]mgl64.Vec3, len(s.Empties))
	for _, e := range s.Empties {
		result[e.Index] = e.Location
	}
	return result, nil
}

// IndexedPoints returns current locations sorted by index
func (s *Scene) IndexedPoints() []IndexedPoint {
	points := make([]IndexedPoint, 0, len(s.Empties))
	for _, index := range s.PointIndices() {
		points = append(points, IndexedPoint{Index: index, Location: s.byIndex[index].Location})
	}
	return points
}

func (s *Scene) uniqueName(name string, exists func(string) bool) string {
	if !exists(name) {
		return name
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s.%.3d", name, i)
		if !exists(candidate) {
			return candidate
		}
	}
}

// NewCollection creates collection linked to scene, name gets
// numeric suffix when already taken
func (s *Scene) NewCollection(name string) *Collection {
	c := &Collection{
		Name:    s.uniqueName(name, func(n string) bool { return s.Collection(n) != nil }),
		Objects: make([]*MeshObject, 0),
	}
	s.Collections = append(s.Collections, c)
	return c
}

func (s *Scene) Collection(name string) *Collection {
	for _, c := range s.Collections {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// AddObject creates mesh object in root collection
func (s *Scene) AddObject(name string, m *mesh.Mesh) *MeshObject {
	o := &MeshObject{Name: name, Mesh: m}
	s.Root.Link(o)
	return o
}

// Move relinks object between collections
func (s *Scene) Move(o *MeshObject, from, to *Collection) {
	from.Unlink(o.Name)
	to.Link(o)
}

// Objects lists mesh objects of root and every collection
func (s *Scene) Objects() []*MeshObject {
	objects := append([]*MeshObject(nil), s.Root.Objects...)
	for _, c := range s.Collections {
		objects = append(objects, c.Objects...)
	}
	return objects
}

func (s *Scene) AddArmature(a *Armature) *Armature {
	a.Name = s.uniqueName(a.Name, func(n string) bool {
		for _, ex := range s.Armatures {
			if ex.Name == n {
				return true
			}
		}
		return false
	})
	s.Armatures = append(s.Armatures, a)
	return a
}
