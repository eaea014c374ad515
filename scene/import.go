package scene

import (
	"fmt"

	"github.com/mogaika/bindec_tools/bindec"
)

type ImportOptions struct {
	// KeyBaseline keys frame 1 with rest position so the first frame
	// is not overridden by extrapolation of the second one
	KeyBaseline bool
}

// ImportAnimation creates one empty per point and keys its samples,
// scene frame range is extended to cover the animation
func (s *Scene) ImportAnimation(a *bindec.Animation, opts ImportOptions) []*Empty {
	empties := make([]*Empty, 0, len(a.Points))
	for _, p := range a.Points {
		e := s.AddEmpty(fmt.Sprintf("Empty_%d", p.Index), p.Index, p.Rest)
		if opts.KeyBaseline && len(p.Samples) != 0 {
			s.InsertKeyframe(e, 1)
		}
		for _, sample := range p.Samples {
			e.Location = sample.Position
			s.InsertKeyframe(e, sample.Frame)
		}
		empties = append(empties, e)
	}

	if a.FrameCount > 0 {
		s.FrameStart = 1
		if s.FrameEnd < a.FrameCount || len(s.Empties) == len(empties) {
			s.FrameEnd = a.FrameCount
		}
	}
	s.FrameSet(s.FrameStart)
	return empties
}
