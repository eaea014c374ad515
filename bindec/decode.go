package bindec

import (
	"io/ioutil"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/mogaika/bindec_tools/utils"
)

const (
	FrameSeparator = "END"
	BlockSeparator = "}{"
)

// Sample is one keyframe of a point. Frame numbers are 1-based,
// frame 1 is the rest pose and never produces a sample.
type Sample struct {
	Frame    int
	Position mgl64.Vec3
}

type Point struct {
	Index   int
	Rest    mgl64.Vec3
	Samples []Sample
}

type Animation struct {
	Points     []*Point
	FrameCount int
	// value of the leading [count] of every frame, -1 when absent
	DeclaredCounts []int

	byIndex map[int]*Point
}

type Frame struct {
	Number    int
	Positions []mgl64.Vec3
}

func newAnimation() *Animation {
	return &Animation{
		Points:         make([]*Point, 0),
		DeclaredCounts: make([]int, 0),
		byIndex:        make(map[int]*Point),
	}
}

func (a *Animation) Point(index int) *Point {
	return a.byIndex[index]
}

// Frames returns positions of every point for every frame, points that
// are absent in a frame keep position from previous one
func (a *Animation) Frames() []Frame {
	frames := make([]Frame, a.FrameCount)
	cursors := make([]int, len(a.Points))
	for iFrame := range frames {
		number := iFrame + 1
		positions := make([]mgl64.Vec3, len(a.Points))
		for iPoint, p := range a.Points {
			if iFrame == 0 {
				positions[iPoint] = p.Rest
				continue
			}
			positions[iPoint] = frames[iFrame-1].Positions[iPoint]
			if c := cursors[iPoint]; c < len(p.Samples) && p.Samples[c].Frame == number {
				positions[iPoint] = p.Samples[c].Position
				cursors[iPoint]++
			}
		}
		frames[iFrame] = Frame{Number: number, Positions: positions}
	}
	return frames
}

func (a *Animation) PointIndices() []int {
	indices := make([]int, len(a.Points))
	for i, p := range a.Points {
		indices[i] = p.Index
	}
	return indices
}

// Sample makes decoded animation usable as encoder input
func (a *Animation) Sample(frame int) (map[int]mgl64.Vec3, error) {
	if frame < 1 || frame > a.FrameCount {
		return nil, errors.Errorf("Frame %d out of range [1, %d]", frame, a.FrameCount)
	}
	result := make(map[int]mgl64.Vec3, len(a.Points))
	for _, p := range a.Points {
		pos := p.Rest
		for _, s := range p.Samples {
			if s.Frame > frame {
				break
			}
			pos = s.Position
		}
		result[p.Index] = pos
	}
	return result, nil
}

// SplitFrames returns non-empty trimmed frame segments in file order
func SplitFrames(text string) []string {
	frames := make([]string, 0)
	for _, segment := range strings.Split(text, FrameSeparator) {
		if segment = strings.TrimSpace(segment); segment != "" {
			frames = append(frames, segment)
		}
	}
	return frames
}

// SplitBlocks drops the [count] prefix and cuts frame into point blocks
func SplitBlocks(frame string) (blocks []string, declared int) {
	declared = -1
	if i := strings.IndexByte(frame, ']'); i >= 0 {
		prefix := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(frame[:i]), "["))
		if n, err := strconv.Atoi(prefix); err == nil {
			declared = n
		}
		frame = strings.TrimSpace(frame[i+1:])
	}
	if frame == "" {
		return nil, declared
	}

	blocks = strings.Split(frame, BlockSeparator)
	blocks[0] = strings.TrimPrefix(blocks[0], "{")
	blocks[len(blocks)-1] = strings.TrimSuffix(blocks[len(blocks)-1], "}")
	return blocks, declared
}

func Parse(text string, l utils.Logger) *Animation {
	l = utils.OrDefault(l, "bindec")
	a := newAnimation()

	frames := SplitFrames(text)
	a.FrameCount = len(frames)

	for iFrame, frameData := range frames {
		blocks, declared := SplitBlocks(frameData)
		a.DeclaredCounts = append(a.DeclaredCounts, declared)

		for iBlock, block := range blocks {
			pos, err := ParseBlock(block)
			if err != nil {
				l.Printf("Failed to parse block %q (frame %d, block %d): %v", block, iFrame, iBlock, err)
				continue
			}

			if iFrame == 0 {
				p := &Point{Index: iBlock, Rest: pos, Samples: make([]Sample, 0)}
				a.Points = append(a.Points, p)
				a.byIndex[iBlock] = p
			} else if p := a.byIndex[iBlock]; p != nil {
				p.Samples = append(p.Samples, Sample{Frame: iFrame + 1, Position: pos})
			}
		}
	}

	sort.Slice(a.Points, func(i, j int) bool { return a.Points[i].Index < a.Points[j].Index })
	return a
}

func Decode(data []byte, l utils.Logger) (*Animation, Encoding) {
	text, enc := DecodeText(data)
	return Parse(text, l), enc
}

func ReadFile(path string, l utils.Logger) (*Animation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to open %q", path)
	}
	defer f.Close()

	data, err := ioutil.ReadAll(f)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to read %q", path)
	}

	a, enc := Decode(data, l)
	if enc != EncodingUTF8 {
		utils.OrDefault(l, "bindec").Printf("File %q is not utf-8, decoded as %v", path, enc)
	}
	return a, nil
}
