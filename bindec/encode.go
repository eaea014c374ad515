package bindec

import (
	"bufio"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// Sampler evaluates positions of indexed points at a frame
type Sampler interface {
	PointIndices() []int
	Sample(frame int) (map[int]mgl64.Vec3, error)
}

func FormatPoint(p mgl64.Vec3, format Format) string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i := range p {
		if i != 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatFloat(p[i], 'f', format[i], 64))
	}
	sb.WriteByte('}')
	return sb.String()
}

// FormatFrame produces one line without trailing newline,
// indices must be already sorted
func FormatFrame(indices []int, positions map[int]mgl64.Vec3, formats Formats) string {
	var sb strings.Builder
	sb.WriteByte('[')
	sb.WriteString(strconv.Itoa(len(indices)))
	sb.WriteByte(']')
	for _, index := range indices {
		sb.WriteString(FormatPoint(positions[index], formats.Get(index)))
	}
	sb.WriteString(FrameSeparator)
	return sb.String()
}

// Encode writes frames [start, end] inclusive, one line per frame
func Encode(w io.Writer, s Sampler, formats Formats, start, end int) error {
	if start > end {
		return errors.Errorf("Invalid frame range [%d, %d]", start, end)
	}

	indices := append([]int(nil), s.PointIndices()...)
	sort.Ints(indices)

	bw := bufio.NewWriter(w)
	for frame := start; frame <= end; frame++ {
		positions, err := s.Sample(frame)
		if err != nil {
			return errors.Wrapf(err, "Failed to sample frame %d", frame)
		}
		if _, err := bw.WriteString(FormatFrame(indices, positions, formats) + "\n"); err != nil {
			return errors.Wrapf(err, "Failed to write frame %d", frame)
		}
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrapf(err, "Failed to flush")
	}
	return nil
}
