package bindec

import (
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// Format is count of decimal places for x, y and z
type Format [3]int

var DefaultFormat = Format{6, 5, 6}

// Formats is the per point index coordinate format table
type Formats map[int]Format

func (f Formats) Get(index int) Format {
	if format, ok := f[index]; ok {
		return format
	}
	return DefaultFormat
}

// LoadFormats reads json object {"<index>": [x, y, z], ...}
func LoadFormats(r io.Reader) (Formats, error) {
	var raw map[string][]int
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.Wrapf(err, "Failed to unmarshal formats")
	}

	formats := make(Formats, len(raw))
	for key, format := range raw {
		index, err := strconv.Atoi(key)
		if err != nil {
			return nil, errors.Errorf("Invalid point index %q", key)
		}
		if len(format) != 3 {
			return nil, errors.Errorf("Point %d format must have 3 values, got %v", index, format)
		}
		for _, places := range format {
			if places < 0 {
				return nil, errors.Errorf("Negative decimal places for point %d: %v", index, format)
			}
		}
		formats[index] = Format{format[0], format[1], format[2]}
	}
	return formats, nil
}

func LoadFormatsFile(path string) (Formats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to open formats %q", path)
	}
	defer f.Close()
	return LoadFormats(f)
}

func (f Formats) Save(w io.Writer) error {
	raw := make(map[string]Format, len(f))
	for index, format := range f {
		raw[strconv.Itoa(index)] = format
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(raw); err != nil {
		return errors.Wrapf(err, "Failed to marshal formats")
	}
	return nil
}
