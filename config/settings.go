package config

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultScaleFactor    = 0.1
	DefaultRadiusScale    = 0.1
	DefaultCollectionName = "Character_Capsules_From_Skeleton"
	DefaultSkeletonPath   = "D:/sf/models/skeleton.xml"
	DefaultFormatsPath    = "coord_formats.json"
)

// Settings are loaded once by a tool and passed down explicitly
type Settings struct {
	ScaleFactor      float64 `yaml:"scale_factor"`
	RadiusScale      float64 `yaml:"radius_scale"`
	CollectionName   string  `yaml:"collection_name"`
	SkeletonPath     string  `yaml:"skeleton_path"`
	SkeletonEncoding string  `yaml:"skeleton_encoding"`
	FormatsPath      string  `yaml:"formats_path"`
	KeyBaseline      bool    `yaml:"key_baseline"`
	Verbose          bool    `yaml:"verbose"`
}

func DefaultSettings() *Settings {
	return &Settings{
		ScaleFactor:      DefaultScaleFactor,
		RadiusScale:      DefaultRadiusScale,
		CollectionName:   DefaultCollectionName,
		SkeletonPath:     DefaultSkeletonPath,
		SkeletonEncoding: GetEncoding().String(),
		FormatsPath:      DefaultFormatsPath,
		KeyBaseline:      true,
	}
}

// ReadSettings overlays yaml values on top of defaults
func ReadSettings(r io.Reader) (*Settings, error) {
	s := DefaultSettings()
	if err := yaml.NewDecoder(r).Decode(s); err != nil && err != io.EOF {
		return nil, errors.Wrapf(err, "Failed to unmarshal yaml")
	}
	if s.CollectionName == "" {
		s.CollectionName = DefaultCollectionName
	}
	return s, nil
}

// LoadSettings returns defaults when path is empty
func LoadSettings(path string) (*Settings, error) {
	if path == "" {
		return DefaultSettings(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to open settings %q", path)
	}
	defer f.Close()
	return ReadSettings(f)
}

func (s *Settings) Save(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return errors.Wrapf(err, "Failed to marshal yaml")
	}
	if err := enc.Close(); err != nil {
		return errors.Wrapf(err, "Failed to close yaml encoder")
	}
	return nil
}
