package config

import (
	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// skeleton documents are written by a windows tool with a cyrillic locale
var currentCharMap *charmap.Charmap = charmap.Windows1251

func FindEncoding(name string) (*charmap.Charmap, error) {
	for _, enc := range charmap.All {
		if cm, ok := enc.(*charmap.Charmap); ok {
			if cm.String() == name {
				return cm, nil
			}
		}
	}
	return nil, errors.Errorf("Failed to find encoding %q", name)
}

func SetEncoding(name string) error {
	cm, err := FindEncoding(name)
	if err != nil {
		return err
	}
	currentCharMap = cm
	return nil
}

func ListEncodings() []string {
	list := make([]string, 0)
	for _, enc := range charmap.All {
		if cm, ok := enc.(*charmap.Charmap); ok {
			list = append(list, cm.String())
		}
	}
	return list
}

func GetEncoding() *charmap.Charmap {
	return currentCharMap
}

// DecodeBytes converts single-byte encoded text to utf-8
func DecodeBytes(cm *charmap.Charmap, data []byte) (string, error) {
	if cm == nil {
		cm = currentCharMap
	}
	s, _, err := transform.Bytes(cm.NewDecoder(), data)
	if err != nil {
		return "", errors.Wrapf(err, "Failed to decode %v text", cm)
	}
	return string(s), nil
}
