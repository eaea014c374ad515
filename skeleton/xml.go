package skeleton

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"

	"github.com/mogaika/bindec_tools/config"
)

// Element is generic xml tree node, skeleton files use tag names as ids
type Element struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []*Element `xml:",any"`
}

func (e *Element) Tag() string {
	return e.XMLName.Local
}

func (e *Element) Lookup(name string) (string, bool) {
	for _, attr := range e.Attrs {
		if attr.Name.Local == name {
			return attr.Value, true
		}
	}
	return "", false
}

func (e *Element) Get(name, def string) string {
	if v, ok := e.Lookup(name); ok {
		return v
	}
	return def
}

// Find returns first direct child with tag
func (e *Element) Find(tag string) *Element {
	for _, c := range e.Children {
		if c.Tag() == tag {
			return c
		}
	}
	return nil
}

// Decode converts document from code page cm (configured one when nil)
// and parses element tree
func Decode(data []byte, cm *charmap.Charmap) (*Element, error) {
	text, err := config.DecodeBytes(cm, data)
	if err != nil {
		return nil, err
	}

	d := xml.NewDecoder(strings.NewReader(text))
	// text is utf-8 already, declared encoding is informational
	d.CharsetReader = func(label string, input io.Reader) (io.Reader, error) {
		return input, nil
	}

	root := &Element{}
	if err := d.Decode(root); err != nil {
		return nil, errors.Wrapf(err, "Failed to parse skeleton xml")
	}
	return root, nil
}
