package config

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

func TestFindEncoding(t *testing.T) {
	cm, err := FindEncoding("Windows 1251")
	if err != nil {
		t.Fatal(err)
	}
	if cm != charmap.Windows1251 {
		t.Errorf("FindEncoding returned %v", cm)
	}
	if _, err := FindEncoding("no such page"); err == nil {
		t.Error("expected error for unknown encoding")
	}
}

func TestDecodeBytes(t *testing.T) {
	// "Узел" in windows-1251
	s, err := DecodeBytes(charmap.Windows1251, []byte{0xd3, 0xe7, 0xe5, 0xeb})
	if err != nil {
		t.Fatal(err)
	}
	if s != "Узел" {
		t.Errorf("DecodeBytes()=%q", s)
	}
}

func TestReadSettings(t *testing.T) {
	s, err := ReadSettings(strings.NewReader("scale_factor: 2\nkey_baseline: false\n"))
	if err != nil {
		t.Fatal(err)
	}
	if s.ScaleFactor != 2 || s.KeyBaseline {
		t.Errorf("values not loaded: %+v", s)
	}
	if s.RadiusScale != DefaultRadiusScale || s.CollectionName != DefaultCollectionName {
		t.Errorf("defaults lost: %+v", s)
	}

	empty, err := ReadSettings(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if empty.ScaleFactor != DefaultScaleFactor {
		t.Errorf("empty file scale %v", empty.ScaleFactor)
	}
}

func TestSettingsSaveLoad(t *testing.T) {
	s := DefaultSettings()
	s.RadiusScale = 0.25
	s.CollectionName = "Caps"

	var buf bytes.Buffer
	if err := s.Save(&buf); err != nil {
		t.Fatal(err)
	}
	loaded, err := ReadSettings(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if *loaded != *s {
		t.Errorf("got %+v, want %+v", loaded, s)
	}
}
