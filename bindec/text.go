package bindec

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Encoding reports which stage of the decode chain produced the text
type Encoding int

const (
	EncodingUTF8 Encoding = iota
	EncodingWindows1252
	EncodingLatin1
)

func (e Encoding) String() string {
	switch e {
	case EncodingUTF8:
		return "utf-8"
	case EncodingWindows1252:
		return "windows-1252"
	case EncodingLatin1:
		return "latin-1"
	default:
		return "unknown"
	}
}

// DecodeText tries utf-8, then windows-1252. Bytes undefined in windows-1252
// (0x81, 0x8d, 0x8f, 0x90, 0x9d) fall through to latin-1, which maps every
// byte to the code point of the same value.
func DecodeText(data []byte) (string, Encoding) {
	if utf8.Valid(data) {
		return string(data), EncodingUTF8
	}

	if s, err := charmap.Windows1252.NewDecoder().Bytes(data); err == nil && !containsReplacement(s) {
		return string(s), EncodingWindows1252
	}

	s, _ := charmap.ISO8859_1.NewDecoder().Bytes(data)
	return string(s), EncodingLatin1
}

func containsReplacement(s []byte) bool {
	return strings.ContainsRune(string(s), utf8.RuneError)
}
