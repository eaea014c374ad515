package bindec

import (
	"strconv"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

const (
	TOKEN_NUMBER = iota
	TOKEN_COMMA
)

var blockLexer *lexmachine.Lexer

func init() {
	blockLexer = lexmachine.NewLexer()
	blockLexer.Add([]byte(`[\+\-]?[0-9]*\.?[0-9]+`), getToken(TOKEN_NUMBER))
	blockLexer.Add([]byte(`,`), getToken(TOKEN_COMMA))
	blockLexer.Add([]byte(`( |\t|\n|\r)+`), skip)
	if err := blockLexer.Compile(); err != nil {
		panic(err)
	}
}

func getToken(tokenType int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(tokenType, string(m.Bytes), m), nil
	}
}

func skip(scan *lexmachine.Scanner, match *machines.Match) (interface{}, error) {
	return nil, nil
}

// ParseBlock accepts exactly "number,number,number"
func ParseBlock(block string) (mgl64.Vec3, error) {
	var v mgl64.Vec3

	scanner, err := blockLexer.Scanner([]byte(block))
	if err != nil {
		return v, errors.Wrapf(err, "Failed to create lexer scanner")
	}

	count := 0
	expectNumber := true
	for itok, err, eos := scanner.Next(); !eos; itok, err, eos = scanner.Next() {
		if err != nil {
			return v, errors.Wrapf(err, "Failed to parse token")
		}
		tok := itok.(*lexmachine.Token)

		switch tok.Type {
		case TOKEN_NUMBER:
			if !expectNumber {
				return v, errors.Errorf("Missed comma before %q", tok.Lexeme)
			}
			if count == len(v) {
				return v, errors.Errorf("Too many coordinates")
			}
			f, err := strconv.ParseFloat(string(tok.Lexeme), 64)
			if err != nil {
				return v, errors.Wrapf(err, "Unknown number format %q", tok.Lexeme)
			}
			v[count] = f
			count++
			expectNumber = false
		case TOKEN_COMMA:
			if expectNumber {
				return v, errors.Errorf("Missed coordinate at column %v", tok.StartColumn)
			}
			expectNumber = true
		}
	}

	if count != len(v) || expectNumber {
		return v, errors.Errorf("Expected 3 coordinates, got %d", count)
	}
	return v, nil
}
