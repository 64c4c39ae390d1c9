package regcheck

import (
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"

	j "github.com/goccy/go-json"

	eng "github.com/reoring/regcheck/internal/engine"
)

type jsonSource struct {
	data []byte
	r    io.Reader
}

func (s *jsonSource) Format() Format { return FormatJSON }

func (s *jsonSource) tokens(maxBytes int64) (eng.TokenSource, error) {
	data, err := readPayload(s.data, s.r, maxBytes)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, malformed(CodeParseError, "", "empty payload", nil)
	}
	// The token decoder is lenient about some syntax errors; validate the
	// whole document first so malformed text never reaches the tree builder.
	if !j.Valid(data) {
		var v any
		if err := j.Unmarshal(data, &v); err != nil {
			return nil, malformed(CodeParseError, "", "invalid JSON: "+err.Error(), err)
		}
		return nil, malformed(CodeParseError, "", "invalid JSON", nil)
	}
	dec := j.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return &gojsonTokens{dec: dec}, nil
}

// ---- engine.TokenSource implementation using go-json Decoder ----

type jsonFrame struct {
	kind         containerKind
	expectingKey bool
}

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type gojsonTokens struct {
	dec   *j.Decoder
	stack []jsonFrame
}

func (s *gojsonTokens) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return eng.Token{}, io.EOF
		}
		return eng.Token{}, err
	}
	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			s.stack = append(s.stack, jsonFrame{kind: kindObject, expectingKey: true})
			return eng.Token{Kind: eng.KindBeginObject}, nil
		case '}':
			s.pop()
			return eng.Token{Kind: eng.KindEndObject}, nil
		case '[':
			s.stack = append(s.stack, jsonFrame{kind: kindArray})
			return eng.Token{Kind: eng.KindBeginArray}, nil
		case ']':
			s.pop()
			return eng.Token{Kind: eng.KindEndArray}, nil
		}
	case string:
		if n := len(s.stack); n > 0 {
			top := &s.stack[n-1]
			if top.kind == kindObject && top.expectingKey {
				top.expectingKey = false
				return eng.Token{Kind: eng.KindKey, String: v}, nil
			}
		}
		s.valueDone()
		return eng.Token{Kind: eng.KindString, String: v}, nil
	case bool:
		s.valueDone()
		return eng.Token{Kind: eng.KindBool, Bool: v}, nil
	case j.Number:
		s.valueDone()
		// The decoder hands out number text backed by its read buffer.
		return eng.Token{Kind: eng.KindNumber, Number: strings.Clone(string(v))}, nil
	case float64:
		s.valueDone()
		return eng.Token{Kind: eng.KindNumber, Number: strconv.FormatFloat(v, 'g', -1, 64)}, nil
	}
	s.valueDone()
	return eng.Token{Kind: eng.KindNull}, nil
}

func (s *gojsonTokens) pop() {
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
	s.valueDone()
}

func (s *gojsonTokens) valueDone() {
	if n := len(s.stack); n > 0 {
		top := &s.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
		}
	}
}
