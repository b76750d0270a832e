package strfmt

import (
	"fmt"
	"strings"

	"github.com/arloliu/touki/errs"
	"github.com/arloliu/touki/span"
)

const (
	// maxIndex bounds argument indexes.
	maxIndex = 1_000_000

	// maxAlignment bounds the magnitude of an alignment.
	maxAlignment = 1_000_000
)

type tokenKind uint8

const (
	tokenEOF tokenKind = iota
	tokenLiteral
	tokenHole
)

// token is one literal run or one hole of a template.
type token struct {
	kind  tokenKind
	text  string // literal text, or the format spec of a hole
	index int
	align int
	pos   int // offset of the token in the template
}

// scanner splits a template into tokens. It reads one byte of lookahead and
// hands out substrings of the template, so scanning does not allocate unless
// a format spec contains escaped braces.
type scanner struct {
	tpl string
	r   span.Reader[byte]
}

func (s *scanner) reset(tpl string) {
	s.tpl = tpl
	s.r.Reset(span.Bytes(tpl))
}

func (s *scanner) next() (token, error) {
	if s.r.End() {
		return token{kind: tokenEOF, pos: s.r.Position()}, nil
	}

	start := s.r.Position()
	lit, ok := s.r.TryReadToAny('{', '}')
	if !ok {
		s.r.ReadToEnd()
		return token{kind: tokenLiteral, text: s.tpl[start:], pos: start}, nil
	}
	if len(lit) > 0 {
		return token{kind: tokenLiteral, text: s.tpl[start : start+len(lit)], pos: start}, nil
	}

	brace, _ := s.r.TryRead()
	if s.r.IsNext(brace) {
		s.r.TryRead()
		return token{kind: tokenLiteral, text: s.tpl[start : start+1], pos: start}, nil
	}
	if brace == '}' {
		return token{}, fmt.Errorf("%w: unexpected '}' at offset %d", errs.ErrFormat, start)
	}

	return s.hole(start)
}

// hole parses the remainder of a hole whose '{' is at start.
func (s *scanner) hole(start int) (token, error) {
	tok := token{kind: tokenHole, pos: start}

	index, ok := s.number()
	if !ok {
		return token{}, s.unexpected("argument index")
	}
	if index >= maxIndex {
		return token{}, fmt.Errorf("%w: argument index at offset %d exceeds %d", errs.ErrFormat, start, maxIndex-1)
	}
	tok.index = index

	if s.r.IsNext(',') {
		s.r.TryRead()
		neg := s.r.IsNext('-')
		if neg {
			s.r.TryRead()
		}

		align, ok := s.number()
		if !ok {
			return token{}, s.unexpected("alignment")
		}
		if align >= maxAlignment {
			return token{}, fmt.Errorf("%w: alignment at offset %d exceeds %d", errs.ErrFormat, start, maxAlignment-1)
		}
		if neg {
			align = -align
		}
		tok.align = align
	}

	if s.r.IsNext(':') {
		s.r.TryRead()
		spec, err := s.spec(start)
		if err != nil {
			return token{}, err
		}
		tok.text = spec

		return tok, nil
	}

	if !s.r.IsNext('}') {
		return token{}, s.unexpected("'}'")
	}
	s.r.TryRead()

	return tok, nil
}

// number reads a run of decimal digits. Values at or above maxIndex are
// clamped so that long runs cannot overflow.
func (s *scanner) number() (int, bool) {
	n, digits := 0, 0
	for {
		c, ok := s.r.TryPeek()
		if !ok || c < '0' || c > '9' {
			return n, digits > 0
		}
		s.r.TryRead()
		digits++

		n = n*10 + int(c-'0')
		if n > maxIndex {
			n = maxIndex
		}
	}
}

// spec reads a format spec up to the first lone '}' and consumes it.
// Doubled braces inside the spec stand for single braces.
func (s *scanner) spec(start int) (string, error) {
	specStart := s.r.Position()
	escaped := false

	for {
		if _, ok := s.r.TryReadToAny('{', '}'); !ok {
			return "", fmt.Errorf("%w: unterminated hole at offset %d", errs.ErrFormat, start)
		}

		brace, _ := s.r.TryRead()
		if s.r.IsNext(brace) {
			s.r.TryRead()
			escaped = true

			continue
		}
		if brace == '{' {
			return "", fmt.Errorf("%w: unexpected '{' in format spec at offset %d", errs.ErrFormat, s.r.Position()-1)
		}

		spec := s.tpl[specStart : s.r.Position()-1]
		if escaped {
			spec = strings.ReplaceAll(strings.ReplaceAll(spec, "{{", "{"), "}}", "}")
		}

		return spec, nil
	}
}

func (s *scanner) unexpected(want string) error {
	pos := s.r.Position()
	c, ok := s.r.TryPeek()
	if !ok {
		return fmt.Errorf("%w: unterminated hole, expected %s at end of template", errs.ErrFormat, want)
	}

	return fmt.Errorf("%w: expected %s at offset %d, found %q", errs.ErrFormat, want, pos, c)
}
