package strfmt

import (
	"github.com/arloliu/touki/internal/pool"
	"github.com/arloliu/touki/value"
)

// piece is a literal run or a hole of a compiled template.
type piece struct {
	literal string
	hole    bool
	index   int
	align   int
	spec    string
	pos     int
}

// Template is a parsed format template. It is immutable and safe for
// concurrent use.
type Template struct {
	text     string
	pieces   []piece
	holes    int
	maxIndex int
}

// Compile parses tpl into a reusable Template.
//
// Argument indexes are checked when the template is rendered, since the
// argument count is not known yet. A Template is immutable and safe for
// concurrent use.
//
// Parameters:
//   - tpl: Template text with holes of the form {index[,alignment][:spec]}
//
// Returns:
//   - *Template: Parsed template
//   - error: Error wrapping errs.ErrFormat if tpl is malformed
//
// Example:
//
//	t, err := strfmt.Compile("{0,-8}|{1,8:N2}")
//	if err != nil {
//	    return err
//	}
//	line, err := t.Format(value.String("web-01"), value.Float64(42.5))
//	// line == "web-01  |   42.50"
func Compile(tpl string) (*Template, error) {
	t := &Template{text: tpl, maxIndex: -1}

	var s scanner
	s.reset(tpl)
	for {
		tok, err := s.next()
		if err != nil {
			return nil, err
		}

		switch tok.kind {
		case tokenEOF:
			return t, nil
		case tokenLiteral:
			// escapes produce single-brace tokens; merge them with their neighbours
			if n := len(t.pieces); n > 0 && !t.pieces[n-1].hole {
				t.pieces[n-1].literal += tok.text
				continue
			}
			t.pieces = append(t.pieces, piece{literal: tok.text, pos: tok.pos})
		case tokenHole:
			t.pieces = append(t.pieces, piece{
				hole:  true,
				index: tok.index,
				align: tok.align,
				spec:  tok.text,
				pos:   tok.pos,
			})
			t.holes++
			t.maxIndex = max(t.maxIndex, tok.index)
		}
	}
}

// String returns the template text.
func (t *Template) String() string {
	return t.text
}

// Holes returns the number of holes in the template.
func (t *Template) Holes() int {
	return t.holes
}

// MaxIndex returns the largest argument index used, or -1 when the template
// has no holes. Rendering needs at least MaxIndex()+1 arguments.
func (t *Template) MaxIndex() int {
	return t.maxIndex
}

// Append renders the template with args and appends the result to dst.
func (t *Template) Append(dst []byte, args ...value.Value) ([]byte, error) {
	return t.execute(dst, args)
}

// Format renders the template with args.
func (t *Template) Format(args ...value.Value) (string, error) {
	buf := pool.GetFormatBuffer()
	defer pool.PutFormatBuffer(buf)

	buf.Grow(len(t.text))
	out, err := t.execute(buf.Bytes(), args)
	buf.B = out
	if err != nil {
		return "", err
	}

	return buf.String(), nil
}

// AppendTemplate is Template.Append for any argument type implementing
// Formattable.
func AppendTemplate[A Formattable](dst []byte, t *Template, args []A) ([]byte, error) {
	return executeTemplate(dst, t, args)
}

func (t *Template) execute(dst []byte, args []value.Value) ([]byte, error) {
	var err error
	for i := range t.pieces {
		p := &t.pieces[i]
		if !p.hole {
			dst = append(dst, p.literal...)
			continue
		}

		if p.index >= len(args) {
			return dst, indexError(token{index: p.index, pos: p.pos}, len(args))
		}

		start := len(dst)
		dst, err = args[p.index].AppendFormat(dst, p.spec)
		dst, err = finishArg(dst, start, err, p.index, p.align)
		if err != nil {
			return dst, err
		}
	}

	return dst, nil
}

func executeTemplate[A Formattable](dst []byte, t *Template, args []A) ([]byte, error) {
	var err error
	for i := range t.pieces {
		p := &t.pieces[i]
		if !p.hole {
			dst = append(dst, p.literal...)
			continue
		}

		if p.index >= len(args) {
			return dst, indexError(token{index: p.index, pos: p.pos}, len(args))
		}

		dst, err = appendArg(dst, args[p.index], p.index, p.align, p.spec)
		if err != nil {
			return dst, err
		}
	}

	return dst, nil
}
