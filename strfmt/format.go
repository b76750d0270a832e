package strfmt

import (
	"fmt"
	"unicode/utf8"

	"github.com/arloliu/touki/errs"
	"github.com/arloliu/touki/internal/pool"
	"github.com/arloliu/touki/value"
)

// Formattable is implemented by argument types that render themselves with a
// format spec. value.Value implements it.
type Formattable interface {
	AppendFormat(dst []byte, spec string) ([]byte, error)
}

// Append renders tpl with args and appends the result to dst.
//
// On failure the text rendered before the failing token stays in the returned
// slice.
func Append(dst []byte, tpl string, args ...value.Value) ([]byte, error) {
	return appendValues(dst, tpl, args)
}

// Format renders tpl with args.
func Format(tpl string, args ...value.Value) (string, error) {
	buf := pool.GetFormatBuffer()
	defer pool.PutFormatBuffer(buf)

	buf.Grow(len(tpl))
	out, err := appendValues(buf.Bytes(), tpl, args)
	buf.B = out
	if err != nil {
		return "", err
	}

	return buf.String(), nil
}

// AppendArgs is Append for any argument type implementing Formattable.
func AppendArgs[A Formattable](dst []byte, tpl string, args []A) ([]byte, error) {
	return appendTemplate(dst, tpl, args)
}

// FormatArgs is Format for any argument type implementing Formattable.
func FormatArgs[A Formattable](tpl string, args []A) (string, error) {
	return formatTemplate(tpl, args)
}

func formatTemplate[A Formattable](tpl string, args []A) (string, error) {
	buf := pool.GetFormatBuffer()
	defer pool.PutFormatBuffer(buf)

	buf.Grow(len(tpl))
	out, err := appendTemplate(buf.Bytes(), tpl, args)
	buf.B = out
	if err != nil {
		return "", err
	}

	return buf.String(), nil
}

// appendValues is appendTemplate specialised for value.Value, which keeps the
// argument calls direct.
func appendValues(dst []byte, tpl string, args []value.Value) ([]byte, error) {
	var s scanner
	s.reset(tpl)

	for {
		tok, err := s.next()
		if err != nil {
			return dst, err
		}

		switch tok.kind {
		case tokenEOF:
			return dst, nil
		case tokenLiteral:
			dst = append(dst, tok.text...)
		case tokenHole:
			if tok.index >= len(args) {
				return dst, indexError(tok, len(args))
			}

			start := len(dst)
			dst, err = args[tok.index].AppendFormat(dst, tok.text)
			dst, err = finishArg(dst, start, err, tok.index, tok.align)
			if err != nil {
				return dst, err
			}
		}
	}
}

func appendTemplate[A Formattable](dst []byte, tpl string, args []A) ([]byte, error) {
	var s scanner
	s.reset(tpl)

	for {
		tok, err := s.next()
		if err != nil {
			return dst, err
		}

		switch tok.kind {
		case tokenEOF:
			return dst, nil
		case tokenLiteral:
			dst = append(dst, tok.text...)
		case tokenHole:
			if tok.index >= len(args) {
				return dst, indexError(tok, len(args))
			}

			dst, err = appendArg(dst, args[tok.index], tok.index, tok.align, tok.text)
			if err != nil {
				return dst, err
			}
		}
	}
}

func indexError(tok token, n int) error {
	return fmt.Errorf("%w: argument index %d at offset %d out of range, %d arguments given",
		errs.ErrFormat, tok.index, tok.pos, n)
}

// appendArg formats arg with spec and pads it to align runes.
func appendArg[A Formattable](dst []byte, arg A, index, align int, spec string) ([]byte, error) {
	start := len(dst)
	out, err := arg.AppendFormat(dst, spec)

	return finishArg(out, start, err, index, align)
}

// finishArg wraps a formatting error or pads the argument written at
// dst[start:].
func finishArg(dst []byte, start int, err error, index, align int) ([]byte, error) {
	if err != nil {
		return dst[:start], fmt.Errorf("%w: argument %d: %w", errs.ErrFormat, index, err)
	}

	if align == 0 {
		return dst, nil
	}

	return pad(dst, start, align), nil
}

// pad pads dst[start:] with spaces to at least |align| runes. Positive
// alignments right-justify, negative ones left-justify.
func pad(dst []byte, start, align int) []byte {
	width, left := align, false
	if width < 0 {
		width, left = -width, true
	}

	n := utf8.RuneCount(dst[start:])
	if n >= width {
		return dst
	}
	fill := width - n

	end := len(dst)
	dst = appendSpaces(dst, fill)
	if left {
		return dst
	}

	copy(dst[start+fill:], dst[start:end])
	for i := start; i < start+fill; i++ {
		dst[i] = ' '
	}

	return dst
}

const spaces = "                                                                "

func appendSpaces(dst []byte, n int) []byte {
	for n > len(spaces) {
		dst = append(dst, spaces...)
		n -= len(spaces)
	}

	return append(dst, spaces[:n]...)
}
