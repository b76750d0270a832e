// Package span provides allocation-free cursors and splitters over slices.
//
// A Reader walks a []T left to right and hands out sub-slices of the
// underlying data instead of copies, so scanning a template or a record never
// allocates. Strings can be scanned through Bytes, which returns a read-only
// view of the string's storage.
package span

import (
	"fmt"
	"slices"
	"unsafe"

	"github.com/arloliu/touki/errs"
)

// Reader is a forward cursor over a slice.
//
// The zero Reader is an empty reader positioned at its end.
type Reader[T comparable] struct {
	data []T
	pos  int
}

// NewReader returns a Reader positioned at the start of data.
func NewReader[T comparable](data []T) *Reader[T] {
	return &Reader[T]{data: data}
}

// Reset points the reader at data and rewinds it.
func (r *Reader[T]) Reset(data []T) {
	r.data = data
	r.pos = 0
}

// Bytes returns a read-only byte view of s without copying.
// The returned slice must not be modified.
func Bytes(s string) []byte {
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

// Position returns the index of the next element to be read.
func (r *Reader[T]) Position() int {
	return r.pos
}

// SetPosition moves the cursor to pos. Valid positions are 0 through Len inclusive.
func (r *Reader[T]) SetPosition(pos int) error {
	if pos < 0 || pos > len(r.data) {
		return fmt.Errorf("%w: position %d, length %d", errs.ErrOutOfRange, pos, len(r.data))
	}
	r.pos = pos

	return nil
}

// Len returns the total length of the underlying data.
func (r *Reader[T]) Len() int {
	return len(r.data)
}

// Remaining returns the number of unread elements.
func (r *Reader[T]) Remaining() int {
	return len(r.data) - r.pos
}

// End reports whether every element has been read.
func (r *Reader[T]) End() bool {
	return r.pos >= len(r.data)
}

// Data returns the whole underlying slice.
func (r *Reader[T]) Data() []T {
	return r.data
}

// Unread returns the unread part of the data without advancing.
func (r *Reader[T]) Unread() []T {
	return r.data[r.pos:]
}

// TryPeek returns the next element without advancing.
func (r *Reader[T]) TryPeek() (T, bool) {
	if r.pos >= len(r.data) {
		var zero T
		return zero, false
	}

	return r.data[r.pos], true
}

// IsNext reports whether the next element equals v.
func (r *Reader[T]) IsNext(v T) bool {
	return r.pos < len(r.data) && r.data[r.pos] == v
}

// TryRead reads one element.
func (r *Reader[T]) TryRead() (T, bool) {
	if r.pos >= len(r.data) {
		var zero T
		return zero, false
	}
	v := r.data[r.pos]
	r.pos++

	return v, true
}

// TryReadN reads exactly n elements, or nothing when fewer remain.
func (r *Reader[T]) TryReadN(n int) ([]T, bool) {
	if n < 0 || n > len(r.data)-r.pos {
		return nil, false
	}
	s := r.data[r.pos : r.pos+n]
	r.pos += n

	return s, true
}

// TryReadTo reads up to the next delim. The returned span excludes the
// delimiter; advancePast controls whether the cursor ends after it or on it.
// When delim is not found the reader does not move.
func (r *Reader[T]) TryReadTo(delim T, advancePast bool) ([]T, bool) {
	rest := r.data[r.pos:]
	i := slices.Index(rest, delim)
	if i < 0 {
		return nil, false
	}
	r.pos += i
	if advancePast {
		r.pos++
	}

	return rest[:i], true
}

// TryReadToAny reads up to the first occurrence of any of delims and leaves the
// cursor on the delimiter. When none is found the reader does not move.
//
// Exactly two delimiters take a dedicated single-pass path, which is the case
// the template scanner relies on for '{' and '}'.
func (r *Reader[T]) TryReadToAny(delims ...T) ([]T, bool) {
	rest := r.data[r.pos:]

	var i int
	switch len(delims) {
	case 0:
		return nil, false
	case 1:
		i = slices.Index(rest, delims[0])
	case 2:
		i = indexAny2(rest, delims[0], delims[1])
	default:
		i = slices.IndexFunc(rest, func(v T) bool { return slices.Contains(delims, v) })
	}
	if i < 0 {
		return nil, false
	}
	r.pos += i

	return rest[:i], true
}

func indexAny2[T comparable](s []T, a, b T) int {
	for i, v := range s {
		if v == a || v == b {
			return i
		}
	}

	return -1
}

// TryAdvancePast advances past seq if the unread data starts with it.
func (r *Reader[T]) TryAdvancePast(seq []T) bool {
	rest := r.data[r.pos:]
	if len(seq) > len(rest) || !slices.Equal(rest[:len(seq)], seq) {
		return false
	}
	r.pos += len(seq)

	return true
}

// Advance moves the cursor n elements forward; negative n moves it back.
func (r *Reader[T]) Advance(n int) error {
	return r.SetPosition(r.pos + n)
}

// Rewind moves the cursor back n elements.
func (r *Reader[T]) Rewind(n int) error {
	return r.SetPosition(r.pos - n)
}

// ReadToEnd returns all unread elements and moves the cursor to the end.
func (r *Reader[T]) ReadToEnd() []T {
	s := r.data[r.pos:]
	r.pos = len(r.data)

	return s
}
