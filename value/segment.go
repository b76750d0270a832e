package value

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/arloliu/touki/errs"
)

// Element is the element type of an ArraySegment.
type Element interface {
	byte | rune
}

// StringSegment is a window of count bytes of a string starting at offset.
type StringSegment struct {
	source string
	offset int
	count  int
}

// NewStringSegment returns the segment s[offset:offset+count].
func NewStringSegment(s string, offset, count int) (StringSegment, error) {
	if offset < 0 || count < 0 || offset > len(s)-count {
		return StringSegment{}, fmt.Errorf("%w: segment [%d:+%d] of string with length %d",
			errs.ErrArgumentOutOfRange, offset, count, len(s))
	}

	return StringSegment{source: s, offset: offset, count: count}, nil
}

// Source returns the backing string.
func (s StringSegment) Source() string { return s.source }

// Offset returns the position of the first byte in the backing string.
func (s StringSegment) Offset() int { return s.offset }

// Len returns the number of bytes in the segment.
func (s StringSegment) Len() int { return s.count }

// String returns the segment content.
func (s StringSegment) String() string {
	return s.source[s.offset : s.offset+s.count]
}

// ArraySegment is a window of count elements of a slice starting at offset.
type ArraySegment[E Element] struct {
	array  []E
	offset int
	count  int
}

// NewArraySegment returns the segment array[offset:offset+count].
//
// A nil array is only accepted for the empty range at offset 0.
func NewArraySegment[E Element](array []E, offset, count int) (ArraySegment[E], error) {
	if array == nil && (offset != 0 || count != 0) {
		return ArraySegment[E]{}, fmt.Errorf("%w: segment [%d:+%d] of nil array",
			errs.ErrArgumentNull, offset, count)
	}

	if offset < 0 || count < 0 || offset > len(array)-count {
		return ArraySegment[E]{}, fmt.Errorf("%w: segment [%d:+%d] of array with length %d",
			errs.ErrArgumentOutOfRange, offset, count, len(array))
	}

	return ArraySegment[E]{array: array, offset: offset, count: count}, nil
}

// Array returns the backing slice.
func (s ArraySegment[E]) Array() []E { return s.array }

// Offset returns the index of the first element in the backing slice.
func (s ArraySegment[E]) Offset() int { return s.offset }

// Len returns the number of elements in the segment.
func (s ArraySegment[E]) Len() int { return s.count }

// Slice returns the segment elements. The result shares the backing slice and
// has no spare capacity.
func (s ArraySegment[E]) Slice() []E {
	end := s.offset + s.count

	return s.array[s.offset:end:end]
}

// String returns the segment content as text.
func (s ArraySegment[E]) String() string {
	switch elems := any(s.Slice()).(type) {
	case []byte:
		return string(elems)
	case []rune:
		return string(elems)
	default:
		return ""
	}
}

// packSegment reports whether offset and count fit the 32-bit halves of num.
func packSegment(offset, count int) (uint64, bool) {
	if uint64(offset) > math.MaxUint32 || uint64(count) > math.MaxUint32 {
		return 0, false
	}

	return uint64(offset)<<32 | uint64(count), true
}

func unpackSegment(num uint64) (offset, count int) {
	return int(num >> 32), int(num & math.MaxUint32)
}

// StringSegmentValue returns a Value holding s.
func StringSegmentValue(s StringSegment) Value {
	num, ok := packSegment(s.offset, s.count)
	if !ok {
		return Value{any: s}
	}

	return Value{num: num, any: strsegptr(unsafe.StringData(s.source))}
}

// ByteSegmentValue returns a Value holding s.
func ByteSegmentValue(s ArraySegment[byte]) Value {
	num, ok := packSegment(s.offset, s.count)
	if !ok {
		return Value{any: s}
	}

	return Value{num: num, any: bytesegptr(unsafe.SliceData(s.array))}
}

// RuneSegmentValue returns a Value holding s.
func RuneSegmentValue(s ArraySegment[rune]) Value {
	num, ok := packSegment(s.offset, s.count)
	if !ok {
		return Value{any: s}
	}

	return Value{num: num, any: runesegptr(unsafe.SliceData(s.array))}
}

// The reconstructed backing store ends where the segment ends.

func (v Value) stringSegment(p strsegptr) StringSegment {
	offset, count := unpackSegment(v.num)

	return StringSegment{source: unsafe.String((*byte)(p), offset+count), offset: offset, count: count}
}

func (v Value) byteSegment(p bytesegptr) ArraySegment[byte] {
	offset, count := unpackSegment(v.num)
	if p == nil {
		return ArraySegment[byte]{offset: offset, count: count}
	}

	return ArraySegment[byte]{array: unsafe.Slice((*byte)(p), offset+count), offset: offset, count: count}
}

func (v Value) runeSegment(p runesegptr) ArraySegment[rune] {
	offset, count := unpackSegment(v.num)
	if p == nil {
		return ArraySegment[rune]{offset: offset, count: count}
	}

	return ArraySegment[rune]{array: unsafe.Slice((*rune)(p), offset+count), offset: offset, count: count}
}
