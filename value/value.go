package value

import (
	"math"
	"reflect"
	"time"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Value holds any Go value. Scalars, strings, durations, most times and
// segments are stored without allocation.
//
// The zero Value is unset. Values are immutable and safe to copy.
type Value struct {
	_ [0]func() // disallow ==

	// num holds the scalar bits, string length or packed segment range.
	num uint64

	// any is one of
	//   - nil: the Value is unset
	//   - *typeTag: num holds the bits of that type
	//   - stringptr: num is the string length
	//   - strsegptr, bytesegptr, runesegptr: num is offset<<32 | count
	//   - anything else: the boxed value
	any any
}

// Bool returns a Value for a bool.
func Bool(b bool) Value {
	var n uint64
	if b {
		n = 1
	}

	return Value{num: n, any: tagBool}
}

// Int returns a Value for an int.
func Int(n int) Value { return Value{num: uint64(n), any: tagInt} }

// Int8 returns a Value for an int8.
func Int8(n int8) Value { return Value{num: uint64(n), any: tagInt8} }

// Int16 returns a Value for an int16.
func Int16(n int16) Value { return Value{num: uint64(n), any: tagInt16} }

// Int32 returns a Value for an int32.
func Int32(n int32) Value { return Value{num: uint64(n), any: tagInt32} }

// Int64 returns a Value for an int64.
func Int64(n int64) Value { return Value{num: uint64(n), any: tagInt64} }

// Uint returns a Value for a uint.
func Uint(n uint) Value { return Value{num: uint64(n), any: tagUint} }

// Uint8 returns a Value for a uint8.
func Uint8(n uint8) Value { return Value{num: uint64(n), any: tagUint8} }

// Uint16 returns a Value for a uint16.
func Uint16(n uint16) Value { return Value{num: uint64(n), any: tagUint16} }

// Uint32 returns a Value for a uint32.
func Uint32(n uint32) Value { return Value{num: uint64(n), any: tagUint32} }

// Uint64 returns a Value for a uint64.
func Uint64(n uint64) Value { return Value{num: n, any: tagUint64} }

// Uintptr returns a Value for a uintptr.
func Uintptr(n uintptr) Value { return Value{num: uint64(n), any: tagUintptr} }

// Float32 returns a Value for a float32. NaN payloads are preserved.
func Float32(f float32) Value {
	return Value{num: uint64(math.Float32bits(f)), any: tagFloat32}
}

// Float64 returns a Value for a float64. NaN payloads are preserved.
func Float64(f float64) Value {
	return Value{num: math.Float64bits(f), any: tagFloat64}
}

// Duration returns a Value for a time.Duration.
func Duration(d time.Duration) Value {
	return Value{num: uint64(d), any: tagDuration}
}

// Time returns a Value for a time.Time.
//
// UTC times and times in anonymous fixed zones are stored inline when their
// ticks fit; anything else is boxed with the monotonic reading stripped.
func Time(t time.Time) Value {
	if t.Location() == time.UTC {
		if ticks, ok := Ticks(t); ok {
			return Value{num: uint64(ticks), any: tagTime}
		}
	} else if num, ok := PackOffsetTime(t); ok {
		return Value{num: num, any: tagOffsetTime}
	}

	return Value{any: t.Round(0)}
}

// String returns a Value for a string.
func String(s string) Value {
	return Value{num: uint64(len(s)), any: stringptr(unsafe.StringData(s))}
}

// Enum returns a Value for an enum. T must be a named integer type; for
// unnamed integer types Enum is equivalent to Of.
func Enum[T constraints.Integer](x T) Value {
	t := enumTagFor(reflect.TypeFor[T]())
	if t == nil {
		return Of(x)
	}

	return Value{num: loadBits(unsafe.Pointer(&x), t.size, t.signed), any: t}
}

// Of returns a Value for x.
//
// Directly stored types never allocate. A pointer to a directly stored type or
// to an enum is the nullable form of that type: nil gives an unset Value.
// Values of interface type are converted as by Box.
func Of[T any](x T) Value {
	switch p := any(&x).(type) {
	case *bool:
		return Bool(*p)
	case *int:
		return Int(*p)
	case *int8:
		return Int8(*p)
	case *int16:
		return Int16(*p)
	case *int32:
		return Int32(*p)
	case *int64:
		return Int64(*p)
	case *uint:
		return Uint(*p)
	case *uint8:
		return Uint8(*p)
	case *uint16:
		return Uint16(*p)
	case *uint32:
		return Uint32(*p)
	case *uint64:
		return Uint64(*p)
	case *uintptr:
		return Uintptr(*p)
	case *float32:
		return Float32(*p)
	case *float64:
		return Float64(*p)
	case *time.Duration:
		return Duration(*p)
	case *time.Time:
		return Time(*p)
	case *string:
		return String(*p)
	case *StringSegment:
		return StringSegmentValue(*p)
	case *ArraySegment[byte]:
		return ByteSegmentValue(*p)
	case *ArraySegment[rune]:
		return RuneSegmentValue(*p)
	case *Value:
		return *p
	case **bool:
		return ofPtr(*p)
	case **int:
		return ofPtr(*p)
	case **int8:
		return ofPtr(*p)
	case **int16:
		return ofPtr(*p)
	case **int32:
		return ofPtr(*p)
	case **int64:
		return ofPtr(*p)
	case **uint:
		return ofPtr(*p)
	case **uint8:
		return ofPtr(*p)
	case **uint16:
		return ofPtr(*p)
	case **uint32:
		return ofPtr(*p)
	case **uint64:
		return ofPtr(*p)
	case **uintptr:
		return ofPtr(*p)
	case **float32:
		return ofPtr(*p)
	case **float64:
		return ofPtr(*p)
	case **time.Duration:
		return ofPtr(*p)
	case **time.Time:
		return ofPtr(*p)
	case **string:
		return ofPtr(*p)
	}

	rt := reflect.TypeFor[T]()
	if t := enumTagFor(rt); t != nil {
		return Value{num: loadBits(unsafe.Pointer(&x), t.size, t.signed), any: t}
	}

	switch rt.Kind() {
	case reflect.Interface:
		return Box(any(x))
	case reflect.Pointer:
		if t := enumTagFor(rt.Elem()); t != nil {
			ptr := *(*unsafe.Pointer)(unsafe.Pointer(&x))
			if ptr == nil {
				return Value{}
			}

			return Value{num: loadBits(ptr, t.size, t.signed), any: t}
		}
	}

	return Value{any: x}
}

func ofPtr[P any](p *P) Value {
	if p == nil {
		return Value{}
	}

	return Of(*p)
}

// Box returns a Value for x when only its dynamic type is known.
//
// Dynamic types that Of stores directly are unboxed, a Value is returned
// unchanged and nil gives an unset Value. Everything else is boxed.
func Box(x any) Value {
	switch v := x.(type) {
	case nil:
		return Value{}
	case Value:
		return v
	case bool:
		return Bool(v)
	case int:
		return Int(v)
	case int8:
		return Int8(v)
	case int16:
		return Int16(v)
	case int32:
		return Int32(v)
	case int64:
		return Int64(v)
	case uint:
		return Uint(v)
	case uint8:
		return Uint8(v)
	case uint16:
		return Uint16(v)
	case uint32:
		return Uint32(v)
	case uint64:
		return Uint64(v)
	case uintptr:
		return Uintptr(v)
	case float32:
		return Float32(v)
	case float64:
		return Float64(v)
	case time.Duration:
		return Duration(v)
	case time.Time:
		return Time(v)
	case string:
		return String(v)
	case StringSegment:
		return StringSegmentValue(v)
	case ArraySegment[byte]:
		return ByteSegmentValue(v)
	case ArraySegment[rune]:
		return RuneSegmentValue(v)
	case *bool:
		return ofPtr(v)
	case *int:
		return ofPtr(v)
	case *int8:
		return ofPtr(v)
	case *int16:
		return ofPtr(v)
	case *int32:
		return ofPtr(v)
	case *int64:
		return ofPtr(v)
	case *uint:
		return ofPtr(v)
	case *uint8:
		return ofPtr(v)
	case *uint16:
		return ofPtr(v)
	case *uint32:
		return ofPtr(v)
	case *uint64:
		return ofPtr(v)
	case *uintptr:
		return ofPtr(v)
	case *float32:
		return ofPtr(v)
	case *float64:
		return ofPtr(v)
	case *time.Duration:
		return ofPtr(v)
	case *time.Time:
		return ofPtr(v)
	case *string:
		return ofPtr(v)
	}

	rv := reflect.ValueOf(x)
	if t := enumTagFor(rv.Type()); t != nil {
		return Value{num: reflectBits(rv, t.signed), any: t}
	}

	if rv.Kind() == reflect.Pointer {
		if t := enumTagFor(rv.Type().Elem()); t != nil {
			if rv.IsNil() {
				return Value{}
			}

			return Value{num: reflectBits(rv.Elem(), t.signed), any: t}
		}
	}

	return Value{any: x}
}

func reflectBits(rv reflect.Value, signed bool) uint64 {
	if signed {
		return uint64(rv.Int())
	}

	return rv.Uint()
}

// Kind returns the storage kind of v.
func (v Value) Kind() Kind {
	switch x := v.any.(type) {
	case nil:
		return KindInvalid
	case *typeTag:
		return x.kind
	case stringptr:
		return KindString
	case strsegptr:
		return KindStringSegment
	case bytesegptr:
		return KindByteSegment
	case runesegptr:
		return KindRuneSegment
	default:
		return KindAny
	}
}

// Type returns the type of the value held by v, or nil when v is unset.
func (v Value) Type() reflect.Type {
	switch x := v.any.(type) {
	case nil:
		return nil
	case *typeTag:
		return x.rtype
	case stringptr:
		return stringType
	case strsegptr:
		return stringSegmentType
	case bytesegptr:
		return byteSegmentType
	case runesegptr:
		return runeSegmentType
	default:
		return reflect.TypeOf(x)
	}
}

// IsUnset reports whether v holds nothing.
func (v Value) IsUnset() bool {
	return v.any == nil
}

// Any returns the value held by v as an interface, or nil when v is unset.
func (v Value) Any() any {
	switch x := v.any.(type) {
	case nil:
		return nil
	case *typeTag:
		return x.materialize(v.num)
	case stringptr:
		return v.str(x)
	case strsegptr:
		return v.stringSegment(x)
	case bytesegptr:
		return v.byteSegment(x)
	case runesegptr:
		return v.runeSegment(x)
	default:
		return x
	}
}

func (v Value) str(p stringptr) string {
	return unsafe.String((*byte)(p), int(v.num))
}

func (t *typeTag) materialize(num uint64) any {
	switch t.kind {
	case KindBool:
		return num != 0
	case KindInt:
		return int(num)
	case KindInt8:
		return int8(num)
	case KindInt16:
		return int16(num)
	case KindInt32:
		return int32(num)
	case KindInt64:
		return int64(num)
	case KindUint:
		return uint(num)
	case KindUint8:
		return uint8(num)
	case KindUint16:
		return uint16(num)
	case KindUint32:
		return uint32(num)
	case KindUint64:
		return num
	case KindUintptr:
		return uintptr(num)
	case KindFloat32:
		return math.Float32frombits(uint32(num))
	case KindFloat64:
		return math.Float64frombits(num)
	case KindDuration:
		return time.Duration(num)
	case KindTime:
		return FromTicks(int64(num))
	case KindOffsetTime:
		return UnpackOffsetTime(num)
	case KindEnum:
		rv := reflect.New(t.rtype).Elem()
		storeBits(rv.Addr().UnsafePointer(), t.size, num)

		return rv.Interface()
	default:
		return nil
	}
}

// String returns the text of v formatted without a spec.
func (v Value) String() string {
	if p, ok := v.any.(stringptr); ok {
		return v.str(p)
	}

	b, err := v.AppendFormat(nil, "")
	if err != nil {
		return "!" + err.Error()
	}

	return string(b)
}

// Equal reports whether v and w hold the same type and value.
//
// Floats compare numerically, strings and segments by content, and boxed
// values with reflect.DeepEqual.
func (v Value) Equal(w Value) bool {
	k := v.Kind()
	if k != w.Kind() {
		return false
	}

	switch k {
	case KindInvalid:
		return true
	case KindFloat32:
		return math.Float32frombits(uint32(v.num)) == math.Float32frombits(uint32(w.num))
	case KindFloat64:
		return math.Float64frombits(v.num) == math.Float64frombits(w.num)
	case KindString:
		return v.str(v.any.(stringptr)) == w.str(w.any.(stringptr))
	case KindStringSegment:
		a, b := v.stringSegment(v.any.(strsegptr)), w.stringSegment(w.any.(strsegptr))
		return a.offset == b.offset && a.String() == b.String()
	case KindByteSegment:
		a, b := v.byteSegment(v.any.(bytesegptr)), w.byteSegment(w.any.(bytesegptr))
		return a.offset == b.offset && string(a.Slice()) == string(b.Slice())
	case KindRuneSegment:
		a, b := v.runeSegment(v.any.(runesegptr)), w.runeSegment(w.any.(runesegptr))
		return a.offset == b.offset && string(a.Slice()) == string(b.Slice())
	case KindAny:
		return reflect.DeepEqual(v.any, w.any)
	default:
		return v.any == w.any && v.num == w.num
	}
}
