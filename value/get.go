package value

import (
	"fmt"
	"math"
	"reflect"
	"time"
	"unsafe"

	"github.com/arloliu/touki/errs"
)

// TryGet returns the value held by v as a T.
//
// Directly stored types match only their own tag. An unset Value converts to
// the zero value of pointer, interface, slice, map, func and chan types.
// A pointer type *P accepts a Value holding a P. An interface type accepts any
// value implementing it. Boxed values match their exact dynamic type.
func TryGet[T any](v Value) (T, bool) {
	var out T

	switch p := any(&out).(type) {
	case *bool:
		if v.any == tagBool {
			*p = v.num != 0
			return out, true
		}
	case *int:
		if v.any == tagInt {
			*p = int(v.num)
			return out, true
		}
	case *int8:
		if v.any == tagInt8 {
			*p = int8(v.num)
			return out, true
		}
	case *int16:
		if v.any == tagInt16 {
			*p = int16(v.num)
			return out, true
		}
	case *int32:
		if v.any == tagInt32 {
			*p = int32(v.num)
			return out, true
		}
	case *int64:
		if v.any == tagInt64 {
			*p = int64(v.num)
			return out, true
		}
	case *uint:
		if v.any == tagUint {
			*p = uint(v.num)
			return out, true
		}
	case *uint8:
		if v.any == tagUint8 {
			*p = uint8(v.num)
			return out, true
		}
	case *uint16:
		if v.any == tagUint16 {
			*p = uint16(v.num)
			return out, true
		}
	case *uint32:
		if v.any == tagUint32 {
			*p = uint32(v.num)
			return out, true
		}
	case *uint64:
		if v.any == tagUint64 {
			*p = v.num
			return out, true
		}
	case *uintptr:
		if v.any == tagUintptr {
			*p = uintptr(v.num)
			return out, true
		}
	case *float32:
		if v.any == tagFloat32 {
			*p = math.Float32frombits(uint32(v.num))
			return out, true
		}
	case *float64:
		if v.any == tagFloat64 {
			*p = math.Float64frombits(v.num)
			return out, true
		}
	case *time.Duration:
		if v.any == tagDuration {
			*p = time.Duration(v.num)
			return out, true
		}
	case *string:
		if sp, ok := v.any.(stringptr); ok {
			*p = v.str(sp)
			return out, true
		}
	case *Value:
		*p = v
		return out, true
	case *time.Time:
		switch x := v.any.(type) {
		case *typeTag:
			switch x {
			case tagTime:
				*p = FromTicks(int64(v.num))
				return out, true
			case tagOffsetTime:
				*p = UnpackOffsetTime(v.num)
				return out, true
			}
		case time.Time:
			*p = x
			return out, true
		}
	case *StringSegment:
		switch x := v.any.(type) {
		case strsegptr:
			*p = v.stringSegment(x)
			return out, true
		case StringSegment:
			*p = x
			return out, true
		}
	case *ArraySegment[byte]:
		switch x := v.any.(type) {
		case bytesegptr:
			*p = v.byteSegment(x)
			return out, true
		case ArraySegment[byte]:
			*p = x
			return out, true
		}
	case *ArraySegment[rune]:
		switch x := v.any.(type) {
		case runesegptr:
			*p = v.runeSegment(x)
			return out, true
		case ArraySegment[rune]:
			*p = x
			return out, true
		}
	default:
		return tryGetSlow[T](v)
	}

	return out, false
}

// tryGetSlow handles enums, boxed values, nullable wrapping and interfaces.
func tryGetSlow[T any](v Value) (T, bool) {
	var out T
	rt := reflect.TypeFor[T]()

	switch x := v.any.(type) {
	case nil:
		return out, nilable(rt)
	case *typeTag:
		if x.rtype == rt && x.kind == KindEnum {
			storeBits(unsafe.Pointer(&out), x.size, v.num)
			return out, true
		}
	case stringptr, strsegptr, bytesegptr, runesegptr:
	default:
		y, ok := x.(T)
		return y, ok
	}

	switch rt.Kind() {
	case reflect.Pointer:
		if rt.Elem() == v.Type() {
			ptr := reflect.New(rt.Elem())
			ptr.Elem().Set(reflect.ValueOf(v.Any()))

			return ptr.Interface().(T), true
		}
	case reflect.Interface:
		y, ok := v.Any().(T)
		return y, ok
	}

	return out, false
}

func nilable(rt reflect.Type) bool {
	switch rt.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}

// As returns the value held by v as a T, or an error wrapping
// errs.ErrInvalidCast.
func As[T any](v Value) (T, error) {
	out, ok := TryGet[T](v)
	if !ok {
		return out, fmt.Errorf("%w: %s to %s", errs.ErrInvalidCast, typeName(v.Type()), reflect.TypeFor[T]())
	}

	return out, nil
}

// MustAs is like As but panics on failure.
func MustAs[T any](v Value) T {
	out, err := As[T](v)
	if err != nil {
		panic(err)
	}

	return out
}

func typeName(rt reflect.Type) string {
	if rt == nil {
		return "<unset>"
	}

	return rt.String()
}
