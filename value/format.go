package value

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"
	"unicode/utf8"
)

// Appender is implemented by types that format themselves with a spec.
// Boxed values implementing it are formatted through it.
type Appender interface {
	AppendFormat(dst []byte, spec string) ([]byte, error)
}

const (
	layoutRFC1123   = "Mon, 02 Jan 2006 15:04:05 GMT"
	layoutSortable  = "2006-01-02T15:04:05"
	layoutUniversal = "2006-01-02 15:04:05Z"
)

// AppendFormat appends the text of v rendered with spec to dst.
//
// An unset Value appends nothing. The error wraps errs.ErrInvalidFormatSpec
// when the held type rejects spec; dst is returned unchanged in that case.
func (v Value) AppendFormat(dst []byte, spec string) ([]byte, error) {
	t, ok := v.any.(*typeTag)
	if !ok {
		return v.appendUntagged(dst, spec)
	}

	switch t {
	case tagInt32:
		return appendInteger(dst, uint64(int64(int32(v.num))), true, 32, spec)
	case tagInt64:
		return appendInteger(dst, v.num, true, 64, spec)
	case tagBool:
		return strconv.AppendBool(dst, v.num != 0), nil
	case tagUint32:
		return appendInteger(dst, uint64(uint32(v.num)), false, 32, spec)
	}

	switch t.kind {
	case KindInt, KindInt8, KindInt16:
		return appendInteger(dst, v.num, true, 8*int(t.size), spec)
	case KindUint, KindUint8, KindUint16, KindUint64, KindUintptr:
		return appendInteger(dst, v.num, false, 8*int(t.size), spec)
	case KindFloat32:
		return appendFloat(dst, float64(math.Float32frombits(uint32(v.num))), 32, spec)
	case KindFloat64:
		return appendFloat(dst, math.Float64frombits(v.num), 64, spec)
	case KindEnum:
		return appendEnum(dst, t, v.num, spec)
	case KindDuration:
		return appendDuration(dst, time.Duration(v.num), spec)
	case KindTime:
		return appendTime(dst, FromTicks(int64(v.num)), spec)
	case KindOffsetTime:
		return appendTime(dst, UnpackOffsetTime(v.num), spec)
	default:
		return dst, invalidSpec(spec)
	}
}

func (v Value) appendUntagged(dst []byte, spec string) ([]byte, error) {
	switch x := v.any.(type) {
	case nil:
		return dst, nil
	case stringptr:
		return append(dst, v.str(x)...), nil
	case strsegptr:
		s := v.stringSegment(x)
		return append(dst, s.source[s.offset:]...), nil
	case bytesegptr:
		return append(dst, v.byteSegment(x).Slice()...), nil
	case runesegptr:
		for _, r := range v.runeSegment(x).Slice() {
			dst = utf8.AppendRune(dst, r)
		}

		return dst, nil
	default:
		return appendBoxed(dst, x, spec)
	}
}

func appendBoxed(dst []byte, x any, spec string) ([]byte, error) {
	switch x := x.(type) {
	case Appender:
		return x.AppendFormat(dst, spec)
	case time.Time:
		return appendTime(dst, x, spec)
	case fmt.Stringer:
		return append(dst, x.String()...), nil
	case error:
		return append(dst, x.Error()...), nil
	}

	if spec != "" {
		rv := reflect.ValueOf(x)
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return appendInteger(dst, uint64(rv.Int()), true, rv.Type().Bits(), spec)
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			return appendInteger(dst, rv.Uint(), false, rv.Type().Bits(), spec)
		case reflect.Float32, reflect.Float64:
			return appendFloat(dst, rv.Float(), rv.Type().Bits(), spec)
		}
	}

	return fmt.Append(dst, x), nil
}

func appendTime(dst []byte, t time.Time, spec string) ([]byte, error) {
	switch spec {
	case "", "o", "O":
		return t.AppendFormat(dst, time.RFC3339Nano), nil
	case "r", "R":
		return t.UTC().AppendFormat(dst, layoutRFC1123), nil
	case "s":
		return t.AppendFormat(dst, layoutSortable), nil
	case "u":
		return t.UTC().AppendFormat(dst, layoutUniversal), nil
	default:
		return t.AppendFormat(dst, spec), nil
	}
}

func appendDuration(dst []byte, d time.Duration, spec string) ([]byte, error) {
	switch spec {
	case "":
		return append(dst, d.String()...), nil
	case "c":
		return appendDurationConstant(dst, d), nil
	default:
		return appendInteger(dst, uint64(d), true, 64, spec)
	}
}

// appendDurationConstant renders d as [-][d.]hh:mm:ss[.fffffff].
func appendDurationConstant(dst []byte, d time.Duration) []byte {
	mag := uint64(d)
	if d < 0 {
		dst = append(dst, '-')
		mag = -mag
	}

	secs := mag / uint64(time.Second)
	frac := (mag % uint64(time.Second)) / nanosPerTick

	if days := secs / 86400; days > 0 {
		dst = strconv.AppendUint(dst, days, 10)
		dst = append(dst, '.')
	}

	dst = appendDigits(dst, secs/3600%24, 10, 2, false)
	dst = append(dst, ':')
	dst = appendDigits(dst, secs/60%60, 10, 2, false)
	dst = append(dst, ':')
	dst = appendDigits(dst, secs%60, 10, 2, false)

	if frac != 0 {
		dst = append(dst, '.')
		dst = appendDigits(dst, frac, 10, 7, false)
	}

	return dst
}

func appendEnum(dst []byte, t *typeTag, bits uint64, spec string) ([]byte, error) {
	switch spec {
	case "", "G", "g":
		if names := t.names.Load(); names != nil {
			if name, ok := names.byValue[t.mask(bits)]; ok {
				return append(dst, name...), nil
			}
			if names.flags {
				if out, ok := names.appendFlags(dst, t.mask(bits)); ok {
					return out, nil
				}
			}
		}
		if t.stringer {
			return append(dst, t.materialize(bits).(fmt.Stringer).String()...), nil
		}

		return appendInteger(dst, bits, t.signed, 8*int(t.size), "")
	case "F", "f":
		if names := t.names.Load(); names != nil {
			if name, ok := names.byValue[t.mask(bits)]; ok {
				return append(dst, name...), nil
			}
			if out, ok := names.appendFlags(dst, t.mask(bits)); ok {
				return out, nil
			}
		}

		return appendInteger(dst, bits, t.signed, 8*int(t.size), "")
	case "D", "d":
		return appendInteger(dst, bits, t.signed, 8*int(t.size), "")
	case "X", "x":
		return appendDigits(dst, t.mask(bits), 16, 2*int(t.size), spec == "X"), nil
	default:
		return dst, invalidSpec(spec)
	}
}
