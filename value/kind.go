package value

import (
	"reflect"
	"sync/atomic"
	"time"
)

// Kind identifies how a Value stores its content.
type Kind uint8

const (
	KindInvalid       Kind = iota // KindInvalid is the kind of an unset Value.
	KindBool                      // KindBool stores a bool.
	KindInt                       // KindInt stores an int.
	KindInt8                      // KindInt8 stores an int8.
	KindInt16                     // KindInt16 stores an int16.
	KindInt32                     // KindInt32 stores an int32.
	KindInt64                     // KindInt64 stores an int64.
	KindUint                      // KindUint stores a uint.
	KindUint8                     // KindUint8 stores a uint8.
	KindUint16                    // KindUint16 stores a uint16.
	KindUint32                    // KindUint32 stores a uint32.
	KindUint64                    // KindUint64 stores a uint64.
	KindUintptr                   // KindUintptr stores a uintptr.
	KindFloat32                   // KindFloat32 stores a float32.
	KindFloat64                   // KindFloat64 stores a float64.
	KindDuration                  // KindDuration stores a time.Duration.
	KindTime                      // KindTime stores a UTC time.Time as ticks.
	KindOffsetTime                // KindOffsetTime stores a fixed-offset time.Time packed with its offset.
	KindString                    // KindString stores a string.
	KindStringSegment             // KindStringSegment stores a StringSegment.
	KindByteSegment               // KindByteSegment stores an ArraySegment[byte].
	KindRuneSegment               // KindRuneSegment stores an ArraySegment[rune].
	KindEnum                      // KindEnum stores a named integer type.
	KindAny                       // KindAny stores a boxed value.
)

var kindNames = [...]string{
	KindInvalid:       "Invalid",
	KindBool:          "Bool",
	KindInt:           "Int",
	KindInt8:          "Int8",
	KindInt16:         "Int16",
	KindInt32:         "Int32",
	KindInt64:         "Int64",
	KindUint:          "Uint",
	KindUint8:         "Uint8",
	KindUint16:        "Uint16",
	KindUint32:        "Uint32",
	KindUint64:        "Uint64",
	KindUintptr:       "Uintptr",
	KindFloat32:       "Float32",
	KindFloat64:       "Float64",
	KindDuration:      "Duration",
	KindTime:          "Time",
	KindOffsetTime:    "OffsetTime",
	KindString:        "String",
	KindStringSegment: "StringSegment",
	KindByteSegment:   "ByteSegment",
	KindRuneSegment:   "RuneSegment",
	KindEnum:          "Enum",
	KindAny:           "Any",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return "Unknown"
}

// typeTag identifies the type whose bits are stored in Value.num.
//
// Scalar tags are package-level singletons; enum tags are created once per
// named integer type by enumTagFor. Tags are never copied, so pointer equality
// is type equality.
type typeTag struct {
	kind   Kind
	rtype  reflect.Type
	size   uint8 // width in bytes of the stored integer
	signed bool

	// enum-only fields
	stringer bool
	names    atomic.Pointer[enumNames]
}

func newTag[T any](kind Kind, size uint8, signed bool) *typeTag {
	return &typeTag{kind: kind, rtype: reflect.TypeFor[T](), size: size, signed: signed}
}

var (
	tagBool       = newTag[bool](KindBool, 1, false)
	tagInt        = newTag[int](KindInt, 8, true)
	tagInt8       = newTag[int8](KindInt8, 1, true)
	tagInt16      = newTag[int16](KindInt16, 2, true)
	tagInt32      = newTag[int32](KindInt32, 4, true)
	tagInt64      = newTag[int64](KindInt64, 8, true)
	tagUint       = newTag[uint](KindUint, 8, false)
	tagUint8      = newTag[uint8](KindUint8, 1, false)
	tagUint16     = newTag[uint16](KindUint16, 2, false)
	tagUint32     = newTag[uint32](KindUint32, 4, false)
	tagUint64     = newTag[uint64](KindUint64, 8, false)
	tagUintptr    = newTag[uintptr](KindUintptr, 8, false)
	tagFloat32    = newTag[float32](KindFloat32, 4, false)
	tagFloat64    = newTag[float64](KindFloat64, 8, false)
	tagDuration   = newTag[time.Duration](KindDuration, 8, true)
	tagTime       = newTag[time.Time](KindTime, 8, true)
	tagOffsetTime = newTag[time.Time](KindOffsetTime, 8, false)
)

// Markers stored in Value.any for string-backed and slice-backed kinds.
// They point at the first element of the backing store, which keeps it alive.
type (
	stringptr  *byte
	strsegptr  *byte
	bytesegptr *byte
	runesegptr *rune
)

var (
	stringType        = reflect.TypeFor[string]()
	stringSegmentType = reflect.TypeFor[StringSegment]()
	byteSegmentType   = reflect.TypeFor[ArraySegment[byte]]()
	runeSegmentType   = reflect.TypeFor[ArraySegment[rune]]()
)
