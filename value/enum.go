package value

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"sync"
	"unsafe"

	"go.uber.org/zap"
	"golang.org/x/exp/constraints"

	"github.com/arloliu/touki/errs"
	"github.com/arloliu/touki/internal/options"
)

// enumTags maps a reflect.Type to its *typeTag, or to a nil *typeTag for
// types that are not enums.
var enumTags sync.Map

var stringerType = reflect.TypeFor[fmt.Stringer]()

// enumTagFor returns the tag of rt, creating it on first use.
// It returns nil when rt is not a named integer type.
func enumTagFor(rt reflect.Type) *typeTag {
	if t, ok := enumTags.Load(rt); ok {
		return t.(*typeTag)
	}

	var t *typeTag
	if isEnumType(rt) {
		t = newEnumTag(rt)
	}

	actual, loaded := enumTags.LoadOrStore(rt, t)
	if !loaded && t != nil {
		Logger().Debug("enum tag created",
			zap.Stringer("type", rt),
			zap.Uint8("size", t.size),
			zap.Bool("signed", t.signed))
	}

	return actual.(*typeTag)
}

func isEnumType(rt reflect.Type) bool {
	if rt == nil || rt.PkgPath() == "" {
		return false
	}

	switch rt.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	default:
		return false
	}
}

func newEnumTag(rt reflect.Type) *typeTag {
	t := &typeTag{
		kind:     KindEnum,
		rtype:    rt,
		size:     uint8(rt.Size()),
		stringer: rt.Implements(stringerType),
	}

	switch rt.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		t.signed = true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
	default:
		panic(fmt.Sprintf("value: %s is not an integer type", rt))
	}

	return t
}

// loadBits reads an integer of the given width from p, sign-extending when
// signed is set.
func loadBits(p unsafe.Pointer, size uint8, signed bool) uint64 {
	switch size {
	case 1:
		if signed {
			return uint64(int64(*(*int8)(p)))
		}

		return uint64(*(*uint8)(p))
	case 2:
		if signed {
			return uint64(int64(*(*int16)(p)))
		}

		return uint64(*(*uint16)(p))
	case 4:
		if signed {
			return uint64(int64(*(*int32)(p)))
		}

		return uint64(*(*uint32)(p))
	default:
		return *(*uint64)(p)
	}
}

// storeBits writes the low size bytes of bits to p.
func storeBits(p unsafe.Pointer, size uint8, bits uint64) {
	switch size {
	case 1:
		*(*uint8)(p) = uint8(bits)
	case 2:
		*(*uint16)(p) = uint16(bits)
	case 4:
		*(*uint32)(p) = uint32(bits)
	default:
		*(*uint64)(p) = bits
	}
}

// mask returns bits truncated to the tag width.
func (t *typeTag) mask(bits uint64) uint64 {
	if t.size >= 8 {
		return bits
	}

	return bits & (1<<(8*uint(t.size)) - 1)
}

// EnumConfig holds the settings applied by RegisterEnum.
type EnumConfig struct {
	flags bool
}

// EnumOption configures RegisterEnum.
type EnumOption = options.Option[*EnumConfig]

// WithFlags marks the enum as a bit set. Values without an exact name are
// rendered as the comma separated names of their set bits.
func WithFlags() EnumOption {
	return options.NoError(func(cfg *EnumConfig) {
		cfg.flags = true
	})
}

type enumName struct {
	bits uint64 // masked to the enum width
	name string
}

type enumNames struct {
	flags   bool
	byValue map[uint64]string
	sorted  []enumName // ascending by bits
}

// RegisterEnum attaches display names to the enum type T.
//
// Registering again replaces the previous names. Values already stored keep
// working and pick up the new names the next time they are formatted.
func RegisterEnum[T constraints.Integer](names map[T]string, opts ...EnumOption) error {
	rt := reflect.TypeFor[T]()
	t := enumTagFor(rt)
	if t == nil {
		return fmt.Errorf("%w: %s is not a named integer type", errs.ErrInvalidOption, rt)
	}

	cfg := &EnumConfig{}
	if err := options.Apply(cfg, opts...); err != nil {
		return err
	}

	info := &enumNames{
		flags:   cfg.flags,
		byValue: make(map[uint64]string, len(names)),
		sorted:  make([]enumName, 0, len(names)),
	}
	for v, name := range names {
		bits := t.mask(uint64(v))
		info.byValue[bits] = name
		info.sorted = append(info.sorted, enumName{bits: bits, name: name})
	}
	slices.SortFunc(info.sorted, func(a, b enumName) int {
		return cmp.Compare(a.bits, b.bits)
	})

	t.names.Store(info)
	Logger().Debug("enum names registered",
		zap.Stringer("type", rt),
		zap.Int("names", len(names)),
		zap.Bool("flags", cfg.flags))

	return nil
}

// appendFlags appends the names of the set bits of bits in ascending order.
// It reports false when some bit has no name.
func (n *enumNames) appendFlags(dst []byte, bits uint64) ([]byte, bool) {
	if bits == 0 {
		name, ok := n.byValue[0]
		if !ok {
			return dst, false
		}

		return append(dst, name...), true
	}

	var picked [64]int
	count := 0
	remaining := bits
	for i := len(n.sorted) - 1; i >= 0 && remaining != 0; i-- {
		b := n.sorted[i].bits
		if b != 0 && remaining&b == b {
			picked[count] = i
			count++
			remaining &^= b
		}
	}
	if remaining != 0 {
		return dst, false
	}

	for i := count - 1; i >= 0; i-- {
		dst = append(dst, n.sorted[picked[i]].name...)
		if i > 0 {
			dst = append(dst, ", "...)
		}
	}

	return dst, true
}
