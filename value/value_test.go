package value

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/touki/errs"
)

type point struct {
	X, Y int
}

type label string

func (l label) String() string { return "label:" + string(l) }

type color uint8

type level int8

func (l level) String() string {
	switch l {
	case -1:
		return "debug"
	case 0:
		return "info"
	default:
		return fmt.Sprintf("level(%d)", int8(l))
	}
}

var sink Value

func requireRoundTrip[T comparable](t *testing.T, x T, kind Kind) {
	t.Helper()

	v := Of(x)
	require.Equal(t, kind, v.Kind())
	require.Equal(t, reflect.TypeFor[T](), v.Type())
	require.False(t, v.IsUnset())

	got, ok := TryGet[T](v)
	require.True(t, ok)
	require.Equal(t, x, got)
	require.Equal(t, x, v.Any())
}

func TestRoundTrip(t *testing.T) {
	t.Run("bool", func(t *testing.T) {
		requireRoundTrip(t, true, KindBool)
		requireRoundTrip(t, false, KindBool)
	})

	t.Run("signed", func(t *testing.T) {
		requireRoundTrip(t, math.MinInt, KindInt)
		requireRoundTrip(t, math.MaxInt, KindInt)
		requireRoundTrip(t, int8(math.MinInt8), KindInt8)
		requireRoundTrip(t, int8(math.MaxInt8), KindInt8)
		requireRoundTrip(t, int16(math.MinInt16), KindInt16)
		requireRoundTrip(t, int16(math.MaxInt16), KindInt16)
		requireRoundTrip(t, int32(math.MinInt32), KindInt32)
		requireRoundTrip(t, int32(math.MaxInt32), KindInt32)
		requireRoundTrip(t, int64(math.MinInt64), KindInt64)
		requireRoundTrip(t, int64(math.MaxInt64), KindInt64)
		requireRoundTrip(t, int64(0), KindInt64)
	})

	t.Run("unsigned", func(t *testing.T) {
		requireRoundTrip(t, uint(math.MaxUint), KindUint)
		requireRoundTrip(t, uint8(math.MaxUint8), KindUint8)
		requireRoundTrip(t, uint16(math.MaxUint16), KindUint16)
		requireRoundTrip(t, uint32(math.MaxUint32), KindUint32)
		requireRoundTrip(t, uint64(math.MaxUint64), KindUint64)
		requireRoundTrip(t, uintptr(0xdeadbeef), KindUintptr)
	})

	t.Run("float", func(t *testing.T) {
		requireRoundTrip(t, float32(math.MaxFloat32), KindFloat32)
		requireRoundTrip(t, float32(math.SmallestNonzeroFloat32), KindFloat32)
		requireRoundTrip(t, math.MaxFloat64, KindFloat64)
		requireRoundTrip(t, math.Inf(1), KindFloat64)
		requireRoundTrip(t, math.Inf(-1), KindFloat64)
		requireRoundTrip(t, math.Copysign(0, -1), KindFloat64)
	})

	t.Run("nan keeps payload", func(t *testing.T) {
		nan := math.Float64frombits(0x7ff8_0000_dead_beef)
		got, ok := TryGet[float64](Float64(nan))
		require.True(t, ok)
		require.Equal(t, math.Float64bits(nan), math.Float64bits(got))

		nan32 := math.Float32frombits(0x7fc0_beef)
		got32, ok := TryGet[float32](Float32(nan32))
		require.True(t, ok)
		require.Equal(t, math.Float32bits(nan32), math.Float32bits(got32))
	})

	t.Run("duration", func(t *testing.T) {
		requireRoundTrip(t, time.Duration(math.MinInt64), KindDuration)
		requireRoundTrip(t, 90*time.Minute, KindDuration)
	})

	t.Run("string", func(t *testing.T) {
		requireRoundTrip(t, "", KindString)
		requireRoundTrip(t, "hello, 世界", KindString)
	})
}

func TestConstructorsMatchOf(t *testing.T) {
	require.True(t, Int32(5).Equal(Of(int32(5))))
	require.True(t, Uint16(7).Equal(Box(uint16(7))))
	require.True(t, String("x").Equal(Box("x")))
	require.True(t, Float64(2.5).Equal(Of(2.5)))
	require.True(t, Duration(time.Second).Equal(Box(time.Second)))
}

func TestCrossTypeRejection(t *testing.T) {
	v := Int32(5)

	_, ok := TryGet[int64](v)
	require.False(t, ok)
	_, ok = TryGet[uint32](v)
	require.False(t, ok)
	_, ok = TryGet[string](v)
	require.False(t, ok)
	_, ok = TryGet[color](v)
	require.False(t, ok)

	_, err := As[float64](v)
	require.ErrorIs(t, err, errs.ErrInvalidCast)
	require.Contains(t, err.Error(), "int32 to float64")

	require.PanicsWithError(t, err.Error(), func() { MustAs[float64](v) })
	require.Equal(t, int32(5), MustAs[int32](v))
}

func TestUnset(t *testing.T) {
	var v Value

	require.True(t, v.IsUnset())
	require.Equal(t, KindInvalid, v.Kind())
	require.Nil(t, v.Type())
	require.Nil(t, v.Any())
	require.Empty(t, v.String())

	_, ok := TryGet[int32](v)
	require.False(t, ok)

	p, ok := TryGet[*int32](v)
	require.True(t, ok)
	require.Nil(t, p)

	s, ok := TryGet[[]byte](v)
	require.True(t, ok)
	require.Nil(t, s)

	a, ok := TryGet[any](v)
	require.True(t, ok)
	require.Nil(t, a)

	_, err := As[string](v)
	require.ErrorIs(t, err, errs.ErrInvalidCast)
	require.Contains(t, err.Error(), "<unset>")
}

func TestNullable(t *testing.T) {
	require.True(t, Of((*int32)(nil)).IsUnset())
	require.True(t, Of((*time.Time)(nil)).IsUnset())
	require.True(t, Box((*string)(nil)).IsUnset())
	require.True(t, Of((*color)(nil)).IsUnset())
	require.True(t, Box((*color)(nil)).IsUnset())

	n := int32(7)
	v := Of(&n)
	require.Equal(t, KindInt32, v.Kind())

	got, ok := TryGet[int32](v)
	require.True(t, ok)
	require.Equal(t, int32(7), got)

	ptr, ok := TryGet[*int32](v)
	require.True(t, ok)
	require.Equal(t, int32(7), *ptr)
	require.NotSame(t, &n, ptr)

	c := color(3)
	require.Equal(t, KindEnum, Of(&c).Kind())
	require.Equal(t, KindEnum, Box(&c).Kind())

	cp, ok := TryGet[*color](Of(c))
	require.True(t, ok)
	require.Equal(t, color(3), *cp)

	_, ok = TryGet[*int64](v)
	require.False(t, ok)
}

func TestBoxing(t *testing.T) {
	p := &point{X: 1, Y: 2}
	v := Of(p)
	require.Equal(t, KindAny, v.Kind())
	require.Equal(t, reflect.TypeFor[*point](), v.Type())

	got, ok := TryGet[*point](v)
	require.True(t, ok)
	require.Same(t, p, got)

	_, ok = TryGet[point](v)
	require.False(t, ok)

	s := Of(point{X: 3})
	pv, ok := TryGet[point](s)
	require.True(t, ok)
	require.Equal(t, point{X: 3}, pv)

	st, ok := TryGet[fmt.Stringer](Of(label("x")))
	require.True(t, ok)
	require.Equal(t, "label:x", st.String())

	require.Equal(t, KindInt32, Box(int32(3)).Kind())
	require.Equal(t, KindInt, Of[any](5).Kind())
	require.True(t, Of[fmt.Stringer](nil).IsUnset())
	require.True(t, Box(nil).IsUnset())

	inner := Int16(-4)
	require.True(t, inner.Equal(Box(inner)))
	require.True(t, inner.Equal(Of(inner)))

	vv, ok := TryGet[Value](inner)
	require.True(t, ok)
	require.True(t, inner.Equal(vv))
}

func TestInterfaceRetrieval(t *testing.T) {
	a, ok := TryGet[any](Int32(5))
	require.True(t, ok)
	require.Equal(t, int32(5), a)

	a, ok = TryGet[any](String("x"))
	require.True(t, ok)
	require.Equal(t, "x", a)

	st, ok := TryGet[fmt.Stringer](Of(level(0)))
	require.True(t, ok)
	require.Equal(t, "info", st.String())

	_, ok = TryGet[error](Int32(5))
	require.False(t, ok)
}

func TestEnum(t *testing.T) {
	v := Of(color(2))
	require.Equal(t, KindEnum, v.Kind())
	require.Equal(t, reflect.TypeFor[color](), v.Type())

	got, ok := TryGet[color](v)
	require.True(t, ok)
	require.Equal(t, color(2), got)
	require.Equal(t, color(2), v.Any())

	_, ok = TryGet[uint8](v)
	require.False(t, ok)

	require.True(t, v.Equal(Enum(color(2))))
	require.True(t, v.Equal(Box(color(2))))
	require.False(t, v.Equal(Uint8(2)))

	lv := Of(level(-3))
	lg, ok := TryGet[level](lv)
	require.True(t, ok)
	require.Equal(t, level(-3), lg)

	require.Equal(t, KindInt, Enum(5).Kind())
}

type raceKind int16

func TestEnumTagIdentityConcurrent(t *testing.T) {
	const goroutines = 32

	rt := reflect.TypeFor[raceKind]()
	tags := make([]*typeTag, goroutines)

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			tags[i] = enumTagFor(rt)
		}()
	}
	close(start)
	wg.Wait()

	require.NotNil(t, tags[0])
	for _, tag := range tags {
		require.Same(t, tags[0], tag)
	}
	require.Equal(t, uint8(2), tags[0].size)
	require.True(t, tags[0].signed)
}

func TestNotEnum(t *testing.T) {
	require.Nil(t, enumTagFor(reflect.TypeFor[int]()))
	require.Nil(t, enumTagFor(reflect.TypeFor[label]()))
	require.Nil(t, enumTagFor(reflect.TypeFor[point]()))
	require.Nil(t, enumTagFor(nil))

	err := RegisterEnum(map[int]string{1: "one"})
	require.ErrorIs(t, err, errs.ErrInvalidOption)
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"unset", Value{}, Value{}, true},
		{"same int", Int32(1), Int32(1), true},
		{"different width", Int32(1), Int64(1), false},
		{"different value", Int32(1), Int32(2), false},
		{"string content", String("ab"), String(string([]byte{'a', 'b'})), true},
		{"float zero", Float64(0), Float64(math.Copysign(0, -1)), true},
		{"nan", Float64(math.NaN()), Float64(math.NaN()), false},
		{"boxed", Of(point{1, 2}), Of(point{1, 2}), true},
		{"unset vs empty string", Value{}, String(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.a.Equal(tt.b))
		})
	}
}

func TestKindString(t *testing.T) {
	require.Equal(t, "Int32", KindInt32.String())
	require.Equal(t, "OffsetTime", KindOffsetTime.String())
	require.Equal(t, "Any", KindAny.String())
	require.Equal(t, "Unknown", Kind(200).String())
}

func TestZeroAllocations(t *testing.T) {
	utc := time.Date(2024, 3, 15, 10, 20, 30, 0, time.UTC)
	offset := time.Date(2024, 3, 15, 10, 20, 30, 0, time.FixedZone("", 3600))
	str := "hello"
	seg, err := NewStringSegment(str, 1, 3)
	require.NoError(t, err)
	buf := make([]byte, 0, 64)

	tests := []struct {
		name string
		fn   func()
	}{
		{"Int32", func() { sink = Int32(5) }},
		{"OfInt64", func() { sink = Of(int64(5)) }},
		{"OfFloat64", func() { sink = Of(2.5) }},
		{"String", func() { sink = String(str) }},
		{"TimeUTC", func() { sink = Time(utc) }},
		{"TimeOffset", func() { sink = Time(offset) }},
		{"Segment", func() { sink = StringSegmentValue(seg) }},
		{"Enum", func() { sink = Of(color(1)) }},
		{"TryGet", func() {
			n, _ := TryGet[int32](sink)
			sink = Int32(n + 1)
		}},
		{"AppendFormat", func() {
			buf, _ = Int32(255).AppendFormat(buf[:0], "X8")
		}},
		{"AppendFormatString", func() {
			buf, _ = String(str).AppendFormat(buf[:0], "")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink = Int32(0)
			require.Zero(t, testing.AllocsPerRun(100, tt.fn))
		})
	}
}

func TestAsWrapsError(t *testing.T) {
	_, err := As[int8](Uint8(1))
	require.True(t, errors.Is(err, errs.ErrInvalidCast))
}

func BenchmarkOfInt32(b *testing.B) {
	for b.Loop() {
		sink = Of(int32(42))
	}
}

func BenchmarkTryGetInt32(b *testing.B) {
	v := Int32(42)
	for b.Loop() {
		n, _ := TryGet[int32](v)
		sink = Int32(n)
	}
}

func BenchmarkBoxStruct(b *testing.B) {
	p := &point{X: 1}
	for b.Loop() {
		sink = Box(p)
	}
}
