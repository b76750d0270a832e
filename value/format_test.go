package value

import (
	"errors"
	"math"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/touki/errs"
)

type weekday uint8

type perm uint16

type shade int32

type celsius float64

type hexID struct {
	n uint32
}

func (h hexID) AppendFormat(dst []byte, spec string) ([]byte, error) {
	if spec == "bad" {
		return dst, errs.ErrInvalidFormatSpec
	}
	dst = append(dst, "id-"...)

	return strconv.AppendUint(dst, uint64(h.n), 16), nil
}

func TestMain(m *testing.M) {
	if err := RegisterEnum(map[weekday]string{0: "Sunday", 1: "Monday", 2: "Tuesday"}); err != nil {
		panic(err)
	}
	if err := RegisterEnum(map[perm]string{1: "Read", 2: "Write", 4: "Exec"}, WithFlags()); err != nil {
		panic(err)
	}

	m.Run()
}

type formatCase struct {
	name string
	v    Value
	spec string
	want string
}

func runFormatCases(t *testing.T, tests []formatCase) {
	t.Helper()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.v.AppendFormat(nil, tt.spec)
			require.NoError(t, err)
			require.Equal(t, tt.want, string(got))
		})
	}
}

func TestFormatInteger(t *testing.T) {
	runFormatCases(t, []formatCase{
		{"default", Int32(-42), "", "-42"},
		{"hex padded", Int32(255), "X8", "000000FF"},
		{"hex lower", Int32(255), "x", "ff"},
		{"hex negative int32", Int32(-1), "X", "FFFFFFFF"},
		{"hex negative int8", Int8(-1), "X", "FF"},
		{"hex negative int64", Int64(-1), "x", "ffffffffffffffff"},
		{"hex uint8", Uint8(200), "X", "C8"},
		{"decimal padded", Int32(42), "D5", "00042"},
		{"decimal negative", Int32(-42), "D5", "-00042"},
		{"min int64", Int64(math.MinInt64), "D", "-9223372036854775808"},
		{"max uint64", Uint64(math.MaxUint64), "", "18446744073709551615"},
		{"binary", Int32(5), "B8", "00000101"},
		{"grouped", Int32(1234567), "N", "1,234,567.00"},
		{"grouped no decimals", Int32(1234567), "N0", "1,234,567"},
		{"grouped negative", Int16(-1234), "N1", "-1,234.0"},
		{"grouped small", Int32(999), "N0", "999"},
		{"fixed", Int32(12), "F", "12.00"},
		{"fixed no decimals", Int32(12), "F0", "12"},
		{"exponent", Int32(12345), "E2", "1.23E+04"},
		{"exponent lower", Int32(12345), "e", "1.234500e+04"},
		{"general", Int32(12345), "G", "12345"},
		{"percent", Int32(1), "P", "100.00 %"},
		{"uint", Uint(7), "D3", "007"},
		{"int", Int(-7), "", "-7"},
		{"uintptr", Uintptr(0xbeef), "X", "BEEF"},
	})
}

func TestFormatFloat(t *testing.T) {
	runFormatCases(t, []formatCase{
		{"default", Float64(2.5), "", "2.5"},
		{"shortest", Float32(0.1), "", "0.1"},
		{"large", Float64(1e21), "", "1e+21"},
		{"fixed", Float64(1.5), "F3", "1.500"},
		{"grouped", Float64(1234.5678), "N2", "1,234.57"},
		{"grouped negative", Float64(-1234567.5), "N1", "-1,234,567.5"},
		{"exponent", Float64(12345.678), "E3", "1.235E+04"},
		{"percent", Float64(0.125), "P1", "12.5 %"},
		{"round trip", Float64(0.1), "R", "0.1"},
		{"general", Float64(123.456), "G4", "123.5"},
		{"nan", Float64(math.NaN()), "", "NaN"},
		{"inf", Float64(math.Inf(1)), "", "+Inf"},
		{"inf grouped", Float64(math.Inf(-1)), "N", "-Inf"},
	})
}

func TestFormatInvalidSpec(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		spec string
	}{
		{"float decimal", Float64(1), "D"},
		{"float hex", Float64(1), "X"},
		{"float binary", Float32(1), "B2"},
		{"unknown letter", Int32(1), "Q"},
		{"not a letter", Int32(1), "#"},
		{"bad precision", Int32(1), "X-1"},
		{"too long", Int32(1), "X12345"},
		{"enum", Of(weekday(1)), "N"},
		{"boxed appender", Of(hexID{n: 1}), "bad"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := []byte("keep")
			got, err := tt.v.AppendFormat(dst, tt.spec)
			require.ErrorIs(t, err, errs.ErrInvalidFormatSpec)
			require.Equal(t, "keep", string(got))
		})
	}
}

func TestFormatScalarsIgnoreSpec(t *testing.T) {
	runFormatCases(t, []formatCase{
		{"bool", Bool(true), "X", "true"},
		{"bool false", Bool(false), "", "false"},
		{"string", String("abc"), "X8", "abc"},
		{"unset", Value{}, "X8", ""},
	})
}

func TestFormatDuration(t *testing.T) {
	runFormatCases(t, []formatCase{
		{"default", Duration(90 * time.Minute), "", "1h30m0s"},
		{"constant", Duration(90 * time.Minute), "c", "01:30:00"},
		{"constant days", Duration(26*time.Hour + 3*time.Second + 500*time.Millisecond), "c", "1.02:00:03.5000000"},
		{"constant negative", Duration(-time.Minute), "c", "-00:01:00"},
		{"constant ticks", Duration(1234500 * time.Nanosecond), "c", "00:00:00.0012345"},
		{"nanoseconds", Duration(1500), "D", "1500"},
		{"nanoseconds grouped", Duration(time.Second), "N0", "1,000,000,000"},
	})
}

func TestFormatTime(t *testing.T) {
	utc := Time(time.Date(2024, 3, 15, 10, 20, 30, 0, time.UTC))
	frac := Time(time.Date(2024, 3, 15, 10, 20, 30, 500_000_000, time.UTC))
	offset := Time(time.Date(2024, 3, 15, 12, 20, 30, 0, time.FixedZone("", 2*3600)))
	named := Time(time.Date(2024, 3, 15, 5, 20, 30, 0, time.FixedZone("EST", -5*3600)))

	runFormatCases(t, []formatCase{
		{"default", utc, "", "2024-03-15T10:20:30Z"},
		{"fraction", frac, "o", "2024-03-15T10:20:30.5Z"},
		{"sortable", utc, "s", "2024-03-15T10:20:30"},
		{"universal", utc, "u", "2024-03-15 10:20:30Z"},
		{"rfc1123", utc, "R", "Fri, 15 Mar 2024 10:20:30 GMT"},
		{"layout", utc, "2006/01/02", "2024/03/15"},
		{"offset default", offset, "", "2024-03-15T12:20:30+02:00"},
		{"offset universal", offset, "u", "2024-03-15 10:20:30Z"},
		{"offset rfc1123", offset, "r", "Fri, 15 Mar 2024 10:20:30 GMT"},
		{"boxed zone", named, "", "2024-03-15T05:20:30-05:00"},
		{"boxed zone layout", named, "15:04 MST", "05:20 EST"},
	})
}

func TestFormatEnum(t *testing.T) {
	runFormatCases(t, []formatCase{
		{"name", Of(weekday(1)), "", "Monday"},
		{"name general", Of(weekday(2)), "G", "Tuesday"},
		{"unnamed", Of(weekday(9)), "", "9"},
		{"decimal", Of(weekday(1)), "D", "1"},
		{"hex", Of(weekday(1)), "X", "01"},
		{"hex wide", Of(perm(0xab)), "x", "00ab"},
		{"flags", Of(perm(3)), "", "Read, Write"},
		{"flags all", Of(perm(7)), "G", "Read, Write, Exec"},
		{"flags single", Of(perm(4)), "", "Exec"},
		{"flags unknown bit", Of(perm(8)), "", "8"},
		{"flags zero", Of(perm(0)), "", "0"},
		{"flags spec on plain enum", Of(weekday(3)), "F", "Monday, Tuesday"},
		{"stringer", Of(level(-1)), "", "debug"},
		{"stringer decimal", Of(level(-1)), "D", "-1"},
		{"stringer hex", Of(level(-1)), "X", "FF"},
		{"unregistered", Of(shade(-5)), "", "-5"},
		{"unregistered hex", Of(shade(-5)), "X", "FFFFFFFB"},
	})
}

func TestRegisterEnumReplaces(t *testing.T) {
	type tone uint8

	require.NoError(t, RegisterEnum(map[tone]string{1: "low"}))
	require.Equal(t, "low", Of(tone(1)).String())

	require.NoError(t, RegisterEnum(map[tone]string{1: "deep"}))
	require.Equal(t, "deep", Of(tone(1)).String())
}

type failingErr struct{}

func (failingErr) Error() string { return "boom" }

func TestFormatBoxed(t *testing.T) {
	runFormatCases(t, []formatCase{
		{"appender", Of(hexID{n: 255}), "", "id-ff"},
		{"stringer", Of(label("x")), "X", "label:x"},
		{"error", Of(error(failingErr{})), "", "boom"},
		{"struct", Of(point{X: 1, Y: 2}), "", "{1 2}"},
		{"named float with spec", Of(celsius(21.5)), "F1", "21.5"},
		{"named float default", Of(celsius(21.5)), "", "21.5"},
		{"slice", Of([]int{1, 2}), "", "[1 2]"},
	})
}

func TestFormatBoxedError(t *testing.T) {
	_, err := Of(hexID{n: 1}).AppendFormat(nil, "bad")
	require.True(t, errors.Is(err, errs.ErrInvalidFormatSpec))
}

func TestValueString(t *testing.T) {
	require.Equal(t, "42", Int32(42).String())
	require.Equal(t, "hi", String("hi").String())
	require.Equal(t, "true", Bool(true).String())
	require.Equal(t, "1.5", Float32(1.5).String())
}

func BenchmarkAppendFormatInt32(b *testing.B) {
	v := Int32(123456)
	buf := make([]byte, 0, 32)
	for b.Loop() {
		buf, _ = v.AppendFormat(buf[:0], "")
	}
}

func BenchmarkAppendFormatHex(b *testing.B) {
	v := Int64(-123456)
	buf := make([]byte, 0, 32)
	for b.Loop() {
		buf, _ = v.AppendFormat(buf[:0], "X16")
	}
}

func BenchmarkAppendFormatEnum(b *testing.B) {
	v := Of(weekday(1))
	buf := make([]byte, 0, 32)
	for b.Loop() {
		buf, _ = v.AppendFormat(buf[:0], "")
	}
}
