package render

import (
	"bytes"
	"strconv"
	"time"

	"github.com/arloliu/touki/value"
)

// ParseField converts one text field into a Value. Surrounding spaces are
// ignored and the first match wins:
//
//   - base 10 integer: int64
//   - decimal or exponent float: float64
//   - true or false, in any case: bool
//   - RFC 3339 timestamp: time.Time
//   - Go duration such as "1h30m": time.Duration
//   - anything else: a byte segment over field
//
// The fallback does not copy, so the Value is only valid while field is.
func ParseField(field []byte) value.Value {
	f := bytes.TrimSpace(field)
	if len(f) == 0 {
		return value.ByteSegmentValue(segment(f))
	}

	s := string(f)
	if looksNumeric(f[0]) {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return value.Int64(n)
		}
		if x, err := strconv.ParseFloat(s, 64); err == nil {
			return value.Float64(x)
		}
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return value.Time(t)
		}
		if d, err := time.ParseDuration(s); err == nil {
			return value.Duration(d)
		}
	}

	switch {
	case bytes.EqualFold(f, []byte("true")):
		return value.Bool(true)
	case bytes.EqualFold(f, []byte("false")):
		return value.Bool(false)
	}

	return value.ByteSegmentValue(segment(f))
}

// looksNumeric filters out words like "Inf" and "NaN" that strconv accepts.
func looksNumeric(c byte) bool {
	return c >= '0' && c <= '9' || c == '-' || c == '+' || c == '.'
}

func segment(b []byte) value.ArraySegment[byte] {
	seg, _ := value.NewArraySegment(b, 0, len(b))
	return seg
}
