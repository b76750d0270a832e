package value

import (
	"fmt"
	"math"
	"strconv"

	"github.com/arloliu/touki/errs"
)

const maxPrecision = 999

func invalidSpec(spec string) error {
	return fmt.Errorf("%w: %q", errs.ErrInvalidFormatSpec, spec)
}

// parseSpec splits a standard numeric spec into its letter and precision.
// The precision is -1 when absent.
func parseSpec(spec string) (byte, int, error) {
	if len(spec) == 0 || len(spec) > 4 {
		return 0, 0, invalidSpec(spec)
	}

	verb := spec[0]
	if (verb < 'A' || verb > 'Z') && (verb < 'a' || verb > 'z') {
		return 0, 0, invalidSpec(spec)
	}

	if len(spec) == 1 {
		return verb, -1, nil
	}

	prec := 0
	for i := 1; i < len(spec); i++ {
		c := spec[i]
		if c < '0' || c > '9' {
			return 0, 0, invalidSpec(spec)
		}
		prec = prec*10 + int(c-'0')
	}

	return verb, prec, nil
}

// appendInteger formats an integer stored as bits.
//
// Signed values are sign-extended in bits; width is the size of the stored
// type in bits and bounds the hexadecimal and binary renderings.
func appendInteger(dst []byte, bits uint64, signed bool, width int, spec string) ([]byte, error) {
	if spec == "" {
		if signed {
			return strconv.AppendInt(dst, int64(bits), 10), nil
		}

		return strconv.AppendUint(dst, bits, 10), nil
	}

	verb, prec, err := parseSpec(spec)
	if err != nil {
		return dst, err
	}

	neg := signed && int64(bits) < 0
	mag := bits
	if neg {
		mag = -bits
	}

	switch verb {
	case 'D', 'd':
		if neg {
			dst = append(dst, '-')
		}

		return appendDigits(dst, mag, 10, prec, false), nil
	case 'X', 'x':
		return appendDigits(dst, truncate(bits, width), 16, prec, verb == 'X'), nil
	case 'B', 'b':
		return appendDigits(dst, truncate(bits, width), 2, prec, false), nil
	case 'N', 'n', 'F', 'f':
		if prec < 0 {
			prec = 2
		}
		if neg {
			dst = append(dst, '-')
		}

		var buf [20]byte
		digits := strconv.AppendUint(buf[:0], mag, 10)
		if verb == 'N' || verb == 'n' {
			dst = appendGrouped(dst, digits)
		} else {
			dst = append(dst, digits...)
		}

		return appendZeroFraction(dst, prec), nil
	case 'G', 'g', 'R', 'r':
		if prec <= 0 || verb == 'R' || verb == 'r' {
			if signed {
				return strconv.AppendInt(dst, int64(bits), 10), nil
			}

			return strconv.AppendUint(dst, bits, 10), nil
		}
	}

	f := float64(bits)
	if signed {
		f = float64(int64(bits))
	}

	return appendFloatVerb(dst, f, 64, verb, prec, spec)
}

func truncate(bits uint64, width int) uint64 {
	if width >= 64 {
		return bits
	}

	return bits & (1<<uint(width) - 1)
}

// appendDigits appends u in base, left padded with zeros to minDigits.
func appendDigits(dst []byte, u uint64, base int, minDigits int, upper bool) []byte {
	var buf [64]byte
	digits := strconv.AppendUint(buf[:0], u, base)
	for i := len(digits); i < minDigits; i++ {
		dst = append(dst, '0')
	}

	if !upper {
		return append(dst, digits...)
	}

	for _, c := range digits {
		if c >= 'a' && c <= 'f' {
			c -= 'a' - 'A'
		}
		dst = append(dst, c)
	}

	return dst
}

func appendZeroFraction(dst []byte, prec int) []byte {
	if prec == 0 {
		return dst
	}

	dst = append(dst, '.')
	for range prec {
		dst = append(dst, '0')
	}

	return dst
}

// appendGrouped copies num into dst inserting ',' between thousands of the
// leading integer digits. Anything after the digit run is copied verbatim.
func appendGrouped(dst []byte, num []byte) []byte {
	start := 0
	if start < len(num) && (num[start] == '-' || num[start] == '+') {
		dst = append(dst, num[start])
		start++
	}

	end := start
	for end < len(num) && num[end] >= '0' && num[end] <= '9' {
		end++
	}

	for i := start; i < end; i++ {
		if i > start && (end-i)%3 == 0 {
			dst = append(dst, ',')
		}
		dst = append(dst, num[i])
	}

	return append(dst, num[end:]...)
}

// appendFloat formats a float of the given bit size.
func appendFloat(dst []byte, f float64, bitSize int, spec string) ([]byte, error) {
	if spec == "" {
		return strconv.AppendFloat(dst, f, 'g', -1, bitSize), nil
	}

	verb, prec, err := parseSpec(spec)
	if err != nil {
		return dst, err
	}

	return appendFloatVerb(dst, f, bitSize, verb, prec, spec)
}

func appendFloatVerb(dst []byte, f float64, bitSize int, verb byte, prec int, spec string) ([]byte, error) {
	if prec > maxPrecision {
		return dst, invalidSpec(spec)
	}

	switch verb {
	case 'F', 'f':
		if prec < 0 {
			prec = 2
		}

		return strconv.AppendFloat(dst, f, 'f', prec, bitSize), nil
	case 'N', 'n':
		if prec < 0 {
			prec = 2
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return strconv.AppendFloat(dst, f, 'f', prec, bitSize), nil
		}

		var buf [64]byte

		return appendGrouped(dst, strconv.AppendFloat(buf[:0], f, 'f', prec, bitSize)), nil
	case 'E', 'e':
		if prec < 0 {
			prec = 6
		}

		return strconv.AppendFloat(dst, f, verb, prec, bitSize), nil
	case 'G', 'g':
		if prec <= 0 {
			prec = -1
		}

		return strconv.AppendFloat(dst, f, verb, prec, bitSize), nil
	case 'R', 'r':
		return strconv.AppendFloat(dst, f, 'g', -1, bitSize), nil
	case 'P', 'p':
		if prec < 0 {
			prec = 2
		}
		dst = strconv.AppendFloat(dst, f*100, 'f', prec, bitSize)

		return append(dst, " %"...), nil
	default:
		return dst, invalidSpec(spec)
	}
}
