package compress

import (
	"fmt"
	"strings"

	"github.com/arloliu/touki/errs"
)

// Type identifies a compression algorithm. The values are stable and are
// written as the first byte of rendered batches.
type Type uint8

const (
	None Type = 0x1 // None stores data uncompressed.
	Zstd Type = 0x2 // Zstd is Zstandard compression.
	S2   Type = 0x3 // S2 is S2 (Snappy compatible) compression.
	LZ4  Type = 0x4 // LZ4 is LZ4 block compression.
)

func (t Type) String() string {
	switch t {
	case None:
		return "None"
	case Zstd:
		return "Zstd"
	case S2:
		return "S2"
	case LZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Valid reports whether t is a known compression type.
func (t Type) Valid() bool {
	return t >= None && t <= LZ4
}

// ParseType parses a compression name such as "zstd" or "LZ4". An empty name
// means None.
func ParseType(name string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return None, nil
	case "zstd":
		return Zstd, nil
	case "s2":
		return S2, nil
	case "lz4":
		return LZ4, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrInvalidCompression, name)
	}
}
