package compress

import (
	"fmt"
	"time"

	"github.com/arloliu/touki/errs"
)

// maxDecodedSize bounds the output of every decompressor.
const maxDecodedSize = 128 * 1024 * 1024

// Compressor compresses a rendered batch.
//
// The returned slice is owned by the caller except for the None codec, which
// returns its input.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor of the same Type.
//
// It returns an error when data is corrupted or was produced by another
// algorithm. Implementations are safe for concurrent use.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions.
type Codec interface {
	Compressor
	Decompressor
}

// Stats describes one compression call.
type Stats struct {
	Algorithm      Type
	OriginalSize   int
	CompressedSize int
	Elapsed        time.Duration
}

// Ratio returns CompressedSize/OriginalSize, or 0 for empty input.
func (s Stats) Ratio() float64 {
	if s.OriginalSize == 0 {
		return 0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the saved space as a percentage.
func (s Stats) SpaceSavings() float64 {
	if s.OriginalSize == 0 {
		return 0
	}

	return (1 - s.Ratio()) * 100
}

// NewCodec creates a new Codec for the given compression type.
//
// Unlike GetCodec, each call returns a fresh instance. Built-in codecs are
// stateless, so GetCodec is the usual choice.
//
// Parameters:
//   - t: Compression type, one of None, Zstd, S2 or LZ4
//
// Returns:
//   - Codec: Codec compressing and decompressing with t
//   - error: errs.ErrInvalidCompression if t is not a known type
//
// Example:
//
//	codec, err := compress.NewCodec(compress.Zstd)
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress(data)
func NewCodec(t Type) (Codec, error) {
	switch t {
	case None:
		return NewNoOpCompressor(), nil
	case Zstd:
		return NewZstdCompressor(), nil
	case S2:
		return NewS2Compressor(), nil
	case LZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("%w: %s (0x%02x)", errs.ErrInvalidCompression, t, uint8(t))
	}
}

var builtinCodecs = map[Type]Codec{
	None: NewNoOpCompressor(),
	Zstd: NewZstdCompressor(),
	S2:   NewS2Compressor(),
	LZ4:  NewLZ4Compressor(),
}

// GetCodec returns the shared built-in Codec for t.
func GetCodec(t Type) (Codec, error) {
	if codec, ok := builtinCodecs[t]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s (0x%02x)", errs.ErrInvalidCompression, t, uint8(t))
}

// CompressWithStats compresses data with c and reports sizes and timing.
func CompressWithStats(c Codec, t Type, data []byte) ([]byte, Stats, error) {
	start := time.Now()
	out, err := c.Compress(data)
	stats := Stats{
		Algorithm:      t,
		OriginalSize:   len(data),
		CompressedSize: len(out),
		Elapsed:        time.Since(start),
	}

	return out, stats, err
}
