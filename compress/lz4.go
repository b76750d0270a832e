package compress

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

const lz4HeaderSize = 4

var errLZ4Corrupted = errors.New("lz4: corrupted block")

// lz4CompressorPool pools lz4.Compressor instances, whose hash tables are
// worth reusing.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor compresses with LZ4 blocks.
//
// Each block is prefixed with the uncompressed length as a 4-byte little-endian
// integer, so decompression allocates the output once.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates an LZ4 codec.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses data into a length-prefixed LZ4 block.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if len(data) > maxDecodedSize {
		return nil, fmt.Errorf("lz4: input of %d bytes exceeds %d", len(data), maxDecodedSize)
	}

	dst := make([]byte, lz4HeaderSize+lz4.CompressBlockBound(len(data)))
	binary.LittleEndian.PutUint32(dst, uint32(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst[lz4HeaderSize:])
	if err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("lz4 compression failed: %w", lz4.ErrInvalidSourceShortBuffer)
	}

	return dst[:lz4HeaderSize+n], nil
}

// Decompress decodes a length-prefixed LZ4 block.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if len(data) < lz4HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the header", errLZ4Corrupted, len(data))
	}

	size := binary.LittleEndian.Uint32(data)
	if size == 0 || size > maxDecodedSize {
		return nil, fmt.Errorf("%w: invalid decoded size %d", errLZ4Corrupted, size)
	}

	out := make([]byte, size)
	n, err := lz4.UncompressBlock(data[lz4HeaderSize:], out)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompression failed: %w", err)
	}
	if n != int(size) {
		return nil, fmt.Errorf("%w: decoded %d bytes, header says %d", errLZ4Corrupted, n, size)
	}

	return out, nil
}
