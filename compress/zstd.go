package compress

// ZstdCompressor compresses with Zstandard, favouring ratio over speed.
//
// The default build uses github.com/klauspost/compress/zstd with pooled
// encoders and decoders. Building with the gozstd tag and cgo enabled switches
// to the cgo binding github.com/valyala/gozstd.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a Zstandard codec.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
