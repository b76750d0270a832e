// Package compress provides the codecs applied to rendered batches.
//
// Four algorithms are available, selected by Type:
//
//   - None: data passes through unchanged
//   - Zstd: best ratio, moderate speed
//   - S2: balanced speed and ratio
//   - LZ4: fastest decompression
//
// Codecs are stateless values backed by pooled encoders where the underlying
// library benefits from reuse, and are safe for concurrent use:
//
//	codec, err := compress.GetCodec(compress.Zstd)
//	if err != nil {
//		return err
//	}
//	packed, err := codec.Compress(data)
//
// LZ4 output carries a 4-byte little-endian length prefix ahead of the raw
// LZ4 block.
//
// The Zstandard codec is pure Go by default. Build with -tags gozstd (and cgo
// enabled) to use the cgo binding instead; both produce standard frames and
// can read each other's output.
package compress
