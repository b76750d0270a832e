package render

import (
	"bytes"
	"fmt"

	"go.uber.org/zap"

	"github.com/arloliu/touki/compress"
	"github.com/arloliu/touki/errs"
	"github.com/arloliu/touki/internal/options"
	"github.com/arloliu/touki/internal/pool"
	"github.com/arloliu/touki/span"
	"github.com/arloliu/touki/strfmt"
	"github.com/arloliu/touki/value"
)

// batchHeaderSize is the size of the compression type byte leading a batch.
const batchHeaderSize = 1

// Renderer renders record batches. It is safe for concurrent use.
type Renderer struct {
	cache       *strfmt.Cache
	codec       compress.Codec
	compression compress.Type
	separator   byte
	logger      *zap.Logger
}

// New creates a Renderer configured by opts.
//
// Without options the Renderer writes uncompressed batches, splits text
// fields on DefaultSeparator and logs nothing.
//
// Parameters:
//   - opts: Options such as WithCompression, WithSeparator, WithCacheCapacity
//     and WithLogger
//
// Returns:
//   - *Renderer: Renderer ready for concurrent use
//   - error: Error wrapping errs.ErrInvalidOption if an option is invalid
//
// Example:
//
//	r, err := render.New(
//	    render.WithCompression(compress.Zstd),
//	    render.WithLogger(logger),
//	)
//	if err != nil {
//	    return err
//	}
func New(opts ...Option) (*Renderer, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, err
	}

	cache, err := strfmt.NewCache(
		strfmt.WithCapacity(cfg.cacheCapacity),
		strfmt.WithLogger(cfg.logger),
	)
	if err != nil {
		return nil, err
	}

	return &Renderer{
		cache:       cache,
		codec:       codec,
		compression: cfg.compression,
		separator:   cfg.separator,
		logger:      cfg.logger,
	}, nil
}

// Compression returns the codec type written into batch headers.
func (r *Renderer) Compression() compress.Type {
	return r.compression
}

// CacheStats returns the counters of the template cache.
func (r *Renderer) CacheStats() strfmt.CacheStats {
	return r.cache.Stats()
}

// Render formats every record with tpl and returns the packed batch.
//
// Each record is rendered as one line terminated by '\n'. The batch is the
// Renderer's compression type as a single header byte followed by the
// compressed lines, and is read back with Decode.
//
// Parameters:
//   - tpl: Format template, compiled once and kept in the Renderer's cache
//   - records: Argument lists, one per output line
//
// Returns:
//   - []byte: Packed batch owned by the caller
//   - error: Error wrapping errs.ErrFormat and naming the failing record, or a
//     compression error
//
// Example:
//
//	batch, err := r.Render("{0,-8}|{1,8:N2}", [][]value.Value{
//	    {value.String("web-01"), value.Float64(42.5)},
//	    {value.String("db"), value.Float64(3)},
//	})
//	if err != nil {
//	    return err
//	}
//	text, _ := render.Decode(batch)
//	// text == "web-01  |   42.50\ndb      |    3.00\n"
func (r *Renderer) Render(tpl string, records [][]value.Value) ([]byte, error) {
	t, err := r.cache.Get(tpl)
	if err != nil {
		return nil, err
	}

	buf := pool.GetRenderBuffer()
	defer pool.PutRenderBuffer(buf)

	// one template's worth of bytes per record is a lower bound
	buf.Grow(len(records) * (len(tpl) + 1))
	for i, rec := range records {
		buf.B, err = t.Append(buf.Bytes(), rec...)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		_ = buf.WriteByte('\n')
	}

	return r.pack(buf, len(records))
}

// RenderText splits input into lines and lines into fields, converts each
// field with ParseField and renders the records with tpl. Empty lines are
// skipped. Errors name the failing input line, counting from 1.
func (r *Renderer) RenderText(tpl string, input []byte) ([]byte, error) {
	t, err := r.cache.Get(tpl)
	if err != nil {
		return nil, err
	}

	buf := pool.GetRenderBuffer()
	defer pool.PutRenderBuffer(buf)

	buf.Grow(len(input))
	lineNo, records := 0, 0
	for line := range span.Lines(input) {
		lineNo++
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		buf.B, err = r.renderLine(buf.Bytes(), t, line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		_ = buf.WriteByte('\n')
		records++
	}

	return r.pack(buf, records)
}

func (r *Renderer) renderLine(dst []byte, t *strfmt.Template, line []byte) ([]byte, error) {
	args, cleanup := pool.GetValueSlice(bytes.Count(line, []byte{r.separator}) + 1)
	defer cleanup()

	i := 0
	for field := range span.Split(line, r.separator) {
		args[i] = ParseField(field)
		i++
	}

	return t.Append(dst, args...)
}

// pack compresses the rendered lines behind a one byte header. The result
// never aliases buf, which goes back to the pool.
func (r *Renderer) pack(buf *pool.Buffer, records int) ([]byte, error) {
	payload, stats, err := compress.CompressWithStats(r.codec, r.compression, buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("compress batch: %w", err)
	}

	out := pool.NewBuffer(batchHeaderSize + len(payload))
	_ = out.WriteByte(byte(r.compression))
	_, _ = out.Write(payload)

	r.logger.Debug("batch rendered",
		zap.Int("records", records),
		zap.Stringer("compression", stats.Algorithm),
		zap.Int("size", buf.Len()),
		zap.Int("compressed", stats.CompressedSize),
		zap.Float64("ratio", stats.Ratio()),
		zap.Duration("elapsed", stats.Elapsed))

	return out.Bytes(), nil
}

// Decode returns the rendered lines of a batch produced by any Renderer.
// For uncompressed batches the result shares memory with data.
func Decode(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: missing header", errs.ErrInvalidBatch)
	}

	codec, err := compress.GetCodec(compress.Type(data[0]))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidBatch, err)
	}

	out, err := codec.Decompress(data[batchHeaderSize:])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidBatch, err)
	}

	return out, nil
}
