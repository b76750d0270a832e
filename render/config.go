package render

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/arloliu/touki/compress"
	"github.com/arloliu/touki/errs"
	"github.com/arloliu/touki/internal/options"
	"github.com/arloliu/touki/strfmt"
)

// DefaultSeparator separates the fields of RenderText input.
const DefaultSeparator = ','

// Config holds the settings of a Renderer.
type Config struct {
	compression   compress.Type
	separator     byte
	cacheCapacity int
	logger        *zap.Logger
}

// Option configures a Renderer.
type Option = options.Option[*Config]

// WithCompression selects the codec applied to rendered batches.
// The default is compress.None.
func WithCompression(t compress.Type) Option {
	return options.New(func(cfg *Config) error {
		if !t.Valid() {
			return fmt.Errorf("%w: compression 0x%02x", errs.ErrInvalidOption, uint8(t))
		}
		cfg.compression = t

		return nil
	})
}

// WithSeparator sets the field separator of RenderText input.
func WithSeparator(sep byte) Option {
	return options.New(func(cfg *Config) error {
		if sep == '\n' || sep == '\r' {
			return fmt.Errorf("%w: separator %q is a line terminator", errs.ErrInvalidOption, sep)
		}
		cfg.separator = sep

		return nil
	})
}

// WithCacheCapacity sets how many compiled templates the Renderer keeps.
func WithCacheCapacity(n int) Option {
	return options.New(func(cfg *Config) error {
		if err := options.Positive("cache capacity", n); err != nil {
			return err
		}
		cfg.cacheCapacity = n

		return nil
	})
}

// WithLogger sets the logger for batch statistics and template cache events.
// A nil logger keeps the no-op default.
func WithLogger(l *zap.Logger) Option {
	return options.NoError(func(cfg *Config) {
		if l != nil {
			cfg.logger = l
		}
	})
}

func defaultConfig() *Config {
	return &Config{
		compression:   compress.None,
		separator:     DefaultSeparator,
		cacheCapacity: strfmt.DefaultCacheCapacity,
		logger:        zap.NewNop(),
	}
}
