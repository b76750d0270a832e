// Package touki formats positional templates over allocation-free tagged values.
//
// Arguments are value.Value containers, which store scalars, strings, times and
// segments without boxing them into interfaces. Templates use the
// {index[,alignment][:spec]} hole syntax:
//
//	s, err := touki.Format("{0,-8}|{1,8:N2}|{2:X4}",
//	    value.String("web-01"), value.Float64(1234.5), value.Int(255))
//	// "web-01  |1,234.50|00FF"
//
// Literal braces are written twice: "{{" and "}}".
//
// # Package Structure
//
// This package provides convenient top-level wrappers for the common cases:
//
//   - value: the Value container, enum registration and per-type format specs
//   - strfmt: template compilation, the template cache and generic arguments
//   - render: batch rendering with optional compression
//   - compress: the None, Zstd, S2 and LZ4 codecs
//
// Use those packages directly for compiled templates and finer control.
package touki

import (
	"github.com/arloliu/touki/compress"
	"github.com/arloliu/touki/internal/hash"
	"github.com/arloliu/touki/internal/pool"
	"github.com/arloliu/touki/render"
	"github.com/arloliu/touki/strfmt"
	"github.com/arloliu/touki/value"
)

// Format renders tpl with args.
func Format(tpl string, args ...value.Value) (string, error) {
	return strfmt.Format(tpl, args...)
}

// Append appends tpl rendered with args to dst. On error the returned slice
// holds the output written before the failing hole.
func Append(dst []byte, tpl string, args ...value.Value) ([]byte, error) {
	return strfmt.Append(dst, tpl, args...)
}

// MustFormat is like Format but panics on error. It is meant for templates
// that are constants of the program.
func MustFormat(tpl string, args ...value.Value) string {
	s, err := strfmt.Format(tpl, args...)
	if err != nil {
		panic(err)
	}

	return s
}

// Sprint renders tpl with arguments of any type, converting each with
// value.Box. Prefer Format with typed values on hot paths.
func Sprint(tpl string, args ...any) (string, error) {
	vals, cleanup := pool.GetValueSlice(len(args))
	defer cleanup()

	for i, arg := range args {
		vals[i] = value.Box(arg)
	}

	return strfmt.Format(tpl, vals...)
}

// Compile parses tpl for repeated use.
func Compile(tpl string) (*strfmt.Template, error) {
	return strfmt.Compile(tpl)
}

// TemplateID returns the 64-bit identifier a template is cached under.
func TemplateID(tpl string) uint64 {
	return hash.Template(tpl)
}

// NewRenderer creates a batch renderer with custom options.
func NewRenderer(opts ...render.Option) (*render.Renderer, error) {
	return render.New(opts...)
}

// NewDefaultRenderer creates a batch renderer that compresses with Zstandard
// and splits text input at commas.
func NewDefaultRenderer() (*render.Renderer, error) {
	return render.New(render.WithCompression(compress.Zstd))
}
