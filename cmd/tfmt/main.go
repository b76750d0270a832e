// Command tfmt renders delimited records from stdin with a positional template.
//
//	printf 'web-01,42.5\ndb,3\n' | tfmt -t '{0,-8}|{1,8:N2}'
//	tfmt -t '{0}: {1}' -compress zstd -o batch.bin < records.csv
//	tfmt -d < batch.bin
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/arloliu/touki/compress"
	"github.com/arloliu/touki/internal/pool"
	"github.com/arloliu/touki/render"
	"github.com/arloliu/touki/value"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command and returns its exit code. Deferred cleanup,
// including the logger flush, completes before the caller exits.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("tfmt", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		tpl         = fs.String("t", "", "Format template, e.g. '{0,-8}|{1:N2}'")
		sep         = fs.String("sep", ",", "Field separator, a single byte or \\t")
		compression = fs.String("compress", "none", "Output compression: none, zstd, s2 or lz4")
		output      = fs.String("o", "", "Output file (default stdout)")
		decode      = fs.Bool("d", false, "Decode a compressed batch from stdin instead")
		verbose     = fs.Bool("v", false, "Verbose development logging")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *tpl == "" && !*decode {
		fmt.Fprintln(stderr, "Usage: tfmt -t <template> [-sep ,] [-compress none|zstd|s2|lz4] [-o file] [-v]")
		fmt.Fprintln(stderr, "       tfmt -d [-o file]  (decode a compressed batch)")
		return 1
	}

	logger, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()
	value.SetLogger(logger)

	var data []byte
	if *decode {
		data, err = decodeInput(stdin)
	} else {
		data, err = renderInput(logger, stdin, *tpl, *sep, *compression)
	}
	if err == nil {
		err = writeOutput(*output, stdout, data)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)

	return cfg.Build()
}

func renderInput(logger *zap.Logger, stdin io.Reader, tpl, sepStr, compressionName string) ([]byte, error) {
	sep, err := parseSeparator(sepStr)
	if err != nil {
		return nil, err
	}

	ctype, err := compress.ParseType(compressionName)
	if err != nil {
		return nil, err
	}

	r, err := render.New(
		render.WithCompression(ctype),
		render.WithSeparator(sep),
		render.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}

	input, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}

	batch, err := r.RenderText(tpl, input)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	// plain output is written without the batch header
	if ctype == compress.None {
		batch = batch[1:]
	}

	return batch, nil
}

func decodeInput(stdin io.Reader) ([]byte, error) {
	input, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}

	text, err := render.Decode(input)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	return text, nil
}

func parseSeparator(s string) (byte, error) {
	switch s {
	case `\t`, "tab":
		return '\t', nil
	}
	if len(s) != 1 {
		return 0, errors.New("separator must be a single byte")
	}

	return s[0], nil
}

// writeOutput writes data to the file at path, or to stdout when path is empty.
func writeOutput(path string, stdout io.Writer, data []byte) error {
	buf := &pool.Buffer{B: data}
	if path == "" {
		_, err := buf.WriteTo(stdout)
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if _, err := buf.WriteTo(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write output: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}
