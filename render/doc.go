// Package render formats batches of records with one template and packs the
// result with a compression codec.
//
// A batch is a single header byte holding the compress.Type followed by the
// compressed lines. Every record produces one line terminated by '\n':
//
//	r, err := render.New(render.WithCompression(compress.Zstd))
//	if err != nil {
//		return err
//	}
//	batch, err := r.Render("{0,-8}|{1:N2}", records)
//	...
//	text, err := render.Decode(batch)
//
// RenderText does the same for delimited text input, converting every field
// with ParseField. Templates are compiled once per Renderer and kept in a
// strfmt.Cache.
package render
