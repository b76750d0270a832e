package span

import (
	"iter"
	"slices"
)

// Split returns an iterator over the sub-slices of s separated by sep.
//
// Like strings.Split, n separators always produce n+1 parts, including empty
// ones; an empty s yields a single empty part. The parts alias s.
func Split[T comparable](s []T, sep T) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		for {
			i := slices.Index(s, sep)
			if i < 0 {
				yield(s)
				return
			}
			if !yield(s[:i:i]) {
				return
			}
			s = s[i+1:]
		}
	}
}

// SplitAny is like Split but splits at any of seps.
func SplitAny[T comparable](s []T, seps ...T) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		r := Reader[T]{data: s}
		for {
			part, ok := r.TryReadToAny(seps...)
			if !ok {
				yield(r.ReadToEnd())
				return
			}
			if !yield(part[:len(part):len(part)]) {
				return
			}
			r.pos++
		}
	}
}

// Lines returns an iterator over the lines of s. A trailing line terminator
// does not produce a final empty line and "\r\n" endings are trimmed.
func Lines(s []byte) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		for len(s) > 0 {
			i := slices.Index(s, '\n')
			var line []byte
			if i < 0 {
				line, s = s, nil
			} else {
				line, s = s[:i], s[i+1:]
			}
			if n := len(line); n > 0 && line[n-1] == '\r' {
				line = line[:n-1]
			}
			if !yield(line[:len(line):len(line)]) {
				return
			}
		}
	}
}
