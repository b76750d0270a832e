// Package hash provides the 64-bit hashes used as cache keys.
package hash

import "github.com/cespare/xxhash/v2"

// Template computes the xxHash64 of a template text.
func Template(text string) uint64 {
	return xxhash.Sum64String(text)
}

