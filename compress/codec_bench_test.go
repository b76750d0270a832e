package compress

import (
	"fmt"
	"testing"
)

// generateBenchmarkData creates rendered-output-like data of the given size.
func generateBenchmarkData(size int, compressible bool) []byte {
	data := make([]byte, size)
	if compressible {
		pattern := []byte("2024-03-15T10:20:30Z | web-01 | cpu=  42.50 % | status=Running\n")
		for i := range data {
			data[i] = pattern[i%len(pattern)]
		}

		return data
	}

	for i := range data {
		data[i] = byte((i*31 + i*i*7 + i*i*i*3) % 256)
	}

	return data
}

func BenchmarkCompress(b *testing.B) {
	for _, typ := range allTypes {
		codec, err := GetCodec(typ)
		if err != nil {
			b.Fatal(err)
		}

		for _, size := range []int{1024, 16384, 65536} {
			data := generateBenchmarkData(size, true)
			b.Run(fmt.Sprintf("%s/%dKB", typ, size/1024), func(b *testing.B) {
				b.SetBytes(int64(size))
				for b.Loop() {
					if _, err := codec.Compress(data); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

func BenchmarkDecompress(b *testing.B) {
	for _, typ := range allTypes {
		codec, err := GetCodec(typ)
		if err != nil {
			b.Fatal(err)
		}

		for _, compressible := range []bool{true, false} {
			data := generateBenchmarkData(16384, compressible)
			packed, err := codec.Compress(data)
			if err != nil {
				b.Fatal(err)
			}

			b.Run(fmt.Sprintf("%s/compressible=%t", typ, compressible), func(b *testing.B) {
				b.SetBytes(int64(len(data)))
				for b.Loop() {
					if _, err := codec.Decompress(packed); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}
