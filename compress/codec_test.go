package compress

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/touki/errs"
)

var allTypes = []Type{None, Zstd, S2, LZ4}

func TestType_String(t *testing.T) {
	tests := []struct {
		name     string
		typ      Type
		expected string
	}{
		{name: "none", typ: None, expected: "None"},
		{name: "zstd", typ: Zstd, expected: "Zstd"},
		{name: "s2", typ: S2, expected: "S2"},
		{name: "lz4", typ: LZ4, expected: "LZ4"},
		{name: "unknown", typ: Type(0xFF), expected: "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.typ.String())
		})
	}
}

func TestParseType(t *testing.T) {
	for _, typ := range allTypes {
		got, err := ParseType(strings.ToLower(typ.String()))
		require.NoError(t, err)
		require.Equal(t, typ, got)

		got, err = ParseType(typ.String())
		require.NoError(t, err)
		require.Equal(t, typ, got)
	}

	got, err := ParseType("")
	require.NoError(t, err)
	require.Equal(t, None, got)

	_, err = ParseType("gzip")
	require.ErrorIs(t, err, errs.ErrInvalidCompression)
}

func TestType_Valid(t *testing.T) {
	for _, typ := range allTypes {
		require.True(t, typ.Valid(), typ.String())
	}
	require.False(t, Type(0).Valid())
	require.False(t, Type(5).Valid())
}

func TestGetCodec(t *testing.T) {
	for _, typ := range allTypes {
		codec, err := GetCodec(typ)
		require.NoError(t, err)
		require.NotNil(t, codec)

		fresh, err := NewCodec(typ)
		require.NoError(t, err)
		require.IsType(t, codec, fresh)
	}

	_, err := GetCodec(Type(0))
	require.ErrorIs(t, err, errs.ErrInvalidCompression)

	_, err = NewCodec(Type(9))
	require.ErrorIs(t, err, errs.ErrInvalidCompression)
}

func testPayloads() map[string][]byte {
	repetitive := bytes.Repeat([]byte("2024-03-15T10:20:30Z cpu=42 host=web-01\n"), 500)

	noisy := make([]byte, 4096)
	for i := range noisy {
		noisy[i] = byte((i*31 + i*i*7 + i*i*i*3) % 256)
	}

	return map[string][]byte{
		"single byte": {'x'},
		"short text":  []byte("hello, world"),
		"repetitive":  repetitive,
		"noisy":       noisy,
	}
}

func TestCodecRoundTrip(t *testing.T) {
	for _, typ := range allTypes {
		codec, err := GetCodec(typ)
		require.NoError(t, err)

		for name, payload := range testPayloads() {
			t.Run(typ.String()+"/"+name, func(t *testing.T) {
				packed, err := codec.Compress(payload)
				require.NoError(t, err)

				unpacked, err := codec.Decompress(packed)
				require.NoError(t, err)
				require.Equal(t, payload, unpacked)
			})
		}
	}
}

func TestCodecEmptyInput(t *testing.T) {
	for _, typ := range allTypes {
		codec, err := GetCodec(typ)
		require.NoError(t, err)

		packed, err := codec.Compress(nil)
		require.NoError(t, err)
		require.Empty(t, packed)

		unpacked, err := codec.Decompress(packed)
		require.NoError(t, err)
		require.Empty(t, unpacked)
	}
}

func TestCodecCompresses(t *testing.T) {
	payload := testPayloads()["repetitive"]

	for _, typ := range []Type{Zstd, S2, LZ4} {
		codec, err := GetCodec(typ)
		require.NoError(t, err)

		packed, stats, err := CompressWithStats(codec, typ, payload)
		require.NoError(t, err)
		require.Less(t, len(packed), len(payload)/4, typ.String())
		require.Equal(t, typ, stats.Algorithm)
		require.Equal(t, len(payload), stats.OriginalSize)
		require.Equal(t, len(packed), stats.CompressedSize)
		require.Less(t, stats.Ratio(), 0.25)
		require.Greater(t, stats.SpaceSavings(), 75.0)
	}
}

func TestCodecCorruptedInput(t *testing.T) {
	garbage := []byte{0xde, 0xad, 0xbe, 0xef, 0x01, 0x02, 0x03}

	for _, typ := range []Type{Zstd, S2, LZ4} {
		codec, err := GetCodec(typ)
		require.NoError(t, err)

		_, err = codec.Decompress(garbage)
		require.Error(t, err, typ.String())
	}
}

func TestLZ4Header(t *testing.T) {
	payload := testPayloads()["repetitive"]
	codec := NewLZ4Compressor()

	packed, err := codec.Compress(payload)
	require.NoError(t, err)
	require.Equal(t, uint32(len(payload)), binary.LittleEndian.Uint32(packed))

	_, err = codec.Decompress(packed[:2])
	require.ErrorIs(t, err, errLZ4Corrupted)

	tampered := bytes.Clone(packed)
	binary.LittleEndian.PutUint32(tampered, uint32(len(payload)+10))
	_, err = codec.Decompress(tampered)
	require.Error(t, err)

	binary.LittleEndian.PutUint32(tampered, 0)
	_, err = codec.Decompress(tampered)
	require.ErrorIs(t, err, errLZ4Corrupted)
}

func TestNoOpSharesMemory(t *testing.T) {
	payload := []byte("abc")
	out, err := NewNoOpCompressor().Compress(payload)
	require.NoError(t, err)
	require.Same(t, &payload[0], &out[0])
}

func TestStatsEmpty(t *testing.T) {
	var s Stats
	require.Zero(t, s.Ratio())
	require.Zero(t, s.SpaceSavings())
}
