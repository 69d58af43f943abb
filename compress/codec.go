// Package compress implements the optional decompression hook applied to a
// bstr-wrapped byte string (typically CBOR tag 24) before its bytes are
// parsed as a nested CBOR document via EnterBstrWrapped. CBOR itself has no
// compression stage; this package exists for profiles that ship a
// pre-compressed embedded document inside an otherwise ordinary byte
// string field.
package compress

import (
	"fmt"

	"github.com/nullbound/qcbor/types"
)

// Decompressor reverses a Compressor's transform.
//
// Error conditions:
//   - Returns error if input data is corrupted or invalid
//   - Returns error if data was compressed with an incompatible algorithm
type Decompressor interface {
	// Decompress decompresses the input data and returns the original result.
	//
	// Memory management:
	//   - Returned slice is owned by the caller; NoOpCompressor returns the
	//     input slice itself, the other codecs a newly allocated one
	//   - Input slice is not modified
	Decompress(data []byte) ([]byte, error)
}

// Compressor produces the inverse of a Decompressor's transform, used by
// callers building a bstr-wrapped document rather than by the decoder
// itself (the decoder only ever decompresses).
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Codec combines both directions; the built-in codecs below all implement
// it even though EnterBstrWrapped only ever calls Decompress.
type Codec interface {
	Compressor
	Decompressor
}

// Stats describes one decompression applied while entering a bstr-wrapped
// level, useful for callers instrumenting how much of their document is
// compressed nested CBOR.
type Stats struct {
	Algorithm           types.CompressionID
	CompressedSize      int64
	DecompressedSize    int64
	DecompressionTimeNs int64
}

// ExpansionRatio returns DecompressedSize / CompressedSize, or 0 if
// CompressedSize is zero.
func (s Stats) ExpansionRatio() float64 {
	if s.CompressedSize == 0 {
		return 0
	}
	return float64(s.DecompressedSize) / float64(s.CompressedSize)
}

// CreateCodec is a factory function that creates a Codec for the given
// compression ID.
func CreateCodec(id types.CompressionID, target string) (Codec, error) {
	switch id {
	case types.CompressionNone:
		return NewNoOpCompressor(), nil
	case types.CompressionZstd:
		return NewZstdCompressor(), nil
	case types.CompressionS2:
		return NewS2Compressor(), nil
	case types.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression: %s", target, id)
	}
}

var builtinCodecs = map[types.CompressionID]Codec{
	types.CompressionNone: NewNoOpCompressor(),
	types.CompressionZstd: NewZstdCompressor(),
	types.CompressionS2:   NewS2Compressor(),
	types.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a built-in Codec for the given compression ID.
func GetCodec(id types.CompressionID) (Codec, error) {
	if codec, ok := builtinCodecs[id]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression id: %s", id)
}
