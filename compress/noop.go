package compress

// NoOpCompressor passes a bstr-wrapped CBOR payload through unmodified.
//
// Pick this codec when:
//   - the wrap is known to already hold uncompressed CBOR and compression
//     would just cost CPU for no size win
//   - measuring EnterBstrWrapped overhead in isolation, without a real
//     codec's cost mixed in
//   - the wrap's bytes were pre-compressed by the encoder using a codec
//     this decoder doesn't yet support, and decompression happens elsewhere
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a pass-through compressor.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns data unchanged. The returned slice aliases the input;
// callers must not mutate it afterward if they still need the original.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data unchanged. The returned slice aliases the input;
// callers must not mutate it afterward if they still need the original.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
