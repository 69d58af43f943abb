package compress

import "github.com/klauspost/compress/s2"

// S2Compressor compresses bstr-wrapped CBOR with S2, Snappy's
// faster-but-slightly-larger-output cousin — a fit for wraps entered on a
// hot decode path where CPU budget matters more than ratio.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates a new S2 compressor.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress S2-encodes a bstr-wrap's plaintext bytes.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress S2-decodes a wrap's compressed bytes ahead of CBOR parsing.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Decode(nil, data)
}
