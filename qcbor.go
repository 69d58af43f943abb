// Package qcbor decodes CBOR (RFC 8949) data items from a byte buffer,
// modeled on the QCBOR C library's pull-parser design.
//
// # Core Features
//
//   - Pre-order traversal (Decoder.GetNext) over arrays, maps, and scalars
//   - Map-mode random access by integer or text label, with duplicate
//     detection
//   - Built-in folding of common tags (epoch dates, big numbers, decimal
//     fractions, big floats) into specialised item types
//   - A sticky error latch so a chain of spiffy calls can be checked once,
//     at the end, instead of after every call
//   - Byte-string-wrapped CBOR (tag 24) traversal via EnterBstrWrapped,
//     with an optional decompression hook for pre-compressed wraps
//
// # Basic Usage
//
//	import "github.com/nullbound/qcbor/decode"
//	import "github.com/nullbound/qcbor/types"
//
//	dec, err := decode.NewDecoder(data, types.ModeNormal)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for {
//	    it, err := dec.GetNext()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if it.Type == types.TypeNone {
//	        break
//	    }
//	    fmt.Printf("%s at depth %d\n", it.Type, it.NestLevel)
//	}
//
// # Package Structure
//
// This package provides convenience wrappers and a whole-buffer fingerprint
// helper around the decode package, simplifying the most common use cases.
// For advanced usage (map-mode navigation, custom string allocators,
// caller-registered tags, bstr-wrap decompression) use the decode, item,
// allocator, and compress packages directly.
package qcbor

import (
	"github.com/nullbound/qcbor/decode"
	"github.com/nullbound/qcbor/internal/hash"
	"github.com/nullbound/qcbor/item"
	"github.com/nullbound/qcbor/types"
)

// NewDecoder creates a decoder over buf with custom options.
//
// This is the most flexible factory function, allowing full control over
// decoding parameters through options. Use this when you need a caller
// string allocator, pre-registered tag numbers, or bstr-wrap decompression.
//
// Parameters:
//   - buf: the CBOR-encoded bytes to decode
//   - mode: types.ModeNormal for the common case, types.ModeMapAsArray to
//     surface maps as flat label/value arrays instead
//   - opts: optional configuration functions (see decode.Option)
//
// Example:
//
//	dec, err := qcbor.NewDecoder(data, types.ModeNormal,
//	    decode.WithMemPool(4096, false),
//	)
func NewDecoder(buf []byte, mode types.DecodeMode, opts ...decode.Option) (*decode.Decoder, error) {
	return decode.NewDecoder(buf, mode, opts...)
}

// NewDefaultDecoder creates a decoder with recommended default settings: a
// built-in bump-pointer string allocator sized for modest indefinite-length
// string reassembly, applied only to indefinite-length strings.
//
// Use this when:
//   - You don't need a custom string allocator
//   - Your documents may contain indefinite-length strings
//   - You want decoded strings to remain zero-copy where possible
//
// For documents that must outlive the input buffer entirely, pass
// decode.WithMemPool(size, true) to NewDecoder instead, which copies every
// string (not only indefinite-length ones).
func NewDefaultDecoder(buf []byte) (*decode.Decoder, error) {
	return decode.NewDecoder(buf, types.ModeNormal, decode.WithMemPool(0, false))
}

// DecodeAll decodes every top-level item in buf in pre-order and returns
// them as a flat slice, verifying the document is well-formed and fully
// consumed.
//
// Use this for small documents where building the whole item list up front
// is simpler than driving GetNext by hand. For large or streaming
// documents, use decode.NewDecoder and GetNext directly.
func DecodeAll(buf []byte) ([]item.Item, error) {
	dec, err := decode.NewDecoder(buf, types.ModeNormal, decode.WithMemPool(0, false))
	if err != nil {
		return nil, err
	}

	var items []item.Item
	for {
		it, err := dec.GetNext()
		if err != nil {
			return nil, err
		}
		if it.Type == types.TypeNone {
			break
		}
		items = append(items, it)
	}

	if err := dec.Finish(); err != nil {
		return nil, err
	}
	return items, nil
}

// Fingerprint returns a 64-bit hash of the entire input buffer, useful for
// deduplicating or cache-keying whole CBOR documents.
//
// Fingerprint guarantees:
//   - Deterministic: the same bytes always produce the same output
//   - Collision-resistant: extremely low probability of collisions
//   - Fast: xxHash64 runs at multiple GB/s on modern CPUs
//
// Fingerprint hashes the raw wire bytes, not the decoded value tree: two
// buffers that decode to the same items but differ byte-for-byte (e.g.
// definite vs. indefinite length encoding of the same string) fingerprint
// differently. It is never used to index a decoded map's contents; map
// label lookup always walks the item stream instead.
func Fingerprint(buf []byte) uint64 {
	return hash.Buffer(buf)
}
