// Package compress implements the decompression hook EnterBstrWrapped
// applies to a bstr-wrapped byte string before parsing its content as a
// nested CBOR document.
//
// # Overview
//
// RFC 8949 tag 24 marks a byte string whose content is itself an embedded
// CBOR data item. Nothing in the CBOR data model requires that embedded
// item's bytes to be stored compressed, but profiles that ship large
// optional sub-documents (a diagnostic blob, a historical snapshot) often
// want to keep the outer document small without changing its shape. This
// package lets a decode.Decoder be configured with a codec applied to the
// wrapped bytes right before EnterBstrWrapped hands them back as a nested
// decodable buffer.
//
// # Supported algorithms
//
//   - None: no transform, the default.
//   - Zstd: best compression ratio, moderate speed.
//   - S2: balanced compression and speed.
//   - LZ4: fastest decompression.
//
// # Choosing an algorithm
//
// | Workload                    | Recommended | Reason                         |
// |------------------------------|-------------|--------------------------------|
// | Large archival sub-documents | Zstd        | best ratio                     |
// | Frequently re-entered wraps  | LZ4         | fastest decompression          |
// | General purpose              | S2          | balanced                       |
// | Already-small wraps          | None        | avoid overhead entirely        |
//
// # Thread safety
//
// All codec implementations are safe for concurrent use; the decoder itself
// is not (see decode.Decoder's package doc).
package compress
