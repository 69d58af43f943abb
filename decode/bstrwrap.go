package decode

import (
	"time"

	"github.com/nullbound/qcbor/compress"
	"github.com/nullbound/qcbor/errs"
	"github.com/nullbound/qcbor/internal/nesting"
	"github.com/nullbound/qcbor/types"
)

// EnterBstrWrapped requires the next item in pre-order to be a
// definite-length byte string (optionally tagged with types.TagCBOR) and
// begins traversing its content as if it were the whole input. The outer
// buffer and cursor are restored by the matching ExitBstrWrapped.
//
// If the decoder was configured with WithBstrWrapCompression, the byte
// string's content is run through that codec's Decompress before being
// treated as CBOR; this is a supplemental hook for profiles that ship a
// compressed document inside a byte-string-typed field.
func (d *Decoder) EnterBstrWrapped() error {
	if d.checkErr() {
		return d.err
	}

	it, _, err := d.getNextInternal()
	if err != nil {
		return d.setErr(err)
	}
	if it.Type != types.TypeByteString {
		return d.setErr(errs.ErrUnexpectedType)
	}

	content := it.Bytes
	if d.bstrCodec != nil && d.bstrCodecID != types.CompressionNone {
		start := time.Now()
		decompressed, err := d.bstrCodec.Decompress(content)
		if err != nil {
			return d.setErr(err)
		}
		d.lastBstrStats = compress.Stats{
			Algorithm:           d.bstrCodecID,
			CompressedSize:      int64(len(content)),
			DecompressedSize:    int64(len(decompressed)),
			DecompressionTimeNs: time.Since(start).Nanoseconds(),
		}
		d.haveBstrStats = true
		content = decompressed
	}

	if !d.nest.Push(nesting.Frame{
		Kind:        nesting.KindBstrWrap,
		StartOffset: 0,
		EndOffset:   len(content),
		SavedCursor: d.off,
		SavedBuf:    d.buf,
	}) {
		return d.setErr(errs.ErrArrayOrMapNestingTooDeep)
	}

	d.buf = content
	d.off = 0
	d.end = len(content)
	return nil
}

// ExitBstrWrapped closes the innermost bstr-wrap level, discarding any
// unconsumed bytes inside it, and resumes the outer buffer exactly where
// EnterBstrWrapped left off.
func (d *Decoder) ExitBstrWrapped() error {
	if d.checkErr() {
		return d.err
	}

	top := d.nest.Top()
	if top == nil || top.Kind != nesting.KindBstrWrap {
		return d.setErr(errs.ErrExitMismatch)
	}

	frame, _ := d.nest.Pop()
	d.buf = frame.SavedBuf
	d.off = frame.SavedCursor
	d.end = len(frame.SavedBuf)
	return nil
}

// LastBstrWrapStats reports the compression statistics recorded by the most
// recent EnterBstrWrapped call that applied a non-identity codec. ok is
// false if no such call has happened yet.
func (d *Decoder) LastBstrWrapStats() (stats compress.Stats, ok bool) {
	return d.lastBstrStats, d.haveBstrStats
}
