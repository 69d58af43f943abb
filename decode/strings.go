package decode

import (
	"github.com/nullbound/qcbor/errs"
	"github.com/nullbound/qcbor/internal/pool"
	"github.com/nullbound/qcbor/internal/wire"
	"github.com/nullbound/qcbor/item"
	"github.com/nullbound/qcbor/types"
)

// decodeString decodes a definite- or indefinite-length byte/text string
// starting right after its head.
func (d *Decoder) decodeString(h wire.Head, off int) (item.Item, int, error) {
	strType := types.TypeByteString
	if h.Major == types.MajorTextString {
		strType = types.TypeTextString
	}

	if !h.IsIndefinite() {
		n := int(h.Arg)
		if n < 0 || off+n > d.end {
			return item.Item{}, off, d.setErr(errs.ErrHitEnd)
		}
		raw := d.buf[off : off+n]
		newOff := off + n

		if d.strAlloc != nil && d.strAllocAll {
			buf, ok := d.strAlloc.Allocate(n)
			if !ok {
				return item.Item{}, newOff, d.setErr(errs.ErrStringAllocate)
			}
			copy(buf, raw)
			raw = buf
			it := stringItem(strType, raw)
			it.DataAllocated = true
			return it, newOff, nil
		}

		return stringItem(strType, raw), newOff, nil
	}

	return d.decodeIndefiniteString(h.Major, strType, off)
}

func stringItem(t types.ItemType, raw []byte) item.Item {
	if t == types.TypeTextString {
		return item.Item{Type: t, Text: string(raw), Bytes: raw}
	}
	return item.Item{Type: t, Bytes: raw}
}

// decodeIndefiniteString reads successive definite-length chunks of major
// until a BREAK, concatenating them via the configured string allocator.
func (d *Decoder) decodeIndefiniteString(major types.MajorType, strType types.ItemType, off int) (item.Item, int, error) {
	if d.strAlloc == nil {
		return item.Item{}, off, d.setErr(errs.ErrNoStringAllocator)
	}

	buf := pool.NewByteBuffer(0)
	cursor := off

	for {
		h, next, err := wire.ReadHead(d.buf[:d.end], cursor)
		if err != nil {
			return item.Item{}, cursor, d.setErr(err)
		}

		if h.IsBreak() {
			cursor = next
			break
		}

		if h.Major != major || h.IsIndefinite() {
			return item.Item{}, cursor, d.setErr(errs.ErrIndefiniteStringChunk)
		}

		n := int(h.Arg)
		if next+n > d.end {
			return item.Item{}, cursor, d.setErr(errs.ErrHitEnd)
		}
		buf.MustWrite(d.buf[next : next+n])
		cursor = next + n
	}

	final, ok := d.strAlloc.Allocate(buf.Len())
	if !ok {
		return item.Item{}, cursor, d.setErr(errs.ErrStringAllocate)
	}
	copy(final, buf.Bytes())

	it := stringItem(strType, final)
	it.DataAllocated = true
	return it, cursor, nil
}
