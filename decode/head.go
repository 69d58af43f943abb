package decode

import (
	"github.com/nullbound/qcbor/errs"
	"github.com/nullbound/qcbor/internal/wire"
	"github.com/nullbound/qcbor/item"
	"github.com/nullbound/qcbor/types"
)

// decodeRawItem decodes exactly one CBOR item starting at the decoder's
// active cursor, including any tag chain preceding it and any built-in tag
// folding. It does not touch the nesting stack; the pre-order engine is
// responsible for pushing/popping levels for Array/Map items and for
// interpreting a returned TypeBreak item.
//
// It reads the decoder's current window (d.buf, d.off, d.end), which
// EnterBstrWrapped swaps to a different backing buffer, so no second copy
// of this logic is needed.
func (d *Decoder) decodeRawItem() (item.Item, error) {
	var tagChain []uint64
	var bits uint64

	for {
		h, next, err := wire.ReadHead(d.buf[:d.end], d.off)
		if err != nil {
			return item.Item{}, d.setErr(err)
		}

		if h.Major == types.MajorTag {
			tagChain = append(tagChain, h.Arg)
			bits = d.tags.Mark(bits, h.Arg)
			d.off = next
			continue
		}

		it, newOff, err := d.decodeContent(h, next)
		if err != nil {
			return item.Item{}, err
		}
		d.off = newOff

		if len(tagChain) > tagtableMaxPerItem {
			return item.Item{}, d.setErr(errs.ErrTooManyTags)
		}

		it.TagBits = bits
		it = it.WithTagNumbers(tagChain)
		if len(tagChain) > 0 {
			it, err = d.foldBuiltinTags(it, tagChain)
			if err != nil {
				return item.Item{}, d.setErr(err)
			}
		}
		return it, nil
	}
}

// tagtableMaxPerItem matches the original decoder's fixed per-item tag
// limit (QCBOR_MAX_TAGS_PER_ITEM).
const tagtableMaxPerItem = 4

// decodeContent interprets h (a non-tag head) and the bytes following it,
// producing the corresponding item. For byte/text strings it also handles
// indefinite-length reassembly.
func (d *Decoder) decodeContent(h wire.Head, off int) (item.Item, int, error) {
	switch h.Major {
	case types.MajorUnsignedInt:
		return item.Item{Type: types.TypeUint64, Uint64: h.Arg}, off, nil

	case types.MajorNegativeInt:
		if h.Arg > 1<<63-1 {
			return item.Item{}, off, d.setErr(errs.ErrIntOverflow)
		}
		return item.Item{Type: types.TypeInt64, Int64: -1 - int64(h.Arg)}, off, nil

	case types.MajorByteString, types.MajorTextString:
		return d.decodeString(h, off)

	case types.MajorArray:
		return d.decodeContainerHead(h, off, false)

	case types.MajorMap:
		return d.decodeContainerHead(h, off, true)

	case types.MajorSimple:
		return d.decodeSimple(h, off)

	default:
		return item.Item{}, off, d.setErr(errs.ErrUnsupported)
	}
}

func (d *Decoder) decodeContainerHead(h wire.Head, off int, isMap bool) (item.Item, int, error) {
	it := item.Item{}
	if isMap {
		it.Type = types.TypeMap
	} else {
		it.Type = types.TypeArray
	}
	if d.mode == types.ModeMapAsArray && isMap {
		it.Type = types.TypeMapAsArray
	}

	if h.IsIndefinite() {
		it.Count = types.CountIndefinite
		return it, off, nil
	}

	count := h.Arg
	if isMap {
		if count > (1<<32-1)/2 {
			return item.Item{}, off, d.setErr(errs.ErrArrayTooLong)
		}
		count *= 2
	}
	if count > types.CountIndefinite-1 {
		return item.Item{}, off, d.setErr(errs.ErrArrayTooLong)
	}
	it.Count = uint32(count)
	return it, off, nil
}

func (d *Decoder) decodeSimple(h wire.Head, off int) (item.Item, int, error) {
	switch {
	case h.AddInfo < types.AddInfoOneByte:
		return simpleFromCode(byte(h.AddInfo)), off, nil

	case h.AddInfo == types.AddInfoOneByte:
		if h.Arg < 32 {
			return item.Item{}, off, d.setErr(errs.ErrBadType7)
		}
		return simpleFromCode(byte(h.Arg)), off, nil

	case h.AddInfo == types.AddInfoTwoBytes:
		return item.Item{Type: types.TypeDouble, Double: wire.WidenHalf(uint16(h.Arg))}, off, nil

	case h.AddInfo == types.AddInfoFourBytes:
		return item.Item{Type: types.TypeDouble, Double: wire.WidenSingle(uint32(h.Arg))}, off, nil

	case h.AddInfo == types.AddInfoEightBytes:
		return item.Item{Type: types.TypeDouble, Double: wire.Double(h.Arg)}, off, nil

	case h.IsIndefinite():
		return item.Item{Type: types.TypeBreak}, off, nil

	default:
		return item.Item{}, off, d.setErr(errs.ErrUnsupported)
	}
}

func simpleFromCode(code byte) item.Item {
	switch code {
	case types.SimpleFalse:
		return item.Item{Type: types.TypeFalse, Simple: code}
	case types.SimpleTrue:
		return item.Item{Type: types.TypeTrue, Simple: code}
	case types.SimpleNull:
		return item.Item{Type: types.TypeNull, Simple: code}
	case types.SimpleUndef:
		return item.Item{Type: types.TypeUndef, Simple: code}
	default:
		return item.Item{Type: types.TypeUnknownSimple, Simple: code}
	}
}
