package decode

import (
	"github.com/nullbound/qcbor/errs"
	"github.com/nullbound/qcbor/internal/tagtable"
	"github.com/nullbound/qcbor/item"
	"github.com/nullbound/qcbor/types"
)

// foldBuiltinTags inspects tagChain outermost-first and, on the first
// built-in tag number found, transforms it into the corresponding
// specialised type. Every tag number in tagChain remains available via
// it.TagNumbers() regardless of whether one of them triggered a fold.
//
// Tags 4 and 5 (decimal fraction, big float) wrap a two-element array that
// is consumed here rather than left in the pre-order stream, matching how
// the original decoder treats them as a single compound value.
func (d *Decoder) foldBuiltinTags(it item.Item, tagChain []uint64) (item.Item, error) {
	for _, tag := range tagChain {
		if !tagtable.IsBuiltin(tag) {
			continue
		}
		folded, err := d.foldOne(it, tag)
		if err != nil {
			return item.Item{}, err
		}
		return folded, nil
	}
	return it, nil
}

func (d *Decoder) foldOne(it item.Item, tag uint64) (item.Item, error) {
	switch tag {
	case types.TagDateString:
		if it.Type != types.TypeTextString {
			return item.Item{}, errs.ErrUnrecoverableTagContent
		}
		it.Type = types.TypeDateString
		return it, nil

	case types.TagDateEpoch:
		return foldEpoch(it, types.TypeDateEpoch)

	case types.TagDaysEpoch:
		return foldEpoch(it, types.TypeDaysEpoch)

	case types.TagDaysString:
		if it.Type != types.TypeTextString {
			return item.Item{}, errs.ErrUnrecoverableTagContent
		}
		it.Type = types.TypeDaysString
		return it, nil

	case types.TagPosBignum:
		if it.Type != types.TypeByteString {
			return item.Item{}, errs.ErrUnrecoverableTagContent
		}
		it.Type = types.TypePosBignum
		return it, nil

	case types.TagNegBignum:
		if it.Type != types.TypeByteString {
			return item.Item{}, errs.ErrUnrecoverableTagContent
		}
		it.Type = types.TypeNegBignum
		return it, nil

	case types.TagCBOR:
		if it.Type != types.TypeByteString {
			return item.Item{}, errs.ErrUnrecoverableTagContent
		}
		// Type stays TypeByteString; EnterBstrWrapped accepts the byte
		// string with or without this tag, so a caller who doesn't enter
		// the wrap still sees a plain byte string.
		return it, nil

	case types.TagDecimalFraction:
		return d.foldExpMantissa(it, types.TypeDecimalFraction, types.TypeDecimalFractionPosBignum, types.TypeDecimalFractionNegBignum)

	case types.TagBigFloat:
		return d.foldExpMantissa(it, types.TypeBigFloat, types.TypeBigFloatPosBignum, types.TypeBigFloatNegBignum)

	default:
		return it, nil
	}
}

func foldEpoch(it item.Item, target types.ItemType) (item.Item, error) {
	switch it.Type {
	case types.TypeUint64:
		if it.Uint64 > 1<<63-1 {
			return item.Item{}, errs.ErrDateOverflow
		}
		it.Int64 = int64(it.Uint64)
	case types.TypeInt64:
		// already in Int64
	case types.TypeDouble:
		sec, frac := splitEpoch(it.Double)
		it.Int64 = sec
		it.Double = frac
	default:
		return item.Item{}, errs.ErrUnrecoverableTagContent
	}
	it.Type = target
	return it, nil
}

func splitEpoch(v float64) (seconds int64, fraction float64) {
	sec := int64(v)
	return sec, v - float64(sec)
}

// foldExpMantissa consumes the array item's two elements (already known to
// exist because it.Count == 2) and assembles an ExpMantissa.
func (d *Decoder) foldExpMantissa(it item.Item, plain, posBig, negBig types.ItemType) (item.Item, error) {
	if it.Type != types.TypeArray || it.Count != 2 {
		return item.Item{}, errs.ErrUnrecoverableTagContent
	}

	expItem, err := d.decodeRawItem()
	if err != nil {
		return item.Item{}, err
	}
	if expItem.Type != types.TypeInt64 && expItem.Type != types.TypeUint64 {
		return item.Item{}, errs.ErrBadExponentOrMantissa
	}
	exponent := expItem.Int64
	if expItem.Type == types.TypeUint64 {
		exponent = int64(expItem.Uint64)
	}

	mantItem, err := d.decodeRawItem()
	if err != nil {
		return item.Item{}, err
	}

	out := item.Item{ExpMant: item.ExpMantissa{Exponent: exponent}, TagBits: it.TagBits}.WithTagNumbers(it.TagNumbers())
	switch mantItem.Type {
	case types.TypeInt64:
		out.Type = plain
		out.ExpMant.Mantissa = mantItem.Int64
	case types.TypeUint64:
		out.Type = plain
		out.ExpMant.Mantissa = int64(mantItem.Uint64)
	case types.TypePosBignum:
		out.Type = posBig
		out.ExpMant.MantissaBig = mantItem.Bytes
	case types.TypeNegBignum:
		out.Type = negBig
		out.ExpMant.MantissaBig = mantItem.Bytes
		out.ExpMant.MantissaNeg = true
	default:
		return item.Item{}, errs.ErrBadExponentOrMantissa
	}

	return out, nil
}

// IsTagged reports whether it carries tagNumber anywhere in its tag chain,
// whether or not that tag occupies a TagBits slot.
func (d *Decoder) IsTagged(it item.Item, tagNumber uint64) bool {
	for _, t := range it.TagNumbers() {
		if t == tagNumber {
			return true
		}
	}
	return false
}
