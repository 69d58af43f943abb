package decode

import (
	"math"

	"github.com/nullbound/qcbor/errs"
	"github.com/nullbound/qcbor/item"
	"github.com/nullbound/qcbor/types"
)

// ConvertOptions selects which source types GetInt64Convert/GetUint64Convert
// /GetDouble accept in addition to an item already of the requested type.
type ConvertOptions uint32

const (
	ConvertInt64 ConvertOptions = 1 << iota
	ConvertUint64
	ConvertFloat
	ConvertBigFloat
	ConvertDecimalFraction
	ConvertBigNum
)

// GetInt64 requires the next item to be a signed or unsigned integer that
// fits in int64, and stores it in out.
func (d *Decoder) GetInt64(out *int64) error {
	return d.GetInt64Convert(ConvertInt64|ConvertUint64, out)
}

// GetInt64Convert is GetInt64 plus, per opts, acceptance of a big number
// (ConvertBigNum) or floating-point item (ConvertFloat) whose value is a
// whole number representable in int64. Decimal-fraction and big-float items
// are not converted: they fail with errs.ErrUnexpectedType whatever opts is.
func (d *Decoder) GetInt64Convert(opts ConvertOptions, out *int64) error {
	if d.checkErr() {
		return d.err
	}
	it, err := d.getNextInternal0()
	if err != nil {
		return d.setErr(err)
	}

	switch it.Type {
	case types.TypeInt64:
		*out = it.Int64
		return nil
	case types.TypeUint64:
		if opts&ConvertUint64 == 0 {
			return d.setErr(errs.ErrConvertNotAllowed)
		}
		if it.Uint64 > math.MaxInt64 {
			return d.setErr(errs.ErrUintOverflow)
		}
		*out = int64(it.Uint64)
		return nil
	case types.TypeDouble:
		if opts&ConvertFloat == 0 {
			return d.setErr(errs.ErrConvertNotAllowed)
		}
		if it.Double != math.Trunc(it.Double) || it.Double > math.MaxInt64 || it.Double < math.MinInt64 {
			return d.setErr(errs.ErrConversionUnderOverflow)
		}
		*out = int64(it.Double)
		return nil
	case types.TypePosBignum, types.TypeNegBignum:
		if opts&ConvertBigNum == 0 {
			return d.setErr(errs.ErrConvertNotAllowed)
		}
		v, err := bignumToInt64(it)
		if err != nil {
			return d.setErr(err)
		}
		*out = v
		return nil
	default:
		return d.setErr(errs.ErrUnexpectedType)
	}
}

// GetUint64 requires the next item to be an unsigned integer, or a signed
// integer holding a non-negative value that fits in uint64.
func (d *Decoder) GetUint64(out *uint64) error {
	return d.GetUint64Convert(ConvertInt64|ConvertUint64, out)
}

// GetUint64Convert is GetUint64 plus, per opts, acceptance of a
// non-negative signed integer (ConvertInt64) or a floating-point item whose
// value is a whole number representable in uint64 (ConvertFloat). Big
// numbers, decimal fractions and big floats are not converted: they fail
// with errs.ErrUnexpectedType whatever opts is.
func (d *Decoder) GetUint64Convert(opts ConvertOptions, out *uint64) error {
	if d.checkErr() {
		return d.err
	}
	it, err := d.getNextInternal0()
	if err != nil {
		return d.setErr(err)
	}

	switch it.Type {
	case types.TypeUint64:
		*out = it.Uint64
		return nil
	case types.TypeInt64:
		if opts&ConvertInt64 == 0 {
			return d.setErr(errs.ErrConvertNotAllowed)
		}
		if it.Int64 < 0 {
			return d.setErr(errs.ErrIntOverflow)
		}
		*out = uint64(it.Int64)
		return nil
	case types.TypeDouble:
		if opts&ConvertFloat == 0 {
			return d.setErr(errs.ErrConvertNotAllowed)
		}
		if it.Double != math.Trunc(it.Double) || it.Double < 0 || it.Double > math.MaxUint64 {
			return d.setErr(errs.ErrConversionUnderOverflow)
		}
		*out = uint64(it.Double)
		return nil
	default:
		return d.setErr(errs.ErrUnexpectedType)
	}
}

// GetDouble requires the next item to be a double, or per opts an integer
// widened to float64.
func (d *Decoder) GetDouble(opts ConvertOptions, out *float64) error {
	if d.checkErr() {
		return d.err
	}
	it, err := d.getNextInternal0()
	if err != nil {
		return d.setErr(err)
	}

	switch it.Type {
	case types.TypeDouble:
		*out = it.Double
		return nil
	case types.TypeInt64:
		if opts&ConvertInt64 == 0 {
			return d.setErr(errs.ErrConvertNotAllowed)
		}
		*out = float64(it.Int64)
		return nil
	case types.TypeUint64:
		if opts&ConvertUint64 == 0 {
			return d.setErr(errs.ErrConvertNotAllowed)
		}
		*out = float64(it.Uint64)
		return nil
	default:
		return d.setErr(errs.ErrUnexpectedType)
	}
}

// GetBytes requires the next item to be a byte string.
func (d *Decoder) GetBytes(out *[]byte) error {
	if d.checkErr() {
		return d.err
	}
	it, err := d.getNextInternal0()
	if err != nil {
		return d.setErr(err)
	}
	if it.Type != types.TypeByteString {
		return d.setErr(errs.ErrUnexpectedType)
	}
	*out = it.Bytes
	return nil
}

// GetText requires the next item to be a text string.
func (d *Decoder) GetText(out *string) error {
	if d.checkErr() {
		return d.err
	}
	it, err := d.getNextInternal0()
	if err != nil {
		return d.setErr(err)
	}
	if it.Type != types.TypeTextString {
		return d.setErr(errs.ErrUnexpectedType)
	}
	*out = it.Text
	return nil
}

// GetPosBignum requires the next item to carry types.TagPosBignum.
func (d *Decoder) GetPosBignum(out *[]byte) error {
	return d.getBignum(out, types.TypePosBignum)
}

// GetNegBignum requires the next item to carry types.TagNegBignum. The
// returned bytes are the wire encoding (-1-n); the caller is responsible
// for any arithmetic negation.
func (d *Decoder) GetNegBignum(out *[]byte) error {
	return d.getBignum(out, types.TypeNegBignum)
}

func (d *Decoder) getBignum(out *[]byte, want types.ItemType) error {
	if d.checkErr() {
		return d.err
	}
	it, err := d.getNextInternal0()
	if err != nil {
		return d.setErr(err)
	}
	if it.Type != want {
		return d.setErr(errs.ErrUnexpectedType)
	}
	*out = it.Bytes
	return nil
}

// getNextInternal0 is getNextInternal without the tag-number slice, the
// common path for every spiffy scalar getter.
func (d *Decoder) getNextInternal0() (item.Item, error) {
	it, _, err := d.getNextInternal()
	if err != nil {
		return item.Item{}, err
	}
	if it.Type == types.TypeNone {
		return item.Item{}, errs.ErrNoMoreItems
	}
	return it, nil
}

func bignumToInt64(it item.Item) (int64, error) {
	var v uint64
	for _, b := range it.Bytes {
		if v > math.MaxUint64>>8 {
			return 0, errs.ErrConversionUnderOverflow
		}
		v = v<<8 | uint64(b)
	}
	if it.Type == types.TypeNegBignum {
		if v > math.MaxInt64 {
			return 0, errs.ErrConversionUnderOverflow
		}
		return -1 - int64(v), nil
	}
	if v > math.MaxInt64 {
		return 0, errs.ErrConversionUnderOverflow
	}
	return int64(v), nil
}

// GetInt64InMapInt looks up an integer-labeled map entry and converts it as
// GetInt64 would.
func (d *Decoder) GetInt64InMapInt(label int64, out *int64) error {
	if d.checkErr() {
		return d.err
	}
	it, err := d.getItemInMap(item.Label{Type: item.LabelInt64, Int64: label}, types.TypeNone)
	if err != nil {
		return d.setErr(err)
	}
	return d.convertScalarInto(it, out)
}

// GetInt64InMapText looks up a text-labeled map entry and converts it as
// GetInt64 would.
func (d *Decoder) GetInt64InMapText(label string, out *int64) error {
	if d.checkErr() {
		return d.err
	}
	it, err := d.getItemInMap(item.Label{Type: item.LabelText, Text: label}, types.TypeNone)
	if err != nil {
		return d.setErr(err)
	}
	return d.convertScalarInto(it, out)
}

func (d *Decoder) convertScalarInto(it item.Item, out *int64) error {
	switch it.Type {
	case types.TypeInt64:
		*out = it.Int64
	case types.TypeUint64:
		if it.Uint64 > math.MaxInt64 {
			return d.setErr(errs.ErrUintOverflow)
		}
		*out = int64(it.Uint64)
	default:
		return d.setErr(errs.ErrUnexpectedType)
	}
	return nil
}

// GetBytesInMapInt looks up an integer-labeled byte-string map entry.
func (d *Decoder) GetBytesInMapInt(label int64, out *[]byte) error {
	if d.checkErr() {
		return d.err
	}
	it, err := d.getItemInMap(item.Label{Type: item.LabelInt64, Int64: label}, types.TypeByteString)
	if err != nil {
		return d.setErr(err)
	}
	*out = it.Bytes
	return nil
}

// GetTextInMapText looks up a text-labeled text-string map entry.
func (d *Decoder) GetTextInMapText(label string, out *string) error {
	if d.checkErr() {
		return d.err
	}
	it, err := d.getItemInMap(item.Label{Type: item.LabelText, Text: label}, types.TypeTextString)
	if err != nil {
		return d.setErr(err)
	}
	*out = it.Text
	return nil
}
