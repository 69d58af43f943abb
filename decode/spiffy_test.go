package decode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nullbound/qcbor/errs"
	"github.com/nullbound/qcbor/types"
)

func TestGetInt64FromUint(t *testing.T) {
	d, err := NewDecoder([]byte{0x18, 0x2a}, types.ModeNormal)
	require.NoError(t, err)

	var out int64
	require.NoError(t, d.GetInt64(&out))
	assert.EqualValues(t, 42, out)
}

func TestGetInt64FromNegative(t *testing.T) {
	d, err := NewDecoder([]byte{0x29}, types.ModeNormal)
	require.NoError(t, err)

	var out int64
	require.NoError(t, d.GetInt64(&out))
	assert.EqualValues(t, -10, out)
}

func TestGetInt64UintOverflow(t *testing.T) {
	// uint64 max, does not fit in int64.
	buf := []byte{0x1b, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
	d, err := NewDecoder(buf, types.ModeNormal)
	require.NoError(t, err)

	var out int64
	err = d.GetInt64(&out)
	assert.ErrorIs(t, err, errs.ErrUintOverflow)
}

func TestGetInt64ConvertFromDouble(t *testing.T) {
	// single-precision 3.0
	buf := []byte{0xfa, 0x40, 0x40, 0x00, 0x00}
	d, err := NewDecoder(buf, types.ModeNormal)
	require.NoError(t, err)

	var out int64
	require.NoError(t, d.GetInt64Convert(ConvertFloat, &out))
	assert.EqualValues(t, 3, out)
}

func TestGetInt64ConvertFromDoubleNotAllowed(t *testing.T) {
	buf := []byte{0xfa, 0x40, 0x40, 0x00, 0x00}
	d, err := NewDecoder(buf, types.ModeNormal)
	require.NoError(t, err)

	var out int64
	err = d.GetInt64Convert(0, &out)
	assert.ErrorIs(t, err, errs.ErrConvertNotAllowed)
}

func TestGetInt64ConvertFromNonWholeDouble(t *testing.T) {
	// single-precision 3.5
	buf := []byte{0xfa, 0x40, 0x60, 0x00, 0x00}
	d, err := NewDecoder(buf, types.ModeNormal)
	require.NoError(t, err)

	var out int64
	err = d.GetInt64Convert(ConvertFloat, &out)
	assert.ErrorIs(t, err, errs.ErrConversionUnderOverflow)
}

func TestGetInt64ConvertFromPosBignum(t *testing.T) {
	// tag(2) byte-string [0x01, 0x00] = 256
	buf := []byte{0xc2, 0x42, 0x01, 0x00}
	d, err := NewDecoder(buf, types.ModeNormal)
	require.NoError(t, err)

	var out int64
	require.NoError(t, d.GetInt64Convert(ConvertBigNum, &out))
	assert.EqualValues(t, 256, out)
}

func TestGetInt64ConvertFromNegBignum(t *testing.T) {
	// tag(3) byte-string [0x00] = -1-0 = -1
	buf := []byte{0xc3, 0x41, 0x00}
	d, err := NewDecoder(buf, types.ModeNormal)
	require.NoError(t, err)

	var out int64
	require.NoError(t, d.GetInt64Convert(ConvertBigNum, &out))
	assert.EqualValues(t, -1, out)
}

func TestGetUint64FromInt64NegativeOverflows(t *testing.T) {
	d, err := NewDecoder([]byte{0x29}, types.ModeNormal) // -10
	require.NoError(t, err)

	var out uint64
	err = d.GetUint64(&out)
	assert.ErrorIs(t, err, errs.ErrIntOverflow)
}

func TestGetUint64Plain(t *testing.T) {
	d, err := NewDecoder([]byte{0x18, 0x2a}, types.ModeNormal)
	require.NoError(t, err)

	var out uint64
	require.NoError(t, d.GetUint64(&out))
	assert.EqualValues(t, 42, out)
}

func TestGetDoublePlain(t *testing.T) {
	buf := []byte{0xfb, 0x40, 0x09, 0x21, 0xfb, 0x54, 0x44, 0x2d, 0x18} // float64 pi-ish
	d, err := NewDecoder(buf, types.ModeNormal)
	require.NoError(t, err)

	var out float64
	require.NoError(t, d.GetDouble(0, &out))
	assert.InDelta(t, 3.14159, out, 1e-5)
}

func TestGetDoubleConvertFromUint(t *testing.T) {
	d, err := NewDecoder([]byte{0x05}, types.ModeNormal)
	require.NoError(t, err)

	var out float64
	require.NoError(t, d.GetDouble(ConvertUint64, &out))
	assert.Equal(t, 5.0, out)
}

func TestGetBytesWrongType(t *testing.T) {
	d, err := NewDecoder([]byte{0x01}, types.ModeNormal)
	require.NoError(t, err)

	var out []byte
	err = d.GetBytes(&out)
	assert.ErrorIs(t, err, errs.ErrUnexpectedType)
}

func TestGetTextPlain(t *testing.T) {
	buf := append([]byte{0x62}, "hi"...)
	d, err := NewDecoder(buf, types.ModeNormal)
	require.NoError(t, err)

	var out string
	require.NoError(t, d.GetText(&out))
	assert.Equal(t, "hi", out)
}

func TestGetPosBignum(t *testing.T) {
	buf := []byte{0xc2, 0x42, 0x01, 0x00}
	d, err := NewDecoder(buf, types.ModeNormal)
	require.NoError(t, err)

	var out []byte
	require.NoError(t, d.GetPosBignum(&out))
	assert.Equal(t, []byte{0x01, 0x00}, out)
}

func TestGetNegBignumWrongTagFails(t *testing.T) {
	buf := []byte{0xc2, 0x42, 0x01, 0x00} // pos bignum, not neg
	d, err := NewDecoder(buf, types.ModeNormal)
	require.NoError(t, err)

	var out []byte
	err = d.GetNegBignum(&out)
	assert.ErrorIs(t, err, errs.ErrUnexpectedType)
}

func TestStickyLatchStopsSubsequentCalls(t *testing.T) {
	d, err := NewDecoder([]byte{0x01}, types.ModeNormal)
	require.NoError(t, err)

	var out []byte
	err = d.GetBytes(&out) // wrong type, latches ErrUnexpectedType
	require.Error(t, err)

	var i int64
	err2 := d.GetInt64(&i)
	assert.Equal(t, err, err2, "latched error must be returned verbatim by the next call")
}

func TestGetInt64InMapIntAndText(t *testing.T) {
	// {1: 10, "b": 20}
	buf := []byte{0xa2, 0x01, 0x0a, 0x61, 'b', 0x14}
	d, err := NewDecoder(buf, types.ModeNormal)
	require.NoError(t, err)
	require.NoError(t, d.EnterMap())

	var v1, v2 int64
	require.NoError(t, d.GetInt64InMapInt(1, &v1))
	assert.EqualValues(t, 10, v1)

	require.NoError(t, d.GetInt64InMapText("b", &v2))
	assert.EqualValues(t, 20, v2)

	require.NoError(t, d.ExitMap())
}
