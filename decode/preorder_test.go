package decode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nullbound/qcbor/errs"
	"github.com/nullbound/qcbor/types"
)

func TestGetNextScalar(t *testing.T) {
	d, err := NewDecoder([]byte{0x01}, types.ModeNormal)
	require.NoError(t, err)

	it, err := d.GetNext()
	require.NoError(t, err)
	assert.Equal(t, types.TypeUint64, it.Type)
	assert.EqualValues(t, 1, it.Uint64)

	require.NoError(t, d.Finish())
}

func TestGetNextEndOfInputReturnsTypeNone(t *testing.T) {
	d, err := NewDecoder([]byte{0x01}, types.ModeNormal)
	require.NoError(t, err)

	_, err = d.GetNext()
	require.NoError(t, err)

	it, err := d.GetNext()
	require.NoError(t, err)
	assert.Equal(t, types.TypeNone, it.Type)
}

func TestGetNextDefiniteArrayNesting(t *testing.T) {
	// [1, 2]
	buf := []byte{0x82, 0x01, 0x02}
	d, err := NewDecoder(buf, types.ModeNormal)
	require.NoError(t, err)

	arr, err := d.GetNext()
	require.NoError(t, err)
	assert.Equal(t, types.TypeArray, arr.Type)
	assert.EqualValues(t, 2, arr.Count)
	assert.EqualValues(t, 0, arr.NestLevel)
	assert.EqualValues(t, 1, arr.NextNestLevel)

	first, err := d.GetNext()
	require.NoError(t, err)
	assert.EqualValues(t, 1, first.Uint64)
	assert.EqualValues(t, 1, first.NestLevel)
	assert.EqualValues(t, 1, first.NextNestLevel)

	second, err := d.GetNext()
	require.NoError(t, err)
	assert.EqualValues(t, 2, second.Uint64)
	assert.EqualValues(t, 0, second.NextNestLevel)
	assert.Equal(t, 1, second.ClosesLevels())

	require.NoError(t, d.Finish())
}

func TestGetNextIndefiniteArrayClosesOnBreak(t *testing.T) {
	// [_ 1, 2]
	buf := []byte{0x9f, 0x01, 0x02, 0xff}
	d, err := NewDecoder(buf, types.ModeNormal)
	require.NoError(t, err)

	arr, err := d.GetNext()
	require.NoError(t, err)
	assert.True(t, arr.IsIndefinite())

	_, err = d.GetNext()
	require.NoError(t, err)
	last, err := d.GetNext()
	require.NoError(t, err)
	assert.EqualValues(t, 0, last.NextNestLevel)

	require.NoError(t, d.Finish())
}

func TestGetNextBreakWithoutOpenIndefiniteLevelIsBadBreak(t *testing.T) {
	d, err := NewDecoder([]byte{0xff}, types.ModeNormal)
	require.NoError(t, err)

	_, err = d.GetNext()
	assert.ErrorIs(t, err, errs.ErrBadBreak)
}

func TestGetNextTruncatedArrayIsHitEnd(t *testing.T) {
	// Array declares 2 elements but only 1 is present.
	buf := []byte{0x82, 0x01}
	d, err := NewDecoder(buf, types.ModeNormal)
	require.NoError(t, err)

	_, err = d.GetNext()
	require.NoError(t, err)
	_, err = d.GetNext()
	require.NoError(t, err)

	_, err = d.GetNext()
	assert.ErrorIs(t, err, errs.ErrHitEnd)
}

func TestFinishReportsUnclosedLevel(t *testing.T) {
	buf := []byte{0x82, 0x01, 0x02}
	d, err := NewDecoder(buf, types.ModeNormal)
	require.NoError(t, err)

	require.NoError(t, d.EnterArray())

	err = d.Finish()
	assert.ErrorIs(t, err, errs.ErrArrayOrMapStillOpen)
}

func TestFinishReportsExtraBytes(t *testing.T) {
	buf := []byte{0x01, 0x02}
	d, err := NewDecoder(buf, types.ModeNormal)
	require.NoError(t, err)

	_, err = d.GetNext()
	require.NoError(t, err)

	err = d.Finish()
	assert.ErrorIs(t, err, errs.ErrExtraBytes)
}

func TestGetNextWithTagsReturnsTagNumbers(t *testing.T) {
	// tag(1004) (days-string) applied to the text string "x":
	// 0xd9 0x03 0xec (tag, two-byte arg 1004), 0x61 'x' (text string, len 1).
	buf := []byte{0xd9, 0x03, 0xec, 0x61, 'x'}
	d, err := NewDecoder(buf, types.ModeNormal)
	require.NoError(t, err)

	it, tags, err := d.GetNextWithTags()
	require.NoError(t, err)
	assert.Equal(t, types.TypeDaysString, it.Type)
	assert.Equal(t, []uint64{1004}, tags)
}
