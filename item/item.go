// Package item defines the decoded-item record produced by the decode
// package's pre-order engine: the tagged union of value kinds a CBOR item
// can carry, plus its optional map label and nesting-depth bookkeeping.
package item

import "github.com/nullbound/qcbor/types"

// LabelType distinguishes the representations a map label can take.
type LabelType uint8

const (
	LabelNone LabelType = iota
	LabelInt64
	LabelUint64
	LabelBytes
	LabelText
)

// Label holds a map/array label in whichever representation it was decoded.
type Label struct {
	Type  LabelType
	Int64 int64
	Uint  uint64
	Bytes []byte
	Text  string
}

// ExpMantissa carries the {exponent, mantissa} pair of a decimal-fraction or
// big-float item. Mantissa is either a signed 64-bit integer (MantissaBig is
// nil) or an arbitrary-precision big number encoded big-endian
// (MantissaBig non-nil, MantissaNeg true for a negative big number).
type ExpMantissa struct {
	Exponent    int64
	Mantissa    int64
	MantissaBig []byte
	MantissaNeg bool
}

// Item is one decoded CBOR data item in pre-order position.
type Item struct {
	Type ItemType

	Int64   int64
	Uint64  uint64
	Bytes   []byte
	Text    string
	Double  float64
	Simple  byte
	Count   uint32 // element count for Array/Map/MapAsArray; types.CountIndefinite if indefinite
	ExpMant ExpMantissa

	Label Label

	NestLevel     uint8
	NextNestLevel uint8

	DataAllocated  bool
	LabelAllocated bool

	TagBits    uint64
	tagNumbers []uint64 // every tag number on the item, in encounter order
}

// ItemType is an alias kept local to this package so call sites read
// item.ItemType instead of types.ItemType; the underlying values are shared.
type ItemType = types.ItemType

// IsContainer reports whether the item opens a new nesting level.
func (it Item) IsContainer() bool {
	switch it.Type {
	case types.TypeArray, types.TypeMap, types.TypeMapAsArray:
		return true
	default:
		return false
	}
}

// IsIndefinite reports whether a container item's length was not declared
// up front.
func (it Item) IsIndefinite() bool {
	return it.IsContainer() && it.Count == types.CountIndefinite
}

// ClosesLevels reports how many nesting levels end immediately after this
// item, derived from the gap between NestLevel and NextNestLevel.
func (it Item) ClosesLevels() int {
	if it.NextNestLevel >= it.NestLevel {
		return 0
	}
	return int(it.NestLevel - it.NextNestLevel)
}

// TagNumbers returns every tag number recorded against this item, in the
// order they were encountered on the wire. Built-in tags that folded the
// item's type are included alongside any caller-configured or unrecognised
// tag numbers.
func (it Item) TagNumbers() []uint64 {
	return append([]uint64(nil), it.tagNumbers...)
}

// WithTagNumbers returns a copy of it carrying the given tag-number list,
// used by the tag accumulator to attach the tag chain it tracked while
// assembling the item.
func (it Item) WithTagNumbers(tags []uint64) Item {
	it.tagNumbers = tags
	return it
}
