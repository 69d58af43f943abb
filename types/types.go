// Package types defines the scalar enumerations shared across the qcbor
// decoder: the CBOR major type, the decoded item's logical type, decode
// mode flags, and the built-in tag numbers the decoder folds automatically.
package types

import "math"

// MajorType is the top three bits of a CBOR head byte.
type MajorType uint8

const (
	MajorUnsignedInt MajorType = 0
	MajorNegativeInt MajorType = 1
	MajorByteString  MajorType = 2
	MajorTextString  MajorType = 3
	MajorArray       MajorType = 4
	MajorMap         MajorType = 5
	MajorTag         MajorType = 6
	MajorSimple      MajorType = 7
)

func (m MajorType) String() string {
	switch m {
	case MajorUnsignedInt:
		return "unsigned-int"
	case MajorNegativeInt:
		return "negative-int"
	case MajorByteString:
		return "byte-string"
	case MajorTextString:
		return "text-string"
	case MajorArray:
		return "array"
	case MajorMap:
		return "map"
	case MajorTag:
		return "tag"
	case MajorSimple:
		return "simple/float"
	default:
		return "unknown-major-type"
	}
}

// Additional-info values with a special meaning, per RFC 8949 §3.
const (
	AddInfoOneByte    = 24
	AddInfoTwoBytes   = 25
	AddInfoFourBytes  = 26
	AddInfoEightBytes = 27
	AddInfoReserved1  = 28
	AddInfoReserved2  = 29
	AddInfoReserved3  = 30
	AddInfoIndefinite = 31
)

// Simple-value codes carried in major type 7.
const (
	SimpleFalse = 20
	SimpleTrue  = 21
	SimpleNull  = 22
	SimpleUndef = 23
	SimpleHalf  = 25
	SimpleFloat = 26
	SimpleDbl   = 27
	SimpleBreak = 31
)

// ItemType is the logical, tag-folded type of a decoded item.
type ItemType uint8

const (
	TypeNone ItemType = iota
	TypeInt64
	TypeUint64
	TypeArray
	TypeMap
	TypeMapAsArray
	TypeByteString
	TypeTextString
	TypePosBignum
	TypeNegBignum
	TypeDateString
	TypeDateEpoch
	TypeDaysEpoch
	TypeDaysString
	TypeDecimalFraction
	TypeDecimalFractionPosBignum
	TypeDecimalFractionNegBignum
	TypeBigFloat
	TypeBigFloatPosBignum
	TypeBigFloatNegBignum
	TypeFalse
	TypeTrue
	TypeNull
	TypeUndef
	TypeUnknownSimple
	TypeFloat
	TypeDouble
	TypeBreak
)

func (t ItemType) String() string {
	names := [...]string{
		"none", "int64", "uint64", "array", "map", "map-as-array",
		"byte-string", "text-string", "pos-bignum", "neg-bignum",
		"date-string", "date-epoch", "days-epoch", "days-string",
		"decimal-fraction", "decimal-fraction-pos-bignum", "decimal-fraction-neg-bignum",
		"big-float", "big-float-pos-bignum", "big-float-neg-bignum",
		"false", "true", "null", "undef", "unknown-simple",
		"float", "double", "break",
	}
	if int(t) < len(names) {
		return names[t]
	}
	return "invalid-item-type"
}

// CountIndefinite marks an array or map header whose element count was not
// declared up front; the pre-order engine learns the true extent from a
// trailing BREAK instead.
const CountIndefinite = math.MaxUint32

// DecodeMode selects how major type 5 items (CBOR maps) are surfaced.
type DecodeMode uint8

const (
	// ModeNormal surfaces maps as TypeMap items entered via EnterMap.
	ModeNormal DecodeMode = iota
	// ModeMapAsArray surfaces every map as a flat TypeMapAsArray item whose
	// count is doubled (label, value, label, value, ...), for callers that
	// want to walk maps without label semantics.
	ModeMapAsArray
)

// Built-in tag numbers the decoder folds automatically, per RFC 8949 and the
// IANA CBOR tags registry.
const (
	TagDateString       uint64 = 0
	TagDateEpoch        uint64 = 1
	TagPosBignum        uint64 = 2
	TagNegBignum        uint64 = 3
	TagDecimalFraction  uint64 = 4
	TagBigFloat         uint64 = 5
	TagCBOR             uint64 = 24
	TagDaysEpoch        uint64 = 100
	TagDaysString       uint64 = 1004
	TagSelfDescribeCBOR uint64 = 55799
)

// CompressionID selects the codec applied to a bstr-wrapped payload before
// it is parsed as nested CBOR. The zero value means "no compression."
type CompressionID uint8

const (
	CompressionNone CompressionID = iota
	CompressionZstd
	CompressionS2
	CompressionLZ4
)

func (c CompressionID) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionS2:
		return "s2"
	case CompressionLZ4:
		return "lz4"
	default:
		return "unknown-compression"
	}
}
