// Package errs defines the sentinel errors returned by the decode packages
// and the three-tier classification (not-well-formed, unrecoverable,
// recoverable) used by the decoder's sticky error latch.
package errs

import "errors"

// Tier is the severity class of a decode error.
type Tier uint8

const (
	// TierSuccess means no error occurred.
	TierSuccess Tier = iota
	// TierNotWellFormed means the input bytes do not form legal CBOR.
	// Decoding cannot continue at all.
	TierNotWellFormed
	// TierUnrecoverable means the bytes are well-formed CBOR but an
	// implementation limit or structural requirement was violated.
	// Decoding cannot continue.
	TierUnrecoverable
	// TierRecoverable means a single item failed a semantic check; the
	// caller may choose to clear the error and keep decoding.
	TierRecoverable
)

// Not-well-formed errors: the input is not legal CBOR.
var (
	ErrHitEnd                = errors.New("qcbor: unexpected end of input")
	ErrBadBreak              = errors.New("qcbor: BREAK encountered outside an indefinite-length container")
	ErrBadInt                = errors.New("qcbor: indefinite length not allowed for integer major types")
	ErrBadType7              = errors.New("qcbor: invalid simple value encoding in major type 7")
	ErrIndefiniteStringChunk = errors.New("qcbor: indefinite-length string chunk has wrong major type or is itself indefinite")
	ErrExtraBytes            = errors.New("qcbor: unconsumed bytes remain after the top-level item")
	ErrBadTagContent         = errors.New("qcbor: malformed head for a tag number")
)

// Unrecoverable errors: well-formed CBOR that this decoder cannot process.
var (
	ErrUnsupported               = errors.New("qcbor: reserved additional-info value is not supported")
	ErrArrayOrMapStillOpen       = errors.New("qcbor: array, map, or bstr-wrap level was not closed before Finish")
	ErrArrayOrMapNestingTooDeep  = errors.New("qcbor: nesting exceeds the maximum supported depth")
	ErrArrayTooLong              = errors.New("qcbor: array or map item count exceeds the maximum supported length")
	ErrStringTooLong             = errors.New("qcbor: string length exceeds the maximum supported length")
	ErrNoStringAllocator         = errors.New("qcbor: indefinite-length string encountered with no string allocator configured")
	ErrStringAllocate            = errors.New("qcbor: string allocator failed to allocate or grow a buffer")
	ErrMapLabelType              = errors.New("qcbor: map label is not an integer or text string")
	ErrUnrecoverableTagContent   = errors.New("qcbor: built-in tag's content has the wrong type")
	ErrBadExponentOrMantissa     = errors.New("qcbor: decimal fraction or big float has a malformed exponent/mantissa pair")
	ErrIndefiniteLengthDisabled  = errors.New("qcbor: indefinite-length items are disabled in this decode mode")
	ErrHalfFloatDisabled         = errors.New("qcbor: half-precision floats are disabled in this decode mode")
	ErrTagContentDisallowed      = errors.New("qcbor: bstr-wrap content failed to decompress")
	ErrInputTooLarge             = errors.New("qcbor: input buffer exceeds the maximum supported size")
)

// Recoverable errors: a single requested item or conversion failed.
var (
	ErrTooManyTags              = errors.New("qcbor: item carries more tags than the decoder's tag table can hold")
	ErrUnexpectedType           = errors.New("qcbor: item's type does not match the type requested by the caller")
	ErrDuplicateLabel           = errors.New("qcbor: map contains more than one entry with the requested label")
	ErrLabelNotFound            = errors.New("qcbor: map does not contain an entry with the requested label")
	ErrIntOverflow              = errors.New("qcbor: negative integer value overflows the destination integer type")
	ErrUintOverflow             = errors.New("qcbor: unsigned integer value overflows a signed 64-bit result")
	ErrDateOverflow             = errors.New("qcbor: epoch date value overflows its destination representation")
	ErrExitMismatch             = errors.New("qcbor: Exit call does not match the type of the currently open level")
	ErrMapNotEntered            = errors.New("qcbor: map or array mode operation requires EnterMap/EnterArray first")
	ErrNoMoreItems              = errors.New("qcbor: no more items remain in the currently open map or array")
	ErrConversionUnderOverflow  = errors.New("qcbor: requested numeric conversion under- or overflows the destination type")
	ErrConvertNotAllowed        = errors.New("qcbor: item's type cannot be converted to the requested destination type")
	ErrCallbackFail             = errors.New("qcbor: caller-supplied callback aborted the map scan")
	ErrRecoverableBadTagContent = errors.New("qcbor: tag content is unusual but was recovered")
)

var notWellFormed = []error{
	ErrHitEnd, ErrBadBreak, ErrBadInt, ErrBadType7, ErrIndefiniteStringChunk,
	ErrExtraBytes, ErrBadTagContent,
}

var unrecoverable = []error{
	ErrUnsupported, ErrArrayOrMapStillOpen, ErrArrayOrMapNestingTooDeep,
	ErrArrayTooLong, ErrStringTooLong, ErrNoStringAllocator, ErrStringAllocate,
	ErrMapLabelType, ErrUnrecoverableTagContent, ErrBadExponentOrMantissa,
	ErrIndefiniteLengthDisabled, ErrHalfFloatDisabled, ErrTagContentDisallowed,
	ErrInputTooLarge,
}

var recoverable = []error{
	ErrTooManyTags, ErrUnexpectedType, ErrDuplicateLabel, ErrLabelNotFound,
	ErrIntOverflow, ErrUintOverflow, ErrDateOverflow, ErrExitMismatch,
	ErrMapNotEntered, ErrNoMoreItems, ErrConversionUnderOverflow,
	ErrConvertNotAllowed, ErrCallbackFail, ErrRecoverableBadTagContent,
}

func containsErr(list []error, target error) bool {
	for _, e := range list {
		if errors.Is(target, e) {
			return true
		}
	}
	return false
}

// IsNotWellFormed reports whether err belongs to the not-well-formed tier.
func IsNotWellFormed(err error) bool { return containsErr(notWellFormed, err) }

// IsUnrecoverable reports whether err belongs to the unrecoverable tier.
func IsUnrecoverable(err error) bool { return containsErr(unrecoverable, err) }

// IsRecoverable reports whether err belongs to the recoverable tier: the
// caller may clear it with Decoder.GetAndResetError and keep decoding.
func IsRecoverable(err error) bool { return containsErr(recoverable, err) }

// ClassifyTier returns the tier err belongs to, or TierSuccess if err is nil.
// An error that matches none of the tier tables (one not minted by this
// package) is classed as TierRecoverable.
func ClassifyTier(err error) Tier {
	switch {
	case err == nil:
		return TierSuccess
	case IsNotWellFormed(err):
		return TierNotWellFormed
	case IsUnrecoverable(err):
		return TierUnrecoverable
	case IsRecoverable(err):
		return TierRecoverable
	default:
		return TierRecoverable
	}
}
