// Package decode implements a decoder for CBOR (RFC 8949), modeled as a
// cursor over a caller-supplied byte buffer that supports both flat
// pre-order traversal (GetNext) and map-mode random access by label.
//
// A Decoder is NOT safe for concurrent use. All methods must be called from
// a single goroutine.
package decode

import (
	"fmt"

	"github.com/nullbound/qcbor/allocator"
	"github.com/nullbound/qcbor/compress"
	"github.com/nullbound/qcbor/errs"
	"github.com/nullbound/qcbor/internal/nesting"
	"github.com/nullbound/qcbor/internal/options"
	"github.com/nullbound/qcbor/internal/tagtable"
	"github.com/nullbound/qcbor/types"
)

// Option configures a Decoder at construction time.
type Option = options.Option[*Decoder]

// Decoder walks a CBOR-encoded byte buffer.
type Decoder struct {
	buf []byte
	off int
	end int // end of the currently active buffer (len(buf) for the outer document)

	mode types.DecodeMode

	nest nesting.Stack

	tags *tagtable.Table

	strAlloc      allocator.StringAllocator
	strAllocAll   bool
	bstrCodec     compress.Codec
	bstrCodecID   types.CompressionID
	lastBstrStats compress.Stats
	haveBstrStats bool

	err error

	mapMode  bool
	mapStack []mapModeFrame
}

// NewDecoder returns a Decoder over buf. mode selects how CBOR maps are
// surfaced; pass types.ModeNormal for the common case.
func NewDecoder(buf []byte, mode types.DecodeMode, opts ...Option) (*Decoder, error) {
	d := &Decoder{
		buf:       buf,
		end:       len(buf),
		mode:      mode,
		tags:      tagtable.New(),
		bstrCodec: compress.NewNoOpCompressor(),
	}
	if err := options.ApplyAll(d, opts...); err != nil {
		return nil, err
	}
	return d, nil
}

// WithCallerConfiguredTagNumbers pre-registers tag numbers the caller wants
// tracked in an item's TagBits in addition to the built-in tags.
func WithCallerConfiguredTagNumbers(tagNumbers []uint64) Option {
	return options.Validating(func(d *Decoder) error {
		return d.SetCallerConfiguredTagNumbers(tagNumbers)
	})
}

// WithMemPool configures the decoder's built-in bump-pointer string
// allocator, used to reassemble indefinite-length strings.
func WithMemPool(initialCapacity int, allStrings bool) Option {
	return options.Always(func(d *Decoder) {
		_ = d.SetMemPool(initialCapacity, allStrings)
	})
}

// WithStringAllocator configures a caller-supplied string allocator.
func WithStringAllocator(a allocator.StringAllocator, allStrings bool) Option {
	return options.Always(func(d *Decoder) {
		d.SetStringAllocator(a, allStrings)
	})
}

// WithBstrWrapCompression configures the codec EnterBstrWrapped applies to
// a wrapped byte string's bytes before parsing them as nested CBOR.
func WithBstrWrapCompression(id types.CompressionID) Option {
	return options.Validating(func(d *Decoder) error {
		return d.SetBstrWrapCompression(id)
	})
}

// SetMemPool installs the built-in bump-pointer allocator with the given
// initial capacity (in bytes, ignored if <= 0) as the decoder's string
// allocator. If allStrings is true, every string (not only indefinite-length
// ones) is copied into the pool; this is useful when the caller needs
// decoded strings to outlive the input buffer.
func (d *Decoder) SetMemPool(initialCapacity int, allStrings bool) error {
	d.strAlloc = allocator.NewMemPool(initialCapacity)
	d.strAllocAll = allStrings
	return nil
}

// SetStringAllocator installs a caller-supplied string allocator.
func (d *Decoder) SetStringAllocator(a allocator.StringAllocator, allStrings bool) {
	d.strAlloc = a
	d.strAllocAll = allStrings
}

// SetCallerConfiguredTagNumbers registers additional tag numbers the
// decoder should track, beyond the built-in set, in an item's TagBits.
func (d *Decoder) SetCallerConfiguredTagNumbers(tagNumbers []uint64) error {
	for _, t := range tagNumbers {
		if !d.tags.RegisterCaller(t) {
			return fmt.Errorf("qcbor: cannot register tag number %d: %w", t, errs.ErrTooManyTags)
		}
	}
	return nil
}

// SetBstrWrapCompression installs the codec EnterBstrWrapped will use to
// decompress a wrapped byte string's bytes before parsing them.
func (d *Decoder) SetBstrWrapCompression(id types.CompressionID) error {
	codec, err := compress.GetCodec(id)
	if err != nil {
		return err
	}
	d.bstrCodec = codec
	d.bstrCodecID = id
	return nil
}

// Error returns the decoder's currently latched error, or nil.
func (d *Decoder) Error() error {
	return d.err
}

// GetAndResetError returns the latched error and clears it, allowing
// decoding to continue after a recoverable failure.
func (d *Decoder) GetAndResetError() error {
	err := d.err
	d.err = nil
	return err
}

// setErr latches err if the latch is not already set, and always returns
// the (possibly newly latched) error.
func (d *Decoder) setErr(err error) error {
	if d.err == nil {
		d.err = err
	}
	return err
}

// checkErr is called at the top of every spiffy operation; it reports
// whether the latch is already set, in which case the operation must be a
// no-op.
func (d *Decoder) checkErr() bool {
	return d.err != nil
}

// InMapMode reports whether the decoder currently has a map or array level
// open via EnterMap/EnterArray (not counting bstr-wrap levels).
func (d *Decoder) InMapMode() bool {
	return d.mapMode
}

// Finish confirms every opened level was closed and the input was fully
// consumed, and tears down the string allocator. It returns the decoder's
// latched error if one was set, and leaves the latch cleared.
func (d *Decoder) Finish() error {
	defer func() {
		if d.strAlloc != nil {
			d.strAlloc.Destruct()
		}
		d.err = nil
	}()

	if d.err != nil {
		return d.err
	}
	if !d.nest.Empty() {
		return d.setErr(errs.ErrArrayOrMapStillOpen)
	}
	if d.off != len(d.buf) {
		return d.setErr(errs.ErrExtraBytes)
	}
	return nil
}
