package decode

import (
	"github.com/nullbound/qcbor/errs"
	"github.com/nullbound/qcbor/internal/nesting"
	"github.com/nullbound/qcbor/item"
	"github.com/nullbound/qcbor/types"
)

// GetNext returns the next item in pre-order. At the end of the input, with
// every opened level closed, it returns a zero-value item of type
// types.TypeNone and a nil error.
//
// Unlike the spiffy operations below, GetNext does not check the sticky
// error latch before running, but it does set the latch on failure.
func (d *Decoder) GetNext() (item.Item, error) {
	it, _, err := d.getNextInternal()
	return it, err
}

// GetNextWithTags is GetNext plus the full tag-number list for the item,
// equivalent to calling it.TagNumbers() on the returned item.
func (d *Decoder) GetNextWithTags() (item.Item, []uint64, error) {
	it, tags, err := d.getNextInternal()
	return it, tags, err
}

func (d *Decoder) getNextInternal() (item.Item, []uint64, error) {
	for {
		if d.off >= d.end {
			if d.nest.Empty() {
				return item.Item{Type: types.TypeNone}, nil, nil
			}
			return item.Item{}, nil, d.setErr(errs.ErrHitEnd)
		}

		nestBefore := d.nest.Depth()

		it, err := d.decodeRawItem()
		if err != nil {
			return item.Item{}, nil, err
		}

		if it.Type == types.TypeBreak {
			top := d.nest.Top()
			if top == nil || !top.Indefinite() {
				return item.Item{}, nil, d.setErr(errs.ErrBadBreak)
			}
			d.nest.Pop()
			continue
		}

		if nestBefore > 0 {
			d.nest.DecrementTop()
		}

		if it.IsContainer() {
			kind := nesting.KindArray
			if it.Type == types.TypeMap {
				kind = nesting.KindMap
			}
			if !d.nest.Push(nesting.Frame{
				Kind:        kind,
				Count:       it.Count,
				Remaining:   it.Count,
				StartOffset: d.off,
			}) {
				return item.Item{}, nil, d.setErr(errs.ErrArrayOrMapNestingTooDeep)
			}
		}

		for {
			top := d.nest.Top()
			if top == nil || top.Kind == nesting.KindBstrWrap {
				break
			}
			if top.Indefinite() {
				if d.off >= d.end || d.buf[d.off] != 0xff {
					break
				}
				d.off++
			} else if top.Remaining > 0 {
				break
			}
			d.nest.Pop()
		}

		it.NestLevel = uint8(nestBefore)
		it.NextNestLevel = uint8(d.nest.Depth())
		return it, it.TagNumbers(), nil
	}
}
