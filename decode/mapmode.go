package decode

import (
	"github.com/nullbound/qcbor/errs"
	"github.com/nullbound/qcbor/internal/nesting"
	"github.com/nullbound/qcbor/internal/pool"
	"github.com/nullbound/qcbor/item"
	"github.com/nullbound/qcbor/types"
)

// mapModeFrame tracks one open map- or array-mode level. Once a level is
// entered, its contents can be looked up with RewindMap/GetItemInMap*/
// GetItemsInMap or walked in order with GetNext; exitContainer handles a
// level that GetNext has already walked to its end.
type mapModeFrame struct {
	kind        nesting.Kind
	startOffset int    // offset of the first element inside the container
	count       uint32 // element/pair*2 count, or types.CountIndefinite
	pushedNest  bool   // whether getNextInternal left a matching frame on the nesting stack
}

func (d *Decoder) topMapFrame() *mapModeFrame {
	if len(d.mapStack) == 0 {
		return nil
	}
	return &d.mapStack[len(d.mapStack)-1]
}

func (d *Decoder) enterContainer(wantMap bool) error {
	if d.checkErr() {
		return d.err
	}
	it, _, err := d.getNextInternal()
	if err != nil {
		return d.setErr(err)
	}
	ok := (wantMap && it.Type == types.TypeMap) ||
		(!wantMap && (it.Type == types.TypeArray || it.Type == types.TypeMapAsArray))
	if !ok {
		return d.setErr(errs.ErrUnexpectedType)
	}

	kind := nesting.KindArray
	if wantMap {
		kind = nesting.KindMap
	}
	frame := mapModeFrame{
		kind:        kind,
		startOffset: d.off,
		count:       it.Count,
		pushedNest:  it.Count != 0,
	}
	d.mapStack = append(d.mapStack, frame)
	d.mapMode = true
	return nil
}

// EnterMap requires the next item in pre-order to be a map, and opens
// map-mode navigation over its entries.
func (d *Decoder) EnterMap() error { return d.enterContainer(true) }

// EnterArray requires the next item in pre-order to be an array, and opens
// map-mode navigation over its elements.
func (d *Decoder) EnterArray() error { return d.enterContainer(false) }

// exitContainer skips to the end of the innermost open level, pops it, and
// restores the decoder's cursor.
func (d *Decoder) exitContainer(wantMap bool) error {
	if d.checkErr() {
		return d.err
	}
	frame := d.topMapFrame()
	if frame == nil {
		return d.setErr(errs.ErrMapNotEntered)
	}
	wantKind := nesting.KindArray
	if wantMap {
		wantKind = nesting.KindMap
	}
	if frame.kind != wantKind {
		return d.setErr(errs.ErrExitMismatch)
	}

	end, err := d.skipContainerBody(frame.startOffset, frame.count)
	if err != nil {
		return d.setErr(err)
	}
	d.off = end

	// frame.pushedNest only says a nest.Frame was pushed when this level was
	// entered; a caller who walked the level to completion with GetNext
	// already triggered its auto-pop, so only pop here if our frame is
	// still the one on top.
	if frame.pushedNest {
		if top := d.nest.Top(); top != nil && top.StartOffset == frame.startOffset {
			d.nest.Pop()
		}
	}
	d.mapStack = d.mapStack[:len(d.mapStack)-1]
	d.mapMode = len(d.mapStack) > 0
	return nil
}

// ExitMap closes the innermost open map level.
func (d *Decoder) ExitMap() error { return d.exitContainer(true) }

// ExitArray closes the innermost open array level.
func (d *Decoder) ExitArray() error { return d.exitContainer(false) }

// RewindMap resets the cursor to the first entry of the innermost open
// level, without closing it.
func (d *Decoder) RewindMap() error {
	if d.checkErr() {
		return d.err
	}
	frame := d.topMapFrame()
	if frame == nil {
		return d.setErr(errs.ErrMapNotEntered)
	}
	d.off = frame.startOffset
	return nil
}

// skipContainerBody advances from startOffset past count elements (or, if
// count is types.CountIndefinite, past elements up to and including the
// terminating BREAK), returning the offset immediately after the
// container.
func (d *Decoder) skipContainerBody(startOffset int, count uint32) (int, error) {
	saved := d.off
	defer func() { d.off = saved }()

	d.off = startOffset
	if count == types.CountIndefinite {
		for {
			it, err := d.decodeRawItem()
			if err != nil {
				return 0, err
			}
			if it.Type == types.TypeBreak {
				return d.off, nil
			}
			if err := d.skipIfContainer(it); err != nil {
				return 0, err
			}
		}
	}

	for i := uint32(0); i < count; i++ {
		it, err := d.decodeRawItem()
		if err != nil {
			return 0, err
		}
		if err := d.skipIfContainer(it); err != nil {
			return 0, err
		}
	}
	return d.off, nil
}

// skipIfContainer advances past a container item's full body, having
// already consumed its head via decodeRawItem.
func (d *Decoder) skipIfContainer(it item.Item) error {
	if !it.IsContainer() {
		return nil
	}
	end, err := d.skipContainerBody(d.off, it.Count)
	if err != nil {
		return err
	}
	d.off = end
	return nil
}

// MapQuery is one label/type request passed to GetItemsInMap.
type MapQuery struct {
	Label    item.Label
	Expected types.ItemType // types.TypeNone to accept any type
}

func labelsEqual(a, b item.Label) bool {
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case item.LabelInt64:
		return a.Int64 == b.Int64
	case item.LabelUint64:
		return a.Uint == b.Uint
	case item.LabelText:
		return a.Text == b.Text
	case item.LabelBytes:
		return string(a.Bytes) == string(b.Bytes)
	default:
		return false
	}
}

func labelFromItem(it item.Item) (item.Label, error) {
	switch it.Type {
	case types.TypeInt64:
		return item.Label{Type: item.LabelInt64, Int64: it.Int64}, nil
	case types.TypeUint64:
		if it.Uint64 <= 1<<63-1 {
			return item.Label{Type: item.LabelInt64, Int64: int64(it.Uint64)}, nil
		}
		return item.Label{Type: item.LabelUint64, Uint: it.Uint64}, nil
	case types.TypeTextString:
		return item.Label{Type: item.LabelText, Text: it.Text}, nil
	case types.TypeByteString:
		return item.Label{Type: item.LabelBytes, Bytes: it.Bytes}, nil
	default:
		return item.Label{}, errs.ErrMapLabelType
	}
}

// getItemsInMap performs one rewound pass over the innermost map, matching
// every entry's label against queries. It never short-circuits: every
// entry is visited so duplicate labels are always detected.
func (d *Decoder) getItemsInMap(queries []MapQuery) ([]item.Item, error) {
	frame := d.topMapFrame()
	if frame == nil {
		return nil, errs.ErrMapNotEntered
	}

	results := make([]item.Item, len(queries))
	seen, releaseSeen := pool.GetUint64Slice(len(queries))
	defer releaseSeen()

	saved := d.off
	defer func() { d.off = saved }()
	d.off = frame.startOffset

	scanOne := func() (item.Item, item.Item, bool, error) {
		labelIt, err := d.decodeRawItem()
		if err != nil {
			return item.Item{}, item.Item{}, false, err
		}
		if labelIt.Type == types.TypeBreak {
			return item.Item{}, item.Item{}, false, nil
		}
		if err := d.skipIfContainer(labelIt); err != nil {
			return item.Item{}, item.Item{}, false, err
		}
		valIt, err := d.decodeRawItem()
		if err != nil {
			return item.Item{}, item.Item{}, false, err
		}
		if err := d.skipIfContainer(valIt); err != nil {
			return item.Item{}, item.Item{}, false, err
		}
		return labelIt, valIt, true, nil
	}

	visit := func() error {
		for {
			labelIt, valIt, ok, err := scanOne()
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			label, err := labelFromItem(labelIt)
			if err != nil {
				return err
			}
			for i, q := range queries {
				if labelsEqual(label, q.Label) {
					seen[i]++
					if seen[i] == 1 {
						results[i] = valIt
					}
				}
			}
		}
	}

	if frame.count == types.CountIndefinite {
		if err := visit(); err != nil {
			return nil, err
		}
	} else {
		for i := uint32(0); i < frame.count; i += 2 {
			labelIt, valIt, ok, err := scanOne()
			if err != nil {
				return nil, err
			}
			if !ok {
				break
			}
			label, err := labelFromItem(labelIt)
			if err != nil {
				return nil, err
			}
			for qi, q := range queries {
				if labelsEqual(label, q.Label) {
					seen[qi]++
					if seen[qi] == 1 {
						results[qi] = valIt
					}
				}
			}
		}
	}

	for i, q := range queries {
		if seen[i] > 1 {
			return nil, errs.ErrDuplicateLabel
		}
		if seen[i] == 0 {
			results[i] = item.Item{Type: types.TypeNone}
			continue
		}
		if q.Expected != types.TypeNone && results[i].Type != q.Expected {
			return nil, errs.ErrUnexpectedType
		}
	}
	return results, nil
}

// GetItemsInMap matches every query against the innermost open map in a
// single rewound pass, returning one item per query (types.TypeNone if a
// label was not found). Labels appearing more than once are always
// reported as ErrDuplicateLabel, even for queries that didn't ask for them,
// because the scan cannot tell in advance which duplicate a caller wanted.
func (d *Decoder) GetItemsInMap(queries []MapQuery) ([]item.Item, error) {
	if d.checkErr() {
		return nil, d.err
	}
	results, err := d.getItemsInMap(queries)
	if err != nil {
		return nil, d.setErr(err)
	}
	return results, nil
}

func (d *Decoder) getItemInMap(label item.Label, expected types.ItemType) (item.Item, error) {
	results, err := d.getItemsInMap([]MapQuery{{Label: label, Expected: expected}})
	if err != nil {
		return item.Item{}, err
	}
	it := results[0]
	if it.Type == types.TypeNone {
		return item.Item{}, errs.ErrLabelNotFound
	}
	return it, nil
}

// GetItemInMapInt looks up an integer-labeled entry in the innermost open
// map. The decoder's cursor is left unchanged by either outcome.
func (d *Decoder) GetItemInMapInt(label int64, expected types.ItemType) (item.Item, error) {
	if d.checkErr() {
		return item.Item{}, d.err
	}
	it, err := d.getItemInMap(item.Label{Type: item.LabelInt64, Int64: label}, expected)
	if err != nil {
		return item.Item{}, d.setErr(err)
	}
	return it, nil
}

// GetItemInMapText looks up a text-labeled entry in the innermost open map.
func (d *Decoder) GetItemInMapText(label string, expected types.ItemType) (item.Item, error) {
	if d.checkErr() {
		return item.Item{}, d.err
	}
	it, err := d.getItemInMap(item.Label{Type: item.LabelText, Text: label}, expected)
	if err != nil {
		return item.Item{}, d.setErr(err)
	}
	return it, nil
}

// EnterMapFromMapInt looks up an integer-labeled map entry and enters it.
func (d *Decoder) EnterMapFromMapInt(label int64) error {
	return d.enterNestedFromLabel(item.Label{Type: item.LabelInt64, Int64: label}, true)
}

// EnterMapFromMapText looks up a text-labeled map entry and enters it.
func (d *Decoder) EnterMapFromMapText(label string) error {
	return d.enterNestedFromLabel(item.Label{Type: item.LabelText, Text: label}, true)
}

// EnterArrayFromMapInt looks up an integer-labeled array entry and enters it.
func (d *Decoder) EnterArrayFromMapInt(label int64) error {
	return d.enterNestedFromLabel(item.Label{Type: item.LabelInt64, Int64: label}, false)
}

// EnterArrayFromMapText looks up a text-labeled array entry and enters it.
func (d *Decoder) EnterArrayFromMapText(label string) error {
	return d.enterNestedFromLabel(item.Label{Type: item.LabelText, Text: label}, false)
}

func (d *Decoder) enterNestedFromLabel(label item.Label, wantMap bool) error {
	if d.checkErr() {
		return d.err
	}
	expected := types.TypeArray
	if wantMap {
		expected = types.TypeMap
	}
	it, err := d.getItemInMap(label, types.TypeNone)
	if err != nil {
		return d.setErr(err)
	}
	if wantMap && it.Type != types.TypeMap {
		return d.setErr(errs.ErrUnexpectedType)
	}
	if !wantMap && it.Type != expected && it.Type != types.TypeMapAsArray {
		return d.setErr(errs.ErrUnexpectedType)
	}

	off, count, err := d.locateLabelValueHead(label)
	if err != nil {
		return d.setErr(err)
	}

	kind := nesting.KindArray
	if wantMap {
		kind = nesting.KindMap
	}

	d.off = off
	pushedNest := false
	if count != 0 {
		pushedNest = d.nest.Push(nesting.Frame{
			Kind:        kind,
			Count:       count,
			Remaining:   count,
			StartOffset: off,
		})
		if !pushedNest {
			return d.setErr(errs.ErrArrayOrMapNestingTooDeep)
		}
	}

	d.mapStack = append(d.mapStack, mapModeFrame{
		kind:        kind,
		startOffset: off,
		count:       count,
		pushedNest:  pushedNest,
	})
	d.mapMode = true
	return nil
}

// locateLabelValueHead rewinds to the top map, scans for label, decodes the
// matched value's head, and returns the offset of its first element plus
// its declared count. The cursor is restored to the map's start before
// returning, matching the rest of the map-mode API's no-side-effect
// contract on the outer level.
func (d *Decoder) locateLabelValueHead(label item.Label) (int, uint32, error) {
	frame := d.topMapFrame()
	if frame == nil {
		return 0, 0, errs.ErrMapNotEntered
	}

	saved := d.off
	defer func() { d.off = saved }()
	d.off = frame.startOffset

	scanPair := func() (item.Item, int, bool, error) {
		labelIt, err := d.decodeRawItem()
		if err != nil {
			return item.Item{}, 0, false, err
		}
		if labelIt.Type == types.TypeBreak {
			return item.Item{}, 0, false, nil
		}
		if err := d.skipIfContainer(labelIt); err != nil {
			return item.Item{}, 0, false, err
		}
		valueStart := d.off
		return labelIt, valueStart, true, nil
	}

	visitCount := func(limit uint32, indefinite bool) (int, uint32, error) {
		i := uint32(0)
		for indefinite || i < limit {
			labelIt, valueStart, ok, err := scanPair()
			if err != nil {
				return 0, 0, err
			}
			if !ok {
				break
			}
			gotLabel, err := labelFromItem(labelIt)
			if err == nil && labelsEqual(gotLabel, label) {
				valIt, err := d.decodeRawItem()
				if err != nil {
					return 0, 0, err
				}
				return d.off, valIt.Count, nil
			}
			valIt, err := d.decodeRawItem()
			if err != nil {
				return 0, 0, err
			}
			if err := d.skipIfContainer(valIt); err != nil {
				return 0, 0, err
			}
			i += 2
		}
		return 0, 0, errs.ErrLabelNotFound
	}

	return visitCount(frame.count, frame.count == types.CountIndefinite)
}
