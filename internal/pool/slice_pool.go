package pool

import "sync"

// Slice pools for efficient reuse of typed slices used while scanning a map
// in a single pass for several labels at once (GetItemsInMap).
var (
	boolSlicePool = sync.Pool{
		New: func() any { return &[]bool{} },
	}
	uint64SlicePool = sync.Pool{
		New: func() any { return &[]uint64{} },
	}
)

// GetBoolSlice retrieves and resizes a bool slice from the pool, all
// elements zeroed.
//
// The returned slice will have the exact length specified by the size
// parameter. If the pooled slice has insufficient capacity, a new slice
// will be allocated. The caller must call the returned cleanup function to
// return the slice to the pool.
func GetBoolSlice(size int) ([]bool, func()) {
	ptr, _ := boolSlicePool.Get().(*[]bool)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]bool, size)
		*ptr = slice
	} else {
		slice = slice[:size]
		for i := range slice {
			slice[i] = false
		}
		*ptr = slice
	}

	return slice, func() { boolSlicePool.Put(ptr) }
}

// GetUint64Slice retrieves and resizes a uint64 slice from the pool, all
// elements zeroed, used as a per-label match counter while scanning a map
// for several queries at once (getItemsInMap).
//
// The returned slice will have the exact length specified by the size
// parameter. If the pooled slice has insufficient capacity, a new slice
// will be allocated. The caller must call the returned cleanup function to
// return the slice to the pool.
func GetUint64Slice(size int) ([]uint64, func()) {
	ptr, _ := uint64SlicePool.Get().(*[]uint64)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]uint64, size)
		*ptr = slice
	} else {
		slice = slice[:size]
		for i := range slice {
			slice[i] = 0
		}
		*ptr = slice
	}

	return slice, func() { uint64SlicePool.Put(ptr) }
}
