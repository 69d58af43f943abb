// Package allocator defines the string-allocator protocol the decoder uses
// to reassemble indefinite-length strings into a single contiguous buffer,
// plus two built-in implementations: a bump-pointer pool and a plain Go
// heap allocator.
package allocator

import "github.com/nullbound/qcbor/internal/pool"

// StringAllocator is implemented by callers who want the decoder to
// reassemble indefinite-length byte/text strings rather than fail on them.
//
// The decoder only ever calls Reallocate or Free on the buffer most
// recently returned by Allocate or Reallocate, which permits a
// bump-pointer implementation with no free list.
type StringAllocator interface {
	// Allocate returns a new buffer of the requested size, or ok=false if
	// the allocator cannot satisfy the request.
	Allocate(size int) (buf []byte, ok bool)
	// Reallocate grows or shrinks old, the most recent allocation, to
	// newSize, or returns ok=false if it cannot.
	Reallocate(old []byte, newSize int) (buf []byte, ok bool)
	// Free releases old, the most recent allocation.
	Free(old []byte)
	// Destruct tears down the allocator at the end of decoding.
	Destruct()
}

// MemPool is a bump-pointer StringAllocator backed by a single growable
// buffer. It only supports freeing or reallocating its most recently
// returned allocation; anything else panics, documenting the decoder's
// actual usage contract instead of silently accepting a violation of it.
type MemPool struct {
	buf  *pool.ByteBuffer
	last []byte // the most recent allocation, a sub-slice of buf.B
}

// NewMemPool returns a MemPool seeded with an initial capacity.
func NewMemPool(initialCapacity int) *MemPool {
	if initialCapacity <= 0 {
		initialCapacity = pool.StringBufferDefaultSize
	}
	return &MemPool{buf: pool.NewByteBuffer(initialCapacity)}
}

// Allocate implements StringAllocator.
func (p *MemPool) Allocate(size int) ([]byte, bool) {
	if size <= 0 {
		return nil, false
	}
	start := p.buf.Len()
	p.buf.ExtendOrGrow(size)
	p.last = p.buf.Bytes()[start : start+size]
	return p.last, true
}

// Reallocate implements StringAllocator. old must be the slice most
// recently returned by Allocate or Reallocate.
func (p *MemPool) Reallocate(old []byte, newSize int) ([]byte, bool) {
	if len(old) != len(p.last) || (len(old) > 0 && &old[0] != &p.last[0]) {
		panic("allocator: MemPool.Reallocate called on a buffer other than its most recent allocation")
	}
	start := p.buf.Len() - len(old)
	if start < 0 {
		panic("allocator: MemPool.Reallocate called on a non-trailing allocation")
	}
	p.buf.SetLength(start)
	p.buf.ExtendOrGrow(newSize)
	p.last = p.buf.Bytes()[start : start+newSize]
	copy(p.last, old)
	return p.last, true
}

// Free implements StringAllocator. old must be the slice most recently
// returned by Allocate or Reallocate.
func (p *MemPool) Free(old []byte) {
	if len(old) != len(p.last) || (len(old) > 0 && &old[0] != &p.last[0]) {
		panic("allocator: MemPool.Free called on a buffer other than its most recent allocation")
	}
	start := p.buf.Len() - len(old)
	if start < 0 {
		panic("allocator: MemPool.Free called on a non-trailing allocation")
	}
	p.buf.SetLength(start)
	p.last = nil
}

// Destruct implements StringAllocator.
func (p *MemPool) Destruct() {
	pool.PutStringBuffer(p.buf)
	p.buf = nil
	p.last = nil
}

// GoHeapAllocator is a StringAllocator backed by plain make([]byte, n)
// calls, for callers who would rather take the GC hit than wire up a pool.
type GoHeapAllocator struct{}

// NewGoHeapAllocator returns a GoHeapAllocator.
func NewGoHeapAllocator() GoHeapAllocator { return GoHeapAllocator{} }

func (GoHeapAllocator) Allocate(size int) ([]byte, bool) {
	if size <= 0 {
		return nil, false
	}
	return make([]byte, size), true
}

func (GoHeapAllocator) Reallocate(old []byte, newSize int) ([]byte, bool) {
	buf := make([]byte, newSize)
	copy(buf, old)
	return buf, true
}

func (GoHeapAllocator) Free([]byte) {}
func (GoHeapAllocator) Destruct()   {}
