package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// ByteBuffer Tests
// =============================================================================

func TestNewByteBuffer(t *testing.T) {
	capacity := 1024
	bb := NewByteBuffer(capacity)

	require.NotNil(t, bb)
	require.NotNil(t, bb.B)
	assert.Equal(t, 0, len(bb.B), "new buffer should have zero length")
	assert.Equal(t, capacity, cap(bb.B), "new buffer should have specified capacity")
}

func TestByteBuffer_Bytes(t *testing.T) {
	bb := NewByteBuffer(StringBufferDefaultSize)
	bb.MustWrite([]byte("hello"))

	got := bb.Bytes()

	assert.Equal(t, []byte("hello"), got)
	assert.Same(t, &bb.B[0], &got[0], "Bytes() should return the same underlying slice")
}

func TestByteBuffer_Reset(t *testing.T) {
	bb := NewByteBuffer(StringBufferDefaultSize)
	bb.MustWrite([]byte("some data"))
	originalCap := cap(bb.B)

	bb.Reset()

	assert.Equal(t, 0, len(bb.B), "Reset should clear the buffer length")
	assert.Equal(t, originalCap, cap(bb.B), "Reset should preserve capacity")
}

func TestByteBuffer_Len(t *testing.T) {
	bb := NewByteBuffer(StringBufferDefaultSize)

	assert.Equal(t, 0, bb.Len(), "empty buffer should have zero length")

	bb.MustWrite([]byte("test"))
	assert.Equal(t, 4, bb.Len(), "buffer length should match data")

	bb.MustWrite([]byte(" data"))
	assert.Equal(t, 9, bb.Len(), "buffer length should update after append")
}

func TestByteBuffer_Cap(t *testing.T) {
	bb := NewByteBuffer(64)
	assert.Equal(t, 64, bb.Cap())
}

func TestByteBuffer_MustWrite(t *testing.T) {
	bb := NewByteBuffer(StringBufferDefaultSize)
	bb.MustWrite([]byte("chunk1"))
	bb.MustWrite([]byte("chunk2"))

	assert.Equal(t, "chunk1chunk2", string(bb.Bytes()))
}

func TestByteBuffer_MustWrite_EmptyData(t *testing.T) {
	bb := NewByteBuffer(StringBufferDefaultSize)
	bb.MustWrite(nil)

	assert.Equal(t, 0, bb.Len())
}

func TestByteBuffer_MustWrite_GrowsBeyondInitialCapacity(t *testing.T) {
	bb := NewByteBuffer(4)
	bb.MustWrite([]byte("this is longer than four bytes"))

	assert.Equal(t, "this is longer than four bytes", string(bb.Bytes()))
}

func TestByteBuffer_Slice(t *testing.T) {
	bb := NewByteBuffer(StringBufferDefaultSize)
	bb.MustWrite([]byte("hello world"))

	assert.Equal(t, []byte("hello"), bb.Slice(0, 5))
	assert.Equal(t, []byte("world"), bb.Slice(6, 11))
}

func TestByteBuffer_Slice_InvalidIndices(t *testing.T) {
	bb := NewByteBuffer(StringBufferDefaultSize)
	bb.MustWrite([]byte("hello"))

	assert.Panics(t, func() { bb.Slice(-1, 2) })
	assert.Panics(t, func() { bb.Slice(3, 1) })
	assert.Panics(t, func() { bb.Slice(0, cap(bb.B)+1) })
}

func TestByteBuffer_SetLength(t *testing.T) {
	bb := NewByteBuffer(16)
	bb.SetLength(10)
	assert.Equal(t, 10, bb.Len())
}

func TestByteBuffer_SetLength_InvalidLength(t *testing.T) {
	bb := NewByteBuffer(16)

	assert.Panics(t, func() { bb.SetLength(-1) })
	assert.Panics(t, func() { bb.SetLength(cap(bb.B) + 1) })
}

func TestByteBuffer_Extend(t *testing.T) {
	bb := NewByteBuffer(16)

	ok := bb.Extend(8)
	assert.True(t, ok)
	assert.Equal(t, 8, bb.Len())
}

func TestByteBuffer_Extend_InsufficientCapacity(t *testing.T) {
	bb := NewByteBuffer(4)

	ok := bb.Extend(8)
	assert.False(t, ok)
	assert.Equal(t, 0, bb.Len())
}

func TestByteBuffer_ExtendOrGrow(t *testing.T) {
	bb := NewByteBuffer(4)
	bb.ExtendOrGrow(8)

	assert.Equal(t, 8, bb.Len())
	assert.GreaterOrEqual(t, cap(bb.B), 8)
}

func TestByteBuffer_Grow_SufficientCapacity(t *testing.T) {
	bb := NewByteBuffer(StringBufferDefaultSize)
	originalCap := cap(bb.B)

	bb.Grow(10)

	assert.Equal(t, originalCap, cap(bb.B), "should not reallocate when capacity is sufficient")
}

func TestByteBuffer_Grow_SmallBuffer(t *testing.T) {
	bb := NewByteBuffer(StringBufferDefaultSize)
	bb.MustWrite(make([]byte, StringBufferDefaultSize)) // fill to capacity

	bb.Grow(1024)

	assert.GreaterOrEqual(t, cap(bb.B), StringBufferDefaultSize+1024, "should have at least requested capacity")
	assert.Equal(t, StringBufferDefaultSize, len(bb.B), "length should not change")
}

func TestByteBuffer_Grow_LargeBuffer(t *testing.T) {
	// Create buffer larger than 4*StringBufferDefaultSize
	bb := NewByteBuffer(StringBufferDefaultSize)
	largeSize := 4*StringBufferDefaultSize + 1024
	bb.MustWrite(make([]byte, largeSize))

	prevCap := cap(bb.B)
	bb.Grow(cap(bb.B) - len(bb.B) + 1024)

	assert.Greater(t, cap(bb.B), prevCap, "should have grown")
}

func TestByteBuffer_Grow_PreservesData(t *testing.T) {
	bb := NewByteBuffer(StringBufferDefaultSize)
	bb.MustWrite([]byte("preserve me"))

	bb.Grow(StringBufferDefaultSize * 2) // force reallocation

	assert.Equal(t, "preserve me", string(bb.Bytes()))
}

func TestByteBuffer_Grow_ZeroBytes(t *testing.T) {
	bb := NewByteBuffer(StringBufferDefaultSize)
	originalCap := cap(bb.B)

	bb.Grow(0)

	assert.Equal(t, originalCap, cap(bb.B))
}

// =============================================================================
// ByteBufferPool Tests
// =============================================================================

func TestNewByteBufferPool(t *testing.T) {
	p := NewByteBufferPool(256, 4096)
	bb := p.Get()

	require.NotNil(t, bb)
	assert.Equal(t, 256, cap(bb.B))
}

func TestByteBufferPool_CustomSizes(t *testing.T) {
	p := NewByteBufferPool(128, 1024)

	bb := p.Get()
	require.NotNil(t, bb)
	assert.Equal(t, 128, cap(bb.B))
	p.Put(bb)
}

func TestByteBufferPool_MaxThreshold_Discard(t *testing.T) {
	p := NewByteBufferPool(64, 128)

	bb := p.Get()
	bb.MustWrite(make([]byte, 256)) // exceeds threshold
	p.Put(bb)

	bb2 := p.Get()
	// A fresh buffer was allocated since the oversized one was discarded.
	assert.Equal(t, 0, bb2.Len())
}

func TestByteBufferPool_MaxThreshold_Accept(t *testing.T) {
	p := NewByteBufferPool(64, 1024)

	bb := p.Get()
	bb.MustWrite(make([]byte, 100))
	ptr := &bb.B
	p.Put(bb)

	bb2 := p.Get()
	assert.Same(t, ptr, &bb2.B, "buffer under threshold should be reused")
	assert.Equal(t, 0, bb2.Len(), "Put should reset the buffer")
}

func TestByteBufferPool_MaxThreshold_Zero(t *testing.T) {
	// A zero threshold means no size limit is enforced.
	p := NewByteBufferPool(64, 0)

	bb := p.Get()
	bb.MustWrite(make([]byte, 1024*1024))
	assert.NotPanics(t, func() { p.Put(bb) })
}

func TestByteBufferPool_PutNil(t *testing.T) {
	p := NewByteBufferPool(64, 1024)
	assert.NotPanics(t, func() { p.Put(nil) })
}

func TestByteBufferPool_ConcurrentAccess(t *testing.T) {
	p := NewByteBufferPool(64, 4096)

	const goroutines = 50
	done := make(chan bool, goroutines)

	for i := 0; i < goroutines; i++ {
		go func() {
			bb := p.Get()
			bb.MustWrite([]byte("concurrent"))
			p.Put(bb)
			done <- true
		}()
	}

	for i := 0; i < goroutines; i++ {
		<-done
	}
}

// =============================================================================
// Default string-assembly pool
// =============================================================================

func TestGetPutStringBuffer(t *testing.T) {
	bb := GetStringBuffer()
	require.NotNil(t, bb)
	assert.GreaterOrEqual(t, cap(bb.B), StringBufferDefaultSize, "pooled buffer should have at least default capacity")

	bb.MustWrite([]byte("reassembled chunk"))
	PutStringBuffer(bb)

	bb2 := GetStringBuffer()
	assert.Equal(t, 0, bb2.Len(), "PutStringBuffer should reset the buffer before reuse")
}

func TestPutStringBuffer_NilBuffer(t *testing.T) {
	assert.NotPanics(t, func() {
		PutStringBuffer(nil)
	})
}
