package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetBoolSlice(t *testing.T) {
	t.Run("returns slice with correct size, zeroed", func(t *testing.T) {
		slice, cleanup := GetBoolSlice(100)
		defer cleanup()

		require.Equal(t, 100, len(slice))
		require.GreaterOrEqual(t, cap(slice), 100)
		for _, v := range slice {
			require.False(t, v)
		}
	})

	t.Run("reuses pooled slice when capacity sufficient", func(t *testing.T) {
		slice1, cleanup1 := GetBoolSlice(50)
		ptr1 := &slice1[0]
		cleanup1()

		slice2, cleanup2 := GetBoolSlice(50)
		defer cleanup2()
		ptr2 := &slice2[0]

		require.Equal(t, ptr1, ptr2, "should reuse same underlying array")
	})

	t.Run("reused slice is zeroed even when previously dirtied", func(t *testing.T) {
		slice1, cleanup1 := GetBoolSlice(10)
		for i := range slice1 {
			slice1[i] = true
		}
		cleanup1()

		slice2, cleanup2 := GetBoolSlice(10)
		defer cleanup2()
		for _, v := range slice2 {
			require.False(t, v, "reused slice must be zeroed")
		}
	})

	t.Run("allocates new slice when capacity insufficient", func(t *testing.T) {
		_, cleanup1 := GetBoolSlice(10)
		cleanup1()

		slice2, cleanup2 := GetBoolSlice(1000)
		defer cleanup2()

		require.Equal(t, 1000, len(slice2))
		require.GreaterOrEqual(t, cap(slice2), 1000)
	})

	t.Run("cleanup returns slice to pool without panicking", func(t *testing.T) {
		slice, cleanup := GetBoolSlice(100)
		require.NotNil(t, slice)
		cleanup()
	})
}

func TestGetUint64Slice(t *testing.T) {
	t.Run("returns slice with correct size, zeroed", func(t *testing.T) {
		slice, cleanup := GetUint64Slice(100)
		defer cleanup()

		require.Equal(t, 100, len(slice))
		require.GreaterOrEqual(t, cap(slice), 100)
		for _, v := range slice {
			require.Zero(t, v)
		}
	})

	t.Run("reuses pooled slice when capacity sufficient", func(t *testing.T) {
		slice1, cleanup1 := GetUint64Slice(50)
		ptr1 := &slice1[0]
		cleanup1()

		slice2, cleanup2 := GetUint64Slice(50)
		defer cleanup2()
		ptr2 := &slice2[0]

		require.Equal(t, ptr1, ptr2, "should reuse same underlying array")
	})

	t.Run("reused slice is zeroed even when previously dirtied", func(t *testing.T) {
		// Regression: a map query scan that reused a dirty counter slice
		// without zeroing it would misreport stale counts as duplicate labels.
		slice1, cleanup1 := GetUint64Slice(10)
		for i := range slice1 {
			slice1[i] = 7
		}
		cleanup1()

		slice2, cleanup2 := GetUint64Slice(10)
		defer cleanup2()
		for _, v := range slice2 {
			require.Zero(t, v, "reused slice must be zeroed")
		}
	})

	t.Run("allocates new slice when capacity insufficient", func(t *testing.T) {
		_, cleanup1 := GetUint64Slice(10)
		cleanup1()

		slice2, cleanup2 := GetUint64Slice(1000)
		defer cleanup2()

		require.Equal(t, 1000, len(slice2))
		require.GreaterOrEqual(t, cap(slice2), 1000)
	})

	t.Run("cleanup returns slice to pool without panicking", func(t *testing.T) {
		slice, cleanup := GetUint64Slice(100)
		require.NotNil(t, slice)
		cleanup()
	})
}

func TestSlicePoolConcurrency(t *testing.T) {
	t.Run("concurrent access to bool pool", func(t *testing.T) {
		const goroutines = 100
		done := make(chan bool, goroutines)

		for i := 0; i < goroutines; i++ {
			go func() {
				slice, cleanup := GetBoolSlice(50)
				defer cleanup()

				for j := range slice {
					slice[j] = j%2 == 0
				}

				done <- true
			}()
		}

		for i := 0; i < goroutines; i++ {
			<-done
		}
	})

	t.Run("concurrent access to uint64 pool", func(t *testing.T) {
		const goroutines = 100
		done := make(chan bool, goroutines)

		for i := 0; i < goroutines; i++ {
			go func() {
				slice, cleanup := GetUint64Slice(50)
				defer cleanup()

				for j := range slice {
					slice[j] = uint64(j)
				}

				done <- true
			}()
		}

		for i := 0; i < goroutines; i++ {
			<-done
		}
	})
}
