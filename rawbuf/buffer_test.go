package rawbuf

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pavanmanishd/vector/alloc"
)

func TestAllocate(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		allocs   uint64
	}{
		{"empty", 0, 0},
		{"one", 1, 1},
		{"many", 100, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := alloc.NewMetered(nil, 0)
			b, err := Allocate[int64](m, tt.capacity)
			require.NoError(t, err)
			require.Equal(t, tt.capacity, b.Capacity())
			require.Equal(t, tt.allocs, m.Stats().Allocs)
			require.Equal(t, int64(tt.capacity*8), m.Stats().LiveBytes)

			b.Release()
			require.Zero(t, b.Capacity())
			require.Zero(t, m.Stats().LiveBytes)

			// Releasing twice is harmless.
			b.Release()
		})
	}
}

func TestAllocateFailureLeavesNothing(t *testing.T) {
	m := alloc.NewMetered(nil, 64)

	b, err := Allocate[int64](m, 9)
	require.ErrorIs(t, err, alloc.ErrOutOfMemory)
	require.Zero(t, b.Capacity())
	require.Zero(t, m.Stats().LiveBytes)
}

func TestAllocateDefaultsToHeap(t *testing.T) {
	b, err := Allocate[string](nil, 3)
	require.NoError(t, err)
	require.IsType(t, alloc.Heap{}, b.Allocator())
	*b.At(2) = "last"
	require.Equal(t, "last", *b.At(2))
	b.Release()
}

func TestAtAndSlice(t *testing.T) {
	b, err := Allocate[int](alloc.NewArena(1024), 4)
	require.NoError(t, err)
	defer b.Release()

	for i := 0; i < b.Capacity(); i++ {
		*b.At(i) = i * 10
	}
	require.Equal(t, []int{10, 20}, b.Slice(1, 3))
	require.Empty(t, b.Slice(4, 4))
	require.Equal(t, 3, cap(b.Slice(1, 4)))

	require.Panics(t, func() { b.At(4) })
	require.Panics(t, func() { b.Slice(0, 5) })
}

func TestSwap(t *testing.T) {
	a, err := Allocate[int](nil, 2)
	require.NoError(t, err)
	b, err := Allocate[int](nil, 5)
	require.NoError(t, err)
	*a.At(0) = 1
	*b.At(0) = 2

	a.Swap(&b)
	require.Equal(t, 5, a.Capacity())
	require.Equal(t, 2, b.Capacity())
	require.Equal(t, 2, *a.At(0))
	require.Equal(t, 1, *b.At(0))
}

func TestTake(t *testing.T) {
	m := alloc.NewMetered(nil, 0)
	src, err := Allocate[int32](m, 8)
	require.NoError(t, err)
	*src.At(7) = 42

	dst := src.Take()
	require.Zero(t, src.Capacity())
	require.Equal(t, 8, dst.Capacity())
	require.Equal(t, int32(42), *dst.At(7))
	require.Same(t, m, src.Allocator())

	// The emptied source no longer owns anything.
	src.Release()
	require.Equal(t, int64(32), m.Stats().LiveBytes)

	dst.Release()
	require.Zero(t, m.Stats().LiveBytes)
}

func TestReplaceOnArenaReclaims(t *testing.T) {
	a := alloc.NewArena(4096)

	old, err := Allocate[int64](a, 4)
	require.NoError(t, err)
	bigger, err := Allocate[int64](a, 8)
	require.NoError(t, err)

	// Growth pattern: the bigger buffer takes over, the old one is released.
	old.Swap(&bigger)
	bigger.Release()
	old.Release()
	require.Equal(t, 32, a.SizeInUse())
}
