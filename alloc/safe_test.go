package alloc

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewSafe(t *testing.T) {
	s := NewSafe(nil)
	require.NotNil(t, s)
	require.IsType(t, Heap{}, s.a)

	b, err := s.Alloc(100)
	require.NoError(t, err)
	require.Len(t, b, 100)
	s.Free(b)
}

func TestSafeForwardsAccounting(t *testing.T) {
	m := NewMetered(NewArena(1024), 256)
	s := NewSafe(m)

	require.NoError(t, s.Charge(200))
	require.ErrorIs(t, s.Charge(100), ErrOutOfMemory)
	s.Refund(200)
	require.Zero(t, m.Stats().LiveBytes)

	// A plain arena has no accounting; charges are accepted.
	plain := NewSafe(NewArena(1024))
	require.NoError(t, plain.Charge(1<<30))
	plain.Refund(1 << 30)
}

func TestSafeDo(t *testing.T) {
	a := NewArena(1024)
	s := NewSafe(a)

	_, err := s.Alloc(100)
	require.NoError(t, err)
	s.Do(func(inner Allocator) {
		inner.(*Arena).Reset()
	})
	require.Zero(t, a.SizeInUse())
}

func TestSafeConcurrentAccess(t *testing.T) {
	m := NewMetered(NewArena(4096), 0)
	s := NewSafe(m)

	const numGoroutines = 10
	const allocsPerGoroutine = 100

	var wg sync.WaitGroup
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < allocsPerGoroutine; j++ {
				b, err := s.Alloc(64)
				if err != nil {
					t.Errorf("goroutine %d: %v", id, err)
					return
				}
				b[0] = byte(id)
				b[63] = byte(j)
			}
		}(i)
	}
	wg.Wait()

	stats := m.Stats()
	require.Equal(t, uint64(numGoroutines*allocsPerGoroutine), stats.Allocs)
	require.Equal(t, int64(numGoroutines*allocsPerGoroutine*64), stats.LiveBytes)
}

func BenchmarkSafeVsUnsafe(b *testing.B) {
	b.Run("Arena", func(b *testing.B) {
		a := NewArena(1024 * 1024)
		for i := 0; i < b.N; i++ {
			_, _ = a.Alloc(64)
			if i%1000 == 999 {
				a.Reset()
			}
		}
	})

	b.Run("Safe", func(b *testing.B) {
		a := NewArena(1024 * 1024)
		s := NewSafe(a)
		for i := 0; i < b.N; i++ {
			_, _ = s.Alloc(64)
			if i%1000 == 999 {
				s.Do(func(Allocator) { a.Reset() })
			}
		}
	})
}
