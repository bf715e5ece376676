package alloc

import (
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// Metered wraps an Allocator with usage accounting and an optional byte
// limit. Counters are atomic so a Collector may read them while the
// allocator is in use; the wrapped allocator itself still needs Safe when
// it is shared between goroutines.
type Metered struct {
	next  Allocator
	limit int64

	live     atomic.Int64
	peak     atomic.Int64
	allocs   atomic.Uint64
	frees    atomic.Uint64
	failures atomic.Uint64
}

var (
	_ Allocator  = (*Metered)(nil)
	_ Accountant = (*Metered)(nil)
)

// MeteredStats is a snapshot of a Metered allocator.
type MeteredStats struct {
	LiveBytes int64
	PeakBytes int64
	Limit     int64
	Allocs    uint64
	Frees     uint64
	Failures  uint64
}

// NewMetered wraps next. A limit <= 0 means unlimited. A nil next uses Heap.
func NewMetered(next Allocator, limit int) *Metered {
	if next == nil {
		next = Heap{}
	}
	if limit < 0 {
		limit = 0
	}
	return &Metered{next: next, limit: int64(limit)}
}

// Alloc charges n bytes against the limit and forwards to the wrapped allocator.
func (m *Metered) Alloc(n int) ([]byte, error) {
	live, err := m.reserve(n)
	if err != nil {
		return nil, err
	}
	b, err := m.next.Alloc(n)
	if err != nil {
		m.live.Sub(int64(n))
		m.failures.Inc()
		return nil, err
	}
	m.allocs.Inc()
	m.bumpPeak(live)
	return b, nil
}

// Free refunds len(b) bytes and forwards to the wrapped allocator.
func (m *Metered) Free(b []byte) {
	if len(b) == 0 {
		return
	}
	m.next.Free(b)
	m.Refund(len(b))
}

// Charge accounts for n bytes without allocating them.
func (m *Metered) Charge(n int) error {
	live, err := m.reserve(n)
	if err != nil {
		return err
	}
	m.allocs.Inc()
	m.bumpPeak(live)
	return nil
}

// reserve adds n to the live bytes within the limit and returns the new total.
func (m *Metered) reserve(n int) (int64, error) {
	for {
		live := m.live.Load()
		next := live + int64(n)
		if m.limit > 0 && next > m.limit {
			m.failures.Inc()
			Logger().Debug("metered allocator limit reached",
				zap.Int("requested", n),
				zap.Int64("live", live),
				zap.Int64("limit", m.limit))
			return 0, ErrOutOfMemory
		}
		if m.live.CompareAndSwap(live, next) {
			return next, nil
		}
	}
}

// Refund releases n bytes previously charged.
func (m *Metered) Refund(n int) {
	m.live.Sub(int64(n))
	m.frees.Inc()
}

func (m *Metered) bumpPeak(v int64) {
	for {
		p := m.peak.Load()
		if v <= p || m.peak.CompareAndSwap(p, v) {
			return
		}
	}
}

// Stats returns a snapshot of the counters.
func (m *Metered) Stats() MeteredStats {
	return MeteredStats{
		LiveBytes: m.live.Load(),
		PeakBytes: m.peak.Load(),
		Limit:     m.limit,
		Allocs:    m.allocs.Load(),
		Frees:     m.frees.Load(),
		Failures:  m.failures.Load(),
	}
}
