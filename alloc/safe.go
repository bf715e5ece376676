package alloc

import "sync"

// Safe is a mutex-protected wrapper that lets several goroutines share one
// Allocator. Each container using it is still single-threaded.
type Safe struct {
	mu sync.Mutex
	a  Allocator
}

var (
	_ Allocator  = (*Safe)(nil)
	_ Accountant = (*Safe)(nil)
)

// NewSafe wraps a. A nil a uses Heap.
func NewSafe(a Allocator) *Safe {
	if a == nil {
		a = Heap{}
	}
	return &Safe{a: a}
}

// Alloc thread-safely allocates n bytes.
func (s *Safe) Alloc(n int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Alloc(n)
}

// Free thread-safely returns b.
func (s *Safe) Free(b []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Free(b)
}

// Charge forwards to the wrapped allocator when it is an Accountant.
func (s *Safe) Charge(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if acc, ok := s.a.(Accountant); ok {
		return acc.Charge(n)
	}
	return nil
}

// Refund forwards to the wrapped allocator when it is an Accountant.
func (s *Safe) Refund(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if acc, ok := s.a.(Accountant); ok {
		acc.Refund(n)
	}
}

// Do runs fn with exclusive access to the wrapped allocator, for operations
// outside the Allocator interface such as Arena.Reset.
func (s *Safe) Do(fn func(a Allocator)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.a)
}
