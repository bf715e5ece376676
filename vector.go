package vector

import (
	"fmt"
	"iter"

	"github.com/pkg/errors"

	"github.com/pavanmanishd/vector/alloc"
	"github.com/pavanmanishd/vector/rawbuf"
)

// ErrNotCopyable is returned by copy operations when the element lifecycle
// does not implement Copier.
var ErrNotCopyable = errors.New("vector: element type is not copyable")

// Vector is a growable contiguous sequence of T whose element lifetimes are
// managed through L.
//
// Slots [0, Len()) hold live elements; slots [Len(), Cap()) are
// uninitialized. Pointers and views returned by At, Data, All and Backward
// are invalidated by any operation that changes Len or Cap. Not safe for
// concurrent use.
type Vector[T any, L Lifecycle[T]] struct {
	buf   rawbuf.Buffer[T]
	size  int
	life  L
	rel   relocation[T]
	alloc alloc.Allocator
}

type config struct {
	allocator alloc.Allocator
}

// Option configures a Vector.
type Option func(*config)

// WithAllocator sets the allocator backing the vector's storage. The default
// is alloc.Heap.
func WithAllocator(a alloc.Allocator) Option {
	return func(c *config) {
		if a != nil {
			c.allocator = a
		}
	}
}

// New returns an empty vector. It allocates nothing until the first element
// is added or capacity is reserved.
func New[T any, L Lifecycle[T]](life L, opts ...Option) *Vector[T, L] {
	c := config{allocator: alloc.Heap{}}
	for _, o := range opts {
		o(&c)
	}
	return &Vector[T, L]{
		life:  life,
		rel:   relocationOf[T](life),
		alloc: c.allocator,
	}
}

// NewPlain returns an empty vector of ordinary Go values.
func NewPlain[T any](opts ...Option) *Vector[T, Plain[T]] {
	return New[T](Plain[T]{}, opts...)
}

// NewWithSize returns a vector holding n default-constructed elements with
// capacity exactly n. If any element fails to construct, the ones already
// built are destroyed and the storage is released.
func NewWithSize[T any, L Lifecycle[T]](life L, n int, opts ...Option) (*Vector[T, L], error) {
	v := New[T](life, opts...)
	if err := v.Resize(n); err != nil {
		v.Release()
		return nil, err
	}
	return v, nil
}

// Len returns the number of live elements.
func (v *Vector[T, L]) Len() int {
	return v.size
}

// Cap returns the number of slots in the current storage.
func (v *Vector[T, L]) Cap() int {
	return v.buf.Capacity()
}

// At returns the address of element i. i must be in [0, Len()).
func (v *Vector[T, L]) At(i int) *T {
	if checks && (i < 0 || i >= v.size) {
		panic(fmt.Sprintf("vector: index %d out of range [0:%d)", i, v.size))
	}
	return v.buf.At(i)
}

// Data returns the live elements as a slice sharing the vector's storage.
func (v *Vector[T, L]) Data() []T {
	return v.buf.Slice(0, v.size)
}

// All iterates over the live elements in index order.
func (v *Vector[T, L]) All() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		live := v.Data()
		for i := range live {
			if !yield(i, &live[i]) {
				return
			}
		}
	}
}

// Backward iterates over the live elements from last to first.
func (v *Vector[T, L]) Backward() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		live := v.Data()
		for i := len(live) - 1; i >= 0; i-- {
			if !yield(i, &live[i]) {
				return
			}
		}
	}
}

// Swap exchanges the contents of v and other in O(1). Each element keeps
// the lifecycle that built it.
func (v *Vector[T, L]) Swap(other *Vector[T, L]) {
	v.buf.Swap(&other.buf)
	v.size, other.size = other.size, v.size
	v.life, other.life = other.life, v.life
	v.alloc, other.alloc = other.alloc, v.alloc
}

// Release destroys every live element and returns the storage to the
// allocator. The vector is empty and reusable afterwards.
func (v *Vector[T, L]) Release() {
	v.destroy(v.Data())
	v.size = 0
	v.buf.Release()
}

// destroyAt ends the element's lifetime and clears the slot so nothing it
// referenced stays reachable.
func (v *Vector[T, L]) destroyAt(slot *T) {
	var zero T
	v.life.Destroy(slot)
	*slot = zero
}

func (v *Vector[T, L]) destroy(slots []T) {
	for i := range slots {
		v.destroyAt(&slots[i])
	}
}

// constructEach builds dst[i] from src[i] with build. If one fails, the
// elements already built in dst are destroyed before the error is returned.
func (v *Vector[T, L]) constructEach(dst, src []T, build func(slot, src *T) error) error {
	for i := range src {
		if err := build(&dst[i], &src[i]); err != nil {
			v.destroy(dst[:i])
			return err
		}
	}
	return nil
}

// relocate carries src into the uninitialized dst using the transfer policy.
func (v *Vector[T, L]) relocate(dst, src []T) error {
	if v.rel.move {
		return v.constructEach(dst, src, v.life.Move)
	}
	return v.constructEach(dst, src, v.rel.copier.Copy)
}
