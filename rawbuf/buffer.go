// Package rawbuf implements an owned block of uninitialized element slots.
//
// A Buffer knows its capacity and where each slot lives, nothing more. It
// never reads, initializes or finalizes the values stored in it: whoever
// places values in the slots is responsible for ending their lifetimes
// before the Buffer is released.
package rawbuf

import (
	"github.com/pkg/errors"

	"github.com/pavanmanishd/vector/alloc"
)

// Buffer owns storage for exactly Capacity() values of T.
//
// A Buffer must not be copied by value once it holds storage; ownership is
// transferred with Take and exchanged with Swap. The zero value is the empty
// buffer.
type Buffer[T any] struct {
	slots []T
	alloc alloc.Allocator
}

// Allocate returns a buffer with room for capacity values of T. A capacity
// of zero returns the empty buffer without calling a. On failure nothing is
// left allocated.
func Allocate[T any](a alloc.Allocator, capacity int) (Buffer[T], error) {
	if capacity < 0 {
		panic("rawbuf: negative capacity")
	}
	if a == nil {
		a = alloc.Heap{}
	}
	if capacity == 0 {
		return Buffer[T]{alloc: a}, nil
	}
	slots, err := alloc.MakeSlice[T](a, capacity)
	if err != nil {
		return Buffer[T]{}, errors.Wrapf(err, "rawbuf: allocate %d slots", capacity)
	}
	return Buffer[T]{slots: slots, alloc: a}, nil
}

// Release returns the storage to its allocator. Safe to call on an empty
// buffer; the buffer is empty afterwards.
func (b *Buffer[T]) Release() {
	if b.slots != nil {
		alloc.FreeSlice(b.alloc, b.slots)
	}
	b.slots = nil
}

// Capacity returns the number of slots.
func (b *Buffer[T]) Capacity() int {
	return len(b.slots)
}

// Allocator returns the allocator the storage came from.
func (b *Buffer[T]) Allocator() alloc.Allocator {
	return b.alloc
}

// At returns the address of slot offset. offset must be below Capacity.
func (b *Buffer[T]) At(offset int) *T {
	return &b.slots[offset]
}

// Slice returns slots [from, to). to may equal Capacity.
func (b *Buffer[T]) Slice(from, to int) []T {
	return b.slots[from:to:to]
}

// Swap exchanges the storage of b and other.
func (b *Buffer[T]) Swap(other *Buffer[T]) {
	b.slots, other.slots = other.slots, b.slots
	b.alloc, other.alloc = other.alloc, b.alloc
}

// Take moves the storage out of b into the returned buffer and leaves b
// empty. The allocator stays attached to b so it can allocate again.
func (b *Buffer[T]) Take() Buffer[T] {
	out := Buffer[T]{slots: b.slots, alloc: b.alloc}
	b.slots = nil
	return out
}
