package vector

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/pavanmanishd/vector/alloc"
	"github.com/pavanmanishd/vector/rawbuf"
)

// Reserve makes room for at least n elements. It does nothing when n does
// not exceed Cap. Otherwise the live elements are carried into new storage;
// on failure the vector is left as it was.
func (v *Vector[T, L]) Reserve(n int) error {
	if n <= v.buf.Capacity() {
		return nil
	}
	if err := v.reallocate(n, -1, nil); err != nil {
		return errors.Wrapf(err, "vector: reserve %d", n)
	}
	return nil
}

// Resize changes Len to n. Shrinking destroys the trailing elements.
// Growing reserves max(2*Cap(), n) when needed and default-constructs the
// new elements; if one of them fails, the ones built in this call are
// destroyed and Len is unchanged (extra capacity may remain).
func (v *Vector[T, L]) Resize(n int) error {
	if n < 0 {
		panic(fmt.Sprintf("vector: negative size %d", n))
	}
	if n <= v.size {
		v.destroy(v.buf.Slice(n, v.size))
		v.size = n
		return nil
	}
	if c := v.buf.Capacity(); n > c {
		if err := v.Reserve(max(doubled(c), n)); err != nil {
			return err
		}
	}
	tail := v.buf.Slice(v.size, n)
	for i := range tail {
		if err := v.life.Default(&tail[i]); err != nil {
			v.destroy(tail[:i])
			return errors.Wrapf(err, "vector: resize to %d", n)
		}
	}
	v.size = n
	return nil
}

// PushBack appends value. The vector takes ownership of value: it is
// move-constructed into its slot and the moved-from argument is destroyed,
// whether or not the append succeeds. On failure the vector is unchanged.
func (v *Vector[T, L]) PushBack(value T) error {
	_, err := v.EmplaceBack(func(slot *T) error {
		return v.life.Move(slot, &value)
	})
	v.life.Destroy(&value)
	return err
}

// EmplaceBack appends an element constructed in place by build and returns
// its address. When the storage is full it grows to max(1, 2*Cap()), and the
// new element is built in the new storage before the existing ones are
// carried over. On failure the vector is unchanged.
func (v *Vector[T, L]) EmplaceBack(build func(slot *T) error) (*T, error) {
	if v.size == v.buf.Capacity() {
		if err := v.grow(v.size, build); err != nil {
			return nil, errors.Wrap(err, "vector: emplace back")
		}
	} else if err := build(v.buf.At(v.size)); err != nil {
		return nil, errors.Wrap(err, "vector: emplace back")
	}
	v.size++
	return v.buf.At(v.size - 1), nil
}

// PopBack destroys the last element. The vector must not be empty.
func (v *Vector[T, L]) PopBack() {
	if checks && v.size == 0 {
		panic("vector: PopBack on empty vector")
	}
	v.destroyAt(v.buf.At(v.size - 1))
	v.size--
}

// grow reallocates a full vector to the next geometric capacity with the
// element built by build placed at index gap.
func (v *Vector[T, L]) grow(gap int, build func(slot *T) error) error {
	c := v.buf.Capacity()
	if c > math.MaxInt/2 {
		return alloc.ErrOutOfMemory
	}
	return v.reallocate(max(1, doubled(c)), gap, build)
}

func doubled(c int) int {
	if c > math.MaxInt/2 {
		return math.MaxInt
	}
	return c * 2
}

// reallocate moves the live elements into a new buffer of capacity slots.
// When gap >= 0, build first constructs a new element at index gap of the
// new buffer and the existing elements are laid out around it.
//
// If building the new element fails, or any element fails to copy, the new
// buffer is discarded and the vector is untouched. Under the move policy a
// failing move (only possible for non-copyable types without NoFailMover)
// also discards the new buffer, but the elements already moved are left in
// their moved-from state.
func (v *Vector[T, L]) reallocate(capacity, gap int, build func(slot *T) error) error {
	nb, err := rawbuf.Allocate[T](v.alloc, capacity)
	if err != nil {
		return err
	}

	old := v.Data()
	prefix, at := old, v.size
	var suffix []T
	if gap >= 0 {
		if err := build(nb.At(gap)); err != nil {
			nb.Release()
			return err
		}
		prefix, suffix, at = old[:gap], old[gap:], gap
	}

	if err := v.relocate(nb.Slice(0, at), prefix); err != nil {
		if gap >= 0 {
			v.destroyAt(nb.At(gap))
		}
		nb.Release()
		return err
	}
	if len(suffix) > 0 {
		if err := v.relocate(nb.Slice(at+1, v.size+1), suffix); err != nil {
			v.destroy(nb.Slice(0, at+1))
			nb.Release()
			return err
		}
	}

	v.destroy(old)
	v.buf.Swap(&nb)
	nb.Release()
	return nil
}
