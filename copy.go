package vector

import (
	"github.com/pkg/errors"

	"github.com/pavanmanishd/vector/rawbuf"
)

// Clone returns a copy of v with capacity equal to v.Len(), using the same
// lifecycle and allocator. On failure no storage is left allocated.
func (v *Vector[T, L]) Clone() (*Vector[T, L], error) {
	buf, err := v.copyOf(v)
	if err != nil {
		return nil, errors.Wrap(err, "vector: clone")
	}
	return &Vector[T, L]{
		buf:   buf,
		size:  v.size,
		life:  v.life,
		rel:   v.rel,
		alloc: v.alloc,
	}, nil
}

// Assign replaces the contents of v with copies of other's elements.
//
// When other fits in the current capacity the overlapping elements are
// copy-assigned and the rest copy-constructed or destroyed; a failure there
// leaves v valid but partly assigned. Otherwise a full copy is built in new
// storage first, so a failure leaves v unchanged.
func (v *Vector[T, L]) Assign(other *Vector[T, L]) error {
	if v == other {
		return nil
	}
	c := v.rel.copier
	if c == nil {
		return ErrNotCopyable
	}

	if other.size > v.buf.Capacity() {
		buf, err := v.copyOf(other)
		if err != nil {
			return errors.Wrap(err, "vector: assign")
		}
		v.destroy(v.Data())
		v.buf.Swap(&buf)
		buf.Release()
		v.size = other.size
		return nil
	}

	dst, src := v.buf.Slice(0, other.size), other.Data()
	common := min(v.size, other.size)
	for i := 0; i < common; i++ {
		if err := c.CopyAssign(&dst[i], &src[i]); err != nil {
			return errors.Wrap(err, "vector: assign")
		}
	}
	if v.size < other.size {
		if err := v.constructEach(dst[v.size:], src[v.size:], c.Copy); err != nil {
			return errors.Wrap(err, "vector: assign")
		}
	} else {
		v.destroy(v.buf.Slice(other.size, v.size))
	}
	v.size = other.size
	return nil
}

// Take releases v's contents and moves other's storage and lifecycle into v,
// leaving other empty. No element is copied or moved.
func (v *Vector[T, L]) Take(other *Vector[T, L]) {
	if v == other {
		return
	}
	v.Release()
	v.buf = other.buf.Take()
	v.size = other.size
	v.life = other.life
	v.alloc = other.alloc
	other.size = 0
}

// Move returns a new vector owning v's storage and leaves v empty.
func (v *Vector[T, L]) Move() *Vector[T, L] {
	out := &Vector[T, L]{
		buf:   v.buf.Take(),
		size:  v.size,
		life:  v.life,
		rel:   v.rel,
		alloc: v.alloc,
	}
	v.size = 0
	return out
}

// copyOf copy-constructs src's elements into new storage from v's allocator.
func (v *Vector[T, L]) copyOf(src *Vector[T, L]) (rawbuf.Buffer[T], error) {
	if v.rel.copier == nil {
		return rawbuf.Buffer[T]{}, ErrNotCopyable
	}
	buf, err := rawbuf.Allocate[T](v.alloc, src.size)
	if err != nil {
		return rawbuf.Buffer[T]{}, err
	}
	if err := v.constructEach(buf.Slice(0, src.size), src.Data(), v.rel.copier.Copy); err != nil {
		buf.Release()
		return rawbuf.Buffer[T]{}, err
	}
	return buf, nil
}
