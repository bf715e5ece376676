package vector

import (
	"fmt"

	"github.com/pkg/errors"
)

// Insert places value before index i and returns i. i may equal Len, which
// appends. Like PushBack, Insert takes ownership of value and destroys the
// moved-from argument before returning.
func (v *Vector[T, L]) Insert(i int, value T) (int, error) {
	i, err := v.Emplace(i, func(slot *T) error {
		return v.life.Move(slot, &value)
	})
	v.life.Destroy(&value)
	return i, err
}

// Emplace constructs an element with build before index i and returns i.
// i must be in [0, Len()].
//
// When the storage is full the vector reallocates, building the new element
// in place first; a failure leaves the vector unchanged. Inserting at the end
// with room to spare behaves like EmplaceBack. Inserting in the middle with
// room to spare builds the element into a temporary, extends the live range
// by moving the last element one slot up, shifts the rest right by move
// assignment and finally move-assigns the temporary into slot i. A failure
// before the shift leaves the vector unchanged; a failure during the shift
// destroys the extra slot, keeps Len unchanged and leaves the elements in
// [i, Len()) in an unspecified but valid state.
func (v *Vector[T, L]) Emplace(i int, build func(slot *T) error) (int, error) {
	if checks && (i < 0 || i > v.size) {
		panic(fmt.Sprintf("vector: insert position %d out of range [0:%d]", i, v.size))
	}

	var err error
	switch {
	case v.size == v.buf.Capacity():
		err = v.grow(i, build)
	case i == v.size:
		err = build(v.buf.At(v.size))
	default:
		err = v.emplaceShift(i, build)
	}
	if err != nil {
		return i, errors.Wrapf(err, "vector: emplace at %d", i)
	}
	v.size++
	return i, nil
}

func (v *Vector[T, L]) emplaceShift(i int, build func(slot *T) error) error {
	var tmp T
	if err := build(&tmp); err != nil {
		return err
	}
	defer v.life.Destroy(&tmp)

	slots := v.buf.Slice(0, v.size+1)
	last := v.size - 1
	if err := v.life.Move(&slots[v.size], &slots[last]); err != nil {
		return err
	}
	for j := last; j > i; j-- {
		if err := v.life.MoveAssign(&slots[j], &slots[j-1]); err != nil {
			v.destroyAt(&slots[v.size])
			return err
		}
	}
	if err := v.life.MoveAssign(&slots[i], &tmp); err != nil {
		v.destroyAt(&slots[v.size])
		return err
	}
	return nil
}
