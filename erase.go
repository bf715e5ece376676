package vector

import (
	"fmt"

	"github.com/pkg/errors"
)

// Erase removes element i, shifting the elements after it one slot left by
// move assignment and destroying the vacated last slot. i must be in
// [0, Len()).
//
// If a move assignment fails, the error is returned with Len unchanged and
// every element still live, but their order and values past i are
// unspecified.
func (v *Vector[T, L]) Erase(i int) error {
	if checks && (i < 0 || i >= v.size) {
		panic(fmt.Sprintf("vector: erase position %d out of range [0:%d)", i, v.size))
	}
	live := v.Data()
	for j := i; j < len(live)-1; j++ {
		if err := v.life.MoveAssign(&live[j], &live[j+1]); err != nil {
			return errors.Wrapf(err, "vector: erase at %d", i)
		}
	}
	v.destroyAt(&live[len(live)-1])
	v.size--
	return nil
}
