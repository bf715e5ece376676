package alloc

import (
	"math"
	"reflect"
	"sync"
	"unsafe"

	"github.com/pkg/errors"
)

// MakeSlice returns storage for exactly n values of T, obtained from a.
// The contents are unspecified; callers must initialize a slot before
// reading it. n == 0 returns nil without touching a.
//
// Pointer-free element types are carved directly out of the allocator's
// bytes. Types that hold pointers must stay visible to the garbage
// collector, so their storage comes from the Go heap and is charged to a
// when a is an Accountant.
func MakeSlice[T any](a Allocator, n int) ([]T, error) {
	if n < 0 {
		return nil, errors.Errorf("alloc: negative slice length %d", n)
	}
	if n == 0 {
		return nil, nil
	}
	size := int(unsafe.Sizeof(*new(T)))
	if size == 0 {
		return make([]T, n), nil
	}
	if n > math.MaxInt/size {
		return nil, ErrOutOfMemory
	}
	total := size * n

	if hasPointers(reflect.TypeFor[T]()) {
		if acc, ok := a.(Accountant); ok {
			if err := acc.Charge(total); err != nil {
				return nil, err
			}
		}
		return make([]T, n), nil
	}

	b, err := a.Alloc(total)
	if err != nil {
		return nil, err
	}
	if len(b) < total {
		return nil, errors.Errorf("alloc: allocator returned %d bytes, want %d", len(b), total)
	}
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), n), nil
}

// FreeSlice returns storage obtained from MakeSlice on the same allocator.
// s must be the full slice MakeSlice returned.
func FreeSlice[T any](a Allocator, s []T) {
	n := cap(s)
	if n == 0 {
		return
	}
	size := int(unsafe.Sizeof(*new(T)))
	if size == 0 {
		return
	}
	if hasPointers(reflect.TypeFor[T]()) {
		if acc, ok := a.(Accountant); ok {
			acc.Refund(size * n)
		}
		return
	}
	a.Free(unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), size*n))
}

var pointerTypes sync.Map // reflect.Type -> bool

// hasPointers reports whether values of t contain anything the garbage
// collector must trace.
func hasPointers(t reflect.Type) bool {
	if v, ok := pointerTypes.Load(t); ok {
		return v.(bool)
	}
	v := scanPointers(t)
	pointerTypes.Store(t, v)
	return v
}

func scanPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Array:
		return t.Len() > 0 && scanPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if scanPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		return true
	}
}
