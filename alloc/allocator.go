// Package alloc provides the raw storage primitives the container packages
// build on. An Allocator hands out untyped byte blocks and takes them back;
// it knows nothing about the values later placed in them.
package alloc

import (
	"unsafe"

	"github.com/pkg/errors"
)

var (
	// ErrOutOfMemory is returned when an allocator cannot satisfy a request.
	ErrOutOfMemory = errors.New("alloc: out of memory")

	// ErrReleased is returned by an Arena used after Release.
	ErrReleased = errors.New("alloc: use after Release()")
)

// Allocator supplies raw byte blocks.
//
// Alloc returns a block of exactly n bytes aligned for any Go scalar type.
// n must be positive. Free returns a block previously obtained from Alloc on
// the same allocator; freeing nil is a no-op.
type Allocator interface {
	Alloc(n int) ([]byte, error)
	Free(b []byte)
}

// Accountant is implemented by allocators that can account for memory they
// do not hand out themselves, such as GC-visible storage for element types
// that contain pointers.
type Accountant interface {
	Charge(n int) error
	Refund(n int)
}

// maxAlign is the alignment every Allocator must provide.
const maxAlign = unsafe.Sizeof(uint64(0))

// Heap allocates blocks from the Go heap. The zero value is ready to use.
type Heap struct{}

var _ Allocator = Heap{}

// Alloc returns a fresh zeroed block of n bytes.
func (Heap) Alloc(n int) ([]byte, error) {
	if n <= 0 {
		return nil, errors.Errorf("alloc: invalid block size %d", n)
	}
	words := make([]uint64, (n+int(maxAlign)-1)/int(maxAlign))
	return unsafe.Slice((*byte)(unsafe.Pointer(&words[0])), n), nil
}

// Free drops the block; the garbage collector reclaims it.
func (Heap) Free([]byte) {}

// Charge always succeeds.
func (Heap) Charge(int) error { return nil }

// Refund is a no-op.
func (Heap) Refund(int) {}
