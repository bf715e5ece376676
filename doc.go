// Package vector implements a growable contiguous container that manages
// the lifetimes of its elements explicitly.
//
// # Overview
//
// A Vector owns one rawbuf.Buffer of uninitialized slots and a count of how
// many of them hold live elements. Every element is created, relocated and
// finalized through a Lifecycle, which lets element types carry resources
// (handles, pooled memory, reference counts) that must be released exactly
// once, and lets those operations fail.
//
// # Basic Usage
//
//	v := vector.NewPlain[int]()
//	defer v.Release()
//
//	_ = v.PushBack(1)
//	_ = v.PushBack(3)
//	_, _ = v.Insert(1, 2)   // [1 2 3]
//	_ = v.Erase(0)          // [2 3]
//	v.PopBack()             // [2]
//
// Types with a richer lifecycle supply their own:
//
//	v := vector.New[Conn](connLifecycle{pool: p}, vector.WithAllocator(a))
//	_, err := v.EmplaceBack(func(slot *Conn) error { return p.Open(slot) })
//
// # Growth
//
// Appending to a full vector reallocates to max(1, 2*Cap()). Live elements
// are moved into the new storage when the lifecycle implements NoFailMover
// or does not implement Copier; otherwise they are copied, so a failure half
// way leaves the original elements untouched.
//
// # Failure Guarantees
//
//   - Reserve, Resize, PushBack, EmplaceBack, Clone and reallocating inserts
//     either succeed or leave the vector exactly as it was.
//   - Erase, and an in-place middle insert that fails while shifting, leave
//     the vector valid (every live element is still destroyed exactly once
//     by Release) but with unspecified element values.
//
// # Contract Checks
//
// Out-of-range indices and popping an empty vector are programming errors.
// Building with -tags vectordebug turns on assertions that panic on them;
// without the tag they are not checked beyond Go's own bounds checks.
//
// # Memory
//
// Storage comes from an alloc.Allocator (alloc.Heap by default). An
// alloc.Arena keeps pointer-free elements in arena chunks; alloc.Metered
// adds accounting and a byte limit, reported as alloc.ErrOutOfMemory.
package vector
