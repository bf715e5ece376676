package alloc

import (
	"unsafe"

	"go.uber.org/zap"
)

// DefaultChunkSize is the default chunk size for new arenas (64 KiB).
const DefaultChunkSize = 1 << 16

// chunk represents a single memory chunk within an arena.
type chunk struct {
	buf    []byte  // backing memory
	offset uintptr // allocation offset within buf
}

// Arena is a chunked bump allocator. Not goroutine-safe; wrap it in Safe
// for concurrent access.
//
// Free only reclaims a block when it is the most recent allocation of the
// current chunk, such as a new buffer discarded after a failed reallocation.
// A buffer freed after its replacement was allocated is older than the
// replacement and stays in use. Everything else is reclaimed in bulk by Reset
// or Release.
type Arena struct {
	chunks       []chunk
	chunkSize    int
	maxBytes     int
	currentChunk *chunk
}

var _ Allocator = (*Arena)(nil)

// ArenaOption configures an Arena.
type ArenaOption func(*Arena)

// WithMaxBytes caps the total chunk capacity of the arena. Allocations that
// would need more fail with ErrOutOfMemory. Zero means unlimited.
func WithMaxBytes(n int) ArenaOption {
	return func(a *Arena) {
		if n > 0 {
			a.maxBytes = n
		}
	}
}

// NewArena creates a new Arena with the specified chunk size.
// If chunkSize <= 0, DefaultChunkSize is used.
func NewArena(chunkSize int, opts ...ArenaOption) *Arena {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	a := &Arena{chunkSize: chunkSize}
	for _, o := range opts {
		o(a)
	}
	if a.maxBytes > 0 && a.chunkSize > a.maxBytes {
		a.chunkSize = a.maxBytes
	}
	a.chunks = make([]chunk, 0, 4)
	if err := a.grow(a.chunkSize); err != nil {
		panic(err)
	}
	return a
}

// Alloc returns n bytes carved out of the current chunk, growing the arena
// when the chunk is full. The block is only valid until Reset or Release.
func (a *Arena) Alloc(n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	if a.chunks == nil {
		return nil, ErrReleased
	}

	// Fast path: use cached current chunk
	c := a.currentChunk
	if c != nil {
		off := alignUp(c.offset)
		if off+uintptr(n) <= uintptr(len(c.buf)) {
			c.offset = off + uintptr(n)
			return unsafe.Slice(&c.buf[off], n), nil
		}
	}

	return a.allocSlow(n)
}

// allocSlow handles allocation when the fast path fails.
func (a *Arena) allocSlow(n int) ([]byte, error) {
	if err := a.grow(n); err != nil {
		return nil, err
	}
	c := a.currentChunk
	c.offset = uintptr(n)
	return unsafe.Slice(&c.buf[0], n), nil
}

// Free rolls the current chunk back over b when b is its latest allocation.
// Other blocks stay in place until Reset.
//
// b must have been returned by Alloc since the last Reset. A stale block whose
// end coincides with the current offset would roll the chunk back over newer
// live allocations.
func (a *Arena) Free(b []byte) {
	c := a.currentChunk
	if len(b) == 0 || c == nil || len(c.buf) == 0 {
		return
	}
	base := uintptr(unsafe.Pointer(unsafe.SliceData(c.buf)))
	p := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	if p < base || p+uintptr(len(b)) != base+c.offset {
		return
	}
	c.offset = p - base
}

// EnsureCapacity ensures the current chunk has at least n free bytes.
// If not, it grows the arena with a new chunk.
func (a *Arena) EnsureCapacity(n int) error {
	a.panicIfReleased()
	c := a.currentChunk
	if c != nil && uintptr(n)+alignUp(c.offset) <= uintptr(len(c.buf)) {
		return nil
	}
	return a.grow(n)
}

// Reset resets allocation offsets to zero but keeps allocated chunks for reuse.
// Every block handed out so far becomes invalid.
func (a *Arena) Reset() {
	a.panicIfReleased()
	for i := range a.chunks {
		a.chunks[i].offset = 0
	}
	if len(a.chunks) > 0 {
		a.currentChunk = &a.chunks[0]
	}
}

// Release drops all chunks and makes the arena unusable.
// Later allocations fail with ErrReleased.
func (a *Arena) Release() {
	a.chunks = nil
	a.currentChunk = nil
}

// grow makes a chunk of at least min bytes current. A chunk that Reset
// emptied is reused before a new one is allocated.
func (a *Arena) grow(min int) error {
	if a.currentChunk != nil {
		for i := range a.chunks {
			c := &a.chunks[i]
			if c != a.currentChunk && c.offset == 0 && len(c.buf) >= min {
				a.currentChunk = c
				return nil
			}
		}
	}

	size := a.chunkSize
	if min > size {
		size = min
	}
	if a.maxBytes > 0 {
		have := a.Capacity()
		if have+size > a.maxBytes {
			if have+min > a.maxBytes {
				Logger().Debug("arena limit reached",
					zap.Int("requested", min),
					zap.Int("capacity", have),
					zap.Int("max_bytes", a.maxBytes))
				return ErrOutOfMemory
			}
			size = min
		}
	}

	words := make([]uint64, (size+int(maxAlign)-1)/int(maxAlign))
	buf := unsafe.Slice((*byte)(unsafe.Pointer(&words[0])), size)
	a.chunks = append(a.chunks, chunk{buf: buf})
	a.currentChunk = &a.chunks[len(a.chunks)-1]
	Logger().Debug("arena chunk allocated",
		zap.Int("size", size),
		zap.Int("chunks", len(a.chunks)))
	return nil
}

// panicIfReleased panics if the arena has been released.
func (a *Arena) panicIfReleased() {
	if a.chunks == nil {
		panic(ErrReleased.Error())
	}
}

// alignUp aligns the offset up to maxAlign.
func alignUp(off uintptr) uintptr {
	const mask = maxAlign - 1
	return (off + mask) &^ mask
}
