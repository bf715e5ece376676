package alloc

// ArenaStats is a snapshot of arena usage.
type ArenaStats struct {
	SizeInUse   int     // Bytes currently handed out, including alignment padding
	Capacity    int     // Total chunk capacity in bytes
	NumChunks   int     // Number of chunks
	ChunkSize   int     // Default chunk size
	MaxBytes    int     // Capacity limit, 0 if unlimited
	Utilization float64 // SizeInUse / Capacity (0.0-1.0)
}

// SizeInUse returns the total number of bytes currently allocated in the arena.
func (a *Arena) SizeInUse() int {
	sum := 0
	for _, c := range a.chunks {
		sum += int(c.offset)
	}
	return sum
}

// NumChunks returns the number of chunks currently held by the arena.
func (a *Arena) NumChunks() int {
	return len(a.chunks)
}

// Capacity returns the total capacity (in bytes) of all chunks in the arena.
func (a *Arena) Capacity() int {
	sum := 0
	for _, c := range a.chunks {
		sum += len(c.buf)
	}
	return sum
}

// Utilization returns the ratio of bytes in use to total capacity.
// Returns 0.0 if the arena has no capacity.
func (a *Arena) Utilization() float64 {
	capacity := a.Capacity()
	if capacity == 0 {
		return 0
	}
	return float64(a.SizeInUse()) / float64(capacity)
}

// ChunkSize returns the default chunk size used by this arena.
func (a *Arena) ChunkSize() int {
	return a.chunkSize
}

// Stats returns a snapshot of arena statistics.
func (a *Arena) Stats() ArenaStats {
	return ArenaStats{
		SizeInUse:   a.SizeInUse(),
		Capacity:    a.Capacity(),
		NumChunks:   a.NumChunks(),
		ChunkSize:   a.chunkSize,
		MaxBytes:    a.maxBytes,
		Utilization: a.Utilization(),
	}
}
