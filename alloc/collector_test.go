package alloc

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestCollectorMetered(t *testing.T) {
	m := NewMetered(nil, 100)
	_, err := m.Alloc(60)
	require.NoError(t, err)
	_, err = m.Alloc(60)
	require.ErrorIs(t, err, ErrOutOfMemory)

	c := NewCollector("test", m, nil)
	require.Equal(t, 5, testutil.CollectAndCount(c))

	expected := `
# HELP test_alloc_live_bytes Bytes currently allocated.
# TYPE test_alloc_live_bytes gauge
test_alloc_live_bytes 60
# HELP test_alloc_failures_total Allocations refused, including limit denials.
# TYPE test_alloc_failures_total counter
test_alloc_failures_total 1
`
	require.NoError(t, testutil.CollectAndCompare(c, strings.NewReader(expected),
		"test_alloc_live_bytes", "test_alloc_failures_total"))
}

func TestCollectorArena(t *testing.T) {
	a := NewArena(1024)
	_, err := a.Alloc(2048)
	require.NoError(t, err)

	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(NewCollector("test", nil, a)))

	expected := `
# HELP test_alloc_arena_chunks Number of arena chunks.
# TYPE test_alloc_arena_chunks gauge
test_alloc_arena_chunks 2
# HELP test_alloc_arena_capacity_bytes Total arena chunk capacity.
# TYPE test_alloc_arena_capacity_bytes gauge
test_alloc_arena_capacity_bytes 3072
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"test_alloc_arena_chunks", "test_alloc_arena_capacity_bytes"))
}
