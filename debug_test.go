//go:build vectordebug

package vector

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContractChecks(t *testing.T) {
	v := NewPlain[int]()
	defer v.Release()
	require.NoError(t, v.Reserve(4))
	require.NoError(t, v.PushBack(1))

	tests := []struct {
		name string
		fn   func()
		msg  string
	}{
		{"at past end", func() { v.At(1) }, "vector: index 1 out of range [0:1)"},
		{"at negative", func() { v.At(-1) }, "vector: index -1 out of range [0:1)"},
		{"insert past end", func() { _, _ = v.Insert(2, 0) }, "vector: insert position 2 out of range [0:1]"},
		{"erase past end", func() { _ = v.Erase(1) }, "vector: erase position 1 out of range [0:1)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.PanicsWithValue(t, tt.msg, tt.fn)
		})
	}

	v.PopBack()
	require.PanicsWithValue(t, "vector: PopBack on empty vector", v.PopBack)
	require.PanicsWithValue(t, "vector: erase position 0 out of range [0:0)", func() { _ = v.Erase(0) })
}
