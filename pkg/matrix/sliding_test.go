package matrix

import (
	"testing"

	"github.com/Zanice/2D-Game-Framework/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample3x3(t *testing.T) *Sliding[int] {
	t.Helper()
	m, err := FromRows([][]int{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 9},
	})
	require.NoError(t, err)
	return m
}

func TestInsertRowAbove(t *testing.T) {
	m := sample3x3(t)

	require.NoError(t, m.InsertRowAbove([]int{10, 11, 12}))

	got := m.Resolve()
	assert.Equal(t, []int{10, 11, 12}, got[0], "new row is row 0")
	assert.Equal(t, [][]int{{10, 11, 12}, {1, 2, 3}, {4, 5, 6}}, got, "bottom row evicted")
}

func TestInsertRowRoundTrip(t *testing.T) {
	m := sample3x3(t)

	require.NoError(t, m.InsertRowAbove([]int{0, 0, 0}))
	require.NoError(t, m.InsertRowBelow([]int{7, 8, 9}))

	assert.Equal(t, [][]int{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}, m.Resolve())
}

func TestInsertColumns(t *testing.T) {
	m := sample3x3(t)

	require.NoError(t, m.InsertColumnLeft([]int{-1, -4, -7}))
	assert.Equal(t, [][]int{{-1, 1, 2}, {-4, 4, 5}, {-7, 7, 8}}, m.Resolve())

	require.NoError(t, m.InsertColumnRight([]int{3, 6, 9}))
	assert.Equal(t, [][]int{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}, m.Resolve())
}

func TestMixedInsertsWrapBothAxes(t *testing.T) {
	m := sample3x3(t)

	require.NoError(t, m.InsertColumnRight([]int{30, 60, 90}))
	require.NoError(t, m.InsertRowBelow([]int{100, 101, 102}))
	require.NoError(t, m.InsertRowBelow([]int{200, 201, 202}))

	assert.Equal(t, [][]int{
		{8, 9, 90},
		{100, 101, 102},
		{200, 201, 202},
	}, m.Resolve())

	v, err := m.At(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 102, v)
}

func TestLengthMismatch(t *testing.T) {
	m := sample3x3(t)
	before := m.Resolve()

	tests := []struct {
		name string
		fn   func() error
	}{
		{"row above too short", func() error { return m.InsertRowAbove([]int{1, 2}) }},
		{"row below too long", func() error { return m.InsertRowBelow([]int{1, 2, 3, 4}) }},
		{"column left empty", func() error { return m.InsertColumnLeft(nil) }},
		{"column right too long", func() error { return m.InsertColumnRight([]int{1, 2, 3, 4}) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fn()
			assert.ErrorIs(t, err, domain.ErrLengthMismatch)
		})
	}

	assert.Equal(t, before, m.Resolve(), "failed inserts leave the matrix untouched")
}

func TestNonSquareMatrix(t *testing.T) {
	m, err := NewSliding[string](2, 4)
	require.NoError(t, err)

	require.NoError(t, m.InsertRowAbove([]string{"a", "b", "c", "d"}))
	require.NoError(t, m.InsertColumnLeft([]string{"x", "y"}))

	assert.Equal(t, [][]string{{"x", "a", "b", "c"}, {"y", "", "", ""}}, m.Resolve())

	_, err = m.At(2, 0)
	assert.ErrorIs(t, err, domain.ErrOutOfRange)

	_, err = NewSliding[int](0, 3)
	assert.ErrorIs(t, err, domain.ErrConfig)
}
