package xlgrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToFlat(t *testing.T) {
	tests := []struct {
		addr    GridAddress
		columns int
		want    FlatIndex
	}{
		{NewAddress(0, 0, 0), 3, FlatIndex{Section: 0, Item: 0}},
		{NewAddress(0, 0, 2), 3, FlatIndex{Section: 0, Item: 2}},
		{NewAddress(0, 1, 0), 3, FlatIndex{Section: 0, Item: 3}},
		{NewAddress(2, 1, 2), 3, FlatIndex{Section: 2, Item: 5}},
		{NewAddress(1, 7, 0), 1, FlatIndex{Section: 1, Item: 7}},
	}
	for _, tt := range tests {
		got, err := ToFlat(tt.addr, tt.columns)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "address %s", tt.addr)
	}
}

func TestToAddress(t *testing.T) {
	got, err := ToAddress(FlatIndex{Section: 4, Item: 11}, 5)
	require.NoError(t, err)
	assert.Equal(t, NewAddress(4, 2, 1), got)
}

func TestMapper_RoundTrip(t *testing.T) {
	for columns := 1; columns <= 7; columns++ {
		for row := 0; row < 10; row++ {
			for col := 0; col < columns; col++ {
				addr := NewAddress(3, row, col)
				flat, err := ToFlat(addr, columns)
				require.NoError(t, err)
				back, err := ToAddress(flat, columns)
				require.NoError(t, err)
				assert.Equal(t, addr, back)
			}
		}
	}
}

func TestMapper_InvalidColumnCount(t *testing.T) {
	for _, columns := range []int{0, -1} {
		_, err := ToFlat(NewAddress(0, 0, 0), columns)
		assert.ErrorIs(t, err, ErrInvalidColumnCount)
		_, err = ToAddress(FlatIndex{}, columns)
		assert.ErrorIs(t, err, ErrInvalidColumnCount)
	}
}
