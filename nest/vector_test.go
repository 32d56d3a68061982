package nest

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestBlockVector_Basics(t *testing.T) {
	bv := NewBlockVector(3)
	assert.Equal(t, 3, bv.Len())
	assert.Equal(t, 0, bv.Size())
	assert.Nil(t, bv.Block(1))
	assert.Nil(t, bv.Block(5))

	assert.NoError(t, bv.SetBlock(0, vec(3, 4)))
	assert.NoError(t, bv.SetBlock(2, vec(12)))
	assert.ErrorIs(t, bv.SetBlock(3, vec(1)), ErrBlockIndex)

	assert.Equal(t, 3, bv.Size())
	assert.Equal(t, []int{2, 0, 1}, bv.Lengths())
	assert.Equal(t, []float64{3, 4, 12}, bv.RawCopy())
	assert.InDelta(t, 13.0, bv.Norm(), 1e-14)

	bv.Zero()
	assert.Equal(t, 0.0, bv.Norm())
}

func TestBlockVector_EmptySlots(t *testing.T) {
	bv := NewBlockVectorFrom(&mat.VecDense{}, vec(1, 1))
	assert.Equal(t, []int{0, 2}, bv.Lengths())
	assert.InDelta(t, math.Sqrt2, bv.Norm(), 1e-14)
	assert.Equal(t, 0.0, NewBlockVector(2).Norm())
	assert.Equal(t, 0, NewBlockVector(-1).Len())
}
