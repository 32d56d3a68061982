package nest

import (
	"testing"

	"github.com/notargets/DGNest/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestInitVectors_ZeroFilled(t *testing.T) {
	nm, err := NewNestedMatrix([]block.Operator{seqBlock(3, 3, 1), nil, nil, seqBlock(5, 5, 1)})
	require.NoError(t, err)

	target := NewBlockVector(0)
	require.NoError(t, nm.InitVectors(target, nil))
	assert.Equal(t, 2, target.Len())
	assert.Equal(t, []int{3, 5}, target.Lengths())
	assert.Equal(t, make([]float64, 8), target.RawCopy())
}

func TestInitVectors_AdoptsSupplied(t *testing.T) {
	nm, err := NewNestedMatrix([]block.Operator{seqBlock(3, 2, 1), nil, nil, seqBlock(5, 4, 1)})
	require.NoError(t, err)

	v1 := vec(1, 2, 3, 4, 5)
	target := NewBlockVector(2)
	require.NoError(t, nm.InitVectors(target, map[int]*mat.VecDense{1: v1}))
	assert.Same(t, v1, target.Block(1))
	assert.Equal(t, 3, target.Block(0).Len())

	// Adoption is by reference
	v1.SetVec(0, 10)
	assert.Equal(t, 10.0, target.Block(1).AtVec(0))

	domain := NewBlockVector(2)
	require.NoError(t, nm.InitDomainVectors(domain, map[int]*mat.VecDense{0: vec(7, 8)}))
	assert.Equal(t, []int{2, 4}, domain.Lengths())
}

func TestInitVectors_DimensionMismatch(t *testing.T) {
	nm, err := NewNestedMatrix([]block.Operator{seqBlock(3, 3, 1), nil, nil, seqBlock(5, 5, 1)})
	require.NoError(t, err)

	target := NewBlockVectorFrom(vec(9))
	err = nm.InitVectors(target, map[int]*mat.VecDense{0: vec(1, 2)})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	// Nothing was written
	assert.Equal(t, 1, target.Len())
	assert.Equal(t, 9.0, target.Block(0).AtVec(0))

	err = nm.InitVectors(NewBlockVector(2), map[int]*mat.VecDense{2: vec(1)})
	assert.ErrorIs(t, err, ErrBlockIndex)

	assert.ErrorIs(t, nm.InitVectors(nil, nil), ErrDimensionMismatch)
}

func TestInitVectors_UndeterminedBlockSize(t *testing.T) {
	nm, err := NewNestedMatrix([]block.Operator{seqBlock(3, 3, 1), nil, nil, nil})
	require.NoError(t, err)

	err = nm.InitVectors(NewBlockVector(2), nil)
	assert.ErrorIs(t, err, ErrUndeterminedBlockSize)
	_, err = nm.NewRangeVector()
	assert.ErrorIs(t, err, ErrUndeterminedBlockSize)
	_, err = nm.NewDomainVector()
	assert.ErrorIs(t, err, ErrUndeterminedBlockSize)

	// A supplied vector is the explicit size for the empty row
	target := NewBlockVector(2)
	require.NoError(t, nm.InitVectors(target, map[int]*mat.VecDense{1: vec(0, 0, 0, 0)}))
	assert.Equal(t, []int{3, 4}, target.Lengths())
}

func TestInitVectors_SuppliedSizeIsNotRecorded(t *testing.T) {
	ops := []block.Operator{seqBlock(3, 3, 1), nil, nil, nil}
	nm, err := NewNestedMatrix(ops)
	require.NoError(t, err)

	y := NewBlockVector(2)
	require.NoError(t, nm.InitVectors(y, map[int]*mat.VecDense{1: vec(0, 0)}))
	_, err = nm.RowSize(1)
	assert.ErrorIs(t, err, ErrUndeterminedBlockSize)
	_, err = nm.GetBlockDofs(1)
	assert.ErrorIs(t, err, ErrUndeterminedBlockSize)
	x := NewBlockVectorFrom(vec(1, 1, 1), vec(1))
	assert.ErrorIs(t, nm.Mult(x, y), ErrUndeterminedBlockSize)

	// The lasting way to size the row
	nm, err = NewNestedMatrix(ops, WithRowSize(1, 2), WithColSize(1, 1))
	require.NoError(t, err)
	require.NoError(t, nm.InitVectors(y, map[int]*mat.VecDense{1: y.Block(1)}))
	require.NoError(t, nm.Mult(x, y))
	assert.Equal(t, []float64{0, 0}, y.Block(1).RawVector().Data)
}
