package nest

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Splitter moves data between a flat global vector and a BlockVector. The
// pick indices of block k are exactly the dofs reported for block k, so a
// split vector lines up with the offsets of GetBlockDofs.
type Splitter struct {
	Total       int
	PickIndices [][]int // [block] -> global indices, in block-local order
}

// NewSplitter builds a splitter over the block rows of nm.
func NewSplitter(nm *NestedMatrix) (*Splitter, error) {
	return newSplitter(nm.layout.N, nm.GetBlockDofs)
}

// NewDomainSplitter builds a splitter over the block columns of nm.
func NewDomainSplitter(nm *NestedMatrix) (*Splitter, error) {
	return newSplitter(nm.layout.N, nm.GetColumnBlockDofs)
}

func newSplitter(n int, dofs func(int) ([]int, error)) (*Splitter, error) {
	sp := &Splitter{PickIndices: make([][]int, n)}
	for k := 0; k < n; k++ {
		idx, err := dofs(k)
		if err != nil {
			return nil, err
		}
		sp.PickIndices[k] = idx
		sp.Total += len(idx)
	}
	if err := sp.Verify(); err != nil {
		return nil, err
	}
	return sp, nil
}

// Split copies flat into a new BlockVector, one sub-vector per block.
func (sp *Splitter) Split(flat []float64) (*BlockVector, error) {
	if len(flat) != sp.Total {
		return nil, fmt.Errorf("%w: flat vector has length %d, want %d",
			ErrDimensionMismatch, len(flat), sp.Total)
	}
	bv := NewBlockVector(len(sp.PickIndices))
	for k, picks := range sp.PickIndices {
		bv.blocks[k] = pick(flat, picks)
	}
	return bv, nil
}

// Merge writes the sub-vectors of bv into flat at their global positions.
func (sp *Splitter) Merge(bv *BlockVector, flat []float64) error {
	if len(flat) != sp.Total {
		return fmt.Errorf("%w: flat vector has length %d, want %d",
			ErrDimensionMismatch, len(flat), sp.Total)
	}
	if bv.Len() != len(sp.PickIndices) {
		return fmt.Errorf("%w: block vector has %d blocks, want %d",
			ErrDimensionMismatch, bv.Len(), len(sp.PickIndices))
	}
	for k, picks := range sp.PickIndices {
		if got := vecLen(bv.blocks[k]); got != len(picks) {
			return fmt.Errorf("%w: block %d has length %d, want %d",
				ErrDimensionMismatch, k, got, len(picks))
		}
	}
	for k, picks := range sp.PickIndices {
		for local, global := range picks {
			flat[global] = bv.blocks[k].AtVec(local)
		}
	}
	return nil
}

// Extract returns a copy of the entries of flat owned by block k.
func (sp *Splitter) Extract(flat []float64, k int) (*mat.VecDense, error) {
	if k < 0 || k >= len(sp.PickIndices) {
		return nil, fmt.Errorf("%w: block %d of %d", ErrBlockIndex, k, len(sp.PickIndices))
	}
	if len(flat) != sp.Total {
		return nil, fmt.Errorf("%w: flat vector has length %d, want %d",
			ErrDimensionMismatch, len(flat), sp.Total)
	}
	return pick(flat, sp.PickIndices[k]), nil
}

func pick(flat []float64, picks []int) *mat.VecDense {
	v := newZeroVec(len(picks))
	for local, global := range picks {
		v.SetVec(local, flat[global])
	}
	return v
}

// Verify checks that every global index is picked exactly once.
func (sp *Splitter) Verify() error {
	seen := make([]bool, sp.Total)
	count := 0
	for k, picks := range sp.PickIndices {
		for _, g := range picks {
			if g < 0 || g >= sp.Total {
				return fmt.Errorf("invalid pick index %d for block %d (max %d)", g, k, sp.Total-1)
			}
			if seen[g] {
				return fmt.Errorf("global index %d picked twice", g)
			}
			seen[g] = true
			count++
		}
	}
	if count != sp.Total {
		return fmt.Errorf("conservation error: %d picks for %d global indices", count, sp.Total)
	}
	return nil
}
