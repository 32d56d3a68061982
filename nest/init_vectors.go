package nest

import (
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

// InitVectors populates target with one sub-vector per block row, giving a
// vector compatible with the output of Mult.
//
// A vector in supplied for row i is adopted by reference after its length is
// checked against the row size. A supplied vector for a row with no size
// information is adopted as-is and acts as the explicit size for this call
// only: the matrix does not record it, so Mult and GetBlockDofs still report
// ErrUndeterminedBlockSize for that row. Use WithRowSize at construction to
// give such a row a lasting size. Rows without a supplied vector get a new
// zero vector. target is only modified once every row has been checked.
func (nm *NestedMatrix) InitVectors(target *BlockVector, supplied map[int]*mat.VecDense) error {
	return nm.initVectors(target, supplied, nm.layout.RowSizes, "row")
}

// InitDomainVectors is InitVectors for the column partition, giving a vector
// compatible with the input of Mult.
func (nm *NestedMatrix) InitDomainVectors(target *BlockVector, supplied map[int]*mat.VecDense) error {
	return nm.initVectors(target, supplied, nm.layout.ColSizes, "column")
}

// NewRangeVector returns a zero vector partitioned by the block rows.
func (nm *NestedMatrix) NewRangeVector() (*BlockVector, error) {
	bv := NewBlockVector(nm.layout.N)
	if err := nm.InitVectors(bv, nil); err != nil {
		return nil, err
	}
	return bv, nil
}

// NewDomainVector returns a zero vector partitioned by the block columns.
func (nm *NestedMatrix) NewDomainVector() (*BlockVector, error) {
	bv := NewBlockVector(nm.layout.N)
	if err := nm.InitDomainVectors(bv, nil); err != nil {
		return nil, err
	}
	return bv, nil
}

func (nm *NestedMatrix) initVectors(target *BlockVector, supplied map[int]*mat.VecDense,
	sizes []int, kind string) error {
	if target == nil {
		return fmt.Errorf("%w: nil target vector", ErrDimensionMismatch)
	}
	n := nm.layout.N
	for idx := range supplied {
		if idx < 0 || idx >= n {
			return fmt.Errorf("%w: supplied vector for %s %d in %dx%d grid",
				ErrBlockIndex, kind, idx, n, n)
		}
	}

	blocks := make([]*mat.VecDense, n)
	adopted := 0
	for k := 0; k < n; k++ {
		v, ok := supplied[k]
		if ok && v != nil {
			if sizes[k] != Unresolved && vecLen(v) != sizes[k] {
				return fmt.Errorf("%w: supplied vector for %s %d has length %d, want %d",
					ErrDimensionMismatch, kind, k, vecLen(v), sizes[k])
			}
			blocks[k] = v
			adopted++
			continue
		}
		size, err := sizeOf(sizes, k, kind)
		if err != nil {
			return err
		}
		blocks[k] = newZeroVec(size)
	}

	target.blocks = blocks
	nm.logger.Debug("block vector initialized",
		zap.Stringer("id", nm.ID),
		zap.String("partition", kind),
		zap.Ints("lengths", target.Lengths()),
		zap.Int("adopted", adopted),
	)
	return nil
}
