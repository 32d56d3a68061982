package nest

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// Mult computes y = A*x block-wise: y[i] = sum_j A[i][j]*x[j] over the
// non-null blocks of row i. Null blocks are skipped, which is exact since
// they are zero.
//
// x must be partitioned by the column sizes and y by the row sizes, as
// produced by InitDomainVectors and InitVectors. Every block row and column
// must have a resolved size. All checks run before y is written.
func (nm *NestedMatrix) Mult(x, y *BlockVector) error {
	if err := nm.checkOperands(x, y, nil); err != nil {
		return err
	}
	return nm.apply(x, y, nil)
}

// MultAdd computes z = y + A*x. z may be the same vector as y.
func (nm *NestedMatrix) MultAdd(x, y, z *BlockVector) error {
	if err := nm.checkOperands(x, z, y); err != nil {
		return err
	}
	return nm.apply(x, z, y)
}

func (nm *NestedMatrix) apply(x, y, base *BlockVector) error {
	start := time.Now()
	n := nm.layout.N

	if nm.workers < 2 || n < 2 {
		for i := 0; i < n; i++ {
			nm.multRow(i, x, y, base)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(nm.workers)
		for i := 0; i < n; i++ {
			g.Go(func() error {
				nm.multRow(i, x, y, base)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}

	nm.logger.Debug("nested mult",
		zap.Stringer("id", nm.ID),
		zap.Int("workers", nm.workers),
		zap.Bool("accumulate", base != nil),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// multRow accumulates the partial products of block row i into y[i] in
// column order. When base is set y[i] starts from base[i], otherwise from zero.
func (nm *NestedMatrix) multRow(i int, x, y, base *BlockVector) {
	yi := y.blocks[i]
	rows := nm.layout.RowSizes[i]
	if rows == 0 {
		return
	}

	if base != nil {
		yi.CopyVec(base.blocks[i])
	} else {
		yi.Zero()
	}

	tmp := mat.NewVecDense(rows, nil)
	for j := 0; j < nm.layout.N; j++ {
		d := nm.layout.Grid[i*nm.layout.N+j]
		if d.IsNull() || d.ColSize == 0 {
			continue
		}
		d.Op.MulVecTo(tmp, x.blocks[j])
		yi.AddVec(yi, tmp)
	}
}

// checkOperands verifies that x matches the column partition and y (and
// base, when given) the row partition, and that no output sub-vector shares
// storage with an input or with another output.
func (nm *NestedMatrix) checkOperands(x, y, base *BlockVector) error {
	n := nm.layout.N
	if x == nil || y == nil {
		return fmt.Errorf("%w: nil block vector", ErrDimensionMismatch)
	}
	if err := checkPartition(x, nm.layout.ColSizes, "x", "column"); err != nil {
		return err
	}
	if err := checkPartition(y, nm.layout.RowSizes, "y", "row"); err != nil {
		return err
	}
	if base != nil {
		if err := checkPartition(base, nm.layout.RowSizes, "y", "row"); err != nil {
			return err
		}
	}

	for i := 0; i < n; i++ {
		out := y.blocks[i]
		for j := 0; j < n; j++ {
			if overlaps(out, x.blocks[j]) {
				return fmt.Errorf("%w: output block %d shares storage with input block %d",
					ErrAliasedVectors, i, j)
			}
		}
		for k := i + 1; k < n; k++ {
			if overlaps(out, y.blocks[k]) {
				return fmt.Errorf("%w: output blocks %d and %d share storage",
					ErrAliasedVectors, i, k)
			}
		}
		if base == nil {
			continue
		}
		// z[i] may be exactly y[i], nothing else
		for k := 0; k < n; k++ {
			if k == i && sameView(out, base.blocks[k]) {
				continue
			}
			if overlaps(out, base.blocks[k]) {
				return fmt.Errorf("%w: output block %d shares storage with addend block %d",
					ErrAliasedVectors, i, k)
			}
		}
	}
	return nil
}

func checkPartition(bv *BlockVector, sizes []int, name, kind string) error {
	if bv.Len() != len(sizes) {
		return fmt.Errorf("%w: %s has %d blocks, matrix has %d %ss",
			ErrDimensionMismatch, name, bv.Len(), len(sizes), kind)
	}
	for k := range sizes {
		size, err := sizeOf(sizes, k, kind)
		if err != nil {
			return err
		}
		if size > 0 && bv.blocks[k] == nil {
			return fmt.Errorf("%w: %s block %d is not initialized", ErrDimensionMismatch, name, k)
		}
		if got := vecLen(bv.blocks[k]); got != size {
			return fmt.Errorf("%w: %s block %d has length %d, %s %d has size %d",
				ErrDimensionMismatch, name, k, got, kind, k, size)
		}
	}
	return nil
}
