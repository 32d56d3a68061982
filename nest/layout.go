package nest

import (
	"fmt"
	"math"

	"github.com/notargets/DGNest/block"
)

// Unresolved marks a row or column size that no block or explicit size determines.
const Unresolved = -1

// BlockDescriptor describes one cell of the block grid
type BlockDescriptor struct {
	Row, Col int
	Op       block.Operator // nil for a null (zero) block
	RowSize  int            // rows contributed, or Unresolved
	ColSize  int            // columns contributed, or Unresolved
}

// IsNull reports whether the cell holds no operator.
func (d BlockDescriptor) IsNull() bool {
	return block.IsNull(d.Op)
}

// Layout is the validated N x N arrangement of blocks
type Layout struct {
	N    int
	Grid []BlockDescriptor // Row-major, length N*N

	// Resolved extents per block row and block column, Unresolved when unknown
	RowSizes []int
	ColSizes []int
}

// BuildLayout arranges ops row-major into an N x N grid and reconciles the
// row and column extents of the present blocks. The k-th operator lands in
// cell (k/N, k%N); nil entries are null blocks.
//
// Rows or columns without any block and without an explicit size stay
// Unresolved. That is not an error here; operations that need the size fail
// with ErrUndeterminedBlockSize instead.
func BuildLayout(ops []block.Operator, opts ...Option) (*Layout, error) {
	return buildLayout(ops, newConfig(opts))
}

func buildLayout(ops []block.Operator, cfg *config) (*Layout, error) {
	n, err := gridOrder(len(ops))
	if err != nil {
		return nil, err
	}

	l := &Layout{
		N:        n,
		Grid:     make([]BlockDescriptor, n*n),
		RowSizes: unresolvedSizes(n),
		ColSizes: unresolvedSizes(n),
	}

	if err = l.applyExplicitSizes(cfg.rowSizes, l.RowSizes, "row"); err != nil {
		return nil, err
	}
	if err = l.applyExplicitSizes(cfg.colSizes, l.ColSizes, "column"); err != nil {
		return nil, err
	}

	// Reconciliation pass over the present blocks
	for k, op := range ops {
		i, j := k/n, k%n
		l.Grid[k] = BlockDescriptor{Row: i, Col: j}
		if block.IsNull(op) {
			continue
		}
		l.Grid[k].Op = op
		r, c := op.Dims()
		if err = reconcile(l.RowSizes, i, r, "row", i, j); err != nil {
			return nil, err
		}
		if err = reconcile(l.ColSizes, j, c, "column", i, j); err != nil {
			return nil, err
		}
	}

	// Null cells inherit whatever their row and column resolved to
	for k := range l.Grid {
		d := &l.Grid[k]
		d.RowSize = l.RowSizes[d.Row]
		d.ColSize = l.ColSizes[d.Col]
	}

	if err = l.Validate(); err != nil {
		return nil, fmt.Errorf("invalid block layout: %w", err)
	}
	return l, nil
}

// gridOrder returns N for a count of N*N blocks.
func gridOrder(count int) (int, error) {
	if count <= 0 {
		return 0, fmt.Errorf("%w: got %d blocks", ErrInvalidGridShape, count)
	}
	n := int(math.Sqrt(float64(count)))
	for n*n < count {
		n++
	}
	for n*n > count {
		n--
	}
	if n*n != count {
		return 0, fmt.Errorf("%w: got %d blocks", ErrInvalidGridShape, count)
	}
	return n, nil
}

func unresolvedSizes(n int) []int {
	sizes := make([]int, n)
	for i := range sizes {
		sizes[i] = Unresolved
	}
	return sizes
}

func (l *Layout) applyExplicitSizes(explicit map[int]int, sizes []int, kind string) error {
	for idx, size := range explicit {
		if idx < 0 || idx >= l.N {
			return fmt.Errorf("%w: explicit %s size for %s %d in %dx%d grid",
				ErrBlockIndex, kind, kind, idx, l.N, l.N)
		}
		if size < 0 {
			return fmt.Errorf("%w: explicit %s %d size %d", ErrInvalidSize, kind, idx, size)
		}
		sizes[idx] = size
	}
	return nil
}

func reconcile(sizes []int, idx, extent int, kind string, i, j int) error {
	if sizes[idx] == Unresolved {
		sizes[idx] = extent
		return nil
	}
	if sizes[idx] != extent {
		return fmt.Errorf("%w: block (%d,%d) has %s extent %d, %s %d has size %d",
			ErrInconsistentBlockSize, i, j, kind, extent, kind, idx, sizes[idx])
	}
	return nil
}

// Validate checks the grid invariants: shape, cell coordinates and that
// every present block agrees with its row and column sizes.
func (l *Layout) Validate() error {
	if len(l.Grid) != l.N*l.N {
		return fmt.Errorf("grid holds %d cells, want %d", len(l.Grid), l.N*l.N)
	}
	if len(l.RowSizes) != l.N || len(l.ColSizes) != l.N {
		return fmt.Errorf("have %d row and %d column sizes, want %d",
			len(l.RowSizes), len(l.ColSizes), l.N)
	}
	for k, d := range l.Grid {
		if d.Row != k/l.N || d.Col != k%l.N {
			return fmt.Errorf("cell %d labelled (%d,%d)", k, d.Row, d.Col)
		}
		if d.RowSize != l.RowSizes[d.Row] || d.ColSize != l.ColSizes[d.Col] {
			return fmt.Errorf("cell (%d,%d) extents %dx%d disagree with row/column sizes %dx%d",
				d.Row, d.Col, d.RowSize, d.ColSize, l.RowSizes[d.Row], l.ColSizes[d.Col])
		}
		if d.IsNull() {
			continue
		}
		r, c := d.Op.Dims()
		if r != d.RowSize || c != d.ColSize {
			return fmt.Errorf("%w: block (%d,%d) is %dx%d, cell is %dx%d",
				ErrInconsistentBlockSize, d.Row, d.Col, r, c, d.RowSize, d.ColSize)
		}
	}
	return nil
}

func (l *Layout) clone() *Layout {
	return &Layout{
		N:        l.N,
		Grid:     append([]BlockDescriptor(nil), l.Grid...),
		RowSizes: append([]int(nil), l.RowSizes...),
		ColSizes: append([]int(nil), l.ColSizes...),
	}
}

// At returns the descriptor of cell (i, j).
func (l *Layout) At(i, j int) (BlockDescriptor, error) {
	if i < 0 || i >= l.N || j < 0 || j >= l.N {
		return BlockDescriptor{}, fmt.Errorf("%w: cell (%d,%d) in %dx%d grid",
			ErrBlockIndex, i, j, l.N, l.N)
	}
	return l.Grid[i*l.N+j], nil
}

// RowSize returns the size of block row i.
func (l *Layout) RowSize(i int) (int, error) {
	return sizeOf(l.RowSizes, i, "row")
}

// ColSize returns the size of block column j.
func (l *Layout) ColSize(j int) (int, error) {
	return sizeOf(l.ColSizes, j, "column")
}

// NullCount returns the number of null cells.
func (l *Layout) NullCount() (count int) {
	for _, d := range l.Grid {
		if d.IsNull() {
			count++
		}
	}
	return
}

// UnresolvedBlocks returns the indices of block rows and columns without a size.
func (l *Layout) UnresolvedBlocks() (rows, cols []int) {
	for i, s := range l.RowSizes {
		if s == Unresolved {
			rows = append(rows, i)
		}
	}
	for j, s := range l.ColSizes {
		if s == Unresolved {
			cols = append(cols, j)
		}
	}
	return
}

func sizeOf(sizes []int, idx int, kind string) (int, error) {
	if idx < 0 || idx >= len(sizes) {
		return 0, fmt.Errorf("%w: %s %d of %d", ErrBlockIndex, kind, idx, len(sizes))
	}
	if sizes[idx] == Unresolved {
		return 0, fmt.Errorf("%w: %s %d has no blocks and no explicit size",
			ErrUndeterminedBlockSize, kind, idx)
	}
	return sizes[idx], nil
}

// blockRange returns the offset and length of block idx in a flat layout
// built from sizes. Every size up to and including idx must be resolved.
func blockRange(sizes []int, idx int, kind string) (offset, length int, err error) {
	if length, err = sizeOf(sizes, idx, kind); err != nil {
		return 0, 0, err
	}
	for k := 0; k < idx; k++ {
		if sizes[k] == Unresolved {
			return 0, 0, fmt.Errorf("%w: offset of %s %d needs size of %s %d",
				ErrUndeterminedBlockSize, kind, idx, kind, k)
		}
		offset += sizes[k]
	}
	return offset, length, nil
}

// totalSize sums sizes, failing on the first unresolved entry.
func totalSize(sizes []int, kind string) (int, error) {
	total := 0
	for idx := range sizes {
		s, err := sizeOf(sizes, idx, kind)
		if err != nil {
			return 0, err
		}
		total += s
	}
	return total, nil
}
