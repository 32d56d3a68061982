package nest

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/notargets/DGNest/block"
	"go.uber.org/zap"
)

// NestedMatrix composes an N x N grid of caller-owned blocks into a single
// operator. Block storage is never copied or merged; the grid is immutable
// after construction, so concurrent queries are safe.
type NestedMatrix struct {
	ID      uuid.UUID
	layout  *Layout
	workers int
	logger  *zap.Logger
}

// NewNestedMatrix builds a nested matrix from ops, listed row-major from the
// top left block to the bottom right one. The number of operators must be a
// perfect square; nil entries are zero blocks.
func NewNestedMatrix(ops []block.Operator, opts ...Option) (*NestedMatrix, error) {
	cfg := newConfig(opts)
	layout, err := buildLayout(ops, cfg)
	if err != nil {
		cfg.logger.Debug("nested matrix construction failed",
			zap.Int("blocks", len(ops)), zap.Error(err))
		return nil, err
	}

	nm := &NestedMatrix{
		ID:      uuid.New(),
		layout:  layout,
		workers: cfg.workers,
		logger:  cfg.logger,
	}

	rows, cols := layout.UnresolvedBlocks()
	nm.logger.Debug("nested matrix built",
		zap.Stringer("id", nm.ID),
		zap.Int("n", layout.N),
		zap.Ints("rowSizes", layout.RowSizes),
		zap.Ints("colSizes", layout.ColSizes),
		zap.Int("nullBlocks", layout.NullCount()),
		zap.Ints("unresolvedRows", rows),
		zap.Ints("unresolvedCols", cols),
	)
	return nm, nil
}

// N returns the number of block rows (and block columns).
func (nm *NestedMatrix) N() int { return nm.layout.N }

// Layout returns a copy of the validated block layout.
func (nm *NestedMatrix) Layout() *Layout { return nm.layout.clone() }

// Block returns the operator at cell (i, j), nil for a null block.
func (nm *NestedMatrix) Block(i, j int) (block.Operator, error) {
	d, err := nm.layout.At(i, j)
	if err != nil {
		return nil, err
	}
	return d.Op, nil
}

// Descriptor returns the descriptor of cell (i, j).
func (nm *NestedMatrix) Descriptor(i, j int) (BlockDescriptor, error) {
	return nm.layout.At(i, j)
}

// RowSize returns the size of block row i.
func (nm *NestedMatrix) RowSize(i int) (int, error) { return nm.layout.RowSize(i) }

// ColSize returns the size of block column j.
func (nm *NestedMatrix) ColSize(j int) (int, error) { return nm.layout.ColSize(j) }

// Size returns the global number of rows (dim 0) or columns (dim 1).
func (nm *NestedMatrix) Size(dim int) (int, error) {
	switch dim {
	case 0:
		return totalSize(nm.layout.RowSizes, "row")
	case 1:
		return totalSize(nm.layout.ColSizes, "column")
	default:
		return 0, fmt.Errorf("%w: %d, want 0 (rows) or 1 (columns)", ErrInvalidDimension, dim)
	}
}

// String returns the non-verbose structural summary.
func (nm *NestedMatrix) String() string {
	return nm.Describe(false)
}
