package nest

import "errors"

// Sentinel errors. Operations wrap these with context via fmt.Errorf("...: %w");
// match them with errors.Is.
var (
	// ErrInvalidGridShape is returned when the number of supplied blocks is
	// not a positive perfect square.
	ErrInvalidGridShape = errors.New("nest: block count is not a perfect square")

	// ErrInconsistentBlockSize is returned when two blocks sharing a row (or
	// column) report different extents, or an explicit size disagrees with a block.
	ErrInconsistentBlockSize = errors.New("nest: inconsistent block size")

	// ErrUndeterminedBlockSize is returned at the point of use when a row or
	// column has no block and no explicit size.
	ErrUndeterminedBlockSize = errors.New("nest: undetermined block size")

	// ErrDimensionMismatch is returned when a vector does not match the block
	// partition it is used against.
	ErrDimensionMismatch = errors.New("nest: dimension mismatch")

	// ErrAliasedVectors is returned when the input and output of a multiply
	// share a sub-vector.
	ErrAliasedVectors = errors.New("nest: input and output vectors share storage")

	// ErrInvalidDimension is returned by Size for a dimension other than 0 or 1.
	ErrInvalidDimension = errors.New("nest: invalid dimension")

	// ErrBlockIndex is returned for a block index outside [0, N).
	ErrBlockIndex = errors.New("nest: block index out of range")

	// ErrInvalidSize is returned for a negative explicit block size.
	ErrInvalidSize = errors.New("nest: invalid block size")
)
