// Package nest composes an N x N grid of independently assembled blocks into
// a single nested matrix.
//
// The blocks keep their own storage. A NestedMatrix validates the grid,
// reconciles the extents of blocks sharing a row or column, and then offers
// block-wise multiply, size queries, a structural summary, compatible block
// vectors and the global index range of each block. Null blocks are zero
// and are skipped during multiply.
//
// Construction is permissive about rows and columns that hold no blocks: their
// size stays unresolved until an explicit size is given (WithRowSize,
// WithColSize), and operations needing it fail with ErrUndeterminedBlockSize.
package nest
