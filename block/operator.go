// Package block defines the sub-matrix capability consumed by nested block
// matrices, along with adapters for the matrix types used in this project.
//
// A block is anything that reports its extents and can apply itself to a
// vector. Storage and arithmetic stay with the concrete type; a nest only
// holds references to caller-owned blocks.
package block

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Operator is a linear operator contributing one cell of a block grid.
type Operator interface {
	// Dims returns the number of rows and columns of the operator.
	Dims() (r, c int)
	// MulVecTo computes dst = A * x. dst has length r and x has length c.
	MulVecTo(dst *mat.VecDense, x mat.Vector)
}

// Format returns a short storage name for op, used in structural summaries.
func Format(op Operator) string {
	switch op.(type) {
	case nil:
		return "null"
	case *Dense:
		return "dense"
	case *CSR:
		return "csr"
	default:
		return fmt.Sprintf("%T", op)
	}
}

// IsNull reports whether op is absent. A typed nil pointer stored in the
// interface counts as absent too.
func IsNull(op Operator) bool {
	switch o := op.(type) {
	case nil:
		return true
	case *Dense:
		return o == nil || o.m == nil
	case *CSR:
		return o == nil || o.m == nil
	}
	return false
}
