package nest

import (
	"fmt"
	"unsafe"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// BlockVector is a vector stored as an ordered sequence of sub-vectors, one
// per block row (or block column) of a nested matrix.
type BlockVector struct {
	blocks []*mat.VecDense
}

// NewBlockVector returns a vector with n empty slots. Populate it with
// NestedMatrix.InitVectors or SetBlock.
func NewBlockVector(n int) *BlockVector {
	if n < 0 {
		n = 0
	}
	return &BlockVector{blocks: make([]*mat.VecDense, n)}
}

// NewBlockVectorFrom wraps the given sub-vectors by reference.
func NewBlockVectorFrom(blocks ...*mat.VecDense) *BlockVector {
	return &BlockVector{blocks: blocks}
}

// Len returns the number of sub-vector slots.
func (bv *BlockVector) Len() int { return len(bv.blocks) }

// Block returns sub-vector i, nil when the slot is empty.
func (bv *BlockVector) Block(i int) *mat.VecDense {
	if i < 0 || i >= len(bv.blocks) {
		return nil
	}
	return bv.blocks[i]
}

// SetBlock places v in slot i by reference.
func (bv *BlockVector) SetBlock(i int, v *mat.VecDense) error {
	if i < 0 || i >= len(bv.blocks) {
		return fmt.Errorf("%w: slot %d of %d", ErrBlockIndex, i, len(bv.blocks))
	}
	bv.blocks[i] = v
	return nil
}

// Size returns the total number of entries across all populated slots.
func (bv *BlockVector) Size() (n int) {
	for _, b := range bv.blocks {
		n += vecLen(b)
	}
	return
}

// Lengths returns the length of each slot, 0 for empty slots.
func (bv *BlockVector) Lengths() []int {
	lengths := make([]int, len(bv.blocks))
	for i, b := range bv.blocks {
		lengths[i] = vecLen(b)
	}
	return lengths
}

// Norm returns the Euclidean norm over all sub-vectors.
func (bv *BlockVector) Norm() float64 {
	norms := make([]float64, 0, len(bv.blocks))
	for _, b := range bv.blocks {
		if vecLen(b) > 0 {
			norms = append(norms, mat.Norm(b, 2))
		}
	}
	if len(norms) == 0 {
		return 0
	}
	return floats.Norm(norms, 2)
}

// Zero sets every populated sub-vector to zero.
func (bv *BlockVector) Zero() {
	for _, b := range bv.blocks {
		if vecLen(b) > 0 {
			b.Zero()
		}
	}
}

// RawCopy returns the concatenation of all sub-vectors in slot order.
func (bv *BlockVector) RawCopy() []float64 {
	out := make([]float64, 0, bv.Size())
	for _, b := range bv.blocks {
		if vecLen(b) > 0 {
			out = append(out, mat.Col(nil, 0, b)...)
		}
	}
	return out
}

func vecLen(v *mat.VecDense) int {
	if v == nil || v.IsEmpty() {
		return 0
	}
	return v.Len()
}

// newZeroVec allocates a zero vector of length n. gonum has no zero-length
// vectors, so n == 0 yields an empty VecDense.
func newZeroVec(n int) *mat.VecDense {
	if n == 0 {
		return &mat.VecDense{}
	}
	return mat.NewVecDense(n, nil)
}

// span returns the address range of the backing data of v.
func span(v *mat.VecDense) (lo, hi uintptr, ok bool) {
	if vecLen(v) == 0 {
		return 0, 0, false
	}
	data := v.RawVector().Data
	lo = uintptr(unsafe.Pointer(&data[0]))
	hi = uintptr(unsafe.Pointer(&data[len(data)-1]))
	return lo, hi, true
}

// overlaps reports whether a and b may share elements. Interleaved strided
// views over one array count as overlapping.
func overlaps(a, b *mat.VecDense) bool {
	alo, ahi, ok := span(a)
	if !ok {
		return false
	}
	blo, bhi, ok := span(b)
	if !ok {
		return false
	}
	return alo <= bhi && blo <= ahi
}

// sameView reports whether a and b address exactly the same elements.
func sameView(a, b *mat.VecDense) bool {
	if a == b {
		return true
	}
	alo, ahi, aok := span(a)
	blo, bhi, bok := span(b)
	return aok && bok && alo == blo && ahi == bhi &&
		a.RawVector().Inc == b.RawVector().Inc
}
