package block

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// CSR adapts a compressed sparse row matrix to the Operator interface.
type CSR struct {
	m *sparse.CSR
}

// NewCSR wraps m. The matrix is referenced, not copied.
func NewCSR(m *sparse.CSR) *CSR {
	return &CSR{m: m}
}

// CSRFromTriplets assembles an r x c sparse block from coordinate triplets.
// Duplicate coordinates keep the last value written.
func CSRFromTriplets(r, c int, is, js []int, vs []float64) (*CSR, error) {
	if r <= 0 || c <= 0 {
		return nil, fmt.Errorf("invalid sparse block dimensions: %d x %d", r, c)
	}
	if len(is) != len(js) || len(is) != len(vs) {
		return nil, fmt.Errorf("triplet lengths differ: %d rows, %d cols, %d values",
			len(is), len(js), len(vs))
	}
	dok := sparse.NewDOK(r, c)
	for k := range is {
		if is[k] < 0 || is[k] >= r || js[k] < 0 || js[k] >= c {
			return nil, fmt.Errorf("triplet %d at (%d,%d) outside %d x %d block",
				k, is[k], js[k], r, c)
		}
		dok.Set(is[k], js[k], vs[k])
	}
	return &CSR{m: dok.ToCSR()}, nil
}

func (s *CSR) Dims() (r, c int) { return s.m.Dims() }

// Matrix returns the wrapped sparse matrix.
func (s *CSR) Matrix() *sparse.CSR { return s.m }

// NNZ returns the number of stored entries.
func (s *CSR) NNZ() int { return s.m.NNZ() }

// MulVecTo computes dst = A * x with the sparse library's kernel. Strided
// views are staged through contiguous copies.
func (s *CSR) MulVecTo(dst *mat.VecDense, x mat.Vector) {
	r, c := s.m.Dims()
	xs := contiguous(x, c)

	if dst.IsEmpty() {
		dst.ReuseAsVec(r)
	}
	if raw := dst.RawVector(); raw.Inc == 1 {
		out := raw.Data[:r]
		for i := range out {
			out[i] = 0
		}
		s.m.MulVecTo(out, false, xs)
		return
	}
	out := make([]float64, r)
	s.m.MulVecTo(out, false, xs)
	dst.CopyVec(mat.NewVecDense(r, out))
}

// contiguous returns the first n entries of x as a unit-stride slice,
// sharing storage when x already is one.
func contiguous(x mat.Vector, n int) []float64 {
	if rv, ok := x.(mat.RawVectorer); ok {
		if raw := rv.RawVector(); raw.Inc == 1 {
			return raw.Data[:n]
		}
	}
	return mat.VecDenseCopyOf(x).RawVector().Data[:n]
}
