package block

import (
	"github.com/notargets/gocfd/utils"
	"gonum.org/v1/gonum/mat"
)

// Dense adapts any gonum matrix to the Operator interface.
type Dense struct {
	m mat.Matrix
}

// NewDense wraps m. The matrix is referenced, not copied.
func NewDense(m mat.Matrix) *Dense {
	return &Dense{m: m}
}

// NewDenseFromRows builds a dense block from row-major values.
func NewDenseFromRows(r, c int, values []float64) *Dense {
	return &Dense{m: mat.NewDense(r, c, values)}
}

// FromGocfd wraps the gonum storage behind a gocfd utils.Matrix.
func FromGocfd(m utils.Matrix) *Dense {
	return &Dense{m: m.M}
}

func (d *Dense) Dims() (r, c int) { return d.m.Dims() }

// Matrix returns the wrapped gonum matrix.
func (d *Dense) Matrix() mat.Matrix { return d.m }

func (d *Dense) MulVecTo(dst *mat.VecDense, x mat.Vector) {
	dst.MulVec(d.m, x)
}
