package nest

import (
	"testing"

	"github.com/notargets/DGNest/block"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// seqBlock returns an r x c dense block whose entries count up from seed.
func seqBlock(r, c int, seed float64) *block.Dense {
	vals := make([]float64, r*c)
	for k := range vals {
		vals[k] = seed + float64(k)
	}
	return block.NewDenseFromRows(r, c, vals)
}

// assemble copies the blocks of nm into one dense matrix, for reference results.
func assemble(t *testing.T, nm *NestedMatrix) *mat.Dense {
	t.Helper()
	nr, err := nm.Size(0)
	require.NoError(t, err)
	nc, err := nm.Size(1)
	require.NoError(t, err)

	full := mat.NewDense(nr, nc, nil)
	r0 := 0
	for i := 0; i < nm.N(); i++ {
		c0 := 0
		rs, _ := nm.RowSize(i)
		for j := 0; j < nm.N(); j++ {
			cs, _ := nm.ColSize(j)
			op, err := nm.Block(i, j)
			require.NoError(t, err)
			if op != nil {
				dst := full.Slice(r0, r0+rs, c0, c0+cs).(*mat.Dense)
				for c := 0; c < cs; c++ {
					e := mat.NewVecDense(cs, nil)
					e.SetVec(c, 1)
					col := mat.NewVecDense(rs, nil)
					op.MulVecTo(col, e)
					dst.SetCol(c, col.RawVector().Data)
				}
			}
			c0 += cs
		}
		r0 += rs
	}
	return full
}

func vec(vals ...float64) *mat.VecDense {
	return mat.NewVecDense(len(vals), vals)
}
