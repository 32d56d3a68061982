package problem

import (
	"testing"

	"github.com/notargets/DGNest/nest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multFile(t *testing.T, path string, opts ...nest.Option) (*nest.NestedMatrix, []float64) {
	t.Helper()
	p, err := Load(path)
	require.NoError(t, err)
	nm, err := p.Build(opts...)
	require.NoError(t, err)
	x, err := p.Input(nm)
	require.NoError(t, err)
	y, err := nm.NewRangeVector()
	require.NoError(t, err)
	require.NoError(t, nm.Mult(x, y))
	return nm, y.RawCopy()
}

func TestLoad_Saddle(t *testing.T) {
	nm, y := multFile(t, "testdata/saddle.yaml")
	// y0 = A x0 + B^T x1 = [6 7] + [3 3], y1 = B x0 = 3
	assert.Equal(t, []float64{9, 10, 3}, y)

	op, err := nm.Block(0, 1)
	require.NoError(t, err)
	assert.NotNil(t, op)
	op, err = nm.Block(1, 1)
	require.NoError(t, err)
	assert.Nil(t, op)
}

func TestLoad_YAMLAndTOMLAgree(t *testing.T) {
	fromYAML, yY := multFile(t, "testdata/saddle.yaml")
	fromTOML, yT := multFile(t, "testdata/saddle.toml")
	assert.Equal(t, fromYAML.Describe(false), fromTOML.Describe(false))
	assert.Equal(t, yY, yT)
}

func TestLoad_ExplicitSizes(t *testing.T) {
	nm, y := multFile(t, "testdata/null_row.yaml", nest.WithWorkers(2))
	assert.Equal(t, []float64{6, 0, 0}, y)

	dofs, err := nm.GetBlockDofs(1)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, dofs)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load("testdata/missing.yaml")
	assert.Error(t, err)

	_, err = Parse([]byte("n: 2"), "json")
	assert.ErrorIs(t, err, ErrInvalidProblem)

	_, err = Parse([]byte("n: [1"), "yaml")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"zero n", "n: 0"},
		{"out of grid", "n: 1\nblocks:\n  - {row: 1, col: 0, rows: 1, cols: 1, values: [1]}"},
		{"duplicate", "n: 1\nblocks:\n  - {row: 0, col: 0, rows: 1, cols: 1, values: [1]}\n  - {row: 0, col: 0, rows: 1, cols: 1, values: [1]}"},
		{"bad shape", "n: 1\nblocks:\n  - {row: 0, col: 0, rows: 0, cols: 1}"},
		{"value count", "n: 1\nblocks:\n  - {row: 0, col: 0, rows: 2, cols: 1, values: [1]}"},
		{"csr with values", "n: 1\nblocks:\n  - {row: 0, col: 0, rows: 1, cols: 1, format: csr, values: [1]}"},
		{"unknown format", "n: 1\nblocks:\n  - {row: 0, col: 0, rows: 1, cols: 1, format: coo}"},
		{"size kind", "n: 1\nsizes:\n  - {kind: diag, index: 0, size: 1}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), "yaml")
			assert.ErrorIs(t, err, ErrInvalidProblem)
		})
	}
}

func TestBuild_PropagatesNestErrors(t *testing.T) {
	// Two blocks in row 0 disagree on the row extent
	doc := `n: 2
blocks:
  - {row: 0, col: 0, rows: 1, cols: 1, values: [1]}
  - {row: 0, col: 1, rows: 2, cols: 1, values: [1, 2]}
`
	p, err := Parse([]byte(doc), "yaml")
	require.NoError(t, err)
	_, err = p.Build()
	assert.ErrorIs(t, err, nest.ErrInconsistentBlockSize)

	// Entry outside its sparse block
	doc = `n: 1
blocks:
  - {row: 0, col: 0, rows: 1, cols: 1, format: csr, entries: [{i: 1, j: 0, v: 2}]}
`
	p, err = Parse([]byte(doc), "yaml")
	require.NoError(t, err)
	_, err = p.Build()
	assert.ErrorIs(t, err, ErrInvalidProblem)
}

func TestInput_Missing(t *testing.T) {
	p, err := Parse([]byte("n: 1\nblocks:\n  - {row: 0, col: 0, rows: 1, cols: 1, values: [1]}"), "yaml")
	require.NoError(t, err)
	nm, err := p.Build()
	require.NoError(t, err)
	_, err = p.Input(nm)
	assert.ErrorIs(t, err, ErrInvalidProblem)
}
