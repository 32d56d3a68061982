// Package problem reads a nested block system description from YAML or TOML
// and turns it into block operators and a NestedMatrix.
package problem

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/notargets/DGNest/block"
	"github.com/notargets/DGNest/nest"
	"gopkg.in/yaml.v3"
)

// ErrInvalidProblem is wrapped by every validation failure in this package.
var ErrInvalidProblem = errors.New("problem: invalid description")

// Problem is the on-disk description of a nested system.
type Problem struct {
	N      int            `yaml:"n" toml:"n"`
	Sizes  []ExplicitSize `yaml:"sizes" toml:"sizes"`
	Blocks []BlockDef     `yaml:"blocks" toml:"blocks"`
	X      []float64      `yaml:"x" toml:"x"` // Optional flat input vector
}

// ExplicitSize gives an explicit size for a block row or column.
type ExplicitSize struct {
	Kind  string `yaml:"kind" toml:"kind"` // "row" or "column"
	Index int    `yaml:"index" toml:"index"`
	Size  int    `yaml:"size" toml:"size"`
}

// BlockDef describes one non-null block.
type BlockDef struct {
	Row    int    `yaml:"row" toml:"row"`
	Col    int    `yaml:"col" toml:"col"`
	Rows   int    `yaml:"rows" toml:"rows"`
	Cols   int    `yaml:"cols" toml:"cols"`
	Format string `yaml:"format" toml:"format"` // "dense" (default) or "csr"

	Values  []float64 `yaml:"values" toml:"values"`   // Row-major, dense only
	Entries []Entry   `yaml:"entries" toml:"entries"` // Triplets, csr only
}

// Entry is one stored value of a sparse block.
type Entry struct {
	I int     `yaml:"i" toml:"i"`
	J int     `yaml:"j" toml:"j"`
	V float64 `yaml:"v" toml:"v"`
}

// Load reads a problem file. The format follows the extension: .yaml, .yml or .toml.
func Load(path string) (*Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("problem: read %s: %w", path, err)
	}
	p, err := Parse(data, strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse decodes data in the given format ("yaml", "yml" or "toml") and validates it.
func Parse(data []byte, format string) (*Problem, error) {
	p := &Problem{}
	switch strings.ToLower(format) {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, p); err != nil {
			return nil, fmt.Errorf("problem: decode yaml: %w", err)
		}
	case "toml":
		if err := toml.Unmarshal(data, p); err != nil {
			return nil, fmt.Errorf("problem: decode toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrInvalidProblem, format)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the description without building any operator.
func (p *Problem) Validate() error {
	if p.N <= 0 {
		return fmt.Errorf("%w: n must be positive, got %d", ErrInvalidProblem, p.N)
	}
	seen := make(map[[2]int]bool, len(p.Blocks))
	for k, b := range p.Blocks {
		if b.Row < 0 || b.Row >= p.N || b.Col < 0 || b.Col >= p.N {
			return fmt.Errorf("%w: block %d at (%d,%d) outside %dx%d grid",
				ErrInvalidProblem, k, b.Row, b.Col, p.N, p.N)
		}
		key := [2]int{b.Row, b.Col}
		if seen[key] {
			return fmt.Errorf("%w: block (%d,%d) given twice", ErrInvalidProblem, b.Row, b.Col)
		}
		seen[key] = true
		if b.Rows <= 0 || b.Cols <= 0 {
			return fmt.Errorf("%w: block (%d,%d) has shape %dx%d",
				ErrInvalidProblem, b.Row, b.Col, b.Rows, b.Cols)
		}
		switch b.format() {
		case "dense":
			if len(b.Values) != b.Rows*b.Cols {
				return fmt.Errorf("%w: dense block (%d,%d) has %d values, want %d",
					ErrInvalidProblem, b.Row, b.Col, len(b.Values), b.Rows*b.Cols)
			}
		case "csr":
			if len(b.Values) != 0 {
				return fmt.Errorf("%w: csr block (%d,%d) takes entries, not values",
					ErrInvalidProblem, b.Row, b.Col)
			}
		default:
			return fmt.Errorf("%w: block (%d,%d) has unknown format %q",
				ErrInvalidProblem, b.Row, b.Col, b.Format)
		}
	}
	for _, s := range p.Sizes {
		if s.Kind != "row" && s.Kind != "column" {
			return fmt.Errorf("%w: size kind %q, want row or column", ErrInvalidProblem, s.Kind)
		}
	}
	return nil
}

func (b BlockDef) format() string {
	if b.Format == "" {
		return "dense"
	}
	return strings.ToLower(b.Format)
}

// Operators builds the row-major operator list, nil for absent blocks.
func (p *Problem) Operators() ([]block.Operator, error) {
	ops := make([]block.Operator, p.N*p.N)
	for _, b := range p.Blocks {
		var op block.Operator
		switch b.format() {
		case "csr":
			is := make([]int, len(b.Entries))
			js := make([]int, len(b.Entries))
			vs := make([]float64, len(b.Entries))
			for k, e := range b.Entries {
				is[k], js[k], vs[k] = e.I, e.J, e.V
			}
			csr, err := block.CSRFromTriplets(b.Rows, b.Cols, is, js, vs)
			if err != nil {
				return nil, fmt.Errorf("%w: block (%d,%d): %v", ErrInvalidProblem, b.Row, b.Col, err)
			}
			op = csr
		default:
			op = block.NewDenseFromRows(b.Rows, b.Cols, b.Values)
		}
		ops[b.Row*p.N+b.Col] = op
	}
	return ops, nil
}

// Options returns the explicit size options of the description.
func (p *Problem) Options() []nest.Option {
	opts := make([]nest.Option, 0, len(p.Sizes))
	for _, s := range p.Sizes {
		if s.Kind == "row" {
			opts = append(opts, nest.WithRowSize(s.Index, s.Size))
		} else {
			opts = append(opts, nest.WithColSize(s.Index, s.Size))
		}
	}
	return opts
}

// Build constructs the nested matrix. opts are applied after the explicit
// sizes of the description.
func (p *Problem) Build(opts ...nest.Option) (*nest.NestedMatrix, error) {
	ops, err := p.Operators()
	if err != nil {
		return nil, err
	}
	return nest.NewNestedMatrix(ops, append(p.Options(), opts...)...)
}

// Input splits X along the block columns of nm.
func (p *Problem) Input(nm *nest.NestedMatrix) (*nest.BlockVector, error) {
	if len(p.X) == 0 {
		return nil, fmt.Errorf("%w: no input vector x", ErrInvalidProblem)
	}
	sp, err := nest.NewDomainSplitter(nm)
	if err != nil {
		return nil, err
	}
	return sp.Split(p.X)
}
