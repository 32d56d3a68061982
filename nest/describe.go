package nest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/notargets/DGNest/block"
)

// Describe returns a structural summary: grid shape, global size, which
// cells are populated ("X") or null ("."), and the block sizes. Unresolved
// sizes print as "?". Verbose output adds the matrix id and a line per cell
// with its storage format and extents.
func (nm *NestedMatrix) Describe(verbose bool) string {
	var (
		l  = nm.layout
		sb strings.Builder
	)

	fmt.Fprintf(&sb, "NestedMatrix %dx%d blocks, global size %s x %s\n",
		l.N, l.N, totalString(l.RowSizes), totalString(l.ColSizes))
	if verbose {
		fmt.Fprintf(&sb, "id: %s\n", nm.ID)
	}

	for i := 0; i < l.N; i++ {
		sb.WriteString("  [")
		for j := 0; j < l.N; j++ {
			if j > 0 {
				sb.WriteString(" ")
			}
			if l.Grid[i*l.N+j].IsNull() {
				sb.WriteString(".")
			} else {
				sb.WriteString("X")
			}
		}
		sb.WriteString("]\n")
	}
	fmt.Fprintf(&sb, "row sizes: %s\n", sizesString(l.RowSizes))
	fmt.Fprintf(&sb, "col sizes: %s\n", sizesString(l.ColSizes))

	if verbose {
		for _, d := range l.Grid {
			fmt.Fprintf(&sb, "  (%d,%d) %-6s %s x %s\n", d.Row, d.Col,
				block.Format(d.Op), sizeString(d.RowSize), sizeString(d.ColSize))
		}
	}
	return sb.String()
}

func sizeString(s int) string {
	if s == Unresolved {
		return "?"
	}
	return strconv.Itoa(s)
}

func sizesString(sizes []int) string {
	parts := make([]string, len(sizes))
	for i, s := range sizes {
		parts[i] = sizeString(s)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func totalString(sizes []int) string {
	total := 0
	for _, s := range sizes {
		if s == Unresolved {
			return "?"
		}
		total += s
	}
	return strconv.Itoa(total)
}
