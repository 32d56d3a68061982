package nest

// GetBlockDofs returns the global indices owned by block row idx: the
// contiguous range [offset, offset+RowSize(idx)), where offset is the sum
// of the sizes of the preceding block rows. This is the ordering used by
// Splitter when moving between flat and block vectors.
func (nm *NestedMatrix) GetBlockDofs(idx int) ([]int, error) {
	return dofRange(nm.layout.RowSizes, idx, "row")
}

// GetColumnBlockDofs returns the global column indices owned by block column idx.
func (nm *NestedMatrix) GetColumnBlockDofs(idx int) ([]int, error) {
	return dofRange(nm.layout.ColSizes, idx, "column")
}

func dofRange(sizes []int, idx int, kind string) ([]int, error) {
	offset, length, err := blockRange(sizes, idx, kind)
	if err != nil {
		return nil, err
	}
	dofs := make([]int, length)
	for k := range dofs {
		dofs[k] = offset + k
	}
	return dofs, nil
}
