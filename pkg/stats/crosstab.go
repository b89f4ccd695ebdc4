package stats

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// CrossTab is a count matrix over two categorical dimensions.
// Combinations that never occur hold zero.
type CrossTab struct {
	RowLabels []string
	ColLabels []string

	counts *mat.Dense
	rowIdx map[string]int
	colIdx map[string]int
}

// NewCrossTab counts (rows[i], cols[i]) pairs. Row labels are the row values
// present, ordered by rowOrder; column labels are all of colOrder plus any
// other column value present.
func NewCrossTab(rows, cols []string, rowOrder, colOrder []string) (*CrossTab, error) {
	if len(rows) != len(cols) {
		return nil, fmt.Errorf("%w: %d rows, %d cols", ErrLengthMismatch, len(rows), len(cols))
	}
	ct := &CrossTab{
		RowLabels: orderedKeys(rows, rowOrder, false),
		ColLabels: orderedKeys(cols, colOrder, true),
		rowIdx:    map[string]int{},
		colIdx:    map[string]int{},
	}
	for i, l := range ct.RowLabels {
		ct.rowIdx[l] = i
	}
	for j, l := range ct.ColLabels {
		ct.colIdx[l] = j
	}
	if len(ct.RowLabels) == 0 || len(ct.ColLabels) == 0 {
		return ct, nil
	}

	ct.counts = mat.NewDense(len(ct.RowLabels), len(ct.ColLabels), nil)
	for k := range rows {
		i, j := ct.rowIdx[rows[k]], ct.colIdx[cols[k]]
		ct.counts.Set(i, j, ct.counts.At(i, j)+1)
	}
	return ct, nil
}

// At returns the count for a (row, col) label pair; unknown labels count zero.
func (c *CrossTab) At(row, col string) int {
	i, ok := c.rowIdx[row]
	if !ok || c.counts == nil {
		return 0
	}
	j, ok := c.colIdx[col]
	if !ok {
		return 0
	}
	return int(c.counts.At(i, j))
}

// Column returns the counts of one column label for every row label.
func (c *CrossTab) Column(col string) []float64 {
	out := make([]float64, len(c.RowLabels))
	j, ok := c.colIdx[col]
	if !ok || c.counts == nil {
		return out
	}
	mat.Col(out, j, c.counts)
	return out
}

// Total returns the sum of all cells.
func (c *CrossTab) Total() int {
	if c.counts == nil {
		return 0
	}
	return int(mat.Sum(c.counts))
}
