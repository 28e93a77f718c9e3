package parser

import (
	"fmt"
	"strconv"
)

// ColumnFloats coerces one column of a table to float64. Coercion is
// opt-in: the core parse contract keeps every cell as an opaque
// string, and callers only pay for conversion where they need it.
func ColumnFloats(t *Table, col int) ([]float64, error) {
	if col < 0 || col >= t.Columns() {
		return nil, fmt.Errorf("column %d out of range (width %d)", col, t.Columns())
	}

	out := make([]float64, len(t.Data))
	for i, row := range t.Data {
		v, err := strconv.ParseFloat(row[col], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d column %d: %w", i, col, err)
		}
		out[i] = v
	}
	return out, nil
}

// Floats coerces a string vector (typically a Table target) to
// float64 values.
func Floats(cells []string) ([]float64, error) {
	out := make([]float64, len(cells))
	for i, c := range cells {
		v, err := strconv.ParseFloat(c, 64)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}
