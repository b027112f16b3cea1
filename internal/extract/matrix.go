// Package extract turns raw uploaded bytes into a header+rows matrix.
// Structured formats (delimited text, JSON exports, workbooks) parse
// deterministically; PDFs and images go through tiered text extraction
// and OCR, with a loose-matrix fallback for low-structure text.
package extract

import "strings"

// Matrix is an extracted table: one header row plus data rows. Rows
// are padded/truncated to the header width, so cell lookup by column
// index is always safe.
type Matrix struct {
	Headers []string
	Rows    [][]string
}

// Empty reports whether the matrix has no data rows.
func (m Matrix) Empty() bool {
	return len(m.Rows) == 0
}

// Cell returns the trimmed cell at (row, col), or "" out of range.
func (m Matrix) Cell(row, col int) string {
	if row < 0 || row >= len(m.Rows) || col < 0 || col >= len(m.Rows[row]) {
		return ""
	}
	return strings.TrimSpace(m.Rows[row][col])
}

// RowText concatenates every non-empty cell of a row, the raw text the
// keyword lexicons run against.
func (m Matrix) RowText(row int) string {
	if row < 0 || row >= len(m.Rows) {
		return ""
	}
	parts := make([]string, 0, len(m.Rows[row]))
	for _, cell := range m.Rows[row] {
		if c := strings.TrimSpace(cell); c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, " ")
}

// fromGrid builds a Matrix from a raw grid, using the first row as the
// header and squaring every data row against the header width. Rows
// that are entirely empty are dropped.
func fromGrid(grid [][]string) Matrix {
	if len(grid) == 0 {
		return Matrix{}
	}
	headers := make([]string, len(grid[0]))
	for i, h := range grid[0] {
		headers[i] = strings.TrimSpace(h)
	}

	rows := make([][]string, 0, len(grid)-1)
	for _, raw := range grid[1:] {
		row := make([]string, len(headers))
		empty := true
		for i := range headers {
			if i < len(raw) {
				row[i] = strings.TrimSpace(raw[i])
				if row[i] != "" {
					empty = false
				}
			}
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return Matrix{Headers: headers, Rows: rows}
}

// lowStructure reports whether a grid is too loose to trust as a real
// table: under two rows, a one-column header, or fewer than ~30% of
// sampled rows carrying at least three cells.
func lowStructure(grid [][]string) bool {
	if len(grid) < 2 {
		return true
	}
	if len(grid[0]) <= 1 {
		return true
	}
	sample := grid[1:]
	if len(sample) > 11 {
		sample = sample[:11]
	}
	wide := 0
	for _, row := range sample {
		if len(row) >= 3 {
			wide++
		}
	}
	return wide <= len(sample)*3/10
}
