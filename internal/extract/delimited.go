package extract

import "strings"

// ParseDelimited parses RFC4180-style delimited text into a raw grid.
// Quoted fields may contain the delimiter, embedded newlines, and
// doubled-quote escapes. Rows with no non-empty cell are dropped.
func ParseDelimited(text string, delim byte) [][]string {
	var (
		rows    [][]string
		row     []string
		cell    strings.Builder
		quoted  bool
		hasText bool
	)

	endCell := func() {
		row = append(row, strings.TrimSpace(cell.String()))
		cell.Reset()
	}
	endRow := func() {
		endCell()
		for _, c := range row {
			if c != "" {
				hasText = true
				break
			}
		}
		if hasText {
			rows = append(rows, row)
		}
		row = nil
		hasText = false
	}

	for i := 0; i < len(text); i++ {
		ch := text[i]
		switch {
		case ch == '"' && quoted && i+1 < len(text) && text[i+1] == '"':
			cell.WriteByte('"')
			i++
		case ch == '"':
			quoted = !quoted
		case ch == delim && !quoted:
			endCell()
		case (ch == '\n' || ch == '\r') && !quoted:
			if ch == '\r' && i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			endRow()
		default:
			cell.WriteByte(ch)
		}
	}
	endRow()

	return rows
}
