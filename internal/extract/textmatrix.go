package extract

import (
	"regexp"
	"strings"
)

var reWideGap = regexp.MustCompile(`\s{2,}`)

// gridFromText re-derives a grid from already-extracted free text
// (PDF text layers, OCR output). Comma-bearing text goes through the
// delimited parser; otherwise lines split on tabs, pipes, or runs of
// two or more spaces.
func gridFromText(text string) [][]string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	if strings.Contains(trimmed, ",") {
		return ParseDelimited(trimmed, ',')
	}

	var grid [][]string
	for _, line := range strings.Split(trimmed, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var cells []string
		switch {
		case strings.Contains(line, "\t"):
			cells = strings.Split(line, "\t")
		case strings.Contains(line, "|"):
			cells = strings.Split(line, "|")
		default:
			cells = reWideGap.Split(line, -1)
		}
		row := cells[:0]
		for _, cell := range cells {
			if c := strings.TrimSpace(cell); c != "" {
				row = append(row, c)
			}
		}
		if len(row) > 0 {
			grid = append(grid, row)
		}
	}
	if len(grid) < 2 {
		return nil
	}
	return grid
}

// readableASCIIRatio is the share of printable ASCII in a line; used
// to discard binary junk that leaks through PDF extraction.
func readableASCIIRatio(line string) float64 {
	if line == "" {
		return 0
	}
	readable := 0
	for _, r := range line {
		if (r >= 32 && r <= 126) || r == '\t' || r == '\n' || r == '\r' {
			readable++
		}
	}
	return float64(readable) / float64(len([]rune(line)))
}

var reBinaryRun = regexp.MustCompile(`(?i)\b\d{7,}\s+\d{4,}\s+n\b`)

func mostlyReadable(line string) bool {
	if line == "" {
		return false
	}
	if readableASCIIRatio(line) < 0.8 {
		return false
	}
	return !reBinaryRun.MatchString(line)
}
