package ocr

import (
	"regexp"
	"sort"
	"strings"
)

var reLineSpace = regexp.MustCompile(`\s+`)

// MergeLines folds the text from several recognition passes into one
// block. Lines are counted by exact (whitespace-collapsed) content and
// emitted ranked by frequency then length, so lines that recur across
// passes rank ahead of one-off misreads.
func MergeLines(blocks []string) string {
	if len(blocks) == 0 {
		return ""
	}

	counts := make(map[string]int)
	order := make([]string, 0, 64)
	for _, block := range blocks {
		for _, line := range strings.Split(block, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			line = reLineSpace.ReplaceAllString(line, " ")
			if _, seen := counts[line]; !seen {
				order = append(order, line)
			}
			counts[line]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		if counts[order[i]] != counts[order[j]] {
			return counts[order[i]] > counts[order[j]]
		}
		return len(order[i]) > len(order[j])
	})
	return strings.Join(order, "\n")
}
