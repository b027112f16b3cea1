package extract

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// gridFromWorkbook reads the first sheet of a binary workbook.
func gridFromWorkbook(content []byte) ([][]string, error) {
	wb, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

// looksLikeSpreadsheetXML sniffs for SpreadsheetML saved under an .xls
// extension, which excelize cannot open.
func looksLikeSpreadsheetXML(content []byte) bool {
	head := string(content[:min(len(content), 512)])
	return strings.Contains(head, "<?xml") || strings.Contains(head, "<Workbook") || strings.Contains(head, "<worksheet")
}

type xmlRow struct {
	Cells []xmlCell `xml:"Cell"`
}

type xmlCell struct {
	Data string `xml:"Data"`
}

// gridFromSpreadsheetXML walks Row/Cell/Data elements of a
// SpreadsheetML document. Rows with no non-empty cell are dropped.
func gridFromSpreadsheetXML(content []byte) [][]string {
	dec := xml.NewDecoder(bytes.NewReader(content))
	var grid [][]string
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		start, ok := tok.(xml.StartElement)
		if !ok || !strings.EqualFold(start.Name.Local, "Row") {
			continue
		}
		var row xmlRow
		if err := dec.DecodeElement(&row, &start); err != nil {
			continue
		}
		cells := make([]string, len(row.Cells))
		empty := true
		for i, c := range row.Cells {
			cells[i] = strings.TrimSpace(c.Data)
			if cells[i] != "" {
				empty = false
			}
		}
		if !empty {
			grid = append(grid, cells)
		}
	}
	return grid
}
