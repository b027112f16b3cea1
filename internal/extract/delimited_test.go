package extract

import (
	"reflect"
	"testing"
)

func TestParseDelimited(t *testing.T) {
	tests := []struct {
		name  string
		input string
		delim byte
		want  [][]string
	}{
		{
			name:  "plain rows",
			input: "date,cash_in,cash_out\n2026-02-20,5000,0\n",
			delim: ',',
			want: [][]string{
				{"date", "cash_in", "cash_out"},
				{"2026-02-20", "5000", "0"},
			},
		},
		{
			name:  "quoted field containing the delimiter",
			input: "date,description\n2026-02-20,\"sale, wholesale\"\n",
			delim: ',',
			want: [][]string{
				{"date", "description"},
				{"2026-02-20", "sale, wholesale"},
			},
		},
		{
			name:  "quoted field with embedded newline",
			input: "date,notes\n2026-02-21,\"line one\nline two\"\n",
			delim: ',',
			want: [][]string{
				{"date", "notes"},
				{"2026-02-21", "line one\nline two"},
			},
		},
		{
			name:  "doubled quote escape",
			input: "name\n\"Jane \"\"JJ\"\" Doe\"\n",
			delim: ',',
			want: [][]string{
				{"name"},
				{`Jane "JJ" Doe`},
			},
		},
		{
			name:  "crlf line endings and blank rows dropped",
			input: "a,b\r\n1,2\r\n,\r\n3,4\r\n",
			delim: ',',
			want: [][]string{
				{"a", "b"},
				{"1", "2"},
				{"3", "4"},
			},
		},
		{
			name:  "tab delimited",
			input: "a\tb\n1\t2\n",
			delim: '\t',
			want: [][]string{
				{"a", "b"},
				{"1", "2"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDelimited(tt.input, tt.delim)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseDelimited() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestFromGridSquaresRows(t *testing.T) {
	m := fromGrid([][]string{
		{"a", "b", "c"},
		{"1", "2"},
		{"1", "2", "3", "4"},
		{"", "", ""},
	})
	if len(m.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(m.Rows))
	}
	if got := m.Cell(0, 2); got != "" {
		t.Errorf("short row should pad, got %q", got)
	}
	if got := m.Cell(1, 2); got != "3" {
		t.Errorf("long row should truncate to header width, got %q", got)
	}
}

func TestLowStructure(t *testing.T) {
	if !lowStructure([][]string{{"only header"}}) {
		t.Error("single-row grid should be low structure")
	}
	if !lowStructure([][]string{{"h"}, {"v"}}) {
		t.Error("one-column grid should be low structure")
	}
	wide := [][]string{
		{"a", "b", "c"},
		{"1", "2", "3"},
		{"4", "5", "6"},
	}
	if lowStructure(wide) {
		t.Error("three-column grid with wide rows should not be low structure")
	}
}
