package extract

import (
	"reflect"
	"testing"
)

func TestGridFromJSONBareArray(t *testing.T) {
	grid := gridFromJSON(`[
		{"Date": "2026-02-20", "Sales": 5000, "Narration": "Lunch rush"},
		{"Date": "2026-02-21", "Sales": 1200, "Mpesa Code": "QAB12CD34E"}
	]`)

	want := [][]string{
		{"Date", "Sales", "Narration", "Mpesa Code"},
		{"2026-02-20", "5000", "Lunch rush", ""},
		{"2026-02-21", "1200", "", "QAB12CD34E"},
	}
	if !reflect.DeepEqual(grid, want) {
		t.Errorf("grid = %v, want %v", grid, want)
	}
}

func TestGridFromJSONEnvelopes(t *testing.T) {
	for _, key := range []string{"rows", "transactions"} {
		grid := gridFromJSON(`{"` + key + `": [{"date": "2026-01-05", "amount": 250.5}]}`)
		if len(grid) != 2 {
			t.Fatalf("%s envelope: got %d rows, want 2", key, len(grid))
		}
		if grid[1][1] != "250.5" {
			t.Errorf("%s envelope: amount cell = %q, want 250.5", key, grid[1][1])
		}
	}
}

func TestGridFromJSONRejectsOtherShapes(t *testing.T) {
	cases := []string{
		`"just a string"`,
		`[1, 2, 3]`,
		`{"data": [{"date": "2026-01-05"}]}`,
		`not json at all`,
	}
	for _, text := range cases {
		if grid := gridFromJSON(text); grid != nil {
			t.Errorf("gridFromJSON(%q) = %v, want nil", text, grid)
		}
	}
}

func TestGridFromJSONStringifiesValues(t *testing.T) {
	grid := gridFromJSON(`[{"paid": true, "note": null, "tags": ["a", "b"], "amount": 10.00}]`)
	if len(grid) != 2 {
		t.Fatalf("got %d rows, want 2", len(grid))
	}
	want := []string{"true", "", `["a","b"]`, "10.00"}
	if !reflect.DeepEqual(grid[1], want) {
		t.Errorf("row = %v, want %v", grid[1], want)
	}
}
