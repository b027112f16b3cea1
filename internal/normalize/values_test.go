package normalize

import "testing"

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"5000", 5000},
		{"KES 2,300", 2300},
		{"  1,234.56 ", 1234.56},
		{"-450", -450},
		{"", 0},
		{"n/a", 0},
		{"free", 0},
	}
	for _, tt := range tests {
		if got := ParseAmount(tt.input); got != tt.want {
			t.Errorf("ParseAmount(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestToISODate(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		parsed bool
	}{
		{"2026-02-20", "2026-02-20", true},
		{"20/2/2026", "2026-02-20", true},
		{"31/2/2026", "", false},
		{"2026/02/20", "2026-02-20", true},
		{"20 Feb 2026", "2026-02-20", true},
		{"Feb 20, 2026", "2026-02-20", true},
		{"not a date", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, parsed := ToISODate(tt.input)
		if parsed != tt.parsed || got != tt.want {
			t.Errorf("ToISODate(%q) = (%q, %v), want (%q, %v)", tt.input, got, parsed, tt.want, tt.parsed)
		}
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"+254712345678", "+254712345678"},
		{"0712 345 678", "0712345678"},
		{"12345", ""},
		{"call me", ""},
	}
	for _, tt := range tests {
		if got := NormalizePhone(tt.input); got != tt.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
