package dedupe

import "testing"

func TestRowKeyIsStable(t *testing.T) {
	a := RowKey("2026-02-20", 5000, 0, 3, "jan.csv", 2)
	b := RowKey("2026-02-20", 5000.00, 0, 3, "jan.csv", 2)
	if a != b {
		t.Errorf("equal rows must produce equal keys: %q vs %q", a, b)
	}
	want := "2026-02-20|5000.00|0.00|3|jan.csv|2"
	if a != want {
		t.Errorf("RowKey = %q, want %q", a, want)
	}
}

func TestPOSKeyNamespacesSource(t *testing.T) {
	key := POSKey("biz-1", "POS-REF-9", "2026-02-20")
	if key != "biz-1|pos|POS-REF-9|2026-02-20" {
		t.Errorf("POSKey = %q", key)
	}
}

func TestRootKeyStripsKindSuffix(t *testing.T) {
	row := RowKey("2026-02-20", 100, 0, 0, "a.csv", 2)
	for _, suffix := range []string{SuffixIn, SuffixOut, SuffixProduct, SuffixClient, SuffixSupplier} {
		if got := RootKey(row + suffix); got != row {
			t.Errorf("RootKey(%q) = %q, want %q", row+suffix, got, row)
		}
	}
	if got := RootKey(row); got != row {
		t.Errorf("RootKey without suffix changed the key: %q", got)
	}
}

func TestDeduperAdmitsOnce(t *testing.T) {
	d := NewDeduper([]string{"seeded"})
	if d.Admit("seeded") {
		t.Error("seeded key must be rejected")
	}
	if !d.Admit("fresh") {
		t.Error("fresh key must be admitted")
	}
	if d.Admit("fresh") {
		t.Error("second admit of the same key must be rejected")
	}
}
