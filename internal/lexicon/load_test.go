package lexicon

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestLoadWithoutPathReturnsDefaults(t *testing.T) {
	lex, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(lex.Aliases[FieldDate]) == 0 {
		t.Error("defaults missing date aliases")
	}
}

func TestLoadMergesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	overrides := `
aliases:
  date:
    - fecha
inboundKeywords:
  - pato
abbreviations:
  amt: amount total
`
	if err := os.WriteFile(path, []byte(overrides), 0o600); err != nil {
		t.Fatal(err)
	}

	lex, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !slices.Contains(lex.Aliases[FieldDate], "fecha") {
		t.Error("date alias override not appended")
	}
	if !slices.Contains(lex.InboundKeywords, "pato") {
		t.Error("inbound keyword override not appended")
	}
	if lex.Abbreviations["amt"] != "amount total" {
		t.Errorf("abbreviation override not applied: %q", lex.Abbreviations["amt"])
	}
	// Defaults survive the merge.
	if !slices.Contains(lex.Aliases[FieldDate], "date") {
		t.Error("default alias lost")
	}
}

func TestLoadRejectsUnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	if err := os.WriteFile(path, []byte("aliases:\n  nonsense:\n    - x\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for an unknown field name")
	}
}

func TestDirectionInference(t *testing.T) {
	lex := Default()

	if dir := lex.LooseDirection("paid to Acme for stock"); dir != "OUT" {
		t.Errorf("LooseDirection = %v, want OUT", dir)
	}
	if dir := lex.LooseDirection("sale to customer"); dir != "IN" {
		t.Errorf("LooseDirection = %v, want IN", dir)
	}
	// Outbound wins when both sides appear.
	if dir := lex.LooseDirection("received then paid out"); dir != "OUT" {
		t.Errorf("LooseDirection = %v, want OUT on conflict", dir)
	}

	if _, ok := lex.HintDirection("just a note"); ok {
		t.Error("plain text must not produce a hint")
	}
	if dir, ok := lex.HintDirection("paid to supplier for stock"); !ok || dir != "OUT" {
		t.Errorf("HintDirection = %v/%v, want OUT", dir, ok)
	}
}

func TestChannelResolution(t *testing.T) {
	lex := Default()

	if ch := lex.ResolveChannel("", "", "sent via mpesa till"); ch != "Mobile Transfer" {
		t.Errorf("ResolveChannel = %v, want Mobile Transfer", ch)
	}
	if ch := lex.ResolveChannel("Bank", "", ""); ch != "Bank" {
		t.Errorf("ResolveChannel = %v, want Bank", ch)
	}
	if ch := lex.ResolveChannel("", "", "no hints at all"); ch != "Unknown" {
		t.Errorf("ResolveChannel = %v, want Unknown", ch)
	}
	// "mobile money" carries no channel token, so only the resolved
	// mode fallback can recover it.
	if ch := lex.ResolveChannel(string(lex.ModeFromText("mobile money")), "", "mobile money"); ch != "Mobile Transfer" {
		t.Errorf("ResolveChannel = %v, want Mobile Transfer via mode fallback", ch)
	}
	if ch := lex.ResolveChannel("not a channel", "", ""); ch != "Unknown" {
		t.Errorf("ResolveChannel = %v, want Unknown for unrecognized mode", ch)
	}
}

func TestMatchReference(t *testing.T) {
	if ref := MatchReference("Paid KES 2,300 ref TXN1234567A done"); ref != "TXN1234567A" {
		t.Errorf("MatchReference = %q", ref)
	}
	if ref := MatchReference("no code here"); ref != "" {
		t.Errorf("MatchReference = %q, want empty", ref)
	}
}
