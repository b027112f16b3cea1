package lexicon

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Overrides is the yaml-file shape for extending the default lexicon.
// Lists are appended to the defaults; abbreviation entries replace on
// key collision.
type Overrides struct {
	Aliases          map[string][]string `yaml:"aliases"`
	InboundKeywords  []string            `yaml:"inboundKeywords"`
	OutboundKeywords []string            `yaml:"outboundKeywords"`
	InboundHints     []string            `yaml:"inboundHints"`
	OutboundHints    []string            `yaml:"outboundHints"`
	MoneyKeywords    []string            `yaml:"moneyKeywords"`
	PDFNoiseTokens   []string            `yaml:"pdfNoiseTokens"`
	Abbreviations    map[string]string   `yaml:"abbreviations"`
}

// Load returns the default lexicon, extended with overrides from path.
// An empty path returns the defaults unchanged.
func Load(path string) (*Lexicon, error) {
	lex := Default()
	if path == "" {
		return lex, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon overrides: %w", err)
	}
	var ov Overrides
	if err := yaml.Unmarshal(raw, &ov); err != nil {
		return nil, fmt.Errorf("parse lexicon overrides %q: %w", path, err)
	}

	for name, aliases := range ov.Aliases {
		f := Field(name)
		if _, ok := lex.Aliases[f]; !ok {
			return nil, fmt.Errorf("lexicon overrides: unknown field %q", name)
		}
		lex.Aliases[f] = append(lex.Aliases[f], aliases...)
	}
	lex.InboundKeywords = append(lex.InboundKeywords, ov.InboundKeywords...)
	lex.OutboundKeywords = append(lex.OutboundKeywords, ov.OutboundKeywords...)
	lex.InboundHints = append(lex.InboundHints, ov.InboundHints...)
	lex.OutboundHints = append(lex.OutboundHints, ov.OutboundHints...)
	lex.MoneyKeywords = append(lex.MoneyKeywords, ov.MoneyKeywords...)
	lex.PDFNoiseTokens = append(lex.PDFNoiseTokens, ov.PDFNoiseTokens...)
	for abbr, full := range ov.Abbreviations {
		lex.Abbreviations[abbr] = full
	}
	return lex, nil
}
