package constants

import "testing"

func TestRiskForConfidenceBoundaries(t *testing.T) {
	tests := []struct {
		confidence float64
		want       RiskLevel
	}{
		{1.0, RiskTrusted},
		{0.85, RiskTrusted},
		{0.849999, RiskNeedsReview},
		{0.60, RiskNeedsReview},
		{0.599999, RiskRisky},
		{0.0, RiskRisky},
	}
	for _, tt := range tests {
		if got := RiskForConfidence(tt.confidence); got != tt.want {
			t.Errorf("RiskForConfidence(%v) = %v, want %v", tt.confidence, got, tt.want)
		}
	}
}
