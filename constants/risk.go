package constants

// RiskLevel is the trust classification derived from a candidate's confidence.
type RiskLevel string

// Stable values (store these exact strings in the state document).
const (
	RiskTrusted     RiskLevel = "Trusted"
	RiskNeedsReview RiskLevel = "Needs Review"
	RiskRisky       RiskLevel = "Risky"
)

// Fixed confidence cut points. These are a compatibility contract with
// stored records, not tunable defaults.
const (
	TrustedThreshold = 0.85
	ReviewThreshold  = 0.60
)

// RiskForConfidence maps a [0,1] confidence onto a RiskLevel.
func RiskForConfidence(confidence float64) RiskLevel {
	if confidence >= TrustedThreshold {
		return RiskTrusted
	}
	if confidence >= ReviewThreshold {
		return RiskNeedsReview
	}
	return RiskRisky
}
