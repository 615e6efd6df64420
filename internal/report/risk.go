package report

// Risk is the band a similarity percentage falls into.
type Risk string

const (
	RiskHigh   Risk = "High Risk"
	RiskMedium Risk = "Medium Risk"
	RiskLow    Risk = "Low Risk"
)

// Fixed band thresholds, in percent.
const (
	highThreshold   = 75.0
	mediumThreshold = 50.0
)

// Classify maps a similarity percentage to its risk band.
func Classify(score float64) Risk {
	switch {
	case score >= highThreshold:
		return RiskHigh
	case score >= mediumThreshold:
		return RiskMedium
	default:
		return RiskLow
	}
}
