package metrics

// Risk tiers, ordered from safest to most exposed.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// Classify buckets a percentage into a risk tier using half-open intervals:
// [90, inf) is low, [75, 90) is medium, anything below 75 is high. Boundary
// values belong to the safer tier.
func Classify(percentage float64) string {
	switch {
	case percentage >= 90:
		return RiskLow
	case percentage >= 75:
		return RiskMedium
	default:
		return RiskHigh
	}
}
