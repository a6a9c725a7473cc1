package metrics

// Tier buckets a hit rate for presentation. The thresholds are a contract the
// UI depends on and apply independently to over and under rates.
type Tier string

const (
	TierHigh     Tier = "high-confidence"
	TierModerate Tier = "moderate"
	TierLow      Tier = "low"
)

func TierForRate(rate float64) Tier {
	switch {
	case rate >= 70:
		return TierHigh
	case rate >= 50:
		return TierModerate
	default:
		return TierLow
	}
}
