package player

import "strings"

const (
	TierSerieA = "Série A"
	TierSerieB = "Série B"
	TierSerieC = "Série C"
	TierSerieD = "Série D"

	// Label used while capping when a player carries no tier.
	TierUngrouped = "Outros"
	// Label used on the rendered page when a player carries no tier.
	TierOther = "Outras Séries"
)

// CanonicalTiers lists the four national divisions in display order.
var CanonicalTiers = []string{TierSerieA, TierSerieB, TierSerieC, TierSerieD}

func IsCanonicalTier(label string) bool {
	for _, tier := range CanonicalTiers {
		if tier == label {
			return true
		}
	}
	return false
}

// NormalizeTier folds variants such as "a", "SÉRIE A" or "Campeonato Série A"
// onto the canonical label. Unknown labels are returned unchanged.
func NormalizeTier(label string) string {
	lower := strings.ToLower(label)
	switch {
	case strings.Contains(lower, "série a") || lower == "a":
		return TierSerieA
	case strings.Contains(lower, "série b") || lower == "b":
		return TierSerieB
	case strings.Contains(lower, "série c") || lower == "c":
		return TierSerieC
	case strings.Contains(lower, "série d") || lower == "d":
		return TierSerieD
	default:
		return label
	}
}
