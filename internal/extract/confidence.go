package extract

// Score derives a single scalar confidence from how many expected fields
// were recognized: recognized/expected, clamped to [0,1]. A record with zero
// recognized fields scores 0 and must never be presented as trustworthy,
// even if downstream substitutes defaults.
func Score(recognized, expected int) float64 {
	if expected <= 0 || recognized <= 0 {
		return 0
	}
	score := float64(recognized) / float64(expected)
	if score > 1 {
		return 1
	}
	return score
}
