package identify

// Confidence converts the candidate count into a 0-100 score. One
// candidate is certain; each additional candidate divides the base
// score, and a model-confirmed pick earns a 25 point bonus. The score
// never increases with more candidates, so two candidates with model
// confirmation (75) clears the threshold while three (58) does not.
func Confidence(numCandidates int, modelIdentified bool) float64 {
	if numCandidates <= 0 {
		return 0
	}
	if numCandidates == 1 {
		return 100
	}

	score := 100.0 / float64(numCandidates)
	if modelIdentified {
		score += 25
	}
	if score > 100 {
		score = 100
	}
	return score
}
