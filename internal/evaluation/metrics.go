package evaluation

// Classify compares the resolved record name with the labeled one.
// An empty string stands for no match on either side.
func Classify(expected, got string) Outcome {
	switch {
	case expected == got:
		return OutcomeCorrect
	case expected == "":
		return OutcomeSpurious
	case got == "":
		return OutcomeMissed
	default:
		return OutcomeWrong
	}
}

// Precision computes the fraction of returned matches that were the expected record.
// Returns 0.0 if nothing was matched.
func Precision(truePositives, predicted int) float64 {
	return ratio(truePositives, predicted)
}

// Recall computes the fraction of labeled names that resolved to their record.
// Returns 0.0 if no name expects a record.
func Recall(truePositives, expected int) float64 {
	return ratio(truePositives, expected)
}

func ratio(n, d int) float64 {
	if d <= 0 {
		return 0.0
	}
	return float64(n) / float64(d)
}
