package evaluation

// Difficulty labels how far a directory spelling strays from the curated one
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"   // case or accents only
	DifficultyMedium Difficulty = "medium" // punctuation, prefixes, extra words
	DifficultyHard   Difficulty = "hard"   // several candidates qualify
)

// IsValid checks if the difficulty value is one of the defined constants.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// GoldenMatch is a labeled directory name with the curated record it should resolve to.
// An empty Expected means the name must not match anything.
type GoldenMatch struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Expected   string     `json:"expected"`
	Difficulty Difficulty `json:"difficulty"`
}

// Outcome classifies a single resolution against its label
type Outcome string

const (
	OutcomeCorrect  Outcome = "correct"  // expected record, or no match when none was expected
	OutcomeWrong    Outcome = "wrong"    // a different record than expected
	OutcomeMissed   Outcome = "missed"   // no match although one was expected
	OutcomeSpurious Outcome = "spurious" // a match although none was expected
	OutcomeError    Outcome = "error"    // the resolver failed
)

// EvalResult holds the evaluation outcome for a single golden match.
type EvalResult struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Expected   string     `json:"expected"`
	Got        string     `json:"got"`
	Difficulty Difficulty `json:"difficulty"`
	Outcome    Outcome    `json:"outcome"`
}

// EvalSummary holds aggregate metrics across all golden matches.
type EvalSummary struct {
	Strategy     string                            `json:"strategy"`
	Total        int                               `json:"total"`
	Counts       map[Outcome]int                   `json:"counts"`
	Accuracy     float64                           `json:"accuracy"`
	Precision    float64                           `json:"precision"`
	Recall       float64                           `json:"recall"`
	ByDifficulty map[Difficulty]*DifficultySummary `json:"byDifficulty"`
	Failures     []EvalResult                      `json:"failures,omitempty"`
}

// DifficultySummary holds metrics grouped by difficulty.
type DifficultySummary struct {
	Count    int     `json:"count"`
	Correct  int     `json:"correct"`
	Accuracy float64 `json:"accuracy"`
}
