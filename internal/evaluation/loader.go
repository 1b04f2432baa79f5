package evaluation

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadGoldenMatches reads and parses a golden match set from a JSON file.
func LoadGoldenMatches(path string) ([]GoldenMatch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read golden matches file: %w", err)
	}

	var matches []GoldenMatch
	if err := json.Unmarshal(data, &matches); err != nil {
		return nil, fmt.Errorf("failed to parse golden matches: %w", err)
	}

	return matches, nil
}

// ValidateGoldenMatches checks that all golden matches have required fields and valid values.
func ValidateGoldenMatches(matches []GoldenMatch) error {
	seen := make(map[string]struct{}, len(matches))

	for i, m := range matches {
		if m.ID == "" {
			return fmt.Errorf("match at index %d: missing id", i)
		}
		if _, dup := seen[m.ID]; dup {
			return fmt.Errorf("match at index %d: duplicate id %q", i, m.ID)
		}
		seen[m.ID] = struct{}{}

		if m.Name == "" {
			return fmt.Errorf("match %q: missing name", m.ID)
		}
		if !m.Difficulty.IsValid() {
			return fmt.Errorf("match %q: invalid difficulty %q (must be easy/medium/hard)", m.ID, m.Difficulty)
		}
	}

	return nil
}
