package evaluation

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/urgences-proches/backend/internal/domain/entities"
	apperrors "github.com/urgences-proches/backend/pkg/errors"
)

// NameResolver finds the curated record matching a directory name
type NameResolver interface {
	FindByName(ctx context.Context, name string) (*entities.SupplementalRecord, error)
}

// Runner runs evaluation across a set of golden matches.
type Runner struct {
	resolver NameResolver
	strategy string
}

func NewRunner(resolver NameResolver, strategy string) *Runner {
	return &Runner{resolver: resolver, strategy: strategy}
}

func (r *Runner) Run(ctx context.Context, matches []GoldenMatch) (*EvalSummary, error) {
	summary := &EvalSummary{
		Strategy:     r.strategy,
		Total:        len(matches),
		Counts:       make(map[Outcome]int),
		ByDifficulty: make(map[Difficulty]*DifficultySummary),
	}

	var truePositives, predicted, expected int
	for _, gm := range matches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result := EvalResult{
			ID:         gm.ID,
			Name:       gm.Name,
			Expected:   gm.Expected,
			Difficulty: gm.Difficulty,
		}

		rec, err := r.resolver.FindByName(ctx, gm.Name)
		switch {
		case err == nil:
			result.Got = rec.Name
			result.Outcome = Classify(gm.Expected, rec.Name)
		case apperrors.IsType(err, apperrors.ErrorTypeNotFound):
			result.Outcome = Classify(gm.Expected, "")
		default:
			log.Warn().Err(err).Str("id", gm.ID).Msg("resolver failed during evaluation")
			result.Outcome = OutcomeError
		}

		if gm.Expected != "" {
			expected++
		}
		if result.Got != "" {
			predicted++
			if result.Outcome == OutcomeCorrect {
				truePositives++
			}
		}
		r.updateSummary(summary, result)
	}

	summary.Precision = Precision(truePositives, predicted)
	summary.Recall = Recall(truePositives, expected)
	r.finalizeSummary(summary)
	return summary, nil
}

func (r *Runner) updateSummary(s *EvalSummary, res EvalResult) {
	s.Counts[res.Outcome]++
	if res.Outcome != OutcomeCorrect {
		s.Failures = append(s.Failures, res)
	}

	if _, ok := s.ByDifficulty[res.Difficulty]; !ok {
		s.ByDifficulty[res.Difficulty] = &DifficultySummary{}
	}
	ds := s.ByDifficulty[res.Difficulty]
	ds.Count++
	if res.Outcome == OutcomeCorrect {
		ds.Correct++
	}
}

func (r *Runner) finalizeSummary(s *EvalSummary) {
	s.Accuracy = ratio(s.Counts[OutcomeCorrect], s.Total)
	for _, ds := range s.ByDifficulty {
		ds.Accuracy = ratio(ds.Correct, ds.Count)
	}
}
