package evaluation

import "fmt"

// Thresholds are the minimum scores a strategy must reach
type Thresholds struct {
	MinAccuracy  float64
	MinPrecision float64
}

// Check returns an error naming the first metric below its threshold
func (t Thresholds) Check(s *EvalSummary) error {
	if s.Accuracy < t.MinAccuracy {
		return fmt.Errorf("strategy %s: accuracy %.3f below %.3f", s.Strategy, s.Accuracy, t.MinAccuracy)
	}
	if s.Precision < t.MinPrecision {
		return fmt.Errorf("strategy %s: precision %.3f below %.3f", s.Strategy, s.Precision, t.MinPrecision)
	}
	return nil
}
