package model

import "fmt"

// InvalidConfigError reports a MatchConfig precondition violation. It is
// returned before any scoring work starts; there is no partial run.
type InvalidConfigError struct {
	Field  string
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid match config: %s %s", e.Field, e.Reason)
}

// ScoringError means the scoring function rejected an input pair. The batch
// is aborted; the row index and brand identify the offending pair.
type ScoringError struct {
	RowIndex int
	Brand    string
	Err      error
}

func (e *ScoringError) Error() string {
	return fmt.Sprintf("scoring failed at row %d against brand %q: %v", e.RowIndex, e.Brand, e.Err)
}

func (e *ScoringError) Unwrap() error { return e.Err }

// Validate checks the pipeline preconditions.
func (c MatchConfig) Validate() error {
	if !(c.Threshold >= 0 && c.Threshold <= 100) {
		return &InvalidConfigError{Field: "threshold", Reason: "must be in [0,100]"}
	}
	if c.TopN < 1 {
		return &InvalidConfigError{Field: "topN", Reason: "must be >= 1"}
	}
	if c.Workers < 0 {
		return &InvalidConfigError{Field: "workers", Reason: "must be >= 0"}
	}
	return nil
}
