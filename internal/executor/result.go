package executor

import (
	"time"

	"github.com/programme-lv/neetrunner/internal/shape"
)

// Outcome is the tri-state verdict of a case.
type Outcome string

const (
	Passed  Outcome = "passed"
	Failed  Outcome = "failed"
	Skipped Outcome = "skipped"
)

type ValidationMode string

const (
	ModeExact     ValidationMode = "exact"
	ModeSorted    ValidationMode = "sorted"
	ModeSet       ValidationMode = "set"
	ModeJudge     ValidationMode = "judge"
	ModeJudgeOnly ValidationMode = "judge-only"
	ModeSkip      ValidationMode = "skip"
	ModeError     ValidationMode = "error"
)

type CaseResult struct {
	Name           string
	Outcome        Outcome
	Elapsed        time.Duration
	Actual         string
	Expected       *string
	ValidationMode ValidationMode
	PeakRSSBytes   *int64
	InputBytes     int
	InputShape     *shape.Shape
	Generated      bool

	Input    string
	Stderr   string
	ExitCode int
	// Reason explains skipped and errored cases.
	Reason string
}

func (r *CaseResult) Passed() bool  { return r.Outcome == Passed }
func (r *CaseResult) Skipped() bool { return r.Outcome == Skipped }

// ElapsedMs is the wall time in fractional milliseconds.
func (r *CaseResult) ElapsedMs() float64 {
	return float64(r.Elapsed.Microseconds()) / 1000
}
