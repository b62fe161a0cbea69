package tester

import (
	"regexp"
	"time"

	"github.com/programme-lv/neetrunner/internal/complexity"
	"github.com/programme-lv/neetrunner/internal/executor"
	"github.com/programme-lv/neetrunner/internal/memprof"
	"github.com/programme-lv/neetrunner/internal/registry"
)

// MethodResult is everything collected for one method.
type MethodResult struct {
	Problem string
	Method  string
	Info    registry.Solution
	// Legacy is set when the module had no valid variant metadata.
	Legacy bool

	Static    []executor.CaseResult
	Generated []executor.CaseResult
	Times     []time.Duration
	Modes     map[executor.ValidationMode]int

	Memory         *memprof.MethodMetrics
	Complexity     *complexity.Result
	ComplexityNote string
	SavedFailed    []string
}

type Tally struct {
	Passed  int
	Failed  int
	Skipped int
}

// Run is the number of cases that produced a verdict.
func (t Tally) Run() int { return t.Passed + t.Failed }

func tally(rs []executor.CaseResult) Tally {
	var t Tally
	for i := range rs {
		switch rs[i].Outcome {
		case executor.Passed:
			t.Passed++
		case executor.Failed:
			t.Failed++
		case executor.Skipped:
			t.Skipped++
		}
	}
	return t
}

func (r *MethodResult) StaticTally() Tally    { return tally(r.Static) }
func (r *MethodResult) GeneratedTally() Tally { return tally(r.Generated) }

func (r *MethodResult) Total() Tally {
	s, g := r.StaticTally(), r.GeneratedTally()
	return Tally{Passed: s.Passed + g.Passed, Failed: s.Failed + g.Failed, Skipped: s.Skipped + g.Skipped}
}

func (r *MethodResult) AllPassed() bool { return r.Total().Failed == 0 }

// AvgTime is the mean wall time over executed cases.
func (r *MethodResult) AvgTime() time.Duration {
	if len(r.Times) == 0 {
		return 0
	}
	var sum time.Duration
	for _, d := range r.Times {
		sum += d
	}
	return sum / time.Duration(len(r.Times))
}

// Cases returns static then generated results.
func (r *MethodResult) Cases() []executor.CaseResult {
	out := make([]executor.CaseResult, 0, len(r.Static)+len(r.Generated))
	out = append(out, r.Static...)
	return append(out, r.Generated...)
}

var (
	spaceAfter  = regexp.MustCompile(`(?i)(O\([^)]*\))\s*(?:aux(?:iliary)?\s*)?space`)
	spaceBefore = regexp.MustCompile(`(?i)space\s*(?:complexity)?\s*[:=]?\s*(O\([^)]*\))`)
)

// AuxSpace pulls the space bound out of a declared complexity such as
// "O(n) time, O(1) space" or "Time: O(n), Space: O(n)".
func AuxSpace(declared string) string {
	if m := spaceAfter.FindStringSubmatch(declared); m != nil {
		return m[1]
	}
	if m := spaceBefore.FindStringSubmatch(declared); m != nil {
		return m[1]
	}
	return ""
}
