package tester

import (
	"context"
	"errors"
	"fmt"

	"github.com/programme-lv/neetrunner/internal/cases"
	"github.com/programme-lv/neetrunner/internal/compare"
	"github.com/programme-lv/neetrunner/internal/complexity"
	"github.com/programme-lv/neetrunner/internal/executor"
	"github.com/programme-lv/neetrunner/internal/memprof"
	"github.com/programme-lv/neetrunner/internal/registry"
)

// MethodRun describes one method to drive.
type MethodRun struct {
	Problem string
	Method  string
	Info    registry.Solution
	Legacy  bool

	Cases     []cases.Case
	Mode      compare.Mode
	Module    *registry.Module
	Generator registry.Generator

	GenerateCount int
	Seed          *int64
	SaveFailed    bool
	TestsDir      string
	ProfileMemory bool
	Estimate      bool
}

// RunMethod runs every static case and then every generated case of one
// method, strictly in order. It never aborts on a failing case.
func (t *Tester) RunMethod(ctx context.Context, run MethodRun) *MethodResult {
	res := &MethodResult{
		Problem: run.Problem,
		Method:  run.Method,
		Info:    run.Info,
		Legacy:  run.Legacy,
		Modes:   map[executor.ValidationMode]int{},
		Memory:  memprof.New(run.Method, AuxSpace(run.Info.Complexity), memprof.RSS),
	}
	t.gath.StartMethod(run.Problem, run.Method, run.Info)

	req := executor.Request{
		Problem:       run.Problem,
		Method:        run.Method,
		Module:        run.Module,
		Mode:          run.Mode,
		ProfileMemory: run.ProfileMemory,
	}
	if run.Legacy {
		req.Method = ""
	}

	for _, c := range run.Cases {
		if ctx.Err() != nil {
			break
		}
		cr := t.exec.RunCase(ctx, req, c)
		t.record(res, &cr)
	}

	if run.Generator != nil && run.GenerateCount > 0 && ctx.Err() == nil {
		t.runGenerated(ctx, req, run, res)
	}

	if run.Estimate && t.estimator != nil && ctx.Err() == nil {
		t.estimate(ctx, req, run, res)
	}

	t.gath.FinishMethod(res)
	return res
}

func (t *Tester) runGenerated(ctx context.Context, req executor.Request, run MethodRun, res *MethodResult) {
	defer func() {
		if r := recover(); r != nil {
			t.log.Error("generator panicked", "problem", run.Problem, "panic", r)
		}
	}()
	i := 0
	for input := range run.Generator.Generate(run.GenerateCount, run.Seed) {
		if ctx.Err() != nil {
			return
		}
		i++
		cr := t.exec.RunGeneratedCase(ctx, req, fmt.Sprintf("gen_%d", i), input)
		t.record(res, &cr)
		if cr.Outcome == executor.Failed && run.SaveFailed {
			path, err := cases.SaveFailed(run.TestsDir, run.Problem, input)
			if err != nil {
				t.log.Error("failed to save failing case", "case", cr.Name, "error", err)
				continue
			}
			res.SavedFailed = append(res.SavedFailed, path)
			t.log.Info("saved failing case", "case", cr.Name, "path", path)
		}
	}
}

func (t *Tester) record(res *MethodResult, cr *executor.CaseResult) {
	if cr.Generated {
		res.Generated = append(res.Generated, *cr)
	} else {
		res.Static = append(res.Static, *cr)
	}
	res.Modes[cr.ValidationMode]++

	if err := res.Memory.Add(memprof.CaseMetrics{
		CaseName:    cr.Name,
		PeakBytes:   cr.PeakRSSBytes,
		InputBytes:  cr.InputBytes,
		InputShape:  cr.InputShape,
		Elapsed:     cr.Elapsed,
		Measurement: memprof.RSS,
	}); err != nil {
		t.log.Error("failed to record memory metrics", "case", cr.Name, "error", err)
	}

	switch cr.Outcome {
	case executor.Skipped:
		t.gath.SkipCase(res.Method, cr)
		return
	case executor.Passed:
		t.gath.FinishCase(res.Method, cr)
	default:
		t.gath.FailCase(res.Method, cr)
	}
	if cr.ValidationMode != executor.ModeError {
		res.Times = append(res.Times, cr.Elapsed)
	}
}

func (t *Tester) estimate(ctx context.Context, req executor.Request, run MethodRun, res *MethodResult) {
	est, err := t.estimator.Estimate(ctx, run.Module, req.Method, run.Generator)
	switch {
	case errors.Is(err, complexity.ErrUnavailable):
		res.ComplexityNote = err.Error()
		t.log.Info("complexity estimation skipped", "method", run.Method, "reason", err)
	case err != nil:
		res.ComplexityNote = err.Error()
		t.log.Warn("complexity estimation failed", "method", run.Method, "error", err)
	case est == nil:
		res.ComplexityNote = "too few successful sizes"
	default:
		res.Complexity = est
	}
}
