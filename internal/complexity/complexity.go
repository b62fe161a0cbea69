// Package complexity estimates the time complexity of a solution by
// timing it in-process over growing generated inputs.
package complexity

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/programme-lv/neetrunner/internal/memprof"
	"github.com/programme-lv/neetrunner/internal/registry"
)

var (
	DefaultSizes = []int{10, 20, 50, 100, 200, 500, 1000, 2000, 5000}

	ErrUnavailable = errors.New("complexity estimation unavailable")
)

const (
	DefaultRunsPerSize = 5
	minSizes           = 3
)

type Result struct {
	Complexity string
	Confidence float64
	Samples    int
	Details    string
	// Alloc holds per-size allocation figures when tracking was enabled.
	Alloc *memprof.MethodMetrics
}

type Options struct {
	Sizes       []int
	RunsPerSize int
	TrackAlloc  bool
}

type Estimator struct {
	opts Options
	log  *slog.Logger
}

func New(opts Options, log *slog.Logger) *Estimator {
	if len(opts.Sizes) == 0 {
		opts.Sizes = DefaultSizes
	}
	if opts.RunsPerSize <= 0 {
		opts.RunsPerSize = DefaultRunsPerSize
	}
	if log == nil {
		log = slog.Default()
	}
	return &Estimator{opts: opts, log: log}
}

// Estimate times method of mod on inputs from gen. It returns an error
// wrapping ErrUnavailable when preconditions are not met, and a nil
// result without error when too few sizes ran successfully.
func (e *Estimator) Estimate(ctx context.Context, mod *registry.Module, method string, gen registry.Generator) (*Result, error) {
	cg, ok := gen.(registry.ComplexityGenerator)
	if gen == nil || !ok {
		return nil, fmt.Errorf("%w: generator has no GenerateForComplexity", ErrUnavailable)
	}
	if mod == nil {
		return nil, fmt.Errorf("%w: no solution module", ErrUnavailable)
	}
	solver, err := mod.SolverFor(method)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var alloc *memprof.MethodMetrics
	if e.opts.TrackAlloc {
		alloc = memprof.New(method, "", memprof.Alloc)
	}

	var ns, ts []float64
	for _, n := range e.opts.Sizes {
		if n <= 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		input, err := generate(cg, n)
		if err != nil {
			e.log.Debug("complexity input generation failed", "n", n, "error", err)
			continue
		}
		var times []time.Duration
		var peakAlloc int64 = -1
		for range e.opts.RunsPerSize {
			d, peak, err := timeRun(solver, input, e.opts.TrackAlloc)
			if err != nil {
				e.log.Debug("complexity run discarded", "method", method, "n", n, "error", err)
				continue
			}
			times = append(times, d)
			peakAlloc = max(peakAlloc, peak)
		}
		if len(times) == 0 {
			continue
		}
		med := median(times)
		ns = append(ns, float64(n))
		ts = append(ts, med.Seconds())
		if alloc != nil && peakAlloc >= 0 {
			_ = alloc.Add(memprof.CaseMetrics{
				CaseName:    fmt.Sprintf("n=%d", n),
				PeakBytes:   &peakAlloc,
				InputBytes:  len(input),
				Elapsed:     med,
				Measurement: memprof.Alloc,
			})
		}
	}

	if len(ns) < minSizes {
		e.log.Info("too few sizes for a complexity fit", "method", method, "sizes", len(ns), "need", minSizes)
		return nil, nil
	}

	fits := fitAll(ns, ts)
	top, runnerUp := best(fits, ts)
	res := &Result{
		Complexity: top.class.label,
		Confidence: confidence(top.residual, ts),
		Samples:    len(ns),
		Alloc:      alloc,
	}
	res.Details = fmt.Sprintf("fitted %s over %d sizes (n=%d..%d), residual %.3g, runner-up %s",
		top.class.label, len(ns), int(ns[0]), int(ns[len(ns)-1]), top.residual, runnerUp.class.label)
	return res, nil
}

func generate(g registry.ComplexityGenerator, n int) (input string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("generator panicked: %v", r)
		}
	}()
	return g.GenerateForComplexity(n), nil
}

// timeRun runs the solver once on a fresh reader. Output is discarded.
// With trackAlloc the peak is the heap high-water mark during the call.
func timeRun(s registry.Solver, input string, trackAlloc bool) (d time.Duration, peak int64, err error) {
	var w *heapWatch
	if trackAlloc {
		w = watchHeap()
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("solver panicked: %v", r)
		}
		if w != nil {
			peak = w.Stop()
		}
	}()
	start := time.Now()
	err = s.Solve(strings.NewReader(input), io.Discard)
	d = time.Since(start)
	return d, peak, err
}

func median(ds []time.Duration) time.Duration {
	s := slices.Clone(ds)
	slices.Sort(s)
	mid := len(s) / 2
	if len(s)%2 == 1 {
		return s[mid]
	}
	return (s[mid-1] + s[mid]) / 2
}
