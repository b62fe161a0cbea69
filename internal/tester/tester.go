// Package tester drives solution methods over static and generated cases
// and collects the results for reporting.
package tester

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/programme-lv/neetrunner/internal/cases"
	"github.com/programme-lv/neetrunner/internal/compare"
	"github.com/programme-lv/neetrunner/internal/complexity"
	"github.com/programme-lv/neetrunner/internal/executor"
	"github.com/programme-lv/neetrunner/internal/registry"
	"golang.org/x/sync/errgroup"
)

var ErrUnknownMethod = errors.New("unknown method")

type Tester struct {
	loader    *registry.Loader
	exec      *executor.Executor
	estimator *complexity.Estimator
	gath      Gatherer
	log       *slog.Logger
}

func NewTester(loader *registry.Loader, exec *executor.Executor, estimator *complexity.Estimator, gath Gatherer, log *slog.Logger) *Tester {
	if gath == nil {
		gath = nopGatherer{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Tester{
		loader:    loader,
		exec:      exec,
		estimator: estimator,
		gath:      gath,
		log:       log,
	}
}

// Options are the per-invocation knobs of RunProblem.
type Options struct {
	Problem  string
	TestsDir string
	// Method selects one variant; All runs every variant.
	Method string
	All    bool

	ProfileMemory bool
	SaveFailed    bool
	GenerateCount int
	Seed          *int64
	Estimate      bool
}

type prepared struct {
	module    *registry.Module
	metadata  registry.Metadata
	mode      compare.Mode
	generator registry.Generator
	cases     []cases.Case
}

func (t *Tester) prepare(ctx context.Context, opts Options) (*prepared, error) {
	res := &prepared{}
	resMu := sync.Mutex{}

	errs, _ := errgroup.WithContext(ctx)

	errs.Go(func() error {
		mod, md, mode := t.loader.LoadSolution(opts.Problem)
		if mod == nil {
			return fmt.Errorf("solution for %q: %w", opts.Problem, registry.ErrNotFound)
		}
		resMu.Lock()
		res.module, res.metadata, res.mode = mod, md, mode
		resMu.Unlock()
		return nil
	})

	errs.Go(func() error {
		gen := t.loader.LoadGenerator(opts.Problem)
		resMu.Lock()
		res.generator = gen
		resMu.Unlock()
		return nil
	})

	errs.Go(func() error {
		cs, err := cases.Enumerate(opts.TestsDir, opts.Problem)
		if err != nil {
			return fmt.Errorf("failed to enumerate cases: %w", err)
		}
		resMu.Lock()
		res.cases = cs
		resMu.Unlock()
		return nil
	})

	if err := errs.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

type selected struct {
	key  string
	info registry.Solution
}

func (t *Tester) selectMethods(p *prepared, opts Options) ([]selected, bool, error) {
	if p.metadata == nil {
		if opts.Method != "" && opts.Method != registry.DefaultMethod {
			t.log.Warn("module has no variants, running default", "problem", opts.Problem, "requested", opts.Method)
		}
		return []selected{{key: registry.DefaultMethod}}, true, nil
	}
	keys := p.metadata.Keys()
	switch {
	case opts.All:
		out := make([]selected, len(keys))
		for i, k := range keys {
			out[i] = selected{key: k, info: p.metadata[k]}
		}
		return out, false, nil
	case opts.Method != "":
		info, ok := p.metadata[opts.Method]
		if !ok {
			return nil, false, fmt.Errorf("%w %q for %s, available: %s",
				ErrUnknownMethod, opts.Method, opts.Problem, strings.Join(keys, ", "))
		}
		return []selected{{key: opts.Method, info: info}}, false, nil
	}
	return []selected{{key: registry.DefaultMethod, info: p.metadata[registry.DefaultMethod]}}, false, nil
}

// RunProblem loads the problem, runs the selected methods in order and
// returns their results. Case failures are part of the results; only
// setup problems are returned as errors.
func (t *Tester) RunProblem(ctx context.Context, opts Options) ([]*MethodResult, error) {
	p, err := t.prepare(ctx, opts)
	if err != nil {
		return nil, err
	}
	methods, legacy, err := t.selectMethods(p, opts)
	if err != nil {
		return nil, err
	}
	t.log.Debug("prepared problem",
		"problem", opts.Problem,
		"static_cases", len(p.cases),
		"generator", p.generator != nil,
		"compare_mode", p.mode,
		"methods", len(methods))

	results := make([]*MethodResult, 0, len(methods))
	for _, m := range methods {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, t.RunMethod(ctx, MethodRun{
			Problem:       opts.Problem,
			Method:        m.key,
			Info:          m.info,
			Legacy:        legacy,
			Cases:         p.cases,
			Mode:          p.mode,
			Module:        p.module,
			Generator:     p.generator,
			GenerateCount: opts.GenerateCount,
			Seed:          opts.Seed,
			SaveFailed:    opts.SaveFailed,
			TestsDir:      opts.TestsDir,
			ProfileMemory: opts.ProfileMemory,
			Estimate:      opts.Estimate,
		}))
	}
	return results, nil
}
