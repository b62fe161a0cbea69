// Package registry holds solution modules and generators, compiled in or
// described on disk, and loads them by problem id.
package registry

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"sort"

	"github.com/programme-lv/neetrunner/internal/compare"
	"github.com/programme-lv/neetrunner/internal/shape"
)

var ErrNotFound = errors.New("not found")

// DefaultMethod is the mandatory variant key.
const DefaultMethod = "default"

// Solver reads a case from r and writes the answer to w.
type Solver interface {
	Solve(r io.Reader, w io.Writer) error
}

type SolverFunc func(r io.Reader, w io.Writer) error

func (f SolverFunc) Solve(r io.Reader, w io.Writer) error { return f(r, w) }

// Solution is one variant record. Class and Method are required.
type Solution struct {
	Class       string `toml:"class"`
	Method      string `toml:"method"`
	Complexity  string `toml:"complexity"`
	Description string `toml:"description"`
	Approach    string `toml:"approach"`
	Solver      Solver `toml:"-"`
}

// Metadata maps variant keys to their records.
type Metadata map[string]Solution

// Keys lists variant keys with "default" first, the rest sorted.
func (md Metadata) Keys() []string {
	keys := make([]string, 0, len(md))
	for k := range md {
		if k != DefaultMethod {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	if _, ok := md[DefaultMethod]; ok {
		keys = append([]string{DefaultMethod}, keys...)
	}
	return keys
}

type Module struct {
	ID          string
	Solutions   Metadata
	Solve       Solver // single entry point when Solutions is absent
	CompareMode compare.Mode
	Judge       compare.JudgeFunc
	ShapeOf     func(input string) *shape.Shape

	// set for modules described by solutions/{id}.toml
	File    string
	Command []string
}

func (m *Module) External() bool { return len(m.Command) > 0 }

func (m *Module) HasJudge() bool { return m != nil && m.Judge != nil }

// SolverFor picks the variant to run in-process. An empty method means
// "default"; modules without variants fall back to Solve.
func (m *Module) SolverFor(method string) (Solver, error) {
	if method == "" {
		method = DefaultMethod
	}
	if sol, ok := m.Solutions[method]; ok && sol.Solver != nil {
		return sol.Solver, nil
	}
	if method == DefaultMethod && m.Solve != nil {
		return m.Solve, nil
	}
	if m.External() {
		return nil, fmt.Errorf("%s is an external solution and cannot run in-process", m.ID)
	}
	return nil, fmt.Errorf("variant %q of %s: %w", method, m.ID, ErrNotFound)
}

// Generator produces case inputs lazily. A nil seed means unseeded.
type Generator interface {
	Generate(count int, seed *int64) iter.Seq[string]
}

// ComplexityGenerator additionally builds an input of a given size.
type ComplexityGenerator interface {
	Generator
	GenerateForComplexity(n int) string
}
