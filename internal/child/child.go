// Package child is the body of "neetrunner solve <problem>", the process
// the executor starts for every case of a compiled solution.
package child

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/programme-lv/neetrunner/internal/executor"
	"github.com/programme-lv/neetrunner/internal/registry"
	"github.com/programme-lv/neetrunner/internal/shape"
)

// Run solves one case of problem from stdin to stdout. The variant comes
// from SOLUTION_METHOD; with NEETCODE_SHAPE_REPORT=1 and a module shape
// reporter, the input shape envelope is written to stderr first.
func Run(reg *registry.Registry, problem string, getenv func(string) string, stdin io.Reader, stdout, stderr io.Writer) error {
	mod, err := reg.Lookup(problem)
	if err != nil {
		return err
	}
	method := getenv(executor.EnvSolutionMethod)
	solver, err := mod.SolverFor(method)
	if err != nil {
		return err
	}

	in := stdin
	if getenv(executor.EnvShapeReport) == "1" && mod.ShapeOf != nil {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if s := mod.ShapeOf(string(data)); !s.Empty() {
			env, err := shape.Envelope(s)
			if err != nil {
				return err
			}
			fmt.Fprintln(stderr, env)
		}
		in = bytes.NewReader(data)
	}

	out := bufio.NewWriter(stdout)
	if err := solver.Solve(in, out); err != nil {
		return fmt.Errorf("%s: %w", problem, err)
	}
	return out.Flush()
}
