package problems

import (
	"fmt"
	"io"

	"github.com/programme-lv/neetrunner/internal/literal"
	"github.com/programme-lv/neetrunner/internal/registry"
)

// climbing_stairs predates variant metadata and exposes a single Solve.
func init() {
	registry.Register(&registry.Module{
		ID:    "climbing_stairs",
		Solve: registry.SolverFunc(climbStairs),
	})
}

func climbStairs(r io.Reader, w io.Writer) error {
	vals, err := readInput(r)
	if err != nil {
		return err
	}
	if len(vals) != 1 {
		return fmt.Errorf("%w: climbing_stairs wants 1 line, got %d", errMalformed, len(vals))
	}
	n, err := intArg(vals[0])
	if err != nil {
		return err
	}
	if n < 0 || n > 90 {
		return fmt.Errorf("%w: n out of range: %d", errMalformed, n)
	}
	a, b := int64(1), int64(1)
	for range n {
		a, b = b, a+b
	}
	return writeValue(w, literal.IntValue(a))
}
