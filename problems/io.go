// Package problems registers the compiled solutions and generators.
// Importing it for side effects fills registry.Default.
package problems

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/programme-lv/neetrunner/internal/literal"
)

const maxLine = 64 << 20

var errMalformed = errors.New("malformed input")

// readInput parses every non-blank line of r as one literal.
func readInput(r io.Reader) ([]literal.Value, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	var vals []literal.Value
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		v, err := literal.Parse(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", len(vals)+1, err)
		}
		vals = append(vals, v)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return vals, nil
}

func writeValue(w io.Writer, v literal.Value) error {
	_, err := fmt.Fprintln(w, v.Repr())
	return err
}

// newRand is seeded from seed, or randomly when seed is nil.
func newRand(seed *int64) *rand.Rand {
	if seed == nil {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(uint64(*seed), 0x9e3779b97f4a7c15))
}

func ints(v literal.Value) ([]int, error) {
	xs, ok := v.AsInts()
	if !ok {
		return nil, fmt.Errorf("%w: expected a list of ints, got %s", errMalformed, v.Kind)
	}
	return xs, nil
}

func intArg(v literal.Value) (int, error) {
	n, ok := v.AsInt()
	if !ok {
		return 0, fmt.Errorf("%w: expected an int, got %s", errMalformed, v.Kind)
	}
	return int(n), nil
}
