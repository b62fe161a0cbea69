package problems

import (
	"fmt"
	"io"
	"iter"
	"slices"
	"strings"

	"github.com/programme-lv/neetrunner/internal/compare"
	"github.com/programme-lv/neetrunner/internal/literal"
	"github.com/programme-lv/neetrunner/internal/registry"
)

// subsetsLimit keeps the output at 2^16 lists.
const subsetsLimit = 16

func init() {
	registry.Register(&registry.Module{
		ID: "subsets",
		Solutions: registry.Metadata{
			registry.DefaultMethod: {
				Class:      "Solution",
				Method:     "subsets",
				Complexity: "O(n * 2^n) time, O(n) space",
				Approach:   "backtracking",
				Solver:     registry.SolverFunc(subsetsBacktrack),
			},
			"bitmask": {
				Class:      "Solution",
				Method:     "subsetsBitmask",
				Complexity: "O(n * 2^n) time, O(1) space",
				Approach:   "enumerate masks",
				Solver:     registry.SolverFunc(subsetsBitmask),
			},
		},
		CompareMode: compare.Set,
		Judge:       subsetsJudge,
	})
	registry.RegisterGenerator("subsets", subsetsGen{})
}

func parseSubsets(r io.Reader) ([]int, error) {
	vals, err := readInput(r)
	if err != nil {
		return nil, err
	}
	if len(vals) != 1 {
		return nil, fmt.Errorf("%w: subsets wants 1 line, got %d", errMalformed, len(vals))
	}
	nums, err := ints(vals[0])
	if err != nil {
		return nil, err
	}
	if len(nums) > subsetsLimit {
		return nil, fmt.Errorf("%w: at most %d elements, got %d", errMalformed, subsetsLimit, len(nums))
	}
	return nums, nil
}

func subsetsBacktrack(r io.Reader, w io.Writer) error {
	nums, err := parseSubsets(r)
	if err != nil {
		return err
	}
	var out []literal.Value
	var cur []int
	var walk func(i int)
	walk = func(i int) {
		if i == len(nums) {
			out = append(out, literal.Ints(cur...))
			return
		}
		walk(i + 1)
		cur = append(cur, nums[i])
		walk(i + 1)
		cur = cur[:len(cur)-1]
	}
	walk(0)
	return writeValue(w, literal.ListOf(out...))
}

func subsetsBitmask(r io.Reader, w io.Writer) error {
	nums, err := parseSubsets(r)
	if err != nil {
		return err
	}
	out := make([]literal.Value, 0, 1<<len(nums))
	for mask := range 1 << len(nums) {
		var sub []int
		for i, x := range nums {
			if mask&(1<<i) != 0 {
				sub = append(sub, x)
			}
		}
		out = append(out, literal.Ints(sub...))
	}
	return writeValue(w, literal.ListOf(out...))
}

// subsetsJudge checks that actual is the power set of the input, in any
// order.
func subsetsJudge(actual literal.Value, _ *literal.Value, input string) bool {
	nums, err := parseSubsets(strings.NewReader(input))
	if err != nil || actual.Kind != literal.List || len(actual.Items) != 1<<len(nums) {
		return false
	}
	seen := make(map[string]bool, len(actual.Items))
	for _, it := range actual.Items {
		sub, ok := it.AsInts()
		if !ok || !isSubset(sub, nums) {
			return false
		}
		slices.Sort(sub)
		key := literal.Ints(sub...).Key()
		if seen[key] {
			return false
		}
		seen[key] = true
	}
	return true
}

// isSubset reports whether sub uses each element of nums at most once.
func isSubset(sub, nums []int) bool {
	avail := make(map[int]int, len(nums))
	for _, x := range nums {
		avail[x]++
	}
	for _, x := range sub {
		if avail[x] == 0 {
			return false
		}
		avail[x]--
	}
	return true
}

type subsetsGen struct{}

// Generate yields lists of distinct ints; it has no complexity schedule
// since the output is exponential.
func (subsetsGen) Generate(count int, seed *int64) iter.Seq[string] {
	return func(yield func(string) bool) {
		rng := newRand(seed)
		for range count {
			n := rng.IntN(9)
			nums := rng.Perm(21)[:n]
			for i := range nums {
				nums[i] -= 10
			}
			if !yield(literal.Ints(nums...).Repr() + "\n") {
				return
			}
		}
	}
}
