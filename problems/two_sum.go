package problems

import (
	"fmt"
	"io"
	"iter"
	"sort"
	"strconv"
	"strings"

	"github.com/programme-lv/neetrunner/internal/compare"
	"github.com/programme-lv/neetrunner/internal/literal"
	"github.com/programme-lv/neetrunner/internal/registry"
	"github.com/programme-lv/neetrunner/internal/shape"
)

func init() {
	registry.Register(&registry.Module{
		ID: "two_sum",
		Solutions: registry.Metadata{
			registry.DefaultMethod: {
				Class:       "Solution",
				Method:      "twoSum",
				Complexity:  "O(n) time, O(n) space",
				Description: "Single pass, remembering the index of every value seen.",
				Approach:    "hash map",
				Solver:      registry.SolverFunc(twoSumHash),
			},
			"brute_force": {
				Class:      "Solution",
				Method:     "twoSumBrute",
				Complexity: "O(n^2) time, O(1) space",
				Approach:   "nested loops",
				Solver:     registry.SolverFunc(twoSumBrute),
			},
			"two_pointers": {
				Class:      "Solution",
				Method:     "twoSumSorted",
				Complexity: "O(n log n) time, O(n) space",
				Approach:   "sort indices, walk inwards",
				Solver:     registry.SolverFunc(twoSumPointers),
			},
		},
		CompareMode: compare.Exact,
		Judge:       twoSumJudge,
		ShapeOf:     twoSumShape,
	})
	registry.RegisterGenerator("two_sum", twoSumGen{})
}

func parseTwoSum(r io.Reader) (nums []int, target int, err error) {
	vals, err := readInput(r)
	if err != nil {
		return nil, 0, err
	}
	if len(vals) != 2 {
		return nil, 0, fmt.Errorf("%w: two_sum wants 2 lines, got %d", errMalformed, len(vals))
	}
	if nums, err = ints(vals[0]); err != nil {
		return nil, 0, err
	}
	if target, err = intArg(vals[1]); err != nil {
		return nil, 0, err
	}
	return nums, target, nil
}

func twoSumHash(r io.Reader, w io.Writer) error {
	nums, target, err := parseTwoSum(r)
	if err != nil {
		return err
	}
	seen := make(map[int]int, len(nums))
	for i, x := range nums {
		if j, ok := seen[target-x]; ok {
			return writeValue(w, literal.Ints(j, i))
		}
		seen[x] = i
	}
	return writeValue(w, literal.Ints())
}

func twoSumBrute(r io.Reader, w io.Writer) error {
	nums, target, err := parseTwoSum(r)
	if err != nil {
		return err
	}
	for i := range nums {
		for j := i + 1; j < len(nums); j++ {
			if nums[i]+nums[j] == target {
				return writeValue(w, literal.Ints(i, j))
			}
		}
	}
	return writeValue(w, literal.Ints())
}

func twoSumPointers(r io.Reader, w io.Writer) error {
	nums, target, err := parseTwoSum(r)
	if err != nil {
		return err
	}
	idx := make([]int, len(nums))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return nums[idx[a]] < nums[idx[b]] })
	lo, hi := 0, len(idx)-1
	for lo < hi {
		switch sum := nums[idx[lo]] + nums[idx[hi]]; {
		case sum == target:
			return writeValue(w, literal.Ints(min(idx[lo], idx[hi]), max(idx[lo], idx[hi])))
		case sum < target:
			lo++
		default:
			hi--
		}
	}
	return writeValue(w, literal.Ints())
}

// twoSumJudge accepts any pair of distinct indices hitting the target.
func twoSumJudge(actual literal.Value, _ *literal.Value, input string) bool {
	nums, target, err := parseTwoSum(strings.NewReader(input))
	if err != nil {
		return false
	}
	idx, ok := actual.AsInts()
	if !ok || len(idx) != 2 || idx[0] == idx[1] {
		return false
	}
	for _, i := range idx {
		if i < 0 || i >= len(nums) {
			return false
		}
	}
	return nums[idx[0]]+nums[idx[1]] == target
}

func twoSumShape(input string) *shape.Shape {
	nums, _, err := parseTwoSum(strings.NewReader(input))
	if err != nil {
		return nil
	}
	n := len(nums)
	return &shape.Shape{N: &n, DType: "int"}
}

func formatTwoSum(nums []int, target int) string {
	return literal.Ints(nums...).Repr() + "\n" + strconv.Itoa(target) + "\n"
}

type twoSumGen struct{}

func (twoSumGen) Generate(count int, seed *int64) iter.Seq[string] {
	return func(yield func(string) bool) {
		rng := newRand(seed)
		for range count {
			n := 2 + rng.IntN(49)
			nums := make([]int, n)
			for i := range nums {
				nums[i] = rng.IntN(2001) - 1000
			}
			i := rng.IntN(n)
			j := rng.IntN(n - 1)
			if j >= i {
				j++
			}
			if !yield(formatTwoSum(nums, nums[i]+nums[j])) {
				return
			}
		}
	}
}

// GenerateForComplexity places the only matching pair at the end so every
// variant does its full amount of work.
func (twoSumGen) GenerateForComplexity(n int) string {
	n = max(n, 2)
	nums := make([]int, n)
	for i := range nums {
		nums[i] = 2 * i
	}
	return formatTwoSum(nums, nums[n-2]+nums[n-1])
}
