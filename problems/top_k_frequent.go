package problems

import (
	"container/heap"
	"fmt"
	"io"
	"iter"
	"strconv"

	"github.com/programme-lv/neetrunner/internal/compare"
	"github.com/programme-lv/neetrunner/internal/literal"
	"github.com/programme-lv/neetrunner/internal/registry"
)

func init() {
	registry.Register(&registry.Module{
		ID: "top_k_frequent",
		Solutions: registry.Metadata{
			registry.DefaultMethod: {
				Class:      "Solution",
				Method:     "topKFrequent",
				Complexity: "O(n) time, O(n) space",
				Approach:   "bucket sort",
				Solver:     registry.SolverFunc(topKBuckets),
			},
			"heap": {
				Class:      "Solution",
				Method:     "topKFrequentHeap",
				Complexity: "O(n log k) time, O(n) space",
				Approach:   "min-heap of size k",
				Solver:     registry.SolverFunc(topKHeap),
			},
		},
		CompareMode: compare.Sorted,
	})
	registry.RegisterGenerator("top_k_frequent", topKGen{})
}

func parseTopK(r io.Reader) (nums []int, k int, err error) {
	vals, err := readInput(r)
	if err != nil {
		return nil, 0, err
	}
	if len(vals) != 2 {
		return nil, 0, fmt.Errorf("%w: top_k_frequent wants 2 lines, got %d", errMalformed, len(vals))
	}
	if nums, err = ints(vals[0]); err != nil {
		return nil, 0, err
	}
	if k, err = intArg(vals[1]); err != nil {
		return nil, 0, err
	}
	return nums, k, nil
}

func frequencies(nums []int) map[int]int {
	freq := make(map[int]int)
	for _, x := range nums {
		freq[x]++
	}
	return freq
}

func topKBuckets(r io.Reader, w io.Writer) error {
	nums, k, err := parseTopK(r)
	if err != nil {
		return err
	}
	buckets := make([][]int, len(nums)+1)
	for x, f := range frequencies(nums) {
		buckets[f] = append(buckets[f], x)
	}
	var out []int
	for f := len(buckets) - 1; f > 0 && len(out) < k; f-- {
		for _, x := range buckets[f] {
			if len(out) == k {
				break
			}
			out = append(out, x)
		}
	}
	return writeValue(w, literal.Ints(out...))
}

type entry struct{ val, freq int }

type minHeap []entry

func (h minHeap) Len() int           { return len(h) }
func (h minHeap) Less(i, j int) bool { return h[i].freq < h[j].freq }
func (h minHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *minHeap) Push(x any)        { *h = append(*h, x.(entry)) }
func (h *minHeap) Pop() any {
	old := *h
	e := old[len(old)-1]
	*h = old[:len(old)-1]
	return e
}

func topKHeap(r io.Reader, w io.Writer) error {
	nums, k, err := parseTopK(r)
	if err != nil {
		return err
	}
	if k <= 0 {
		return writeValue(w, literal.Ints())
	}
	h := &minHeap{}
	for x, f := range frequencies(nums) {
		heap.Push(h, entry{val: x, freq: f})
		if h.Len() > k {
			heap.Pop(h)
		}
	}
	out := make([]int, 0, h.Len())
	for _, e := range *h {
		out = append(out, e.val)
	}
	return writeValue(w, literal.Ints(out...))
}

type topKGen struct{}

// Generate gives every value a distinct frequency so the answer is unique.
func (topKGen) Generate(count int, seed *int64) iter.Seq[string] {
	return func(yield func(string) bool) {
		rng := newRand(seed)
		for range count {
			m := 1 + rng.IntN(8)
			freqs := rng.Perm(m)
			var nums []int
			for v, f := range freqs {
				for range f + 1 {
					nums = append(nums, v*7-20)
				}
			}
			rng.Shuffle(len(nums), func(i, j int) { nums[i], nums[j] = nums[j], nums[i] })
			k := 1 + rng.IntN(m)
			if !yield(literal.Ints(nums...).Repr() + "\n" + strconv.Itoa(k) + "\n") {
				return
			}
		}
	}
}

// GenerateForComplexity repeats one value n/2 times and fills the rest
// with distinct values, so k=1 has a single answer.
func (topKGen) GenerateForComplexity(n int) string {
	n = max(n, 1)
	nums := make([]int, n)
	for i := n / 2; i < n; i++ {
		nums[i] = i
	}
	return literal.Ints(nums...).Repr() + "\n1\n"
}
