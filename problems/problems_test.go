package problems_test

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/programme-lv/neetrunner/internal/compare"
	"github.com/programme-lv/neetrunner/internal/registry"
	_ "github.com/programme-lv/neetrunner/problems"
)

func run(t *testing.T, problem, method, input string) string {
	t.Helper()
	mod, err := registry.Default.Lookup(problem)
	require.NoError(t, err)
	solver, err := mod.SolverFor(method)
	require.NoError(t, err)
	var out bytes.Buffer
	require.NoError(t, solver.Solve(strings.NewReader(input), &out))
	return out.String()
}

func check(t *testing.T, problem, method, input, expected string) {
	t.Helper()
	mod, err := registry.Default.Lookup(problem)
	require.NoError(t, err)
	actual := run(t, problem, method, input)
	assert.True(t, compare.Compare(actual, &expected, input, mod.Judge, mod.CompareMode),
		"%s/%s on %q: got %q, want %q", problem, method, input, actual, expected)
}

func TestRegistered(t *testing.T) {
	ids := registry.Default.IDs()
	for _, id := range []string{"climbing_stairs", "subsets", "top_k_frequent", "two_sum"} {
		assert.Contains(t, ids, id)
	}
	for _, id := range ids {
		mod, err := registry.Default.Lookup(id)
		require.NoError(t, err)
		if mod.Solutions != nil {
			assert.Empty(t, registry.Validate(mod.Solutions), id)
		}
	}
}

func TestTwoSum(t *testing.T) {
	mod, err := registry.Default.Lookup("two_sum")
	require.NoError(t, err)
	for _, method := range mod.Solutions.Keys() {
		t.Run(method, func(t *testing.T) {
			check(t, "two_sum", method, "[2, 7, 11, 15]\n9\n", "[0, 1]")
			check(t, "two_sum", method, "[3, 2, 4]\n6\n", "[1, 2]")
			check(t, "two_sum", method, "[3, 3]\n6\n", "[0, 1]")
		})
	}
	assert.Equal(t, "[0, 1]\n", run(t, "two_sum", "default", "[2, 7, 11, 15]\n9\n"))
}

func TestTwoSumJudge(t *testing.T) {
	mod, err := registry.Default.Lookup("two_sum")
	require.NoError(t, err)
	in := "[1, 5, 5, 9]\n10\n"
	assert.True(t, compare.Compare("[1, 2]", nil, in, mod.Judge, mod.CompareMode))
	assert.True(t, compare.Compare("[3, 0]", nil, in, mod.Judge, mod.CompareMode))
	assert.False(t, compare.Compare("[1, 1]", nil, in, mod.Judge, mod.CompareMode))
	assert.False(t, compare.Compare("[0, 4]", nil, in, mod.Judge, mod.CompareMode))
	assert.False(t, compare.Compare("nope", nil, in, mod.Judge, mod.CompareMode))
}

func TestTwoSumShape(t *testing.T) {
	mod, err := registry.Default.Lookup("two_sum")
	require.NoError(t, err)
	assert.Equal(t, "n=4", mod.ShapeOf("[1, 5, 5, 9]\n10\n").Label())
	assert.Nil(t, mod.ShapeOf("garbage"))
}

func TestSubsetsVariantsAgree(t *testing.T) {
	check(t, "subsets", "default", "[1, 2, 3]", "[[], [1], [2], [1, 2], [3], [1, 3], [2, 3], [1, 2, 3]]")
	check(t, "subsets", "bitmask", "[0]", "[[0], []]")
	assert.Equal(t, run(t, "subsets", "default", "[]"), run(t, "subsets", "bitmask", "[]"))
}

func TestSubsetsJudge(t *testing.T) {
	mod, err := registry.Default.Lookup("subsets")
	require.NoError(t, err)
	in := "[1, 2]"
	assert.True(t, compare.Compare("[[2, 1], [], [1], [2]]", nil, in, mod.Judge, mod.CompareMode))
	assert.False(t, compare.Compare("[[1, 2], [], [1], [1]]", nil, in, mod.Judge, mod.CompareMode))
	assert.False(t, compare.Compare("[[1, 1], [], [1], [2]]", nil, in, mod.Judge, mod.CompareMode))
	assert.False(t, compare.Compare("[[], [1], [2]]", nil, in, mod.Judge, mod.CompareMode))
}

func TestTopKFrequent(t *testing.T) {
	for _, method := range []string{"default", "heap"} {
		check(t, "top_k_frequent", method, "[1, 1, 1, 2, 2, 3]\n2\n", "[1, 2]")
		check(t, "top_k_frequent", method, "[1]\n1\n", "[1]")
	}
}

func TestClimbingStairsIsLegacy(t *testing.T) {
	mod, err := registry.Default.Lookup("climbing_stairs")
	require.NoError(t, err)
	assert.Nil(t, mod.Solutions)
	assert.Equal(t, "8\n", run(t, "climbing_stairs", "", "5\n"))
	assert.Equal(t, "1\n", run(t, "climbing_stairs", "", "0"))

	solver, err := mod.SolverFor("default")
	require.NoError(t, err)
	assert.Error(t, solver.Solve(strings.NewReader("-1"), &bytes.Buffer{}))
}

func TestGeneratorsAreSeededAndValid(t *testing.T) {
	seed := int64(7)
	for _, id := range []string{"two_sum", "subsets", "top_k_frequent"} {
		t.Run(id, func(t *testing.T) {
			gen, ok := registry.Default.Generator(id)
			require.True(t, ok)
			a := slices.Collect(gen.Generate(20, &seed))
			b := slices.Collect(gen.Generate(20, &seed))
			require.Len(t, a, 20)
			assert.Equal(t, a, b)

			mod, err := registry.Default.Lookup(id)
			require.NoError(t, err)
			keys := mod.Solutions.Keys()
			for _, in := range a {
				want := run(t, id, keys[0], in)
				for _, k := range keys[1:] {
					check(t, id, k, in, strings.TrimSpace(want))
				}
			}
		})
	}
}

func TestGenerateStopsEarly(t *testing.T) {
	gen, ok := registry.Default.Generator("two_sum")
	require.True(t, ok)
	n := 0
	for range gen.Generate(100, nil) {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

func TestComplexityInputs(t *testing.T) {
	for _, id := range []string{"two_sum", "top_k_frequent"} {
		gen, ok := registry.Default.Generator(id)
		require.True(t, ok)
		cg, ok := gen.(registry.ComplexityGenerator)
		require.True(t, ok, id)
		in := cg.GenerateForComplexity(100)
		assert.NotEmpty(t, run(t, id, "default", in))
	}
	gen, _ := registry.Default.Generator("subsets")
	_, ok := gen.(registry.ComplexityGenerator)
	assert.False(t, ok)

	assert.Equal(t, "[48, 49]\n", run(t, "two_sum", "brute_force", mustGen(t, "two_sum", 50)))
}

func mustGen(t *testing.T, id string, n int) string {
	t.Helper()
	gen, _ := registry.Default.Generator(id)
	return gen.(registry.ComplexityGenerator).GenerateForComplexity(n)
}
