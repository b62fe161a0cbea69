package tester_test

import (
	"context"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/programme-lv/neetrunner/internal/compare"
	"github.com/programme-lv/neetrunner/internal/complexity"
	"github.com/programme-lv/neetrunner/internal/executor"
	"github.com/programme-lv/neetrunner/internal/literal"
	"github.com/programme-lv/neetrunner/internal/registry"
	"github.com/programme-lv/neetrunner/internal/tester"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if os.Getenv("NEETRUNNER_HELPER") == "1" {
		helper(os.Args[len(os.Args)-1], os.Getenv(executor.EnvSolutionMethod))
		os.Exit(0)
	}
	os.Exit(m.Run())
}

func helper(problem, method string) {
	switch problem {
	case "echo":
		if method == "broken" {
			fmt.Println("wrong")
			return
		}
		_, _ = io.Copy(os.Stdout, os.Stdin)
	case "legacy":
		if method == "" {
			method = "<none>"
		}
		fmt.Println(method)
	case "two_sum":
		fmt.Println("[0, 1]")
	}
}

var noop = registry.SolverFunc(func(io.Reader, io.Writer) error { return nil })

type event struct {
	kind   string
	method string
	name   string
}

type recorder struct {
	events   []event
	finished []*tester.MethodResult
}

func (r *recorder) StartMethod(_, method string, _ registry.Solution) {
	r.events = append(r.events, event{"start", method, ""})
}
func (r *recorder) FinishCase(method string, res *executor.CaseResult) {
	r.events = append(r.events, event{"pass", method, res.Name})
}
func (r *recorder) FailCase(method string, res *executor.CaseResult) {
	r.events = append(r.events, event{"fail", method, res.Name})
}
func (r *recorder) SkipCase(method string, res *executor.CaseResult) {
	r.events = append(r.events, event{"skip", method, res.Name})
}
func (r *recorder) FinishMethod(res *tester.MethodResult) {
	r.events = append(r.events, event{"finish", res.Method, ""})
	r.finished = append(r.finished, res)
}

type twoSumGen struct{ inputs []string }

func (g twoSumGen) Generate(count int, _ *int64) iter.Seq[string] {
	return func(yield func(string) bool) {
		for i := 0; i < count && i < len(g.inputs); i++ {
			if !yield(g.inputs[i]) {
				return
			}
		}
	}
}

func twoSumJudge(actual literal.Value, _ *literal.Value, input string) bool {
	lines := strings.Split(strings.TrimSpace(input), "\n")
	nums, _ := literal.MustParse(lines[0]).AsInts()
	target, _ := literal.MustParse(lines[1]).AsInt()
	idx, ok := actual.AsInts()
	return ok && len(idx) == 2 && int64(nums[idx[0]]+nums[idx[1]]) == target
}

func setup(t *testing.T) (*tester.Tester, *recorder, string) {
	t.Helper()
	reg := registry.New()
	reg.Register(&registry.Module{
		ID: "echo",
		Solutions: registry.Metadata{
			"default": {Class: "Solution", Method: "echo", Complexity: "O(n) time, O(1) space", Solver: noop},
			"broken":  {Class: "Solution", Method: "echoBroken", Solver: noop},
		},
	})
	reg.Register(&registry.Module{
		ID:        "legacy",
		Solutions: registry.Metadata{"fast": {Class: "Solution"}},
		Solve:     noop,
	})
	reg.Register(&registry.Module{
		ID:          "two_sum",
		CompareMode: compare.Exact,
		Judge:       twoSumJudge,
		Solutions: registry.Metadata{
			"default": {Class: "Solution", Method: "twoSum", Solver: noop},
		},
	})
	reg.RegisterGenerator("two_sum", twoSumGen{inputs: []string{"[1,2,3]\n5", "[3,4]\n7\n"}})

	dir := t.TempDir()
	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	write("echo_1.in", "Hello World\n")
	write("echo_1.out", "Hello World\n")
	write("echo_2.in", "no answer\n")
	write("legacy_1.in", "x\n")
	write("legacy_1.out", "<none>\n")

	exec := executor.NewWithCommand(nil, os.Args[0])
	exec.ExtraEnv = []string{"NEETRUNNER_HELPER=1"}
	rec := &recorder{}
	loader := registry.NewLoader(reg, "", nil)
	est := complexity.New(complexity.Options{}, nil)
	return tester.NewTester(loader, exec, est, rec, nil), rec, dir
}

func TestRunDefaultMethod(t *testing.T) {
	tst, rec, dir := setup(t)

	results, err := tst.RunProblem(context.Background(), tester.Options{Problem: "echo", TestsDir: dir})
	require.NoError(t, err)
	require.Len(t, results, 1)

	res := results[0]
	assert.Equal(t, "default", res.Method)
	assert.False(t, res.Legacy)
	assert.Equal(t, tester.Tally{Passed: 1, Skipped: 1}, res.StaticTally())
	assert.Equal(t, 1, res.Modes[executor.ModeExact])
	assert.Equal(t, 1, res.Modes[executor.ModeSkip])
	assert.Len(t, res.Times, 1)
	assert.Equal(t, "O(1)", res.Memory.AuxSpace)
	assert.Len(t, res.Memory.Cases, 2)
	assert.True(t, res.AllPassed())

	assert.Equal(t, []event{
		{"start", "default", ""},
		{"pass", "default", "echo_1"},
		{"skip", "default", "echo_2"},
		{"finish", "default", ""},
	}, rec.events)
}

func TestRunAllMethodsInOrder(t *testing.T) {
	tst, rec, dir := setup(t)

	results, err := tst.RunProblem(context.Background(), tester.Options{Problem: "echo", TestsDir: dir, All: true})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "default", results[0].Method)
	assert.Equal(t, "broken", results[1].Method)
	assert.True(t, results[0].AllPassed())
	assert.Equal(t, tester.Tally{Failed: 1, Skipped: 1}, results[1].StaticTally())
	assert.Len(t, rec.finished, 2)
}

func TestUnknownMethod(t *testing.T) {
	tst, _, dir := setup(t)

	_, err := tst.RunProblem(context.Background(), tester.Options{Problem: "echo", TestsDir: dir, Method: "fastest"})
	require.ErrorIs(t, err, tester.ErrUnknownMethod)
	assert.Contains(t, err.Error(), "default, broken")
}

func TestUnknownProblem(t *testing.T) {
	tst, _, dir := setup(t)

	_, err := tst.RunProblem(context.Background(), tester.Options{Problem: "nope", TestsDir: dir})
	assert.ErrorIs(t, err, registry.ErrNotFound)
}

func TestLegacyPath(t *testing.T) {
	tst, _, dir := setup(t)

	results, err := tst.RunProblem(context.Background(), tester.Options{Problem: "legacy", TestsDir: dir, Method: "fast"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].Legacy)
	assert.Equal(t, "default", results[0].Method)
	// no SOLUTION_METHOD is passed on the legacy path
	assert.Equal(t, tester.Tally{Passed: 1}, results[0].StaticTally())
}

func TestGeneratedCasesSaveFailures(t *testing.T) {
	tst, rec, dir := setup(t)
	seed := int64(42)

	results, err := tst.RunProblem(context.Background(), tester.Options{
		Problem:       "two_sum",
		TestsDir:      dir,
		GenerateCount: 5,
		Seed:          &seed,
		SaveFailed:    true,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)

	res := results[0]
	require.Len(t, res.Generated, 2)
	assert.Equal(t, "gen_1", res.Generated[0].Name)
	assert.Equal(t, executor.Failed, res.Generated[0].Outcome)
	assert.Equal(t, executor.Passed, res.Generated[1].Outcome)
	assert.Equal(t, 2, res.Modes[executor.ModeJudgeOnly])
	assert.False(t, res.AllPassed())

	require.Len(t, res.SavedFailed, 1)
	assert.Equal(t, filepath.Join(dir, "two_sum_failed_1.in"), res.SavedFailed[0])
	data, err := os.ReadFile(res.SavedFailed[0])
	require.NoError(t, err)
	assert.Equal(t, "[1,2,3]\n5\n", string(data))

	assert.Contains(t, rec.events, event{"fail", "default", "gen_1"})
}

func TestEstimateUnavailableIsNoted(t *testing.T) {
	tst, _, dir := setup(t)

	results, err := tst.RunProblem(context.Background(), tester.Options{Problem: "two_sum", TestsDir: dir, Estimate: true})
	require.NoError(t, err)
	assert.Nil(t, results[0].Complexity)
	assert.Contains(t, results[0].ComplexityNote, "unavailable")
}

func TestAuxSpace(t *testing.T) {
	assert.Equal(t, "O(1)", tester.AuxSpace("O(n) time, O(1) space"))
	assert.Equal(t, "O(n)", tester.AuxSpace("Time: O(n log n), Space: O(n)"))
	assert.Equal(t, "O(k)", tester.AuxSpace("O(n) time | O(k) auxiliary space"))
	assert.Equal(t, "", tester.AuxSpace("O(n)"))
	assert.Equal(t, "", tester.AuxSpace(""))
}
