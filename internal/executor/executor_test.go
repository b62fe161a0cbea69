package executor_test

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/programme-lv/neetrunner/internal/cases"
	"github.com/programme-lv/neetrunner/internal/compare"
	"github.com/programme-lv/neetrunner/internal/executor"
	"github.com/programme-lv/neetrunner/internal/literal"
	"github.com/programme-lv/neetrunner/internal/registry"
	"github.com/programme-lv/neetrunner/internal/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain doubles as a fake solution: with NEETRUNNER_HELPER=1 the test
// binary behaves like "<self> solve <problem>".
func TestMain(m *testing.M) {
	if os.Getenv("NEETRUNNER_HELPER") == "1" {
		os.Exit(helper(os.Args[len(os.Args)-1]))
	}
	os.Exit(m.Run())
}

func helper(problem string) int {
	switch problem {
	case "echo":
		_, _ = io.Copy(os.Stdout, os.Stdin)
	case "sorted":
		fmt.Println("[[2,1], [1,2]]")
	case "set":
		fmt.Println("[[1],[2],[1],[2]]")
	case "method":
		fmt.Println(os.Getenv(executor.EnvSolutionMethod))
	case "shape":
		_, _ = io.Copy(io.Discard, os.Stdin)
		n := 99
		env, _ := shape.Envelope(&shape.Shape{N: &n})
		fmt.Fprintln(os.Stderr, "warming up")
		fmt.Fprintln(os.Stderr, env)
		fmt.Println("ok")
	case "hog":
		buf := make([]byte, 32<<20)
		for i := range buf {
			buf[i] = byte(i)
		}
		time.Sleep(50 * time.Millisecond)
		fmt.Println(buf[len(buf)-1])
	case "crash":
		fmt.Print("[0, 1]")
		return 3
	case "two_sum":
		fmt.Println("[0, 1]")
	}
	return 0
}

func newExecutor(t *testing.T) *executor.Executor {
	t.Helper()
	e := executor.NewWithCommand(nil, os.Args[0])
	e.ExtraEnv = []string{"NEETRUNNER_HELPER=1"}
	return e
}

func writeCase(t *testing.T, name, in string, out *string) cases.Case {
	t.Helper()
	dir := t.TempDir()
	c := cases.Case{Name: name, InputPath: filepath.Join(dir, name+".in")}
	require.NoError(t, os.WriteFile(c.InputPath, []byte(in), 0o644))
	if out != nil {
		c.ExpectedPath = filepath.Join(dir, name+".out")
		require.NoError(t, os.WriteFile(c.ExpectedPath, []byte(*out), 0o644))
	}
	return c
}

func ptr(s string) *string { return &s }

func request(problem string, mode compare.Mode) executor.Request {
	return executor.Request{
		Problem: problem,
		Module:  &registry.Module{ID: problem},
		Mode:    mode,
	}
}

func TestExactSingleCase(t *testing.T) {
	e := newExecutor(t)
	c := writeCase(t, "echo_1", "Hello World\n", ptr("Hello World\n"))

	res := e.RunCase(context.Background(), request("echo", compare.Exact), c)
	assert.Equal(t, executor.Passed, res.Outcome)
	assert.Equal(t, executor.ModeExact, res.ValidationMode)
	assert.GreaterOrEqual(t, res.Elapsed, time.Duration(0))
	assert.Nil(t, res.PeakRSSBytes)
	assert.Equal(t, 12, res.InputBytes)
	assert.Equal(t, "Hello World\n", res.Actual)
}

func TestSortedAndSetModes(t *testing.T) {
	e := newExecutor(t)

	c := writeCase(t, "sorted_1", "x\n", ptr("[[1,2],[2,1]]\n"))
	res := e.RunCase(context.Background(), request("sorted", compare.Sorted), c)
	assert.True(t, res.Passed())
	assert.Equal(t, executor.ModeSorted, res.ValidationMode)

	c = writeCase(t, "set_1", "x\n", ptr("[[1],[2]]\n"))
	res = e.RunCase(context.Background(), request("set", compare.Set), c)
	assert.True(t, res.Passed())
	assert.Equal(t, executor.ModeSet, res.ValidationMode)
}

func twoSumJudge(actual literal.Value, _ *literal.Value, input string) bool {
	lines := strings.Split(strings.TrimSpace(input), "\n")
	nums, _ := literal.MustParse(lines[0]).AsInts()
	target, _ := literal.MustParse(lines[1]).AsInt()
	idx, ok := actual.AsInts()
	if !ok || len(idx) != 2 || idx[0] == idx[1] {
		return false
	}
	for _, i := range idx {
		if i < 0 || i >= len(nums) {
			return false
		}
	}
	return int64(nums[idx[0]]+nums[idx[1]]) == target
}

func TestJudgeWithoutExpected(t *testing.T) {
	e := newExecutor(t)
	req := request("two_sum", compare.Exact)
	req.Module.Judge = twoSumJudge
	c := writeCase(t, "case_1", "[2,7,11,15]\n9\n", nil)

	res := e.RunCase(context.Background(), req, c)
	assert.Equal(t, executor.Passed, res.Outcome)
	assert.Equal(t, executor.ModeJudgeOnly, res.ValidationMode)
	assert.Nil(t, res.Expected)

	c = writeCase(t, "case_2", "[2,7,11,15]\n9\n", ptr("[1, 0]\n"))
	res = e.RunCase(context.Background(), req, c)
	assert.Equal(t, executor.Passed, res.Outcome)
	assert.Equal(t, executor.ModeJudge, res.ValidationMode)
}

func TestMissingExpectedWithoutJudgeSkips(t *testing.T) {
	e := executor.NewWithCommand(nil, "/nonexistent/solver")
	c := writeCase(t, "case_1", "[2,7,11,15]\n9\n", nil)

	res := e.RunCase(context.Background(), request("two_sum", compare.Exact), c)
	assert.Equal(t, executor.Skipped, res.Outcome)
	assert.Equal(t, executor.ModeSkip, res.ValidationMode)
	assert.Nil(t, res.Expected)
	assert.Empty(t, res.Actual)
}

func TestMissingSolutionFile(t *testing.T) {
	e := executor.NewWithCommand(nil, "/nonexistent/solver")
	c := writeCase(t, "echo_1", "a\n", ptr("a\n"))

	res := e.RunCase(context.Background(), request("echo", compare.Exact), c)
	assert.Equal(t, executor.Failed, res.Outcome)
	assert.Equal(t, executor.ModeError, res.ValidationMode)
	assert.Contains(t, res.Reason, "not found")
}

func TestMethodIsPassedThroughEnv(t *testing.T) {
	e := newExecutor(t)
	req := request("method", compare.Exact)
	req.Method = "brute_force"
	c := writeCase(t, "method_1", "\n", ptr("brute_force\n"))

	res := e.RunCase(context.Background(), req, c)
	assert.True(t, res.Passed(), "actual: %q", res.Actual)
}

func TestShapeEnvelopeOverridesInference(t *testing.T) {
	e := newExecutor(t)
	c := writeCase(t, "shape_1", "[1,2,3]\n", ptr("ok\n"))

	res := e.RunCase(context.Background(), request("shape", compare.Exact), c)
	require.True(t, res.Passed())
	require.NotNil(t, res.InputShape)
	assert.Equal(t, "n=99", res.InputShape.Label())
}

func TestNonZeroExitStillCompared(t *testing.T) {
	e := newExecutor(t)
	c := writeCase(t, "crash_1", "\n", ptr("[0, 1]"))

	res := e.RunCase(context.Background(), request("crash", compare.Exact), c)
	assert.True(t, res.Passed())
	assert.Equal(t, 3, res.ExitCode)
}

func TestProfileMemory(t *testing.T) {
	if _, err := os.Stat("/proc/self/stat"); err != nil {
		t.Skip("procfs not available")
	}
	e := newExecutor(t)
	req := request("hog", compare.Exact)
	req.ProfileMemory = true
	c := writeCase(t, "hog_1", "\n", ptr("255\n"))

	res := e.RunCase(context.Background(), req, c)
	require.True(t, res.Passed(), "actual: %q", res.Actual)
	require.NotNil(t, res.PeakRSSBytes)
	assert.Greater(t, *res.PeakRSSBytes, int64(32<<20))
}

func TestGeneratedCaseNeedsJudge(t *testing.T) {
	e := newExecutor(t)

	res := e.RunGeneratedCase(context.Background(), request("two_sum", compare.Exact), "gen_1", "[3,3]\n6\n")
	assert.Equal(t, executor.Skipped, res.Outcome)
	assert.True(t, res.Generated)

	req := request("two_sum", compare.Exact)
	req.Module.Judge = twoSumJudge
	res = e.RunGeneratedCase(context.Background(), req, "gen_1", "[3,3]\n6\n")
	assert.Equal(t, executor.Passed, res.Outcome)
	assert.Equal(t, executor.ModeJudgeOnly, res.ValidationMode)
	require.NotNil(t, res.InputShape)
	assert.Equal(t, "n=2", res.InputShape.Label())
}
