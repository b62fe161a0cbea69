package report_test

import (
	"bytes"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/programme-lv/neetrunner/internal/complexity"
	"github.com/programme-lv/neetrunner/internal/executor"
	"github.com/programme-lv/neetrunner/internal/memprof"
	"github.com/programme-lv/neetrunner/internal/registry"
	"github.com/programme-lv/neetrunner/internal/report"
	"github.com/programme-lv/neetrunner/internal/tester"
)

var unicodeCaps = report.Caps{Unicode: true, Width: 100}

func bytesp(v int64) *int64 { return &v }

func method(name string, avg time.Duration, outcomes ...executor.Outcome) *tester.MethodResult {
	r := &tester.MethodResult{
		Problem: "two_sum",
		Method:  name,
		Info:    registry.Solution{Class: "Solution", Method: "twoSum", Complexity: "O(n)"},
	}
	for i, o := range outcomes {
		r.Static = append(r.Static, executor.CaseResult{Name: "two_sum_" + string(rune('1'+i)), Outcome: o, Elapsed: avg})
		r.Times = append(r.Times, avg)
	}
	return r
}

func withMemory(r *tester.MethodResult, peaks ...int64) *tester.MethodResult {
	r.Memory = memprof.New(r.Method, "", memprof.RSS)
	for i, p := range peaks {
		_ = r.Memory.Add(memprof.CaseMetrics{CaseName: r.Method + "_" + string(rune('a'+i)), PeakBytes: bytesp(p), Elapsed: time.Millisecond})
	}
	return r
}

func TestSummaryTablePassRateColumns(t *testing.T) {
	res := []*tester.MethodResult{method("default", 2*time.Millisecond, executor.Passed, executor.Passed, executor.Failed)}
	out := strings.ToLower(report.SummaryTable(res, false, report.ASCII))

	assert.Contains(t, out, "pass rate")
	assert.Contains(t, out, "complexity")
	assert.Contains(t, out, "2/3 (67%)")
	assert.Contains(t, out, "2.00ms")
	assert.NotContains(t, out, "generated")
	assert.NotContains(t, out, "peak rss")
}

func TestSummaryTableDynamicColumns(t *testing.T) {
	a := method("default", time.Millisecond, executor.Passed)
	a.Generated = []executor.CaseResult{{Name: "gen_1", Outcome: executor.Passed, Generated: true}}
	a.Complexity = &complexity.Result{Complexity: "O(n)", Confidence: 0.91}
	b := withMemory(method("brute_force", 3*time.Millisecond, executor.Passed), 4<<20)

	out := report.SummaryTable([]*tester.MethodResult{a, b}, false, report.ASCII)
	lower := strings.ToLower(out)

	for _, col := range []string{"static", "generated", "declared", "estimated", "peak rss", "p95 rss"} {
		assert.Contains(t, lower, col)
	}
	assert.NotContains(t, lower, "pass rate")
	assert.Contains(t, out, "O(n) (91%)")
	assert.Contains(t, out, "4.0MB")
	assert.Contains(t, out, "Unavailable")
	assert.Less(t, strings.Index(out, "default"), strings.Index(out, "brute_force"))
}

func TestBarChart(t *testing.T) {
	fast := method("default", time.Millisecond, executor.Passed)
	fast.Info.Approach = "hash map"
	slow := method("brute_force", 4*time.Millisecond, executor.Passed)
	res := []*tester.MethodResult{fast, slow}

	ascii := report.BarChart(res, report.ASCII)
	assert.Contains(t, ascii, strings.Repeat("#", 30))
	assert.Contains(t, ascii, "+-")
	assert.NotContains(t, ascii, "█")
	assert.Contains(t, ascii, "Approaches:\n  default: hash map")
	assert.NotContains(t, ascii, "brute_force: ")

	uni := report.BarChart(res, unicodeCaps)
	assert.Contains(t, uni, strings.Repeat("█", 30))
	assert.Contains(t, uni, "╭")
	assert.Contains(t, uni, "░")
}

func TestBarChartWithoutApproaches(t *testing.T) {
	out := report.BarChart([]*tester.MethodResult{method("default", 0)}, report.ASCII)
	assert.NotContains(t, out, "Approaches")
	assert.Contains(t, out, strings.Repeat(".", 30))
}

func TestSparkline(t *testing.T) {
	assert.Equal(t, "▁▂▃▄▅▆▇█", report.Sparkline([]int64{1, 2, 3, 4, 5, 6, 7, 8}, unicodeCaps))
	assert.Equal(t, "_#", report.Sparkline([]int64{10, 20}, report.ASCII))
	assert.Equal(t, "▄▄▄", report.Sparkline([]int64{5, 5, 5}, unicodeCaps))
	assert.Equal(t, "", report.Sparkline(nil, unicodeCaps))

	long := make([]int64, 200)
	for i := range long {
		long[i] = int64(i)
	}
	assert.Equal(t, 60, utf8.RuneCountInString(report.Sparkline(long, unicodeCaps)))
}

func TestTraceComparison(t *testing.T) {
	heavy := withMemory(method("heavy", time.Millisecond), 15<<20, 12<<20)
	light := withMemory(method("light", time.Millisecond), 10<<20)
	none := method("none", time.Millisecond)

	out := report.TraceComparison([]*tester.MethodResult{heavy, none, light}, report.ASCII)

	assert.Contains(t, out, "best")
	assert.Contains(t, out, "+5.0MB (+50.0%)")
	light1 := strings.Index(out, "light")
	assert.Less(t, light1, strings.Index(out, "heavy"))
	assert.Less(t, strings.Index(out, "heavy"), strings.Index(out, "none"))
}

func TestMemoryTrace(t *testing.T) {
	r := withMemory(method("default", time.Millisecond), 1<<20, 2<<20)
	out := report.MemoryTrace([]*tester.MethodResult{r}, unicodeCaps)
	assert.Contains(t, out, "▁█")
	assert.Contains(t, out, "2.0MB")
}

func TestRenderDebugViews(t *testing.T) {
	a := withMemory(method("default", time.Millisecond, executor.Passed), 3<<20, 1<<20, 2<<20)
	b := withMemory(method("alt", time.Millisecond, executor.Passed), 5<<20)
	alloc := memprof.New("default", "", memprof.Alloc)
	require.NoError(t, alloc.Add(memprof.CaseMetrics{CaseName: "n=100", PeakBytes: bytesp(2048), Measurement: memprof.Alloc}))
	a.Complexity = &complexity.Result{Complexity: "O(n)", Confidence: 1, Alloc: alloc}
	b.ComplexityNote = "complexity estimation unavailable: generator has no GenerateForComplexity"

	var buf bytes.Buffer
	report.New(&buf, report.ASCII, report.Options{Memory: true, MemoryPerCase: true, TopK: 2}).
		Render([]*tester.MethodResult{a, b})
	out := strings.ToLower(buf.String())

	assert.Contains(t, out, "top 2 cases by peak rss: default")
	assert.Contains(t, out, "top 2 cases by peak rss: all methods")
	assert.Contains(t, out, "top 2 cases by peak alloc: default")
	assert.NotContains(t, out, "top 2 cases by peak alloc: all methods")
	assert.Contains(t, out, "cases: alt")
	assert.Contains(t, out, "alloc (in-process complexity runs)")
	assert.Contains(t, out, "2.0kb")
	assert.Contains(t, out, "alt: complexity estimation unavailable")
}

func TestRenderNothing(t *testing.T) {
	var buf bytes.Buffer
	report.New(&buf, report.ASCII, report.Options{}).Render(nil)
	assert.Empty(t, buf.String())
}
