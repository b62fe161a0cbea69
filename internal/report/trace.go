package report

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/programme-lv/neetrunner/internal/memprof"
	"github.com/programme-lv/neetrunner/internal/tester"
)

var (
	sparkUnicode = []rune("▁▂▃▄▅▆▇█")
	sparkASCII   = []rune("_.-~=+*#")
)

const maxSparkWidth = 60

// Sparkline maps samples onto eight levels between their min and max.
// Series longer than the display width are bucketed by max.
func Sparkline(samples []int64, caps Caps) string {
	if len(samples) == 0 {
		return ""
	}
	levels := sparkASCII
	if caps.Unicode {
		levels = sparkUnicode
	}
	samples = downsample(samples, maxSparkWidth)
	lo, hi := slices.Min(samples), slices.Max(samples)
	top := len(levels) - 1

	out := make([]rune, len(samples))
	for i, s := range samples {
		idx := top / 2
		if hi > lo {
			idx = int(math.Round(float64(s-lo) / float64(hi-lo) * float64(top)))
		}
		out[i] = levels[idx]
	}
	return string(out)
}

func downsample(samples []int64, width int) []int64 {
	if len(samples) <= width {
		return samples
	}
	out := make([]int64, width)
	for i := range width {
		start := i * len(samples) / width
		end := (i + 1) * len(samples) / width
		out[i] = slices.Max(samples[start:end])
	}
	return out
}

// MemoryTrace renders one sparkline per method over its per-case peaks.
func MemoryTrace(results []*tester.MethodResult, caps Caps) string {
	t := newTable(caps, "Memory Trace")
	t.AppendHeader(table.Row{"Method", "Trace", "Cases", "Peak RSS", "P95 RSS", "Stability"})
	for _, r := range results {
		m := r.Memory
		if m == nil || m.Measurement != memprof.RSS {
			t.AppendRow(table.Row{r.Method, "", 0, memprof.FormatBytes(nil), memprof.FormatBytes(nil), "-"})
			continue
		}
		samples := m.Samples()
		t.AppendRow(table.Row{
			r.Method,
			Sparkline(samples, caps),
			len(samples),
			memprof.FormatBytes(m.PeakBytes),
			memprof.FormatBytes(m.P95Bytes),
			formatStability(m),
		})
	}
	t.SetColumnConfigs(alignRight("Peak RSS", "P95 RSS"))
	return t.Render()
}

// TraceComparison ranks methods by peak RSS, lowest first, and shows the
// difference to the best. Methods without a peak go last.
func TraceComparison(results []*tester.MethodResult, caps Caps) string {
	var measured, unmeasured []*tester.MethodResult
	for _, r := range results {
		if r.Memory != nil && r.Memory.Measurement == memprof.RSS && r.Memory.PeakBytes != nil {
			measured = append(measured, r)
		} else {
			unmeasured = append(unmeasured, r)
		}
	}
	sort.SliceStable(measured, func(i, j int) bool {
		return *measured[i].Memory.PeakBytes < *measured[j].Memory.PeakBytes
	})

	t := newTable(caps, "Memory Comparison")
	t.AppendHeader(table.Row{"Rank", "Method", "Peak RSS", "P95 RSS", "Stability", "Δ vs best"})
	for i, r := range measured {
		best := *measured[0].Memory.PeakBytes
		t.AppendRow(table.Row{
			i + 1,
			r.Method,
			memprof.FormatBytes(r.Memory.PeakBytes),
			memprof.FormatBytes(r.Memory.P95Bytes),
			formatStability(r.Memory),
			formatDelta(*r.Memory.PeakBytes, best, i == 0),
		})
	}
	for _, r := range unmeasured {
		t.AppendRow(table.Row{"-", r.Method, memprof.FormatBytes(nil), memprof.FormatBytes(nil), "-", "-"})
	}
	t.SetColumnConfigs(alignRight("Peak RSS", "P95 RSS", "Δ vs best"))
	return t.Render()
}

func formatDelta(peak, best int64, isBest bool) string {
	if isBest {
		return "best"
	}
	diff := peak - best
	s := "+" + memprof.FormatBytes(&diff)
	if best > 0 {
		s += fmt.Sprintf(" (+%.1f%%)", float64(diff)/float64(best)*100)
	}
	return s
}
