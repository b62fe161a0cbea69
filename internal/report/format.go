package report

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/programme-lv/neetrunner/internal/memprof"
	"github.com/programme-lv/neetrunner/internal/tester"
)

// FormatMs renders d as fractional milliseconds, e.g. "1.25ms".
func FormatMs(d time.Duration) string {
	return fmt.Sprintf("%.2fms", float64(d.Microseconds())/1000)
}

func formatTally(t tester.Tally) string {
	if t.Run() == 0 && t.Skipped == 0 {
		return "-"
	}
	s := fmt.Sprintf("%d/%d", t.Passed, t.Run())
	if t.Skipped > 0 {
		s += fmt.Sprintf(" (%d skipped)", t.Skipped)
	}
	return s
}

func formatPassRate(t tester.Tally) string {
	if t.Run() == 0 {
		return formatTally(t)
	}
	pct := float64(t.Passed) / float64(t.Run()) * 100
	s := fmt.Sprintf("%d/%d (%.0f%%)", t.Passed, t.Run(), pct)
	if t.Skipped > 0 {
		s += fmt.Sprintf(" +%d skipped", t.Skipped)
	}
	return s
}

func formatStability(m *memprof.MethodMetrics) string {
	if m == nil {
		return "-"
	}
	if m.StabilityPercent == nil {
		return string(m.Stability)
	}
	return fmt.Sprintf("%s (%.1f%%)", m.Stability, *m.StabilityPercent)
}

func peakHeader(mt memprof.MeasurementType) string {
	if mt == memprof.Alloc {
		return "Peak Alloc"
	}
	return "Peak RSS"
}

// newTable returns a writer styled for caps.
func newTable(caps Caps, title string) table.Writer {
	t := table.NewWriter()
	switch {
	case caps.Unicode && caps.Color:
		t.SetStyle(table.StyleColoredDark)
	case caps.Unicode:
		t.SetStyle(table.StyleRounded)
	default:
		t.SetStyle(table.StyleDefault)
	}
	if title != "" {
		t.SetTitle(title)
	}
	return t
}

func alignRight(names ...string) []table.ColumnConfig {
	cfgs := make([]table.ColumnConfig, len(names))
	for i, n := range names {
		cfgs[i] = table.ColumnConfig{Name: n, Align: text.AlignRight, AlignHeader: text.AlignRight}
	}
	return cfgs
}
