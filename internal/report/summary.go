package report

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/programme-lv/neetrunner/internal/memprof"
	"github.com/programme-lv/neetrunner/internal/tester"
)

type columns struct {
	split     bool // Static + Generated instead of Pass Rate
	estimated bool // Declared + Estimated instead of Complexity
	memory    bool
}

func selectColumns(results []*tester.MethodResult, memoryRequested bool) columns {
	c := columns{memory: memoryRequested}
	for _, r := range results {
		if len(r.Generated) > 0 {
			c.split = true
		}
		if r.Complexity != nil {
			c.estimated = true
		}
		if r.Memory != nil && r.Memory.PeakBytes != nil {
			c.memory = true
		}
	}
	return c
}

func (c columns) header() table.Row {
	row := table.Row{"Method", "Avg Time"}
	if c.split {
		row = append(row, "Static", "Generated")
	} else {
		row = append(row, "Pass Rate")
	}
	if c.estimated {
		row = append(row, "Declared", "Estimated")
	} else {
		row = append(row, "Complexity")
	}
	if c.memory {
		row = append(row, "Peak RSS", "P95 RSS")
	}
	return row
}

func (c columns) row(r *tester.MethodResult) table.Row {
	row := table.Row{r.Method, FormatMs(r.AvgTime())}
	if c.split {
		row = append(row, formatTally(r.StaticTally()), formatTally(r.GeneratedTally()))
	} else {
		row = append(row, formatPassRate(r.Total()))
	}
	declared := r.Info.Complexity
	if declared == "" {
		declared = "-"
	}
	if c.estimated {
		row = append(row, declared, formatEstimate(r))
	} else {
		row = append(row, declared)
	}
	if c.memory {
		var peak, p95 *int64
		if r.Memory != nil {
			peak, p95 = r.Memory.PeakBytes, r.Memory.P95Bytes
		}
		row = append(row, memprof.FormatBytes(peak), memprof.FormatBytes(p95))
	}
	return row
}

func formatEstimate(r *tester.MethodResult) string {
	if r.Complexity == nil {
		if r.ComplexityNote != "" {
			return "n/a"
		}
		return "-"
	}
	return fmt.Sprintf("%s (%.0f%%)", r.Complexity.Complexity, r.Complexity.Confidence*100)
}

// SummaryTable renders one row per method in driven order.
func SummaryTable(results []*tester.MethodResult, memoryRequested bool, caps Caps) string {
	cols := selectColumns(results, memoryRequested)
	t := newTable(caps, "Benchmark")
	t.AppendHeader(cols.header())
	for _, r := range results {
		t.AppendRow(cols.row(r))
	}
	t.SetColumnConfigs(alignRight("Avg Time", "Peak RSS", "P95 RSS"))
	return t.Render()
}
