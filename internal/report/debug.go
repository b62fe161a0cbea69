package report

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/programme-lv/neetrunner/internal/memprof"
	"github.com/programme-lv/neetrunner/internal/tester"
)

func topKHeader(mt memprof.MeasurementType) table.Row {
	return table.Row{"Rank", "Method", "Case ID", peakHeader(mt), "Time", "Input Scale", "Input Bytes"}
}

func topKRow(rank int, method string, c memprof.CaseMetrics) table.Row {
	return table.Row{
		rank,
		method,
		c.CaseName,
		memprof.FormatBytes(c.PeakBytes),
		FormatMs(c.Elapsed),
		c.InputShape.Label(),
		c.InputBytes,
	}
}

// TopKTable lists the k heaviest cases of one method.
func TopKTable(m *memprof.MethodMetrics, k int, caps Caps) string {
	t := newTable(caps, fmt.Sprintf("Top %d cases by %s: %s", k, peakHeader(m.Measurement), m.MethodName))
	t.AppendHeader(topKHeader(m.Measurement))
	for i, c := range m.TopK(k) {
		t.AppendRow(topKRow(i+1, m.MethodName, c))
	}
	t.SetColumnConfigs(alignRight(peakHeader(m.Measurement), "Time", "Input Bytes"))
	return t.Render()
}

// GlobalTopKTable ranks cases of the given measurement type across methods.
func GlobalTopKTable(methods []*memprof.MethodMetrics, mt memprof.MeasurementType, k int, caps Caps) string {
	t := newTable(caps, fmt.Sprintf("Top %d cases by %s: all methods", k, peakHeader(mt)))
	t.AppendHeader(topKHeader(mt))
	for i, r := range memprof.GlobalTopK(methods, mt, k) {
		t.AppendRow(topKRow(i+1, r.Method, r.Case))
	}
	t.SetColumnConfigs(alignRight(peakHeader(mt), "Time", "Input Bytes"))
	return t.Render()
}

// PerCaseTable lists every case of a method in execution order.
func PerCaseTable(r *tester.MethodResult, caps Caps) string {
	t := newTable(caps, "Cases: "+r.Method)
	t.AppendHeader(table.Row{"Case ID", "Status", "Mode", "Time", "Peak RSS", "Input Scale", "Input Bytes"})
	for _, c := range r.Cases() {
		t.AppendRow(table.Row{
			c.Name,
			string(c.Outcome),
			string(c.ValidationMode),
			FormatMs(c.Elapsed),
			memprof.FormatBytes(c.PeakRSSBytes),
			c.InputShape.Label(),
			c.InputBytes,
		})
	}
	t.SetColumnConfigs(alignRight("Time", "Peak RSS", "Input Bytes"))
	return t.Render()
}

// AllocTable shows allocation figures from complexity runs. They are
// never mixed into the RSS tables.
func AllocTable(results []*tester.MethodResult, caps Caps) string {
	t := newTable(caps, "Alloc (in-process complexity runs)")
	t.AppendHeader(table.Row{"Method", "Input", "Peak Alloc", "Median Time", "Input Bytes"})
	rows := 0
	for _, r := range results {
		if r.Complexity == nil || r.Complexity.Alloc == nil {
			continue
		}
		for _, c := range r.Complexity.Alloc.Cases {
			t.AppendRow(table.Row{r.Method, c.CaseName, memprof.FormatBytes(c.PeakBytes), FormatMs(c.Elapsed), c.InputBytes})
			rows++
		}
	}
	if rows == 0 {
		return ""
	}
	t.SetColumnConfigs(alignRight("Peak Alloc", "Median Time", "Input Bytes"))
	return t.Render()
}
