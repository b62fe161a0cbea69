// Package report renders the comparative output once all methods of a
// problem have run.
package report

import (
	"fmt"
	"io"

	"github.com/programme-lv/neetrunner/internal/memprof"
	"github.com/programme-lv/neetrunner/internal/tester"
)

type Options struct {
	Memory        bool
	MemoryTrace   bool
	TraceCompare  bool
	MemoryPerCase bool
	// TopK > 0 prints the debug top-K tables.
	TopK int
}

type Reporter struct {
	w    io.Writer
	caps Caps
	opts Options
}

func New(w io.Writer, caps Caps, opts Options) *Reporter {
	return &Reporter{w: w, caps: caps, opts: opts}
}

func (r *Reporter) section(s string) {
	if s == "" {
		return
	}
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, s)
}

// Render writes every enabled view for results, in driven order.
func (r *Reporter) Render(results []*tester.MethodResult) {
	if len(results) == 0 {
		return
	}
	r.section(SummaryTable(results, r.opts.Memory, r.caps))
	r.notes(results)
	r.section(BarChart(results, r.caps))

	if r.opts.MemoryTrace {
		r.section(MemoryTrace(results, r.caps))
	}
	if r.opts.TraceCompare {
		r.section(TraceComparison(results, r.caps))
	}
	if r.opts.MemoryPerCase {
		for _, res := range results {
			r.section(PerCaseTable(res, r.caps))
		}
	}
	if r.opts.TopK > 0 {
		r.topK(results)
	}
	r.section(AllocTable(results, r.caps))
}

func (r *Reporter) notes(results []*tester.MethodResult) {
	var lines []string
	for _, res := range results {
		if res.Complexity != nil && res.Complexity.Details != "" {
			lines = append(lines, fmt.Sprintf("%s: %s", res.Method, res.Complexity.Details))
		}
		if res.ComplexityNote != "" {
			lines = append(lines, fmt.Sprintf("%s: %s", res.Method, res.ComplexityNote))
		}
		for _, p := range res.SavedFailed {
			lines = append(lines, fmt.Sprintf("%s: saved failing input to %s", res.Method, p))
		}
	}
	if len(lines) == 0 {
		return
	}
	fmt.Fprintln(r.w)
	for _, l := range lines {
		fmt.Fprintln(r.w, l)
	}
}

func (r *Reporter) topK(results []*tester.MethodResult) {
	var rss, alloc []*memprof.MethodMetrics
	for _, res := range results {
		if res.Memory != nil && len(res.Memory.Samples()) > 0 {
			rss = append(rss, res.Memory)
			r.section(TopKTable(res.Memory, r.opts.TopK, r.caps))
		}
		if res.Complexity != nil && res.Complexity.Alloc != nil && len(res.Complexity.Alloc.Samples()) > 0 {
			alloc = append(alloc, res.Complexity.Alloc)
			r.section(TopKTable(res.Complexity.Alloc, r.opts.TopK, r.caps))
		}
	}
	if len(rss) > 1 {
		r.section(GlobalTopKTable(rss, memprof.RSS, r.opts.TopK, r.caps))
	}
	if len(alloc) > 1 {
		r.section(GlobalTopKTable(alloc, memprof.Alloc, r.opts.TopK, r.caps))
	}
}
