package report

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/programme-lv/neetrunner/internal/tester"
)

const barWidth = 30

var asciiBorder = lipgloss.Border{
	Top:         "-",
	Bottom:      "-",
	Left:        "|",
	Right:       "|",
	TopLeft:     "+",
	TopRight:    "+",
	BottomLeft:  "+",
	BottomRight: "+",
}

func (c Caps) border() lipgloss.Border {
	if c.Unicode {
		return lipgloss.RoundedBorder()
	}
	return asciiBorder
}

func (c Caps) barGlyphs() (full, empty string) {
	if c.Unicode {
		return "█", "░"
	}
	return "#", "."
}

// barLen scales avg against the slowest method. Non-zero times always
// get at least one cell.
func barLen(avg, slowest time.Duration) int {
	if slowest <= 0 || avg <= 0 {
		return 0
	}
	n := int(math.Round(float64(avg) / float64(slowest) * barWidth))
	return min(max(n, 1), barWidth)
}

// BarChart draws one bar per method, proportional to average time.
func BarChart(results []*tester.MethodResult, caps Caps) string {
	var slowest time.Duration
	nameW := 0
	for _, r := range results {
		slowest = max(slowest, r.AvgTime())
		nameW = max(nameW, len([]rune(r.Method)))
	}
	full, empty := caps.barGlyphs()

	lines := []string{"Average time per case", ""}
	for _, r := range results {
		avg := r.AvgTime()
		n := barLen(avg, slowest)
		bar := strings.Repeat(full, n) + strings.Repeat(empty, barWidth-n)
		pad := strings.Repeat(" ", nameW-len([]rune(r.Method)))
		lines = append(lines, fmt.Sprintf("%s%s  %s  %s", r.Method, pad, bar, FormatMs(avg)))
	}

	box := lipgloss.NewStyle().Border(caps.border()).Padding(0, 1)
	if caps.Color {
		box = box.BorderForeground(lipgloss.Color("63"))
	}
	out := box.Render(strings.Join(lines, "\n"))
	if legend := approachLegend(results); legend != "" {
		out += "\n" + legend
	}
	return out
}

func approachLegend(results []*tester.MethodResult) string {
	var sb strings.Builder
	for _, r := range results {
		if r.Info.Approach == "" {
			continue
		}
		if sb.Len() == 0 {
			sb.WriteString("Approaches:\n")
		}
		fmt.Fprintf(&sb, "  %s: %s\n", r.Method, r.Info.Approach)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
