// Package memprof aggregates per-case memory samples into per-method
// peak, P95 and stability figures.
package memprof

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/programme-lv/neetrunner/internal/shape"
)

type MeasurementType string

const (
	// RSS is the resident set size of a solution subprocess.
	RSS MeasurementType = "rss"
	// Alloc is bytes allocated by an in-process run.
	Alloc MeasurementType = "alloc"
)

type Stability string

const (
	Stable        Stability = "stable"
	Moderate      Stability = "moderate"
	Spiky         Stability = "spiky"
	NotApplicable Stability = "N/A"
)

var ErrMixedMeasurement = errors.New("measurement types cannot be mixed")

type CaseMetrics struct {
	CaseName              string
	PeakBytes             *int64
	InputBytes            int
	InputShape            *shape.Shape
	SignaturePayloadBytes *int64
	Elapsed               time.Duration
	Measurement           MeasurementType
}

type MethodMetrics struct {
	MethodName  string
	AuxSpace    string
	Measurement MeasurementType
	Cases       []CaseMetrics

	PeakBytes        *int64
	P95Bytes         *int64
	StabilityPercent *float64
	Stability        Stability
}

func New(method, auxSpace string, mt MeasurementType) *MethodMetrics {
	return &MethodMetrics{
		MethodName:  method,
		AuxSpace:    auxSpace,
		Measurement: mt,
		Stability:   NotApplicable,
	}
}

// Add records one case and refreshes the aggregate.
func (m *MethodMetrics) Add(c CaseMetrics) error {
	if c.Measurement == "" {
		c.Measurement = m.Measurement
	}
	if c.Measurement != m.Measurement {
		return fmt.Errorf("case %s is %s, method %s is %s: %w",
			c.CaseName, c.Measurement, m.MethodName, m.Measurement, ErrMixedMeasurement)
	}
	m.Cases = append(m.Cases, c)
	m.recompute()
	return nil
}

func (m *MethodMetrics) peaks() []int64 {
	var out []int64
	for _, c := range m.Cases {
		if c.PeakBytes != nil {
			out = append(out, *c.PeakBytes)
		}
	}
	return out
}

func (m *MethodMetrics) recompute() {
	valid := m.peaks()
	if len(valid) == 0 {
		m.PeakBytes, m.P95Bytes, m.StabilityPercent = nil, nil, nil
		m.Stability = NotApplicable
		return
	}
	sort.Slice(valid, func(i, j int) bool { return valid[i] < valid[j] })
	peak := valid[len(valid)-1]
	idx := min(int(math.Floor(0.95*float64(len(valid)))), len(valid)-1)
	p95 := valid[idx]
	m.PeakBytes, m.P95Bytes = &peak, &p95

	if p95 == 0 {
		m.StabilityPercent = nil
		m.Stability = NotApplicable
		return
	}
	pct := float64(peak-p95) / float64(p95) * 100
	m.StabilityPercent = &pct
	m.Stability = Classify(pct)
}

func Classify(pct float64) Stability {
	switch {
	case pct < 5:
		return Stable
	case pct <= 15:
		return Moderate
	}
	return Spiky
}

// Samples returns the recorded peaks in case order, skipping cases
// without a measurement.
func (m *MethodMetrics) Samples() []int64 {
	return m.peaks()
}

// TopK returns up to k cases with the largest peaks, largest first.
func (m *MethodMetrics) TopK(k int) []CaseMetrics {
	var withPeak []CaseMetrics
	for _, c := range m.Cases {
		if c.PeakBytes != nil {
			withPeak = append(withPeak, c)
		}
	}
	sort.SliceStable(withPeak, func(i, j int) bool {
		return *withPeak[i].PeakBytes > *withPeak[j].PeakBytes
	})
	if k >= 0 && len(withPeak) > k {
		withPeak = withPeak[:k]
	}
	return withPeak
}

type Ranked struct {
	Method string
	Case   CaseMetrics
}

// GlobalTopK ranks cases across methods of the same measurement type.
func GlobalTopK(methods []*MethodMetrics, mt MeasurementType, k int) []Ranked {
	var all []Ranked
	for _, m := range methods {
		if m == nil || m.Measurement != mt {
			continue
		}
		for _, c := range m.TopK(-1) {
			all = append(all, Ranked{Method: m.MethodName, Case: c})
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		return *all[i].Case.PeakBytes > *all[j].Case.PeakBytes
	})
	if k >= 0 && len(all) > k {
		all = all[:k]
	}
	return all
}

const (
	kib = 1024
	mib = 1024 * 1024
)

// FormatBytes renders b as MB, KB or B; nil is "Unavailable".
func FormatBytes(b *int64) string {
	if b == nil {
		return "Unavailable"
	}
	v := *b
	switch {
	case v == 0:
		return "0B"
	case v >= mib:
		return fmt.Sprintf("%.1fMB", float64(v)/mib)
	case v >= kib:
		return fmt.Sprintf("%.1fKB", float64(v)/kib)
	}
	return fmt.Sprintf("%dB", v)
}
