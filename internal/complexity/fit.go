package complexity

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

type class struct {
	label string
	f     func(n float64) float64
}

var (
	constant     = class{"O(1)", nil}
	logarithmic  = class{"O(log n)", math.Log}
	linear       = class{"O(n)", func(n float64) float64 { return n }}
	linearithmic = class{"O(n log n)", func(n float64) float64 { return n * math.Log(n) }}
	quadratic    = class{"O(n²)", func(n float64) float64 { return n * n }}
	cubic        = class{"O(n³)", func(n float64) float64 { return n * n * n }}
	exponential  = class{"O(2^n)", nil}
)

// exponentialLimit is the largest size for which O(2^n) is considered.
const exponentialLimit = 30

type fit struct {
	class    class
	residual float64
}

// fitAll fits t = a + b·f(n) for every class and returns fits ordered as
// tried. Exponential growth is fitted as log t = a + b·n.
func fitAll(ns, ts []float64) []fit {
	classes := []class{constant, logarithmic, linear, linearithmic, quadratic, cubic}
	if maxOf(ns) <= exponentialLimit {
		classes = append(classes, exponential)
	}
	fits := make([]fit, 0, len(classes))
	for _, c := range classes {
		var pred func(n float64) float64
		switch c.label {
		case constant.label:
			mean := stat.Mean(ts, nil)
			pred = func(float64) float64 { return mean }
		case exponential.label:
			logs := make([]float64, len(ts))
			for i, t := range ts {
				logs[i] = math.Log(math.Max(t, math.SmallestNonzeroFloat64))
			}
			a, b := stat.LinearRegression(ns, logs, nil, false)
			pred = func(n float64) float64 { return math.Exp(a + b*n) }
		default:
			xs := make([]float64, len(ns))
			for i, n := range ns {
				xs[i] = c.f(n)
			}
			a, b := stat.LinearRegression(xs, ts, nil, false)
			f := c.f
			pred = func(n float64) float64 { return a + b*f(n) }
		}
		fits = append(fits, fit{class: c, residual: residual(ns, ts, pred)})
	}
	return fits
}

func residual(ns, ts []float64, pred func(float64) float64) float64 {
	var sum float64
	for i := range ns {
		d := ts[i] - pred(ns[i])
		sum += d * d
	}
	if math.IsNaN(sum) {
		return math.Inf(1)
	}
	return sum
}

// best returns the lowest-residual fit and the runner-up. Classes are
// tried simplest first; a later class must improve the residual by more
// than a tiny fraction of the total signal to win.
func best(fits []fit, ts []float64) (fit, fit) {
	var scale float64
	for _, t := range ts {
		scale += t * t
	}
	eps := 1e-9 * scale
	bi, si := 0, -1
	for i := 1; i < len(fits); i++ {
		if fits[i].residual < fits[bi].residual-eps {
			si, bi = bi, i
		} else if si < 0 || fits[i].residual < fits[si].residual {
			si = i
		}
	}
	if si < 0 {
		return fits[bi], fits[bi]
	}
	return fits[bi], fits[si]
}

// confidence maps the RMS residual relative to the mean time onto [0, 1].
func confidence(res float64, ts []float64) float64 {
	mean := stat.Mean(ts, nil)
	if mean <= 0 || math.IsInf(res, 0) {
		return 0
	}
	c := 1 - math.Sqrt(res/float64(len(ts)))/mean
	return math.Min(1, math.Max(0, c))
}

func maxOf(xs []float64) float64 {
	m := math.Inf(-1)
	for _, x := range xs {
		m = math.Max(m, x)
	}
	return m
}
