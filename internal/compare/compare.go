// Package compare decides whether a solution's output is accepted.
package compare

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/programme-lv/neetrunner/internal/literal"
)

type Mode string

const (
	Exact  Mode = "exact"
	Sorted Mode = "sorted"
	Set    Mode = "set"
)

// ParseMode maps a configured mode name to a Mode. Empty and unknown
// names become Exact; ok is false only for unknown non-empty names.
func ParseMode(s string) (Mode, bool) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case Exact, Sorted, Set:
		return m, true
	case "":
		return Exact, true
	}
	return Exact, false
}

// JudgeFunc validates an actual answer. expected is nil when the case has
// no expected output. When a side does not parse as a literal it is passed
// as a String value holding the raw text.
type JudgeFunc func(actual literal.Value, expected *literal.Value, input string) bool

// Compare applies judge when one is given; its verdict is final. Without a
// judge the expected output is required and both sides are compared under
// mode. Parse failures and unknown modes fall back to exact comparison.
func Compare(actual string, expected *string, input string, judge JudgeFunc, mode Mode) bool {
	if judge != nil {
		return runJudge(judge, actual, expected, input)
	}
	if expected == nil {
		return false
	}
	a, e := Normalize(actual), Normalize(*expected)
	switch mode {
	case Sorted:
		if ok, parsed := compareSorted(a, e); parsed {
			return ok
		}
	case Set:
		if ok, parsed := compareSet(a, e); parsed {
			return ok
		}
	}
	return a == e
}

func runJudge(judge JudgeFunc, actual string, expected *string, input string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()
	act := parseOrRaw(actual)
	var exp *literal.Value
	if expected != nil {
		v := parseOrRaw(*expected)
		exp = &v
	}
	return judge(act, exp, input)
}

func parseOrRaw(s string) literal.Value {
	if v, err := literal.Parse(strings.TrimSpace(s)); err == nil {
		return v
	}
	return literal.StringValue(s)
}

func parsePair(a, e string) (literal.Value, literal.Value, bool) {
	av, err := literal.Parse(a)
	if err != nil {
		return literal.Value{}, literal.Value{}, false
	}
	ev, err := literal.Parse(e)
	if err != nil {
		return literal.Value{}, literal.Value{}, false
	}
	return av, ev, true
}

// tuplify turns nested lists into tuples, one level deep.
func tuplify(items []literal.Value) []literal.Value {
	out := make([]literal.Value, len(items))
	for i, it := range items {
		if it.Kind == literal.List {
			it = literal.TupleOf(it.Items...)
		}
		out[i] = it
	}
	return out
}

func compareSorted(a, e string) (equal bool, parsed bool) {
	av, ev, ok := parsePair(a, e)
	if !ok {
		return false, false
	}
	if av.Kind != literal.List || ev.Kind != literal.List {
		return literal.Equal(av, ev), true
	}
	x, y := tuplify(av.Items), tuplify(ev.Items)
	literal.Sort(x)
	literal.Sort(y)
	return literal.Equal(literal.ListOf(x...), literal.ListOf(y...)), true
}

func compareSet(a, e string) (equal bool, parsed bool) {
	av, ev, ok := parsePair(a, e)
	if !ok {
		return false, false
	}
	if av.Kind != literal.List || ev.Kind != literal.List {
		return literal.Equal(av, ev), true
	}
	return keySet(av.Items).Equal(keySet(ev.Items)), true
}

func keySet(items []literal.Value) mapset.Set[string] {
	s := mapset.NewThreadUnsafeSet[string]()
	for _, it := range tuplify(items) {
		s.Add(it.Key())
	}
	return s
}
