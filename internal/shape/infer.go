package shape

import (
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/programme-lv/neetrunner/internal/literal"
)

// informativeness tiers used to pick between several parsed objects
const (
	tierNone = iota
	tierScalar
	tierArray
	tierMatrix
	tierGraph
)

// Infer parses every non-empty line of input and derives a shape.
// It returns nil when nothing could be derived.
func Infer(input string) *Shape {
	var objs []literal.Value
	for _, line := range strings.Split(input, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		objs = append(objs, ParseLine(line))
	}
	if len(objs) == 0 {
		return nil
	}
	if s := kWay(objs); s != nil {
		return s
	}
	if len(objs) == 1 {
		s, _ := Of(objs[0])
		return s
	}
	return pickMostInformative(objs)
}

// ParseLine turns one input line into a value: a literal when it parses,
// else comma- or whitespace-separated scalars, else a scalar or raw string.
func ParseLine(line string) literal.Value {
	if v, err := literal.Parse(line); err == nil {
		return v
	}
	var fields []string
	switch {
	case strings.Contains(line, ","):
		fields = strings.Split(line, ",")
	case strings.ContainsAny(line, " \t"):
		fields = strings.Fields(line)
	default:
		return coerce(line)
	}
	items := make([]literal.Value, len(fields))
	for i, f := range fields {
		items[i] = coerce(strings.TrimSpace(f))
	}
	return literal.ListOf(items...)
}

func coerce(s string) literal.Value {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return literal.IntValue(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return literal.FloatValue(f)
	}
	return literal.StringValue(s)
}

// kWay matches a leading count k followed by exactly k list lines.
func kWay(objs []literal.Value) *Shape {
	if objs[0].Kind != literal.Int {
		return nil
	}
	k := int(objs[0].Int)
	if k <= 0 || len(objs) != k+1 {
		return nil
	}
	total := 0
	for _, o := range objs[1:] {
		if o.Kind != literal.List {
			return nil
		}
		total += len(o.Items)
	}
	return &Shape{K: intp(k), N: intp(total), DType: elemType(objs[1:])}
}

func pickMostInformative(objs []literal.Value) *Shape {
	var best *Shape
	bestTier := tierNone
	var arrays []int
	for _, o := range objs {
		s, tier := Of(o)
		if tier == tierArray && o.Kind != literal.String {
			arrays = append(arrays, o.Len())
		}
		if tier > bestTier {
			best, bestTier = s, tier
		}
	}
	if bestTier == tierArray && best.M == nil && len(arrays) >= 2 {
		best.N = intp(arrays[0])
		best.M = intp(arrays[1])
	}
	return best
}

// Of derives the shape of a single parsed object and its tier.
func Of(v literal.Value) (*Shape, int) {
	switch v.Kind {
	case literal.String:
		return &Shape{N: intp(v.Len()), DType: "str"}, tierArray
	case literal.Dict:
		return dictShape(v), tierGraph
	case literal.List, literal.Tuple, literal.Set:
		return listShape(v)
	case literal.Int, literal.Bool:
		return &Shape{DType: "int"}, tierScalar
	case literal.Float:
		return &Shape{DType: "float"}, tierScalar
	}
	return nil, tierNone
}

func dictShape(v literal.Value) *Shape {
	keys := len(v.Pairs)
	edges := 0
	for _, p := range v.Pairs {
		if !p.Val.IsSequence() && p.Val.Kind != literal.Set {
			return &Shape{U: intp(keys), DType: "dict"}
		}
		edges += p.Val.Len()
	}
	if keys == 0 {
		return &Shape{U: intp(0), DType: "dict"}
	}
	return &Shape{V: intp(keys), E: intp(edges), U: intp(keys), DType: "graph"}
}

func listShape(v literal.Value) (*Shape, int) {
	items := v.Items
	if len(items) == 0 {
		return &Shape{N: intp(0)}, tierArray
	}
	if isEdgeList(items) {
		endpoints := mapset.NewThreadUnsafeSet[string]()
		for _, e := range items {
			endpoints.Add(e.Items[0].Key())
			endpoints.Add(e.Items[1].Key())
		}
		return &Shape{E: intp(len(items)), V: intp(endpoints.Cardinality()), DType: "graph"}, tierGraph
	}
	if hasNull(items) {
		return treeShape(items), tierGraph
	}
	if allSequences(items) {
		cols := len(items[0].Items)
		rect := true
		total := 0
		for _, row := range items {
			total += len(row.Items)
			if len(row.Items) != cols {
				rect = false
			}
		}
		if rect {
			return &Shape{
				Rows:  intp(len(items)),
				Cols:  intp(cols),
				N:     intp(len(items) * cols),
				DType: elemType(items),
			}, tierMatrix
		}
		return &Shape{K: intp(len(items)), N: intp(total), DType: elemType(items)}, tierMatrix
	}
	return &Shape{N: intp(len(items)), DType: kindsOf(items)}, tierArray
}

func isEdgeList(items []literal.Value) bool {
	for _, it := range items {
		if it.Kind != literal.Tuple || len(it.Items) != 2 {
			return false
		}
	}
	return true
}

func allSequences(items []literal.Value) bool {
	for _, it := range items {
		if !it.IsSequence() {
			return false
		}
	}
	return true
}

func hasNull(items []literal.Value) bool {
	for _, it := range items {
		if it.Kind == literal.Null {
			return true
		}
	}
	return false
}

// treeShape reads items as a level-order binary tree where None marks a
// missing child, as in LeetCode tree inputs.
func treeShape(items []literal.Value) *Shape {
	s := &Shape{N: intp(len(items)), DType: "tree"}
	if items[0].Kind == literal.Null {
		s.Nodes, s.Height = intp(0), intp(0)
		return s
	}
	nodes, height := 1, 1
	queue := []int{1}
	i := 1
	for len(queue) > 0 && i < len(items) {
		depth := queue[0]
		queue = queue[1:]
		for c := 0; c < 2 && i < len(items); c++ {
			if items[i].Kind != literal.Null {
				nodes++
				queue = append(queue, depth+1)
				height = max(height, depth+1)
			}
			i++
		}
	}
	s.Nodes, s.Height = intp(nodes), intp(height)
	return s
}

// elemType is the common kind of the elements of nested sequences.
func elemType(rows []literal.Value) string {
	var inner []literal.Value
	for _, r := range rows {
		inner = append(inner, r.Items...)
	}
	return kindsOf(inner)
}

func kindsOf(items []literal.Value) string {
	kind := ""
	for _, it := range items {
		k := it.Kind.String()
		if it.Kind == literal.Bool {
			k = "int"
		}
		if kind == "" {
			kind = k
		} else if kind != k {
			if (kind == "int" && k == "float") || (kind == "float" && k == "int") {
				kind = "float"
				continue
			}
			return "mixed"
		}
	}
	return kind
}
