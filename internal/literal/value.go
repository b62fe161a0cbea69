// Package literal parses Python-style literals (lists, tuples, sets, dicts,
// numbers, strings, True/False/None) into a tagged Value and compares them.
package literal

import (
	"math"
	"math/big"
	"sort"
	"strconv"
	"strings"
)

type Kind int

const (
	Null Kind = iota
	Bool
	Int
	Float
	String
	List
	Tuple
	Set
	Dict
)

var kindNames = [...]string{"null", "bool", "int", "float", "str", "list", "tuple", "set", "dict"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Pair is one dict entry. Dicts keep insertion order.
type Pair struct {
	Key Value
	Val Value
}

// Value is a parsed literal. Only the fields matching Kind are meaningful.
type Value struct {
	Kind  Kind
	Bool  bool
	Int   int64
	Big   *big.Int // Int values outside int64; Int is then 0
	Float float64
	Str   string
	Items []Value // List, Tuple, Set
	Pairs []Pair  // Dict
}

func NullValue() Value             { return Value{Kind: Null} }
func BoolValue(b bool) Value       { return Value{Kind: Bool, Bool: b} }
func IntValue(i int64) Value       { return Value{Kind: Int, Int: i} }
func FloatValue(f float64) Value   { return Value{Kind: Float, Float: f} }
func StringValue(s string) Value   { return Value{Kind: String, Str: s} }
func ListOf(items ...Value) Value  { return Value{Kind: List, Items: items} }
func TupleOf(items ...Value) Value { return Value{Kind: Tuple, Items: items} }

// BigIntValue keeps b exact. Values that fit int64 use the Int field.
func BigIntValue(b *big.Int) Value {
	if b.IsInt64() {
		return IntValue(b.Int64())
	}
	return Value{Kind: Int, Big: new(big.Int).Set(b)}
}

// Ints builds a list of ints.
func Ints(xs ...int) Value {
	items := make([]Value, len(xs))
	for i, x := range xs {
		items[i] = IntValue(int64(x))
	}
	return ListOf(items...)
}

func (v Value) IsNumber() bool {
	return v.Kind == Bool || v.Kind == Int || v.Kind == Float
}

// IsSequence reports whether v is a list or a tuple.
func (v Value) IsSequence() bool {
	return v.Kind == List || v.Kind == Tuple
}

// Len is the element count of containers and the rune count of strings.
func (v Value) Len() int {
	switch v.Kind {
	case List, Tuple, Set:
		return len(v.Items)
	case Dict:
		return len(v.Pairs)
	case String:
		return len([]rune(v.Str))
	}
	return 0
}

// AsInt returns the integer held by v when it fits int64. Integral floats
// are accepted.
func (v Value) AsInt() (int64, bool) {
	switch v.Kind {
	case Int:
		if v.Big != nil {
			return 0, false
		}
		return v.Int, true
	case Bool:
		if v.Bool {
			return 1, true
		}
		return 0, true
	case Float:
		if v.Float == math.Trunc(v.Float) && v.Float >= math.MinInt64 && v.Float < 1<<63 {
			return int64(v.Float), true
		}
	}
	return 0, false
}

// integer returns the exact integer value of v, also for huge ints and
// integral floats outside int64.
func (v Value) integer() (*big.Int, bool) {
	switch v.Kind {
	case Bool, Int:
		if v.Big != nil {
			return v.Big, true
		}
		n, _ := v.AsInt()
		return big.NewInt(n), true
	case Float:
		if math.IsInf(v.Float, 0) || math.IsNaN(v.Float) || v.Float != math.Trunc(v.Float) {
			return nil, false
		}
		n, _ := big.NewFloat(v.Float).Int(nil)
		return n, true
	}
	return nil, false
}

// AsInts converts a list or tuple of integers.
func (v Value) AsInts() ([]int, bool) {
	if !v.IsSequence() {
		return nil, false
	}
	out := make([]int, len(v.Items))
	for i, it := range v.Items {
		n, ok := it.AsInt()
		if !ok {
			return nil, false
		}
		out[i] = int(n)
	}
	return out, true
}

// rat returns v as an exact rational. Infinities and NaN have none.
func (v Value) rat() (*big.Rat, bool) {
	if n, ok := v.integer(); ok {
		return new(big.Rat).SetInt(n), true
	}
	if v.Kind != Float {
		return nil, false
	}
	r := new(big.Rat).SetFloat64(v.Float)
	return r, r != nil
}

func infSign(v Value) int {
	if v.Kind == Float && math.IsInf(v.Float, 0) {
		if v.Float > 0 {
			return 1
		}
		return -1
	}
	return 0
}

// compareNumbers compares exactly, so 2**53+1 and 2.0**53 differ.
func compareNumbers(a, b Value) int {
	if a.Kind == Int && b.Kind == Int && a.Big == nil && b.Big == nil {
		return cmpInt64(a.Int, b.Int)
	}
	if sa, sb := infSign(a), infSign(b); sa != 0 || sb != 0 {
		return cmpInt64(int64(sa), int64(sb))
	}
	x, xok := a.rat()
	y, yok := b.rat()
	if !xok || !yok {
		return 0
	}
	return x.Cmp(y)
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// rank groups kinds for ordering; bools, ints and floats share a rank.
func (v Value) rank() int {
	switch v.Kind {
	case Null:
		return 0
	case Bool, Int, Float:
		return 1
	case String:
		return 2
	case List:
		return 3
	case Tuple:
		return 4
	case Set:
		return 5
	}
	return 6
}

// Compare is a total order over values: kinds first, then contents.
func Compare(a, b Value) int {
	ra, rb := a.rank(), b.rank()
	if ra != rb {
		return ra - rb
	}
	switch a.Kind {
	case Null:
		return 0
	case Bool, Int, Float:
		return compareNumbers(a, b)
	case String:
		return strings.Compare(a.Str, b.Str)
	case List, Tuple:
		return compareSeq(a.Items, b.Items)
	case Set:
		return compareSeq(sortedCopy(a.Items), sortedCopy(b.Items))
	}
	return strings.Compare(a.Key(), b.Key())
}

func compareSeq(a, b []Value) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return len(a) - len(b)
}

func sortedCopy(items []Value) []Value {
	out := append([]Value(nil), items...)
	Sort(out)
	return out
}

// Sort orders items in place using Compare.
func Sort(items []Value) {
	sort.SliceStable(items, func(i, j int) bool { return Compare(items[i], items[j]) < 0 })
}

// Equal follows Python equality: 1 == 1.0 == True, [1] != (1,),
// sets and dicts ignore order.
func Equal(a, b Value) bool {
	if a.IsNumber() && b.IsNumber() {
		return Compare(a, b) == 0
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case Null:
		return true
	case String:
		return a.Str == b.Str
	case List, Tuple:
		if len(a.Items) != len(b.Items) {
			return false
		}
		for i := range a.Items {
			if !Equal(a.Items[i], b.Items[i]) {
				return false
			}
		}
		return true
	}
	return a.Key() == b.Key()
}

// Key is a canonical encoding: equal values have equal keys.
func (v Value) Key() string {
	var sb strings.Builder
	v.writeKey(&sb)
	return sb.String()
}

func (v Value) writeKey(sb *strings.Builder) {
	switch v.Kind {
	case Null:
		sb.WriteString("n")
	case Bool, Int, Float:
		if n, ok := v.integer(); ok {
			sb.WriteString("i:")
			sb.WriteString(n.String())
			return
		}
		sb.WriteString("f:")
		sb.WriteString(strconv.FormatFloat(v.Float, 'g', -1, 64))
	case String:
		sb.WriteString("s:")
		sb.WriteString(strconv.Quote(v.Str))
	case List, Tuple:
		if v.Kind == List {
			sb.WriteString("l[")
		} else {
			sb.WriteString("t[")
		}
		for i, it := range v.Items {
			if i > 0 {
				sb.WriteByte(',')
			}
			it.writeKey(sb)
		}
		sb.WriteByte(']')
	case Set:
		keys := make([]string, len(v.Items))
		for i, it := range v.Items {
			keys[i] = it.Key()
		}
		sort.Strings(keys)
		keys = dedupSorted(keys)
		sb.WriteString("S{")
		sb.WriteString(strings.Join(keys, ","))
		sb.WriteByte('}')
	case Dict:
		entries := make([]string, len(v.Pairs))
		for i, p := range v.Pairs {
			entries[i] = p.Key.Key() + "=" + p.Val.Key()
		}
		sort.Strings(entries)
		sb.WriteString("d{")
		sb.WriteString(strings.Join(entries, ","))
		sb.WriteByte('}')
	}
}

func dedupSorted(keys []string) []string {
	out := keys[:0]
	for i, k := range keys {
		if i == 0 || k != keys[i-1] {
			out = append(out, k)
		}
	}
	return out
}

// Repr renders v the way Python's repr() would.
func (v Value) Repr() string {
	var sb strings.Builder
	v.writeRepr(&sb)
	return sb.String()
}

func (v Value) String() string { return v.Repr() }

func (v Value) writeRepr(sb *strings.Builder) {
	switch v.Kind {
	case Null:
		sb.WriteString("None")
	case Bool:
		if v.Bool {
			sb.WriteString("True")
		} else {
			sb.WriteString("False")
		}
	case Int:
		if v.Big != nil {
			sb.WriteString(v.Big.String())
			return
		}
		sb.WriteString(strconv.FormatInt(v.Int, 10))
	case Float:
		sb.WriteString(formatFloat(v.Float))
	case String:
		sb.WriteString(quote(v.Str))
	case List:
		writeItems(sb, "[", v.Items, "]")
	case Tuple:
		if len(v.Items) == 1 {
			sb.WriteByte('(')
			v.Items[0].writeRepr(sb)
			sb.WriteString(",)")
			return
		}
		writeItems(sb, "(", v.Items, ")")
	case Set:
		if len(v.Items) == 0 {
			sb.WriteString("set()")
			return
		}
		writeItems(sb, "{", v.Items, "}")
	case Dict:
		sb.WriteByte('{')
		for i, p := range v.Pairs {
			if i > 0 {
				sb.WriteString(", ")
			}
			p.Key.writeRepr(sb)
			sb.WriteString(": ")
			p.Val.writeRepr(sb)
		}
		sb.WriteByte('}')
	}
}

func writeItems(sb *strings.Builder, open string, items []Value, close string) {
	sb.WriteString(open)
	for i, it := range items {
		if i > 0 {
			sb.WriteString(", ")
		}
		it.writeRepr(sb)
	}
	sb.WriteString(close)
}

func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func quote(s string) string {
	q := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		q = '"'
	}
	var sb strings.Builder
	sb.WriteByte(q)
	for _, r := range s {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			if r == rune(q) {
				sb.WriteByte('\\')
			}
			sb.WriteRune(r)
		}
	}
	sb.WriteByte(q)
	return sb.String()
}
