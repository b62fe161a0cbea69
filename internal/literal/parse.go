package literal

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode/utf8"
)

var ErrEmpty = errors.New("empty literal")

// SyntaxError reports where a literal stopped parsing.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("literal: %s at offset %d", e.Msg, e.Offset)
}

// Parse evaluates s as a single literal. Like Python's ast.literal_eval,
// a bare comma-separated sequence at the top level is a tuple.
// JSON spellings true/false/null are accepted as well.
func Parse(s string) (Value, error) {
	p := &parser{src: s}
	p.skipSpace()
	if p.eof() {
		return Value{}, ErrEmpty
	}
	first, err := p.value()
	if err != nil {
		return Value{}, err
	}
	p.skipSpace()
	if !p.eof() && p.peek() == ',' {
		items := []Value{first}
		for !p.eof() && p.peek() == ',' {
			p.pos++
			p.skipSpace()
			if p.eof() {
				break
			}
			v, err := p.value()
			if err != nil {
				return Value{}, err
			}
			items = append(items, v)
			p.skipSpace()
		}
		first = TupleOf(items...)
	}
	if !p.eof() {
		return Value{}, p.errorf("unexpected %q", p.peek())
	}
	return first, nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(s string) Value {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

type parser struct {
	src   string
	pos   int
	depth int
}

const maxDepth = 512

func (p *parser) eof() bool  { return p.pos >= len(p.src) }
func (p *parser) peek() byte { return p.src[p.pos] }

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{Offset: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) skipSpace() {
	for !p.eof() {
		switch p.peek() {
		case ' ', '\t', '\n', '\r', '\f', '\v':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) value() (Value, error) {
	p.skipSpace()
	if p.eof() {
		return Value{}, p.errorf("unexpected end of input")
	}
	c := p.peek()
	switch {
	case c == '[':
		return p.container('[', ']', List)
	case c == '(':
		return p.paren()
	case c == '{':
		return p.brace()
	case c == '\'' || c == '"':
		s, err := p.str()
		if err != nil {
			return Value{}, err
		}
		return StringValue(s), nil
	case c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9'):
		return p.number()
	case isNameStart(c):
		return p.name()
	}
	return Value{}, p.errorf("unexpected %q", c)
}

func (p *parser) enter() error {
	p.depth++
	if p.depth > maxDepth {
		return p.errorf("nesting too deep")
	}
	return nil
}

// items parses comma-separated values up to close. A trailing comma is
// allowed; sawComma reports whether any comma was consumed.
func (p *parser) items(close byte) (items []Value, sawComma bool, err error) {
	for {
		p.skipSpace()
		if p.eof() {
			return nil, false, p.errorf("missing %q", close)
		}
		if p.peek() == close {
			p.pos++
			return items, sawComma, nil
		}
		v, err := p.value()
		if err != nil {
			return nil, false, err
		}
		items = append(items, v)
		p.skipSpace()
		if p.eof() {
			return nil, false, p.errorf("missing %q", close)
		}
		switch p.peek() {
		case ',':
			sawComma = true
			p.pos++
		case close:
		default:
			return nil, false, p.errorf("expected ',' or %q", close)
		}
	}
}

func (p *parser) container(open, close byte, kind Kind) (Value, error) {
	if err := p.enter(); err != nil {
		return Value{}, err
	}
	defer func() { p.depth-- }()
	p.pos++ // open
	items, _, err := p.items(close)
	if err != nil {
		return Value{}, err
	}
	if items == nil {
		items = []Value{}
	}
	return Value{Kind: kind, Items: items}, nil
}

// paren handles (), (x) and (x, ...).
func (p *parser) paren() (Value, error) {
	if err := p.enter(); err != nil {
		return Value{}, err
	}
	defer func() { p.depth-- }()
	p.pos++
	items, sawComma, err := p.items(')')
	if err != nil {
		return Value{}, err
	}
	if len(items) == 1 && !sawComma {
		return items[0], nil
	}
	if items == nil {
		items = []Value{}
	}
	return TupleOf(items...), nil
}

// brace handles dicts {k: v} and sets {a, b}; {} is an empty dict.
func (p *parser) brace() (Value, error) {
	if err := p.enter(); err != nil {
		return Value{}, err
	}
	defer func() { p.depth-- }()
	p.pos++
	p.skipSpace()
	if !p.eof() && p.peek() == '}' {
		p.pos++
		return Value{Kind: Dict, Pairs: []Pair{}}, nil
	}
	first, err := p.value()
	if err != nil {
		return Value{}, err
	}
	p.skipSpace()
	if !p.eof() && p.peek() == ':' {
		return p.dictRest(first)
	}
	set := []Value{first}
	if !p.eof() && p.peek() == ',' {
		p.pos++
		rest, _, err := p.items('}')
		if err != nil {
			return Value{}, err
		}
		set = append(set, rest...)
	} else if !p.eof() && p.peek() == '}' {
		p.pos++
	} else {
		return Value{}, p.errorf("expected ',' or '}'")
	}
	return Value{Kind: Set, Items: set}, nil
}

func (p *parser) dictRest(firstKey Value) (Value, error) {
	var pairs []Pair
	key := firstKey
	for {
		p.skipSpace()
		if p.eof() || p.peek() != ':' {
			return Value{}, p.errorf("expected ':'")
		}
		p.pos++
		val, err := p.value()
		if err != nil {
			return Value{}, err
		}
		pairs = append(pairs, Pair{Key: key, Val: val})
		p.skipSpace()
		if p.eof() {
			return Value{}, p.errorf("missing '}'")
		}
		if p.peek() == '}' {
			p.pos++
			return Value{Kind: Dict, Pairs: pairs}, nil
		}
		if p.peek() != ',' {
			return Value{}, p.errorf("expected ',' or '}'")
		}
		p.pos++
		p.skipSpace()
		if !p.eof() && p.peek() == '}' {
			p.pos++
			return Value{Kind: Dict, Pairs: pairs}, nil
		}
		key, err = p.value()
		if err != nil {
			return Value{}, err
		}
	}
}

func (p *parser) str() (string, error) {
	q := p.peek()
	p.pos++
	var sb strings.Builder
	for {
		if p.eof() {
			return "", p.errorf("unterminated string")
		}
		c := p.peek()
		switch {
		case c == q:
			p.pos++
			return sb.String(), nil
		case c == '\n':
			return "", p.errorf("newline in string")
		case c == '\\':
			if err := p.escape(&sb); err != nil {
				return "", err
			}
		default:
			r, size := utf8.DecodeRuneInString(p.src[p.pos:])
			sb.WriteRune(r)
			p.pos += size
		}
	}
}

func (p *parser) escape(sb *strings.Builder) error {
	p.pos++ // backslash
	if p.eof() {
		return p.errorf("unterminated escape")
	}
	c := p.peek()
	p.pos++
	switch c {
	case 'n':
		sb.WriteByte('\n')
	case 't':
		sb.WriteByte('\t')
	case 'r':
		sb.WriteByte('\r')
	case '0':
		sb.WriteByte(0)
	case '\\', '\'', '"':
		sb.WriteByte(c)
	case 'x':
		return p.hexEscape(sb, 2)
	case 'u':
		return p.hexEscape(sb, 4)
	case 'U':
		return p.hexEscape(sb, 8)
	default:
		sb.WriteByte('\\')
		sb.WriteByte(c)
	}
	return nil
}

func (p *parser) hexEscape(sb *strings.Builder, n int) error {
	if p.pos+n > len(p.src) {
		return p.errorf("short escape")
	}
	code, err := strconv.ParseUint(p.src[p.pos:p.pos+n], 16, 32)
	if err != nil {
		return p.errorf("bad escape")
	}
	p.pos += n
	sb.WriteRune(rune(code))
	return nil
}

func (p *parser) number() (Value, error) {
	start := p.pos
	if c := p.peek(); c == '-' || c == '+' {
		p.pos++
		p.skipSpace()
		if p.eof() {
			return Value{}, p.errorf("dangling sign")
		}
		if !isDigit(p.peek()) && p.peek() != '.' {
			return Value{}, p.errorf("unexpected %q after sign", p.peek())
		}
	}
	isFloat := false
scan:
	for !p.eof() {
		c := p.peek()
		switch {
		case isDigit(c) || c == '_':
		case c == '.':
			isFloat = true
		case c == 'e' || c == 'E':
			isFloat = true
			if p.pos+1 < len(p.src) && (p.src[p.pos+1] == '-' || p.src[p.pos+1] == '+') {
				p.pos++
			}
		default:
			break scan
		}
		p.pos++
	}
	text := strings.NewReplacer(" ", "", "\t", "", "_", "").Replace(p.src[start:p.pos])
	if !isFloat {
		if i, err := strconv.ParseInt(text, 10, 64); err == nil {
			return IntValue(i), nil
		}
		if b, ok := new(big.Int).SetString(text, 10); ok {
			return BigIntValue(b), nil
		}
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) {
		return Value{}, &SyntaxError{Offset: start, Msg: fmt.Sprintf("bad number %q", text)}
	}
	return FloatValue(f), nil
}

func (p *parser) name() (Value, error) {
	start := p.pos
	for !p.eof() && (isNameStart(p.peek()) || isDigit(p.peek())) {
		p.pos++
	}
	switch p.src[start:p.pos] {
	case "True", "true":
		return BoolValue(true), nil
	case "False", "false":
		return BoolValue(false), nil
	case "None", "null":
		return NullValue(), nil
	}
	return Value{}, &SyntaxError{Offset: start, Msg: fmt.Sprintf("name %q is not a literal", p.src[start:p.pos])}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
