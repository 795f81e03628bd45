package redis

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/kailas-cloud/ftquery/internal/db"
)

// translate rewrites a compiled condition (AND/OR/NOT keywords, parentheses,
// field:value terms, bare terms) into FT.SEARCH DIALECT 2 syntax. Adjacent
// terms are an implicit AND, a backslash escapes the next character and the
// empty query matches everything.
//
// Two forms reach the engine without escaping: a fragment starting with @ is
// copied verbatim up to the next space outside brackets, and the comparison
// operators (> >= < <= = BETWEEN RANGE followed by a field and numbers)
// become numeric ranges.
func translate(query string, schema *db.Schema) (string, error) {
	tokens, err := tokenize(query)
	if err != nil {
		return "", err
	}
	if len(tokens) == 0 {
		return "*", nil
	}

	p := &parser{tokens: tokens}
	n, err := p.parseOr()
	if err != nil {
		return "", err
	}
	if !p.done() {
		return "", syntaxError("unexpected %q at token %d", p.peek().text, p.pos)
	}
	return n.render(schema)
}

func syntaxError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", db.ErrQuerySyntax, fmt.Sprintf(format, args...))
}

// --- Lexer ---

type tokenKind int

const (
	tokWord tokenKind = iota
	tokOpen
	tokClose
	tokRaw
)

type token struct {
	kind tokenKind
	text string
}

func tokenize(s string) ([]token, error) {
	var (
		tokens []token
		word   strings.Builder
	)
	flush := func() {
		if word.Len() > 0 {
			tokens = append(tokens, token{kind: tokWord, text: word.String()})
			word.Reset()
		}
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\':
			if i+1 >= len(s) {
				return nil, syntaxError("dangling escape at end of query")
			}
			word.WriteByte(s[i+1])
			i++
		case c == '(':
			flush()
			tokens = append(tokens, token{kind: tokOpen, text: "("})
		case c == ')':
			flush()
			tokens = append(tokens, token{kind: tokClose, text: ")"})
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			flush()
		case c == '@' && word.Len() == 0:
			raw, err := scanRaw(s[i:])
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{kind: tokRaw, text: raw})
			i += len(raw) - 1
		default:
			word.WriteByte(c)
		}
	}
	flush()
	return tokens, nil
}

// scanRaw reads an engine-native fragment at the start of s. It ends at
// whitespace or an unmatched ')' outside brackets.
func scanRaw(s string) (string, error) {
	depth := 0
	end := len(s)
scan:
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			i++
		case '[', '{', '(':
			depth++
		case ']', '}', ')':
			if depth == 0 {
				if c != ')' {
					return "", syntaxError("unbalanced %q in %q", c, s)
				}
				end = i
				break scan
			}
			depth--
		case ' ', '\t', '\n', '\r':
			if depth == 0 {
				end = i
				break scan
			}
		}
	}
	if depth != 0 {
		return "", syntaxError("unterminated fragment %q", s)
	}
	if end < 2 {
		return "", syntaxError("empty field reference")
	}
	return s[:end], nil
}

// --- Parser ---

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) done() bool { return p.pos >= len(p.tokens) }

func (p *parser) peek() token { return p.tokens[p.pos] }

func (p *parser) peekKeyword(kw string) bool {
	return !p.done() && p.peek().kind == tokWord && p.peek().text == kw
}

func (p *parser) parseOr() (node, error) {
	first, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	children := []node{first}
	for p.peekKeyword("OR") {
		p.pos++
		next, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		children = append(children, next)
	}
	if len(children) == 1 {
		return first, nil
	}
	return orNode(children), nil
}

func (p *parser) parseAnd() (node, error) {
	first, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	children := []node{first}
	for !p.done() && p.peek().kind != tokClose && !p.peekKeyword("OR") {
		if p.peekKeyword("AND") {
			p.pos++
		}
		next, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		children = append(children, next)
	}
	if len(children) == 1 {
		return first, nil
	}
	return andNode(children), nil
}

func (p *parser) parseUnary() (node, error) {
	if p.peekKeyword("NOT") {
		p.pos++
		child, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return notNode{child: child}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (node, error) {
	if p.done() {
		return nil, syntaxError("unexpected end of query")
	}
	tok := p.peek()
	switch tok.kind {
	case tokOpen:
		p.pos++
		if !p.done() && p.peek().kind == tokClose {
			return nil, syntaxError("empty group at token %d", p.pos)
		}
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.done() || p.peek().kind != tokClose {
			return nil, syntaxError("missing closing parenthesis")
		}
		p.pos++
		return inner, nil
	case tokClose:
		return nil, syntaxError("unbalanced closing parenthesis at token %d", p.pos)
	case tokRaw:
		p.pos++
		return rawNode(tok.text), nil
	default:
		if n, ok := p.parseComparison(); ok {
			return n, nil
		}
		p.pos++
		return newTerm(tok.text), nil
	}
}

// comparisons maps operator keywords to the number of bounds they take.
var comparisons = map[string]int{
	">":       1,
	">=":      1,
	"<":       1,
	"<=":      1,
	"=":       1,
	"BETWEEN": 2,
	"RANGE":   2,
}

// parseComparison matches "OP field bound..." with numeric bounds. ok is
// false when the tokens have another shape and nothing is consumed.
func (p *parser) parseComparison() (node, bool) {
	op := p.peek().text
	arity, known := comparisons[op]
	if !known || p.pos+1+arity >= len(p.tokens) {
		return nil, false
	}
	field := p.tokens[p.pos+1]
	if field.kind != tokWord || !db.IsValidIdentifier(field.text) {
		return nil, false
	}
	bounds := make([]float64, arity)
	for i := range bounds {
		t := p.tokens[p.pos+2+i]
		if t.kind != tokWord {
			return nil, false
		}
		v, err := strconv.ParseFloat(t.text, 64)
		if err != nil || math.IsNaN(v) {
			return nil, false
		}
		bounds[i] = v
	}
	p.pos += 2 + arity
	return rangeNode{op: op, field: field.text, bounds: bounds}, true
}

// --- AST ---

type node interface {
	render(schema *db.Schema) (string, error)
}

type andNode []node

func (n andNode) render(schema *db.Schema) (string, error) {
	parts := make([]string, len(n))
	for i, child := range n {
		s, err := child.render(schema)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return "(" + strings.Join(parts, " ") + ")", nil
}

type orNode []node

func (n orNode) render(schema *db.Schema) (string, error) {
	parts := make([]string, len(n))
	for i, child := range n {
		s, err := child.render(schema)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return "(" + strings.Join(parts, " | ") + ")", nil
}

type notNode struct {
	child node
}

func (n notNode) render(schema *db.Schema) (string, error) {
	s, err := n.child.render(schema)
	if err != nil {
		return "", err
	}
	return "-" + s, nil
}

type rawNode string

func (n rawNode) render(*db.Schema) (string, error) { return string(n), nil }

type rangeNode struct {
	op     string
	field  string
	bounds []float64
}

func (n rangeNode) render(schema *db.Schema) (string, error) {
	if schema != nil && schema.FieldType(n.field) != db.FieldNumeric {
		return "", syntaxError("%s needs a numeric field, %q is not one", n.op, n.field)
	}
	lo, hi := "-inf", "+inf"
	v := formatBound(n.bounds[0])
	switch n.op {
	case ">":
		lo = "(" + v
	case ">=":
		lo = v
	case "<":
		hi = "(" + v
	case "<=":
		hi = v
	case "=":
		lo, hi = v, v
	default:
		lo, hi = v, formatBound(n.bounds[1])
	}
	return fmt.Sprintf("@%s:[%s %s]", n.field, lo, hi), nil
}

func formatBound(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "+inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

type termNode struct {
	field string
	value string
}

// newTerm splits field:value when the prefix is a valid field name.
func newTerm(text string) termNode {
	field, value, ok := strings.Cut(text, ":")
	if ok && value != "" && db.IsValidIdentifier(field) {
		return termNode{field: field, value: value}
	}
	return termNode{value: text}
}

func (n termNode) render(schema *db.Schema) (string, error) {
	if n.field == "" {
		if n.value == "*" {
			return "*", nil
		}
		return withPrefix(n.value, escapeQuery), nil
	}

	switch schema.FieldType(n.field) {
	case db.FieldNumeric:
		v, err := strconv.ParseFloat(n.value, 64)
		if err != nil {
			return "", syntaxError("numeric field %q compared to %q", n.field, n.value)
		}
		num := strconv.FormatFloat(v, 'g', -1, 64)
		return fmt.Sprintf("@%s:[%s %s]", n.field, num, num), nil
	case db.FieldText:
		return fmt.Sprintf("@%s:(%s)", n.field, withPrefix(n.value, escapeQuery)), nil
	default:
		return fmt.Sprintf("@%s:{%s}", n.field, withPrefix(n.value, tagEscaper.Replace)), nil
	}
}

// withPrefix escapes s but keeps a trailing * as a prefix-match wildcard.
func withPrefix(s string, escape func(string) string) string {
	if len(s) > 1 && strings.HasSuffix(s, "*") {
		return escape(s[:len(s)-1]) + "*"
	}
	return escape(s)
}

// --- Escaping ---

var tagEscaper = strings.NewReplacer(
	"\\", "\\\\",
	",", "\\,",
	".", "\\.",
	"<", "\\<",
	">", "\\>",
	"{", "\\{",
	"}", "\\}",
	"\"", "\\\"",
	"'", "\\'",
	":", "\\:",
	";", "\\;",
	"!", "\\!",
	"@", "\\@",
	"#", "\\#",
	"$", "\\$",
	"%", "\\%",
	"^", "\\^",
	"&", "\\&",
	"*", "\\*",
	"(", "\\(",
	")", "\\)",
	"-", "\\-",
	"+", "\\+",
	"=", "\\=",
	"~", "\\~",
	" ", "\\ ",
	"|", "\\|",
)

func escapeQuery(s string) string {
	return queryEscaper.Replace(s)
}

var queryEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`"`, `\"`,
	`@`, `\@`,
	`{`, `\{`,
	`}`, `\}`,
	`(`, `\(`,
	`)`, `\)`,
	`|`, `\|`,
	`-`, `\-`,
	`~`, `\~`,
	`*`, `\*`,
	`[`, `\[`,
	`]`, `\]`,
	`!`, `\!`,
	`%`, `\%`,
	`^`, `\^`,
	`$`, `\$`,
	`<`, `\<`,
	`>`, `\>`,
	`=`, `\=`,
	`;`, `\;`,
	`+`, `\+`,
	`:`, `\:`,
)
