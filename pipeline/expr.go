package pipeline

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// The formula grammar is a small expression language over one row plus a
// prefix-aggregation primitive. It is parsed once per formula into an AST and
// evaluated per row against an environment; there is no textual rewriting.
//
//	expr       = additive [ compareOp additive ]
//	additive   = multiplicative { ("+" | "-") multiplicative }
//	multiplicative = unary { ("*" | "/") unary }
//	unary      = "-" unary | primary
//	primary    = number | string | ident | ident "(" args ")" | "(" expr ")"
//	compareOp  = ">" | "<" | ">=" | "<=" | "=" | "==" | "!="

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokString
	tokIdent
	tokOp
	tokLParen
	tokRParen
	tokComma
)

type token struct {
	kind tokenKind
	text string
	num  float64
}

type lexer struct {
	src []rune
	pos int
}

func lex(src string) ([]token, error) {
	l := &lexer{src: []rune(src)}
	tokens := []token{}
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.kind == tokEOF {
			return tokens, nil
		}
	}
}

func (l *lexer) next() (token, error) {
	for l.pos < len(l.src) && unicode.IsSpace(l.src[l.pos]) {
		l.pos++
	}
	if l.pos >= len(l.src) {
		return token{kind: tokEOF}, nil
	}
	c := l.src[l.pos]
	switch {
	case c == '(':
		l.pos++
		return token{kind: tokLParen, text: "("}, nil
	case c == ')':
		l.pos++
		return token{kind: tokRParen, text: ")"}, nil
	case c == ',':
		l.pos++
		return token{kind: tokComma, text: ","}, nil
	case c == '+' || c == '-' || c == '*' || c == '/':
		l.pos++
		return token{kind: tokOp, text: string(c)}, nil
	case c == '>' || c == '<' || c == '=' || c == '!':
		return l.compareOp()
	case c == '\'' || c == '"':
		return l.stringLiteral(c)
	case unicode.IsDigit(c) || (c == '.' && l.pos+1 < len(l.src) && unicode.IsDigit(l.src[l.pos+1])):
		return l.number()
	case unicode.IsLetter(c) || c == '_':
		return l.ident()
	}
	return token{}, fmt.Errorf("unexpected character %q", c)
}

func (l *lexer) compareOp() (token, error) {
	c := l.src[l.pos]
	l.pos++
	if l.pos < len(l.src) && l.src[l.pos] == '=' {
		l.pos++
		return token{kind: tokOp, text: string(c) + "="}, nil
	}
	if c == '!' {
		return token{}, fmt.Errorf("unexpected character %q", c)
	}
	return token{kind: tokOp, text: string(c)}, nil
}

func (l *lexer) stringLiteral(quote rune) (token, error) {
	l.pos++
	var b strings.Builder
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == '\\' && l.pos+1 < len(l.src) {
			l.pos += 2
			b.WriteRune(l.src[l.pos-1])
			continue
		}
		if c == quote {
			l.pos++
			return token{kind: tokString, text: b.String()}, nil
		}
		b.WriteRune(c)
		l.pos++
	}
	return token{}, fmt.Errorf("unterminated string literal")
}

func (l *lexer) number() (token, error) {
	start := l.pos
	for l.pos < len(l.src) && (unicode.IsDigit(l.src[l.pos]) || l.src[l.pos] == '.') {
		l.pos++
	}
	text := string(l.src[start:l.pos])
	n, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return token{}, fmt.Errorf("bad number %q", text)
	}
	return token{kind: tokNumber, text: text, num: n}, nil
}

func (l *lexer) ident() (token, error) {
	start := l.pos
	for l.pos < len(l.src) && (unicode.IsLetter(l.src[l.pos]) || unicode.IsDigit(l.src[l.pos]) || l.src[l.pos] == '_') {
		l.pos++
	}
	return token{kind: tokIdent, text: string(l.src[start:l.pos])}, nil
}

// --- AST ---

type exprNode interface {
	eval(env *evalEnv) (interface{}, error)
}

type numberLit float64

type stringLit string

type identRef string

type binaryExpr struct {
	op    string
	left  exprNode
	right exprNode
}

type callExpr struct {
	name string
	args []exprNode
}

// evalEnv binds one row of a row sequence: the current row's fields, the
// 0-based index, and the full sequence for prefix aggregates.
type evalEnv struct {
	rows    []Row
	row     Row
	idx     int
	columns map[string]struct{}
}

func (n numberLit) eval(*evalEnv) (interface{}, error) { return float64(n), nil }

func (s stringLit) eval(*evalEnv) (interface{}, error) { return string(s), nil }

func (id identRef) eval(env *evalEnv) (interface{}, error) {
	name := string(id)
	if _, ok := env.columns[name]; !ok {
		return nil, fmt.Errorf("unknown identifier %q", name)
	}
	return env.row[name], nil
}

func (b *binaryExpr) eval(env *evalEnv) (interface{}, error) {
	left, err := b.left.eval(env)
	if err != nil {
		return nil, err
	}
	right, err := b.right.eval(env)
	if err != nil {
		return nil, err
	}
	switch b.op {
	case "+":
		// Numeric addition when both sides coerce to numbers, string
		// concatenation otherwise.
		if _, ok := NumericValue(left); ok {
			if _, ok := NumericValue(right); ok {
				return arith(left, right, b.op)
			}
		}
		return StringForm(left) + StringForm(right), nil
	case "-", "*", "/":
		return arith(left, right, b.op)
	}
	return compare(left, right, b.op)
}

func arith(left, right interface{}, op string) (interface{}, error) {
	l, ok := NumericValue(left)
	r, ok2 := NumericValue(right)
	if !ok || !ok2 {
		return nil, fmt.Errorf("non-numeric operand for %s", op)
	}
	switch op {
	case "+":
		return l + r, nil
	case "-":
		return l - r, nil
	case "*":
		return l * r, nil
	default:
		if r == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		return l / r, nil
	}
}

func compare(left, right interface{}, op string) (interface{}, error) {
	l, ok := NumericValue(left)
	r, ok2 := NumericValue(right)
	if ok && ok2 {
		switch op {
		case ">":
			return l > r, nil
		case "<":
			return l < r, nil
		case ">=":
			return l >= r, nil
		case "<=":
			return l <= r, nil
		case "=", "==":
			return l == r, nil
		case "!=":
			return l != r, nil
		}
	}
	ls, rs := StringForm(left), StringForm(right)
	switch op {
	case ">":
		return ls > rs, nil
	case "<":
		return ls < rs, nil
	case ">=":
		return ls >= rs, nil
	case "<=":
		return ls <= rs, nil
	case "=", "==":
		return ls == rs, nil
	case "!=":
		return ls != rs, nil
	}
	return nil, fmt.Errorf("unknown operator %s", op)
}

func (c *callExpr) eval(env *evalEnv) (interface{}, error) {
	switch c.name {
	case "SUM", "AVG":
		column, err := c.columnArg()
		if err != nil {
			return nil, err
		}
		total, count := 0.0, 0
		for _, row := range env.rows[:env.idx+1] {
			if n, ok := NumericValue(row[column]); ok {
				total += n
				count++
			}
		}
		if c.name == "SUM" {
			return total, nil
		}
		if count == 0 {
			return 0.0, nil
		}
		return total / float64(count), nil
	case "LEN":
		column, err := c.columnArg()
		if err != nil {
			return nil, err
		}
		return float64(utf8.RuneCountInString(StringForm(env.row[column]))), nil
	case "ROW":
		if len(c.args) != 0 {
			return nil, fmt.Errorf("ROW takes no arguments")
		}
		return float64(env.idx + 1), nil
	case "IF":
		if len(c.args) != 3 {
			return nil, fmt.Errorf("IF takes three arguments")
		}
		// Any failure inside the condition selects the false branch.
		cond, err := c.args[0].eval(env)
		if err == nil {
			if b, ok := cond.(bool); ok && b {
				return c.args[1].eval(env)
			}
		}
		return c.args[2].eval(env)
	}
	return nil, fmt.Errorf("unknown function %s", c.name)
}

// columnArg extracts the single bare-column argument of SUM/AVG/LEN.
func (c *callExpr) columnArg() (string, error) {
	if len(c.args) != 1 {
		return "", fmt.Errorf("%s takes one column argument", c.name)
	}
	id, ok := c.args[0].(identRef)
	if !ok {
		return "", fmt.Errorf("%s expects a column name", c.name)
	}
	return string(id), nil
}

// --- parser ---

type parser struct {
	tokens []token
	pos    int
}

// ParseFormula compiles a formula's expression text into its AST. Syntax
// errors here are construction-time errors; evaluation failures stay per-row.
func ParseFormula(src string) (exprNode, error) {
	tokens, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	node, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokEOF {
		return nil, fmt.Errorf("unexpected %q", p.peek().text)
	}
	return node, nil
}

func (p *parser) peek() token { return p.tokens[p.pos] }

func (p *parser) take() token {
	t := p.tokens[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) parseExpr() (exprNode, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind == tokOp && isCompareOp(t.text) {
		p.take()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		return &binaryExpr{op: t.text, left: left, right: right}, nil
	}
	return left, nil
}

func isCompareOp(op string) bool {
	switch op {
	case ">", "<", ">=", "<=", "=", "==", "!=":
		return true
	}
	return false
}

func (p *parser) parseAdditive() (exprNode, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.kind != tokOp || (t.text != "+" && t.text != "-") {
			return left, nil
		}
		p.take()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &binaryExpr{op: t.text, left: left, right: right}
	}
}

func (p *parser) parseMultiplicative() (exprNode, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.kind != tokOp || (t.text != "*" && t.text != "/") {
			return left, nil
		}
		p.take()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &binaryExpr{op: t.text, left: left, right: right}
	}
}

func (p *parser) parseUnary() (exprNode, error) {
	if t := p.peek(); t.kind == tokOp && t.text == "-" {
		p.take()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &binaryExpr{op: "-", left: numberLit(0), right: operand}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (exprNode, error) {
	t := p.take()
	switch t.kind {
	case tokNumber:
		return numberLit(t.num), nil
	case tokString:
		return stringLit(t.text), nil
	case tokLParen:
		node, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if closing := p.take(); closing.kind != tokRParen {
			return nil, fmt.Errorf("missing closing parenthesis")
		}
		return node, nil
	case tokIdent:
		if p.peek().kind != tokLParen {
			return identRef(t.text), nil
		}
		p.take()
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		return &callExpr{name: t.text, args: args}, nil
	}
	return nil, fmt.Errorf("unexpected %q", t.text)
}

func (p *parser) parseArgs() ([]exprNode, error) {
	args := []exprNode{}
	if p.peek().kind == tokRParen {
		p.take()
		return args, nil
	}
	for {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		switch t := p.take(); t.kind {
		case tokComma:
		case tokRParen:
			return args, nil
		default:
			return nil, fmt.Errorf("unexpected %q in argument list", t.text)
		}
	}
}
