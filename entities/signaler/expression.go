package signaler

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/Geraldleevs/MACD-MVP2-Backend-repo--sub000/entities/indicator"
	"github.com/Geraldleevs/MACD-MVP2-Backend-repo--sub000/enum"
	"github.com/Geraldleevs/MACD-MVP2-Backend-repo--sub000/models"
)

// Custom strategies are written as one buy and one sell expression over
// price fields, numbers and indicator calls, e.g.
//
//	rsi(14) < 30 and close > sma(50)@4h
//
// Expressions compile once into an AST (all indicator names and parameter
// limits checked up front) and then run vectorized over a candle history.
// An indicator suffixed with @<timeframe> is computed on the series
// resampled to that timeframe and broadcast back onto the fine one.

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokIdent
	tokOperator
	tokLeftParen
	tokRightParen
	tokComma
	tokAt
	tokEOF
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

type ExprError struct {
	Pos int
	Msg string
}

func (e *ExprError) Error() string {
	return fmt.Sprintf("expression error at position %d: %s", e.Pos, e.Msg)
}

func errAt(pos int, format string, args ...any) error {
	return &ExprError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func lex(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c >= '0' && c <= '9' || c == '.':
			start := i
			for i < len(src) && (src[i] >= '0' && src[i] <= '9' || src[i] == '.') {
				i++
			}
			toks = append(toks, token{tokNumber, src[start:i], start})
		case unicode.IsLetter(rune(c)) || c == '_':
			start := i
			for i < len(src) && (unicode.IsLetter(rune(src[i])) || unicode.IsDigit(rune(src[i])) || src[i] == '_') {
				i++
			}
			word := src[start:i]
			if word == "and" || word == "or" {
				toks = append(toks, token{tokOperator, word, start})
			} else {
				toks = append(toks, token{tokIdent, word, start})
			}
		case c == '(' || c == '[':
			toks = append(toks, token{tokLeftParen, string(c), i})
			i++
		case c == ')' || c == ']':
			toks = append(toks, token{tokRightParen, string(c), i})
			i++
		case c == ',':
			toks = append(toks, token{tokComma, ",", i})
			i++
		case c == '@':
			toks = append(toks, token{tokAt, "@", i})
			i++
		case c == '>' || c == '<' || c == '=' || c == '!':
			if i+1 < len(src) && src[i+1] == '=' {
				toks = append(toks, token{tokOperator, src[i : i+2], i})
				i += 2
			} else if c == '=' || c == '!' {
				return nil, errAt(i, "unexpected %q, did you mean %q?", string(c), string(c)+"=")
			} else {
				toks = append(toks, token{tokOperator, string(c), i})
				i++
			}
		case c == '+' || c == '-' || c == '*' || c == '/' || c == '^':
			toks = append(toks, token{tokOperator, string(c), i})
			i++
		default:
			return nil, errAt(i, "unexpected character %q", string(c))
		}
	}
	toks = append(toks, token{tokEOF, "", len(src)})
	return toks, nil
}

type exprNode interface {
	eval(rt *runtime) ([]float64, error)
}

type numberNode struct {
	value float64
}

type fieldNode struct {
	name string // open, high, low, close, volume
}

type indicatorNode struct {
	name      string
	params    map[string]float64
	timeframe enum.CandleSize
	resampled bool
}

type binaryNode struct {
	op    string
	left  exprNode
	right exprNode
}

// Expression is a compiled strategy expression, safe for reuse across runs.
type Expression struct {
	Source string
	root   exprNode
}

var binaryPrecedence = map[string]int{
	"or":  1,
	"and": 2,
	">":   3, "<": 3, ">=": 3, "<=": 3, "==": 3, "!=": 3,
	"+": 4, "-": 4,
	"*": 5, "/": 5,
	"^": 6,
}

type parser struct {
	toks []token
	i    int
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

// Compile parses and validates a strategy expression. Every indicator
// reference is checked against the registry, including its parameter limits,
// so a compiled expression cannot fail validation at run time.
func Compile(src string) (*Expression, error) {
	if strings.TrimSpace(src) == "" {
		return nil, errAt(0, "empty expression")
	}
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	root, err := p.parseBinary(1)
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, errAt(t.pos, "unexpected %q after end of expression", t.text)
	}
	return &Expression{Source: src, root: root}, nil
}

func (p *parser) parseBinary(minPrec int) (exprNode, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.kind != tokOperator {
			return left, nil
		}
		prec, ok := binaryPrecedence[t.text]
		if !ok || prec < minPrec {
			return left, nil
		}
		p.next()
		if n := p.peek(); n.kind == tokOperator && n.text != "-" {
			return nil, errAt(n.pos, "consecutive operators %q %q", t.text, n.text)
		}
		// ^ is right-associative, everything else left
		nextMin := prec + 1
		if t.text == "^" {
			nextMin = prec
		}
		right, err := p.parseBinary(nextMin)
		if err != nil {
			return nil, err
		}
		left = &binaryNode{op: t.text, left: left, right: right}
	}
}

func (p *parser) parsePrimary() (exprNode, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		v, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return nil, errAt(t.pos, "malformed number %q", t.text)
		}
		return &numberNode{value: v}, nil
	case tokOperator:
		if t.text == "-" {
			inner, err := p.parsePrimary()
			if err != nil {
				return nil, err
			}
			return &binaryNode{op: "-", left: &numberNode{value: 0}, right: inner}, nil
		}
		return nil, errAt(t.pos, "dangling operator %q", t.text)
	case tokLeftParen:
		inner, err := p.parseBinary(1)
		if err != nil {
			return nil, err
		}
		closer := p.next()
		if closer.kind != tokRightParen {
			return nil, errAt(t.pos, "unbalanced %q", t.text)
		}
		if !bracketsMatch(t.text, closer.text) {
			return nil, errAt(closer.pos, "mismatched %q closed by %q", t.text, closer.text)
		}
		return inner, nil
	case tokIdent:
		return p.parseIdent(t)
	case tokEOF:
		return nil, errAt(t.pos, "unexpected end of expression")
	default:
		return nil, errAt(t.pos, "unexpected %q", t.text)
	}
}

func bracketsMatch(open, close string) bool {
	return (open == "(" && close == ")") || (open == "[" && close == "]")
}

var priceFields = map[string]bool{
	"open": true, "high": true, "low": true, "close": true, "volume": true,
}

func (p *parser) parseIdent(t token) (exprNode, error) {
	if p.peek().kind != tokLeftParen {
		if priceFields[t.text] {
			return &fieldNode{name: t.text}, nil
		}
		if _, ok := indicator.Get(t.text); ok {
			return nil, errAt(t.pos, "indicator %q needs an argument list, e.g. %s(...)", t.text, t.text)
		}
		return nil, errAt(t.pos, "unknown identifier %q", t.text)
	}

	def, ok := indicator.Get(t.text)
	if !ok {
		return nil, errAt(t.pos, "unknown indicator %q", t.text)
	}
	open := p.next()
	var args []float64
	if p.peek().kind != tokRightParen {
		for {
			arg := p.next()
			neg := false
			if arg.kind == tokOperator && arg.text == "-" {
				neg = true
				arg = p.next()
			}
			if arg.kind != tokNumber {
				return nil, errAt(arg.pos, "indicator arguments must be numbers, got %q", arg.text)
			}
			v, err := strconv.ParseFloat(arg.text, 64)
			if err != nil {
				return nil, errAt(arg.pos, "malformed number %q", arg.text)
			}
			if neg {
				v = -v
			}
			args = append(args, v)
			if p.peek().kind == tokComma {
				p.next()
				continue
			}
			break
		}
	}
	closer := p.next()
	if closer.kind != tokRightParen {
		return nil, errAt(open.pos, "unbalanced %q in %s call", open.text, t.text)
	}
	if !bracketsMatch(open.text, closer.text) {
		return nil, errAt(closer.pos, "mismatched %q closed by %q", open.text, closer.text)
	}
	if len(args) > len(def.Params) {
		return nil, errAt(t.pos, "%s takes at most %d parameters, got %d", t.text, len(def.Params), len(args))
	}
	params := make(map[string]float64, len(args))
	for i, v := range args {
		params[def.Params[i].Name] = v
	}

	node := &indicatorNode{name: t.text, params: params}
	if p.peek().kind == tokAt {
		p.next()
		tfTok := p.next()
		if tfTok.kind != tokIdent && tfTok.kind != tokNumber {
			return nil, errAt(tfTok.pos, "expected timeframe after @, got %q", tfTok.text)
		}
		text := tfTok.text
		// "1h" lexes as number "1" then ident "h"
		if tfTok.kind == tokNumber && p.peek().kind == tokIdent {
			text += p.next().text
		}
		tf, err := enum.GetCandleSizeFromShort(text)
		if err != nil {
			return nil, errAt(tfTok.pos, "unknown timeframe %q", text)
		}
		node.timeframe = tf
		node.resampled = true
	}

	if _, _, err := indicator.ValidateParams(t.text, params); err != nil {
		return nil, errAt(t.pos, "%v", err)
	}
	return node, nil
}

type runtime struct {
	hist *models.CandleHistory
	fine enum.CandleSize
}

// Run evaluates the expression over a candle history sampled at the given
// timeframe. Boolean sub-expressions yield 1/0, NaN propagates and counts as
// false in the final signal.
func (e *Expression) Run(h *models.CandleHistory, fine enum.CandleSize) ([]float64, error) {
	return e.root.eval(&runtime{hist: h, fine: fine})
}

// Signals compiles the two expressions into a single signal array: buy wins
// where both fire on the same bar.
func Signals(buy, sell *Expression, h *models.CandleHistory, fine enum.CandleSize) (models.SignalArray, error) {
	buyVals, err := buy.Run(h, fine)
	if err != nil {
		return nil, fmt.Errorf("buy expression: %w", err)
	}
	sellVals, err := sell.Run(h, fine)
	if err != nil {
		return nil, fmt.Errorf("sell expression: %w", err)
	}
	out := make(models.SignalArray, h.Len())
	for i := range out {
		if truthy(buyVals[i]) {
			out[i] = 1
		} else if truthy(sellVals[i]) {
			out[i] = -1
		}
	}
	return out, nil
}

func truthy(v float64) bool {
	return !math.IsNaN(v) && v != 0
}

func (n *numberNode) eval(rt *runtime) ([]float64, error) {
	out := make([]float64, rt.hist.Len())
	for i := range out {
		out[i] = n.value
	}
	return out, nil
}

func (n *fieldNode) eval(rt *runtime) ([]float64, error) {
	switch n.name {
	case "open":
		return rt.hist.GetOpens(), nil
	case "high":
		return rt.hist.GetHighs(), nil
	case "low":
		return rt.hist.GetLows(), nil
	case "close":
		return rt.hist.GetCloses(), nil
	case "volume":
		return rt.hist.GetVolumes(), nil
	}
	return nil, fmt.Errorf("unknown field %q", n.name)
}

func (n *indicatorNode) eval(rt *runtime) ([]float64, error) {
	if !n.resampled || n.timeframe == rt.fine {
		return indicator.Evaluate(n.name, rt.hist, n.params)
	}
	ratio, err := enum.GetBucketRatio(rt.fine, n.timeframe)
	if err != nil {
		return nil, fmt.Errorf("indicator %s@%s: %w", n.name, n.timeframe.Short(), err)
	}
	coarse, err := rt.hist.Resample(rt.fine, n.timeframe)
	if err != nil {
		return nil, fmt.Errorf("indicator %s@%s: %w", n.name, n.timeframe.Short(), err)
	}
	coarseVals, err := indicator.Evaluate(n.name, coarse, n.params)
	if err != nil {
		return nil, err
	}
	return models.BroadcastToFine(coarseVals, ratio, rt.hist.Len()), nil
}

func (n *binaryNode) eval(rt *runtime) ([]float64, error) {
	left, err := n.left.eval(rt)
	if err != nil {
		return nil, err
	}
	right, err := n.right.eval(rt)
	if err != nil {
		return nil, err
	}
	if len(left) != len(right) {
		return nil, fmt.Errorf("operand length mismatch: %d vs %d", len(left), len(right))
	}
	out := make([]float64, len(left))
	for i := range out {
		out[i] = applyOp(n.op, left[i], right[i])
	}
	return out, nil
}

func applyOp(op string, a, b float64) float64 {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.NaN()
	}
	switch op {
	case "+":
		return a + b
	case "-":
		return a - b
	case "*":
		return a * b
	case "/":
		if b == 0 {
			return math.NaN()
		}
		return a / b
	case "^":
		return math.Pow(a, b)
	case ">":
		return boolVal(a > b)
	case "<":
		return boolVal(a < b)
	case ">=":
		return boolVal(a >= b)
	case "<=":
		return boolVal(a <= b)
	case "==":
		return boolVal(a == b)
	case "!=":
		return boolVal(a != b)
	case "and":
		return boolVal(a != 0 && b != 0)
	case "or":
		return boolVal(a != 0 || b != 0)
	}
	return math.NaN()
}

func boolVal(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
