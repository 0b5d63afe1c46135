// Package formula evaluates parametric quantity expressions such as
// "{wall_lf} * {ceiling_height_ft} / 32". Formulas are arithmetic over named
// measurement variables; there is no dynamic code execution.
package formula

import (
	"math"
	"strings"
	"unicode"
)

// Result is the outcome of evaluating one formula. Value is nil when any
// referenced variable is missing or the formula cannot be evaluated; in the
// missing-variable case MissingVars lists the absent names.
type Result struct {
	Value       *float64
	MissingVars []string
}

// Evaluate tokenizes and evaluates a formula against the variable bindings.
// Behavior is fail-closed: if any referenced variable is absent, evaluation
// is skipped entirely and the missing names are reported instead of a
// partial numeric result. A successful value is rounded up to the nearest
// hundredth, preferring slight over-ordering to under-ordering for physical
// quantities. Evaluate never panics.
func Evaluate(formula string, vars map[string]float64) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{}
		}
	}()

	tokens := tokenize(formula)
	if len(tokens) == 0 {
		return Result{}
	}

	var missing []string
	seen := map[string]bool{}
	for _, tok := range tokens {
		if tok.kind != tokIdent || seen[tok.text] {
			continue
		}
		seen[tok.text] = true
		if _, ok := vars[tok.text]; !ok {
			missing = append(missing, tok.text)
		}
	}
	if len(missing) > 0 {
		return Result{MissingVars: missing}
	}

	p := &parser{tokens: tokens, vars: vars}
	value, ok := p.expression()
	if !ok || p.pos != len(p.tokens) {
		return Result{}
	}

	rounded := math.Ceil(value*100) / 100
	return Result{Value: &rounded}
}

// ExtractVariables returns the deduplicated variable names a formula
// references, in order of first appearance. Callers use it to know a
// formula's requirements before supplying bindings.
func ExtractVariables(formula string) []string {
	var names []string
	seen := map[string]bool{}
	for _, tok := range tokenize(formula) {
		if tok.kind == tokIdent && !seen[tok.text] {
			seen[tok.text] = true
			names = append(names, tok.text)
		}
	}
	return names
}

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokLParen
	tokRParen
)

type token struct {
	kind  tokenKind
	text  string
	value float64
}

// tokenize scans the formula. Whitespace and unrecognized characters are
// skipped rather than raising errors; variable names may optionally be
// wrapped in braces ("{wall_lf}" and "wall_lf" are equivalent).
func tokenize(formula string) []token {
	var tokens []token
	runes := []rune(formula)

	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '+':
			tokens = append(tokens, token{kind: tokPlus})
			i++
		case r == '-':
			tokens = append(tokens, token{kind: tokMinus})
			i++
		case r == '*':
			tokens = append(tokens, token{kind: tokStar})
			i++
		case r == '/':
			tokens = append(tokens, token{kind: tokSlash})
			i++
		case r == '(':
			tokens = append(tokens, token{kind: tokLParen})
			i++
		case r == ')':
			tokens = append(tokens, token{kind: tokRParen})
			i++
		case r == '{':
			j := i + 1
			var sb strings.Builder
			for j < len(runes) && runes[j] != '}' {
				sb.WriteRune(runes[j])
				j++
			}
			if j < len(runes) {
				j++ // consume '}'
			}
			name := strings.TrimSpace(sb.String())
			if name != "" {
				tokens = append(tokens, token{kind: tokIdent, text: name})
			}
			i = j
		case unicode.IsDigit(r) || r == '.':
			j := i
			for j < len(runes) && (unicode.IsDigit(runes[j]) || runes[j] == '.') {
				j++
			}
			text := string(runes[i:j])
			tokens = append(tokens, token{kind: tokNumber, value: parseNumber(text)})
			i = j
		case unicode.IsLetter(r) || r == '_':
			j := i
			for j < len(runes) && (unicode.IsLetter(runes[j]) || unicode.IsDigit(runes[j]) || runes[j] == '_') {
				j++
			}
			tokens = append(tokens, token{kind: tokIdent, text: string(runes[i:j])})
			i = j
		default:
			// unrecognized rune: skip
			i++
		}
	}

	return tokens
}

func parseNumber(text string) float64 {
	var value, frac float64
	var fracDiv float64 = 1
	inFrac := false
	for _, r := range text {
		if r == '.' {
			if inFrac {
				break
			}
			inFrac = true
			continue
		}
		d := float64(r - '0')
		if inFrac {
			fracDiv *= 10
			frac += d / fracDiv
		} else {
			value = value*10 + d
		}
	}
	return value + frac
}

// parser is a left-associative recursive descent evaluator:
//
//	expression := term (('+'|'-') term)*
//	term       := factor (('*'|'/') factor)*
//	factor     := number | variable | '(' expression ')' | '-' factor
type parser struct {
	tokens []token
	pos    int
	vars   map[string]float64
}

func (p *parser) peek() (token, bool) {
	if p.pos >= len(p.tokens) {
		return token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *parser) expression() (float64, bool) {
	left, ok := p.term()
	if !ok {
		return 0, false
	}
	for {
		tok, ok := p.peek()
		if !ok || (tok.kind != tokPlus && tok.kind != tokMinus) {
			return left, true
		}
		p.pos++
		right, ok := p.term()
		if !ok {
			return 0, false
		}
		if tok.kind == tokPlus {
			left += right
		} else {
			left -= right
		}
	}
}

func (p *parser) term() (float64, bool) {
	left, ok := p.factor()
	if !ok {
		return 0, false
	}
	for {
		tok, ok := p.peek()
		if !ok || (tok.kind != tokStar && tok.kind != tokSlash) {
			return left, true
		}
		p.pos++
		right, ok := p.factor()
		if !ok {
			return 0, false
		}
		if tok.kind == tokStar {
			left *= right
		} else if right == 0 {
			// division by zero yields 0 rather than raising
			left = 0
		} else {
			left /= right
		}
	}
}

func (p *parser) factor() (float64, bool) {
	tok, ok := p.peek()
	if !ok {
		return 0, false
	}
	switch tok.kind {
	case tokNumber:
		p.pos++
		return tok.value, true
	case tokIdent:
		p.pos++
		return p.vars[tok.text], true
	case tokMinus:
		p.pos++
		v, ok := p.factor()
		if !ok {
			return 0, false
		}
		return -v, true
	case tokLParen:
		p.pos++
		v, ok := p.expression()
		if !ok {
			return 0, false
		}
		closing, ok := p.peek()
		if !ok || closing.kind != tokRParen {
			return 0, false
		}
		p.pos++
		return v, true
	default:
		return 0, false
	}
}
