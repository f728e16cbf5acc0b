// Copyright 2026 The AtomGrad Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package units

import (
	"fmt"
	"math"
	"strconv"
)

// parser is a recursive-descent parser for unit expressions.
//
// Grammar:
//
//	expr   := term (('*' | '/') term)*
//	term   := factor ('^' exponent)?
//	factor := unit | number | '(' expr ')'
type parser struct {
	input string
	pos   int
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && p.input[p.pos] == ' ' {
		p.pos++
	}
}

func (p *parser) peek() (byte, bool) {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return 0, false
	}
	return p.input[p.pos], true
}

func (p *parser) parseExpr() (float64, error) {
	v, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		c, ok := p.peek()
		if !ok || (c != '*' && c != '/') {
			return v, nil
		}
		p.pos++
		rhs, err := p.parseTerm()
		if err != nil {
			return 0, err
		}
		if c == '*' {
			v *= rhs
		} else {
			v /= rhs
		}
	}
}

func (p *parser) parseTerm() (float64, error) {
	v, err := p.parseFactor()
	if err != nil {
		return 0, err
	}
	c, ok := p.peek()
	if !ok || c != '^' {
		return v, nil
	}
	p.pos++
	exp, err := p.parseExponent()
	if err != nil {
		return 0, err
	}
	return math.Pow(v, exp), nil
}

func (p *parser) parseFactor() (float64, error) {
	c, ok := p.peek()
	if !ok {
		return 0, fmt.Errorf("unexpected end of expression")
	}
	if c == '(' {
		p.pos++
		v, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		c, ok = p.peek()
		if !ok || c != ')' {
			return 0, fmt.Errorf("missing closing parenthesis")
		}
		p.pos++
		return v, nil
	}
	if isDigit(c) || c == '.' {
		return p.parseNumber()
	}
	if isIdentStart(c) {
		start := p.pos
		for p.pos < len(p.input) && isIdentPart(p.input[p.pos]) {
			p.pos++
		}
		return Lookup(p.input[start:p.pos])
	}
	return 0, fmt.Errorf("unexpected %q at offset %d", c, p.pos)
}

// parseExponent accepts an optionally negated number or parenthesized
// expression, so both x^3 and x^-1 and x^(1/2) work.
func (p *parser) parseExponent() (float64, error) {
	c, ok := p.peek()
	if !ok {
		return 0, fmt.Errorf("missing exponent")
	}
	if c == '-' {
		p.pos++
		v, err := p.parseExponent()
		if err != nil {
			return 0, err
		}
		return -v, nil
	}
	if c == '(' {
		return p.parseFactor()
	}
	return p.parseNumber()
}

func (p *parser) parseNumber() (float64, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.input) && (isDigit(p.input[p.pos]) || p.input[p.pos] == '.') {
		p.pos++
	}
	if start == p.pos {
		return 0, fmt.Errorf("expected number at offset %d", start)
	}
	v, err := strconv.ParseFloat(p.input[start:p.pos], 64)
	if err != nil {
		return 0, fmt.Errorf("bad number %q: %w", p.input[start:p.pos], err)
	}
	return v, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
