/*
	Copyright (c) 2022 Tomas Glozar

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU Affero General Public License as published by
	the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU General Public License for more details.

	You should have received a copy of the GNU General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.

	Copyright (c) 2013, Daniel C. Jones <dcjones@cs.washington.edu>
	All rights reserved.

	Redistribution and use in source and binary forms, with or without
	modification, are permitted provided that the following conditions are met:

	1. Redistributions of source code must retain the above copyright notice, this
	   list of conditions and the following disclaimer.
	2. Redistributions in binary form must reproduce the above copyright notice,
	   this list of conditions and the following disclaimer in the documentation
	   and/or other materials provided with the distribution.

	THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS" AND
	ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE IMPLIED
	WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
	DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT OWNER OR CONTRIBUTORS BE LIABLE FOR
	ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES
	(INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES;
	LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND
	ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
	(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE OF THIS
	SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

	The views and conclusions contained in the software and documentation are those
	of the authors and should not be interpreted as representing official policies,
	either expressed or implied, of the FreeBSD Project.
*/

// Package parser implements cook's recursive-descent parser: a precedence
// ladder over a token stream, producing a single root ast.BlockStmt.
//
// Grounded on the two-token-lookahead (current/peek) recursive-descent
// style used across the retrieved parser corpus (e.g. the drun-style
// lexer/parser split), rather than the teacher's line-oriented
// state-function parser, which suits mkfile's very different rule grammar.
// Error recovery (report on the previous token, advance once, keep going)
// follows the teacher's "never abort, just flag" philosophy.
package parser

import (
	"fmt"
	"strconv"

	"github.com/hanion/cook/internal/ast"
	"github.com/hanion/cook/internal/lexer"
	"github.com/hanion/cook/internal/token"
)

// maxCallArgs is the maximum number of arguments a single call may carry;
// anything beyond this is a parse error but parsing still completes with
// the first maxCallArgs arguments kept.
const maxCallArgs = 63

// Parser holds one token of lookahead beyond `current` (`next`), plus the
// last consumed token (`previous`), as spec.md §4.3 requires.
type Parser struct {
	file string
	src  string
	lex  *lexer.Lexer

	previous token.Token
	current  token.Token
	next     token.Token

	errs *ErrorList
}

// New creates a parser over src, reporting diagnostics against file.
func New(file, src string) *Parser {
	p := &Parser{file: file, src: src, lex: lexer.New(src), errs: &ErrorList{}}
	p.current = p.lex.Next()
	p.next = p.lex.Next()
	return p
}

// Parse consumes the entire token stream and returns the root block
// statement plus any accumulated (non-fatal) syntax errors.
func (p *Parser) Parse() (*ast.BlockStmt, *ErrorList) {
	var stmts []ast.Statement
	for p.current.Kind != token.EOF {
		stmts = append(stmts, p.statement())
	}
	return &ast.BlockStmt{Stmts: stmts}, p.errs
}

func (p *Parser) advance() token.Token {
	p.previous = p.current
	p.current = p.next
	p.next = p.lex.Next()
	return p.previous
}

func (p *Parser) check(k token.Kind) bool {
	return p.current.Kind == k
}

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

// expect consumes current if it matches kind; otherwise it reports a
// SyntaxError on the previous token (per spec.md §4.3) and advances once to
// recover, so the parser always makes progress.
func (p *Parser) expect(kind token.Kind, expectedDesc string) token.Token {
	if p.check(kind) {
		return p.advance()
	}
	p.errorAtPrevious(expectedDesc)
	return p.advance()
}

func (p *Parser) errorAtPrevious(expectedDesc string) {
	p.errs.add(SyntaxError{
		File:    p.file,
		Line:    p.previous.Line,
		Col:     p.previous.Col,
		Kind:    p.previous.Kind,
		Message: fmt.Sprintf("expected %s but found '%s'", expectedDesc, p.current),
	})
}

// --- statements ---

func (p *Parser) statement() ast.Statement {
	if p.check(token.LBrace) {
		return p.block()
	}

	expr := p.expression()

	if p.check(token.LBrace) {
		body := p.block()
		return &ast.DescriptionStmt{Head: &ast.ExpressionStmt{Expr: expr}, Body: body}
	}

	p.match(token.Semicolon) // trailing ';' is optional and silently consumed

	return &ast.ExpressionStmt{Expr: expr}
}

func (p *Parser) block() *ast.BlockStmt {
	p.expect(token.LBrace, "'{'")
	var stmts []ast.Statement
	for !p.check(token.RBrace) && p.current.Kind != token.EOF {
		stmts = append(stmts, p.statement())
	}
	p.expect(token.RBrace, "a closing '}'")
	return &ast.BlockStmt{Stmts: stmts}
}

// --- expressions: precedence ladder, low to high ---

func (p *Parser) expression() ast.Expression {
	return p.assignment()
}

func (p *Parser) assignment() ast.Expression {
	expr := p.logicalOr()

	if p.check(token.Assign) {
		eq := p.advance()
		value := p.assignment()
		if v, ok := expr.(*ast.Variable); ok {
			return &ast.Assignment{Name: v.Name, Value: value}
		}
		p.errs.add(SyntaxError{
			File: p.file, Line: eq.Line, Col: eq.Col, Kind: eq.Kind,
			Message: "left-hand side of assignment must be a variable",
		})
		return expr
	}

	return expr
}

func (p *Parser) logicalOr() ast.Expression {
	expr := p.logicalAnd()
	for p.check(token.OrOr) {
		op := p.advance()
		expr = &ast.Logical{Left: expr, Op: op, Right: p.logicalAnd()}
	}
	return expr
}

func (p *Parser) logicalAnd() ast.Expression {
	expr := p.equality()
	for p.check(token.AndAnd) {
		op := p.advance()
		expr = &ast.Logical{Left: expr, Op: op, Right: p.equality()}
	}
	return expr
}

func (p *Parser) equality() ast.Expression {
	expr := p.comparison()
	for p.check(token.Eq) || p.check(token.NotEq) {
		op := p.advance()
		expr = &ast.Binary{Left: expr, Op: op, Right: p.comparison()}
	}
	return expr
}

func (p *Parser) comparison() ast.Expression {
	expr := p.term()
	for p.check(token.Lt) || p.check(token.LtEq) || p.check(token.Gt) || p.check(token.GtEq) {
		op := p.advance()
		expr = &ast.Binary{Left: expr, Op: op, Right: p.term()}
	}
	return expr
}

func (p *Parser) term() ast.Expression {
	expr := p.factor()
	for p.check(token.Plus) || p.check(token.Minus) {
		op := p.advance()
		expr = &ast.Binary{Left: expr, Op: op, Right: p.factor()}
	}
	return expr
}

func (p *Parser) factor() ast.Expression {
	expr := p.unary()
	for p.check(token.Star) || p.check(token.Slash) || p.check(token.Percent) {
		op := p.advance()
		expr = &ast.Binary{Left: expr, Op: op, Right: p.unary()}
	}
	return expr
}

func (p *Parser) unary() ast.Expression {
	if p.check(token.Bang) || p.check(token.Minus) || p.check(token.PlusPlus) || p.check(token.MinusMinus) {
		op := p.advance()
		return &ast.Unary{Op: op, Right: p.unary()}
	}
	return p.call()
}

// call implements `call := primary ( '(' call_args ')' | '.' call )*`. The
// right side of a Chain is parsed by recursing into call itself, so `a.b.c`
// and `a.b(c)` both nest correctly.
func (p *Parser) call() ast.Expression {
	expr := p.primary()
	for {
		switch {
		case p.check(token.LParen):
			expr = p.finishCall(expr)
		case p.check(token.Dot):
			p.advance()
			return &ast.Chain{Left: expr, Right: p.call()}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expression) ast.Expression {
	paren := p.advance() // '('

	var args []ast.Expression
	overflowed := false

	if !p.check(token.RParen) {
		for {
			arg := p.callArgument()
			if len(args) < maxCallArgs {
				args = append(args, arg)
			} else if !overflowed {
				overflowed = true
				p.errs.add(SyntaxError{
					File: p.file, Line: paren.Line, Col: paren.Col, Kind: paren.Kind,
					Message: fmt.Sprintf("call has more than %d arguments", maxCallArgs),
				})
			}
			if !p.match(token.Comma) {
				break
			}
		}
	}

	p.expect(token.RParen, "a closing ')'")
	return &ast.Call{Callee: callee, Paren: paren, Args: args}
}

// callArgument implements the three call-argument forms of spec.md §4.3:
// a '$'-prefixed expression, a bare token run synthesized into one string
// literal (keeping interior whitespace verbatim), or a reserved '@'-prefixed
// macro form (captured the same way as a bare run, never evaluated).
func (p *Parser) callArgument() ast.Expression {
	if p.check(token.Dollar) {
		p.advance()
		return p.expression()
	}

	start := p.current
	if p.check(token.At) {
		p.advance()
	}

	end := start.Start
	for !p.check(token.Comma) && !p.check(token.RParen) && !p.check(token.Dollar) && p.current.Kind != token.EOF {
		end = p.advance().End
	}
	if end < start.Start {
		end = start.Start
	}

	return &ast.LiteralString{Token: start, Value: p.src[start.Start:end]}
}

func (p *Parser) primary() ast.Expression {
	switch {
	case p.check(token.Identifier):
		t := p.advance()
		return &ast.Variable{Name: t}

	case p.check(token.Int):
		t := p.advance()
		v, _ := strconv.ParseInt(t.Lexeme, 10, 32)
		return &ast.LiteralInt{Token: t, Value: int32(v)}

	case p.check(token.Float):
		t := p.advance()
		v, _ := strconv.ParseFloat(t.Lexeme, 32)
		return &ast.LiteralFloat{Token: t, Value: float32(v)}

	case p.check(token.String):
		t := p.advance()
		return &ast.LiteralString{Token: t, Value: t.Lexeme}

	case p.check(token.True) || p.check(token.False):
		t := p.advance()
		return &ast.LiteralString{Token: t, Value: t.Lexeme}

	case p.check(token.LParen):
		p.advance()
		inner := p.expression()
		p.expect(token.RParen, "a closing ')'")
		return &ast.Grouping{Inner: inner}

	default:
		t := p.current
		p.errorAtPrevious("an identifier, literal, or '('")
		p.advance()
		return &ast.LiteralString{Token: t, Value: ""}
	}
}
