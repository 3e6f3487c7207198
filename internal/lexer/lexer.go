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

// Package lexer turns recipe source text into a stream of tokens.
//
// The lexer never reports a hard error: malformed bytes become
// token.Invalid tokens and it is the parser's job to turn those into
// diagnostics. Grounded on the teacher's (lenticularis39-mk) restartable,
// copy-for-peek lexer: a Lexer is a small value type so Peek can operate on
// a throwaway copy instead of needing to push tokens back.
package lexer

import "github.com/hanion/cook/internal/token"

// Lexer lexes a single immutable source buffer. It is deliberately a small
// value type (no pointers into itself) so that Peek can cheaply lex one
// token from a copy without disturbing l.
type Lexer struct {
	src  string
	pos  int
	line int
	col  int
}

// New returns a Lexer positioned at the start of src.
func New(src string) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

// Next consumes and returns the next token in the stream. At end of input it
// returns token.EOF repeatedly.
func (l *Lexer) Next() token.Token {
	l.skipWhitespaceAndComments()

	startPos, startLine, startCol := l.pos, l.line, l.col

	c, ok := l.peekByte()
	if !ok {
		return l.make(token.EOF, startPos, startLine, startCol)
	}

	switch {
	case c == '"':
		return l.lexString(startLine, startCol)
	case token.IsDigit(c):
		return l.lexNumber(startPos, startLine, startCol)
	case token.IsIdentStart(c):
		return l.lexIdentifier(startPos, startLine, startCol)
	}

	return l.lexOperator(startPos, startLine, startCol)
}

// Peek returns the next token without consuming it, by lexing from a copy.
func (l *Lexer) Peek() token.Token {
	cp := *l
	return cp.Next()
}

func (l *Lexer) make(kind token.Kind, startPos, startLine, startCol int) token.Token {
	return token.Token{
		Kind:   kind,
		Lexeme: l.src[startPos:l.pos],
		Line:   startLine,
		Col:    startCol,
		Start:  startPos,
		End:    l.pos,
	}
}

func (l *Lexer) peekByte() (byte, bool) {
	if l.pos >= len(l.src) {
		return 0, false
	}
	return l.src[l.pos], true
}

func (l *Lexer) peekByteAt(offset int) (byte, bool) {
	p := l.pos + offset
	if p >= len(l.src) {
		return 0, false
	}
	return l.src[p], true
}

func (l *Lexer) advance() byte {
	c := l.src[l.pos]
	l.pos++
	if c == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return c
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		c, ok := l.peekByte()
		if !ok {
			return
		}
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.advance()
		case c == '#':
			l.skipLineComment()
		case c == '/' && peekIs(l, 1, '/'):
			l.skipLineComment()
		default:
			return
		}
	}
}

func peekIs(l *Lexer, offset int, want byte) bool {
	c, ok := l.peekByteAt(offset)
	return ok && c == want
}

func (l *Lexer) skipLineComment() {
	for {
		c, ok := l.peekByte()
		if !ok || c == '\n' {
			return
		}
		l.advance()
	}
}

func (l *Lexer) lexString(line, col int) token.Token {
	l.advance() // opening '"'
	contentStart := l.pos
	for {
		c, ok := l.peekByte()
		if !ok || c == '"' {
			break
		}
		l.advance()
	}
	contentEnd := l.pos
	if _, ok := l.peekByte(); ok {
		l.advance() // closing '"'
	}
	return token.Token{
		Kind:   token.String,
		Lexeme: l.src[contentStart:contentEnd],
		Line:   line,
		Col:    col,
		Start:  contentStart,
		End:    contentEnd,
	}
}

func (l *Lexer) lexNumber(startPos, line, col int) token.Token {
	for {
		c, ok := l.peekByte()
		if !ok || !token.IsDigit(c) {
			break
		}
		l.advance()
	}

	isFloat := false
	if c, ok := l.peekByte(); ok && c == '.' {
		if c2, ok2 := l.peekByteAt(1); ok2 && token.IsDigit(c2) {
			isFloat = true
			l.advance() // '.'
			for {
				c, ok := l.peekByte()
				if !ok || !token.IsDigit(c) {
					break
				}
				l.advance()
			}
		}
	}

	kind := token.Int
	if isFloat {
		kind = token.Float
	}
	return l.make(kind, startPos, line, col)
}

func (l *Lexer) lexIdentifier(startPos, line, col int) token.Token {
	for {
		c, ok := l.peekByte()
		if !ok || !token.IsIdentCont(c) {
			break
		}
		l.advance()
	}
	lexeme := l.src[startPos:l.pos]
	if kind, ok := token.Keyword(lexeme); ok {
		return token.Token{Kind: kind, Lexeme: lexeme, Line: line, Col: col, Start: startPos, End: l.pos}
	}
	return l.make(token.Identifier, startPos, line, col)
}

// two-byte operator table, longest match first.
var twoByteOps = []struct {
	a, b byte
	kind token.Kind
}{
	{'=', '=', token.Eq},
	{'!', '=', token.NotEq},
	{'<', '=', token.LtEq},
	{'>', '=', token.GtEq},
	{'<', '<', token.Shl},
	{'>', '>', token.Shr},
	{'&', '&', token.AndAnd},
	{'|', '|', token.OrOr},
	{'+', '=', token.PlusEq},
	{'-', '=', token.MinusEq},
	{'*', '=', token.StarEq},
	{'/', '=', token.SlashEq},
	{'%', '=', token.PercentEq},
	{'&', '=', token.AmpEq},
	{'|', '=', token.PipeEq},
	{'^', '=', token.CaretEq},
	{'+', '+', token.PlusPlus},
	{'-', '-', token.MinusMinus},
}

var oneByteOps = map[byte]token.Kind{
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	',': token.Comma,
	'.': token.Dot,
	';': token.Semicolon,
	'$': token.Dollar,
	'@': token.At,
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'%': token.Percent,
	'!': token.Bang,
	'=': token.Assign,
	'<': token.Lt,
	'>': token.Gt,
	'&': token.Amp,
	'|': token.Pipe,
	'^': token.Caret,
}

func (l *Lexer) lexOperator(startPos, line, col int) token.Token {
	c := l.advance()
	if c2, ok := l.peekByte(); ok {
		for _, op := range twoByteOps {
			if op.a == c && op.b == c2 {
				l.advance()
				return l.make(op.kind, startPos, line, col)
			}
		}
	}
	if kind, ok := oneByteOps[c]; ok {
		return l.make(kind, startPos, line, col)
	}
	return l.make(token.Invalid, startPos, line, col)
}
