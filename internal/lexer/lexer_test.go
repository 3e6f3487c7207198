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

package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hanion/cook/internal/token"
)

func kinds(t *testing.T, src string) []token.Kind {
	t.Helper()
	l := New(src)
	var out []token.Kind
	for {
		tok := l.Next()
		out = append(out, tok.Kind)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func TestLexerPunctuationAndKeywords(t *testing.T) {
	got := kinds(t, `build(hello) { compiler(gcc) }`)
	want := []token.Kind{
		token.Identifier, token.LParen, token.Identifier, token.RParen,
		token.LBrace, token.Identifier, token.LParen, token.Identifier, token.RParen,
		token.RBrace, token.EOF,
	}
	assert.Equal(t, want, got)
}

func TestLexerSkipsLineComments(t *testing.T) {
	got := kinds(t, "# a comment\n// another\nbuild()")
	want := []token.Kind{token.Identifier, token.LParen, token.RParen, token.EOF}
	assert.Equal(t, want, got)
}

func TestLexerNumbers(t *testing.T) {
	l := New("42 3.14 5.")
	i := l.Next()
	assert.Equal(t, token.Int, i.Kind)
	assert.Equal(t, "42", i.Lexeme)

	f := l.Next()
	assert.Equal(t, token.Float, f.Kind)
	assert.Equal(t, "3.14", f.Lexeme)

	// a trailing '.' not followed by a digit is not part of the number.
	five := l.Next()
	assert.Equal(t, token.Int, five.Kind)
	assert.Equal(t, "5", five.Lexeme)
	dot := l.Next()
	assert.Equal(t, token.Dot, dot.Kind)
}

func TestLexerString(t *testing.T) {
	l := New(`"hello world"`)
	tok := l.Next()
	assert.Equal(t, token.String, tok.Kind)
	assert.Equal(t, "hello world", tok.Lexeme)
}

func TestLexerTwoByteOperators(t *testing.T) {
	got := kinds(t, "== != <= >= && || ++ --")
	want := []token.Kind{
		token.Eq, token.NotEq, token.LtEq, token.GtEq,
		token.AndAnd, token.OrOr, token.PlusPlus, token.MinusMinus, token.EOF,
	}
	assert.Equal(t, want, got)
}

func TestLexerPeekDoesNotConsume(t *testing.T) {
	l := New("build")
	peeked := l.Peek()
	next := l.Next()
	assert.Equal(t, peeked.Kind, next.Kind)
	assert.Equal(t, peeked.Lexeme, next.Lexeme)
}

func TestLexerTracksLineAndCol(t *testing.T) {
	l := New("a\nb")
	first := l.Next()
	assert.Equal(t, 1, first.Line)
	second := l.Next()
	assert.Equal(t, 2, second.Line)
	assert.Equal(t, 1, second.Col)
}
