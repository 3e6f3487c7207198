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

// Package token defines the token kinds produced by the cook lexer and the
// keyword/character classification rules the lexer and parser share.
package token

import "strings"

// Kind identifies the lexical category of a Token.
type Kind int

const (
	EOF Kind = iota
	Invalid

	Identifier
	Int
	Float
	String

	LParen
	RParen
	LBrace
	RBrace
	Comma
	Dot
	Semicolon
	Dollar
	At

	Plus
	Minus
	Star
	Slash
	Percent
	Bang

	Assign
	Eq
	NotEq
	Lt
	LtEq
	Gt
	GtEq

	AndAnd
	OrOr
	Amp
	Pipe
	Caret
	Shl
	Shr

	PlusEq
	MinusEq
	StarEq
	SlashEq
	PercentEq
	AmpEq
	PipeEq
	CaretEq

	PlusPlus
	MinusMinus

	// Keywords
	If
	Else
	For
	While
	Break
	Continue
	Return
	Switch
	Case
	Default
	True
	False
)

var names = map[Kind]string{
	EOF:        "eof",
	Invalid:    "invalid",
	Identifier: "identifier",
	Int:        "int",
	Float:      "float",
	String:     "string",
	LParen:     "(",
	RParen:     ")",
	LBrace:     "{",
	RBrace:     "}",
	Comma:      ",",
	Dot:        ".",
	Semicolon:  ";",
	Dollar:     "$",
	At:         "@",
	Plus:       "+",
	Minus:      "-",
	Star:       "*",
	Slash:      "/",
	Percent:    "%",
	Bang:       "!",
	Assign:     "=",
	Eq:         "==",
	NotEq:      "!=",
	Lt:         "<",
	LtEq:       "<=",
	Gt:         ">",
	GtEq:       ">=",
	AndAnd:     "&&",
	OrOr:       "||",
	Amp:        "&",
	Pipe:       "|",
	Caret:      "^",
	Shl:        "<<",
	Shr:        ">>",
	PlusEq:     "+=",
	MinusEq:    "-=",
	StarEq:     "*=",
	SlashEq:    "/=",
	PercentEq:  "%=",
	AmpEq:      "&=",
	PipeEq:     "|=",
	CaretEq:    "^=",
	PlusPlus:   "++",
	MinusMinus: "--",
	If:         "if",
	Else:       "else",
	For:        "for",
	While:      "while",
	Break:      "break",
	Continue:   "continue",
	Return:     "return",
	Switch:     "switch",
	Case:       "case",
	Default:    "default",
	True:       "true",
	False:      "false",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return "[mystery-token]"
}

// keywords is the closed set of reserved identifiers recognized by the lexer.
var keywords = map[string]Kind{
	"if":       If,
	"else":     Else,
	"for":      For,
	"while":    While,
	"break":    Break,
	"continue": Continue,
	"return":   Return,
	"switch":   Switch,
	"case":     Case,
	"default":  Default,
	"true":     True,
	"false":    False,
}

// Keyword reports whether text is a reserved keyword, returning its Kind.
func Keyword(text string) (Kind, bool) {
	k, ok := keywords[text]
	return k, ok
}

// IsIdentStart reports whether c may begin an identifier: a byte >= 0x80 (the
// start of a multi-byte UTF-8 sequence), '_', or an ASCII letter.
func IsIdentStart(c byte) bool {
	return c >= 0x80 || c == '_' || isAlpha(c)
}

// IsIdentCont reports whether c may continue an identifier already begun.
func IsIdentCont(c byte) bool {
	return IsIdentStart(c) || isDigit(c)
}

// IsDigit reports whether c is an ASCII decimal digit.
func IsDigit(c byte) bool {
	return isDigit(c)
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// Token is a single lexical token: its kind, the exact source slice it
// spans, and its (line, column) plus byte-offset span, so the parser can
// synthesize new string literals that span several tokens verbatim.
type Token struct {
	Kind   Kind
	Lexeme string
	Line   int
	Col    int
	Start  int // byte offset of the first byte, in the source buffer
	End    int // byte offset one past the last byte
}

func (t Token) String() string {
	if t.Kind == Invalid {
		return t.Lexeme
	}
	if s, ok := names[t.Kind]; ok && t.Lexeme == "" {
		return s
	}
	return t.Lexeme
}

// IsOneOf reports whether t.Kind matches any of kinds.
func (t Token) IsOneOf(kinds ...Kind) bool {
	for _, k := range kinds {
		if t.Kind == k {
			return true
		}
	}
	return false
}

// JoinLexemes is a small helper used by error messages that list several
// expected token kinds.
func JoinLexemes(kinds ...Kind) string {
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = k.String()
	}
	return strings.Join(parts, ", ")
}
