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

// Package ast defines the expression and statement tree produced by
// internal/parser and walked by internal/buildcmd (first pass) and
// internal/interpreter (second pass).
package ast

import "github.com/hanion/cook/internal/token"

// Expression is the tagged-variant interface implemented by every
// expression node. The marker method keeps the set closed to this package.
type Expression interface {
	exprNode()
}

// Statement is the tagged-variant interface implemented by every statement
// node.
type Statement interface {
	stmtNode()
}

// Assignment is `name = value`. The parser guarantees name was a Variable.
type Assignment struct {
	Name  token.Token
	Value Expression
}

// Logical is a `&&`/`||` expression. Recognized by the parser but carries no
// runtime semantics in the constructor (see spec Non-goals).
type Logical struct {
	Left  Expression
	Op    token.Token
	Right Expression
}

// Binary is an arithmetic or comparison expression.
type Binary struct {
	Left  Expression
	Op    token.Token
	Right Expression
}

// Unary is a prefix `!`, `-`, `++`, or `--` expression.
type Unary struct {
	Op    token.Token
	Right Expression
}

// Chain is the `a.b` syntax: evaluate Left; while its value is a build
// command, make it current while Right is evaluated.
type Chain struct {
	Left  Expression
	Right Expression
}

// LiteralInt is an integer literal.
type LiteralInt struct {
	Token token.Token
	Value int32
}

// LiteralFloat is a floating point literal.
type LiteralFloat struct {
	Token token.Token
	Value float32
}

// LiteralString is a string literal, including the call-argument bare-word
// and macro forms the parser synthesizes (see internal/parser).
type LiteralString struct {
	Token token.Token
	Value string
}

// Variable is a bare identifier reference.
type Variable struct {
	Name token.Token
}

// Grouping is a parenthesized expression.
type Grouping struct {
	Inner Expression
}

// Call is `callee(args...)`.
type Call struct {
	Callee Expression
	Paren  token.Token // the '(' token, used for error locations
	Args   []Expression
}

func (*Assignment) exprNode()    {}
func (*Logical) exprNode()       {}
func (*Binary) exprNode()        {}
func (*Unary) exprNode()         {}
func (*Chain) exprNode()         {}
func (*LiteralInt) exprNode()    {}
func (*LiteralFloat) exprNode()  {}
func (*LiteralString) exprNode() {}
func (*Variable) exprNode()      {}
func (*Grouping) exprNode()      {}
func (*Call) exprNode()          {}

// ExpressionStmt wraps a bare expression used as a statement.
type ExpressionStmt struct {
	Expr Expression
}

// BlockStmt is `{ stmts... }` or an entire parsed program.
type BlockStmt struct {
	Stmts []Statement
}

// DescriptionStmt is the `head { body }` syntax.
type DescriptionStmt struct {
	Head Statement
	Body *BlockStmt
}

func (*ExpressionStmt) stmtNode()  {}
func (*BlockStmt) stmtNode()       {}
func (*DescriptionStmt) stmtNode() {}
