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

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanion/cook/internal/ast"
)

func parse(t *testing.T, src string) *ast.BlockStmt {
	t.Helper()
	p := New("test.cook", src)
	block, errs := p.Parse()
	require.False(t, errs.HasErrors(), "unexpected parse errors: %v", errs.Errors)
	return block
}

func TestParseSimpleCall(t *testing.T) {
	block := parse(t, `build(hello)`)
	require.Len(t, block.Stmts, 1)

	es, ok := block.Stmts[0].(*ast.ExpressionStmt)
	require.True(t, ok)

	call, ok := es.Expr.(*ast.Call)
	require.True(t, ok)
	require.Len(t, call.Args, 1)

	arg, ok := call.Args[0].(*ast.LiteralString)
	require.True(t, ok)
	assert.Equal(t, "hello", arg.Value)
}

func TestParseVariadicArgs(t *testing.T) {
	block := parse(t, `build(file, token, lexer)`)
	call := block.Stmts[0].(*ast.ExpressionStmt).Expr.(*ast.Call)
	require.Len(t, call.Args, 3)
	assert.Equal(t, "file", call.Args[0].(*ast.LiteralString).Value)
	assert.Equal(t, "token", call.Args[1].(*ast.LiteralString).Value)
	assert.Equal(t, "lexer", call.Args[2].(*ast.LiteralString).Value)
}

func TestParseChain(t *testing.T) {
	block := parse(t, `build(foo).build(bar)`)
	chain := block.Stmts[0].(*ast.ExpressionStmt).Expr.(*ast.Chain)

	left := chain.Left.(*ast.Call)
	assert.Equal(t, "foo", left.Args[0].(*ast.LiteralString).Value)

	right := chain.Right.(*ast.Call)
	assert.Equal(t, "bar", right.Args[0].(*ast.LiteralString).Value)
}

func TestParseDescription(t *testing.T) {
	block := parse(t, `build(app) { build(util) }`)
	desc := block.Stmts[0].(*ast.DescriptionStmt)

	head := desc.Head.(*ast.ExpressionStmt).Expr.(*ast.Call)
	assert.Equal(t, "app", head.Args[0].(*ast.LiteralString).Value)

	require.Len(t, desc.Body.Stmts, 1)
}

func TestParseMaxCallArgsOverflowReportsOneError(t *testing.T) {
	src := "build("
	for i := 0; i < maxCallArgs+5; i++ {
		if i > 0 {
			src += ", "
		}
		src += "x"
	}
	src += ")"

	p := New("test.cook", src)
	block, errs := p.Parse()

	require.Len(t, errs.Errors, 1)
	call := block.Stmts[0].(*ast.ExpressionStmt).Expr.(*ast.Call)
	assert.Len(t, call.Args, maxCallArgs)
}

func TestParseRecoversAfterSyntaxError(t *testing.T) {
	p := New("test.cook", "compiler(")
	block, errs := p.Parse()

	assert.True(t, errs.HasErrors(), "missing closing ')' should be reported")
	assert.NotEmpty(t, block.Stmts)
}
