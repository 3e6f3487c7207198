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

// Package interpreter implements the second AST pass (spec.md §4.6): a
// re-walk that skips any subtree rooted at a clean, non-root BC, and fires
// the side effects the constructor pass deliberately defers — currently
// only `echo`, since its output must wait until dirtiness is known so that
// clean subtrees stay quiet.
package interpreter

import (
	"fmt"
	"io"

	"github.com/hanion/cook/internal/ast"
	"github.com/hanion/cook/internal/buildcmd"
	"github.com/hanion/cook/internal/method"
)

// Interpreter re-walks a constructed Tree, printing echo output to Out.
type Interpreter struct {
	Out    io.Writer
	tree   *buildcmd.Tree
	stmtBC buildcmd.StmtBC
}

// New returns an Interpreter for tree/stmtBC (as produced by
// buildcmd.Constructor.Build), writing echo output to out.
func New(tree *buildcmd.Tree, stmtBC buildcmd.StmtBC, out io.Writer) *Interpreter {
	return &Interpreter{Out: out, tree: tree, stmtBC: stmtBC}
}

// Run walks root, skipping clean non-root subtrees.
func (in *Interpreter) Run(root *ast.BlockStmt) {
	in.walkStmt(root)
}

func (in *Interpreter) walkStmt(s ast.Statement) {
	if id, ok := in.stmtBC[s]; ok {
		bc := in.tree.Get(id)
		if id != in.tree.Root && !bc.Dirty {
			return
		}
	}

	switch st := s.(type) {
	case *ast.BlockStmt:
		for _, child := range st.Stmts {
			in.walkStmt(child)
		}

	case *ast.DescriptionStmt:
		in.walkStmt(st.Head)
		in.walkStmt(st.Body)

	case *ast.ExpressionStmt:
		in.evalExpr(st.Expr)
	}
}

// evalExpr recurses through an expression looking only for echo calls; every
// other method call is a no-op here because the BC tree is already built.
func (in *Interpreter) evalExpr(e ast.Expression) {
	switch ex := e.(type) {
	case *ast.Chain:
		in.evalExpr(ex.Left)
		in.evalExpr(ex.Right)

	case *ast.Grouping:
		in.evalExpr(ex.Inner)

	case *ast.Assignment:
		in.evalExpr(ex.Value)

	case *ast.Logical:
		in.evalExpr(ex.Left)
		in.evalExpr(ex.Right)

	case *ast.Binary:
		in.evalExpr(ex.Left)
		in.evalExpr(ex.Right)

	case *ast.Unary:
		in.evalExpr(ex.Right)

	case *ast.Call:
		in.evalCall(ex)
	}
}

func (in *Interpreter) evalCall(call *ast.Call) {
	in.evalExpr(call.Callee)
	for _, a := range call.Args {
		in.evalExpr(a)
	}

	v, ok := call.Callee.(*ast.Variable)
	if !ok {
		return
	}
	k, ok := method.Lookup(v.Name.Lexeme)
	if !ok || k != method.Echo {
		return
	}
	if len(call.Args) != 1 {
		return // arity already rejected during construction
	}
	if s, ok := literalString(call.Args[0]); ok {
		fmt.Fprintln(in.Out, s)
	}
}

func literalString(e ast.Expression) (string, bool) {
	switch ex := e.(type) {
	case *ast.LiteralString:
		return ex.Value, true
	case *ast.LiteralInt:
		return fmt.Sprintf("%d", ex.Value), true
	case *ast.LiteralFloat:
		return fmt.Sprintf("%g", ex.Value), true
	case *ast.Variable:
		return ex.Name.Lexeme, true
	}
	return "", false
}
