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

package buildcmd

import (
	"fmt"

	"github.com/hanion/cook/internal/ast"
	"github.com/hanion/cook/internal/method"
	"github.com/hanion/cook/internal/symbol"
)

// ConstructionError is a fatal error raised while evaluating the AST into a
// BC tree: call-on-nil, call-on-non-method, arity mismatch, or an
// unsupported expression shape in argument position (spec.md §7). The
// constructor recovers its own panic of this type at the top of Build, so
// callers never see a panic escape the package.
type ConstructionError struct {
	Line    int
	Col     int
	Message string
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Message)
}

func fail(line, col int, format string, args ...any) {
	panic(&ConstructionError{Line: line, Col: col, Message: fmt.Sprintf(format, args...)})
}

// DefaultCompiler documents the tool's resolution of the source's own
// "cc vs gcc" inconsistency (see DESIGN.md): cook defaults the root BC's
// compiler to "gcc".
const DefaultCompiler = "gcc"

// Constructor evaluates a parsed AST into a Tree, following spec.md §4.5.
type Constructor struct {
	tree    *Tree
	current []ID // current-BC stack, save/restore discipline (spec.md §9)
	stmtBC  StmtBC
}

// NewConstructor allocates a fresh root BC and returns a ready Constructor.
func NewConstructor() *Constructor {
	tree := &Tree{}
	rootID := tree.newNode(BuildCommand{Parent: NoParent, Compiler: DefaultCompiler, Dirty: true})
	tree.Root = rootID
	return &Constructor{tree: tree, current: []ID{rootID}, stmtBC: StmtBC{}}
}

// Build evaluates root (the parsed program) into a Tree, expands target
// paths, and runs freshness analysis. A ConstructionError is returned
// (never panics past this point) if the AST contains a fatal construction
// error per spec.md §7.
func (c *Constructor) Build(root *ast.BlockStmt) (tree *Tree, stmtBC StmtBC, err error) {
	defer func() {
		if r := recover(); r != nil {
			if ce, ok := r.(*ConstructionError); ok {
				err = ce
				return
			}
			panic(r)
		}
	}()

	c.tree.Nodes[c.tree.Root].Stmt = root
	c.stmtBC[root] = c.tree.Root

	c.evalBlock(root)

	c.expand(c.tree.Root)
	c.freshness(c.tree.Root)
	c.tree.Nodes[c.tree.Root].Dirty = true // root is always dirty (spec.md §3)

	return c.tree, c.stmtBC, nil
}

func (c *Constructor) currentID() ID {
	return c.current[len(c.current)-1]
}

func (c *Constructor) push(id ID) {
	c.current = append(c.current, id)
}

func (c *Constructor) pop() {
	c.current = c.current[:len(c.current)-1]
}

// --- statement evaluation ---

func (c *Constructor) evalBlock(b *ast.BlockStmt) {
	for _, s := range b.Stmts {
		c.evalStmt(s)
	}
}

func (c *Constructor) evalStmt(s ast.Statement) {
	switch st := s.(type) {
	case *ast.BlockStmt:
		c.evalBlock(st)

	case *ast.DescriptionStmt:
		v := c.evalExpr(exprOfStmt(st.Head))
		if v.Kind == symbol.BuildCommand {
			id := ID(v.BC)
			c.tree.Nodes[id].Stmt = st.Body
			c.stmtBC[st.Body] = id
			c.push(id)
			c.evalBlock(st.Body)
			c.pop()
		} else {
			c.evalBlock(st.Body)
		}

	case *ast.ExpressionStmt:
		c.evalExpr(st.Expr)
	}
}

func exprOfStmt(s ast.Statement) ast.Expression {
	if es, ok := s.(*ast.ExpressionStmt); ok {
		return es.Expr
	}
	return nil
}

// --- expression evaluation ---

func (c *Constructor) evalExpr(e ast.Expression) symbol.Value {
	switch ex := e.(type) {
	case nil:
		return symbol.NilValue

	case *ast.LiteralInt:
		return symbol.Value{Kind: symbol.Int, Int: ex.Value}

	case *ast.LiteralFloat:
		return symbol.Value{Kind: symbol.Float, Float: ex.Value}

	case *ast.LiteralString:
		return symbol.Value{Kind: symbol.String, Str: ex.Value}

	case *ast.Variable:
		if k, ok := method.Lookup(ex.Name.Lexeme); ok {
			return symbol.Value{Kind: symbol.Method, Method: k}
		}
		return symbol.Value{Kind: symbol.String, Str: ex.Name.Lexeme}

	case *ast.Grouping:
		return c.evalExpr(ex.Inner)

	case *ast.Chain:
		left := c.evalExpr(ex.Left)
		if left.Kind == symbol.BuildCommand {
			c.push(ID(left.BC))
			c.evalExpr(ex.Right)
			c.pop()
		} else {
			c.evalExpr(ex.Right)
		}
		return left

	case *ast.Assignment:
		c.evalExpr(ex.Value)
		return symbol.NilValue

	case *ast.Logical:
		c.evalExpr(ex.Left)
		c.evalExpr(ex.Right)
		return symbol.NilValue

	case *ast.Binary:
		c.evalExpr(ex.Left)
		c.evalExpr(ex.Right)
		return symbol.NilValue

	case *ast.Unary:
		c.evalExpr(ex.Right)
		return symbol.NilValue

	case *ast.Call:
		return c.evalCall(ex)
	}

	return symbol.NilValue
}

func (c *Constructor) evalCall(call *ast.Call) symbol.Value {
	callee := c.evalExpr(call.Callee)

	if callee.Kind == symbol.Nil {
		fail(call.Paren.Line, call.Paren.Col, "call on nil")
	}
	if callee.Kind != symbol.Method {
		fail(call.Paren.Line, call.Paren.Col, "call on a value that is not a method")
	}

	args := make([]symbol.Value, len(call.Args))
	for i, a := range call.Args {
		v := c.evalExpr(a)
		if !v.IsLiteral() {
			fail(call.Paren.Line, call.Paren.Col,
				"unsupported expression shape in argument position (argument %d)", i+1)
		}
		args[i] = v
	}

	arity := method.ArityOf(callee.Method)
	if !arity.Accepts(len(args)) {
		fail(call.Paren.Line, call.Paren.Col,
			"%s expects %s but got %d argument(s)", callee.Method, arityDesc(arity), len(args))
	}

	return c.dispatch(callee.Method, args)
}

func arityDesc(a method.Arity) string {
	if a.Variadic {
		return "any number of arguments"
	}
	if a.Fixed == 0 {
		return "no arguments"
	}
	if a.Fixed == 1 {
		return "1 argument"
	}
	return fmt.Sprintf("%d arguments", a.Fixed)
}

func argStrings(args []symbol.Value) []string {
	out := make([]string, len(args))
	for i, a := range args {
		s, _ := a.AsString()
		out[i] = s
	}
	return out
}

// dispatch implements the method table of spec.md §4.4.
func (c *Constructor) dispatch(k method.Kind, args []symbol.Value) symbol.Value {
	bc := c.tree.Get(c.currentID())

	switch k {
	case method.Build:
		return symbol.Value{Kind: symbol.BuildCommand, BC: int(c.newChild(bc.ID, argStrings(args), Executable))}

	case method.Test:
		return symbol.Value{Kind: symbol.BuildCommand, BC: int(c.newChild(bc.ID, argStrings(args), Tester))}

	case method.Compiler:
		s, _ := args[0].AsString()
		bc.Compiler = s

	case method.Input:
		bc.InputFiles = append(bc.InputFiles, argStrings(args)...)

	case method.CFlags:
		bc.CFlags = append(bc.CFlags, argStrings(args)...)

	case method.LDFlags:
		bc.LDFlags = append(bc.LDFlags, argStrings(args)...)

	case method.SourceDir:
		s, _ := args[0].AsString()
		bc.SourceDir = s

	case method.OutputDir:
		s, _ := args[0].AsString()
		bc.OutputDir = s

	case method.IncludeDir:
		bc.IncludeDirs = append(bc.IncludeDirs, argStrings(args)...)

	case method.LibraryDir:
		bc.LibraryDirs = append(bc.LibraryDirs, argStrings(args)...)

	case method.Link:
		bc.LibraryLinks = append(bc.LibraryLinks, argStrings(args)...)

	case method.Dirty:
		c.markAncestorsDirty(bc.ID)

	case method.MarkClean:
		bc.MarkedCleanExplicitly = true

	case method.Echo:
		// Printed only during the interpreter pass (spec.md §4.4).
	}

	return symbol.NilValue
}

// newChild creates a child of parent inheriting its settings snapshot, one
// Target per name in names, and the appropriate depth-derived BuildType
// (except for Tester, which always wins regardless of depth).
func (c *Constructor) newChild(parent ID, names []string, bt BuildType) ID {
	p := c.tree.Get(parent)

	child := BuildCommand{
		Parent:    parent,
		BuildType: bt,
		Compiler:  p.Compiler,
		SourceDir: p.SourceDir,
		OutputDir: p.OutputDir,

		IncludeDirs:  append([]string(nil), p.IncludeDirs...),
		LibraryDirs:  append([]string(nil), p.LibraryDirs...),
		LibraryLinks: append([]string(nil), p.LibraryLinks...),
		CFlags:       append([]string(nil), p.CFlags...),
		LDFlags:      append([]string(nil), p.LDFlags...),
	}

	if bt == Executable && c.tree.IsDeepChild(parent) {
		child.BuildType = Object
	}

	for _, n := range names {
		child.Targets = append(child.Targets, Target{Name: n})
	}

	id := c.tree.newNode(child)
	p = c.tree.Get(parent) // newNode may have grown the slice, re-fetch
	p.Children = append(p.Children, id)
	return id
}

// markAncestorsDirty implements the `dirty()` method: mark bc and every
// ancestor dirty, as a bulk operation that respects MarkedCleanExplicitly
// (spec.md §3 invariants) on every node it would otherwise touch.
func (c *Constructor) markAncestorsDirty(id ID) {
	for id != NoParent {
		n := c.tree.Get(id)
		if !n.MarkedCleanExplicitly {
			n.Dirty = true
		}
		id = n.Parent
	}
}
