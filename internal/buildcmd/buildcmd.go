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

// Package buildcmd holds the build-command (BC) tree: the data model
// spec.md §3 describes, and the constructor (spec.md §4.5) that evaluates
// an AST into it.
//
// Grounded on the teacher's (lenticularis39-mk) graph.go node/edge model
// for the mtime-freshness bookkeeping, but reshaped from a pointer-linked
// dependency graph into the flat ID-indexed tree spec.md §9 prescribes
// ("Cyclic parent/child linkage between BCs becomes an ID + child-list
// pattern, not a reference cycle").
package buildcmd

import "github.com/hanion/cook/internal/ast"

// BuildType classifies what a BuildCommand ultimately links.
type BuildType int

const (
	// Executable is the default build type for depth-1 BCs (direct
	// children of the root).
	Executable BuildType = iota
	// Object is the build type for any BC nested deeper than depth 1
	// (its parent itself has a parent).
	Object
	// Lib is present in the data model (spec.md §3) but no built-in
	// method constructs it in this core; see DESIGN.md.
	Lib
	// Tester is a supplemented build type (SPEC_FULL §9, grounded on
	// original_source/src/tester.c), selected by test(). The executor emits
	// it exactly like an Executable; no test invocation is appended.
	Tester
)

func (t BuildType) String() string {
	switch t {
	case Executable:
		return "executable"
	case Object:
		return "object"
	case Lib:
		return "lib"
	case Tester:
		return "tester"
	}
	return "unknown-build-type"
}

// ID indexes a BuildCommand within a Tree's flat node slice. The root is
// always ID 0.
type ID int

// NoParent marks a BuildCommand with no parent (the root).
const NoParent ID = -1

// Target is one (input_file, output_file) pair belonging to a BuildCommand.
type Target struct {
	Name       string
	InputName  string
	OutputName string
	Dirty      bool
	Built      bool
}

// BuildCommand is one compile-and-link unit: inherited settings, zero or
// more Targets, and child BuildCommands for dependencies.
type BuildCommand struct {
	ID       ID
	Parent   ID
	Children []ID

	BuildType BuildType
	Compiler  string
	SourceDir string
	OutputDir string

	Targets      []Target
	InputFiles   []string
	InputObjects []string
	IncludeDirs  []string
	IncludeFiles []string
	LibraryDirs  []string
	LibraryLinks []string
	CFlags       []string
	LDFlags      []string

	Dirty                  bool
	MarkedCleanExplicitly  bool

	// Stmt is the AST statement this BC's scope is attached to: the root
	// program block for the root BC, or a Description's body block for
	// every other BC. The interpreter pass uses it to find, for a given
	// statement, the BC whose dirtiness gates re-walking that subtree.
	Stmt ast.Statement
}

// Primary returns the BC's first (primary) target, and whether one exists.
func (b *BuildCommand) Primary() (Target, bool) {
	if len(b.Targets) == 0 {
		return Target{}, false
	}
	return b.Targets[0], true
}

// Tree owns every BuildCommand produced for one recipe, flat-indexed by ID.
type Tree struct {
	Nodes []BuildCommand
	Root  ID
}

// Get returns a pointer into the Tree's node slice for id.
func (t *Tree) Get(id ID) *BuildCommand {
	return &t.Nodes[id]
}

// newNode appends a freshly-allocated BuildCommand and returns its ID.
func (t *Tree) newNode(bc BuildCommand) ID {
	id := ID(len(t.Nodes))
	bc.ID = id
	t.Nodes = append(t.Nodes, bc)
	return id
}

// IsDeepChild reports whether a BC created as a child of parent should be
// Object-typed: true when parent itself has a parent (spec.md §4.4 build:
// "If bc has a grandparent... child's build_type is Object").
func (t *Tree) IsDeepChild(parent ID) bool {
	return t.Nodes[parent].Parent != NoParent
}

// StmtBC maps an AST statement (by pointer identity) to the BuildCommand
// whose scope it represents, built up during construction and consumed by
// the interpreter pass (spec.md §4.6).
type StmtBC map[ast.Statement]ID
