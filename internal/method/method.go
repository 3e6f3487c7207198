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

// Package method defines the closed set of built-in recipe methods
// (spec.md §4.4) and their arity rules.
package method

// Kind is one of the built-in method identifiers a recipe may call.
type Kind int

const (
	Build Kind = iota
	Compiler
	Input
	CFlags
	LDFlags
	SourceDir
	OutputDir
	IncludeDir
	LibraryDir
	Link
	Dirty
	MarkClean
	Echo

	// Test is a supplemented method (SPEC_FULL §9, grounded on
	// original_source/src/tester.c): like Build, but always constructs a
	// Tester build command regardless of nesting depth.
	Test
)

var names = map[Kind]string{
	Build:      "build",
	Compiler:   "compiler",
	Input:      "input",
	CFlags:     "cflags",
	LDFlags:    "ldflags",
	SourceDir:  "source_dir",
	OutputDir:  "output_dir",
	IncludeDir: "include_dir",
	LibraryDir: "library_dir",
	Link:       "link",
	Dirty:      "dirty",
	MarkClean:  "mark_clean",
	Echo:       "echo",
	Test:       "test",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return "unknown-method"
}

// Arity describes how many arguments a method accepts: either exactly
// Fixed, or (if Variadic) any count including zero.
type Arity struct {
	Fixed    int
	Variadic bool
}

var arities = map[Kind]Arity{
	Build:      {Variadic: true},
	Compiler:   {Fixed: 1},
	Input:      {Variadic: true},
	CFlags:     {Variadic: true},
	LDFlags:    {Variadic: true},
	SourceDir:  {Fixed: 1},
	OutputDir:  {Fixed: 1},
	IncludeDir: {Variadic: true},
	LibraryDir: {Variadic: true},
	Link:       {Variadic: true},
	Dirty:      {Fixed: 0},
	MarkClean:  {Fixed: 0},
	Echo:       {Fixed: 1},
	Test:       {Variadic: true},
}

// ArityOf returns the arity rule for k.
func ArityOf(k Kind) Arity {
	return arities[k]
}

// Accepts reports whether n arguments satisfy k's arity.
func (a Arity) Accepts(n int) bool {
	if a.Variadic {
		return n >= 0
	}
	return n == a.Fixed
}

var byName = func() map[string]Kind {
	m := make(map[string]Kind, len(names))
	for k, n := range names {
		m[n] = k
	}
	return m
}()

// Lookup resolves an identifier's text to a method Kind. A miss means the
// identifier is just a plain string value (spec.md §4.4).
func Lookup(name string) (Kind, bool) {
	k, ok := byName[name]
	return k, ok
}
