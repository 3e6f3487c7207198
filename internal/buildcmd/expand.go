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
	"math"
	"os"
)

// extensionFor derives a target's source extension from the compiler name
// (spec.md §4.5): "gcc"/"clang" -> ".c", "g++" -> ".cpp", anything else ->
// no extension.
func extensionFor(compiler string) string {
	switch compiler {
	case "gcc", "clang":
		return ".c"
	case "g++":
		return ".cpp"
	}
	return ""
}

func joinPath(dir, name string) string {
	if dir == "" {
		return name
	}
	return dir + "/" + name
}

// expand performs the post-walk target expansion pass of spec.md §4.5:
// build every Target's input_name/output_name, then append each target's
// output_name to the parent's input_files so parents automatically link
// their children's compiled objects (spec.md §8 scenario 6 requires every
// target of a multi-target child to be linked, not only the primary one).
func (c *Constructor) expand(id ID) {
	n := c.tree.Get(id)
	ext := extensionFor(n.Compiler)

	for i := range n.Targets {
		t := &n.Targets[i]
		t.InputName = joinPath(n.SourceDir, t.Name) + ext
		t.OutputName = joinPath(n.OutputDir, t.Name)
		if n.BuildType == Object {
			t.OutputName += ".o"
		}
	}

	for _, childID := range n.Children {
		c.expand(childID)
		child := c.tree.Get(childID)
		for _, t := range child.Targets {
			n = c.tree.Get(id) // expand(childID) may have grown Nodes
			n.InputFiles = append(n.InputFiles, t.OutputName)
		}
	}
}

// freshness performs the bottom-up dirtiness pass of spec.md §4.5. It never
// clears an already-true Dirty flag (set explicitly via dirty() during
// construction): freshness can only add dirtiness, never remove it.
func (c *Constructor) freshness(id ID) {
	n := c.tree.Get(id)

	for _, childID := range n.Children {
		c.freshness(childID)
	}

	n = c.tree.Get(id)
	if n.Dirty {
		propagateTargetDirty(n)
		return
	}

	for _, childID := range n.Children {
		if c.tree.Get(childID).Dirty {
			n.Dirty = true
			propagateTargetDirty(n)
			return
		}
	}

	oldest := int64(math.MaxInt64)
	for i := range n.Targets {
		mt := statMTime(n.Targets[i].OutputName)
		if mt < oldest {
			oldest = mt
		}
	}
	if len(n.Targets) == 0 {
		oldest = 0
	}

	newest := int64(0)
	for _, f := range n.InputFiles {
		if mt := statMTime(f); mt > newest {
			newest = mt
		}
	}
	for i := range n.Targets {
		if mt := statMTime(n.Targets[i].InputName); mt > newest {
			newest = mt
		}
	}

	if oldest < newest {
		n.Dirty = true
	}
	propagateTargetDirty(n)
}

// propagateTargetDirty mirrors a BC's overall Dirty flag onto each of its
// Targets: spec.md §4.5 computes dirtiness at BC granularity (across all of
// a BC's targets' output files at once), so every Target of a dirty BC is
// itself dirty.
func propagateTargetDirty(n *BuildCommand) {
	for i := range n.Targets {
		n.Targets[i].Dirty = n.Dirty
	}
}

func statMTime(path string) int64 {
	if path == "" {
		return 0
	}
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.ModTime().Unix()
}

// ForceAllDirty implements --build-all (spec.md §6): force every BC and
// target to dirty regardless of mtimes. Like other bulk operations it
// respects MarkedCleanExplicitly.
func ForceAllDirty(t *Tree) {
	forceAllDirty(t, t.Root)
}

func forceAllDirty(t *Tree, id ID) {
	n := t.Get(id)
	if !n.MarkedCleanExplicitly {
		n.Dirty = true
		propagateTargetDirty(n)
	}
	for _, childID := range n.Children {
		forceAllDirty(t, childID)
	}
}
