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

// Package executor walks a constructed BC tree and turns dirty targets into
// compiler command lines (spec.md §4.7): depth-first, children before
// parent, with structural deduplication of both BCs and targets, printing
// in dry-run mode or invoking through the host shell otherwise.
package executor

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/hanion/cook/internal/buildcmd"
)

// Executor runs (or prints) the command lines for a dirty BC tree.
type Executor struct {
	tree   *buildcmd.Tree
	dryRun bool
	out    io.Writer
	log    *logrus.Logger

	executedBC     map[string]bool
	executedTarget map[string]bool
}

// New returns an Executor over tree. When dryRun is true, command lines are
// written to out but never invoked. log may be nil; when set, every
// invoked (non-dry-run) command line is echoed to it at Info level before
// running, the pretty-print-before-execute behavior SPEC_FULL §9 keeps from
// the original tool.
func New(tree *buildcmd.Tree, dryRun bool, out io.Writer, log *logrus.Logger) *Executor {
	return &Executor{
		tree:           tree,
		dryRun:         dryRun,
		out:            out,
		log:            log,
		executedBC:     map[string]bool{},
		executedTarget: map[string]bool{},
	}
}

// Run walks the tree, skipping the root itself (it has no targets by
// contract — it only drives recursion into its children), and halts at the
// first invocation that returns a non-zero exit (spec.md §4.7 step 5).
func (e *Executor) Run() error {
	root := e.tree.Get(e.tree.Root)
	for _, childID := range root.Children {
		if err := e.walk(childID); err != nil {
			return err
		}
	}
	return nil
}

func (e *Executor) walk(id ID) error {
	n := e.tree.Get(id)
	if !n.Dirty {
		return nil
	}

	if !e.dryRun && n.OutputDir != "" {
		if err := os.MkdirAll(n.OutputDir, 0o755); err != nil {
			return fmt.Errorf("creating output_dir %q: %w", n.OutputDir, err)
		}
	}

	for _, childID := range n.Children {
		if err := e.walk(childID); err != nil {
			return err
		}
	}

	key := canonicalBC(e.tree, id)
	if e.executedBC[key] {
		return nil
	}
	e.executedBC[key] = true

	for i := range n.Targets {
		t := &n.Targets[i]
		if !t.Dirty {
			continue
		}
		tk := t.Name + "|" + t.InputName + "|" + t.OutputName
		if e.executedTarget[tk] {
			continue
		}
		e.executedTarget[tk] = true

		line := commandLine(n, t)
		if e.dryRun {
			fmt.Fprintln(e.out, line)
			t.Built = true
			continue
		}

		if err := e.invoke(line); err != nil {
			return err
		}
		t.Built = true
	}

	return nil
}

type ID = buildcmd.ID

// commandLine assembles one compile/link invocation, bit-for-bit in the
// order spec.md §4.7 mandates: compiler, cflags, an optional -c, -o and the
// output/input names, then include dirs, extra input files and objects,
// library dirs and links, and finally ldflags. Every token is followed by a
// single trailing space, matching the end-to-end scenarios in spec.md §8.
func commandLine(n *buildcmd.BuildCommand, t *buildcmd.Target) string {
	var b strings.Builder

	write := func(tok string) {
		b.WriteString(tok)
		b.WriteByte(' ')
	}

	write(n.Compiler)
	for _, f := range n.CFlags {
		write(f)
	}
	if n.BuildType == buildcmd.Object {
		write("-c")
	}
	write("-o")
	write(t.OutputName)
	write(t.InputName)

	for _, d := range n.IncludeDirs {
		write("-I" + d)
	}
	for _, f := range n.InputFiles {
		write(f)
	}
	for _, f := range n.InputObjects {
		write(f)
	}
	for _, d := range n.LibraryDirs {
		write("-L" + d)
	}
	for _, l := range n.LibraryLinks {
		write("-l" + l)
	}
	for _, f := range n.LDFlags {
		write(f)
	}

	return b.String()
}

// invoke runs line through the host shell (spec.md §6), streaming its
// output to the terminal, and returns an error if it exits non-zero.
func (e *Executor) invoke(line string) error {
	if e.log != nil {
		e.log.Info(line)
	}

	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.Command("cmd", "/C", line)
	} else {
		cmd = exec.Command("sh", "-c", line)
	}
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("command failed: %s: %w", line, err)
	}
	return nil
}

// canonicalBC builds a deep-equality key for a BC and its whole child
// subtree (spec.md §4.7 step 3: "all fields and recursive children compare
// equal"), so two BCs built from textually identical recipe fragments
// dedup even though they live at different tree IDs.
func canonicalBC(tree *buildcmd.Tree, id ID) string {
	n := tree.Get(id)

	targets := make([]string, len(n.Targets))
	for i, t := range n.Targets {
		targets[i] = t.Name + ":" + t.InputName + ":" + t.OutputName
	}

	children := make([]string, len(n.Children))
	for i, c := range n.Children {
		children[i] = canonicalBC(tree, c)
	}

	parts := []string{
		n.BuildType.String(),
		n.Compiler,
		n.SourceDir,
		n.OutputDir,
		strings.Join(targets, ","),
		strings.Join(n.InputFiles, ","),
		strings.Join(n.InputObjects, ","),
		strings.Join(n.IncludeDirs, ","),
		strings.Join(n.LibraryDirs, ","),
		strings.Join(n.LibraryLinks, ","),
		strings.Join(n.CFlags, ","),
		strings.Join(n.LDFlags, ","),
		"[" + strings.Join(children, ";") + "]",
	}
	return strings.Join(parts, "|")
}
