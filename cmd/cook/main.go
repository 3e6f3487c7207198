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

// Command cook runs the recipe pipeline of spec.md §1: lex, parse,
// construct a BC tree, re-walk it to fire deferred side effects, then
// execute (or print) the resulting command lines.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hanion/cook/internal/buildcmd"
	"github.com/hanion/cook/internal/cookfile"
	"github.com/hanion/cook/internal/cooklog"
	"github.com/hanion/cook/internal/executor"
	"github.com/hanion/cook/internal/interpreter"
	"github.com/hanion/cook/internal/parser"
)

var (
	filePath  string
	verbosity int
	dryRun    bool
	buildAll  bool
)

var rootCmd = cobra.Command{
	Use:           "cook",
	Short:         "cook is a recipe-driven build orchestrator",
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&filePath, "file", "f", cookfile.DefaultPath, "use <path> as the recipe file")
	flags.IntVar(&verbosity, "verbose", 0, "set verbosity 0..3")
	flags.Lookup("verbose").NoOptDefVal = "1"
	flags.BoolVar(&dryRun, "dry-run", false, "compute and print would-be command lines; do not execute")
	flags.BoolVar(&buildAll, "build-all", false, "force every BC and target to dirty")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	log := cooklog.New(verbosity)

	src, resolved, err := cookfile.Read(filePath)
	if err != nil {
		return err
	}
	log.WithField("file", resolved).Info("reading recipe")

	p := parser.New(resolved, src)
	program, errs := p.Parse()
	for _, e := range errs.Errors {
		log.WithFields(map[string]any{"line": e.Line, "col": e.Col}).Warn(e.Error())
	}

	ctor := buildcmd.NewConstructor()
	tree, stmtBC, err := ctor.Build(program)
	if err != nil {
		cooklog.FatalConstructionError(log, err)
		return err // unreachable: Fatal calls os.Exit, kept for RunE's signature
	}

	if buildAll {
		buildcmd.ForceAllDirty(tree)
	}

	interpreter.New(tree, stmtBC, os.Stdout).Run(program)

	exec := executor.New(tree, dryRun, os.Stdout, log)
	if err := exec.Run(); err != nil {
		return err
	}

	return nil
}
