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

// Package symbol defines SymbolValue, the tagged evaluation result of an
// AST expression during the constructor pass.
package symbol

import (
	"strconv"

	"github.com/hanion/cook/internal/method"
)

// Kind tags which field of a Value is meaningful.
type Kind int

const (
	Nil Kind = iota
	Int
	Float
	String
	Method
	BuildCommand
)

// Value is the evaluation result of an expression. BC holds a buildcmd.ID
// as a plain int rather than the buildcmd type itself: package buildcmd is
// the constructor's home and evaluates expressions into Value, so importing
// buildcmd here would create an import cycle. Callers convert with
// buildcmd.ID(v.BC).
type Value struct {
	Kind   Kind
	Int    int32
	Float  float32
	Str    string
	Method method.Kind
	BC     int
}

// NilValue is the zero Value (Kind Nil), returned by expressions with no useful result.
var NilValue = Value{Kind: Nil}

// IsLiteral reports whether v is one of the scalar literal kinds (Int,
// Float, String) that are valid in a method-call argument position.
func (v Value) IsLiteral() bool {
	return v.Kind == Int || v.Kind == Float || v.Kind == String
}

// AsString renders a literal Value as the string a method call argument
// expects. Non-literal kinds return ("", false).
func (v Value) AsString() (string, bool) {
	switch v.Kind {
	case String:
		return v.Str, true
	case Int:
		return strconv.FormatInt(int64(v.Int), 10), true
	case Float:
		return strconv.FormatFloat(float64(v.Float), 'g', -1, 32), true
	}
	return "", false
}
