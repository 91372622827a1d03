// This file is part of c0compiler.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mips

import (
	"strconv"

	"github.com/fondoger/c0compiler/internal/ir"
)

// frame is one function's stack-frame layout: its total size and the
// $sp-relative address of every PARA/VAR/TEMP entity it declares.
// Anything not present here is a global reference, addressed by name.
type frame struct {
	size   int
	locals map[string]int
}

// slotWidth returns the number of 4-byte words a PARA/VAR/TEMP quad
// reserves: 1 for a scalar, or the declared array length when Res
// carries one.
func slotWidth(q ir.Quad) int {
	if q.Res == "" {
		return 1
	}
	n, err := strconv.Atoi(q.Res)
	if err != nil {
		return 1
	}
	return n
}

// buildFrame walks a function's inner quadruples (the slice strictly
// between FUNC and END) twice: once to size the frame, once to assign
// addresses top-down from just below the saved $ra, stacking entities
// downward in the order they were declared.
func buildFrame(quads []ir.Quad) frame {
	size := 4 // saved $ra
	for _, q := range quads {
		switch q.Op {
		case ir.Para, ir.Var, ir.Temp:
			size += 4 * slotWidth(q)
		}
	}
	locals := make(map[string]int)
	addr := size - 4
	for _, q := range quads {
		switch q.Op {
		case ir.Para, ir.Var, ir.Temp:
			addr -= 4 * slotWidth(q)
			locals[q.B] = addr
		}
	}
	return frame{size: size, locals: locals}
}

func (f frame) addr(name string) (int, bool) {
	a, ok := f.locals[name]
	return a, ok
}
