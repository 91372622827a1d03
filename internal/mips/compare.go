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

import "github.com/fondoger/c0compiler/internal/ir"

// zeroRightOp maps an ordering operator to the branch instruction used
// when the right-hand side is the literal 0 (or as the subu fallback,
// comparing $v0 against zero after subu $v0, A, B).
var zeroRightOp = map[string][2]string{
	// [0] = branch-on-zero (BZ), [1] = branch-on-nonzero (BNZ)
	"LSS": {"bgez", "bltz"},
	"LEQ": {"bgtz", "blez"},
	"GTR": {"blez", "bgtz"},
	"GEQ": {"bltz", "bgez"},
}

// zeroLeftOp maps an ordering operator to the branch instruction used
// when the left-hand side is the literal 0 (so the sense is flipped:
// "0 op B" rather than "A op 0").
var zeroLeftOp = map[string][2]string{
	"LSS": {"blez", "bgtz"},
	"LEQ": {"bltz", "bgez"},
	"GTR": {"bgez", "bltz"},
	"GEQ": {"bgtz", "blez"},
}

func evalCompare(op string, a, b int) bool {
	switch op {
	case "EQL":
		return a == b
	case "NEQ":
		return a != b
	case "LSS":
		return a < b
	case "LEQ":
		return a <= b
	case "GTR":
		return a > b
	case "GEQ":
		return a >= b
	default:
		return false
	}
}

// genCompareBranch lowers a COMPARE immediately followed by its BZ/BNZ,
// per the fused specializer described for internal/mips: constant
// folding first, then the single-operand truthiness form, then
// equality/inequality, then ordering (zero-operand specializations
// before the general subu-and-branch fallback).
func genCompareBranch(e *emitter, fr frame, cmp, branch ir.Quad) {
	isBZ := branch.Op == ir.BZ
	target := branch.A

	if cmp.B == "" {
		if v, ok := ir.ParseConst(cmp.A); ok {
			if (isBZ && v == 0) || (!isBZ && v != 0) {
				e.line("j\t%s", target)
			}
			return
		}
		loadToReg(e, fr, "$v0", cmp.A)
		if isBZ {
			e.line("beq\t$v0, $zero, %s", target)
		} else {
			e.line("bne\t$v0, $zero, %s", target)
		}
		return
	}

	lc, lok := ir.ParseConst(cmp.A)
	rc, rok := ir.ParseConst(cmp.Res)
	if lok && rok {
		result := evalCompare(cmp.B, lc, rc)
		if (isBZ && !result) || (!isBZ && result) {
			e.line("j\t%s", target)
		}
		return
	}

	if cmp.B == "EQL" || cmp.B == "NEQ" {
		op1 := loadOperand(e, fr, "$v0", cmp.A)
		op2 := loadOperand(e, fr, "$v1", cmp.Res)
		branchOp := "beq"
		if (cmp.B == "EQL") == isBZ {
			branchOp = "bne"
		}
		e.line("%s\t%s, %s, %s", branchOp, op1, op2, target)
		return
	}

	if rok && rc == 0 {
		loadToReg(e, fr, "$v0", cmp.A)
		e.line("%s\t$v0, %s", zeroRightOp[cmp.B][branchIdx(isBZ)], target)
		return
	}
	if lok && lc == 0 {
		loadToReg(e, fr, "$v1", cmp.Res)
		e.line("%s\t$v1, %s", zeroLeftOp[cmp.B][branchIdx(isBZ)], target)
		return
	}
	loadToReg(e, fr, "$v0", cmp.A)
	loadToReg(e, fr, "$v1", cmp.Res)
	e.line("subu\t$v0, $v0, $v1")
	e.line("%s\t$v0, %s", zeroRightOp[cmp.B][branchIdx(isBZ)], target)
}

func branchIdx(isBZ bool) int {
	if isBZ {
		return 0
	}
	return 1
}

// loadOperand loads operand into reg unless it is the constant 0, in
// which case $zero is used directly and no instruction is emitted.
func loadOperand(e *emitter, fr frame, reg, operand string) string {
	if v, ok := ir.ParseConst(operand); ok && v == 0 {
		return "$zero"
	}
	loadToReg(e, fr, reg, operand)
	return reg
}
