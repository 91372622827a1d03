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

// Package peephole implements a single one-line-of-lookbehind filter
// over a finished MIPS instruction stream: an lw immediately following
// an sw to the identical operand is redundant (the value just stored is
// already in the register), and symmetrically for an sw immediately
// following an lw of the identical operand.
package peephole

import "strings"

// Filter returns lines with redundant lw-after-sw / sw-after-lw pairs
// removed, preserving every other line verbatim and in order.
func Filter(lines []string) []string {
	out := make([]string, 0, len(lines))
	prevOp, prevOperand := "", ""
	for _, line := range lines {
		op, operand := splitInstruction(line)
		omit := (op == "lw" && prevOp == "sw" && operand == prevOperand) ||
			(op == "sw" && prevOp == "lw" && operand == prevOperand)
		if !omit {
			out = append(out, line)
		}
		if op == "lw" || op == "sw" {
			if omit {
				prevOp, prevOperand = "", ""
			} else {
				prevOp, prevOperand = op, operand
			}
		} else if strings.TrimSpace(line) != "" {
			prevOp, prevOperand = "", ""
		}
	}
	return out
}

func splitInstruction(line string) (op, operand string) {
	trimmed := strings.TrimSpace(line)
	fields := strings.SplitN(trimmed, "\t", 2)
	if len(fields) != 2 {
		fields = strings.SplitN(trimmed, " ", 2)
	}
	if len(fields) != 2 {
		return trimmed, ""
	}
	return fields[0], strings.TrimSpace(fields[1])
}
