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

// Package mips lowers the quadruple IR into MARS-compatible MIPS
// assembly: a frame-layout pass sizes each function's stack frame, then
// every quadruple is translated in order, with COMPARE fused together
// with its one following BZ/BNZ into a single branch instruction.
package mips

import (
	"io"
	"strconv"

	"github.com/fondoger/c0compiler/internal/ir"
)

// StringEntry is one deduplicated string-literal pool entry, as
// produced by internal/symtab.Pool.Entries.
type StringEntry struct {
	Label, Content string
}

// Lower translates quads (the finished primary IR stream) plus the
// string-literal pool into MIPS assembly, writing it to w.
func Lower(w io.Writer, quads []ir.Quad, strs []StringEntry) error {
	e := &emitter{w: w}

	e.line(".data")
	e.indent = true
	i := 0
	for i < len(quads) && quads[i].Op == ir.GVar {
		q := quads[i]
		if q.Res != "" {
			e.line("%s:\t.word\t0:%s", q.B, q.Res)
		} else {
			e.line("%s:\t.word\t0", q.B)
		}
		i++
	}
	for _, s := range strs {
		e.line("%s:\t.asciiz\t\"%s\"", s.Label, s.Content)
	}
	e.indent = false

	e.line(".text")
	e.indent = true
	e.line("jal\tmain")
	e.line("li\t$v0, 10")
	e.line("syscall")
	e.indent = false

	for i < len(quads) {
		if quads[i].Op != ir.Func {
			i++
			continue
		}
		i = lowerFunc(e, quads, i)
	}
	return e.err
}

// lowerFunc lowers one FUNC..END run starting at start, returning the
// index just past its END.
func lowerFunc(e *emitter, quads []ir.Quad, start int) int {
	fn := quads[start]
	e.line("%s:", fn.B)

	end := start + 1
	for quads[end].Op != ir.End {
		end++
	}
	fr := buildFrame(quads[start+1 : end])
	prevParaAddr := -4

	e.indent = true
	e.line("addiu\t$sp, $sp, %d", -fr.size)
	e.line("sw\t$ra, %d($sp)", fr.size-4)

	for i := start + 1; i < end; i++ {
		q := quads[i]
		switch q.Op {
		case ir.Para, ir.Var, ir.Temp:
			// sizing only; no code
		case ir.Add, ir.Sub, ir.Mul, ir.Div:
			genArith(e, fr, q)
		case ir.Assign:
			genAssign(e, fr, q)
		case ir.WArray, ir.RArray:
			genArray(e, fr, q)
		case ir.Push:
			genPush(e, fr, q, &prevParaAddr)
		case ir.Call:
			e.line("jal\t%s", q.A)
			prevParaAddr = -4
		case ir.GetRet:
			e.line("sw\t$v0, %s", operandAddr(fr, q.Res))
		case ir.Write:
			genWrite(e, fr, q)
		case ir.Read:
			genRead(e, fr, q)
		case ir.Goto:
			e.line("j\t%s", q.A)
		case ir.Label:
			e.indent = false
			e.line("%s:", q.A)
			e.indent = true
		case ir.Ret:
			if q.A != "" {
				loadToReg(e, fr, "$v0", q.A)
			}
			genEpilogue(e, fr)
		case ir.Compare:
			branch := quads[i+1]
			genCompareBranch(e, fr, q, branch)
			i++
		}
	}
	genEpilogue(e, fr)
	e.indent = false
	return end + 1
}

// loadToReg is the workhorse operand loader: literals use li, globals a
// direct lw by name, locals an lw off $sp at their frame address.
func loadToReg(e *emitter, fr frame, reg, operand string) {
	if v, ok := ir.ParseConst(operand); ok {
		e.line("li\t%s, %d", reg, v)
		return
	}
	if addr, ok := fr.addr(operand); ok {
		e.line("lw\t%s, %d($sp)", reg, addr)
		return
	}
	e.line("lw\t%s, %s", reg, operand)
}

// operandAddr renders the assembly operand for storing into name: a
// $sp-relative offset for a local, or the bare label for a global.
func operandAddr(fr frame, name string) string {
	if addr, ok := fr.addr(name); ok {
		return strconv.Itoa(addr) + "($sp)"
	}
	return name
}

func genAssign(e *emitter, fr frame, q ir.Quad) {
	loadToReg(e, fr, "$v0", q.A)
	e.line("sw\t$v0, %s", operandAddr(fr, q.Res))
}

var arithInstr = map[ir.Op]string{ir.Add: "addu", ir.Sub: "subu", ir.Mul: "mul", ir.Div: "div"}

func genArith(e *emitter, fr frame, q ir.Quad) {
	loadToReg(e, fr, "$v0", q.A)
	operand2 := "$v1"
	if v, ok := ir.ParseConst(q.B); ok {
		operand2 = strconv.Itoa(v)
	} else {
		loadToReg(e, fr, "$v1", q.B)
	}
	e.line("%s\t$v0, $v0, %s", arithInstr[q.Op], operand2)
	e.line("sw\t$v0, %s", operandAddr(fr, q.Res))
}

func genPush(e *emitter, fr frame, q ir.Quad, prevParaAddr *int) {
	*prevParaAddr -= 4
	loadToReg(e, fr, "$v0", q.B)
	e.line("sw\t$v0, %d($sp)", *prevParaAddr)
}

func genArray(e *emitter, fr frame, q ir.Quad) {
	if v, ok := ir.ParseConst(q.B); ok {
		e.line("li\t$v0, %d", v*4)
	} else {
		loadToReg(e, fr, "$v0", q.B)
		e.line("mul\t$v0, $v0, 4")
	}
	addr, isLocal := fr.addr(q.A)
	if !isLocal {
		if q.Op == ir.RArray {
			e.line("lw\t$v1, %s($v0)", q.A)
			e.line("sw\t$v1, %s", operandAddr(fr, q.Res))
		} else {
			loadToReg(e, fr, "$v1", q.Res)
			e.line("sw\t$v1, %s($v0)", q.A)
		}
		return
	}
	e.line("addu\t$v0, $v0, $sp")
	if q.Op == ir.RArray {
		e.line("lw\t$v1, %d($v0)", addr)
		e.line("sw\t$v1, %s", operandAddr(fr, q.Res))
	} else {
		loadToReg(e, fr, "$v1", q.Res)
		e.line("sw\t$v1, %d($v0)", addr)
	}
}

func genWrite(e *emitter, fr frame, q ir.Quad) {
	switch q.A {
	case "str":
		e.line("la\t$a0, %s", q.B)
		e.line("li\t$v0, 4")
	case "char":
		loadToReg(e, fr, "$a0", q.B)
		e.line("li\t$v0, 11")
	default: // int
		loadToReg(e, fr, "$a0", q.B)
		e.line("li\t$v0, 1")
	}
	e.line("syscall")
}

func genRead(e *emitter, fr frame, q ir.Quad) {
	if q.A == "char" {
		e.line("li\t$v0, 12")
	} else {
		e.line("li\t$v0, 5")
	}
	e.line("syscall")
	e.line("sw\t$v0, %s", operandAddr(fr, q.B))
}

func genEpilogue(e *emitter, fr frame) {
	e.line("lw\t$ra, %d($sp)", fr.size-4)
	e.line("addiu\t$sp, $sp, %d", fr.size)
	e.line("jr\t$ra")
}
