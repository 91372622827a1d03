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

// Package ir is the flat quadruple intermediate representation: the Op
// enum, the Quad tuple, the append-only Buffer (with its switch-case
// defer-buffer stack), the temp/label name generator, and the pretty
// printer consumed by mid_code.txt.
package ir

import (
	"fmt"
	"io"
	"strconv"
)

// Op is a quadruple opcode.
type Op int

const (
	Assign Op = iota
	Add
	Sub
	Mul
	Div
	Func
	Para
	GVar
	Var
	Push
	Call
	Ret
	GetRet
	WArray
	RArray
	Write
	Read
	Compare
	End
	Label
	Goto
	BZ
	BNZ
	Temp
)

var opNames = [...]string{
	Assign: "ASSIGN", Add: "ADD", Sub: "SUB", Mul: "MUL", Div: "DIV",
	Func: "FUNC", Para: "PARA", GVar: "GVAR", Var: "VAR",
	Push: "PUSH", Call: "CALL", Ret: "RET", GetRet: "GETRET",
	WArray: "WARRAY", RArray: "RARRAY", Write: "WRITE", Read: "READ",
	Compare: "COMPARE", End: "END", Label: "LABEL", Goto: "GOTO",
	BZ: "BZ", BNZ: "BNZ", Temp: "TEMP",
}

func (o Op) String() string {
	if int(o) >= 0 && int(o) < len(opNames) {
		return opNames[o]
	}
	return "?"
}

// Quad is one IR instruction: (op, a, b, res). Any of a, b, res may be
// the empty string when that operand slot is unused by op.
type Quad struct {
	Op       Op
	A, B, Res string
}

// arithOpText maps the four folding/lowering arithmetic ops to their
// source-level spelling, used by the pretty printer.
var arithOpText = map[Op]string{Add: "+", Sub: "-", Mul: "*", Div: "/"}

// Format renders q per the mid_code.txt pretty-printer table.
func (q Quad) Format() string {
	switch q.Op {
	case Assign:
		return fmt.Sprintf("%s = %s", q.Res, q.A)
	case Add, Sub, Mul, Div:
		return fmt.Sprintf("%s = %s %s %s", q.Res, q.A, arithOpText[q.Op], q.B)
	case WArray:
		return fmt.Sprintf("%s[%s] = %s", q.A, q.B, q.Res)
	case RArray:
		return fmt.Sprintf("%s = %s[%s]", q.Res, q.A, q.B)
	case Compare:
		if q.B == "" {
			return q.A
		}
		return fmt.Sprintf("%s %s %s", q.A, q.B, q.Res)
	case Func:
		return fmt.Sprintf("%s %s()", q.A, q.B)
	case Para:
		return fmt.Sprintf("para %s %s", q.A, q.B)
	case GVar, Var:
		return fmt.Sprintf("var %s %s %s", q.A, q.B, q.Res)
	case Push:
		return fmt.Sprintf("push %s %s", q.A, q.B)
	case Call:
		return fmt.Sprintf("call %s", q.A)
	case Ret:
		return fmt.Sprintf("ret %s", q.A)
	case GetRet:
		return fmt.Sprintf("getret %s", q.Res)
	case Write:
		return fmt.Sprintf("printf %s %s", q.A, q.B)
	case Read:
		return fmt.Sprintf("scanf %s %s", q.A, q.B)
	case End:
		return "end"
	case Label:
		return fmt.Sprintf("label %s", q.A)
	case Goto:
		return fmt.Sprintf("goto %s", q.A)
	case BZ:
		return fmt.Sprintf("bz %s %s %s", q.A, q.B, q.Res)
	case BNZ:
		return fmt.Sprintf("bnz %s %s %s", q.A, q.B, q.Res)
	case Temp:
		return fmt.Sprintf("temp %s %s", q.A, q.B)
	default:
		return fmt.Sprintf("%s %s %s %s", q.Op, q.A, q.B, q.Res)
	}
}

// Buffer is an append-only quadruple stream with a stack of deferred
// buffers used to reorder switch-case bodies. Writing is controlled by a
// depth counter, not merely by the stack being non-empty: PushBuffer
// alone does not redirect Emit (it only reserves a slot for the
// enclosing switch), only a BeginDefer/EndDefer bracket does. This
// mirrors the original's pushMidCodeCacheStack / startCachingMidCode /
// pauseCachingMidCode split, which matters for nested switches: a
// dispatch compare emitted for an inner switch, while still inside an
// outer case body's defer bracket, must land in the outer buffer (the
// one at defers[depth-1]), not in the inner buffer that was just
// pushed on top of the stack.
type Buffer struct {
	primary []Quad
	defers  [][]Quad
	depth   int
}

// NewBuffer returns an empty, ready-to-use Buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Emit appends a quadruple to whichever stream is currently active: when
// depth is 0, the primary stream; otherwise defers[depth-1].
func (b *Buffer) Emit(op Op, a, bOperand, res string) {
	q := Quad{Op: op, A: a, B: bOperand, Res: res}
	if b.depth > 0 {
		i := b.depth - 1
		b.defers[i] = append(b.defers[i], q)
		return
	}
	b.primary = append(b.primary, q)
}

// PushBuffer pushes a new empty deferred buffer, done once at the start
// of each switch statement (including nested ones). It does not by
// itself change where Emit writes.
func (b *Buffer) PushBuffer() {
	b.defers = append(b.defers, nil)
}

// BeginDefer increments the defer depth; subsequent Emit calls target
// the buffer at defers[depth-1] until the matching EndDefer.
func (b *Buffer) BeginDefer() {
	b.depth++
}

// EndDefer decrements the defer depth.
func (b *Buffer) EndDefer() {
	b.depth--
}

// Flush replays the top deferred buffer's quadruples back through Emit
// (so a still-active outer defer, from a nesting switch, keeps sinking
// them correctly) and pops it.
func (b *Buffer) Flush() {
	n := len(b.defers)
	if n == 0 {
		return
	}
	top := b.defers[n-1]
	b.defers = b.defers[:n-1]
	for _, q := range top {
		b.Emit(q.Op, q.A, q.B, q.Res)
	}
}

// Quads returns the finished primary stream. Valid only once every
// deferred buffer has been flushed.
func (b *Buffer) Quads() []Quad {
	return b.primary
}

// Write renders every quadruple in the primary stream, one per line, per
// the mid_code.txt format.
func (b *Buffer) Write(w io.Writer) error {
	for _, q := range b.primary {
		if _, err := fmt.Fprintln(w, q.Format()); err != nil {
			return err
		}
	}
	return nil
}

// Namer generates the synthesized temporary and label names used across
// the front end. A fresh Namer is created per compilation so that
// multiple Compile calls in one process never collide.
type Namer struct {
	temps  int
	labels int
	ifs    int
}

// Temp returns a fresh temporary name, "$t_<n>".
func (n *Namer) Temp() string {
	s := "$t_" + strconv.Itoa(n.temps)
	n.temps++
	return s
}

// Label returns a fresh plain label, "$LABEL_<n>".
func (n *Namer) Label() string {
	s := "$LABEL_" + strconv.Itoa(n.labels)
	n.labels++
	return s
}

// IfLabels allocates one if/else cluster and returns its three
// correlated labels. Only this call advances the shared if-counter;
// the three returned labels all derive from the same index.
func (n *Namer) IfLabels() (ifLabel, elseLabel, ifEndLabel string) {
	k := strconv.Itoa(n.ifs)
	n.ifs++
	return "$IF_" + k, "$ELSE_" + k, "$IF_" + k + "_END"
}

// ParseConst reports whether text is a constant operand — a single
// quoted character or a (possibly signed) decimal integer literal — and
// decodes its integer value.
func ParseConst(text string) (value int, ok bool) {
	if len(text) >= 3 && text[0] == '\'' && text[len(text)-1] == '\'' {
		return int(text[1]), true
	}
	if len(text) == 0 {
		return 0, false
	}
	if text[0] == '-' || (text[0] >= '0' && text[0] <= '9') {
		v, err := strconv.Atoi(text)
		if err != nil {
			return 0, false
		}
		return v, true
	}
	return 0, false
}
