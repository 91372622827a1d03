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

package ir_test

import (
	"strings"
	"testing"

	"github.com/fondoger/c0compiler/internal/ir"
)

func TestQuadFormat(t *testing.T) {
	cases := []struct {
		name string
		q    ir.Quad
		want string
	}{
		{"assign", ir.Quad{Op: ir.Assign, A: "3", Res: "x"}, "x = 3"},
		{"add", ir.Quad{Op: ir.Add, A: "a", B: "b", Res: "$t_0"}, "$t_0 = a + b"},
		{"warray", ir.Quad{Op: ir.WArray, A: "arr", B: "0", Res: "1"}, "arr[0] = 1"},
		{"rarray", ir.Quad{Op: ir.RArray, A: "arr", B: "0", Res: "$t_1"}, "$t_1 = arr[0]"},
		{"compare-binary", ir.Quad{Op: ir.Compare, A: "x", B: "EQL", Res: "1"}, "x EQL 1"},
		{"compare-truthy", ir.Quad{Op: ir.Compare, A: "x"}, "x"},
		{"func", ir.Quad{Op: ir.Func, A: "int", B: "sum"}, "int sum()"},
		{"gvar-scalar", ir.Quad{Op: ir.GVar, A: "int", B: "x"}, "var int x "},
		{"gvar-array", ir.Quad{Op: ir.GVar, A: "int", B: "a", Res: "3"}, "var int a 3"},
		{"call", ir.Quad{Op: ir.Call, A: "sum"}, "call sum"},
		{"end", ir.Quad{Op: ir.End}, "end"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.q.Format(); got != c.want {
				t.Errorf("Format() = %q, want %q", got, c.want)
			}
		})
	}
}

func TestBufferPlainEmit(t *testing.T) {
	b := ir.NewBuffer()
	b.Emit(ir.Label, "$LABEL_0", "", "")
	b.Emit(ir.Goto, "$LABEL_0", "", "")
	quads := b.Quads()
	if len(quads) != 2 {
		t.Fatalf("len(Quads()) = %d, want 2", len(quads))
	}
}

// TestBufferSwitchReorder exercises one non-nested switch: two case
// dispatches, a default, then the two deferred case bodies replayed in
// source order, then the end label — the S6 ordering invariant.
func TestBufferSwitchReorder(t *testing.T) {
	b := ir.NewBuffer()
	b.Emit(ir.Label, "$LABEL_0", "", "") // pre-switch statement, for contrast

	b.PushBuffer()

	// case 1:
	b.Emit(ir.Compare, "v", "EQL", "1")
	b.Emit(ir.BNZ, "$LABEL_1", "", "")
	b.BeginDefer()
	b.Emit(ir.Label, "$LABEL_1", "", "")
	b.Emit(ir.Assign, "10", "", "v")
	b.Emit(ir.Goto, "$LABEL_END", "", "")
	b.EndDefer()

	// case 2:
	b.Emit(ir.Compare, "v", "EQL", "2")
	b.Emit(ir.BNZ, "$LABEL_2", "", "")
	b.BeginDefer()
	b.Emit(ir.Label, "$LABEL_2", "", "")
	b.Emit(ir.Assign, "20", "", "v")
	b.Emit(ir.Goto, "$LABEL_END", "", "")
	b.EndDefer()

	// default:
	b.Emit(ir.Label, "$LABEL_3", "", "")
	b.Emit(ir.Assign, "99", "", "v")
	b.Emit(ir.Goto, "$LABEL_END", "", "")

	b.Flush()
	b.Emit(ir.Label, "$LABEL_END", "", "")

	var ops []ir.Op
	for _, q := range b.Quads() {
		ops = append(ops, q.Op)
	}
	want := []ir.Op{
		ir.Label,                        // pre-switch
		ir.Compare, ir.BNZ,               // case 1 dispatch
		ir.Compare, ir.BNZ,               // case 2 dispatch
		ir.Label, ir.Assign, ir.Goto,     // default body
		ir.Label, ir.Assign, ir.Goto,     // case 1 body (deferred, replayed)
		ir.Label, ir.Assign, ir.Goto,     // case 2 body (deferred, replayed)
		ir.Label,                        // end label
	}
	if len(ops) != len(want) {
		t.Fatalf("got %d quads, want %d: %v", len(ops), len(want), ops)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Errorf("quad %d: op = %s, want %s", i, ops[i], want[i])
		}
	}
}

// TestBufferNestedSwitchDispatch runs an inner switch inside an outer
// case body whose defer bracket is still open, and checks the label
// order of the final stream: the inner case body and inner end label
// come out inside the outer case body, ahead of the outer end label.
// It does not check which deferred buffer held the inner dispatch
// compare along the way.
func TestBufferNestedSwitchDispatch(t *testing.T) {
	b := ir.NewBuffer()

	b.PushBuffer() // outer switch
	b.BeginDefer() // outer case 1's body bracket

	b.Emit(ir.Label, "$OUTER_CASE_1", "", "")

	// Nested switch begins: pushes its own buffer but this dispatch
	// compare must still go to the OUTER buffer, since outer's defer
	// bracket (depth 1) is still open and the inner hasn't begun its
	// own bracket yet.
	b.PushBuffer() // inner switch
	b.Emit(ir.Compare, "w", "EQL", "1")
	b.Emit(ir.BNZ, "$INNER_CASE_1", "", "")

	b.BeginDefer() // inner case body bracket (depth becomes 2)
	b.Emit(ir.Label, "$INNER_CASE_1", "", "")
	b.Emit(ir.Assign, "1", "", "w")
	b.Emit(ir.Goto, "$INNER_END", "", "")
	b.EndDefer() // back to depth 1

	b.Flush() // inner switch closes: replay into outer buffer (depth 1)
	b.Emit(ir.Label, "$INNER_END", "", "")

	b.Emit(ir.Goto, "$OUTER_END", "", "")
	b.EndDefer() // outer case 1's bracket closes

	b.Flush() // outer switch closes: replay into primary
	b.Emit(ir.Label, "$OUTER_END", "", "")

	var labels []string
	for _, q := range b.Quads() {
		if q.Op == ir.Label {
			labels = append(labels, q.A)
		}
	}
	want := []string{"$OUTER_CASE_1", "$INNER_CASE_1", "$INNER_END", "$OUTER_END"}
	got := strings.Join(labels, ",")
	wantStr := strings.Join(want, ",")
	if got != wantStr {
		t.Errorf("label order = %s, want %s", got, wantStr)
	}
}

func TestParseConst(t *testing.T) {
	cases := []struct {
		text    string
		wantVal int
		wantOK  bool
	}{
		{"3", 3, true},
		{"-7", -7, true},
		{"'x'", int('x'), true},
		{"x", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		v, ok := ir.ParseConst(c.text)
		if ok != c.wantOK || (ok && v != c.wantVal) {
			t.Errorf("ParseConst(%q) = (%d, %v), want (%d, %v)", c.text, v, ok, c.wantVal, c.wantOK)
		}
	}
}
