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

package parser

import (
	"strings"
	"testing"

	"github.com/fondoger/c0compiler/internal/diag"
	"github.com/fondoger/c0compiler/internal/lexer"
	"github.com/fondoger/c0compiler/internal/token"
)

func newTestParser(t *testing.T, src string) *Parser {
	t.Helper()
	errs := &diag.List{}
	sc := lexer.New(strings.NewReader(src), "test.c0", errs)
	p := New(sc, "test.c0", errs)
	p.advance()
	return p
}

func TestTestRecoveryConsumesNothingOnMatch(t *testing.T) {
	p := newTestParser(t, "int x")
	ok := p.test1(token.NewSet(token.Int), token.Set(0))
	if ok {
		t.Fatal("test1 reported recovery-past-follow-set when current token matched s1")
	}
	if p.cur.Kind != token.Int {
		t.Fatalf("cur.Kind = %v, want Int (test1 on a match must not advance)", p.cur.Kind)
	}
}

func TestTest1SkipsToFollowSetWithoutConsuming(t *testing.T) {
	// cur is ';' (not in s1, but in the follow set s2); test1 should
	// skip until it lands on a token in s1 ∪ s2 and, finding it already
	// there, report "stop" without consuming it.
	p := newTestParser(t, "; int")
	ok := p.test1(token.NewSet(token.Int), token.NewSet(token.Semicolon))
	if !ok {
		t.Fatal("test1 should report true: recovery only reached a follow-set token")
	}
	if p.cur.Kind != token.Semicolon {
		t.Fatalf("cur.Kind = %v, want Semicolon (test1 must not consume the follow-set token)", p.cur.Kind)
	}
	if p.Errs.Len() != 1 {
		t.Fatalf("Errs.Len() = %d, want 1", p.Errs.Len())
	}
}

func TestTest2ConsumesOneMoreTokenOnFollowSetLanding(t *testing.T) {
	p := newTestParser(t, "; int")
	ok := p.test2(token.NewSet(token.Int), token.NewSet(token.Semicolon))
	if !ok {
		t.Fatal("test2 should report true")
	}
	if p.cur.Kind != token.Int {
		t.Fatalf("cur.Kind = %v, want Int (test2 consumes one token past the follow-set landing)", p.cur.Kind)
	}
}

func TestTest3UsesImplicitRBraceSemicolonFollowSet(t *testing.T) {
	p := newTestParser(t, "} ;")
	ok := p.test3(token.NewSet(token.Ident))
	if !ok {
		t.Fatal("test3 should report true when recovery lands on the implicit RBrace/Semicolon follow set")
	}
}

func TestDiagnosticCapAtSix(t *testing.T) {
	errs := &diag.List{}
	for i := 0; i < 10; i++ {
		errs.Add(diag.Diagnostic{Message: "error: x"})
	}
	if errs.Len() != 10 {
		t.Fatalf("Len() = %d, want 10 (List.Len counts every buffered diagnostic)", errs.Len())
	}
	var buf strings.Builder
	errs.Print(&buf)
	out := buf.String()
	if !strings.Contains(out, "Omitted") {
		t.Errorf("Print() output missing the omitted-errors tail; got:\n%s", out)
	}
}

func TestPSignedInteger(t *testing.T) {
	cases := []struct {
		src  string
		want int
	}{
		{"42 ;", 42},
		{"-7 ;", -7},
		{"+3 ;", 3},
	}
	for _, c := range cases {
		p := newTestParser(t, c.src)
		if got := p.pSignedInteger(); got != c.want {
			t.Errorf("pSignedInteger(%q) = %d, want %d", c.src, got, c.want)
		}
	}
}

func TestCompareOpText(t *testing.T) {
	cases := []struct {
		k    token.Kind
		want string
	}{
		{token.Eql, "EQL"},
		{token.Neq, "NEQ"},
		{token.Lss, "LSS"},
		{token.Leq, "LEQ"},
		{token.Gtr, "GTR"},
		{token.Geq, "GEQ"},
	}
	for _, c := range cases {
		got, ok := compareOpText(c.k)
		if !ok || got != c.want {
			t.Errorf("compareOpText(%v) = (%q, %v), want (%q, true)", c.k, got, ok, c.want)
		}
	}
	if _, ok := compareOpText(token.Plus); ok {
		t.Error("compareOpText(Plus) should report false")
	}
}
