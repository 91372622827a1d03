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

// Package parser is the recursive-descent parser fused with semantic
// analysis and IR emission: one method per grammar non-terminal,
// inspecting the scanner's lookahead and emitting quadruples as it goes.
// There is no separate AST.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fondoger/c0compiler/internal/diag"
	"github.com/fondoger/c0compiler/internal/ir"
	"github.com/fondoger/c0compiler/internal/lexer"
	"github.com/fondoger/c0compiler/internal/symtab"
	"github.com/fondoger/c0compiler/internal/token"
)

// rbraceSemi is the implicit follow set used by the test3 recovery
// helper.
var rbraceSemi = token.NewSet(token.RBrace, token.Semicolon)

// fatalAbort unwinds the recursive descent on a scanner-fatal condition
// (incomplete program, stray '!', redundant trailing code).
type fatalAbort struct{ err error }

// Parser holds every piece of shared state the front end mutates as it
// walks the token stream: the scanner, the two-scope symbol table, the
// string pool, the IR buffer and its name generator, and the buffered
// diagnostics list.
type Parser struct {
	sc       *lexer.Scanner
	cur      token.Token
	filename string

	Sym   *symtab.Table
	Pool  *symtab.Pool
	Buf   *ir.Buffer
	Namer *ir.Namer
	Errs  *diag.List

	curFuncType symtab.DataType
}

// New returns a ready-to-use Parser reading from sc.
func New(sc *lexer.Scanner, filename string, errs *diag.List) *Parser {
	return &Parser{
		sc:       sc,
		filename: filename,
		Sym:      symtab.New(),
		Pool:     symtab.NewPool(),
		Buf:      ir.NewBuffer(),
		Namer:    &ir.Namer{},
		Errs:     errs,
	}
}

// Parse compiles the whole program, returning a scanner-fatal error (if
// any occurred); semantic/syntax diagnostics are left in p.Errs for the
// caller to inspect and print.
func (p *Parser) Parse() (err error) {
	defer func() {
		if r := recover(); r != nil {
			if fa, ok := r.(fatalAbort); ok {
				err = fa.err
				return
			}
			panic(r)
		}
	}()
	p.pProgram()
	return nil
}

func (p *Parser) advance() {
	if err := p.sc.Advance(); err != nil {
		panic(fatalAbort{err})
	}
	p.cur = p.sc.Cur
}

func tokenWidth(t token.Token) int {
	w := 0
	switch {
	case t.Text != "":
		w = len(t.Text) - 1
	case t.Kind == token.IntValue:
		w = len(strconv.Itoa(t.IntVal)) - 1
	case t.Kind == token.CharValue:
		w = 2
	case t.Kind == token.StrValue:
		w = len(t.StrVal) + 1
	default:
		w = len(t.Kind.String()) - 1
	}
	if w < 0 {
		return 0
	}
	return w
}

// error buffers a diagnostic at the current scanner position.
func (p *Parser) error(msg string) {
	p.Errs.Add(diag.Diagnostic{
		Pos:     diag.Position{File: p.filename, Line: p.cur.Line, Col: p.cur.Col},
		Message: "error: " + msg,
		Line:    p.sc.Line(),
		Width:   tokenWidth(p.cur),
	})
}

func (p *Parser) errorf(format string, args ...interface{}) {
	p.error(fmt.Sprintf(format, args...))
}

// skip consumes tokens until the current one lies in fsys.
func (p *Parser) skip(fsys token.Set) {
	for !fsys.Contains(p.cur.Kind) {
		p.advance()
	}
}

// test is the base two-set recovery primitive: if the current token is
// outside s1, record an "expected ... before ..." diagnostic and skip
// until it lies in s1 ∪ s2.
func (p *Parser) test(s1, s2 token.Set) {
	if s1.Contains(p.cur.Kind) {
		return
	}
	var names []string
	for _, k := range s1.Kinds() {
		names = append(names, k.String())
	}
	p.errorf("expected %s before %s", strings.Join(names, "|"), p.cur.Kind.String())
	p.skip(s1.Union(s2))
}

// test1 additionally reports to the caller (via its bool result)
// whether recovery only reached a follow-set token, in which case the
// caller should return immediately without consuming anything more.
func (p *Parser) test1(s1, s2 token.Set) bool {
	p.test(s1, s2)
	return !s1.Contains(p.cur.Kind)
}

// test2 is test1 but additionally consumes one more token before
// telling the caller to return.
func (p *Parser) test2(s1, s2 token.Set) bool {
	p.test(s1, s2)
	if !s1.Contains(p.cur.Kind) {
		p.advance()
		return true
	}
	return false
}

// test3 is test2 with the implicit follow set {RBRACE, SEMICOLON}.
func (p *Parser) test3(s1 token.Set) bool {
	return p.test2(s1, rbraceSemi)
}

func (p *Parser) insert(e *symtab.Entry) bool {
	if p.Sym.Insert(e) {
		return true
	}
	if e.Scope == symtab.Global {
		p.error(errDuplicateGlobal)
	} else {
		p.error(errDuplicateLocal)
	}
	return false
}

func dtypeTag(d symtab.DataType) string {
	return d.String()
}

func (p *Parser) pProgram() {
	p.advance()
	p.pConstDefinitions(symtab.Global)
	for {
		p.test(token.NewSet(token.Int, token.Char, token.Void), token.Set(0))
		var dtype symtab.DataType
		switch p.cur.Kind {
		case token.Int:
			dtype = symtab.Int
		case token.Char:
			dtype = symtab.Char
		default:
			dtype = symtab.Void
		}
		p.advance()
		if p.cur.Kind == token.Main {
			if dtype != symtab.Void {
				p.error(errWrongTypeOfMain)
			}
			p.pMainFunctionDefinition()
			break
		}
		p.test(token.NewSet(token.Ident), token.NewSet(token.Int, token.Char, token.Void))
		if p.cur.Kind != token.Ident {
			continue
		}
		id := p.cur.Text
		p.advance()
		p.test(token.NewSet(token.Comma, token.Semicolon, token.LBrack, token.LBrace, token.LParen), token.Set(0))
		switch p.cur.Kind {
		case token.Comma, token.Semicolon, token.LBrack:
			p.pGlobalVariableDefinitionItem(dtype, id)
		default:
			p.pFunctionDefinition(dtype, id)
			p.Sym.ClearLocal()
		}
	}
	if err := p.sc.ExtraCodeChecking(); err != nil {
		panic(fatalAbort{err})
	}
}
