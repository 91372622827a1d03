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
	"strconv"

	"github.com/fondoger/c0compiler/internal/ir"
	"github.com/fondoger/c0compiler/internal/symtab"
	"github.com/fondoger/c0compiler/internal/token"
)

func (p *Parser) pConstDefinitions(scope symtab.Scope) {
	for p.cur.Kind == token.Const {
		p.pConstDefinition(scope)
	}
}

func (p *Parser) pConstDefinition(scope symtab.Scope) {
	p.advance() // consume 'const'
	if p.test3(token.NewSet(token.Int, token.Char)) {
		return
	}
	dtype := symtab.Int
	if p.cur.Kind == token.Char {
		dtype = symtab.Char
	}
	for {
		p.advance() // consume the type keyword or a ','
		if p.test3(token.NewSet(token.Ident)) {
			return
		}
		name := p.cur.Text
		p.advance()
		if p.test3(token.NewSet(token.Becomes)) {
			return
		}
		p.advance()
		var entry *symtab.Entry
		if dtype == symtab.Int {
			v := p.pSignedInteger()
			entry = &symtab.Entry{Name: name, Scope: scope, IType: symtab.Const, DType: symtab.Int, Value: v}
		} else {
			if p.test3(token.NewSet(token.CharValue)) {
				return
			}
			entry = &symtab.Entry{Name: name, Scope: scope, IType: symtab.Const, DType: symtab.Char, Value: p.cur.IntVal}
			p.advance()
		}
		p.insert(entry)
		if p.cur.Kind != token.Comma {
			break
		}
	}
	p.test(token.NewSet(token.Semicolon), token.NewSet(token.Semicolon, token.RBrace, token.Const))
	if p.cur.Kind == token.Const {
		// pProgram's/pFunctionDefinition's caller loop re-enters
		// pConstDefinitions on its own; bail without consuming the
		// semicolon we never found.
		return
	}
	if p.test3(token.NewSet(token.Semicolon)) {
		return
	}
	p.advance()
}

// pSignedInteger reads an optionally-signed decimal literal, consuming
// it, and returns its value.
func (p *Parser) pSignedInteger() int {
	neg := 1
	if p.cur.Kind == token.Plus || p.cur.Kind == token.Minus {
		if p.cur.Kind == token.Minus {
			neg = -1
		}
		p.advance()
	}
	if p.test3(token.NewSet(token.IntValue)) {
		return 0
	}
	v := p.cur.IntVal * neg
	p.advance()
	return v
}

func (p *Parser) pGlobalVariableDefinitionItem(dtype symtab.DataType, id string) {
	if dtype == symtab.Void {
		p.error(errWrongVariableType)
	}
	typeTag := dtypeTag(dtype)
	for {
		if p.cur.Kind == token.LBrack {
			p.advance()
			if p.test3(token.NewSet(token.IntValue)) {
				return
			}
			size := p.cur.IntVal
			if size == 0 {
				p.error(errArraySizeZero)
			}
			p.insert(&symtab.Entry{Name: id, Scope: symtab.Global, IType: symtab.Array, DType: dtype, Value: size})
			p.Buf.Emit(ir.GVar, typeTag, id, strconv.Itoa(size))
			p.advance()
			if p.test3(token.NewSet(token.RBrack)) {
				return
			}
			p.advance()
		} else {
			p.insert(&symtab.Entry{Name: id, Scope: symtab.Global, IType: symtab.Variable, DType: dtype})
			p.Buf.Emit(ir.GVar, typeTag, id, "")
		}
		if p.cur.Kind != token.Comma {
			break
		}
		p.advance()
		if p.test3(token.NewSet(token.Ident)) {
			return
		}
		id = p.cur.Text
		p.advance()
	}
	if p.test3(token.NewSet(token.Semicolon)) {
		return
	}
	p.advance()
}

func (p *Parser) pLocalVariableDefinitions() {
	for p.cur.Kind == token.Int || p.cur.Kind == token.Char {
		dtype := symtab.Int
		if p.cur.Kind == token.Char {
			dtype = symtab.Char
		}
		typeTag := dtypeTag(dtype)
		for {
			p.advance() // consume the type keyword or a ','
			if p.test3(token.NewSet(token.Ident)) {
				return
			}
			name := p.cur.Text
			p.advance()
			if p.cur.Kind == token.LBrack {
				p.advance()
				if p.test3(token.NewSet(token.IntValue)) {
					return
				}
				size := p.cur.IntVal
				p.insert(&symtab.Entry{Name: name, Scope: symtab.Local, IType: symtab.Array, DType: dtype, Value: size})
				p.Buf.Emit(ir.Var, typeTag, name, strconv.Itoa(size))
				p.advance()
				if p.test3(token.NewSet(token.RBrack)) {
					return
				}
				p.advance()
			} else {
				p.insert(&symtab.Entry{Name: name, Scope: symtab.Local, IType: symtab.Variable, DType: dtype})
				p.Buf.Emit(ir.Var, typeTag, name, "")
			}
			if p.cur.Kind != token.Comma {
				break
			}
		}
		if p.test3(token.NewSet(token.Semicolon)) {
			return
		}
		p.advance()
	}
}

func (p *Parser) pFunctionDefinition(dtype symtab.DataType, id string) {
	p.insert(&symtab.Entry{Name: id, Scope: symtab.Global, IType: symtab.Function, DType: dtype, Value: -1})
	p.curFuncType = dtype
	p.Buf.Emit(ir.Func, dtypeTag(dtype), id, "")
	if p.cur.Kind == token.LParen {
		p.pParametersList(id)
	}
	p.test(token.NewSet(token.LBrace), token.Set(0))
	p.advance()
	p.pConstDefinitions(symtab.Local)
	p.pLocalVariableDefinitions()
	p.pStatementsList()
	p.Buf.Emit(ir.End, "", "", "")
}

func (p *Parser) pMainFunctionDefinition() {
	p.insert(&symtab.Entry{Name: "main", Scope: symtab.Global, IType: symtab.Function, DType: symtab.Void, Value: -1})
	p.curFuncType = symtab.Void
	p.Buf.Emit(ir.Func, "void", "main", "")
	p.advance() // consume 'main'
	if p.test3(token.NewSet(token.LParen)) {
		return
	}
	p.advance()
	if p.test3(token.NewSet(token.RParen)) {
		return
	}
	p.advance()
	if p.test3(token.NewSet(token.LBrace)) {
		return
	}
	p.advance()
	p.pConstDefinitions(symtab.Local)
	p.pLocalVariableDefinitions()
	for p.cur.Kind != token.RBrace {
		p.pStatement()
	}
	// Deliberately no p.advance() here: main's closing '}' is never
	// consumed, so extraCodeChecking takes over raw byte scanning from
	// exactly this point.
	p.Buf.Emit(ir.End, "", "", "")
}

func (p *Parser) pParametersList(id string) {
	count := 0
	var types []symtab.DataType
	for p.cur.Kind != token.RParen {
		count++
		p.advance() // consume '(' or ','
		if p.test2(token.NewSet(token.Int, token.Char), token.NewSet(token.RParen)) {
			return
		}
		dtype := symtab.Int
		if p.cur.Kind == token.Char {
			dtype = symtab.Char
		}
		p.advance()
		if p.test2(token.NewSet(token.Ident), token.NewSet(token.RParen)) {
			return
		}
		name := p.cur.Text
		p.insert(&symtab.Entry{Name: name, Scope: symtab.Local, IType: symtab.Variable, DType: dtype})
		types = append(types, dtype)
		p.Buf.Emit(ir.Para, dtypeTag(dtype), name, "")
		p.advance()
		if p.test3(token.NewSet(token.Comma, token.RParen)) {
			return
		}
		if p.cur.Kind != token.Comma {
			break
		}
	}
	if count == 0 {
		p.error(errMissingParameters)
	}
	p.Sym.InsertParams(id, types)
	p.advance() // consume ')'
}
