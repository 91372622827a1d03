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
	"github.com/fondoger/c0compiler/internal/ir"
	"github.com/fondoger/c0compiler/internal/symtab"
	"github.com/fondoger/c0compiler/internal/token"
)

func (p *Parser) pStatementsList() {
	for p.cur.Kind != token.RBrace {
		p.pStatement()
	}
	p.advance() // consume '}'
}

var stmtStartSet = token.NewSet(token.Semicolon, token.LBrace, token.If, token.Do,
	token.Switch, token.Printf, token.Scanf, token.Return, token.Ident)

func (p *Parser) pStatement() {
	switch p.cur.Kind {
	case token.Semicolon:
		p.pEmptyStatement()
	case token.LBrace:
		p.advance()
		p.pStatementsList()
	case token.If:
		p.pIfElseStatement()
	case token.Do:
		p.pDoWhileStatement()
	case token.Switch:
		p.pSwitchCaseStatement()
	case token.Printf:
		p.pPrintfStatement()
	case token.Scanf:
		p.pScanfStatement()
	case token.Return:
		p.pReturnStatement()
	case token.Ident:
		id := p.cur.Text
		p.advance()
		switch p.cur.Kind {
		case token.LBrack:
			p.pArrayAssignmentStatement(id)
		case token.Becomes:
			p.pAssignmentStatement(id)
		case token.LParen, token.Semicolon:
			p.pFunctionCallStatement(id)
		default:
			p.error(errWrongStatement)
		}
	default:
		p.test(stmtStartSet, token.Set(0))
	}
}

func (p *Parser) pIfElseStatement() {
	ifLabel, elseLabel, endLabel := p.Namer.IfLabels()
	p.advance() // consume 'if'
	if p.test3(token.NewSet(token.LParen)) {
		return
	}
	p.advance()
	p.pCondition()
	if p.test3(token.NewSet(token.RParen)) {
		return
	}
	p.advance()
	p.Buf.Emit(ir.BZ, elseLabel, "", "")
	p.Buf.Emit(ir.Label, ifLabel, "", "")
	p.pStatement()
	p.Buf.Emit(ir.Goto, endLabel, "", "")
	if p.test3(token.NewSet(token.Else)) {
		return
	}
	p.advance()
	p.Buf.Emit(ir.Label, elseLabel, "", "")
	p.pStatement()
	p.Buf.Emit(ir.Label, endLabel, "", "")
}

func (p *Parser) pCondition() {
	left, leftType := p.pExpression()
	if op, ok := compareOpText(p.cur.Kind); ok {
		p.advance()
		right, rightType := p.pExpression()
		if leftType != rightType {
			p.error(errCompareTypeNotMatch)
		}
		p.Buf.Emit(ir.Compare, left, op, right)
		return
	}
	if leftType != symtab.Int {
		p.error(errExpectIntSingleCond)
	}
	p.Buf.Emit(ir.Compare, left, "", "")
}

// compareOpText maps a comparison operator token to the symbolic text
// stored in a COMPARE quad's b operand.
func compareOpText(k token.Kind) (string, bool) {
	switch k {
	case token.Eql:
		return "EQL", true
	case token.Neq:
		return "NEQ", true
	case token.Lss:
		return "LSS", true
	case token.Leq:
		return "LEQ", true
	case token.Gtr:
		return "GTR", true
	case token.Geq:
		return "GEQ", true
	default:
		return "", false
	}
}

func (p *Parser) pDoWhileStatement() {
	beginLabel := p.Namer.Label()
	p.advance() // consume 'do'
	p.Buf.Emit(ir.Label, beginLabel, "", "")
	p.pStatement()
	if p.test3(token.NewSet(token.While)) {
		return
	}
	p.advance()
	if p.test3(token.NewSet(token.LParen)) {
		return
	}
	p.advance()
	p.pCondition()
	p.Buf.Emit(ir.BNZ, beginLabel, "", "")
	if p.test3(token.NewSet(token.RParen)) {
		return
	}
	p.advance()
	if p.test3(token.NewSet(token.Semicolon)) {
		return
	}
	p.advance()
}

// pSwitchCaseStatement ports the defer-buffer reordering documented for
// internal/ir.Buffer: every case's dispatch compare/branch is emitted up
// front, its body deferred, and the default clause (undeferred) sits
// between the dispatches and the replayed bodies.
func (p *Parser) pSwitchCaseStatement() {
	endLabel := p.Namer.Label()
	p.advance() // consume 'switch'
	if p.test3(token.NewSet(token.LParen)) {
		return
	}
	p.advance()
	switched, switchedType := p.pExpression()
	if p.test3(token.NewSet(token.RParen)) {
		return
	}
	p.advance()
	if p.test3(token.NewSet(token.LBrace)) {
		return
	}
	p.advance()
	p.Buf.PushBuffer()
	for {
		p.pCaseItem(switched, switchedType, endLabel)
		if p.cur.Kind == token.RBrace {
			break
		}
	}
	p.advance() // consume '}'
	p.Buf.Flush()
	p.Buf.Emit(ir.Label, endLabel, "", "")
}

func (p *Parser) pCaseItem(switched string, switchedType symtab.DataType, endLabel string) {
	if p.test3(token.NewSet(token.Case, token.Default)) {
		return
	}
	if p.cur.Kind == token.Default {
		p.advance()
		if p.test3(token.NewSet(token.Colon)) {
			return
		}
		p.advance()
		caseLabel := p.Namer.Label()
		p.Buf.Emit(ir.Label, caseLabel, "", "")
		p.pStatement()
		p.Buf.Emit(ir.Goto, endLabel, "", "")
		return
	}
	p.advance() // consume 'case'
	if p.test3(token.NewSet(token.CharValue, token.Plus, token.Minus, token.IntValue)) {
		return
	}
	var cased string
	var casedType symtab.DataType
	if p.cur.Kind == token.CharValue {
		cased = charLiteralText(p.cur.IntVal)
		casedType = symtab.Char
		p.advance()
	} else {
		v := p.pSignedInteger()
		cased = itoa(v)
		casedType = symtab.Int
	}
	if casedType != switchedType {
		p.error(errSwitchTypeNotMatch)
	}
	if p.test3(token.NewSet(token.Colon)) {
		return
	}
	p.advance()
	caseLabel := p.Namer.Label()
	p.Buf.Emit(ir.Compare, switched, "EQL", cased)
	p.Buf.Emit(ir.BNZ, caseLabel, "", "")
	p.Buf.BeginDefer()
	p.Buf.Emit(ir.Label, caseLabel, "", "")
	p.pStatement()
	p.Buf.Emit(ir.Goto, endLabel, "", "")
	p.Buf.EndDefer()
}

func (p *Parser) pPrintfStatement() {
	p.advance() // consume 'printf'
	if p.test3(token.NewSet(token.LParen)) {
		return
	}
	p.advance()
	if p.cur.Kind == token.StrValue {
		label := p.Pool.Label(p.cur.StrVal)
		p.Buf.Emit(ir.Write, "str", label, "")
		p.advance()
		if p.cur.Kind == token.Comma {
			p.advance()
			v, dtype := p.pExpression()
			p.Buf.Emit(ir.Write, dtypeTag(dtype), v, "")
		}
	} else {
		v, dtype := p.pExpression()
		p.Buf.Emit(ir.Write, dtypeTag(dtype), v, "")
	}
	if p.test3(token.NewSet(token.RParen)) {
		return
	}
	p.advance()
	if p.test3(token.NewSet(token.Semicolon)) {
		return
	}
	p.advance()
}

func (p *Parser) pScanfStatement() {
	p.advance() // consume 'scanf'
	if p.test3(token.NewSet(token.LParen)) {
		return
	}
	p.advance()
	count := 0
	for {
		count++
		if p.test3(token.NewSet(token.Ident)) {
			return
		}
		name := p.cur.Text
		p.advance()
		entry, ok := p.Sym.Lookup(name)
		typeTag := "int"
		switch {
		case !ok:
			p.error(errUndefinedIdentifier)
		case entry.IType != symtab.Variable || (entry.DType != symtab.Int && entry.DType != symtab.Char):
			p.error(errWrongTypeOfScanf)
		case entry.DType == symtab.Char:
			typeTag = "char"
		}
		p.Buf.Emit(ir.Read, typeTag, name, "")
		if p.cur.Kind != token.Comma {
			break
		}
		p.advance()
	}
	if count == 0 {
		p.error(errScanfNoArguments)
	}
	if p.test3(token.NewSet(token.RParen)) {
		return
	}
	p.advance()
	if p.test3(token.NewSet(token.Semicolon)) {
		return
	}
	p.advance()
}

func (p *Parser) pReturnStatement() {
	p.advance() // consume 'return'
	if p.test3(token.NewSet(token.LParen, token.Semicolon)) {
		return
	}
	var retType symtab.DataType
	if p.cur.Kind == token.LParen {
		p.advance()
		v, dtype := p.pExpression()
		retType = dtype
		p.Buf.Emit(ir.Ret, v, "", "")
		if p.test3(token.NewSet(token.RParen)) {
			return
		}
		p.advance()
	} else {
		retType = symtab.Void
		p.Buf.Emit(ir.Ret, "", "", "")
	}
	if retType != p.curFuncType {
		p.error(errWrongReturnType)
	}
	if p.test3(token.NewSet(token.Semicolon)) {
		return
	}
	p.advance()
}

func (p *Parser) pEmptyStatement() {
	p.advance() // consume ';'
}

func (p *Parser) pAssignmentStatement(id string) {
	p.advance() // consume '='
	entry, ok := p.Sym.Lookup(id)
	if !ok {
		p.error(errUndefinedIdentifier)
		return
	}
	if entry.IType != symtab.Variable {
		p.error(errLeftValueNotVariable)
		return
	}
	v, dtype := p.pExpression()
	if dtype != entry.DType {
		p.error(errTypeNotMatch)
	}
	p.Buf.Emit(ir.Assign, v, "", id)
	if p.test3(token.NewSet(token.Semicolon)) {
		return
	}
	p.advance()
}

func (p *Parser) pArrayAssignmentStatement(id string) {
	entry, ok := p.Sym.Lookup(id)
	if !ok {
		p.error(errUndefinedIdentifier)
		return
	}
	if entry.IType != symtab.Array {
		p.error(errNotAnArray)
		return
	}
	p.advance() // consume '['
	idx, idxType := p.pExpression()
	if idxType != symtab.Int {
		p.error(errExpectIntArrayIndex)
	}
	if v, ok := ir.ParseConst(idx); ok && (v < 0 || v >= entry.Value) {
		p.error(errArrayIndexOverflow)
	}
	if p.test3(token.NewSet(token.RBrack)) {
		return
	}
	p.advance()
	if p.test3(token.NewSet(token.Becomes)) {
		return
	}
	p.advance()
	v, dtype := p.pExpression()
	if dtype != entry.DType {
		p.error(errTypeNotMatch)
	}
	p.Buf.Emit(ir.WArray, id, idx, v)
	if p.test3(token.NewSet(token.Semicolon)) {
		return
	}
	p.advance()
}

func (p *Parser) pFunctionCallStatement(id string) {
	entry, ok := p.Sym.Lookup(id)
	if !ok {
		p.error(errUndefinedIdentifier)
		return
	}
	if entry.IType != symtab.Function {
		p.error(errNotAFunction)
		return
	}
	params := p.Sym.Params(id)
	if p.cur.Kind == token.LParen {
		p.pArgumentsList(params)
	} else if len(params) != 0 {
		p.error(errExpectArguments)
		return
	}
	p.Buf.Emit(ir.Call, id, itoa(len(params)), "")
	if p.test2(token.NewSet(token.Semicolon), token.Set(0)) {
		return
	}
	p.advance()
}
