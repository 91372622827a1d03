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

func itoa(v int) string { return strconv.Itoa(v) }

func charLiteralText(asciiCode int) string {
	return "'" + string(rune(asciiCode)) + "'"
}

// fold32 applies two's-complement 32-bit wraparound, per the integer
// overflow semantics §4.2 requires of constant folding.
func fold32(v int) int { return int(int32(v)) }

func (p *Parser) pExpression() (string, symtab.DataType) {
	var res string
	var dtype symtab.DataType
	switch p.cur.Kind {
	case token.Minus:
		p.advance()
		v, _ := p.pTerm()
		if c, ok := ir.ParseConst(v); ok {
			res, dtype = itoa(fold32(-c)), symtab.Int
		} else {
			t := p.Namer.Temp()
			p.Buf.Emit(ir.Temp, "int", t, "")
			p.Buf.Emit(ir.Sub, "0", v, t)
			res, dtype = t, symtab.Int
		}
	case token.Plus:
		p.advance()
		v, _ := p.pTerm()
		if c, ok := ir.ParseConst(v); ok {
			res = itoa(c)
		} else {
			res = v
		}
		// Unary plus forces int even on a non-const char operand.
		dtype = symtab.Int
	default:
		res, dtype = p.pTerm()
	}

	for p.cur.Kind == token.Plus || p.cur.Kind == token.Minus {
		isAdd := p.cur.Kind == token.Plus
		p.advance()
		rhs, _ := p.pTerm()
		lc, lok := ir.ParseConst(res)
		rc, rok := ir.ParseConst(rhs)
		if lok && rok {
			var v int
			if isAdd {
				v = fold32(lc + rc)
			} else {
				v = fold32(lc - rc)
			}
			res, dtype = itoa(v), symtab.Int
			continue
		}
		t := p.Namer.Temp()
		p.Buf.Emit(ir.Temp, "int", t, "")
		if isAdd {
			p.Buf.Emit(ir.Add, res, rhs, t)
		} else {
			p.Buf.Emit(ir.Sub, res, rhs, t)
		}
		res, dtype = t, symtab.Int
	}
	return res, dtype
}

func (p *Parser) pTerm() (string, symtab.DataType) {
	res, dtype := p.pFactor()
	for p.cur.Kind == token.Star || p.cur.Kind == token.Slash {
		isMul := p.cur.Kind == token.Star
		p.advance()
		rhs, _ := p.pFactor()
		lc, lok := ir.ParseConst(res)
		rc, rok := ir.ParseConst(rhs)
		if lok && rok {
			var v int
			if isMul {
				v = fold32(lc * rc)
			} else if rc != 0 {
				v = fold32(lc / rc)
			}
			res, dtype = itoa(v), symtab.Int
			continue
		}
		t := p.Namer.Temp()
		p.Buf.Emit(ir.Temp, "int", t, "")
		if isMul {
			p.Buf.Emit(ir.Mul, res, rhs, t)
		} else {
			p.Buf.Emit(ir.Div, res, rhs, t)
		}
		res, dtype = t, symtab.Int
	}
	return res, dtype
}

func (p *Parser) pFactor() (string, symtab.DataType) {
	if p.test3(token.NewSet(token.Ident, token.CharValue, token.LParen, token.Plus, token.Minus, token.IntValue)) {
		return "", symtab.Int
	}
	switch p.cur.Kind {
	case token.Ident:
		name := p.cur.Text
		p.advance()
		entry, ok := p.Sym.Lookup(name)
		if !ok {
			p.error(errUndefinedIdentifier)
			return "", symtab.Int
		}
		switch entry.IType {
		case symtab.Function:
			return p.pNonVoidFunctionCall(name, entry)
		case symtab.Array:
			if p.cur.Kind == token.LParen {
				p.error(errNotAFunction)
				return "", symtab.Int
			}
			return p.pArrayRead(name, entry)
		case symtab.Const:
			if entry.DType == symtab.Char {
				return charLiteralText(entry.Value), symtab.Char
			}
			return itoa(entry.Value), symtab.Int
		default: // Variable
			if p.cur.Kind == token.LParen {
				p.error(errNotAFunction)
				return "", symtab.Int
			}
			return name, entry.DType
		}
	case token.CharValue:
		v := p.cur.IntVal
		p.advance()
		return charLiteralText(v), symtab.Char
	case token.LParen:
		p.advance()
		res, _ := p.pExpression()
		if p.test3(token.NewSet(token.RParen)) {
			return res, symtab.Int
		}
		p.advance()
		return res, symtab.Int
	default: // Plus, Minus, IntValue
		return itoa(p.pSignedInteger()), symtab.Int
	}
}

func (p *Parser) pArrayRead(name string, entry *symtab.Entry) (string, symtab.DataType) {
	if p.test3(token.NewSet(token.LBrack)) {
		return "", entry.DType
	}
	p.advance()
	idx, idxType := p.pExpression()
	if idxType != symtab.Int {
		p.error(errExpectIntArrayIndex)
	}
	if v, ok := ir.ParseConst(idx); ok && (v < 0 || v >= entry.Value) {
		p.error(errArrayIndexOverflow)
	}
	res := p.Namer.Temp()
	p.Buf.Emit(ir.Temp, dtypeTag(entry.DType), res, "")
	p.Buf.Emit(ir.RArray, name, idx, res)
	if p.test3(token.NewSet(token.RBrack)) {
		return res, entry.DType
	}
	p.advance()
	return res, entry.DType
}

func (p *Parser) pNonVoidFunctionCall(name string, entry *symtab.Entry) (string, symtab.DataType) {
	if entry.DType == symtab.Void {
		p.error(errExpectNonVoidFunction)
	}
	params := p.Sym.Params(name)
	if p.cur.Kind == token.LParen {
		p.pArgumentsList(params)
	} else if len(params) != 0 {
		p.error(errExpectArguments)
	}
	p.Buf.Emit(ir.Call, name, itoa(len(params)), "")
	res := p.Namer.Temp()
	p.Buf.Emit(ir.Temp, dtypeTag(entry.DType), res, "")
	p.Buf.Emit(ir.GetRet, "", "", res)
	return res, entry.DType
}

// pArgumentsList evaluates each argument expression (which may itself
// emit TEMP/arithmetic quads) and stages its PUSH, emitting the whole
// run of PUSH quads as one consecutive block once every argument has
// been evaluated — so invariant 1 (every CALL f k has k immediately
// preceding PUSH quads) holds regardless of how much IR an argument
// sub-expression needed.
func (p *Parser) pArgumentsList(params []symtab.DataType) {
	p.advance() // consume '('
	count := 0
	var pushes []ir.Quad
	for {
		count++
		v, dtype := p.pExpression()
		if count > len(params) {
			p.error(errMoreArguments)
			break
		}
		if params[count-1] != dtype {
			p.error(errWrongTypeOfArgument)
		}
		pushes = append(pushes, ir.Quad{Op: ir.Push, A: dtypeTag(dtype), B: v})
		if p.cur.Kind != token.Comma {
			break
		}
		p.advance()
	}
	for _, q := range pushes {
		p.Buf.Emit(q.Op, q.A, q.B, q.Res)
	}
	if count < len(params) {
		p.error(errLessArguments)
	}
	if p.test3(token.NewSet(token.RParen)) {
		return
	}
	p.advance()
}
