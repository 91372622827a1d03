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

// Package c0compiler wires the scanner, parser/IR-emitter, and MIPS
// lowerer into a single Compile entry point, configured with functional
// options.
package c0compiler

import (
	"bytes"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/fondoger/c0compiler/internal/diag"
	"github.com/fondoger/c0compiler/internal/lexer"
	"github.com/fondoger/c0compiler/internal/mips"
	"github.com/fondoger/c0compiler/internal/parser"
	"github.com/fondoger/c0compiler/internal/peephole"
	"github.com/fondoger/c0compiler/internal/symtab"
)

// Result holds the two text artifacts a successful Compile produces.
type Result struct {
	MidCode  string
	MIPSCode string
}

type config struct {
	filename string
	peephole bool
}

// Option configures a Compile call.
type Option func(*config)

// Filename attributes diagnostics to name; defaults to "source".
func Filename(name string) Option {
	return func(c *config) { c.filename = name }
}

// Peephole enables the redundant lw-after-sw / sw-after-lw filter over
// the emitted MIPS listing.
func Peephole(enabled bool) Option {
	return func(c *config) { c.peephole = enabled }
}

// Compile reads C0 source from r and produces its mid-code and MIPS
// listings.
//
// A returned *diag.List means the front end collected one or more
// buffered diagnostics (the caller should print them); any other
// non-nil error is either a scanner-fatal condition (*diag.FatalError)
// or an I/O failure wrapped with github.com/pkg/errors.
func Compile(r io.Reader, opts ...Option) (*Result, error) {
	cfg := config{filename: "source"}
	for _, opt := range opts {
		opt(&cfg)
	}

	errs := &diag.List{}
	sc := lexer.New(r, cfg.filename, errs)
	p := parser.New(sc, cfg.filename, errs)
	if err := p.Parse(); err != nil {
		return nil, err
	}
	if errs.Len() > 0 {
		return nil, errs
	}

	var mid strings.Builder
	if err := p.Buf.Write(&mid); err != nil {
		return nil, errors.Wrap(err, "writing mid-code")
	}

	var mipsOut bytes.Buffer
	if err := mips.Lower(&mipsOut, p.Buf.Quads(), stringEntries(p.Pool)); err != nil {
		return nil, errors.Wrap(err, "lowering to MIPS")
	}

	mipsText := mipsOut.String()
	if cfg.peephole {
		lines := strings.Split(strings.TrimRight(mipsText, "\n"), "\n")
		mipsText = strings.Join(peephole.Filter(lines), "\n") + "\n"
	}

	return &Result{MidCode: mid.String(), MIPSCode: mipsText}, nil
}

func stringEntries(pool *symtab.Pool) []mips.StringEntry {
	raw := pool.Entries()
	out := make([]mips.StringEntry, 0, len(raw))
	for _, e := range raw {
		out = append(out, mips.StringEntry{Label: e.Label, Content: e.Content})
	}
	return out
}
