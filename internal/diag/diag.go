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

// Package diag collects position-tagged compile diagnostics and renders
// them with a source-line caret, the way the front end reports lexical,
// syntactic and semantic errors.
package diag

import (
	"fmt"
	"io"
	"strings"
)

// maxPrinted bounds how many diagnostics get a full rendering; the rest
// are folded into a single summary line.
const maxPrinted = 6

// Position locates a diagnostic in the source file. Col is 1-based and
// points at the first character of the offending token.
type Position struct {
	File string
	Line int
	Col  int
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
}

// Diagnostic is a single buffered error record.
type Diagnostic struct {
	Pos     Position
	Message string
	// Line is the raw source text the diagnostic refers to, used to
	// render the caret/tilde underline. Width is how many characters
	// (beyond the first) the underline should span.
	Line  string
	Width int
}

// Render formats a diagnostic as the message line followed by the source
// line and a caret/tilde underline, mirroring printError in the reference
// front end.
func (d Diagnostic) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:%s\n", d.Pos, d.Message)
	b.WriteString(d.Line)
	b.WriteByte('\n')
	if d.Pos.Col > 1 {
		b.WriteString(strings.Repeat(" ", d.Pos.Col-1))
	}
	b.WriteByte('^')
	if d.Width > 0 {
		b.WriteString(strings.Repeat("~", d.Width))
	}
	return b.String()
}

// List accumulates diagnostics in the order they were reported. Its
// zero value is ready to use.
type List struct {
	items []Diagnostic
}

// Add appends a diagnostic to the list.
func (l *List) Add(d Diagnostic) {
	l.items = append(l.items, d)
}

// Len reports how many diagnostics have been recorded.
func (l *List) Len() int {
	return len(l.items)
}

// Error implements the error interface so a *List can be returned
// directly from the front end when compilation failed.
func (l *List) Error() string {
	lines := make([]string, 0, len(l.items))
	for _, d := range l.items {
		lines = append(lines, d.Render())
	}
	return strings.Join(lines, "\n")
}

// Print writes up to maxPrinted diagnostics to w, followed by an
// "Omitted N more errors" summary if any were left out.
func (l *List) Print(w io.Writer) {
	n := len(l.items)
	shown := n
	if shown > maxPrinted {
		shown = maxPrinted
	}
	for _, d := range l.items[:shown] {
		fmt.Fprintln(w, d.Render())
	}
	if n > maxPrinted {
		fmt.Fprintf(w, "Omitted %d more errors\n", n-maxPrinted)
	}
}

// FatalError represents one of the three conditions the front end treats
// as immediately fatal: an incomplete program, redundant trailing code,
// and the stray '!' anomaly. Unlike List, it is never buffered for
// recovery — the caller is expected to stop immediately.
type FatalError struct {
	Pos     Position
	Message string
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("%s:%s", e.Pos, e.Message)
}
