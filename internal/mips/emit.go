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

package mips

import (
	"fmt"
	"io"
)

// emitter writes MIPS text lines, tracking the one indent level this
// lowerer needs: ordinary instructions sit one tab in, while section
// headers, function labels and IR-sourced LABELs briefly unindent to
// column 0, mirroring assembly convention.
type emitter struct {
	w      io.Writer
	indent bool
	err    error
}

func (e *emitter) line(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	text := fmt.Sprintf(format, args...)
	prefix := ""
	if e.indent {
		prefix = "\t"
	}
	_, e.err = fmt.Fprintf(e.w, "%s%s\n", prefix, text)
}
