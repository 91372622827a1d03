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

// Command c0c compiles a single C0 source file into a quadruple
// mid-code listing and a MARS-compatible MIPS assembly listing.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"

	c0compiler "github.com/fondoger/c0compiler"
	"github.com/fondoger/c0compiler/internal/diag"
)

const defaultSource = "testfile.txt"

func main() {
	midName := flag.String("mid", "mid_code.txt", "output `filename` for the quadruple mid-code listing")
	mipsName := flag.String("mips", "mips_code.txt", "output `filename` for the MIPS assembly listing")
	peephole := flag.Bool("peephole", false, "apply the redundant lw-after-sw / sw-after-lw filter")
	flag.Parse()

	if err := run(*midName, *mipsName, *peephole); err != nil {
		if list, ok := err.(*diag.List); ok {
			fmt.Println("compile terminated with error(s):")
			list.Print(os.Stdout)
		} else {
			fmt.Fprintf(os.Stderr, "%+v\n", err)
		}
		os.Exit(1)
	}
}

func run(midName, mipsName string, peephole bool) error {
	srcName := defaultSource
	if flag.NArg() > 0 {
		srcName = flag.Arg(0)
	}

	src, err := os.Open(srcName)
	if err != nil {
		return errors.Wrap(err, "opening source file")
	}
	defer src.Close()

	result, err := c0compiler.Compile(src,
		c0compiler.Filename(srcName),
		c0compiler.Peephole(peephole))
	if err != nil {
		return err
	}

	if err := os.WriteFile(midName, []byte(result.MidCode), 0o644); err != nil {
		return errors.Wrap(err, "writing mid-code")
	}
	if err := os.WriteFile(mipsName, []byte(result.MIPSCode), 0o644); err != nil {
		return errors.Wrap(err, "writing MIPS code")
	}

	fmt.Println("compile success!")
	fmt.Printf("mid code is at: %s\n", midName)
	fmt.Printf("mips code is at: %s\n", mipsName)
	fmt.Println()
	fmt.Println("If you want to run this mips program, use the following command:")
	fmt.Printf("    java -jar mars.jar nc %s\n", mipsName)
	return nil
}
