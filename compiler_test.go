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

package c0compiler_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	c0compiler "github.com/fondoger/c0compiler"
)

func TestCompileSimpleProgram(t *testing.T) {
	src := `void main(){
int x;
x = 5;
printf(x);
}`
	result, err := c0compiler.Compile(strings.NewReader(src), c0compiler.Filename("simple.c0"))
	require.NoError(t, err)
	require.Contains(t, result.MidCode, "var int x")
	require.Contains(t, result.MidCode, "x = 5")
	require.Contains(t, result.MidCode, "printf int x")
	require.Contains(t, result.MidCode, "end")

	require.Contains(t, result.MIPSCode, "main:")
	require.Contains(t, result.MIPSCode, "jal\tmain")
	require.Contains(t, result.MIPSCode, "syscall")
}

func TestCompileWithFunctionCallAndArray(t *testing.T) {
	src := `int sum(int a, int b){
return (a + b);
}
void main(){
int arr[3];
int total;
arr[0] = 1;
total = sum(arr[0], 2);
printf("total=", total);
}`
	result, err := c0compiler.Compile(strings.NewReader(src), c0compiler.Filename("arr.c0"))
	require.NoError(t, err)
	require.Contains(t, result.MidCode, "var int arr 3")
	require.Contains(t, result.MidCode, "arr[0] = 1")
	require.Contains(t, result.MidCode, "call sum")
	require.Contains(t, result.MIPSCode, "sum:")
}

func TestCompileSwitchCaseReordersBodies(t *testing.T) {
	src := `void main(){
int v;
v = 1;
switch (v) {
case 1: v = 10;
case 2: v = 20;
default: v = 99;
}
printf(v);
}`
	result, err := c0compiler.Compile(strings.NewReader(src), c0compiler.Filename("switch.c0"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(result.MidCode, "\n"), "\n")
	var order []string
	for _, l := range lines {
		if strings.HasPrefix(l, "label") || strings.Contains(l, "EQL") || l == "v = 99" {
			order = append(order, l)
		}
	}
	require.NotEmpty(t, order)
	// the default body (v = 99) must appear before both case bodies,
	// since only case clauses are deferred and replayed after the
	// dispatch block; the default clause is emitted in place.
	defaultIdx := indexOf(order, "v = 99")
	require.GreaterOrEqual(t, defaultIdx, 0)
	require.Less(t, defaultIdx, len(order)-1, "default body should not be the last line before the end label")

	midLines := strings.Split(result.MidCode, "\n")
	var assignOrder []string
	for _, l := range midLines {
		if l == "v = 10" || l == "v = 20" || l == "v = 99" {
			assignOrder = append(assignOrder, l)
		}
	}
	require.Equal(t, []string{"v = 99", "v = 10", "v = 20"}, assignOrder)
}

func TestCompileReportsDiagnostics(t *testing.T) {
	src := `void main(){
int x;
x = ;
}`
	_, err := c0compiler.Compile(strings.NewReader(src), c0compiler.Filename("bad.c0"))
	require.Error(t, err)
}

func indexOf(ss []string, target string) int {
	for i, s := range ss {
		if s == target {
			return i
		}
	}
	return -1
}
