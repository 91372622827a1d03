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

const (
	errWrongTypeOfMain        = "wrong type of main function"
	errDuplicateGlobal        = "duplicate global identifier(global const name, variable name or function name collision)"
	errDuplicateLocal         = "duplicate local identifier(local const name, variable name or function parameter name collision)"
	errUndefinedIdentifier    = "reference of undefined identifier"
	errExpectNonVoidFunction  = "expect function call with return value"
	errNotAFunction           = "use function call on a not function identifier"
	errTypeNotMatch           = "type not match"
	errWrongStatement         = "wrong statement"
	errExpectArguments        = "should provide arguments for function call"
	errLessArguments          = "arguments too less"
	errMoreArguments          = "arguments too many"
	errWrongTypeOfArgument    = "wrong type of argument"
	errCompareTypeNotMatch    = "comparison type not match"
	errExpectIntSingleCond    = "expect int type in single expression condition"
	errSwitchTypeNotMatch     = "switched-value and cased-value's type not match"
	errWrongReturnType        = "wrong type of return value"
	errWrongVariableType      = "variable's type can't be void"
	errWrongTypeOfScanf       = "scanf's arguments must be int or char variable"
	errScanfNoArguments       = "expect at least one argument for scanf()"
	errMissingParameters      = "expect at least one argument for function definition with parenthesis"
	errArraySizeZero          = "array size must be > 0"
	errExpectIntArrayIndex    = "array's index type should be int"
	errLeftValueNotVariable   = "left value of assignment must be variable or array element"
	errExpectArrayElement     = "expect an array element, not an array"
	errArrayIndexOverflow     = "array index overflow"
	errNotAnArray             = "array-like operation on a non-array identifier"
)
