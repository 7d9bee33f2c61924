//
// Copyright 2019-2020 Nestybox, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

// Package argvrewrite builds the argv vector the kernel should see, given
// the caller's original argv and the decisions the header inspector and
// linker policy made.
package argvrewrite

import "github.com/nestybox/sysbox-exec/domain"

// Rewrite builds the argv vector passed to the final exec syscall.
//
//   - V[0] is header.OrigInterpreter when shebangSet, else argv[0].
//   - If wrapLinker, finalExec is pushed next (the system linker's argv[1]).
//   - If shebangSet, header.InterpreterArg is pushed when present, then
//     origExec (the path the caller originally requested).
//   - The remainder of argv (argv[1:]) is appended unchanged.
func Rewrite(argv []string, origExec, finalExec string, shebangSet, wrapLinker bool, h domain.FileHeader) []string {
	out := make([]string, 0, len(argv)+3)

	if shebangSet {
		out = append(out, h.OrigInterpreter)
	} else if len(argv) > 0 {
		out = append(out, argv[0])
	} else {
		out = append(out, origExec)
	}

	if wrapLinker {
		out = append(out, finalExec)
	}

	if shebangSet {
		if h.HasInterpreterArg {
			out = append(out, h.InterpreterArg)
		}
		out = append(out, origExec)
	}

	if len(argv) > 1 {
		out = append(out, argv[1:]...)
	}

	return out
}
