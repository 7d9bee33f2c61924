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

// Package pathutil implements the pure, filesystem-free path operations
// the rest of sysbox-exec builds on: normalization (without symlink
// resolution), relative-to-absolute conversion, and small string/regex
// helpers. None of these ever touch the filesystem.
package pathutil

import (
	"os"
	"strings"
)

// PathMax mirrors the kernel's PATH_MAX, which counts the terminating NUL;
// Absolutize refuses to build a path of PathMax bytes or more.
const PathMax = 4096

// isTilde reports whether the first path component is a home-directory
// shorthand ("~" or "~user").
func isTilde(component string) bool {
	return strings.HasPrefix(component, "~")
}

// Normalize collapses duplicate separators and "." components, and,
// when removeDoubleDot is set, resolves ".." components without ever
// consulting the filesystem (no symlink resolution). It never lengthens
// its input. It returns ok == false only when:
//   - p is empty, ".", "..", or contains a NUL byte,
//   - p is relative and a ".." has no preceding non-".." component to pop,
//   - p is tilde-anchored ("~" or "~user") and a ".." would remove the
//     tilde component itself.
func Normalize(p string, keepTrailingSep, removeDoubleDot bool) (string, bool) {
	if p == "" || p == "." || p == ".." || strings.ContainsRune(p, 0) {
		return "", false
	}

	absolute := strings.HasPrefix(p, "/")
	hadTrailingSep := strings.HasSuffix(p, "/")

	var rawComponents []string
	for _, c := range strings.Split(p, "/") {
		if c == "" || c == "." {
			continue
		}
		rawComponents = append(rawComponents, c)
	}

	tilde := !absolute && len(rawComponents) > 0 && isTilde(rawComponents[0])

	var stack []string
	if !removeDoubleDot {
		stack = rawComponents
	} else {
		anchored := absolute || tilde
		if tilde {
			stack = append(stack, rawComponents[0])
			rawComponents = rawComponents[1:]
		}
		for _, c := range rawComponents {
			if c != ".." {
				stack = append(stack, c)
				continue
			}

			if anchored {
				if tilde && len(stack) == 1 {
					// Popping would remove the unresolved tilde component.
					return "", false
				}
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
				// Popping below root silently clamps to "/".
				continue
			}

			// Plain relative path: ".." needs a preceding non-".."
			// component to pop; nothing to pop is a hard failure.
			if len(stack) == 0 {
				return "", false
			}
			stack = stack[:len(stack)-1]
		}
	}

	var result string
	switch {
	case absolute:
		result = "/" + strings.Join(stack, "/")
	case len(stack) == 0:
		result = "."
	default:
		result = strings.Join(stack, "/")
	}

	if keepTrailingSep && hadTrailingSep && result != "/" {
		result += "/"
	}

	return result, true
}

// Absolutize converts a relative path to an absolute one by joining it to
// the process's current working directory. Absolute inputs are returned
// unchanged. Fails if the working directory is itself not absolute (guards
// against the kernel's "(unreachable)" prefix) or if the joined result
// would be PathMax bytes or longer.
func Absolutize(p string) (string, error) {
	if strings.HasPrefix(p, "/") {
		return p, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(cwd, "/") {
		return "", errUnreachableCwd
	}

	joined := cwd + "/" + p
	if len(joined) >= PathMax {
		return "", errNameTooLong
	}

	return joined, nil
}
