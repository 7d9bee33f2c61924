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

package pathutil

import (
	"regexp"
	"strconv"
)

// HasPrefix reports whether s starts with prefix. Unlike strings.HasPrefix,
// an empty prefix never matches (including against an empty s), matching
// the NUL-safe / empty-safe semantics this package's callers expect.
func HasPrefix(s, prefix string) bool {
	if prefix == "" {
		return false
	}
	if len(s) < len(prefix) {
		return false
	}
	return s[:len(prefix)] == prefix
}

// HasSuffix mirrors HasPrefix's empty-string rule for suffixes.
func HasSuffix(s, suffix string) bool {
	if suffix == "" {
		return false
	}
	if len(s) < len(suffix) {
		return false
	}
	return s[len(s)-len(suffix):] == suffix
}

// fdPathRe matches /proc/self/fd/N, /proc/<pid>/fd/N, and /dev/fd/N.
var fdPathRe = regexp.MustCompile(`^((/proc/(self|[0-9]+))|(/dev))/fd/([0-9]+)$`)

// MatchFdPath reports whether p names a file-descriptor pseudo-path, and
// if so, the descriptor number it names.
func MatchFdPath(p string) (fd int, ok bool) {
	m := fdPathRe.FindStringSubmatch(p)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[len(m)-1])
	if err != nil {
		return 0, false
	}
	return n, true
}
