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

// Package envrewrite builds the environment a rewritten exec should see:
// the self-exe hint injected (or overwritten in place), and, for targets
// that shouldn't see the preload's loader variables, LD_LIBRARY_PATH and
// LD_PRELOAD stripped.
package envrewrite

import (
	"strings"

	"github.com/nestybox/sysbox-exec/domain"
)

// loaderAwarePaths are system binaries that remain library-path aware even
// when unset-loader-vars would otherwise strip LD_LIBRARY_PATH/LD_PRELOAD
// from their environment.
var loaderAwarePaths = map[string]bool{
	"/system/bin/sh":       true,
	"/system/bin/linker":   true,
	"/system/bin/linker64": true,
}

// Rewrite walks envp once, dropping the self-exe hint key and, when
// unsetLoaderVars is true and execPath isn't one of the loader-aware
// exceptions, the loader variable keys; then appends (or overwrites in
// place) selfExeHint if non-empty.
func Rewrite(envp []string, execPath, selfExeHint string, unsetLoaderVars bool) []string {
	stripLoader := unsetLoaderVars && !loaderAwarePaths[execPath]

	out := make([]string, 0, len(envp)+1)
	hintAt := -1

	for _, e := range envp {
		key, _, ok := splitKV(e)
		if !ok {
			out = append(out, e)
			continue
		}

		if key == domain.SelfExeHintKey {
			if hintAt < 0 {
				hintAt = len(out)
			}
			continue
		}
		if stripLoader && (key == domain.LDLibraryPathKey || key == domain.LDPreloadKey) {
			continue
		}

		out = append(out, e)
	}

	if selfExeHint != "" {
		hint := domain.SelfExeHintKey + "=" + selfExeHint
		if hintAt >= 0 {
			out = append(out, "")
			copy(out[hintAt+1:], out[hintAt:])
			out[hintAt] = hint
		} else {
			out = append(out, hint)
		}
	}

	return out
}

func splitKV(entry string) (key, value string, ok bool) {
	idx := strings.IndexByte(entry, '=')
	if idx < 0 {
		return "", "", false
	}
	return entry[:idx], entry[idx+1:], true
}
