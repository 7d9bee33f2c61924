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

// Package rootfsmap rewrites rootless absolute paths like "/bin/sh" into
// their real location under the userland's rootfs directory.
package rootfsmap

import (
	"strings"
	"syscall"

	iradix "github.com/hashicorp/go-immutable-radix"

	"github.com/nestybox/sysbox-exec/pathutil"
)

// Mapper recognizes the "/bin/..." literal prefix via a radix-tree
// longest-prefix lookup (rebuilt cheaply once per Mapper), and the
// general "/xxx/bin/..." shape — any 3-byte leading directory segment,
// "/usr/bin/..." included, since "usr" is itself 3 bytes — via direct
// offset arithmetic, since that segment is a wildcard and has no finite
// set of keys a radix tree could hold.
type Mapper struct {
	tree *iradix.Tree
}

// New builds a Mapper. The radix tree holds the one literal prefix this
// package recognizes as a fixed key; it never needs filesystem access.
func New() *Mapper {
	tree := iradix.New()
	tree, _, _ = tree.Insert([]byte("/bin/"), struct{}{})
	return &Mapper{tree: tree}
}

var defaultMapper = New()

// Prefix rewrites path under rootfs's real bin directory when path is
// rooted at "/bin" (bare, with a trailing component, or "/xxx/bin" for
// any 3-byte leading segment — see termux_prefix_path in the original
// source). Any other absolute path, and any input when rootfs == "/",
// passes through unchanged. path must already be normalized; this
// function never touches the filesystem.
func Prefix(rootfs, path string) (string, error) {
	return defaultMapper.Prefix(rootfs, path)
}

const binComponent = "/bin/"

func (m *Mapper) Prefix(rootfs, path string) (string, error) {
	if rootfs == "/" || !strings.HasPrefix(path, "/") {
		return path, nil
	}

	binTarget := rootfs + "/usr/bin"
	if rootfs == "/system" {
		binTarget = "/system/bin"
	}

	if path == "/bin" || path == "/usr/bin" {
		return checkLen(binTarget)
	}

	if key, _, found := m.tree.Root().LongestPrefix([]byte(path)); found {
		suffix := path[len(key):]
		return checkLen(binTarget + "/" + suffix)
	}

	// "path starts with /bin/" is covered by the tree lookup above;
	// this covers "path's fifth byte begins /bin/" (i.e. matches
	// ^/xxx/bin/ for any 3-byte xxx), mirroring termux_prefix_path's
	// `bin_match == executable_path + 4` check, which never inspects
	// what the 3-byte segment actually contains.
	if idx := strings.Index(path, binComponent); idx == 4 {
		suffix := path[idx+len(binComponent):]
		return checkLen(binTarget + "/" + suffix)
	}

	return path, nil
}

func checkLen(p string) (string, error) {
	if len(p) >= pathutil.PathMax {
		return "", syscall.ENAMETOOLONG
	}
	return p, nil
}
