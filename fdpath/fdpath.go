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

// Package fdpath recovers the real path backing an open file descriptor
// passed to fexecve as /proc/<pid>/fd/N or /dev/fd/N, verifying the link
// target is still the same file before trusting it.
package fdpath

import (
	"os"
	"syscall"

	"github.com/nestybox/sysbox-exec/domain"
	"github.com/nestybox/sysbox-exec/pathutil"
)

// Resolver recovers a real path from a /proc/*/fd/N or /dev/fd/N path.
type Resolver struct {
	io domain.IOServiceIface
}

var _ domain.FdResolverIface = (*Resolver)(nil)

// New builds a Resolver reading through io.
func New(io domain.IOServiceIface) *Resolver {
	return &Resolver{io: io}
}

// Resolve returns the real path the fd symlink at path points to, after
// verifying that the open file behind the fd (stat'ed through path, which
// follows the fd link) has the same (dev, ino) as the file now found at the
// link target — guarding against the target path having been replaced
// since the fd was opened. If path doesn't match the fd-path grammar, it is
// returned unchanged so callers can pass any exec path through uniformly.
func (r *Resolver) Resolve(path string) (string, error) {
	if _, ok := pathutil.MatchFdPath(path); !ok {
		return path, nil
	}

	fdInfo, err := r.io.Stat(path)
	if err != nil {
		return "", err
	}

	target, err := r.io.Readlink(path)
	if err != nil {
		return "", err
	}

	targetInfo, err := r.io.Stat(target)
	if err != nil {
		return "", err
	}

	if !sameFile(fdInfo, targetInfo) {
		return "", syscall.ENXIO
	}

	return target, nil
}

func sameFile(a, b os.FileInfo) bool {
	devA, inoA, okA := domain.FileInode(a)
	devB, inoB, okB := domain.FileInode(b)
	if !okA || !okB {
		// At least one FileInfo lacks a (dev, ino) pair (e.g. an in-memory
		// filesystem in tests); fall back to a size comparison.
		return a.Size() == b.Size()
	}
	return devA == devB && inoA == inoB
}
