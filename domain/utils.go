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

package domain

import (
	"errors"
	"os"
	"syscall"
)

// Inode identifies a file uniquely on a single filesystem; 0 is never a
// valid inode.
type Inode = uint64

// FileExists reports whether the named file or directory exists.
func FileExists(name string) bool {
	if _, err := os.Stat(name); err != nil {
		if os.IsNotExist(err) {
			return false
		}
	}
	return true
}

// FileInode obtains the (dev, ino) pair of a file already stat'ed by the
// caller. Used by the fd-realpath resolver to compare a descriptor's
// identity against its path's.
func FileInode(fi os.FileInfo) (dev uint64, ino Inode, ok bool) {
	st, is := fi.Sys().(*syscall.Stat_t)
	if !is {
		return 0, 0, false
	}
	return uint64(st.Dev), st.Ino, true
}

// Errno unwraps err down to the syscall.Errno at the bottom of its chain,
// if any. Used at process boundaries (the cgo preload shim) where a real
// POSIX errno value has to be produced.
func Errno(err error) (syscall.Errno, bool) {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno, true
	}
	return 0, false
}
