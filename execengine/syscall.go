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

package execengine

import (
	"strconv"

	"golang.org/x/sys/unix"
)

// rawSyscallExec issues the SYS_EXECVE syscall directly via
// golang.org/x/sys/unix, bypassing any libc execve wrapper entirely. On
// success it does not return; the calling process image is replaced.
func rawSyscallExec(path string, argv, envp []string) error {
	return unix.Exec(path, argv, envp)
}

// linker32Path and linker64Path are the system linker's fixed locations
// for 32-bit and 64-bit targets respectively.
const (
	linker32Path = "/system/bin/linker"
	linker64Path = "/system/bin/linker64"
)

// systemLinkerPath returns the system linker path matching this build's
// word size.
func systemLinkerPath() string {
	if strconv.IntSize == 64 {
		return linker64Path
	}
	return linker32Path
}
