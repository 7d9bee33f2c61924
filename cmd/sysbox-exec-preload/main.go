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

// Command sysbox-exec-preload is built with -buildmode=c-shared and
// LD_PRELOAD'ed into the target process. It exports the array-based
// exec-family entry points under sysbox_exec_-prefixed names
// (sysbox_exec_execve, sysbox_exec_execv, sysbox_exec_execvp,
// sysbox_exec_execvpe, sysbox_exec_fexecve); these differ from libc's
// names, so loading the library does not by itself shadow libc's execve
// and friends. Each exported function marshals its C arguments into Go,
// runs them through the interception pipeline, and on failure sets errno
// and returns -1 the way the corresponding libc call does.
//
// execl, execlp and execle aren't exported here: bionic/glibc implement
// them on top of execv/execve by collecting the caller's varargs into an
// array before making that call, so interposing the array-based
// functions below already covers them. cgo also has no mechanism to
// export a C varargs function, which would otherwise make them
// unreachable from this shim regardless.
package main

/*
#include <errno.h>

static void sysbox_exec_set_errno(int e) {
	errno = e;
}
*/
import "C"

import (
	"unsafe"

	"github.com/nestybox/sysbox-exec/config"
	"github.com/nestybox/sysbox-exec/domain"
	"github.com/nestybox/sysbox-exec/execengine"
	"github.com/nestybox/sysbox-exec/header"
	"github.com/nestybox/sysbox-exec/linkerpolicy"
	"github.com/nestybox/sysbox-exec/logging"
	"github.com/nestybox/sysbox-exec/rootfsmap"
	"github.com/nestybox/sysbox-exec/sysio"
	"github.com/nestybox/sysbox-exec/variants"
)

// vars is the process-wide interception pipeline, built once from the
// live environment and shared by every exported entry point. Engine is
// the single place that rewrites envp, so vars only ever adapts argv
// shape and performs the PATH search.
var vars = func() *variants.Variants {
	io := sysio.NewOsService()
	engine := execengine.New(
		config.NewEnv(),
		rootfsmap.New(),
		header.New(),
		linkerpolicy.New(io),
		io,
	)
	return variants.New(engine)
}()

func fail(err error) C.int {
	if errno, ok := domain.Errno(err); ok {
		C.sysbox_exec_set_errno(C.int(errno))
	} else {
		C.sysbox_exec_set_errno(C.int(5)) // EIO, used when err carries no errno
	}
	return -1
}

const ptrSize = unsafe.Sizeof(uintptr(0))

// goStrings walks a NULL-terminated char** as delivered by the C caller
// and copies it into a Go []string.
func goStrings(argv **C.char) []string {
	if argv == nil {
		return nil
	}
	var out []string
	base := uintptr(unsafe.Pointer(argv))
	for i := uintptr(0); ; i++ {
		elem := *(**C.char)(unsafe.Pointer(base + i*ptrSize))
		if elem == nil {
			break
		}
		out = append(out, C.GoString(elem))
	}
	return out
}

//export sysbox_exec_execve
func sysbox_exec_execve(path *C.char, argv **C.char, envp **C.char) C.int {
	err := vars.Execve(C.GoString(path), goStrings(argv), goStrings(envp))
	if err != nil {
		return fail(err)
	}
	return 0
}

//export sysbox_exec_execv
func sysbox_exec_execv(path *C.char, argv **C.char) C.int {
	err := vars.Execv(C.GoString(path), goStrings(argv))
	if err != nil {
		return fail(err)
	}
	return 0
}

//export sysbox_exec_execvp
func sysbox_exec_execvp(file *C.char, argv **C.char) C.int {
	err := vars.Execvp(C.GoString(file), goStrings(argv))
	if err != nil {
		return fail(err)
	}
	return 0
}

//export sysbox_exec_execvpe
func sysbox_exec_execvpe(file *C.char, argv **C.char, envp **C.char) C.int {
	err := vars.Execvpe(C.GoString(file), goStrings(argv), goStrings(envp))
	if err != nil {
		return fail(err)
	}
	return 0
}

//export sysbox_exec_fexecve
func sysbox_exec_fexecve(fd C.int, argv **C.char, envp **C.char) C.int {
	err := vars.Fexecve(int(fd), goStrings(argv), goStrings(envp))
	if err != nil {
		return fail(err)
	}
	return 0
}

func main() {
	logging.Infof("sysbox-exec-preload loaded, rootfs=%s", config.Rootfs())
}
