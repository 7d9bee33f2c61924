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

// Package execengine implements the exec-interception core: given a
// requested (path, argv, envp), it resolves the real executable under the
// userland's rootfs, classifies it, decides whether it must be routed
// through the system linker, rewrites its argv/envp accordingly, and
// dispatches the final raw execve syscall.
package execengine

import (
	"strings"
	"syscall"

	"github.com/nestybox/sysbox-exec/argvrewrite"
	"github.com/nestybox/sysbox-exec/domain"
	"github.com/nestybox/sysbox-exec/envrewrite"
	"github.com/nestybox/sysbox-exec/logging"
	"github.com/nestybox/sysbox-exec/pathutil"
)

// Engine holds the collaborators execve_hook needs. All fields are
// interfaces from the domain package so tests can substitute mocks.
type Engine struct {
	Config domain.ConfigIface
	Rootfs domain.RootfsMapperIface
	Header domain.HeaderInspectorIface
	Linker domain.LinkerPolicyIface
	IO     domain.IOServiceIface

	// rawExec issues the final syscall. Defaults to the real SYS_EXECVE
	// via golang.org/x/sys/unix; tests replace it with a stub so a
	// successful exec doesn't actually replace the test process.
	rawExec func(path string, argv, envp []string) error
}

// New builds an Engine wired to the real raw-syscall dispatcher.
func New(cfg domain.ConfigIface, rootfs domain.RootfsMapperIface, hdr domain.HeaderInspectorIface, linker domain.LinkerPolicyIface, io domain.IOServiceIface) *Engine {
	return &Engine{
		Config: cfg,
		Rootfs: rootfs,
		Header: hdr,
		Linker: linker,
		IO:     io,

		rawExec: rawSyscallExec,
	}
}

// Execve is execve_hook: the full interception pipeline for one exec
// attempt. On success it does not return (the process image is replaced);
// on failure it returns the error that should be surfaced as errno.
func (e *Engine) Execve(req domain.ExecRequest) error {
	if !e.Config.InterceptEnabled() {
		return e.rawExec(req.Path, req.Argv, req.Envp)
	}

	if req.Path == "" {
		return syscall.ENOENT
	}

	rootfs := e.Config.Rootfs()

	mappedPath, err := e.mapPath(rootfs, req.Path)
	if err != nil {
		logging.Errorf("execve: path resolution failed for %q: %v", req.Path, err)
		return err
	}

	if err := e.IO.Access(mappedPath); err != nil {
		return err
	}

	buf := make([]byte, domain.HeaderBufferLen)
	n, err := e.IO.ReadHeader(mappedPath, buf)
	if err != nil {
		return err
	}

	hdr, err := e.Header.Inspect(rootfs, buf[:n])
	if err != nil {
		return err
	}
	if hdr.Kind == domain.KindUnknown {
		return syscall.ENOEXEC
	}

	shebangSet := hdr.Kind == domain.KindShebang

	finalExec := mappedPath
	if shebangSet {
		finalExec = hdr.Interpreter
	}

	wrapLinker, err := e.Linker.ShouldLinkerExec(finalExec, rootfs)
	if err != nil {
		return err
	}

	unsetLoaderVars := isSystemBinary(finalExec) || (hdr.Kind == domain.KindELF && hdr.IsNonNativeELF)

	selfExeHint := ""
	if wrapLinker {
		selfExeHint = finalExec
	}

	finalEnvp := envrewrite.Rewrite(req.Envp, finalExec, selfExeHint, unsetLoaderVars)
	finalArgv := argvrewrite.Rewrite(req.Argv, req.Path, finalExec, shebangSet, wrapLinker, hdr)

	dispatchPath := finalExec
	if wrapLinker {
		dispatchPath = systemLinkerPath()
	}

	logging.Debugf("execve: dispatching %q argv=%v", dispatchPath, finalArgv)

	return e.rawExec(dispatchPath, finalArgv, finalEnvp)
}

// mapPath implements step 2 of execve_hook: absolute paths (fd-form
// paths like "/proc/self/fd/3" included — they're left as the literal
// string the kernel actually execs, same as any other absolute path) are
// normalized then rootfs-prefixed; relative paths are absolutized
// against cwd first (so that, e.g., "../sh" with cwd "/bin" becomes
// "/sh", not a normalization failure) and then rootfs-prefixed.
// Resolving an fd-form path to its real target is linkerpolicy's job
// alone (it answers "is this exec path under rootfs"); mapPath never
// does it, so the literal /proc or /dev string is what's actually
// exec'd and what SELF_EXE ends up hinting at.
func (e *Engine) mapPath(rootfs, path string) (string, error) {
	if strings.HasPrefix(path, "/") {
		norm, ok := pathutil.Normalize(path, false, true)
		if !ok {
			return "", syscall.ENOENT
		}
		return e.Rootfs.Prefix(rootfs, norm)
	}

	abs, err := pathutil.Absolutize(path)
	if err != nil {
		return "", err
	}
	norm, ok := pathutil.Normalize(abs, false, true)
	if !ok {
		return "", syscall.ENOENT
	}
	return e.Rootfs.Prefix(rootfs, norm)
}

func isSystemBinary(path string) bool {
	return strings.HasPrefix(path, "/system/")
}
