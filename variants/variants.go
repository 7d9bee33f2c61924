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

// Package variants adapts the eight POSIX exec-family entry points onto
// execengine.Engine.Execve: the l-family materializes its argument list
// into a slice, the p-family performs a PATH search, and fexecve converts
// its file descriptor to a /proc/self/fd path.
package variants

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/nestybox/sysbox-exec/domain"
)

// hook is the narrow surface variants needs from execengine.Engine,
// expressed as an interface so tests can substitute a stub instead of a
// full Engine.
type hook interface {
	Execve(req domain.ExecRequest) error
}

// Variants groups the eight entry points around one hook.
type Variants struct {
	Hook hook
}

// New builds a Variants wrapping h.
func New(h hook) *Variants {
	return &Variants{Hook: h}
}

// Execve is the direct, no-PATH-search, caller-supplied-envp entry point.
func (v *Variants) Execve(path string, argv, envp []string) error {
	return v.Hook.Execve(domain.ExecRequest{Path: path, Argv: argv, Envp: envp})
}

// Execv is execve with the inherited process environment.
func (v *Variants) Execv(path string, argv []string) error {
	return v.Execve(path, argv, os.Environ())
}

// Execl collects a null-terminated-in-spirit argument list (already
// materialized into args by the caller, since Go has no C varargs) and
// execs path with the inherited environment. args[0] is conventionally
// path's basename, per POSIX exec*l semantics.
func (v *Variants) Execl(path string, args ...string) error {
	return v.Execv(path, args)
}

// Execle is Execl with a caller-supplied environment, passed as the last
// explicit parameter rather than folded into the variadic list (Go has no
// way to terminate a mixed variadic the way C's NULL sentinel does).
func (v *Variants) Execle(path string, args []string, envp []string) error {
	return v.Execve(path, args, envp)
}

// Execvp is execv with a PATH search when file has no '/'.
func (v *Variants) Execvp(file string, argv []string) error {
	return v.pathSearch(file, argv, os.Environ())
}

// Execvpe is Execvp with a caller-supplied environment.
func (v *Variants) Execvpe(file string, argv []string, envp []string) error {
	return v.pathSearch(file, argv, envp)
}

// Execlp is Execvp with a materialized argument list.
func (v *Variants) Execlp(file string, args ...string) error {
	return v.Execvp(file, args)
}

// Fexecve execs the file backing fd by handing "/proc/self/fd/<fd>" to the
// core, which execs that literal path (the fd is resolved to its real
// target only for linkerpolicy's rootfs check); ENOENT from the core is
// remapped to EBADF, matching the "bad file descriptor" semantics
// fexecve's own spec calls for.
func (v *Variants) Fexecve(fd int, argv, envp []string) error {
	path := fmt.Sprintf("/proc/self/fd/%d", fd)
	err := v.Execve(path, argv, envp)
	if errors.Is(err, syscall.ENOENT) {
		return syscall.EBADF
	}
	return err
}

// pathSearch implements the p-family's search semantics: if file contains
// '/', it is used directly; otherwise each ':'-separated entry of envp's
// PATH (defaultPath when envp has none; empty entries treated as ".") is
// tried in order. ENOEXEC on a hit
// retries the candidate as a shell script; ENOENT/ENOTDIR/ELOOP/EISDIR/
// ENAMETOOLONG are swallowed and the search continues, remembering
// whether any candidate saw EACCES so that the final failure can surface
// it if nothing else succeeded.
func (v *Variants) pathSearch(file string, argv, envp []string) error {
	if strings.ContainsRune(file, '/') {
		return v.execWithShFallback(file, argv, envp)
	}

	pathVar := defaultPath
	for _, e := range envp {
		if strings.HasPrefix(e, "PATH=") {
			pathVar = strings.TrimPrefix(e, "PATH=")
			break
		}
	}

	sawEACCES := false
	var lastErr error = syscall.ENOENT

	for _, dir := range strings.Split(pathVar, ":") {
		if dir == "" {
			dir = "."
		}
		candidate := dir + "/" + file

		err := v.execWithShFallback(candidate, argv, envp)
		if err == nil {
			return nil
		}

		switch {
		case errors.Is(err, syscall.ENOENT), errors.Is(err, syscall.ENOTDIR), errors.Is(err, syscall.ELOOP),
			errors.Is(err, syscall.EISDIR), errors.Is(err, syscall.ENAMETOOLONG):
			lastErr = err
			continue
		case errors.Is(err, syscall.EACCES):
			sawEACCES = true
			lastErr = err
			continue
		default:
			return err
		}
	}

	if sawEACCES {
		return syscall.EACCES
	}
	return lastErr
}

// execWithShFallback execs candidate; on ENOEXEC it retries by invoking
// the core again with "sh" as the interpreter and candidate as the
// script, per the "Variants" paragraph of the exec-interception design.
// This is an ordinary Go function call back into the hook, not a
// re-entry through any exported symbol, so it cannot recurse through an
// LD_PRELOADed libc stub.
func (v *Variants) execWithShFallback(candidate string, argv, envp []string) error {
	err := v.Execve(candidate, argv, envp)
	if !errors.Is(err, syscall.ENOEXEC) {
		return err
	}

	shArgv := append([]string{"sh", candidate}, argvTail(argv)...)
	return v.Execve(shPath, shArgv, envp)
}

func argvTail(argv []string) []string {
	if len(argv) <= 1 {
		return nil
	}
	return argv[1:]
}

const defaultPath = "/usr/bin:/bin"
const shPath = "/bin/sh"
