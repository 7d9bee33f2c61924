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

// Package linkerpolicy decides whether an exec should be indirected
// through the system dynamic linker, to work around per-app exec
// restrictions the platform applies to executables outside its own
// trusted locations.
package linkerpolicy

import (
	"os"
	"strings"

	"github.com/Masterminds/semver"

	"github.com/nestybox/sysbox-exec/config"
	"github.com/nestybox/sysbox-exec/domain"
	"github.com/nestybox/sysbox-exec/fdpath"
	"github.com/nestybox/sysbox-exec/pathutil"
	"github.com/nestybox/sysbox-exec/selinuxctx"
)

var _ domain.LinkerPolicyIface = (*Evaluator)(nil)

// Policy is the tri-state linker-exec configuration.
type Policy int

const (
	// Disable never linker-wraps.
	Disable Policy = iota
	// Enable linker-wraps only for uid/SELinux-sandboxed processes
	// running an executable under rootfs, on a host new enough to
	// support it.
	Enable
	// Force linker-wraps any executable under rootfs on a host new
	// enough to support it, regardless of uid/SELinux.
	Force
)

// supportThreshold is the OS/API-level version linker-exec support
// requires.
var supportThreshold = func() *semver.Constraints {
	c, err := semver.NewConstraint(">= 10.0.0")
	if err != nil {
		panic(err)
	}
	return c
}()

// ParsePolicy maps the tri-state environment string to a Policy, defaulting
// to Enable for anything config.LinkerExecPolicyString wouldn't itself
// already have normalized.
func ParsePolicy(s string) Policy {
	switch strings.ToLower(s) {
	case "disable":
		return Disable
	case "force":
		return Force
	default:
		return Enable
	}
}

// Evaluator decides the linker-exec question for a given exec path.
type Evaluator struct {
	policy  Policy
	rootfs  string
	osVer   string
	context func() (selinuxctx.Context, error)
	uid     func() int
	fd      domain.FdResolverIface
}

// New builds an Evaluator from the active configuration. io backs the
// fd-path resolution isUnderRootfs needs when execPath is a
// /proc/*/fd/N or /dev/fd/N form, so the rootfs check runs against the
// fd's real target rather than its literal form.
func New(io domain.IOServiceIface) *Evaluator {
	return &Evaluator{
		policy:  ParsePolicy(config.LinkerExecPolicyString()),
		rootfs:  config.Rootfs(),
		osVer:   config.OSVersion(),
		context: selinuxctx.Current,
		uid:     os.Getuid,
		fd:      fdpath.New(io),
	}
}

// ShouldLinkerExec decides whether execPath must be run via the system
// linker rather than directly.
func (e *Evaluator) ShouldLinkerExec(execPath, rootfs string) (bool, error) {
	if e.policy == Disable {
		return false, nil
	}

	supported := hostSupportsLinkerExec(e.osVer)
	underRootfs := e.isUnderRootfs(execPath, rootfs)

	if e.policy == Force {
		return supported && underRootfs, nil
	}

	// Enable.
	if !supported {
		return false, nil
	}
	if !underRootfs {
		return false, nil
	}

	uid := e.uid()
	if uid == 0 || uid == shellUID {
		return false, nil
	}

	ctx, err := e.context()
	if err != nil {
		// No usable SELinux context: treat as not sandboxed, matching
		// the "Enable" default's intent of only wrapping confirmed
		// app-sandboxed processes.
		return false, nil
	}
	if ctx.Exempt() {
		return false, nil
	}

	return true, nil
}

// shellUID is the Android "shell" uid, exempt from linker-exec wrapping
// the same way root is.
const shellUID = 2000

func hostSupportsLinkerExec(osVer string) bool {
	v, err := semver.NewVersion(osVer)
	if err != nil {
		return false
	}
	return supportThreshold.Check(v)
}

// isUnderRootfs answers the should_system_linker_exec rootfs question.
// path is resolved to its real target first when it's an fd-form path
// (/proc/*/fd/N, /dev/fd/N): the literal form never tells you where the
// fd's target actually lives, and the original source resolves it at
// exactly this point (get_fd_realpath, called only from
// is_path_under_termux_rootfs_dir) rather than anywhere in the main
// exec-path-mapping flow.
func (e *Evaluator) isUnderRootfs(path, rootfs string) bool {
	if rootfs == "" || rootfs == "/" {
		return true
	}

	if _, ok := pathutil.MatchFdPath(path); ok {
		resolved, err := e.fd.Resolve(path)
		if err != nil {
			return false
		}
		path = resolved
	}

	if path == rootfs {
		return true
	}
	return strings.HasPrefix(path, rootfs+"/")
}
