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

package linkerpolicy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nestybox/sysbox-exec/mocks"
	"github.com/nestybox/sysbox-exec/selinuxctx"
)

func newTestEvaluator(policy Policy, osVer string, uid int, ctx selinuxctx.Context, ctxErr error) *Evaluator {
	return &Evaluator{
		policy: policy,
		osVer:  osVer,
		context: func() (selinuxctx.Context, error) {
			return ctx, ctxErr
		},
		uid: func() int { return uid },
		fd:  new(mocks.FdResolverIface),
	}
}

func TestShouldLinkerExecDisable(t *testing.T) {
	e := newTestEvaluator(Disable, "11.0.0", 10000, "u:r:untrusted_app_27:s0", nil)
	got, err := e.ShouldLinkerExec("/data/userland/usr/bin/myapp", "/data/userland")
	require.NoError(t, err)
	require.False(t, got)
}

func TestShouldLinkerExecForceRequiresSupportAndRootfs(t *testing.T) {
	e := newTestEvaluator(Force, "11.0.0", 0, "", nil)
	got, err := e.ShouldLinkerExec("/data/userland/usr/bin/myapp", "/data/userland")
	require.NoError(t, err)
	require.True(t, got)

	got, err = e.ShouldLinkerExec("/system/bin/other", "/data/userland")
	require.NoError(t, err)
	require.False(t, got)

	eOld := newTestEvaluator(Force, "9.0.0", 0, "", nil)
	got, err = eOld.ShouldLinkerExec("/data/userland/usr/bin/myapp", "/data/userland")
	require.NoError(t, err)
	require.False(t, got)
}

func TestShouldLinkerExecEnableBelowThreshold(t *testing.T) {
	e := newTestEvaluator(Enable, "9.0.0", 10000, "u:r:untrusted_app_27:s0", nil)
	got, err := e.ShouldLinkerExec("/data/userland/usr/bin/myapp", "/data/userland")
	require.NoError(t, err)
	require.False(t, got)
}

func TestShouldLinkerExecEnableRootExempt(t *testing.T) {
	e := newTestEvaluator(Enable, "11.0.0", 0, "u:r:untrusted_app_27:s0", nil)
	got, err := e.ShouldLinkerExec("/data/userland/usr/bin/myapp", "/data/userland")
	require.NoError(t, err)
	require.False(t, got)
}

func TestShouldLinkerExecEnableSandboxedApp(t *testing.T) {
	e := newTestEvaluator(Enable, "11.0.0", 10000, "u:r:untrusted_app:s0:c512,c768", nil)
	got, err := e.ShouldLinkerExec("/data/userland/usr/bin/myapp", "/data/userland")
	require.NoError(t, err)
	require.True(t, got)
}

func TestShouldLinkerExecEnableExemptDomain(t *testing.T) {
	e := newTestEvaluator(Enable, "11.0.0", 10000, "u:r:untrusted_app_25:s0", nil)
	got, err := e.ShouldLinkerExec("/data/userland/usr/bin/myapp", "/data/userland")
	require.NoError(t, err)
	require.False(t, got)
}

func TestShouldLinkerExecEnableNotUnderRootfs(t *testing.T) {
	e := newTestEvaluator(Enable, "11.0.0", 10000, "u:r:untrusted_app_27:s0", nil)
	got, err := e.ShouldLinkerExec("/system/bin/other", "/data/userland")
	require.NoError(t, err)
	require.False(t, got)
}

func TestShouldLinkerExecResolvesFdPathUnderRootfs(t *testing.T) {
	e := newTestEvaluator(Force, "11.0.0", 0, "", nil)
	e.fd.(*mocks.FdResolverIface).On("Resolve", "/proc/self/fd/3").
		Return("/data/userland/usr/bin/myapp", nil)

	got, err := e.ShouldLinkerExec("/proc/self/fd/3", "/data/userland")
	require.NoError(t, err)
	require.True(t, got)
}

func TestShouldLinkerExecResolvesFdPathNotUnderRootfs(t *testing.T) {
	e := newTestEvaluator(Force, "11.0.0", 0, "", nil)
	e.fd.(*mocks.FdResolverIface).On("Resolve", "/dev/fd/5").
		Return("/system/bin/other", nil)

	got, err := e.ShouldLinkerExec("/dev/fd/5", "/data/userland")
	require.NoError(t, err)
	require.False(t, got)
}

func TestShouldLinkerExecFdPathResolveErrorTreatedAsNotUnderRootfs(t *testing.T) {
	e := newTestEvaluator(Force, "11.0.0", 0, "", nil)
	e.fd.(*mocks.FdResolverIface).On("Resolve", "/proc/self/fd/9").
		Return("", errors.New("stale fd"))

	got, err := e.ShouldLinkerExec("/proc/self/fd/9", "/data/userland")
	require.NoError(t, err)
	require.False(t, got)
}

func TestParsePolicy(t *testing.T) {
	require.Equal(t, Disable, ParsePolicy("disable"))
	require.Equal(t, Force, ParsePolicy("FORCE"))
	require.Equal(t, Enable, ParsePolicy("enable"))
	require.Equal(t, Enable, ParsePolicy("garbage"))
}
