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

package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInterceptEnabledFromEnv(t *testing.T) {
	require.True(t, InterceptEnabledFromEnv(nil))
	require.True(t, InterceptEnabledFromEnv([]string{"SYSBOX_EXEC__INTERCEPT_EXECVE=yes"}))
	require.False(t, InterceptEnabledFromEnv([]string{"SYSBOX_EXEC__INTERCEPT_EXECVE=0"}))
	require.False(t, InterceptEnabledFromEnv([]string{"SYSBOX_EXEC__INTERCEPT_EXECVE=off"}))
	require.True(t, InterceptEnabledFromEnv([]string{"SYSBOX_EXEC__INTERCEPT_EXECVE=garbage"}))
}

func TestRootfsFromEnv(t *testing.T) {
	require.Equal(t, DefaultRootfs, RootfsFromEnv(nil))
	require.Equal(t, "/opt/userland", RootfsFromEnv([]string{"SYSBOX_EXEC__ROOTFS=/opt/userland"}))
	require.Equal(t, DefaultRootfs, RootfsFromEnv([]string{"SYSBOX_EXEC__ROOTFS=relative/path"}))
}

func TestLogLevelFromEnv(t *testing.T) {
	require.Equal(t, 1, LogLevelFromEnv(nil))
	require.Equal(t, 3, LogLevelFromEnv([]string{"SYSBOX_EXEC__LOG_LEVEL=3"}))
	require.Equal(t, 1, LogLevelFromEnv([]string{"SYSBOX_EXEC__LOG_LEVEL=99"}))
}

func TestLinkerExecPolicyStringFromEnv(t *testing.T) {
	require.Equal(t, "enable", LinkerExecPolicyStringFromEnv(nil))
	require.Equal(t, "force", LinkerExecPolicyStringFromEnv([]string{"SYSBOX_EXEC__SYSTEM_LINKER_EXEC=FORCE"}))
	require.Equal(t, "enable", LinkerExecPolicyStringFromEnv([]string{"SYSBOX_EXEC__SYSTEM_LINKER_EXEC=bogus"}))
}

func TestHasAnyKey(t *testing.T) {
	envp := []string{"PATH=/bin", "LD_PRELOAD=/lib/foo.so"}
	require.True(t, HasAnyKey(envp, "LD_LIBRARY_PATH", "LD_PRELOAD"))
	require.False(t, HasAnyKey(envp, "LD_LIBRARY_PATH"))
}
