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

// Package config reads the small set of environment variables that steer
// the exec-interception engine, with typed defaults, and exposes
// env-override-then-compiled-default lookups like Rootfs().
package config

import (
	"os"
	"strings"

	"github.com/nestybox/sysbox-exec/pathutil"
)

// Environment variable names consumed by the engine.
const (
	EnvRootfs            = "SYSBOX_EXEC__ROOTFS"
	EnvSEProcessContext  = "SYSBOX_EXEC__SE_PROCESS_CONTEXT"
	EnvLogLevel          = "SYSBOX_EXEC__LOG_LEVEL"
	EnvInterceptExecve   = "SYSBOX_EXEC__INTERCEPT_EXECVE"
	EnvSystemLinkerExec  = "SYSBOX_EXEC__SYSTEM_LINKER_EXEC"
	EnvOSVersion         = "SYSBOX_EXEC__OS_VERSION"
)

// RootfsDirMaxLen mirrors the 86-byte (incl. NUL) ceiling spec.md's
// kernel shebang-buffer budget is built around.
const RootfsDirMaxLen = 85

// DefaultRootfs is the compiled-in rootfs directory used when
// EnvRootfs is unset or invalid.
const DefaultRootfs = "/data/data/com.sysboxexec.app/files/usr"

// DefaultLinkerExecPolicy is the compiled-in tri-state linker-wrap
// policy used when EnvSystemLinkerExec is unset or invalid.
const DefaultLinkerExecPolicy = "enable"

// DefaultOSVersion is the compiled-in Android API-level-derived version
// string used when EnvOSVersion is unset, expressed so it compares
// against linkerpolicy's semver threshold.
const DefaultOSVersion = "10.0.0"

const defaultLogLevel = 1

// InterceptEnabled reports whether exec interception is turned on. This
// is the master kill switch checked at the top of execve_hook.
func InterceptEnabled() bool {
	return InterceptEnabledFromEnv(os.Environ())
}

// InterceptEnabledFromEnv is InterceptEnabled, parameterized over an
// explicit envp for testability.
func InterceptEnabledFromEnv(envp []string) bool {
	v, ok := lookup(envp, EnvInterceptExecve)
	if !ok {
		return true
	}
	b, ok := parseBool(v)
	if !ok {
		return true
	}
	return b
}

// Rootfs returns the active rootfs directory: the env override, normalized,
// if it is at most RootfsDirMaxLen bytes long and normalizes to an absolute
// path, otherwise DefaultRootfs.
func Rootfs() string {
	return RootfsFromEnv(os.Environ())
}

// RootfsFromEnv is Rootfs, parameterized over an explicit envp.
func RootfsFromEnv(envp []string) string {
	v, ok := lookup(envp, EnvRootfs)
	if !ok {
		return DefaultRootfs
	}

	if len(v) > RootfsDirMaxLen {
		return DefaultRootfs
	}

	norm, ok := pathutil.Normalize(v, false, true)
	if !ok || !strings.HasPrefix(norm, "/") {
		return DefaultRootfs
	}

	return norm
}

// LogLevel returns the configured log verbosity (0-4), defaulting to 1.
func LogLevel() int {
	return LogLevelFromEnv(os.Environ())
}

// LogLevelFromEnv is LogLevel, parameterized over an explicit envp.
func LogLevelFromEnv(envp []string) int {
	v, ok := lookup(envp, EnvLogLevel)
	if !ok {
		return defaultLogLevel
	}
	lvl := pathutil.ParseInt(v, defaultLogLevel)
	if lvl < 0 || lvl > 4 {
		return defaultLogLevel
	}
	return lvl
}

// OSVersion returns the configured OS/API-level version string used to
// gate linker-exec support, defaulting to DefaultOSVersion.
func OSVersion() string {
	return OSVersionFromEnv(os.Environ())
}

// OSVersionFromEnv is OSVersion, parameterized over an explicit envp.
func OSVersionFromEnv(envp []string) string {
	v, ok := lookup(envp, EnvOSVersion)
	if !ok || v == "" {
		return DefaultOSVersion
	}
	return v
}

// LinkerExecPolicyString returns the raw tri-state string
// (disable|enable|force) from the environment, defaulting to "enable".
// linkerpolicy.ParsePolicy turns this into a Policy value; kept as a
// string here to avoid config depending on linkerpolicy.
func LinkerExecPolicyString() string {
	return LinkerExecPolicyStringFromEnv(os.Environ())
}

// LinkerExecPolicyStringFromEnv is LinkerExecPolicyString, parameterized
// over an explicit envp.
func LinkerExecPolicyStringFromEnv(envp []string) string {
	v, ok := lookup(envp, EnvSystemLinkerExec)
	if !ok || v == "" {
		return DefaultLinkerExecPolicy
	}
	switch strings.ToLower(v) {
	case "disable", "enable", "force":
		return strings.ToLower(v)
	default:
		return DefaultLinkerExecPolicy
	}
}

// HasAnyKey reports whether envp contains an entry for any of keys.
func HasAnyKey(envp []string, keys ...string) bool {
	for _, e := range envp {
		k, _, ok := splitKV(e)
		if !ok {
			continue
		}
		for _, key := range keys {
			if k == key {
				return true
			}
		}
	}
	return false
}

func lookup(envp []string, key string) (string, bool) {
	for _, e := range envp {
		k, v, ok := splitKV(e)
		if ok && k == key {
			return v, true
		}
	}
	return "", false
}

func splitKV(entry string) (key, value string, ok bool) {
	idx := strings.IndexByte(entry, '=')
	if idx < 0 {
		return "", "", false
	}
	return entry[:idx], entry[idx+1:], true
}

func parseBool(v string) (bool, bool) {
	switch strings.ToLower(v) {
	case "1", "true", "on", "yes", "y":
		return true, true
	case "0", "false", "off", "no", "n":
		return false, true
	default:
		return false, false
	}
}
