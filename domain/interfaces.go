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

// ConfigIface exposes the small set of environment-derived settings the
// engine reads on every call.
type ConfigIface interface {
	InterceptEnabled() bool
	Rootfs() string
	LinkerPolicy() int // see linkerpolicy.Policy; kept as int here to avoid an import cycle
	LogLevel() int
	OSVersion() string
}

// RootfsMapperIface rewrites a normalized absolute path under the
// userland's rootfs prefix.
type RootfsMapperIface interface {
	Prefix(rootfs, path string) (string, error)
}

// HeaderInspectorIface classifies a candidate executable's leading bytes.
type HeaderInspectorIface interface {
	Inspect(rootfs string, header []byte) (FileHeader, error)
}

// LinkerPolicyIface decides whether an exec should be indirected through
// the system dynamic linker.
type LinkerPolicyIface interface {
	ShouldLinkerExec(execPath, rootfs string) (bool, error)
}

// FdResolverIface recovers the real path of a /proc/*/fd/N or /dev/fd/N
// path.
type FdResolverIface interface {
	Resolve(path string) (string, error)
}
