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

package fdpath

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/nestybox/sysbox-exec/sysio"
)

func newMemResolver(t *testing.T) (*Resolver, *sysio.Service) {
	t.Helper()
	svc := sysio.NewMemService()
	return New(svc), svc
}

func TestResolvePassesThroughNonFdPaths(t *testing.T) {
	r, _ := newMemResolver(t)

	got, err := r.Resolve("/bin/sh")
	require.NoError(t, err)
	require.Equal(t, "/bin/sh", got)
}

func TestResolveMatchingFd(t *testing.T) {
	r, svc := newMemResolver(t)

	content := []byte("#!/bin/sh\necho hi\n")
	require.NoError(t, writeAt(svc, "/proc/self/fd/3", content))
	require.NoError(t, writeAt(svc, "/data/userland/usr/bin/sh", content))
	svc.Symlink("/proc/self/fd/3", "/data/userland/usr/bin/sh")

	got, err := r.Resolve("/proc/self/fd/3")
	require.NoError(t, err)
	require.Equal(t, "/data/userland/usr/bin/sh", got)
}

func TestResolveStaleFdMismatch(t *testing.T) {
	r, svc := newMemResolver(t)

	require.NoError(t, writeAt(svc, "/proc/self/fd/3", []byte("short")))
	require.NoError(t, writeAt(svc, "/data/userland/usr/bin/sh", []byte("a much longer replacement file")))
	svc.Symlink("/proc/self/fd/3", "/data/userland/usr/bin/sh")

	_, err := r.Resolve("/proc/self/fd/3")
	require.Error(t, err)
}

func TestResolveDevFdForm(t *testing.T) {
	r, svc := newMemResolver(t)

	content := []byte("data")
	require.NoError(t, writeAt(svc, "/dev/fd/7", content))
	require.NoError(t, writeAt(svc, "/opt/bin/tool", content))
	svc.Symlink("/dev/fd/7", "/opt/bin/tool")

	got, err := r.Resolve("/dev/fd/7")
	require.NoError(t, err)
	require.Equal(t, "/opt/bin/tool", got)
}

func writeAt(svc *sysio.Service, path string, content []byte) error {
	return afero.WriteFile(svc.Fs(), path, content, 0644)
}
