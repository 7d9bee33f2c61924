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

package variants

import (
	"syscall"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nestybox/sysbox-exec/domain"
)

type stubHook struct {
	calls []domain.ExecRequest
	// results, consumed in order, one per Execve call; ok if shorter than
	// calls (remaining calls get the zero value, nil error).
	results []error
}

func (s *stubHook) Execve(req domain.ExecRequest) error {
	idx := len(s.calls)
	s.calls = append(s.calls, req)
	if idx < len(s.results) {
		return s.results[idx]
	}
	return nil
}

func TestExeclBuildsArgvFromVariadic(t *testing.T) {
	h := &stubHook{}
	v := New(h)

	err := v.Execl("/bin/echo", "echo", "hi")
	require.NoError(t, err)
	require.Len(t, h.calls, 1)
	require.Equal(t, "/bin/echo", h.calls[0].Path)
	require.Equal(t, []string{"echo", "hi"}, h.calls[0].Argv)
}

func TestExecleUsesSuppliedEnv(t *testing.T) {
	h := &stubHook{}
	v := New(h)

	err := v.Execle("/bin/echo", []string{"echo"}, []string{"X=1"})
	require.NoError(t, err)
	require.Equal(t, []string{"X=1"}, h.calls[0].Envp)
}

func TestExecvpDirectPathSkipsSearch(t *testing.T) {
	h := &stubHook{}
	v := New(h)

	err := v.Execvp("./local/tool", []string{"tool"})
	require.NoError(t, err)
	require.Len(t, h.calls, 1)
	require.Equal(t, "./local/tool", h.calls[0].Path)
}

func TestExecvpeSearchesPathInOrder(t *testing.T) {
	h := &stubHook{
		results: []error{syscall.ENOENT, nil},
	}
	v := New(h)

	err := v.Execvpe("tool", []string{"tool"}, []string{"PATH=/a:/b"})
	require.NoError(t, err)
	require.Len(t, h.calls, 2)
	require.Equal(t, "/a/tool", h.calls[0].Path)
	require.Equal(t, "/b/tool", h.calls[1].Path)
}

func TestExecvpeEmptyPathComponentMeansCwd(t *testing.T) {
	h := &stubHook{results: []error{nil}}
	v := New(h)

	err := v.Execvpe("tool", nil, []string{"PATH=:/b"})
	require.NoError(t, err)
	require.Equal(t, "./tool", h.calls[0].Path)
}

func TestExecvpeNoExecRetriesAsShellScript(t *testing.T) {
	h := &stubHook{results: []error{syscall.ENOEXEC, nil}}
	v := New(h)

	err := v.Execvpe("script", []string{"script", "arg1"}, []string{"PATH=/bin"})
	require.NoError(t, err)
	require.Len(t, h.calls, 2)
	require.Equal(t, "/bin/script", h.calls[0].Path)
	require.Equal(t, "/bin/sh", h.calls[1].Path)
	require.Equal(t, []string{"sh", "/bin/script", "arg1"}, h.calls[1].Argv)
}

func TestExecvpeRemembersEACCESButKeepsSearching(t *testing.T) {
	h := &stubHook{results: []error{syscall.EACCES, syscall.ENOENT}}
	v := New(h)

	err := v.Execvpe("tool", nil, []string{"PATH=/a:/b"})
	require.ErrorIs(t, err, syscall.EACCES)
	require.Len(t, h.calls, 2)
}

func TestExecvpeExhaustsPathAndReturnsLastError(t *testing.T) {
	h := &stubHook{results: []error{syscall.ENOENT, syscall.ENOTDIR}}
	v := New(h)

	err := v.Execvpe("tool", nil, []string{"PATH=/a:/b"})
	require.ErrorIs(t, err, syscall.ENOTDIR)
}

func TestExecvpeUsesDefaultPathWhenUnset(t *testing.T) {
	h := &stubHook{results: []error{syscall.ENOENT, nil}}
	v := New(h)

	err := v.Execvpe("tool", nil, []string{"A=1"})
	require.NoError(t, err)
	require.Equal(t, "/usr/bin/tool", h.calls[0].Path)
	require.Equal(t, "/bin/tool", h.calls[1].Path)
}

func TestExeclpBuildsArgvAndSearches(t *testing.T) {
	h := &stubHook{results: []error{nil}}
	v := New(h)

	err := v.Execlp("tool", "tool", "--flag")
	require.NoError(t, err)
	require.Equal(t, []string{"tool", "--flag"}, h.calls[0].Argv)
}

func TestFexecveConvertsFdToProcPath(t *testing.T) {
	h := &stubHook{}
	v := New(h)

	err := v.Fexecve(7, []string{"prog"}, []string{"A=1"})
	require.NoError(t, err)
	require.Equal(t, "/proc/self/fd/7", h.calls[0].Path)
}

func TestFexecveRemapsENOENTToEBADF(t *testing.T) {
	h := &stubHook{results: []error{syscall.ENOENT}}
	v := New(h)

	err := v.Fexecve(9, nil, nil)
	require.ErrorIs(t, err, syscall.EBADF)
}

func TestFexecvePropagatesOtherErrors(t *testing.T) {
	h := &stubHook{results: []error{syscall.ENOEXEC}}
	v := New(h)

	err := v.Fexecve(9, []string{"p"}, nil)
	require.ErrorIs(t, err, syscall.ENOEXEC)
}
