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

package header

import (
	"debug/elf"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nestybox/sysbox-exec/domain"
)

func elfHeader(machine elf.Machine) []byte {
	buf := make([]byte, 20)
	copy(buf, elfMagic[:])
	binary.LittleEndian.PutUint16(buf[0x12:0x14], uint16(machine))
	return buf
}

func TestInspectNativeELF(t *testing.T) {
	insp := New()
	h, err := insp.Inspect("/data/userland", elfHeader(nativeMachine))
	require.NoError(t, err)
	require.Equal(t, domain.KindELF, h.Kind)
	require.False(t, h.IsNonNativeELF)
}

func TestInspectNonNativeELF(t *testing.T) {
	insp := New()
	other := elf.EM_386
	if nativeMachine == elf.EM_386 {
		other = elf.EM_X86_64
	}
	h, err := insp.Inspect("/data/userland", elfHeader(other))
	require.NoError(t, err)
	require.Equal(t, domain.KindELF, h.Kind)
	require.True(t, h.IsNonNativeELF)
}

func TestInspectShebangSimple(t *testing.T) {
	insp := New()
	h, err := insp.Inspect("/data/userland", []byte("#!/bin/sh\necho hi\n"))
	require.NoError(t, err)
	require.Equal(t, domain.KindShebang, h.Kind)
	require.Equal(t, "/bin/sh", h.OrigInterpreter)
	require.Equal(t, "/data/userland/usr/bin/sh", h.Interpreter)
	require.False(t, h.HasInterpreterArg)
}

func TestInspectShebangWithArg(t *testing.T) {
	insp := New()
	h, err := insp.Inspect("/data/userland", []byte("#! /bin/sh -x \necho hi\n"))
	require.NoError(t, err)
	require.Equal(t, domain.KindShebang, h.Kind)
	require.Equal(t, "/bin/sh", h.OrigInterpreter)
	require.True(t, h.HasInterpreterArg)
	require.Equal(t, "-x", h.InterpreterArg)
}

func TestInspectShebangNoNewline(t *testing.T) {
	insp := New()
	h, err := insp.Inspect("/data/userland", []byte("#!/bin/sh no newline here"))
	require.NoError(t, err)
	require.Equal(t, domain.KindUnknown, h.Kind)
}

func TestInspectUnknown(t *testing.T) {
	insp := New()
	h, err := insp.Inspect("/data/userland", []byte("just some random bytes"))
	require.NoError(t, err)
	require.Equal(t, domain.KindUnknown, h.Kind)
}

func TestInspectShortBuffer(t *testing.T) {
	insp := New()
	h, err := insp.Inspect("/data/userland", []byte("#"))
	require.NoError(t, err)
	require.Equal(t, domain.KindUnknown, h.Kind)
}
