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

// Package header classifies a candidate executable's leading bytes as ELF,
// a shebang script, or neither, and resolves the interpreter path a shebang
// names to its rootfs-relative form.
package header

import (
	"debug/elf"
	"encoding/binary"
	"runtime"
	"strings"

	"github.com/nestybox/sysbox-exec/domain"
	"github.com/nestybox/sysbox-exec/pathutil"
	"github.com/nestybox/sysbox-exec/rootfsmap"
)

// MaxHeaderBytes is the number of leading bytes a caller should read before
// calling Inspect. It exceeds the kernel's own shebang-line limit (128
// before Linux 5.1, 256 after) by enough to cover a rootfs-prefixed
// interpreter path.
const MaxHeaderBytes = domain.HeaderBufferLen

const elfMagicLen = 4

var elfMagic = [elfMagicLen]byte{0x7f, 'E', 'L', 'F'}

// nativeMachine is the e_machine value a native ELF on this build target
// must carry.
var nativeMachine = func() elf.Machine {
	switch runtime.GOARCH {
	case "arm64":
		return elf.EM_AARCH64
	case "arm":
		return elf.EM_ARM
	case "amd64":
		return elf.EM_X86_64
	case "386":
		return elf.EM_386
	default:
		return elf.EM_NONE
	}
}()

// Inspector classifies file headers.
type Inspector struct{}

var _ domain.HeaderInspectorIface = (*Inspector)(nil)

// New builds an Inspector.
func New() *Inspector {
	return &Inspector{}
}

// Inspect classifies buf, a prefix (up to MaxHeaderBytes) of a candidate
// executable's bytes, in the context of rootfs.
func (i *Inspector) Inspect(rootfs string, buf []byte) (domain.FileHeader, error) {
	if isELF(buf) {
		return domain.FileHeader{
			Kind:           domain.KindELF,
			IsNonNativeELF: !isNativeELF(buf),
		}, nil
	}

	if isShebang(buf) {
		return parseShebang(rootfs, buf)
	}

	return domain.FileHeader{Kind: domain.KindUnknown}, nil
}

func isELF(buf []byte) bool {
	if len(buf) < 20 {
		return false
	}
	for i, b := range elfMagic {
		if buf[i] != b {
			return false
		}
	}
	return true
}

func isNativeELF(buf []byte) bool {
	machine := elf.Machine(binary.LittleEndian.Uint16(buf[0x12:0x14]))
	return machine == nativeMachine
}

func isShebang(buf []byte) bool {
	return len(buf) >= 3 && buf[0] == '#' && buf[1] == '!'
}

func parseShebang(rootfs string, buf []byte) (domain.FileHeader, error) {
	nl := indexByte(buf, '\n')
	if nl < 0 {
		return domain.FileHeader{Kind: domain.KindUnknown}, nil
	}

	line := string(buf[2:nl])
	line = strings.TrimRight(line, " \t")
	line = strings.TrimLeft(line, " \t")

	if line == "" {
		return domain.FileHeader{Kind: domain.KindShebang}, nil
	}

	interp, rest := splitOnWhitespace(line)
	var arg string
	var hasArg bool
	rest = strings.TrimLeft(rest, " \t")
	if rest != "" {
		arg = rest
		hasArg = true
	}

	resolved, err := resolveInterpreter(rootfs, interp)
	if err != nil {
		return domain.FileHeader{}, err
	}

	return domain.FileHeader{
		Kind:              domain.KindShebang,
		OrigInterpreter:   interp,
		Interpreter:       resolved,
		InterpreterArg:    arg,
		HasInterpreterArg: hasArg,
	}, nil
}

func resolveInterpreter(rootfs, interp string) (string, error) {
	if strings.HasPrefix(interp, "/") {
		norm, ok := pathutil.Normalize(interp, false, true)
		if !ok {
			return "", errBadInterpreter
		}
		return rootfsmap.Prefix(rootfs, norm)
	}

	abs, err := pathutil.Absolutize(interp)
	if err != nil {
		return "", err
	}
	norm, ok := pathutil.Normalize(abs, false, true)
	if !ok {
		return "", errBadInterpreter
	}
	return norm, nil
}

func indexByte(buf []byte, b byte) int {
	for i, c := range buf {
		if c == b {
			return i
		}
	}
	return -1
}

func splitOnWhitespace(s string) (head, rest string) {
	for i, r := range s {
		if r == ' ' || r == '\t' {
			return s[:i], s[i+1:]
		}
	}
	return s, ""
}
