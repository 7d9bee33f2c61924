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

// Package domain holds the types and interfaces shared across the
// sysbox-exec packages, so that the rest of the tree can be written and
// tested against abstractions rather than concrete implementations.
package domain

// FileKind tags the classification produced by the file-header inspector.
type FileKind int

const (
	KindUnknown FileKind = iota
	KindELF
	KindShebang
)

// FileHeader is the result of inspecting a candidate executable's leading
// bytes.
type FileHeader struct {
	Kind FileKind

	// Valid when Kind == KindELF.
	IsNonNativeELF bool

	// Valid when Kind == KindShebang. OrigInterpreter is the interpreter
	// token exactly as written in the file; Interpreter is the
	// normalized/absolutized/rootfs-prefixed form actually executed.
	OrigInterpreter string
	Interpreter     string
	InterpreterArg  string
	HasInterpreterArg bool
}

// ExecRequest is the caller-supplied triple to an exec-family call.
type ExecRequest struct {
	Path string
	Argv []string
	Envp []string
}

// ExecPlan is the kernel-acceptable triple produced by the engine.
type ExecPlan struct {
	Path string
	Argv []string
	Envp []string
}

// HeaderBufferLen is the number of leading bytes of a candidate
// executable the engine reads before handing them to the header
// inspector. Shared between execengine (which sizes its read buffer) and
// header (which documents it as header.MaxHeaderBytes) so the constant
// isn't duplicated.
const HeaderBufferLen = 340

// SelfExeHintKey is the environment variable key used to carry the
// logical executable path to a process launched through the system
// linker (since /proc/self/exe would otherwise point at the linker).
const SelfExeHintKey = "SYSBOX_EXEC__PROC_SELF_EXE"

// Loader-variable keys that are stripped from a system binary's
// environment to prevent library-injection related crashes.
const (
	LDLibraryPathKey = "LD_LIBRARY_PATH"
	LDPreloadKey     = "LD_PRELOAD"
)
