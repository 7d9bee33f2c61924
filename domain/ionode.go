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

import "os"

// IOServiceType selects the backing filesystem an IOServiceIface operates
// over: the real host filesystem in production, or an in-memory one in
// unit tests.
type IOServiceType = int

const (
	IOUnknown       IOServiceType = iota
	IOOsFileService               // production: backed by the host filesystem
	IOMemFileService              // unit-testing: backed by an in-memory filesystem
)

// IOServiceIface is the filesystem-access seam used by the exec engine
// (access check and header read) and the fd-realpath resolver, so tests
// can run against an in-memory filesystem instead of the real one.
type IOServiceIface interface {
	GetServiceType() IOServiceType

	// ReadHeader opens path and reads up to len(buf) bytes into it,
	// returning the number of bytes actually read. Mirrors a bounded
	// read(2) of an executable's leading bytes.
	ReadHeader(path string, buf []byte) (int, error)

	// Access checks whether path exists and is executable by the
	// caller, mirroring access(2) with X_OK.
	Access(path string) error

	// Stat and Lstat mirror stat(2)/lstat(2).
	Stat(path string) (os.FileInfo, error)
	Lstat(path string) (os.FileInfo, error)

	// Readlink mirrors readlink(2).
	Readlink(path string) (string, error)
}
