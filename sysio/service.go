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

// Package sysio backs domain.IOServiceIface with an afero filesystem, so
// fdpath (and this package's own tests) can run against an in-memory tree
// instead of the real one.
package sysio

import (
	"os"
	"syscall"

	"github.com/spf13/afero"
	"golang.org/x/sys/unix"

	"github.com/nestybox/sysbox-exec/domain"
)

var _ domain.IOServiceIface = (*Service)(nil)

// Service is a domain.IOServiceIface backed by an afero.Fs.
type Service struct {
	fsType domain.IOServiceType
	fs     afero.Fs

	// links holds the symlink targets afero.MemMapFs itself can't model;
	// used only in IOMemFileService mode. Populate via Symlink in tests.
	links map[string]string
}

// NewOsService returns a Service backed by the real host filesystem.
func NewOsService() *Service {
	return &Service{
		fsType: domain.IOOsFileService,
		fs:     afero.NewOsFs(),
	}
}

// NewMemService returns a Service backed by an in-memory filesystem, for
// unit tests.
func NewMemService() *Service {
	return &Service{
		fsType: domain.IOMemFileService,
		fs:     afero.NewMemMapFs(),
		links:  make(map[string]string),
	}
}

// Symlink records path as a symlink to target, for tests running against
// an in-memory service. No-op concept on the real filesystem, where
// symlinks are created directly via os.Symlink outside this package.
func (s *Service) Symlink(path, target string) {
	if s.links != nil {
		s.links[path] = target
	}
}

// Fs exposes the underlying afero.Fs, for tests that need to populate an
// in-memory tree directly.
func (s *Service) Fs() afero.Fs {
	return s.fs
}

func (s *Service) GetServiceType() domain.IOServiceType {
	return s.fsType
}

func (s *Service) ReadHeader(path string, buf []byte) (int, error) {
	f, err := s.fs.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	n, err := f.Read(buf)
	if n > 0 {
		return n, nil
	}
	return n, err
}

func (s *Service) Access(path string) error {
	info, err := s.fs.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return syscall.EACCES
	}
	if s.fsType == domain.IOMemFileService {
		return nil
	}
	return unix.Access(path, unix.X_OK)
}

func (s *Service) Stat(path string) (os.FileInfo, error) {
	return s.fs.Stat(path)
}

func (s *Service) Lstat(path string) (os.FileInfo, error) {
	if lf, ok := s.fs.(afero.Lstater); ok {
		info, _, err := lf.LstatIfPossible(path)
		return info, err
	}
	return s.fs.Stat(path)
}

func (s *Service) Readlink(path string) (string, error) {
	if s.fsType == domain.IOOsFileService {
		return os.Readlink(path)
	}
	target, ok := s.links[path]
	if !ok {
		return "", syscall.EINVAL
	}
	return target, nil
}
