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
	"strings"

	"github.com/nestybox/sysbox-exec/domain"
)

var _ domain.ConfigIface = (*Env)(nil)

// Tri-state linker-exec policy values, numbered identically to
// linkerpolicy.Policy's iota ordering (Disable=0, Enable=1, Force=2).
// Duplicated here rather than imported to keep config at the bottom of
// the dependency graph — linkerpolicy itself depends on config.
const (
	LinkerPolicyDisable = 0
	LinkerPolicyEnable  = 1
	LinkerPolicyForce   = 2
)

// Env is the live, environment-backed implementation of
// domain.ConfigIface, wiring this package's free functions behind the
// interface execengine.Engine depends on.
type Env struct{}

// NewEnv builds an Env config source.
func NewEnv() *Env {
	return &Env{}
}

func (Env) InterceptEnabled() bool {
	return InterceptEnabled()
}

func (Env) Rootfs() string {
	return Rootfs()
}

func (Env) LogLevel() int {
	return LogLevel()
}

func (Env) OSVersion() string {
	return OSVersion()
}

func (Env) LinkerPolicy() int {
	switch strings.ToLower(LinkerExecPolicyString()) {
	case "disable":
		return LinkerPolicyDisable
	case "force":
		return LinkerPolicyForce
	default:
		return LinkerPolicyEnable
	}
}
