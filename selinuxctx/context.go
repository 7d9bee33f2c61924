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

// Package selinuxctx resolves and validates the SELinux domain of the
// calling process, the input linkerpolicy's uid/SELinux exemption check
// consumes.
package selinuxctx

import (
	"os"
	"regexp"

	selinux "github.com/opencontainers/selinux/go-selinux"

	"github.com/nestybox/sysbox-exec/config"
)

// Context is a validated SELinux process context string, e.g.
// "u:r:untrusted_app_27:s0:c512,c768".
type Context string

var contextRe = regexp.MustCompile(`^u:r:[^ \n\t\r:]+:s0(:c[0-9]+,c[0-9]+(,c[0-9]+,c[0-9]+)?)?$`)

// Valid reports whether c matches the SELinux process-context grammar this
// package accepts.
func (c Context) Valid() bool {
	return contextRe.MatchString(string(c))
}

// Exempt reports whether c names one of the two untrusted-app domains
// linkerpolicy exempts from the linker-exec requirement.
func (c Context) Exempt() bool {
	s := string(c)
	return containsDomain(s, "untrusted_app_25") || containsDomain(s, "untrusted_app_27")
}

func containsDomain(ctx, domain string) bool {
	want := "u:r:" + domain + ":"
	return len(ctx) >= len(want) && ctx[:len(want)] == want
}

// Current resolves the calling process's SELinux context: the
// SYSBOX_EXEC__SE_PROCESS_CONTEXT environment override if present and
// valid, else the process's own /proc/self/attr/current via
// github.com/opencontainers/selinux.
func Current() (Context, error) {
	if v, ok := os.LookupEnv(config.EnvSEProcessContext); ok {
		c := Context(v)
		if c.Valid() {
			return c, nil
		}
	}

	label, err := selinux.CurrentLabel()
	if err != nil {
		return "", err
	}

	c := Context(label)
	if !c.Valid() {
		return "", errInvalidContext
	}
	return c, nil
}
