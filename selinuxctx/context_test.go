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

package selinuxctx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContextValid(t *testing.T) {
	cases := map[string]bool{
		"u:r:untrusted_app_27:s0":                    true,
		"u:r:untrusted_app_25:s0:c512,c768":           true,
		"u:r:untrusted_app_27:s0:c512,c768,c900,c901": true,
		"u:r:shell:s0":                                true,
		"garbage":                                     false,
		"u:r::s0":                                     false,
		"u:r:shell:s1":                                false,
	}
	for ctx, want := range cases {
		require.Equal(t, want, Context(ctx).Valid(), "context %q", ctx)
	}
}

func TestContextExempt(t *testing.T) {
	require.True(t, Context("u:r:untrusted_app_25:s0").Exempt())
	require.True(t, Context("u:r:untrusted_app_27:s0:c512,c768").Exempt())
	require.False(t, Context("u:r:shell:s0").Exempt())
	require.False(t, Context("u:r:untrusted_app_29:s0").Exempt())
}
