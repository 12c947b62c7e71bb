// Copyright (c) 2026, WSO2 LLC. (https://www.wso2.com).
//
// WSO2 LLC. licenses this file to you under the Apache License,
// Version 2.0 (the "License"); you may not use this file except
// in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateResourceName(t *testing.T) {
	valid := []string{"students", "student-academic-programs", "a", "x1", "courses2"}
	for _, name := range valid {
		require.NoError(t, ValidateResourceName(name), name)
	}

	invalid := []string{
		"",
		"Students",
		"-students",
		"students-",
		"student programs",
		"students/123",
		strings.Repeat("a", MaxResourceNameLength+1),
	}
	for _, name := range invalid {
		err := ValidateResourceName(name)
		require.ErrorIs(t, err, ErrInvalidInput, name)
	}
}

func TestFingerprintAPIKey(t *testing.T) {
	fp := FingerprintAPIKey("key-1")
	require.Len(t, fp, 64)
	require.Equal(t, fp, FingerprintAPIKey("key-1"))
	require.NotEqual(t, fp, FingerprintAPIKey("key-2"))
	require.NotContains(t, fp, "key-1")
}
