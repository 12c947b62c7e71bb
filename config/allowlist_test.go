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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadResourceAllowlist(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "allowlist.yaml")
	content := "resources:\n  - students\n  - student-academic-programs\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	allowlist, err := LoadResourceAllowlist(path)
	require.NoError(t, err)
	require.True(t, allowlist.Allows("students"))
	require.True(t, allowlist.Allows("student-academic-programs"))
	require.False(t, allowlist.Allows("persons"))
}

func TestLoadResourceAllowlistEmptyPathAllowsAll(t *testing.T) {
	allowlist, err := LoadResourceAllowlist("")
	require.NoError(t, err)
	require.True(t, allowlist.Allows("anything"))
}

func TestLoadResourceAllowlistMissingFile(t *testing.T) {
	_, err := LoadResourceAllowlist("/nonexistent/allowlist.yaml")
	require.Error(t, err)
}
