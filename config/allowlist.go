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
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// ResourceAllowlist restricts which Ethos resources the proxy will touch.
// An empty allowlist (no file configured) allows everything.
type ResourceAllowlist struct {
	resources map[string]struct{}
}

// allowlistFile is the YAML shape of the allowlist file:
//
//	resources:
//	  - students
//	  - student-academic-programs
type allowlistFile struct {
	Resources []string `json:"resources"`
}

// LoadResourceAllowlist reads the allowlist from the given path. An empty
// path yields an allow-all list.
func LoadResourceAllowlist(path string) (*ResourceAllowlist, error) {
	if path == "" {
		return &ResourceAllowlist{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resource allowlist %s: %w", path, err)
	}

	var file allowlistFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse resource allowlist %s: %w", path, err)
	}

	resources := make(map[string]struct{}, len(file.Resources))
	for _, resource := range file.Resources {
		resources[resource] = struct{}{}
	}
	return &ResourceAllowlist{resources: resources}, nil
}

// Allows reports whether the given resource may be proxied.
func (a *ResourceAllowlist) Allows(resource string) bool {
	if len(a.resources) == 0 {
		return true
	}
	_, ok := a.resources[resource]
	return ok
}
