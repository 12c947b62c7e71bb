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

package ethossvc

import (
	"fmt"
	"os"
)

// URL base categories understood by BuildURL.
const (
	BaseAPI     = "api"
	BaseAdmin   = "admin"
	BaseAuth    = "auth"
	BaseGraphQL = "graphql"
)

// EnvIntegrationRoot names the environment variable holding the Ethos
// integration root URL. It is read at call time, not at startup.
const EnvIntegrationRoot = "ETHOS_INTEGRATION_BASE_URL"

// BuildURL composes a target URL from a base category, a resource name and
// an optional resource id. The api and admin bases require a resource; the
// auth and graphql bases ignore resource and id.
//
// The root comes from rootOverride when non-empty, otherwise from the
// ETHOS_INTEGRATION_BASE_URL environment variable. A missing root is not an
// error here; the resulting URL simply has an empty root segment and fails
// at request time.
func BuildURL(base, resource, id, rootOverride string) (string, error) {
	root := rootOverride
	if root == "" {
		root = os.Getenv(EnvIntegrationRoot)
	}

	switch base {
	case BaseAPI, BaseAdmin:
		if resource == "" {
			return "", fmt.Errorf("%w: base %q", ErrMissingResource, base)
		}
		url := fmt.Sprintf("%s/%s/%s", root, base, resource)
		if id != "" {
			url += "/" + id
		}
		return url, nil
	case BaseAuth, BaseGraphQL:
		return fmt.Sprintf("%s/%s", root, base), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBase, base)
	}
}
