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

// baseHeaders is the shared header template. It is never handed out
// directly; NewRequestOptions copies it so callers can mutate their copy
// freely.
var baseHeaders = map[string]string{
	"Accept":        "application/json",
	"Cache-Control": "no-cache",
}

// NewRequestOptions returns a fresh header map built from the base template
// with the given overrides merged on top.
func NewRequestOptions(overrides map[string]string) map[string]string {
	headers := make(map[string]string, len(baseHeaders)+len(overrides))
	for key, value := range baseHeaders {
		headers[key] = value
	}
	for key, value := range overrides {
		headers[key] = value
	}
	return headers
}

// AddAuthorization sets the bearer Authorization header on the given
// options in place.
func AddAuthorization(token string, headers map[string]string) {
	headers["Authorization"] = "Bearer " + token
}
