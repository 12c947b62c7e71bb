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
	"errors"
	"fmt"
)

// Sentinel errors for configuration and argument validation.
var (
	// ErrUnknownBase indicates a URL base category outside api, admin,
	// auth and graphql.
	ErrUnknownBase = errors.New("unknown url base")
	// ErrMissingResource indicates a GET or POST call without a resource name.
	ErrMissingResource = errors.New("resource name is required")
	// ErrMissingAPIKey indicates a token fetch without an API key and
	// without a cached or explicit token.
	ErrMissingAPIKey = errors.New("api key is required")
)

// AuthenticationError is returned when the auth exchange responds with a
// non-200 status. It is never converted into a contained error result.
type AuthenticationError struct {
	StatusCode int
	Body       string
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed with status %d: %s", e.StatusCode, truncateBody(e.Body))
}

// IntegrationError is returned when a GraphQL call responds with a non-200
// status. GET and POST calls contain provider failures in their result
// instead; GraphQL deliberately does not.
type IntegrationError struct {
	StatusCode int
	Body       string
}

func (e *IntegrationError) Error() string {
	return fmt.Sprintf("graphql call failed with status %d: %s", e.StatusCode, truncateBody(e.Body))
}

func truncateBody(body string) string {
	if len(body) > 200 {
		return body[:200] + "..."
	}
	return body
}
