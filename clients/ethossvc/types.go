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

// TokenParams carries the credentials for token resolution. Token, when
// set, bypasses the cache and the auth exchange entirely.
type TokenParams struct {
	APIKey       string
	Session      *Session
	RootOverride string
	Token        string
}

// GetParams describes a GET against an api-family resource.
type GetParams struct {
	TokenParams

	Resource string
	ID       string
	// SearchParams are appended as query parameters. The criteria value is
	// JSON-serialized when it is not already a string so structured criteria
	// can be passed directly.
	SearchParams map[string]any
	// Headers are merged over the default request headers. Authorization is
	// always set from the resolved token afterwards.
	Headers map[string]string
}

// GetResult is the outcome of a GET call. Provider failures and transport
// errors are contained in Err rather than returned as an error, so callers
// can inspect the failure while keeping the session usable.
type GetResult struct {
	Session *Session
	Data    any
	Err     error
}

// PostParams describes a POST against an api-family resource.
type PostParams struct {
	TokenParams

	Resource string
	Data     any
	// Headers are merged over the default request headers. Authorization is
	// always set from the resolved token afterwards.
	Headers map[string]string
}

// PostResult is the outcome of a POST call, with the same failure
// containment as GetResult. Both 200 and 201 count as success.
type PostResult struct {
	Session *Session
	Data    any
	Err     error
}

// GraphQLParams describes a query against the GraphQL endpoint.
type GraphQLParams struct {
	TokenParams

	Query     string
	Variables map[string]any
	// Headers are merged over the default request headers. Authorization is
	// always set from the resolved token afterwards.
	Headers map[string]string
}

// GraphQLResult carries the data and errors fields of a successful GraphQL
// response. Unlike GET and POST, a non-200 GraphQL response is returned as
// an IntegrationError, never contained in the result.
type GraphQLResult struct {
	Session *Session
	Data    any
	Errors  any
}
