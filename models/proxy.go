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

package models

// ErrorResponse is the standard error payload for API responses
type ErrorResponse struct {
	Message string `json:"message"`
}

// TokenRequest asks the proxy to resolve a provider bearer token
type TokenRequest struct {
	// APIKey is the Ethos API key to exchange for a short-lived token
	APIKey string `json:"apiKey"`
	// RootOverride optionally overrides the configured integration root URL
	RootOverride string `json:"rootOverride,omitempty"`
}

// TokenResponse carries a resolved provider token
type TokenResponse struct {
	Token string `json:"token"`
	// ExpiresAt is the Unix timestamp when the token expires
	ExpiresAt int64 `json:"expires_at"`
	// TokenType is the type of token (always "Bearer")
	TokenType string `json:"token_type"`
}

// ResourceResponse wraps a proxied GET or POST outcome. Exactly one of
// Data and Error is set.
type ResourceResponse struct {
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
	// ProviderStatus is the provider's HTTP status when Error is set and a
	// status could be extracted from the failure
	ProviderStatus int `json:"providerStatus,omitempty"`
	// Counts mirrors the per-session call counters for caller-side
	// instrumentation
	Counts SessionCounts `json:"counts"`
}

// SessionCounts reports the per-session operation counters
type SessionCounts struct {
	Get     int64 `json:"ethosGetCount"`
	Post    int64 `json:"ethosPostCount"`
	GraphQL int64 `json:"ethosGraphqlCount"`
}

// GraphQLRequest is a proxied GraphQL query
type GraphQLRequest struct {
	APIKey       string         `json:"apiKey"`
	RootOverride string         `json:"rootOverride,omitempty"`
	Query        string         `json:"query"`
	Variables    map[string]any `json:"variables,omitempty"`
}

// GraphQLResponse carries the data and errors fields of a GraphQL response
type GraphQLResponse struct {
	Data   any           `json:"data,omitempty"`
	Errors any           `json:"errors,omitempty"`
	Counts SessionCounts `json:"counts"`
}
