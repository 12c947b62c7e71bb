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

// Package ethossvc provides the Ellucian Ethos Integration client: bearer
// token acquisition and reuse, and authenticated GET/POST/GraphQL calls
// against the Ethos APIs.
package ethossvc

import "time"

// CachedToken is a bearer token obtained from the auth exchange together
// with its assumed expiry. Entries are immutable once cached; a refresh
// writes a new entry over the old one.
type CachedToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires"`
}

// Session is a caller-owned object accumulating the token cache and call
// counters across a chain of calls. The client mutates it in place and
// returns the same reference. Session provides no internal locking;
// concurrent callers sharing one session race with last-write-wins
// semantics on the cache and may lose counter increments.
type Session struct {
	// TokensByAPIKey maps each API key used on this session to its most
	// recently fetched token. Entries are never evicted; a session is
	// expected to live for one logical request chain.
	TokensByAPIKey map[string]CachedToken `json:"tokensByApiKey,omitempty"`

	GetCount     int64 `json:"ethosGetCount"`
	PostCount    int64 `json:"ethosPostCount"`
	GraphQLCount int64 `json:"ethosGraphqlCount"`
}

// cachedToken returns the unexpired cached token for the given API key.
func (s *Session) cachedToken(apiKey string, now time.Time) (string, bool) {
	entry, ok := s.TokensByAPIKey[apiKey]
	if !ok {
		return "", false
	}
	if !entry.ExpiresAt.Add(-tokenExpirySkew).After(now) {
		return "", false
	}
	return entry.Token, true
}

func (s *Session) storeToken(apiKey, token string, expiresAt time.Time) {
	if s.TokensByAPIKey == nil {
		s.TokensByAPIKey = make(map[string]CachedToken)
	}
	s.TokensByAPIKey[apiKey] = CachedToken{Token: token, ExpiresAt: expiresAt}
}
