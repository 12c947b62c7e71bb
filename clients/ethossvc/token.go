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
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/wso2/ethos-integration-service/clients/requests"
	"github.com/wso2/ethos-integration-service/middleware/logger"
)

const (
	// tokenExpirySkew keeps a margin before actual expiry so a token does
	// not expire under an in-flight request.
	tokenExpirySkew = 30 * time.Second
	// tokenLifetime is the assumed validity of a freshly issued token. The
	// provider does not report an expiry; five minutes is its documented
	// token lifetime.
	tokenLifetime = 5 * time.Minute
)

// GetToken resolves a usable bearer token for the given credentials.
//
// An explicitly supplied token short-circuits everything: it is returned
// unchanged with no caching and no network call. Otherwise an unexpired
// cached token for the API key is reused. On a cache miss the API key is
// exchanged for a new token via a POST to the auth endpoint, with the API
// key itself as the bearer credential. A non-200 exchange fails with an
// AuthenticationError.
//
// The returned session is the caller's own (lazily created when nil). The
// cache check and write are not serialized; concurrent misses for the same
// key each fetch a token and the last writer wins.
func (c *Client) GetToken(ctx context.Context, params TokenParams) (*Session, string, error) {
	session := params.Session
	if session == nil {
		session = &Session{}
	}

	if params.Token != "" {
		return session, params.Token, nil
	}

	if session.TokensByAPIKey == nil {
		session.TokensByAPIKey = make(map[string]CachedToken)
	}

	if token, ok := session.cachedToken(params.APIKey, c.now()); ok {
		logger.GetLogger(ctx).Debug("reusing cached ethos token")
		return session, token, nil
	}

	if params.APIKey == "" {
		return session, "", ErrMissingAPIKey
	}

	token, err := c.fetchToken(ctx, params.APIKey, params.RootOverride)
	if err != nil {
		return session, "", err
	}

	expiresAt := c.now().Add(tokenLifetime)
	session.storeToken(params.APIKey, token, expiresAt)
	logger.GetLogger(ctx).Debug("fetched new ethos token",
		slog.String("expires_at", expiresAt.Format(time.RFC3339)))

	return session, token, nil
}

// fetchToken performs the auth exchange. The raw response body is the
// opaque token.
func (c *Client) fetchToken(ctx context.Context, apiKey, rootOverride string) (string, error) {
	url, err := BuildURL(BaseAuth, "", "", rootOverride)
	if err != nil {
		return "", err
	}

	headers := NewRequestOptions(nil)
	AddAuthorization(apiKey, headers)

	req := &requests.HttpRequest{
		Name:   "ethos.fetchToken",
		URL:    url,
		Method: http.MethodPost,
	}
	req.SetHeaders(headers)

	result := requests.SendRequest(ctx, c.httpClient, req)
	if result.Err() != nil {
		return "", result.Err()
	}
	if result.StatusCode() != http.StatusOK {
		return "", &AuthenticationError{
			StatusCode: result.StatusCode(),
			Body:       result.Text(),
		}
	}
	return result.Text(), nil
}
