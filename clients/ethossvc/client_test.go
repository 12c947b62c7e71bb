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
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wso2/ethos-integration-service/clients/requests"
)

const testRoot = "https://integrate.example.edu"

type mockHTTPClient struct {
	requests []*http.Request
	bodies   []string
	handler  func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	m.requests = append(m.requests, req)
	if req.Body != nil {
		body, _ := io.ReadAll(req.Body)
		m.bodies = append(m.bodies, string(body))
	} else {
		m.bodies = append(m.bodies, "")
	}
	return m.handler(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func newTestClient(t *testing.T, handler func(req *http.Request) (*http.Response, error)) (*Client, *mockHTTPClient) {
	t.Helper()
	t.Setenv(EnvIntegrationRoot, testRoot)
	mock := &mockHTTPClient{handler: handler}
	client := NewClient(mock)
	return client, mock
}

func TestGetTokenReusesCachedToken(t *testing.T) {
	client, mock := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		t.Fatal("no network call expected on cache hit")
		return nil, nil
	})

	session := &Session{TokensByAPIKey: map[string]CachedToken{
		"key-1": {Token: "cached-tok", ExpiresAt: time.Now().Add(2 * time.Minute)},
	}}

	gotSession, token, err := client.GetToken(context.Background(), TokenParams{APIKey: "key-1", Session: session})
	require.NoError(t, err)
	require.Equal(t, "cached-tok", token)
	require.Same(t, session, gotSession)
	require.Empty(t, mock.requests)
}

func TestGetTokenFetchesOnCacheMiss(t *testing.T) {
	client, mock := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, "tok123"), nil
	})

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	client.now = func() time.Time { return now }

	session, token, err := client.GetToken(context.Background(), TokenParams{APIKey: "key-1"})
	require.NoError(t, err)
	require.Equal(t, "tok123", token)

	require.Len(t, mock.requests, 1)
	authReq := mock.requests[0]
	require.Equal(t, http.MethodPost, authReq.Method)
	require.Equal(t, testRoot+"/auth", authReq.URL.String())
	require.Equal(t, "Bearer key-1", authReq.Header.Get("Authorization"))
	require.Equal(t, "application/json", authReq.Header.Get("Accept"))
	require.Equal(t, "no-cache", authReq.Header.Get("Cache-Control"))

	cached := session.TokensByAPIKey["key-1"]
	require.Equal(t, "tok123", cached.Token)
	require.Equal(t, now.Add(5*time.Minute), cached.ExpiresAt)
}

func TestGetTokenRefetchesWhenEntryExpiresSoon(t *testing.T) {
	client, mock := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, "fresh-tok"), nil
	})

	session := &Session{TokensByAPIKey: map[string]CachedToken{
		"key-1": {Token: "stale-tok", ExpiresAt: time.Now().Add(10 * time.Second)},
	}}

	_, token, err := client.GetToken(context.Background(), TokenParams{APIKey: "key-1", Session: session})
	require.NoError(t, err)
	require.Equal(t, "fresh-tok", token)
	require.Len(t, mock.requests, 1)
	require.Equal(t, "fresh-tok", session.TokensByAPIKey["key-1"].Token)
}

func TestGetTokenRequiresAPIKey(t *testing.T) {
	client, mock := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, "tok"), nil
	})

	_, _, err := client.GetToken(context.Background(), TokenParams{})
	require.ErrorIs(t, err, ErrMissingAPIKey)
	require.Empty(t, mock.requests)
}

func TestGetTokenAuthFailure(t *testing.T) {
	client, _ := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusUnauthorized, "bad key"), nil
	})

	session, _, err := client.GetToken(context.Background(), TokenParams{APIKey: "key-1"})

	var authErr *AuthenticationError
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, http.StatusUnauthorized, authErr.StatusCode)
	require.Equal(t, "bad key", authErr.Body)
	require.Empty(t, session.TokensByAPIKey)
}

func TestExplicitTokenBypassesAuth(t *testing.T) {
	client, mock := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"a":1}`), nil
	})

	result, err := client.Get(context.Background(), GetParams{
		TokenParams: TokenParams{Token: "explicit-tok"},
		Resource:    "students",
	})
	require.NoError(t, err)
	require.NoError(t, result.Err)

	// Only the GET itself, no auth exchange
	require.Len(t, mock.requests, 1)
	require.Equal(t, "Bearer explicit-tok", mock.requests[0].Header.Get("Authorization"))
	require.Empty(t, result.Session.TokensByAPIKey)
}

func TestGetSuccess(t *testing.T) {
	client, mock := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		if strings.HasSuffix(req.URL.Path, "/auth") {
			return jsonResponse(http.StatusOK, "tok123"), nil
		}
		return jsonResponse(http.StatusOK, `{"a":1}`), nil
	})

	result, err := client.Get(context.Background(), GetParams{
		TokenParams: TokenParams{APIKey: "key-1"},
		Resource:    "students",
		ID:          "123",
	})
	require.NoError(t, err)
	require.NoError(t, result.Err)
	require.Equal(t, map[string]any{"a": float64(1)}, result.Data)
	require.Equal(t, int64(1), result.Session.GetCount)

	require.Len(t, mock.requests, 2)
	getReq := mock.requests[1]
	require.Equal(t, http.MethodGet, getReq.Method)
	require.Equal(t, testRoot+"/api/students/123", getReq.URL.String())
	require.Equal(t, "Bearer tok123", getReq.Header.Get("Authorization"))
}

func TestGetFailureIsContained(t *testing.T) {
	client, _ := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		if strings.HasSuffix(req.URL.Path, "/auth") {
			return jsonResponse(http.StatusOK, "tok123"), nil
		}
		return jsonResponse(http.StatusNotFound, "no such resource"), nil
	})

	params := GetParams{
		TokenParams: TokenParams{APIKey: "key-1"},
		Resource:    "students",
	}

	result, err := client.Get(context.Background(), params)
	require.NoError(t, err)
	require.Error(t, result.Err)

	var httpErr *requests.HttpError
	require.ErrorAs(t, result.Err, &httpErr)
	require.Equal(t, http.StatusNotFound, httpErr.StatusCode)
	require.Equal(t, int64(1), result.Session.GetCount)

	// Session stays usable for the next call
	params.Session = result.Session
	result, err = client.Get(context.Background(), params)
	require.NoError(t, err)
	require.Equal(t, int64(2), result.Session.GetCount)
}

func TestGetTransportFailureIsContained(t *testing.T) {
	transportErr := errors.New("connection refused")
	client, _ := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		if strings.HasSuffix(req.URL.Path, "/auth") {
			return jsonResponse(http.StatusOK, "tok123"), nil
		}
		return nil, transportErr
	})

	result, err := client.Get(context.Background(), GetParams{
		TokenParams: TokenParams{APIKey: "key-1"},
		Resource:    "students",
	})
	require.NoError(t, err)
	require.ErrorContains(t, result.Err, "connection refused")
}

func TestGetRequiresResource(t *testing.T) {
	client, mock := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, "tok"), nil
	})

	_, err := client.Get(context.Background(), GetParams{TokenParams: TokenParams{APIKey: "key-1"}})
	require.ErrorIs(t, err, ErrMissingResource)
	require.Empty(t, mock.requests)
}

func TestGetNormalizesCriteria(t *testing.T) {
	client, mock := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		if strings.HasSuffix(req.URL.Path, "/auth") {
			return jsonResponse(http.StatusOK, "tok123"), nil
		}
		return jsonResponse(http.StatusOK, `[]`), nil
	})

	_, err := client.Get(context.Background(), GetParams{
		TokenParams: TokenParams{APIKey: "key-1"},
		Resource:    "students",
		SearchParams: map[string]any{
			"criteria": map[string]any{"names": map[string]any{"lastName": "Smith"}},
			"limit":    10,
		},
	})
	require.NoError(t, err)

	query := mock.requests[1].URL.Query()
	require.JSONEq(t, `{"names":{"lastName":"Smith"}}`, query.Get("criteria"))
	require.Equal(t, "10", query.Get("limit"))
}

func TestGetForwardsCallerHeaders(t *testing.T) {
	client, mock := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		if strings.HasSuffix(req.URL.Path, "/auth") {
			return jsonResponse(http.StatusOK, "tok123"), nil
		}
		return jsonResponse(http.StatusOK, `[]`), nil
	})

	_, err := client.Get(context.Background(), GetParams{
		TokenParams: TokenParams{APIKey: "key-1"},
		Resource:    "students",
		Headers: map[string]string{
			"Accept":    "application/vnd.hedtech.integration.v2+json",
			"X-Request": "trace-1",
		},
	})
	require.NoError(t, err)

	getReq := mock.requests[1]
	require.Equal(t, "application/vnd.hedtech.integration.v2+json", getReq.Header.Get("Accept"))
	require.Equal(t, "trace-1", getReq.Header.Get("X-Request"))
	require.Equal(t, "no-cache", getReq.Header.Get("Cache-Control"))
	require.Equal(t, "Bearer tok123", getReq.Header.Get("Authorization"))
}

func TestPostAccepts200And201(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusCreated} {
		client, mock := newTestClient(t, func(req *http.Request) (*http.Response, error) {
			if strings.HasSuffix(req.URL.Path, "/auth") {
				return jsonResponse(http.StatusOK, "tok123"), nil
			}
			return jsonResponse(status, `{"id":"n1"}`), nil
		})

		result, err := client.Post(context.Background(), PostParams{
			TokenParams: TokenParams{APIKey: "key-1"},
			Resource:    "persons",
			Data:        map[string]any{"firstName": "Ana"},
		})
		require.NoError(t, err)
		require.NoError(t, result.Err)
		require.Equal(t, map[string]any{"id": "n1"}, result.Data)
		require.Equal(t, int64(1), result.Session.PostCount)

		postReq := mock.requests[1]
		require.Equal(t, "application/json", postReq.Header.Get("Content-Type"))
		require.JSONEq(t, `{"firstName":"Ana"}`, mock.bodies[1])
	}
}

func TestPostFailureIsContained(t *testing.T) {
	client, _ := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		if strings.HasSuffix(req.URL.Path, "/auth") {
			return jsonResponse(http.StatusOK, "tok123"), nil
		}
		return jsonResponse(http.StatusBadRequest, "validation failed"), nil
	})

	result, err := client.Post(context.Background(), PostParams{
		TokenParams: TokenParams{APIKey: "key-1"},
		Resource:    "persons",
		Data:        map[string]any{},
	})
	require.NoError(t, err)
	require.Error(t, result.Err)
	require.Equal(t, int64(1), result.Session.PostCount)
}

func TestPostForwardsCallerHeaders(t *testing.T) {
	client, mock := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		if strings.HasSuffix(req.URL.Path, "/auth") {
			return jsonResponse(http.StatusOK, "tok123"), nil
		}
		return jsonResponse(http.StatusOK, `{}`), nil
	})

	_, err := client.Post(context.Background(), PostParams{
		TokenParams: TokenParams{APIKey: "key-1"},
		Resource:    "persons",
		Data:        map[string]any{"firstName": "Ana"},
		Headers:     map[string]string{"X-Request": "trace-2"},
	})
	require.NoError(t, err)

	postReq := mock.requests[1]
	require.Equal(t, "trace-2", postReq.Header.Get("X-Request"))
	// Caller headers do not displace the JSON content type unless they
	// override it explicitly.
	require.Equal(t, "application/json", postReq.Header.Get("Content-Type"))

	_, err = client.Post(context.Background(), PostParams{
		TokenParams: TokenParams{Token: "tok123"},
		Resource:    "persons",
		Data:        map[string]any{"firstName": "Ana"},
		Headers:     map[string]string{"Content-Type": "application/vnd.hedtech+json"},
	})
	require.NoError(t, err)
	require.Equal(t, "application/vnd.hedtech+json", mock.requests[2].Header.Get("Content-Type"))
}

func TestGraphQLSuccess(t *testing.T) {
	client, mock := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		if strings.HasSuffix(req.URL.Path, "/auth") {
			return jsonResponse(http.StatusOK, "tok123"), nil
		}
		return jsonResponse(http.StatusOK, `{"data":{"students":[]},"errors":null}`), nil
	})

	result, err := client.GraphQL(context.Background(), GraphQLParams{
		TokenParams: TokenParams{APIKey: "key-1"},
		Query:       "query { students { id } }",
		Variables:   map[string]any{"limit": 5},
	})
	require.NoError(t, err)
	require.Equal(t, map[string]any{"students": []any{}}, result.Data)
	require.Nil(t, result.Errors)
	require.Equal(t, int64(1), result.Session.GraphQLCount)

	gqlReq := mock.requests[1]
	require.Equal(t, testRoot+"/graphql", gqlReq.URL.String())
	require.JSONEq(t, `{"query":"query { students { id } }","variables":{"limit":5}}`, mock.bodies[1])
}

func TestGraphQLFailurePropagates(t *testing.T) {
	client, _ := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		if strings.HasSuffix(req.URL.Path, "/auth") {
			return jsonResponse(http.StatusOK, "tok123"), nil
		}
		return jsonResponse(http.StatusBadGateway, "upstream down"), nil
	})

	result, err := client.GraphQL(context.Background(), GraphQLParams{
		TokenParams: TokenParams{APIKey: "key-1"},
		Query:       "query { students { id } }",
	})
	require.Nil(t, result)

	var intErr *IntegrationError
	require.ErrorAs(t, err, &intErr)
	require.Equal(t, http.StatusBadGateway, intErr.StatusCode)
}

func TestBuildURL(t *testing.T) {
	t.Setenv(EnvIntegrationRoot, testRoot)

	url, err := BuildURL(BaseAPI, "students", "123", "")
	require.NoError(t, err)
	require.Equal(t, testRoot+"/api/students/123", url)

	url, err = BuildURL(BaseAdmin, "health", "", "")
	require.NoError(t, err)
	require.Equal(t, testRoot+"/admin/health", url)

	url, err = BuildURL(BaseAuth, "", "", "")
	require.NoError(t, err)
	require.Equal(t, testRoot+"/auth", url)

	url, err = BuildURL(BaseGraphQL, "ignored", "ignored", "")
	require.NoError(t, err)
	require.Equal(t, testRoot+"/graphql", url)

	_, err = BuildURL("unknown", "students", "", "")
	require.ErrorIs(t, err, ErrUnknownBase)

	_, err = BuildURL(BaseAPI, "", "", "")
	require.ErrorIs(t, err, ErrMissingResource)

	url, err = BuildURL(BaseAPI, "students", "", "https://other.example.edu")
	require.NoError(t, err)
	require.Equal(t, "https://other.example.edu/api/students", url)
}

func TestNewRequestOptionsNeverSharesState(t *testing.T) {
	first := NewRequestOptions(nil)
	first["Accept"] = "text/xml"
	first["X-Custom"] = "mutated"

	second := NewRequestOptions(nil)
	require.Equal(t, "application/json", second["Accept"])
	require.NotContains(t, second, "X-Custom")

	withOverrides := NewRequestOptions(map[string]string{"Accept": "text/csv"})
	require.Equal(t, "text/csv", withOverrides["Accept"])
	require.Equal(t, "no-cache", withOverrides["Cache-Control"])
}

func TestAddAuthorizationMutatesInPlace(t *testing.T) {
	headers := NewRequestOptions(nil)
	AddAuthorization("tok123", headers)
	require.Equal(t, "Bearer tok123", headers["Authorization"])
}
