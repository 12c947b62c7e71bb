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
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/wso2/ethos-integration-service/clients/requests"
	"github.com/wso2/ethos-integration-service/middleware/logger"
)

// Client performs authenticated calls against the Ethos APIs. Transport
// concerns (retries, timeouts, pooling) belong to the injected HttpClient;
// wrap it in requests.NewRetryableHTTPClient for retry support.
type Client struct {
	httpClient requests.HttpClient
	now        func() time.Time
}

// NewClient creates a client over the given HTTP client. A nil httpClient
// falls back to http.DefaultClient.
func NewClient(httpClient requests.HttpClient) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		now:        time.Now,
	}
}

// Get issues an authenticated GET against an api-family resource.
//
// Argument validation and token resolution failures are returned as errors.
// Provider failures after that point (non-200 status, transport errors) are
// contained in the result's Err field with a nil returned error, keeping
// the session usable for subsequent calls.
func (c *Client) Get(ctx context.Context, params GetParams) (*GetResult, error) {
	if params.Resource == "" {
		return nil, ErrMissingResource
	}

	session, token, err := c.GetToken(ctx, params.TokenParams)
	if err != nil {
		return nil, err
	}
	session.GetCount++

	url, err := BuildURL(BaseAPI, params.Resource, params.ID, params.RootOverride)
	if err != nil {
		return nil, err
	}

	headers := NewRequestOptions(params.Headers)
	AddAuthorization(token, headers)

	req := &requests.HttpRequest{
		Name:   "ethos.get." + params.Resource,
		URL:    url,
		Method: http.MethodGet,
	}
	req.SetHeaders(headers)
	req.SetQueryParams(normalizeSearchParams(params.SearchParams))

	result := requests.SendRequest(ctx, c.httpClient, req)
	data, callErr := scanBody(result, http.StatusOK)
	if callErr != nil {
		logger.GetLogger(ctx).Error("ethos get failed",
			slog.String("resource", params.Resource),
			slog.String("error", callErr.Error()))
		return &GetResult{Session: session, Err: callErr}, nil
	}

	return &GetResult{Session: session, Data: data}, nil
}

// Post issues an authenticated POST with a JSON body against an api-family
// resource. It has the same failure containment as Get, and accepts both
// 200 and 201 as success.
func (c *Client) Post(ctx context.Context, params PostParams) (*PostResult, error) {
	if params.Resource == "" {
		return nil, ErrMissingResource
	}

	session, token, err := c.GetToken(ctx, params.TokenParams)
	if err != nil {
		return nil, err
	}
	session.PostCount++

	url, err := BuildURL(BaseAPI, params.Resource, "", params.RootOverride)
	if err != nil {
		return nil, err
	}

	headers := NewRequestOptions(withJSONContentType(params.Headers))
	AddAuthorization(token, headers)

	req := &requests.HttpRequest{
		Name:   "ethos.post." + params.Resource,
		URL:    url,
		Method: http.MethodPost,
	}
	if err := req.SetJSONBody(params.Data); err != nil {
		return nil, err
	}
	req.SetHeaders(headers)

	result := requests.SendRequest(ctx, c.httpClient, req)
	data, callErr := scanBody(result, http.StatusOK, http.StatusCreated)
	if callErr != nil {
		logger.GetLogger(ctx).Error("ethos post failed",
			slog.String("resource", params.Resource),
			slog.String("error", callErr.Error()))
		return &PostResult{Session: session, Err: callErr}, nil
	}

	return &PostResult{Session: session, Data: data}, nil
}

// GraphQL posts a query to the GraphQL endpoint. A non-200 response is
// returned as an IntegrationError; GraphQL-level errors on a 200 response
// land in the result's Errors field per GraphQL convention.
func (c *Client) GraphQL(ctx context.Context, params GraphQLParams) (*GraphQLResult, error) {
	session, token, err := c.GetToken(ctx, params.TokenParams)
	if err != nil {
		return nil, err
	}
	session.GraphQLCount++

	url, err := BuildURL(BaseGraphQL, "", "", params.RootOverride)
	if err != nil {
		return nil, err
	}

	headers := NewRequestOptions(withJSONContentType(params.Headers))
	AddAuthorization(token, headers)

	req := &requests.HttpRequest{
		Name:   "ethos.graphql",
		URL:    url,
		Method: http.MethodPost,
	}
	body := map[string]any{"query": params.Query}
	if params.Variables != nil {
		body["variables"] = params.Variables
	}
	if err := req.SetJSONBody(body); err != nil {
		return nil, err
	}
	req.SetHeaders(headers)

	result := requests.SendRequest(ctx, c.httpClient, req)
	if result.Err() != nil {
		return nil, result.Err()
	}
	if result.StatusCode() != http.StatusOK {
		return nil, &IntegrationError{
			StatusCode: result.StatusCode(),
			Body:       result.Text(),
		}
	}

	var payload struct {
		Data   any `json:"data"`
		Errors any `json:"errors"`
	}
	if err := json.Unmarshal(result.BodyBytes(), &payload); err != nil {
		return nil, fmt.Errorf("failed to decode graphql response: %w", err)
	}

	return &GraphQLResult{Session: session, Data: payload.Data, Errors: payload.Errors}, nil
}

// withJSONContentType merges caller headers over the JSON content type, so
// callers can still override it for non-JSON payloads.
func withJSONContentType(headers map[string]string) map[string]string {
	merged := make(map[string]string, len(headers)+1)
	merged["Content-Type"] = "application/json"
	for key, value := range headers {
		merged[key] = value
	}
	return merged
}

// normalizeSearchParams renders search parameters as query-string values.
// The criteria value is JSON-serialized when it is not already a string.
func normalizeSearchParams(searchParams map[string]any) map[string]string {
	if len(searchParams) == 0 {
		return nil
	}
	normalized := make(map[string]string, len(searchParams))
	for key, value := range searchParams {
		switch v := value.(type) {
		case nil:
			continue
		case string:
			normalized[key] = v
		default:
			if key == "criteria" {
				if data, err := json.Marshal(v); err == nil {
					normalized[key] = string(data)
					continue
				}
			}
			normalized[key] = fmt.Sprintf("%v", v)
		}
	}
	return normalized
}

// scanBody interprets a provider response: on a success status the JSON
// body is parsed, on anything else an HttpError is returned.
func scanBody(result *requests.Result, successStatuses ...int) (any, error) {
	if result.Err() != nil {
		return nil, result.Err()
	}
	for _, status := range successStatuses {
		if result.StatusCode() == status {
			var data any
			if len(result.BodyBytes()) > 0 {
				if err := json.Unmarshal(result.BodyBytes(), &data); err != nil {
					return nil, fmt.Errorf("failed to decode response body: %w", err)
				}
			}
			return data, nil
		}
	}
	return nil, &requests.HttpError{
		StatusCode: result.StatusCode(),
		Body:       result.Text(),
	}
}
