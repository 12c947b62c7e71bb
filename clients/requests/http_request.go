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

// Package requests provides a thin layer over net/http for outbound calls:
// a declarative request builder, response handling and retry support.
package requests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// HttpRequest describes an outbound HTTP request. Name identifies the
// request in logs and errors.
type HttpRequest struct {
	Name   string
	URL    string
	Method string

	headers     map[string]string
	queryParams map[string]string
	body        io.Reader
}

// SetHeader sets a single request header, replacing any previous value.
func (r *HttpRequest) SetHeader(key, value string) {
	if r.headers == nil {
		r.headers = make(map[string]string)
	}
	r.headers[key] = value
}

// SetHeaders sets all headers from the given map.
func (r *HttpRequest) SetHeaders(headers map[string]string) {
	for key, value := range headers {
		r.SetHeader(key, value)
	}
}

// SetQueryParams sets the query parameters appended to the request URL.
// Parameters with empty values are skipped.
func (r *HttpRequest) SetQueryParams(params map[string]string) {
	if r.queryParams == nil {
		r.queryParams = make(map[string]string)
	}
	for key, value := range params {
		if value == "" {
			continue
		}
		r.queryParams[key] = value
	}
}

// SetJSONBody marshals the given value as the JSON request body.
func (r *HttpRequest) SetJSONBody(body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal body for request %s: %w", r.Name, err)
	}
	r.body = bytes.NewReader(data)
	r.SetHeader("Content-Type", "application/json")
	return nil
}

func (r *HttpRequest) buildHttpRequest(ctx context.Context) (*http.Request, error) {
	httpReq, err := http.NewRequestWithContext(ctx, r.Method, r.URL, r.body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request %s: %w", r.Name, err)
	}

	for key, value := range r.headers {
		httpReq.Header.Set(key, value)
	}

	if len(r.queryParams) > 0 {
		query := httpReq.URL.Query()
		for key, value := range r.queryParams {
			query.Set(key, value)
		}
		httpReq.URL.RawQuery = query.Encode()
	}

	return httpReq, nil
}
