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

package apitestutils

import (
	"io"
	"net/http"
	"strings"
	"sync"
)

// EthosHTTPClientMock fakes the provider HTTP endpoint. It records every
// outgoing request and delegates to the configured handler.
type EthosHTTPClientMock struct {
	mu       sync.Mutex
	requests []*http.Request
	bodies   []string

	Handler func(req *http.Request) (*http.Response, error)
}

func (m *EthosHTTPClientMock) Do(req *http.Request) (*http.Response, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	if req.Body != nil {
		body, _ := io.ReadAll(req.Body)
		m.bodies = append(m.bodies, string(body))
	} else {
		m.bodies = append(m.bodies, "")
	}
	m.mu.Unlock()
	return m.Handler(req)
}

// Requests returns a snapshot of the recorded requests
func (m *EthosHTTPClientMock) Requests() []*http.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*http.Request(nil), m.requests...)
}

// Bodies returns a snapshot of the recorded request bodies
func (m *EthosHTTPClientMock) Bodies() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.bodies...)
}

// JSONResponse builds an HTTP response with the given status and body
func JSONResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

// NewEthosHTTPClientMock creates a provider fake that answers token
// requests with the given token and delegates everything else to handler
func NewEthosHTTPClientMock(token string, handler func(req *http.Request) (*http.Response, error)) *EthosHTTPClientMock {
	return &EthosHTTPClientMock{
		Handler: func(req *http.Request) (*http.Response, error) {
			if req.Method == http.MethodPost && strings.HasSuffix(req.URL.Path, "/auth") {
				return JSONResponse(http.StatusOK, token), nil
			}
			return handler(req)
		},
	}
}
