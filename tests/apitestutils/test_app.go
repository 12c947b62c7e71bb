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
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wso2/ethos-integration-service/api"
	"github.com/wso2/ethos-integration-service/config"
	"github.com/wso2/ethos-integration-service/middleware/jwtassertion"
	"github.com/wso2/ethos-integration-service/wiring"
)

// TestConfig returns a mutable copy of the loaded configuration
func TestConfig() *config.Config {
	cfg := *config.GetConfig()
	return &cfg
}

// MakeAppClientWithDeps builds the full API handler with the given fakes
// wired in. No database connection is made.
func MakeAppClientWithDeps(t *testing.T, testClients wiring.TestClients, authMiddleware jwtassertion.Middleware) http.Handler {
	t.Helper()
	return MakeAppClientWithConfig(t, TestConfig(), testClients, authMiddleware)
}

// MakeAppClientWithConfig is MakeAppClientWithDeps with a caller-supplied
// configuration, for tests that tweak settings such as the allowlist path
func MakeAppClientWithConfig(t *testing.T, cfg *config.Config, testClients wiring.TestClients, authMiddleware jwtassertion.Middleware) http.Handler {
	t.Helper()

	if testClients.CallRecords == nil {
		testClients.CallRecords = NewCallRecordRepoMock()
	}

	params, err := wiring.InitializeTestAppParams(cfg, nil, testClients)
	require.NoError(t, err)

	params.AuthMiddleware = authMiddleware

	return api.MakeHTTPHandler(params)
}

// MockAuthMiddleware returns an auth middleware that injects a fixed
// subject without validating anything
func MockAuthMiddleware() jwtassertion.Middleware {
	return jwtassertion.NewMockMiddleware(&jwtassertion.TokenClaims{
		Sub: "test-user",
	})
}
