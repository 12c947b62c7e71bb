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

package tests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wso2/ethos-integration-service/clients/ethossvc"
	"github.com/wso2/ethos-integration-service/controllers"
	"github.com/wso2/ethos-integration-service/models"
	"github.com/wso2/ethos-integration-service/tests/apitestutils"
	"github.com/wso2/ethos-integration-service/utils"
	"github.com/wso2/ethos-integration-service/wiring"
)

func getResource(t *testing.T, app http.Handler, url string, apiKey string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	if apiKey != "" {
		req.Header.Set(controllers.APIKeyHeader, apiKey)
	}
	rr := httptest.NewRecorder()
	app.ServeHTTP(rr, req)
	return rr
}

func TestGetResource(t *testing.T) {
	t.Setenv(ethossvc.EnvIntegrationRoot, testIntegrationRoot)
	authMiddleware := apitestutils.MockAuthMiddleware()

	t.Run("Fetching a resource collection should return 200 with data and counters", func(t *testing.T) {
		ethosClient := apitestutils.NewEthosHTTPClientMock("tok-get", func(req *http.Request) (*http.Response, error) {
			require.Equal(t, http.MethodGet, req.Method)
			require.Equal(t, testIntegrationRoot+"/api/persons", req.URL.Scheme+"://"+req.URL.Host+req.URL.Path)
			return apitestutils.JSONResponse(http.StatusOK, `[{"id":"p1"},{"id":"p2"}]`), nil
		})
		app := apitestutils.MakeAppClientWithDeps(t, wiring.TestClients{EthosHTTPClient: ethosClient}, authMiddleware)

		rr := getResource(t, app, "/api/v1/resources/persons", "key-1")
		require.Equal(t, http.StatusOK, rr.Code)

		var resp models.ResourceResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.Empty(t, resp.Error)
		require.Len(t, resp.Data, 2)
		require.Equal(t, int64(1), resp.Counts.Get)
		require.Zero(t, resp.Counts.Post)
	})

	t.Run("Fetching a single resource by id should target the id path", func(t *testing.T) {
		ethosClient := apitestutils.NewEthosHTTPClientMock("tok-get-id", func(req *http.Request) (*http.Response, error) {
			require.Equal(t, "/api/persons/p1", req.URL.Path)
			return apitestutils.JSONResponse(http.StatusOK, `{"id":"p1"}`), nil
		})
		app := apitestutils.MakeAppClientWithDeps(t, wiring.TestClients{EthosHTTPClient: ethosClient}, authMiddleware)

		rr := getResource(t, app, "/api/v1/resources/persons/p1", "key-1")
		require.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Criteria and paging parameters should be forwarded to the provider", func(t *testing.T) {
		criteria := `{"names":[{"lastName":"Smith"}]}`
		ethosClient := apitestutils.NewEthosHTTPClientMock("tok-criteria", func(req *http.Request) (*http.Response, error) {
			query := req.URL.Query()
			require.Equal(t, criteria, query.Get("criteria"))
			require.Equal(t, "10", query.Get("offset"))
			require.Equal(t, "5", query.Get("limit"))
			return apitestutils.JSONResponse(http.StatusOK, `[]`), nil
		})
		app := apitestutils.MakeAppClientWithDeps(t, wiring.TestClients{EthosHTTPClient: ethosClient}, authMiddleware)

		target := "/api/v1/resources/persons?offset=10&limit=5&criteria=" + url.QueryEscape(criteria)
		rr := getResource(t, app, target, "key-1")
		require.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("A provider failure should surface as 502 with the error contained", func(t *testing.T) {
		ethosClient := apitestutils.NewEthosHTTPClientMock("tok-fail", func(req *http.Request) (*http.Response, error) {
			return apitestutils.JSONResponse(http.StatusInternalServerError, "boom"), nil
		})
		callRecords := apitestutils.NewCallRecordRepoMock()
		app := apitestutils.MakeAppClientWithDeps(t, wiring.TestClients{
			EthosHTTPClient: ethosClient,
			CallRecords:     callRecords,
		}, authMiddleware)

		rr := getResource(t, app, "/api/v1/resources/persons", "key-1")
		require.Equal(t, http.StatusBadGateway, rr.Code)

		var resp models.ResourceResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.Nil(t, resp.Data)
		require.NotEmpty(t, resp.Error)
		require.Equal(t, http.StatusInternalServerError, resp.ProviderStatus)
		// The counter still advances on failure
		require.Equal(t, int64(1), resp.Counts.Get)

		records := callRecords.Records()
		require.Len(t, records, 1)
		require.False(t, records[0].Succeeded)
		require.Equal(t, http.StatusInternalServerError, records[0].ProviderStatus)
	})

	t.Run("A missing API key header should return 400", func(t *testing.T) {
		ethosClient := apitestutils.NewEthosHTTPClientMock("unused", func(req *http.Request) (*http.Response, error) {
			t.Fatalf("unexpected provider call: %s %s", req.Method, req.URL)
			return nil, nil
		})
		app := apitestutils.MakeAppClientWithDeps(t, wiring.TestClients{EthosHTTPClient: ethosClient}, authMiddleware)

		rr := getResource(t, app, "/api/v1/resources/persons", "")
		require.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("An invalid resource name should return 400", func(t *testing.T) {
		ethosClient := apitestutils.NewEthosHTTPClientMock("unused", func(req *http.Request) (*http.Response, error) {
			t.Fatalf("unexpected provider call: %s %s", req.Method, req.URL)
			return nil, nil
		})
		app := apitestutils.MakeAppClientWithDeps(t, wiring.TestClients{EthosHTTPClient: ethosClient}, authMiddleware)

		rr := getResource(t, app, "/api/v1/resources/Bad_Resource", "key-1")
		require.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("A resource outside the allowlist should return 403", func(t *testing.T) {
		allowlistPath := filepath.Join(t.TempDir(), "allowlist.yaml")
		require.NoError(t, os.WriteFile(allowlistPath, []byte("resources:\n  - persons\n"), 0o644))

		cfg := apitestutils.TestConfig()
		cfg.Ethos.AllowlistPath = allowlistPath

		ethosClient := apitestutils.NewEthosHTTPClientMock("tok-allow", func(req *http.Request) (*http.Response, error) {
			return apitestutils.JSONResponse(http.StatusOK, `[]`), nil
		})
		app := apitestutils.MakeAppClientWithConfig(t, cfg, wiring.TestClients{EthosHTTPClient: ethosClient}, authMiddleware)

		rr := getResource(t, app, "/api/v1/resources/courses", "key-1")
		require.Equal(t, http.StatusForbidden, rr.Code)

		allowed := getResource(t, app, "/api/v1/resources/persons", "key-1")
		require.NotEqual(t, http.StatusForbidden, allowed.Code)
	})
}

func TestCreateResource(t *testing.T) {
	t.Setenv(ethossvc.EnvIntegrationRoot, testIntegrationRoot)
	authMiddleware := apitestutils.MockAuthMiddleware()

	t.Run("Creating a resource should return 201 with the provider payload", func(t *testing.T) {
		ethosClient := apitestutils.NewEthosHTTPClientMock("tok-post", func(req *http.Request) (*http.Response, error) {
			require.Equal(t, http.MethodPost, req.Method)
			require.Equal(t, "/api/persons", req.URL.Path)
			require.Equal(t, "application/json", req.Header.Get("Content-Type"))
			return apitestutils.JSONResponse(http.StatusCreated, `{"id":"p9"}`), nil
		})
		app := apitestutils.MakeAppClientWithDeps(t, wiring.TestClients{EthosHTTPClient: ethosClient}, authMiddleware)

		rr := postJSON(t, app, "/api/v1/resources/persons", map[string]any{"firstName": "Ada"},
			map[string]string{controllers.APIKeyHeader: "key-1"})
		require.Equal(t, http.StatusCreated, rr.Code)

		var resp models.ResourceResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.Empty(t, resp.Error)
		require.Equal(t, int64(1), resp.Counts.Post)

		data, ok := resp.Data.(map[string]any)
		require.True(t, ok)
		require.Equal(t, "p9", data["id"])
	})

	t.Run("A provider rejection should surface as 502 with the status in the body and audit trail", func(t *testing.T) {
		ethosClient := apitestutils.NewEthosHTTPClientMock("tok-post-fail", func(req *http.Request) (*http.Response, error) {
			return apitestutils.JSONResponse(http.StatusBadRequest, "validation failed"), nil
		})
		callRecords := apitestutils.NewCallRecordRepoMock()
		app := apitestutils.MakeAppClientWithDeps(t, wiring.TestClients{
			EthosHTTPClient: ethosClient,
			CallRecords:     callRecords,
		}, authMiddleware)

		rr := postJSON(t, app, "/api/v1/resources/persons", map[string]any{"firstName": "Ada"},
			map[string]string{controllers.APIKeyHeader: "key-1"})
		require.Equal(t, http.StatusBadGateway, rr.Code)

		var resp models.ResourceResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.NotEmpty(t, resp.Error)
		require.Equal(t, http.StatusBadRequest, resp.ProviderStatus)

		records := callRecords.Records()
		require.Len(t, records, 1)
		require.Equal(t, models.OperationPost, records[0].Operation)
		require.Equal(t, http.StatusBadRequest, records[0].ProviderStatus)
		require.Equal(t, utils.FingerprintAPIKey("key-1"), records[0].APIKeyFingerprint)
	})
}
