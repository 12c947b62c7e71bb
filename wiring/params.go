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

package wiring

import (
	"log/slog"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/wso2/ethos-integration-service/clients/ethossvc"
	"github.com/wso2/ethos-integration-service/clients/requests"
	"github.com/wso2/ethos-integration-service/config"
	"github.com/wso2/ethos-integration-service/controllers"
	"github.com/wso2/ethos-integration-service/middleware/jwtassertion"
	"github.com/wso2/ethos-integration-service/repositories"
	"github.com/wso2/ethos-integration-service/services"
)

// AppParams contains all wired application dependencies
type AppParams struct {
	// Middleware
	AuthMiddleware jwtassertion.Middleware
	Logger         *slog.Logger

	// Controllers
	ProxyController controllers.ProxyController
	AuditController controllers.AuditController

	// Services
	SessionStore *services.SessionStore

	// Database
	DB *gorm.DB
}

// TestClients contains the collaborators replaced with fakes in tests
type TestClients struct {
	EthosHTTPClient requests.HttpClient
	CallRecords     repositories.CallRecordRepository
}

func ProvideConfigFromPtr(config *config.Config) config.Config {
	return *config
}

// ProvideLogger provides the configured slog.Logger instance
func ProvideLogger() *slog.Logger {
	return slog.Default()
}

func ProvideAuthMiddleware(config config.Config) jwtassertion.Middleware {
	return jwtassertion.JWTAuthMiddleware(config.AuthHeader)
}

// ProvideEthosHTTPClient builds the retrying HTTP client used for all
// provider calls
func ProvideEthosHTTPClient(cfg config.Config) requests.HttpClient {
	return requests.NewRetryableHTTPClient(&http.Client{}, requests.RequestRetryConfig{
		RetryWaitMin:     time.Duration(cfg.Ethos.RetryWaitMinSeconds) * time.Second,
		RetryWaitMax:     time.Duration(cfg.Ethos.RetryWaitMaxSeconds) * time.Second,
		RetryAttemptsMax: cfg.Ethos.RetryAttemptsMax,
		AttemptTimeout:   time.Duration(cfg.Ethos.AttemptTimeoutSecond) * time.Second,
	})
}

// ProvideEthosClient builds the Ethos client over the shared HTTP client
func ProvideEthosClient(httpClient requests.HttpClient) *ethossvc.Client {
	return ethossvc.NewClient(httpClient)
}

// ProvideSessionStore builds the per-key session store
func ProvideSessionStore(cfg config.Config) *services.SessionStore {
	return services.NewSessionStore(time.Duration(cfg.SessionStore.TTLSeconds) * time.Second)
}

// ProvideResourceAllowlist loads the resource allowlist from disk
func ProvideResourceAllowlist(cfg config.Config) (*config.ResourceAllowlist, error) {
	return config.LoadResourceAllowlist(cfg.Ethos.AllowlistPath)
}

// ProvideTestEthosHTTPClient extracts the fake HTTP client from TestClients
func ProvideTestEthosHTTPClient(testClients TestClients) requests.HttpClient {
	return testClients.EthosHTTPClient
}

// ProvideTestCallRecordRepository prefers the fake repository from
// TestClients and falls back to the real one
func ProvideTestCallRecordRepository(gormDB *gorm.DB, testClients TestClients) repositories.CallRecordRepository {
	if testClients.CallRecords != nil {
		return testClients.CallRecords
	}
	return repositories.NewCallRecordRepo(gormDB)
}
