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

//go:build wireinject
// +build wireinject

package wiring

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/wso2/ethos-integration-service/config"
	"github.com/wso2/ethos-integration-service/controllers"
	"github.com/wso2/ethos-integration-service/repositories"
	"github.com/wso2/ethos-integration-service/services"
)

var configProviderSet = wire.NewSet(
	ProvideConfigFromPtr,
)

var clientProviderSet = wire.NewSet(
	ProvideEthosHTTPClient,
	ProvideEthosClient,
)

var serviceProviderSet = wire.NewSet(
	ProvideSessionStore,
	ProvideResourceAllowlist,
	services.NewProxyService,
	services.NewAuditService,
)

var repositoryProviderSet = wire.NewSet(
	repositories.NewCallRecordRepo,
)

var controllerProviderSet = wire.NewSet(
	controllers.NewProxyController,
	controllers.NewAuditController,
)

var loggerProviderSet = wire.NewSet(
	ProvideLogger,
)

func InitializeAppParams(cfg *config.Config, gormDB *gorm.DB) (*AppParams, error) {
	wire.Build(
		configProviderSet,
		loggerProviderSet,
		ProvideAuthMiddleware,
		clientProviderSet,
		repositoryProviderSet,
		serviceProviderSet,
		controllerProviderSet,
		wire.Struct(new(AppParams), "*"),
	)
	return nil, nil
}

func InitializeTestAppParams(cfg *config.Config, gormDB *gorm.DB, testClients TestClients) (*AppParams, error) {
	wire.Build(
		configProviderSet,
		loggerProviderSet,
		ProvideAuthMiddleware,
		ProvideTestEthosHTTPClient,
		ProvideEthosClient,
		ProvideTestCallRecordRepository,
		serviceProviderSet,
		controllerProviderSet,
		wire.Struct(new(AppParams), "*"),
	)
	return nil, nil
}
