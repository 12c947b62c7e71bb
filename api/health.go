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

package api

import (
	"context"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/wso2/ethos-integration-service/config"
	"github.com/wso2/ethos-integration-service/utils"
)

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// registerHealthCheck registers the liveness endpoint. It pings the
// database with a short timeout so a stuck pool turns the check red.
func registerHealthCheck(mux *http.ServeMux, gormDB *gorm.DB) {
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		cfg := config.GetConfig()

		if gormDB == nil {
			utils.WriteSuccessResponse(w, http.StatusOK, healthResponse{
				Status:  "ok",
				Version: cfg.PackageVersion,
			})
			return
		}

		sqlDB, err := gormDB.DB()
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}

		timeout := time.Duration(cfg.HealthCheckTimeoutSeconds) * time.Second
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		if err := sqlDB.PingContext(ctx); err != nil {
			utils.WriteErrorResponse(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}

		utils.WriteSuccessResponse(w, http.StatusOK, healthResponse{
			Status:  "ok",
			Version: cfg.PackageVersion,
		})
	})
}
