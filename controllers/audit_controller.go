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

package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/wso2/ethos-integration-service/middleware/logger"
	"github.com/wso2/ethos-integration-service/services"
	"github.com/wso2/ethos-integration-service/utils"
)

// AuditController defines the interface for call audit trail operations
type AuditController interface {
	// ListCallRecords handles listing audit rows for one API key
	ListCallRecords(w http.ResponseWriter, r *http.Request)
	// GetCallRecord handles fetching one audit row by id
	GetCallRecord(w http.ResponseWriter, r *http.Request)
	// GetStats handles the per-operation audit totals
	GetStats(w http.ResponseWriter, r *http.Request)
	// PruneCallRecords handles deleting audit rows past a retention age
	PruneCallRecords(w http.ResponseWriter, r *http.Request)
}

type auditController struct {
	auditService services.AuditService
}

// NewAuditController creates a new AuditController instance
func NewAuditController(auditService services.AuditService) AuditController {
	return &auditController{
		auditService: auditService,
	}
}

// ListCallRecords handles GET /audit/records
func (c *auditController) ListCallRecords(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	apiKey := r.Header.Get(APIKeyHeader)
	if apiKey == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "missing header: "+APIKeyHeader)
		return
	}

	limit := 0
	if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil || parsed <= 0 {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	records, err := c.auditService.ListCallRecords(ctx, apiKey, limit)
	if err != nil {
		log.Error("ListCallRecords: failed to list records", "error", err)
		writeAuditError(w, err)
		return
	}

	utils.WriteSuccessResponse(w, http.StatusOK, records)
}

// GetCallRecord handles GET /audit/records/{id}
func (c *auditController) GetCallRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	recordID := r.PathValue("id")
	record, err := c.auditService.GetCallRecord(ctx, recordID)
	if err != nil {
		log.Error("GetCallRecord: failed to fetch record", "recordId", recordID, "error", err)
		writeAuditError(w, err)
		return
	}

	utils.WriteSuccessResponse(w, http.StatusOK, record)
}

// GetStats handles GET /audit/stats
func (c *auditController) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	stats, err := c.auditService.OperationStats(ctx)
	if err != nil {
		log.Error("GetStats: failed to count records", "error", err)
		writeAuditError(w, err)
		return
	}

	utils.WriteSuccessResponse(w, http.StatusOK, stats)
}

// PruneCallRecords handles DELETE /audit/records
func (c *auditController) PruneCallRecords(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	rawHours := r.URL.Query().Get("olderThanHours")
	if rawHours == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "missing query parameter: olderThanHours")
		return
	}
	hours, err := strconv.Atoi(rawHours)
	if err != nil || hours <= 0 {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid olderThanHours")
		return
	}

	result, err := c.auditService.PruneCallRecords(ctx, time.Duration(hours)*time.Hour)
	if err != nil {
		log.Error("PruneCallRecords: failed to prune records", "error", err)
		writeAuditError(w, err)
		return
	}

	log.Info("PruneCallRecords request completed", "deleted", result.Deleted)
	utils.WriteSuccessResponse(w, http.StatusOK, result)
}

// writeAuditError maps audit service errors onto response status codes
func writeAuditError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, utils.ErrBadRequest), errors.Is(err, utils.ErrInvalidInput):
		utils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, utils.ErrNotFound):
		utils.WriteErrorResponse(w, http.StatusNotFound, err.Error())
	default:
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to read audit records")
	}
}
