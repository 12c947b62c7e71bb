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

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wso2/ethos-integration-service/middleware/logger"
	"github.com/wso2/ethos-integration-service/models"
	"github.com/wso2/ethos-integration-service/repositories"
	"github.com/wso2/ethos-integration-service/utils"
)

// AuditService exposes the call audit trail written by the proxy
type AuditService interface {
	// ListCallRecords returns the most recent audit rows for the API key,
	// newest first
	ListCallRecords(ctx context.Context, apiKey string, limit int) ([]*models.CallRecord, error)
	// GetCallRecord returns a single audit row by its UUID
	GetCallRecord(ctx context.Context, recordID string) (*models.CallRecord, error)
	// OperationStats returns audit row totals per provider operation
	OperationStats(ctx context.Context) (*models.AuditStats, error)
	// PruneCallRecords removes audit rows older than the given age
	PruneCallRecords(ctx context.Context, olderThan time.Duration) (*models.PruneResult, error)
}

type auditService struct {
	callRecords repositories.CallRecordRepository
}

// NewAuditService creates the audit service
func NewAuditService(callRecords repositories.CallRecordRepository) AuditService {
	return &auditService{callRecords: callRecords}
}

// ListCallRecords looks up audit rows by the fingerprint of the given API
// key. Raw keys are never persisted, so the lookup fingerprints the key the
// same way the proxy does when it writes the rows.
func (s *auditService) ListCallRecords(ctx context.Context, apiKey string, limit int) ([]*models.CallRecord, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: apiKey is required", utils.ErrBadRequest)
	}
	fingerprint := utils.FingerprintAPIKey(apiKey)
	return s.callRecords.ListByFingerprint(fingerprint, limit)
}

// GetCallRecord returns one audit row by UUID
func (s *auditService) GetCallRecord(ctx context.Context, recordID string) (*models.CallRecord, error) {
	if _, err := uuid.Parse(recordID); err != nil {
		return nil, fmt.Errorf("%w: malformed record id", utils.ErrInvalidInput)
	}
	record, err := s.callRecords.GetByUUID(recordID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%w: call record %s", utils.ErrNotFound, recordID)
	}
	return record, nil
}

// OperationStats counts audit rows for each provider operation
func (s *auditService) OperationStats(ctx context.Context) (*models.AuditStats, error) {
	stats := &models.AuditStats{}
	for _, entry := range []struct {
		operation string
		count     *int64
	}{
		{models.OperationToken, &stats.Token},
		{models.OperationGet, &stats.Get},
		{models.OperationPost, &stats.Post},
		{models.OperationGraphQL, &stats.GraphQL},
	} {
		count, err := s.callRecords.CountByOperation(entry.operation)
		if err != nil {
			return nil, err
		}
		*entry.count = count
	}
	return stats, nil
}

// PruneCallRecords deletes audit rows created more than olderThan ago
func (s *auditService) PruneCallRecords(ctx context.Context, olderThan time.Duration) (*models.PruneResult, error) {
	if olderThan <= 0 {
		return nil, fmt.Errorf("%w: retention age must be positive", utils.ErrBadRequest)
	}

	cutoff := time.Now().Add(-olderThan)
	deleted, err := s.callRecords.DeleteOlderThan(cutoff)
	if err != nil {
		return nil, err
	}

	logger.GetLogger(ctx).Info("pruned call records",
		"cutoff", cutoff,
		"deleted", deleted)
	return &models.PruneResult{Deleted: deleted}, nil
}
