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

package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/wso2/ethos-integration-service/models"
	"github.com/wso2/ethos-integration-service/utils"
)

// CallRecordRepository defines the interface for call audit data access
type CallRecordRepository interface {
	Create(record *models.CallRecord) error
	GetByUUID(recordID string) (*models.CallRecord, error)
	ListByFingerprint(fingerprint string, limit int) ([]*models.CallRecord, error)
	CountByOperation(operation string) (int64, error)
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

// CallRecordRepo implements CallRecordRepository using GORM
type CallRecordRepo struct {
	db *gorm.DB
}

// NewCallRecordRepo creates a new call record repository
func NewCallRecordRepo(db *gorm.DB) CallRecordRepository {
	return &CallRecordRepo{db: db}
}

// Create inserts a new call record
func (r *CallRecordRepo) Create(record *models.CallRecord) error {
	if record.UUID == uuid.Nil {
		record.UUID = uuid.New()
	}
	record.CreatedAt = time.Now()

	if err := r.db.Create(record).Error; err != nil {
		var pgErr *pgconn.PgError
		// 23514 check_violation: an operation value outside the allowed set
		if errors.As(err, &pgErr) && pgErr.Code == "23514" {
			return fmt.Errorf("%w: %s", utils.ErrInvalidInput, pgErr.ConstraintName)
		}
		return err
	}
	return nil
}

// GetByUUID retrieves a call record by ID
func (r *CallRecordRepo) GetByUUID(recordID string) (*models.CallRecord, error) {
	var record models.CallRecord
	err := r.db.Where("uuid = ?", recordID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// ListByFingerprint returns the most recent call records for an API key
// fingerprint, newest first.
func (r *CallRecordRepo) ListByFingerprint(fingerprint string, limit int) ([]*models.CallRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	var records []*models.CallRecord
	err := r.db.Where("api_key_fingerprint = ?", fingerprint).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// CountByOperation counts call records for one operation type
func (r *CallRecordRepo) CountByOperation(operation string) (int64, error) {
	var count int64
	err := r.db.Model(&models.CallRecord{}).
		Where("operation = ?", operation).
		Count(&count).Error
	return count, err
}

// DeleteOlderThan prunes audit rows created before the cutoff
func (r *CallRecordRepo) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", cutoff).Delete(&models.CallRecord{})
	return result.RowsAffected, result.Error
}
