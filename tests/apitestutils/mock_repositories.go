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
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wso2/ethos-integration-service/models"
)

// CallRecordRepoMock is an in-memory CallRecordRepository for API tests
type CallRecordRepoMock struct {
	mu      sync.Mutex
	records []*models.CallRecord
}

// NewCallRecordRepoMock creates an empty in-memory call record repository
func NewCallRecordRepoMock() *CallRecordRepoMock {
	return &CallRecordRepoMock{}
}

func (m *CallRecordRepoMock) Create(record *models.CallRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if record.UUID == uuid.Nil {
		record.UUID = uuid.New()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	m.records = append(m.records, record)
	return nil
}

func (m *CallRecordRepoMock) GetByUUID(recordID string) (*models.CallRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records {
		if r.UUID.String() == recordID {
			return r, nil
		}
	}
	return nil, nil
}

func (m *CallRecordRepoMock) ListByFingerprint(fingerprint string, limit int) ([]*models.CallRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.CallRecord
	for i := len(m.records) - 1; i >= 0; i-- {
		if m.records[i].APIKeyFingerprint == fingerprint {
			out = append(out, m.records[i])
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (m *CallRecordRepoMock) CountByOperation(operation string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, r := range m.records {
		if r.Operation == operation {
			count++
		}
	}
	return count, nil
}

func (m *CallRecordRepoMock) DeleteOlderThan(cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var kept []*models.CallRecord
	var deleted int64
	for _, r := range m.records {
		if r.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, r)
	}
	m.records = kept
	return deleted, nil
}

// Records returns a snapshot of everything written so far
func (m *CallRecordRepoMock) Records() []*models.CallRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*models.CallRecord(nil), m.records...)
}
