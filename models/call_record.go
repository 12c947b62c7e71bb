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

package models

import (
	"time"

	"github.com/google/uuid"
)

// Provider operation names recorded in call audit rows
const (
	OperationToken   = "token"
	OperationGet     = "get"
	OperationPost    = "post"
	OperationGraphQL = "graphql"
)

// CallRecord is an audit row for one proxied provider call.
type CallRecord struct {
	UUID uuid.UUID `gorm:"column:uuid;primaryKey" json:"id"`
	// APIKeyFingerprint is a SHA-256 digest of the API key used for the
	// call. Raw keys are never persisted.
	APIKeyFingerprint string    `gorm:"column:api_key_fingerprint" json:"apiKeyFingerprint"`
	Operation         string    `gorm:"column:operation" json:"operation"`
	Resource          string    `gorm:"column:resource" json:"resource,omitempty"`
	ProviderStatus    int       `gorm:"column:provider_status" json:"providerStatus"`
	Succeeded         bool      `gorm:"column:succeeded" json:"succeeded"`
	DurationMs        int64     `gorm:"column:duration_ms" json:"durationMs"`
	CorrelationID     string    `gorm:"column:correlation_id" json:"correlationId"`
	CreatedAt         time.Time `gorm:"column:created_at" json:"createdAt"`
}

// TableName returns the table name for the CallRecord model
func (CallRecord) TableName() string {
	return "call_records"
}

// AuditStats reports call record totals per provider operation
type AuditStats struct {
	Token   int64 `json:"token"`
	Get     int64 `json:"get"`
	Post    int64 `json:"post"`
	GraphQL int64 `json:"graphql"`
}

// PruneResult reports how many audit rows a prune removed
type PruneResult struct {
	Deleted int64 `json:"deleted"`
}
