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

package dbmigrations

import (
	"gorm.io/gorm"
)

// Create call_records table auditing every proxied provider call
var migration001 = migration{
	ID: 1,
	Migrate: func(db *gorm.DB) error {
		createCallRecordsSQL := `
			CREATE TABLE call_records (
				uuid UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				api_key_fingerprint VARCHAR(64) NOT NULL,
				operation VARCHAR(20) NOT NULL,
				resource VARCHAR(100),
				provider_status INTEGER NOT NULL DEFAULT 0,
				succeeded BOOLEAN NOT NULL DEFAULT FALSE,
				duration_ms BIGINT NOT NULL DEFAULT 0,
				correlation_id VARCHAR(64),
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,

				CONSTRAINT chk_call_record_operation
					CHECK (operation IN ('token', 'get', 'post', 'graphql'))
			);

			CREATE INDEX idx_call_records_fingerprint ON call_records(api_key_fingerprint);
			CREATE INDEX idx_call_records_operation ON call_records(operation);
			CREATE INDEX idx_call_records_created ON call_records(created_at);
			CREATE INDEX idx_call_records_correlation ON call_records(correlation_id);
		`
		return db.Transaction(func(tx *gorm.DB) error {
			return runSQL(tx, createCallRecordsSQL)
		})
	},
}
