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

// Package dbmigrations holds raw-SQL schema migrations, applied in order by
// gormigrate and tracked in the migrations table.
package dbmigrations

import (
	"fmt"
	"log/slog"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// migration is one schema change. IDs are applied in ascending order.
type migration struct {
	ID      int64
	Migrate func(db *gorm.DB) error
}

var migrations = []migration{
	migration001,
}

// Migrate applies all pending migrations.
func Migrate(db *gorm.DB) error {
	gormMigrations := make([]*gormigrate.Migration, 0, len(migrations))
	for _, m := range migrations {
		gormMigrations = append(gormMigrations, &gormigrate.Migration{
			ID:      fmt.Sprintf("%03d", m.ID),
			Migrate: m.Migrate,
		})
	}

	migrator := gormigrate.New(db, gormigrate.DefaultOptions, gormMigrations)
	if err := migrator.Migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Info("db migrations applied", slog.Int("count", len(migrations)))
	return nil
}

func runSQL(tx *gorm.DB, sql string) error {
	if err := tx.Exec(sql).Error; err != nil {
		return fmt.Errorf("failed to execute migration sql: %w", err)
	}
	return nil
}
