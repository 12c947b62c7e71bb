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

// Package db owns the PostgreSQL connection used by the repositories.
package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/wso2/ethos-integration-service/config"
)

// Connect opens a gorm connection using the configured PostgreSQL settings
// and applies the connection pool limits.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	pg := cfg.POSTGRESQL
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		pg.Host, pg.Port, pg.User, pg.Password, pg.DBName)

	gormLogger := gormlogger.New(
		log.New(os.Stdout, "", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Duration(pg.SlowThresholdMilliseconds) * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: pg.SkipDefaultTransaction,
		Logger:                 gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access underlying sql.DB: %w", err)
	}

	if pg.MaxIdleCount != nil {
		sqlDB.SetMaxIdleConns(int(*pg.MaxIdleCount))
	}
	if pg.MaxOpenCount != nil {
		sqlDB.SetMaxOpenConns(int(*pg.MaxOpenCount))
	}
	if pg.MaxLifetimeSeconds != nil {
		sqlDB.SetConnMaxLifetime(time.Duration(*pg.MaxLifetimeSeconds) * time.Second)
	}
	if pg.MaxIdleTimeSeconds != nil {
		sqlDB.SetConnMaxIdleTime(time.Duration(*pg.MaxIdleTimeSeconds) * time.Second)
	}

	return gormDB, nil
}
