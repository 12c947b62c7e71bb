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

package config

// Config holds all configuration for the application
type Config struct {
	PackageVersion      string
	ServerHost          string
	ServerPort          int
	AuthHeader          string
	AutoMaxProcsEnabled bool
	LogLevel            string
	POSTGRESQL          POSTGRESQL
	// HTTP Server timeout configurations
	ReadTimeoutSeconds  int
	WriteTimeoutSeconds int
	IdleTimeoutSeconds  int
	MaxHeaderBytes      int
	// Database operation timeout configuration
	DbOperationTimeoutSeconds int
	HealthCheckTimeoutSeconds int

	// CORSAllowedOrigin is the single allowed origin for CORS; use "*" to allow all
	CORSAllowedOrigin string

	// Ethos provider configuration
	Ethos EthosConfig

	// Session store configuration
	SessionStore SessionStoreConfig

	KeyManagerConfigurations KeyManagerConfigurations

	// TLS listener configuration
	TLS TLSConfig

	IsLocalDevEnv bool
}

// EthosConfig holds Ethos Integration provider configuration
type EthosConfig struct {
	// BaseURL is the Ethos integration root URL. It may be left empty and
	// supplied per request via rootOverride.
	BaseURL string
	// AllowlistPath points to a YAML file listing the resources this proxy
	// may touch. Empty means no restriction.
	AllowlistPath string
	// Retry configuration for provider calls
	RetryWaitMinSeconds  int
	RetryWaitMaxSeconds  int
	RetryAttemptsMax     int
	AttemptTimeoutSecond int
}

// SessionStoreConfig holds the in-memory session store configuration
type SessionStoreConfig struct {
	// TTLSeconds is how long an idle session is kept before eviction
	TTLSeconds int64
	// CleanupIntervalSeconds is how often expired sessions are swept
	CleanupIntervalSeconds int64
}

type KeyManagerConfigurations struct {
	Issuer        []string
	Audience      []string
	JWKSUrl       string
	DefaultIssuer string // Default issuer allowed to skip JWKS signature validation
}

// TLSConfig holds the optional TLS listener configuration
type TLSConfig struct {
	Enabled bool
	// CertDir is where the self-signed certificate pair is generated when
	// no cert and key files are provided
	CertDir  string
	CertFile string
	KeyFile  string
}

type POSTGRESQL struct {
	Host     string
	Port     int
	User     string
	DBName   string
	Password string `json:"-"`
	DbConfigs
}

type DbConfigs struct {
	// gorm configs
	SlowThresholdMilliseconds int64
	SkipDefaultTransaction    bool

	// go sql configs
	MaxIdleCount       *int64 // zero means defaultMaxIdleConns (2); negative means 0
	MaxOpenCount       *int64 // <= 0 means unlimited
	MaxLifetimeSeconds *int64 // maximum amount of time a connection may be reused
	MaxIdleTimeSeconds *int64
}
