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

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/wso2/ethos-integration-service/api"
	"github.com/wso2/ethos-integration-service/config"
	"github.com/wso2/ethos-integration-service/db"
	dbmigrations "github.com/wso2/ethos-integration-service/db_migrations"
	"github.com/wso2/ethos-integration-service/server"
	"github.com/wso2/ethos-integration-service/signals"
	"github.com/wso2/ethos-integration-service/wiring"
)

func setupLogger(cfg *config.Config) {
	var level slog.Level
	switch cfg.LogLevel {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo // default to INFO
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	logger := slog.New(handler)
	slog.SetDefault(logger)

	slog.Info("Logger configured",
		"level", level.String())
}

func main() {
	cfg := config.GetConfig()

	setupLogger(cfg)

	if cfg.AutoMaxProcsEnabled {
		if _, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			// Convert printf-style format string to plain message for structured logging
			slog.Info(fmt.Sprintf(format, args...))
		})); err != nil {
			slog.Error("Failed to set maxprocs", "error", err)
			os.Exit(1)
		}
	}
	serverFlag := flag.Bool("server", true, "start the http server")
	migrateFlag := flag.Bool("migrate", false, "migrate the database")

	flag.Parse()

	gormDB, err := db.Connect(cfg)
	if err != nil {
		slog.Error("failed to connect to the database", "error", err)
		os.Exit(1)
	}

	if *migrateFlag {
		if err := dbmigrations.Migrate(gormDB); err != nil {
			slog.Error("error occurred while migrating", "error", err)
			os.Exit(1)
		}
	}

	if !*serverFlag {
		return
	}

	dependencies, err := wiring.InitializeAppParams(cfg, gormDB)
	if err != nil {
		slog.Error("failed to initialize app dependencies", "error", err)
		os.Exit(1)
	}

	// Sweep expired provider sessions in the background
	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	dependencies.SessionStore.StartCleanup(cleanupCtx,
		time.Duration(cfg.SessionStore.CleanupIntervalSeconds)*time.Second)

	handler := api.MakeHTTPHandler(dependencies)
	mainServer := &http.Server{
		Addr:           fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:        handler,
		ReadTimeout:    time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout:   time.Duration(cfg.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:    time.Duration(cfg.IdleTimeoutSeconds) * time.Second,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	var tlsServer *server.TLSServer
	if cfg.TLS.Enabled {
		tlsServer = server.NewTLSServer(cfg, handler)
	}

	stopCh := signals.SetupSignalHandler()

	// Setup graceful shutdown
	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		<-stopCh
		slog.Info("Shutdown signal received, stopping services...")
		cleanupCancel()

		if tlsServer != nil {
			tlsCtx, tlsCancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer tlsCancel()
			if err := tlsServer.Shutdown(tlsCtx); err != nil {
				slog.Error("HTTPS server forced shutdown after timeout", "error", err)
			}
		} else {
			mainCtx, mainCancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer mainCancel()
			if err := mainServer.Shutdown(mainCtx); err != nil {
				slog.Error("Server forced shutdown after timeout", "error", err)
			}
		}
		wg.Done()
	}()

	if tlsServer != nil {
		slog.Info("API server is running", "address", fmt.Sprintf("https://%s", mainServer.Addr))
		if err := tlsServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Failed to start HTTPS server", "error", err)
			os.Exit(1)
		}
	} else {
		slog.Info("API server is running", "address", mainServer.Addr)
		if err := mainServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}

	// Wait for graceful shutdown to complete
	wg.Wait()
	slog.Info("Server shut down successfully")
}
