/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

import (
	"context"
	"database/sql"
	"fmt"

	"treasury-ledger-go/internal/models"
	"treasury-ledger-go/internal/store"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// Compile-time check: *Service must satisfy store.Backend.
var _ store.Backend = (*Service)(nil)

type Service struct {
	db *sql.DB
}

func NewService(ctx context.Context, cfg models.DatabaseConfig) (*Service, error) {
	// Validate configuration
	if cfg.Path == "" {
		return nil, fmt.Errorf("database path cannot be empty")
	}
	if cfg.MaxOpenConns <= 0 {
		return nil, fmt.Errorf("max open connections must be positive, got %d", cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns < 0 {
		return nil, fmt.Errorf("max idle connections cannot be negative, got %d", cfg.MaxIdleConns)
	}
	if cfg.PingTimeout <= 0 {
		return nil, fmt.Errorf("ping timeout must be positive, got %v", cfg.PingTimeout)
	}

	zap.L().Info("Opening SQLite database", zap.String("file", cfg.Path))
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			zap.L().Warn("Failed to close database after ping failure", zap.Error(closeErr))
		}
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	service := newServiceFromDB(db)
	if err := service.initSchema(); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			zap.L().Warn("Failed to close database after schema failure", zap.Error(closeErr))
		}
		return nil, fmt.Errorf("unable to initialize schema: %w", err)
	}

	zap.L().Info("Database service initialized successfully")
	return service, nil
}

func newServiceFromDB(db *sql.DB) *Service {
	return &Service{db: db}
}

func (s *Service) Close() {
	if err := s.db.Close(); err != nil {
		zap.L().Warn("Failed to close database connection", zap.Error(err))
	}
}

// Begin starts an atomic operation. The returned Tx also acts as the bank,
// so funds movements commit or roll back together with treasury state.
func (s *Service) Begin(ctx context.Context) (store.Tx, error) {
	tx, err := s.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

func (s *Service) BeginTx(ctx context.Context) (*Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &Tx{tx: tx}, nil
}

// Ping checks that the database is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Service) initSchema() error {
	schema := `
	-- Treasury singleton, stored under the fixed key 'config'
	CREATE TABLE IF NOT EXISTS config (
		key TEXT PRIMARY KEY CHECK (key = 'config'),
		owner TEXT NOT NULL,
		denom TEXT NOT NULL,
		enabled BOOLEAN NOT NULL DEFAULT 1,
		amount TEXT NOT NULL DEFAULT '0',
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	-- Contract name/version tag checked on migration
	CREATE TABLE IF NOT EXISTS contract_info (
		key TEXT PRIMARY KEY CHECK (key = 'contract_info'),
		contract TEXT NOT NULL,
		version TEXT NOT NULL
	);

	-- Per-depositor lifetime deposits
	CREATE TABLE IF NOT EXISTS history (
		address TEXT PRIMARY KEY,
		amount TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	-- Emitted events (audit trail)
	CREATE TABLE IF NOT EXISTS events (
		id TEXT PRIMARY KEY,
		type TEXT NOT NULL,
		action TEXT NOT NULL,
		address TEXT,
		attributes TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_events_action ON events(action);
	CREATE INDEX IF NOT EXISTS idx_events_address ON events(address);

	-- Transfer commands handed to settlement
	CREATE TABLE IF NOT EXISTS outbox (
		id TEXT PRIMARY KEY,
		to_address TEXT NOT NULL,
		amount TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return err
	}
	return s.initBankSchema()
}

// view runs fn in a transaction that is always rolled back.
func (s *Service) view(ctx context.Context, fn func(tx *Tx) error) error {
	tx, err := s.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := tx.Rollback(); err != nil {
			zap.L().Warn("Failed to roll back read transaction", zap.Error(err))
		}
	}()
	return fn(tx)
}

// RecentEvents returns up to limit journaled events, newest first.
func (s *Service) RecentEvents(ctx context.Context, limit int) ([]models.JournaledEvent, error) {
	var events []models.JournaledEvent
	err := s.view(ctx, func(tx *Tx) error {
		var err error
		events, err = tx.ListEvents(ctx, limit)
		return err
	})
	return events, err
}

// Balances returns every non-zero bank balance held by address.
func (s *Service) Balances(ctx context.Context, address string) ([]models.BankBalance, error) {
	var balances []models.BankBalance
	err := s.view(ctx, func(tx *Tx) error {
		var err error
		balances, err = tx.GetAllBalances(ctx, address)
		return err
	})
	return balances, err
}

// Reconcile checks address/denom's bank balance against its transfer journal.
func (s *Service) Reconcile(ctx context.Context, address, denom string) error {
	return s.view(ctx, func(tx *Tx) error {
		return tx.ReconcileBalance(ctx, address, denom)
	})
}
