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
	"encoding/json"
	"errors"
	"fmt"

	"treasury-ledger-go/internal/models"
	"treasury-ledger-go/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Compile-time check: *Tx must satisfy store.Tx.
var _ store.Tx = (*Tx)(nil)

// Tx is a single SQLite transaction carrying both treasury state and bank
// balances.
type Tx struct {
	tx *sql.Tx
}

func (t *Tx) GetConfig(ctx context.Context) (*models.TreasuryState, error) {
	var cfg models.TreasuryState
	var amountStr string
	err := t.tx.QueryRowContext(ctx, queryGetConfig).Scan(&cfg.Owner, &cfg.Denom, &cfg.Enabled, &amountStr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get config: %w", mapTxErr(err))
	}

	cfg.Amount, err = decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config amount '%s': %w", amountStr, err)
	}
	return &cfg, nil
}

func (t *Tx) PutConfig(ctx context.Context, cfg models.TreasuryState) error {
	_, err := t.tx.ExecContext(ctx, queryUpsertConfig, cfg.Owner, cfg.Denom, cfg.Enabled, cfg.Amount.String())
	if err != nil {
		return fmt.Errorf("failed to save config: %w", mapTxErr(err))
	}
	return nil
}

func (t *Tx) GetContractInfo(ctx context.Context) (*models.ContractInfo, error) {
	var info models.ContractInfo
	err := t.tx.QueryRowContext(ctx, queryGetContractInfo).Scan(&info.Contract, &info.Version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contract info: %w", mapTxErr(err))
	}
	return &info, nil
}

func (t *Tx) PutContractInfo(ctx context.Context, info models.ContractInfo) error {
	if _, err := t.tx.ExecContext(ctx, queryUpsertContractInfo, info.Contract, info.Version); err != nil {
		return fmt.Errorf("failed to save contract info: %w", mapTxErr(err))
	}
	return nil
}

func (t *Tx) GetHistory(ctx context.Context, address string) (decimal.Decimal, error) {
	var amountStr string
	err := t.tx.QueryRowContext(ctx, queryGetHistory, address).Scan(&amountStr)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, store.ErrNotFound
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get history: %w", mapTxErr(err))
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse history amount '%s': %w", amountStr, err)
	}
	return amount, nil
}

func (t *Tx) PutHistory(ctx context.Context, address string, amount decimal.Decimal) error {
	if _, err := t.tx.ExecContext(ctx, queryUpsertHistory, address, amount.String()); err != nil {
		return fmt.Errorf("failed to save history: %w", mapTxErr(err))
	}
	return nil
}

// ListHistory returns entries ordered by address. A non-positive limit
// returns every entry after startAfter.
func (t *Tx) ListHistory(ctx context.Context, startAfter string, limit int) ([]models.HistoryEntry, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := t.tx.QueryContext(ctx, queryListHistory, startAfter, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", mapTxErr(err))
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	entries := []models.HistoryEntry{}
	for rows.Next() {
		var entry models.HistoryEntry
		var amountStr string
		if err := rows.Scan(&entry.Address, &amountStr); err != nil {
			return nil, fmt.Errorf("failed to scan history: %w", err)
		}
		entry.Amount, err = decimal.NewFromString(amountStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse history amount '%s': %w", amountStr, err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history rows: %w", err)
	}
	return entries, nil
}

func (t *Tx) RecordEvent(ctx context.Context, event models.Event) error {
	attributes, err := json.Marshal(event.Attributes)
	if err != nil {
		return fmt.Errorf("failed to encode event attributes: %w", err)
	}

	_, err = t.tx.ExecContext(ctx, queryInsertEvent,
		event.Id, event.Type, event.Attr("action"), event.Attr("address"), string(attributes))
	if err != nil {
		return fmt.Errorf("failed to record event: %w", mapTxErr(err))
	}
	return nil
}

func (t *Tx) RecordCommand(ctx context.Context, cmd models.TransferCommand, status string) error {
	_, err := t.tx.ExecContext(ctx, queryInsertCommand, cmd.Id, cmd.ToAddress, cmd.Amount.String(), status)
	if err != nil {
		return fmt.Errorf("failed to record command: %w", mapTxErr(err))
	}
	return nil
}

// ListEvents returns up to limit journaled events, newest first.
func (t *Tx) ListEvents(ctx context.Context, limit int) ([]models.JournaledEvent, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := t.tx.QueryContext(ctx, queryListEvents, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", mapTxErr(err))
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var events []models.JournaledEvent
	for rows.Next() {
		var event models.JournaledEvent
		var attributes string
		if err := rows.Scan(&event.Id, &event.Type, &attributes, &event.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		if err := json.Unmarshal([]byte(attributes), &event.Attributes); err != nil {
			return nil, fmt.Errorf("failed to decode event attributes: %w", err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event rows: %w", err)
	}
	return events, nil
}

func (t *Tx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", mapTxErr(err))
	}
	return nil
}

func (t *Tx) Rollback() error {
	err := t.tx.Rollback()
	if err == nil || errors.Is(err, sql.ErrTxDone) {
		return nil
	}
	return fmt.Errorf("failed to roll back transaction: %w", err)
}

func mapTxErr(err error) error {
	if errors.Is(err, sql.ErrTxDone) {
		return store.ErrTxDone
	}
	return err
}
