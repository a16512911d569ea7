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
	"errors"
	"fmt"
	"time"

	"treasury-ledger-go/internal/bank"
	"treasury-ledger-go/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Compile-time check: *Tx must satisfy bank.Bank.
var _ bank.Bank = (*Tx)(nil)

var ErrConcurrentModification = errors.New("concurrent modification detected")

// Transfer leg types recorded in bank_transfers
const (
	TransferTypeMint    = "mint"
	TransferTypeSend    = "send"
	TransferTypeReceive = "receive"
)

func (s *Service) initBankSchema() error {
	schema := `
	-- Native balances (current state - hot data)
	CREATE TABLE IF NOT EXISTS bank_balances (
		id TEXT PRIMARY KEY,
		address TEXT NOT NULL,
		denom TEXT NOT NULL,
		balance TEXT NOT NULL DEFAULT '0',
		last_transfer_id TEXT NOT NULL DEFAULT '',
		version INTEGER NOT NULL DEFAULT 1,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(address, denom)
	);

	-- Transfer legs (audit trail - cold data)
	CREATE TABLE IF NOT EXISTS bank_transfers (
		id TEXT PRIMARY KEY,
		address TEXT NOT NULL,
		denom TEXT NOT NULL,
		transfer_type TEXT NOT NULL,
		amount TEXT NOT NULL,
		balance_before TEXT NOT NULL,
		balance_after TEXT NOT NULL,
		counterparty TEXT,
		reference TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_bank_transfers_address_denom ON bank_transfers(address, denom);
	CREATE INDEX IF NOT EXISTS idx_bank_transfers_reference ON bank_transfers(reference);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Balance returns the native balance held by address (O(1) lookup)
func (t *Tx) Balance(ctx context.Context, address, denom string) (decimal.Decimal, error) {
	var balanceStr string
	err := t.tx.QueryRowContext(ctx, queryGetBalance, address, denom).Scan(&balanceStr)
	if errors.Is(err, sql.ErrNoRows) {
		// No balance record means zero balance
		return decimal.Zero, nil
	}
	if err != nil {
		zap.L().Error("Failed to get balance", zap.String("address", address), zap.String("denom", denom), zap.Error(err))
		return decimal.Zero, fmt.Errorf("failed to get balance: %w", mapTxErr(err))
	}

	balance, err := decimal.NewFromString(balanceStr)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse balance '%s': %w", balanceStr, err)
	}
	return balance, nil
}

// Transfer moves every coin of cmd from one address to cmd.ToAddress. All
// coins are checked before any balance changes.
func (t *Tx) Transfer(ctx context.Context, from string, cmd models.TransferCommand) error {
	zap.L().Info("Processing bank transfer",
		zap.String("from", from),
		zap.String("to", cmd.ToAddress),
		zap.String("amount", cmd.Amount.String()),
		zap.String("reference", cmd.Id))

	needed := make(map[string]decimal.Decimal)
	for _, coin := range cmd.Amount {
		if coin.Amount.IsNegative() || !coin.Amount.IsInteger() {
			return fmt.Errorf("%w: %s", bank.ErrInvalidAmount, coin.String())
		}
		needed[coin.Denom] = needed[coin.Denom].Add(coin.Amount)
	}
	for denom, amount := range needed {
		if amount.IsZero() {
			continue
		}
		balance, err := t.Balance(ctx, from, denom)
		if err != nil {
			return err
		}
		if balance.LessThan(amount) {
			return fmt.Errorf("%w: %s has %s%s, needs %s%s", bank.ErrInsufficientFunds, from, balance.String(), denom, amount.String(), denom)
		}
	}

	for _, coin := range cmd.Amount {
		if coin.Amount.IsZero() {
			continue
		}
		if _, err := t.adjust(ctx, adjustParams{
			Address:      from,
			Denom:        coin.Denom,
			TransferType: TransferTypeSend,
			Amount:       coin.Amount.Neg(),
			Counterparty: cmd.ToAddress,
			Reference:    cmd.Id,
		}); err != nil {
			return err
		}
		if _, err := t.adjust(ctx, adjustParams{
			Address:      cmd.ToAddress,
			Denom:        coin.Denom,
			TransferType: TransferTypeReceive,
			Amount:       coin.Amount,
			Counterparty: from,
			Reference:    cmd.Id,
		}); err != nil {
			return err
		}
	}
	return nil
}

// Mint credits coins to address out of thin air. Used to seed genesis balances.
func (t *Tx) Mint(ctx context.Context, address string, coins models.Coins) error {
	for _, coin := range coins {
		if !coin.Amount.IsPositive() || !coin.Amount.IsInteger() {
			return fmt.Errorf("%w: %s", bank.ErrInvalidAmount, coin.String())
		}
		if _, err := t.adjust(ctx, adjustParams{
			Address:      address,
			Denom:        coin.Denom,
			TransferType: TransferTypeMint,
			Amount:       coin.Amount,
			Reference:    "genesis",
		}); err != nil {
			return err
		}
	}
	return nil
}

// GetAllBalances returns all non-zero balances for an address
func (t *Tx) GetAllBalances(ctx context.Context, address string) ([]models.BankBalance, error) {
	rows, err := t.tx.QueryContext(ctx, queryGetAllBalances, address)
	if err != nil {
		return nil, fmt.Errorf("failed to get all balances: %w", mapTxErr(err))
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var balances []models.BankBalance
	for rows.Next() {
		var balance models.BankBalance
		var balanceStr string
		err := rows.Scan(&balance.Id, &balance.Address, &balance.Denom, &balanceStr,
			&balance.LastTransferId, &balance.Version, &balance.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan balance: %w", err)
		}

		balance.Balance, err = decimal.NewFromString(balanceStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse balance '%s': %w", balanceStr, err)
		}
		balances = append(balances, balance)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating balance rows: %w", err)
	}
	return balances, nil
}

// ReconcileBalance verifies that the current balance matches the sum of all
// transfer legs for address/denom.
func (t *Tx) ReconcileBalance(ctx context.Context, address, denom string) error {
	currentBalance, err := t.Balance(ctx, address, denom)
	if err != nil {
		return fmt.Errorf("failed to get current balance: %w", err)
	}

	rows, err := t.tx.QueryContext(ctx, queryGetTransferAmounts, address, denom)
	if err != nil {
		return fmt.Errorf("failed to load transfers: %w", mapTxErr(err))
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	// Amounts are TEXT, so sum in Go to keep exact decimal arithmetic
	calculatedBalance := decimal.Zero
	for rows.Next() {
		var amountStr string
		if err := rows.Scan(&amountStr); err != nil {
			return fmt.Errorf("failed to scan transfer amount: %w", err)
		}
		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return fmt.Errorf("failed to parse transfer amount '%s': %w", amountStr, err)
		}
		calculatedBalance = calculatedBalance.Add(amount)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating transfer rows: %w", err)
	}

	if !currentBalance.Equal(calculatedBalance) {
		zap.L().Error("Balance reconciliation failed",
			zap.String("address", address),
			zap.String("denom", denom),
			zap.String("current_balance", currentBalance.String()),
			zap.String("calculated_balance", calculatedBalance.String()),
			zap.String("difference", currentBalance.Sub(calculatedBalance).String()))
		return fmt.Errorf("balance mismatch: current=%s, calculated=%s", currentBalance.String(), calculatedBalance.String())
	}

	zap.L().Debug("Balance reconciliation successful",
		zap.String("address", address),
		zap.String("denom", denom),
		zap.String("balance", currentBalance.String()))
	return nil
}

type adjustParams struct {
	Address      string
	Denom        string
	TransferType string
	Amount       decimal.Decimal // signed
	Counterparty string
	Reference    string
}

// adjust applies a signed amount to one balance and journals the leg.
func (t *Tx) adjust(ctx context.Context, params adjustParams) (*models.BankTransfer, error) {
	var currentBalanceStr string
	var accountId string
	var version int64

	err := t.tx.QueryRowContext(ctx, queryGetAccountBalance, params.Address, params.Denom).Scan(&accountId, &currentBalanceStr, &version)

	var currentBalance decimal.Decimal
	if errors.Is(err, sql.ErrNoRows) {
		accountId = uuid.New().String()
		currentBalance = decimal.Zero
		version = 1

		_, err = t.tx.ExecContext(ctx, queryInsertAccountBalance, accountId, params.Address, params.Denom, "0", 1)
		if err != nil {
			return nil, fmt.Errorf("failed to create account balance: %w", mapTxErr(err))
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to get current balance: %w", mapTxErr(err))
	} else {
		currentBalance, err = decimal.NewFromString(currentBalanceStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse current balance '%s': %w", currentBalanceStr, err)
		}
	}

	newBalance := currentBalance.Add(params.Amount)
	if newBalance.IsNegative() {
		return nil, fmt.Errorf("%w: %s would go to %s%s", bank.ErrInsufficientFunds, params.Address, newBalance.String(), params.Denom)
	}

	transfer := &models.BankTransfer{
		Id:            uuid.New().String(),
		Address:       params.Address,
		Denom:         params.Denom,
		TransferType:  params.TransferType,
		Amount:        params.Amount,
		BalanceBefore: currentBalance,
		BalanceAfter:  newBalance,
		Counterparty:  params.Counterparty,
		Reference:     params.Reference,
		CreatedAt:     time.Now(),
	}

	_, err = t.tx.ExecContext(ctx, queryInsertTransfer,
		transfer.Id, transfer.Address, transfer.Denom, transfer.TransferType,
		transfer.Amount.String(), transfer.BalanceBefore.String(), transfer.BalanceAfter.String(),
		transfer.Counterparty, transfer.Reference, transfer.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert transfer: %w", mapTxErr(err))
	}

	// Optimistic locking on the balance row
	result, err := t.tx.ExecContext(ctx, queryUpdateAccountBalance, newBalance.String(), transfer.Id, params.Address, params.Denom, version)
	if err != nil {
		return nil, fmt.Errorf("failed to update balance: %w", mapTxErr(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, fmt.Errorf("balance update failed - %w", ErrConcurrentModification)
	}

	zap.L().Debug("Bank balance adjusted",
		zap.String("transfer_id", transfer.Id),
		zap.String("address", params.Address),
		zap.String("denom", params.Denom),
		zap.String("old_balance", currentBalance.String()),
		zap.String("new_balance", newBalance.String()))
	return transfer, nil
}
