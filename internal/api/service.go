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

package api

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"treasury-ledger-go/internal/bank"
	"treasury-ledger-go/internal/models"
	"treasury-ledger-go/internal/store"
	"treasury-ledger-go/internal/treasury"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var ErrBankNotTxScoped = errors.New("storage transaction does not carry a bank")

// BankBinding tells the host which bank an operation sees. A tx-scoped bank
// moves funds inside the storage transaction, so a rollback undoes them; a
// shared bank is compensated with reverse transfers instead.
type BankBinding struct {
	resolve  func(tx store.Tx) (bank.Bank, error)
	txScoped bool
}

// TxScopedBank binds the bank carried by the storage transaction itself,
// as the SQLite backend does.
func TxScopedBank() BankBinding {
	return BankBinding{
		resolve: func(tx store.Tx) (bank.Bank, error) {
			b, ok := tx.(bank.Bank)
			if !ok {
				return nil, ErrBankNotTxScoped
			}
			return b, nil
		},
		txScoped: true,
	}
}

// SharedBank binds a bank living outside the storage transaction.
func SharedBank(b bank.Bank) BankBinding {
	return BankBinding{
		resolve: func(store.Tx) (bank.Bank, error) { return b, nil },
	}
}

// Options configure the host.
type Options struct {
	ContractAddress string
	// WrapSettler, when set, decorates the bank used to pay out transfer
	// commands, e.g. to route withdrawals through Prime.
	WrapSettler func(base bank.Settler) bank.Settler
}

// TreasuryService hosts the treasury contract: it opens a transaction per
// call, moves attached funds, dispatches the message, settles the returned
// transfer commands and commits. Calls are serialized.
type TreasuryService struct {
	mu       sync.Mutex
	contract *treasury.Contract
	backend  store.Backend
	bank     BankBinding
	opts     Options
}

func NewTreasuryService(contract *treasury.Contract, backend store.Backend, binding BankBinding, opts Options) (*TreasuryService, error) {
	if opts.ContractAddress == "" {
		return nil, fmt.Errorf("contract address cannot be empty")
	}
	if err := treasury.ValidateAddress(opts.ContractAddress, contract.Options().AddressPrefix); err != nil {
		return nil, fmt.Errorf("invalid contract address: %w", err)
	}
	return &TreasuryService{
		contract: contract,
		backend:  backend,
		bank:     binding,
		opts:     opts,
	}, nil
}

// ContractAddress returns the address holding the treasury's funds.
func (s *TreasuryService) ContractAddress() string {
	return s.opts.ContractAddress
}

func (s *TreasuryService) HealthCheck(ctx context.Context) error {
	tx, err := s.backend.Begin(ctx)
	if err != nil {
		return fmt.Errorf("storage health check failed: %w", err)
	}
	return tx.Rollback()
}

type handlerFunc func(deps treasury.Deps, env models.Env) (*models.Response, error)

// completedTransfer is a funds movement that must be reversed if the
// operation fails against a shared bank.
type completedTransfer struct {
	from string
	cmd  models.TransferCommand
}

// run executes one atomic operation.
func (s *TreasuryService) run(ctx context.Context, action string, info models.MessageInfo, handler handlerFunc) (*models.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.backend.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin operation: %w", err)
	}

	b, err := s.bank.resolve(tx)
	if err != nil {
		s.rollback(tx, action)
		return nil, err
	}

	var completed []completedTransfer
	fail := func(cause error) error {
		s.rollback(tx, action)
		if s.bank.txScoped {
			return cause
		}
		return multierr.Append(cause, s.compensate(ctx, b, completed))
	}

	env := models.Env{ContractAddress: s.opts.ContractAddress, BlockTime: time.Now().UTC()}

	for _, c := range info.Funds {
		if !c.Amount.IsInteger() || c.Amount.IsNegative() {
			s.rollback(tx, action)
			return nil, fmt.Errorf("%w: attached %s", bank.ErrInvalidAmount, c.String())
		}
	}
	// Attached funds land in the contract before the handler runs
	if !info.Funds.IsZero() {
		cmd := models.TransferCommand{Id: uuid.New().String(), ToAddress: env.ContractAddress, Amount: info.Funds}
		if err := b.Transfer(ctx, info.Sender, cmd); err != nil {
			return nil, fail(fmt.Errorf("failed to transfer attached funds: %w", err))
		}
		completed = append(completed, completedTransfer{from: info.Sender, cmd: cmd})
	}

	resp, err := handler(treasury.Deps{Storage: tx, Querier: b}, env)
	if err != nil {
		zap.L().Info("Operation rejected",
			zap.String("action", action),
			zap.String("sender", info.Sender),
			zap.Error(err))
		return nil, fail(err)
	}

	for _, cmd := range resp.Messages {
		if err := tx.RecordCommand(ctx, cmd, store.CommandStatusSettled); err != nil {
			return nil, fail(err)
		}
	}
	for _, event := range resp.Events {
		if err := tx.RecordEvent(ctx, event); err != nil {
			return nil, fail(err)
		}
	}

	// Settle last; an external payout cannot be rolled back.
	var settler bank.Settler = b
	if s.opts.WrapSettler != nil {
		settler = s.opts.WrapSettler(b)
	}
	for _, cmd := range resp.Messages {
		if err := settler.Transfer(ctx, env.ContractAddress, cmd); err != nil {
			return nil, fail(fmt.Errorf("failed to settle transfer %s: %w", cmd.Id, err))
		}
		completed = append(completed, completedTransfer{from: env.ContractAddress, cmd: cmd})
	}

	if err := tx.Commit(); err != nil {
		return nil, fail(err)
	}

	zap.L().Info("Operation committed",
		zap.String("action", action),
		zap.String("sender", info.Sender),
		zap.String("funds", info.Funds.String()),
		zap.Int("messages", len(resp.Messages)),
		zap.Int("events", len(resp.Events)))
	return resp, nil
}

func (s *TreasuryService) rollback(tx store.Tx, action string) {
	if err := tx.Rollback(); err != nil {
		zap.L().Warn("Failed to roll back operation", zap.String("action", action), zap.Error(err))
	}
}

// compensate reverses completed transfers newest first.
func (s *TreasuryService) compensate(ctx context.Context, b bank.Bank, completed []completedTransfer) error {
	var errs error
	for i := len(completed) - 1; i >= 0; i-- {
		leg := completed[i]
		reverse := models.TransferCommand{Id: uuid.New().String(), ToAddress: leg.from, Amount: leg.cmd.Amount}
		if err := b.Transfer(ctx, leg.cmd.ToAddress, reverse); err != nil {
			zap.L().Error("Failed to compensate transfer",
				zap.String("transfer_id", leg.cmd.Id),
				zap.String("from", leg.from),
				zap.String("to", leg.cmd.ToAddress),
				zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("failed to compensate transfer %s: %w", leg.cmd.Id, err))
			continue
		}
		zap.L().Warn("Transfer compensated",
			zap.String("transfer_id", leg.cmd.Id),
			zap.String("reversal_id", reverse.Id))
	}
	return errs
}
