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
	"encoding/json"
	"fmt"
	"sort"

	"treasury-ledger-go/internal/models"
	"treasury-ledger-go/internal/treasury"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// view runs a read-only call against a transaction that is always rolled back.
func (s *TreasuryService) view(ctx context.Context, fn func(deps treasury.Deps) error) error {
	tx, err := s.backend.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin query: %w", err)
	}
	defer s.rollback(tx, "query")

	b, err := s.bank.resolve(tx)
	if err != nil {
		return err
	}
	return fn(treasury.Deps{Storage: tx, Querier: b})
}

func (s *TreasuryService) env() models.Env {
	return models.Env{ContractAddress: s.opts.ContractAddress}
}

func (s *TreasuryService) Config(ctx context.Context) (*models.ConfigResponse, error) {
	var resp *models.ConfigResponse
	err := s.view(ctx, func(deps treasury.Deps) error {
		var err error
		resp, err = s.contract.QueryConfig(ctx, deps, s.env())
		return err
	})
	return resp, err
}

func (s *TreasuryService) History(ctx context.Context, address string) (decimal.Decimal, error) {
	var amount decimal.Decimal
	err := s.view(ctx, func(deps treasury.Deps) error {
		var err error
		amount, err = s.contract.QueryHistory(ctx, deps, address)
		return err
	})
	return amount, err
}

func (s *TreasuryService) Histories(ctx context.Context, startAfter string, limit int) (*models.HistoriesResponse, error) {
	var resp *models.HistoriesResponse
	err := s.view(ctx, func(deps treasury.Deps) error {
		var err error
		resp, err = s.contract.QueryHistories(ctx, deps, startAfter, limit)
		return err
	})
	return resp, err
}

func (s *TreasuryService) ContractInfo(ctx context.Context) (*models.ContractInfo, error) {
	var info *models.ContractInfo
	err := s.view(ctx, func(deps treasury.Deps) error {
		var err error
		info, err = s.contract.QueryContractInfo(ctx, deps)
		return err
	})
	return info, err
}

// Balance reports the live bank balance of any address.
func (s *TreasuryService) Balance(ctx context.Context, address, denom string) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := s.view(ctx, func(deps treasury.Deps) error {
		var err error
		balance, err = deps.Querier.Balance(ctx, address, denom)
		return err
	})
	return balance, err
}

// Query dispatches a decoded query message and returns its JSON answer.
func (s *TreasuryService) Query(ctx context.Context, msg *models.QueryMsg) ([]byte, error) {
	var result any
	var err error

	switch {
	case msg.Config != nil:
		result, err = s.Config(ctx)
	case msg.History != nil:
		var amount decimal.Decimal
		amount, err = s.History(ctx, msg.History.Address)
		result = models.HistoryEntry{Address: msg.History.Address, Amount: amount}
	case msg.Histories != nil:
		result, err = s.Histories(ctx, msg.Histories.StartAfter, msg.Histories.Limit)
	case msg.ContractInfo != nil:
		result, err = s.ContractInfo(ctx)
	default:
		return nil, fmt.Errorf("empty query msg")
	}
	if err != nil {
		return nil, err
	}

	out, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode query result: %w", err)
	}
	return out, nil
}

// QueryJSON decodes a JSON query envelope such as {"config":{}} and answers it.
func (s *TreasuryService) QueryJSON(ctx context.Context, raw []byte) ([]byte, error) {
	msg, err := models.ParseQueryMsg(raw)
	if err != nil {
		return nil, err
	}
	return s.Query(ctx, msg)
}

type minter interface {
	Mint(ctx context.Context, address string, coins models.Coins) error
}

// Seed mints genesis balances in one operation. The bank must support minting.
func (s *TreasuryService) Seed(ctx context.Context, balances map[string]models.Coins) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.backend.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin seed: %w", err)
	}
	defer s.rollback(tx, "seed")

	b, err := s.bank.resolve(tx)
	if err != nil {
		return err
	}
	m, ok := b.(minter)
	if !ok {
		return fmt.Errorf("bank backend %T cannot mint genesis balances", b)
	}

	addresses := make([]string, 0, len(balances))
	for addr := range balances {
		addresses = append(addresses, addr)
	}
	sort.Strings(addresses)

	for _, addr := range addresses {
		if err := treasury.ValidateAddress(addr, s.contract.Options().AddressPrefix); err != nil {
			return err
		}
		if err := m.Mint(ctx, addr, balances[addr]); err != nil {
			return fmt.Errorf("failed to mint %s to %s: %w", balances[addr].String(), addr, err)
		}
		zap.L().Info("Genesis balance minted",
			zap.String("address", addr),
			zap.String("coins", balances[addr].String()))
	}

	return tx.Commit()
}
