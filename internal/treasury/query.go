package treasury

import (
	"context"
	"fmt"

	"treasury-ledger-go/internal/models"

	"github.com/shopspring/decimal"
)

const (
	defaultHistoriesLimit = 30
	maxHistoriesLimit     = 100
)

// QueryConfig reports the configuration together with the live balance of
// the contract, queried fresh. It never reports the lifetime counter.
func (c *Contract) QueryConfig(ctx context.Context, deps Deps, env models.Env) (*models.ConfigResponse, error) {
	cfg, err := NewConfigStore(deps.Storage).Load(ctx)
	if err != nil {
		return nil, err
	}

	balance, err := deps.Querier.Balance(ctx, env.ContractAddress, cfg.Denom)
	if err != nil {
		return nil, fmt.Errorf("failed to query contract balance: %w", err)
	}

	return &models.ConfigResponse{
		Owner:   cfg.Owner,
		Denom:   cfg.Denom,
		Enabled: cfg.Enabled,
		Amount:  balance,
	}, nil
}

// QueryHistory returns the lifetime deposits of address, or ErrHistoryNotFound.
func (c *Contract) QueryHistory(ctx context.Context, deps Deps, address string) (decimal.Decimal, error) {
	if err := c.validate(address); err != nil {
		return decimal.Zero, err
	}
	return NewHistoryLedger(deps.Storage).Get(ctx, address)
}

// QueryHistories pages through all depositors ordered by address.
func (c *Contract) QueryHistories(ctx context.Context, deps Deps, startAfter string, limit int) (*models.HistoriesResponse, error) {
	if limit <= 0 {
		limit = defaultHistoriesLimit
	}
	if limit > maxHistoriesLimit {
		limit = maxHistoriesLimit
	}

	entries, err := NewHistoryLedger(deps.Storage).List(ctx, startAfter, limit)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []models.HistoryEntry{}
	}
	return &models.HistoriesResponse{Entries: entries}, nil
}

func (c *Contract) QueryContractInfo(ctx context.Context, deps Deps) (*models.ContractInfo, error) {
	info, err := deps.Storage.GetContractInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load contract info: %w", err)
	}
	return info, nil
}
