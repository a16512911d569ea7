package treasury

import (
	"context"
	"errors"
	"fmt"

	"treasury-ledger-go/internal/models"
	"treasury-ledger-go/internal/store"

	"github.com/shopspring/decimal"
)

// ConfigStore owns the singleton treasury record.
type ConfigStore struct {
	tx store.Tx
}

func NewConfigStore(tx store.Tx) *ConfigStore {
	return &ConfigStore{tx: tx}
}

// Initialize creates the record; it fails if one already exists.
func (s *ConfigStore) Initialize(ctx context.Context, owner, denom string) (*models.TreasuryState, error) {
	_, err := s.tx.GetConfig(ctx)
	if err == nil {
		return nil, ErrAlreadyInitialized
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing config: %w", err)
	}

	cfg := models.TreasuryState{
		Owner:   owner,
		Denom:   denom,
		Enabled: true,
		Amount:  decimal.Zero,
	}
	if err := s.Save(ctx, cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (s *ConfigStore) Load(ctx context.Context) (*models.TreasuryState, error) {
	cfg, err := s.tx.GetConfig(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotInitialized
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func (s *ConfigStore) Save(ctx context.Context, cfg models.TreasuryState) error {
	if err := s.tx.PutConfig(ctx, cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// HistoryLedger owns the per-depositor lifetime totals. An address with no
// deposit has no entry: Get returns ErrHistoryNotFound rather than zero.
type HistoryLedger struct {
	tx store.Tx
}

func NewHistoryLedger(tx store.Tx) *HistoryLedger {
	return &HistoryLedger{tx: tx}
}

func (h *HistoryLedger) Get(ctx context.Context, address string) (decimal.Decimal, error) {
	amount, err := h.tx.GetHistory(ctx, address)
	if errors.Is(err, store.ErrNotFound) {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrHistoryNotFound, address)
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load history: %w", err)
	}
	return amount, nil
}

// RecordDeposit adds amount to the entry for address, creating it if needed,
// and returns the new total.
func (h *HistoryLedger) RecordDeposit(ctx context.Context, address string, amount decimal.Decimal) (decimal.Decimal, error) {
	current, err := h.Get(ctx, address)
	if err != nil && !errors.Is(err, ErrHistoryNotFound) {
		return decimal.Zero, err
	}

	total := current.Add(amount)
	if err := h.tx.PutHistory(ctx, address, total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to save history: %w", err)
	}
	return total, nil
}

func (h *HistoryLedger) List(ctx context.Context, startAfter string, limit int) ([]models.HistoryEntry, error) {
	entries, err := h.tx.ListHistory(ctx, startAfter, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	return entries, nil
}
