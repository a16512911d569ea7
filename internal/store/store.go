package store

import (
	"context"
	"errors"

	"treasury-ledger-go/internal/models"

	"github.com/shopspring/decimal"
)

// Fixed keys of the persisted state layout.
const (
	ConfigKey       = "config"
	HistoryKey      = "history"
	ContractInfoKey = "contract_info"
)

// Sentinel errors shared across all backend implementations.
var (
	ErrNotFound = errors.New("not found")
	ErrTxDone   = errors.New("transaction already committed or rolled back")
)

// Tx is the state visible to a single atomic operation. Nothing written
// through a Tx is observable by other operations until Commit.
type Tx interface {
	// --- Singleton records ---
	GetConfig(ctx context.Context) (*models.TreasuryState, error)
	PutConfig(ctx context.Context, cfg models.TreasuryState) error
	GetContractInfo(ctx context.Context) (*models.ContractInfo, error)
	PutContractInfo(ctx context.Context, info models.ContractInfo) error

	// --- History collection ---
	GetHistory(ctx context.Context, address string) (decimal.Decimal, error)
	PutHistory(ctx context.Context, address string, amount decimal.Decimal) error
	ListHistory(ctx context.Context, startAfter string, limit int) ([]models.HistoryEntry, error)

	// --- Audit trail ---
	RecordEvent(ctx context.Context, event models.Event) error
	RecordCommand(ctx context.Context, cmd models.TransferCommand, status string) error

	// --- Lifecycle ---
	Commit() error
	Rollback() error
}

// Backend opens transactions over durable state.
type Backend interface {
	Begin(ctx context.Context) (Tx, error)
	Close()
}

// Command settlement statuses recorded in the outbox.
const (
	CommandStatusSettled = "settled"
)
