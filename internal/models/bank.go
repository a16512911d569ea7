package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankBalance represents current native balance state (hot data)
type BankBalance struct {
	Id             string          `db:"id"`
	Address        string          `db:"address"`
	Denom          string          `db:"denom"`
	Balance        decimal.Decimal `db:"balance"`
	LastTransferId string          `db:"last_transfer_id"`
	Version        int64           `db:"version"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

// BankTransfer represents one immutable leg of a native transfer (cold data)
type BankTransfer struct {
	Id            string          `db:"id"`
	Address       string          `db:"address"`
	Denom         string          `db:"denom"`
	TransferType  string          `db:"transfer_type"` // "mint", "send", "receive"
	Amount        decimal.Decimal `db:"amount"`
	BalanceBefore decimal.Decimal `db:"balance_before"`
	BalanceAfter  decimal.Decimal `db:"balance_after"`
	Counterparty  string          `db:"counterparty"`
	Reference     string          `db:"reference"`
	CreatedAt     time.Time       `db:"created_at"`
}

// JournaledEvent is an event as persisted in the audit trail
type JournaledEvent struct {
	Event
	CreatedAt time.Time
}
