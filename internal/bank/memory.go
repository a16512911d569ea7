package bank

import (
	"context"
	"sync"

	"treasury-ledger-go/internal/models"

	"github.com/shopspring/decimal"
)

// Memory is a concurrency-safe in-memory bank useful for unit tests.
type Memory struct {
	mu       sync.RWMutex
	balances map[string]map[string]decimal.Decimal
	settled  []models.TransferCommand
}

func NewMemory() *Memory {
	return &Memory{balances: make(map[string]map[string]decimal.Decimal)}
}

// Mint credits coins to address out of thin air (test helper / genesis).
func (m *Memory) Mint(address string, coins models.Coins) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range coins {
		m.add(address, c.Denom, c.Amount)
	}
}

func (m *Memory) add(address, denom string, amount decimal.Decimal) {
	acct, ok := m.balances[address]
	if !ok {
		acct = make(map[string]decimal.Decimal)
		m.balances[address] = acct
	}
	acct[denom] = acct[denom].Add(amount)
}

func (m *Memory) Balance(_ context.Context, address, denom string) (decimal.Decimal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.balances[address][denom], nil
}

func (m *Memory) Transfer(_ context.Context, from string, cmd models.TransferCommand) error {
	if err := validateCoins(cmd.Amount); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for denom, amount := range totals(cmd.Amount) {
		if m.balances[from][denom].LessThan(amount) {
			return ErrInsufficientFunds
		}
	}
	for _, c := range cmd.Amount {
		m.add(from, c.Denom, c.Amount.Neg())
		m.add(cmd.ToAddress, c.Denom, c.Amount)
	}
	m.settled = append(m.settled, cmd)
	return nil
}

// Settled returns every transfer executed so far, in order.
func (m *Memory) Settled() []models.TransferCommand {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.TransferCommand(nil), m.settled...)
}
