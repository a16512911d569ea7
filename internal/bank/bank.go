package bank

import (
	"context"
	"errors"

	"treasury-ledger-go/internal/models"

	"github.com/shopspring/decimal"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAmount     = errors.New("invalid transfer amount")
)

// Querier reports live native balances held by an address.
type Querier interface {
	Balance(ctx context.Context, address, denom string) (decimal.Decimal, error)
}

// Settler moves native coins between addresses on behalf of the host.
type Settler interface {
	Transfer(ctx context.Context, from string, cmd models.TransferCommand) error
}

// Bank is both a Querier and a Settler.
type Bank interface {
	Querier
	Settler
}

// totals sums coins per denomination.
func totals(coins models.Coins) map[string]decimal.Decimal {
	sums := make(map[string]decimal.Decimal, len(coins))
	for _, c := range coins {
		sums[c.Denom] = sums[c.Denom].Add(c.Amount)
	}
	return sums
}

// validateCoins rejects negative and fractional amounts; zero coins are skipped by callers.
func validateCoins(coins models.Coins) error {
	for _, c := range coins {
		if c.Amount.IsNegative() || !c.Amount.IsInteger() {
			return ErrInvalidAmount
		}
	}
	return nil
}
