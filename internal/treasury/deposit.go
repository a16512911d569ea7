package treasury

import (
	"context"
	"fmt"

	"treasury-ledger-go/internal/models"

	"go.uber.org/zap"
)

// Deposit records the accepted-currency part of the attached funds against
// the sender. Coins of other denominations are ignored.
func (c *Contract) Deposit(ctx context.Context, deps Deps, info models.MessageInfo) (*models.Response, error) {
	configs := NewConfigStore(deps.Storage)
	cfg, err := configs.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := CheckEnabled(cfg); err != nil {
		zap.L().Warn("Deposit rejected while disabled", zap.String("sender", info.Sender))
		return nil, err
	}
	if err := c.validate(info.Sender); err != nil {
		return nil, err
	}

	amount := info.Funds.AmountOf(cfg.Denom)
	if amount.IsNegative() {
		return nil, fmt.Errorf("%w: negative amount %s", ErrInvalidCurrency, amount.String())
	}
	if !amount.IsInteger() {
		return nil, fmt.Errorf("%w: fractional amount %s", ErrInvalidCurrency, amount.String())
	}
	if amount.IsZero() && c.opts.RejectForeignDenom {
		zap.L().Warn("Deposit carries none of the accepted currency",
			zap.String("sender", info.Sender),
			zap.String("denom", cfg.Denom),
			zap.String("funds", info.Funds.String()))
		return nil, fmt.Errorf("%w: expected %s, got %q", ErrInvalidCurrency, cfg.Denom, info.Funds.String())
	}

	total, err := NewHistoryLedger(deps.Storage).RecordDeposit(ctx, info.Sender, amount)
	if err != nil {
		return nil, err
	}

	cfg.Amount = cfg.Amount.Add(amount)
	if err := configs.Save(ctx, *cfg); err != nil {
		return nil, err
	}

	zap.L().Info("Deposit recorded",
		zap.String("sender", info.Sender),
		zap.String("denom", cfg.Denom),
		zap.String("amount", amount.String()),
		zap.String("sender_total", total.String()),
		zap.String("cumulative_amount", cfg.Amount.String()))

	return &models.Response{
		Events: []models.Event{newEvent("deposit", info.Sender, amount)},
	}, nil
}
