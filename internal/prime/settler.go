package prime

import (
	"context"
	"fmt"
	"strings"

	"treasury-ledger-go/internal/bank"
	"treasury-ledger-go/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Withdrawer submits outbound withdrawals. *Service is the production implementation.
type Withdrawer interface {
	CreateWithdrawal(ctx context.Context, params CreateWithdrawalParams) (*Withdrawal, error)
}

// Settler pays transfer commands out through Prime. The debit is first
// recorded on the base settler so the live balance drops, then each coin is
// submitted as a wallet withdrawal to the command's destination.
type Settler struct {
	prime Withdrawer
	cfg   models.PrimeConfig
	base  bank.Settler
}

// Compile-time check: *Settler must satisfy bank.Settler.
var _ bank.Settler = (*Settler)(nil)

func NewSettler(prime Withdrawer, cfg models.PrimeConfig, base bank.Settler) *Settler {
	return &Settler{prime: prime, cfg: cfg, base: base}
}

func (s *Settler) Transfer(ctx context.Context, from string, cmd models.TransferCommand) error {
	if err := s.base.Transfer(ctx, from, cmd); err != nil {
		return err
	}

	for _, coin := range cmd.Amount {
		if coin.Amount.IsZero() {
			continue
		}
		params := CreateWithdrawalParams{
			PortfolioId:        s.cfg.PortfolioId,
			WalletId:           s.cfg.WalletId,
			DestinationAddress: cmd.ToAddress,
			Amount:             coin.Amount.Shift(-int32(s.cfg.Precision)).String(),
			Asset:              s.symbol(coin.Denom),
			IdempotencyKey:     idempotencyKey(cmd.Id, coin.Denom),
		}
		withdrawal, err := s.prime.CreateWithdrawal(ctx, params)
		if err != nil {
			return fmt.Errorf("failed to settle %s via Prime: %w", cmd.Id, err)
		}
		zap.L().Info("Transfer settled via Prime",
			zap.String("command_id", cmd.Id),
			zap.String("activity_id", withdrawal.ActivityId),
			zap.String("amount", params.Amount),
			zap.String("asset", params.Asset))
	}
	return nil
}

func (s *Settler) symbol(denom string) string {
	if s.cfg.Symbol != "" {
		return s.cfg.Symbol
	}
	return strings.ToUpper(denom)
}

// idempotencyKey derives a stable per-coin key so a retried command never
// pays out twice.
func idempotencyKey(commandId, denom string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(commandId+"/"+denom)).String()
}
