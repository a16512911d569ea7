package treasury

import (
	"context"
	"fmt"

	"treasury-ledger-go/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Withdraw sweeps the contract's whole live balance of the accepted currency
// to the owner. It only builds the transfer command; the host settles it.
// The lifetime deposit counter is left untouched.
func (c *Contract) Withdraw(ctx context.Context, deps Deps, env models.Env, info models.MessageInfo) (*models.Response, error) {
	cfg, err := NewConfigStore(deps.Storage).Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := CheckOwner(cfg, info.Sender); err != nil {
		zap.L().Warn("Rejected withdrawal from non-owner", zap.String("sender", info.Sender))
		return nil, err
	}

	balance, err := deps.Querier.Balance(ctx, env.ContractAddress, cfg.Denom)
	if err != nil {
		return nil, fmt.Errorf("failed to query contract balance: %w", err)
	}

	cmd := models.TransferCommand{
		Id:        uuid.New().String(),
		ToAddress: info.Sender,
		Amount:    models.Coins{{Denom: cfg.Denom, Amount: balance}},
	}

	zap.L().Info("Withdrawal prepared",
		zap.String("command_id", cmd.Id),
		zap.String("to", info.Sender),
		zap.String("denom", cfg.Denom),
		zap.String("amount", balance.String()))

	return &models.Response{
		Messages: []models.TransferCommand{cmd},
		Events:   []models.Event{newEvent("withdraw", info.Sender, balance)},
	}, nil
}
