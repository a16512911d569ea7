package treasury

import (
	"context"
	"fmt"

	"treasury-ledger-go/internal/models"

	"go.uber.org/zap"
)

// CheckOwner fails with ErrUnauthorized unless caller is the configured owner.
func CheckOwner(cfg *models.TreasuryState, caller string) error {
	if caller != cfg.Owner {
		return ErrUnauthorized
	}
	return nil
}

// CheckEnabled fails with ErrContractDisabled while deposits are switched off.
func CheckEnabled(cfg *models.TreasuryState) error {
	if !cfg.Enabled {
		return ErrContractDisabled
	}
	return nil
}

// UpdateOwner hands admin rights to newOwner. Setting the current owner again succeeds.
func (c *Contract) UpdateOwner(ctx context.Context, deps Deps, info models.MessageInfo, newOwner string) (*models.Response, error) {
	configs := NewConfigStore(deps.Storage)
	cfg, err := configs.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := CheckOwner(cfg, info.Sender); err != nil {
		zap.L().Warn("Rejected owner update from non-owner", zap.String("sender", info.Sender))
		return nil, err
	}
	if err := c.validate(newOwner); err != nil {
		return nil, err
	}

	previous := cfg.Owner
	cfg.Owner = newOwner
	if err := configs.Save(ctx, *cfg); err != nil {
		return nil, err
	}

	zap.L().Info("Owner updated",
		zap.String("previous_owner", previous),
		zap.String("new_owner", newOwner))

	return &models.Response{
		Events: []models.Event{attrEvent("update_owner", info.Sender, "owner", newOwner)},
	}, nil
}

// UpdateEnabled switches the deposit gate. Withdrawals ignore it.
func (c *Contract) UpdateEnabled(ctx context.Context, deps Deps, info models.MessageInfo, enabled bool) (*models.Response, error) {
	configs := NewConfigStore(deps.Storage)
	cfg, err := configs.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := CheckOwner(cfg, info.Sender); err != nil {
		zap.L().Warn("Rejected enabled update from non-owner", zap.String("sender", info.Sender))
		return nil, err
	}

	cfg.Enabled = enabled
	if err := configs.Save(ctx, *cfg); err != nil {
		return nil, err
	}

	zap.L().Info("Deposit gate updated", zap.Bool("enabled", enabled))

	return &models.Response{
		Events: []models.Event{attrEvent("update_enabled", info.Sender, "enabled", fmt.Sprintf("%t", enabled))},
	}, nil
}
