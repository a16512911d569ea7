package treasury

import (
	"context"
	"fmt"

	"treasury-ledger-go/internal/models"

	"go.uber.org/zap"
)

// Instantiate creates the treasury. The sender becomes owner and the denom
// of the first attached coin becomes the accepted currency for good.
func (c *Contract) Instantiate(ctx context.Context, deps Deps, info models.MessageInfo) (*models.Response, error) {
	if err := c.validate(info.Sender); err != nil {
		return nil, err
	}
	if len(info.Funds) == 0 {
		return nil, ErrNoFunds
	}

	if err := deps.Storage.PutContractInfo(ctx, models.ContractInfo{
		Contract: c.opts.ContractName,
		Version:  c.opts.ContractVersion,
	}); err != nil {
		return nil, fmt.Errorf("failed to save contract info: %w", err)
	}

	cfg, err := NewConfigStore(deps.Storage).Initialize(ctx, info.Sender, info.Funds[0].Denom)
	if err != nil {
		return nil, err
	}

	zap.L().Info("Treasury instantiated",
		zap.String("owner", cfg.Owner),
		zap.String("denom", cfg.Denom),
		zap.String("contract", c.opts.ContractName),
		zap.String("version", c.opts.ContractVersion))

	return &models.Response{
		Events: []models.Event{attrEvent("instantiate", info.Sender, "denom", cfg.Denom)},
	}, nil
}
