package treasury

import (
	"context"
	"fmt"

	"treasury-ledger-go/internal/models"

	"go.uber.org/zap"
)

// Migrate allows a version transition only when the stored contract name
// matches this contract. A match changes nothing.
func (c *Contract) Migrate(ctx context.Context, deps Deps) (*models.Response, error) {
	info, err := deps.Storage.GetContractInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load contract info: %w", err)
	}

	if info.Contract != c.opts.ContractName {
		zap.L().Error("Migration rejected",
			zap.String("stored_contract", info.Contract),
			zap.String("expected_contract", c.opts.ContractName))
		return nil, &MigrateError{PreviousContract: info.Contract}
	}

	zap.L().Info("Migration accepted",
		zap.String("contract", info.Contract),
		zap.String("stored_version", info.Version),
		zap.String("binary_version", c.opts.ContractVersion))
	return &models.Response{}, nil
}
