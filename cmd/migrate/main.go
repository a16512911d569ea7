/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"errors"
	"fmt"

	"treasury-ledger-go/internal/common"
	"treasury-ledger-go/internal/config"
	"treasury-ledger-go/internal/treasury"

	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("Failed to load config", zap.Error(err))
	}

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	if _, err := services.Treasury.Migrate(ctx); err != nil {
		var migrateErr *treasury.MigrateError
		if errors.As(err, &migrateErr) {
			common.PrintHeader("MIGRATION REFUSED", common.DefaultWidth)
			fmt.Printf("Stored contract:   %s\n", migrateErr.PreviousContract)
			fmt.Printf("Expected contract: %s\n", cfg.Treasury.ContractName)
			common.PrintSeparator("=", common.DefaultWidth)
		}
		zap.L().Fatal("Migration failed", zap.Error(err))
	}

	info, err := services.Treasury.ContractInfo(ctx)
	if err != nil {
		zap.L().Fatal("Failed to read contract info", zap.Error(err))
	}
	common.PrintFooter(fmt.Sprintf("Migration accepted: %s %s", info.Contract, info.Version), common.DefaultWidth)
}
