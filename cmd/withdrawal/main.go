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
	"flag"
	"fmt"

	"treasury-ledger-go/internal/common"
	"treasury-ledger-go/internal/config"
	"treasury-ledger-go/internal/models"

	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	senderFlag := flag.String("sender", "", "Owner address (required)")
	flag.Parse()

	if *senderFlag == "" {
		zap.L().Fatal("Flag --sender is required")
	}

	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("Failed to load config", zap.Error(err))
	}

	zap.L().Info("Initializing services")
	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	before, err := services.Treasury.Config(ctx)
	if err != nil {
		zap.L().Fatal("Failed to read treasury config", zap.Error(err))
	}

	zap.L().Info("Starting withdrawal",
		zap.String("sender", *senderFlag),
		zap.String("balance", before.Amount.String()),
		zap.String("denom", before.Denom))

	resp, err := services.Treasury.Execute(ctx, models.MessageInfo{Sender: *senderFlag}, &models.ExecuteMsg{Withdraw: &struct{}{}})
	if err != nil {
		common.PrintHeader("WITHDRAWAL FAILED", common.DefaultWidth)
		fmt.Printf("Sender:  %s\n", *senderFlag)
		fmt.Printf("Balance: %s%s\n", before.Amount.String(), before.Denom)
		fmt.Printf("Error:   %v\n", err)
		common.PrintSeparator("=", common.DefaultWidth)
		zap.L().Fatal("Withdrawal failed", zap.Error(err))
	}

	common.PrintHeader("WITHDRAWAL SETTLED", common.DefaultWidth)
	fmt.Println(common.FormatResponse(resp))
	common.PrintSeparator("=", common.DefaultWidth)
}
