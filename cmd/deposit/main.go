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

	senderFlag := flag.String("sender", "", "Depositor address (required)")
	fundsFlag := flag.String("funds", "", "Attached coins, e.g. 100ucontrib (required)")
	flag.Parse()

	if *senderFlag == "" || *fundsFlag == "" {
		zap.L().Fatal("All flags are required: --sender, --funds")
	}

	funds, err := models.ParseCoins(*fundsFlag)
	if err != nil {
		zap.L().Fatal("Invalid funds", zap.String("funds", *fundsFlag), zap.Error(err))
	}

	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("Failed to load config", zap.Error(err))
	}

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	info := models.MessageInfo{Sender: *senderFlag, Funds: funds}
	resp, err := services.Treasury.Execute(ctx, info, &models.ExecuteMsg{Deposit: &struct{}{}})
	if err != nil {
		common.PrintHeader("DEPOSIT FAILED", common.DefaultWidth)
		fmt.Printf("Sender: %s\n", *senderFlag)
		fmt.Printf("Funds:  %s\n", funds.String())
		fmt.Printf("Error:  %v\n", err)
		common.PrintSeparator("=", common.DefaultWidth)
		zap.L().Fatal("Deposit failed", zap.Error(err))
	}

	total, err := services.Treasury.History(ctx, *senderFlag)
	if err != nil {
		zap.L().Fatal("Failed to read deposit history", zap.Error(err))
	}

	common.PrintHeader("DEPOSIT RECORDED", common.DefaultWidth)
	fmt.Println(common.FormatResponse(resp))
	fmt.Printf("Lifetime deposits of %s: %s\n", *senderFlag, total.String())
	common.PrintSeparator("=", common.DefaultWidth)
}
