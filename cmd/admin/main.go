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
	"strconv"

	"treasury-ledger-go/internal/common"
	"treasury-ledger-go/internal/config"
	"treasury-ledger-go/internal/models"

	"go.uber.org/zap"
)

func parseMsg(owner, enabled string) (*models.ExecuteMsg, error) {
	switch {
	case owner != "" && enabled != "":
		return nil, fmt.Errorf("use either --owner or --enabled, not both")
	case owner != "":
		return &models.ExecuteMsg{UpdateOwner: &models.UpdateOwnerMsg{Owner: owner}}, nil
	case enabled != "":
		value, err := strconv.ParseBool(enabled)
		if err != nil {
			return nil, fmt.Errorf("invalid --enabled value %q: %w", enabled, err)
		}
		return &models.ExecuteMsg{UpdateEnabled: &models.UpdateEnabledMsg{Enabled: value}}, nil
	default:
		return nil, fmt.Errorf("one of --owner or --enabled is required")
	}
}

func main() {
	ctx := context.Background()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	senderFlag := flag.String("sender", "", "Current owner address (required)")
	ownerFlag := flag.String("owner", "", "Transfer ownership to this address")
	enabledFlag := flag.String("enabled", "", "Enable or disable deposits (true/false)")
	flag.Parse()

	if *senderFlag == "" {
		zap.L().Fatal("Flag --sender is required")
	}
	msg, err := parseMsg(*ownerFlag, *enabledFlag)
	if err != nil {
		zap.L().Fatal("Invalid flags", zap.Error(err))
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

	resp, err := services.Treasury.Execute(ctx, models.MessageInfo{Sender: *senderFlag}, msg)
	if err != nil {
		zap.L().Fatal("Admin update failed", zap.Error(err))
	}

	updated, err := services.Treasury.Config(ctx)
	if err != nil {
		zap.L().Fatal("Failed to read treasury config", zap.Error(err))
	}

	common.PrintHeader("TREASURY UPDATED", common.DefaultWidth)
	fmt.Println(common.FormatResponse(resp))
	fmt.Println(common.FormatConfig(updated))
	common.PrintSeparator("=", common.DefaultWidth)
}
