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
	"flag"
	"fmt"

	"treasury-ledger-go/internal/common"
	"treasury-ledger-go/internal/config"
	"treasury-ledger-go/internal/models"
	"treasury-ledger-go/internal/treasury"

	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	genesisFlag := flag.String("genesis", "", "Genesis YAML file (defaults to GENESIS_FILE)")
	skipSeedFlag := flag.Bool("skip-seed", false, "Do not mint genesis balances")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("Failed to load config", zap.Error(err))
	}

	genesisFile := cfg.Treasury.GenesisFile
	if *genesisFlag != "" {
		genesisFile = *genesisFlag
	}

	zap.L().Info("Loading genesis", zap.String("file", genesisFile))
	genesis, err := common.LoadGenesis(genesisFile)
	if err != nil {
		zap.L().Fatal("Failed to load genesis", zap.Error(err))
	}

	zap.L().Info("Initializing services")
	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	if !*skipSeedFlag && len(genesis.Balances) > 0 {
		if err := services.Treasury.Seed(ctx, genesis.Balances); err != nil {
			zap.L().Fatal("Failed to seed genesis balances", zap.Error(err))
		}
	}

	info := models.MessageInfo{Sender: genesis.Owner, Funds: genesis.Funds}
	if _, err := services.Treasury.Instantiate(ctx, info); err != nil {
		if errors.Is(err, treasury.ErrAlreadyInitialized) {
			zap.L().Info("Treasury already instantiated, nothing to do")
			return
		}
		zap.L().Fatal("Failed to instantiate treasury", zap.Error(err))
	}

	cfgResp, err := services.Treasury.Config(ctx)
	if err != nil {
		zap.L().Fatal("Failed to read treasury config", zap.Error(err))
	}

	common.PrintHeader("TREASURY INSTANTIATED", common.DefaultWidth)
	fmt.Printf("Contract: %s\n", services.Treasury.ContractAddress())
	fmt.Println(common.FormatConfig(cfgResp))
	common.PrintSeparator("=", common.DefaultWidth)
}
