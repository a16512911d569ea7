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

	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	rawFlag := flag.String("raw", "", `Raw JSON query, e.g. {"history":{"address":"contrib1..."}}`)
	historyFlag := flag.String("history", "", "Show lifetime deposits of this address")
	startAfterFlag := flag.String("start-after", "", "List depositors after this address")
	limitFlag := flag.Int("limit", 30, "Maximum number of depositors to list")
	balancesFlag := flag.String("balances", "", "Show every bank balance of this address (sqlite bank)")
	eventsFlag := flag.Int("events", 0, "Show this many recent events")
	reconcileFlag := flag.Bool("reconcile", false, "Reconcile the contract balance against the transfer journal (sqlite bank)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("Failed to load config", zap.Error(err))
	}

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	if *rawFlag != "" {
		out, err := services.Treasury.QueryJSON(ctx, []byte(*rawFlag))
		if err != nil {
			zap.L().Fatal("Query failed", zap.Error(err))
		}
		fmt.Println(string(out))
		return
	}

	treasuryCfg, err := services.Treasury.Config(ctx)
	if err != nil {
		zap.L().Fatal("Failed to read treasury config", zap.Error(err))
	}

	if *historyFlag != "" {
		amount, err := services.Treasury.History(ctx, *historyFlag)
		if err != nil {
			zap.L().Fatal("History query failed", zap.String("address", *historyFlag), zap.Error(err))
		}
		fmt.Printf("%s deposited %s%s\n", *historyFlag, amount.String(), treasuryCfg.Denom)
		return
	}

	common.PrintHeader(fmt.Sprintf("TREASURY %s", services.Treasury.ContractAddress()), common.WideWidth)
	fmt.Println(common.FormatConfig(treasuryCfg))

	histories, err := services.Treasury.Histories(ctx, *startAfterFlag, *limitFlag)
	if err != nil {
		zap.L().Fatal("Histories query failed", zap.Error(err))
	}
	common.PrintHeader("DEPOSITORS", common.WideWidth)
	fmt.Println(common.FormatHistories(histories.Entries, treasuryCfg.Denom))

	if *balancesFlag != "" {
		balances, err := services.DbService.Balances(ctx, *balancesFlag)
		if err != nil {
			zap.L().Fatal("Balance query failed", zap.Error(err))
		}
		common.PrintHeader("BALANCES "+*balancesFlag, common.WideWidth)
		for i, b := range balances {
			fmt.Printf("%s%s%s (v%d)\n", common.BoxPrefix(i == len(balances)-1), b.Balance.String(), b.Denom, b.Version)
		}
	}

	if *eventsFlag > 0 {
		events, err := services.DbService.RecentEvents(ctx, *eventsFlag)
		if err != nil {
			zap.L().Fatal("Event query failed", zap.Error(err))
		}
		common.PrintHeader("RECENT EVENTS", common.WideWidth)
		for i, e := range events {
			fmt.Printf("%s%s %-14s %s %s\n", common.BoxPrefix(i == len(events)-1),
				e.CreatedAt.Format("2006-01-02 15:04:05"), e.Attr("action"), e.Attr("address"), e.Attr("amount"))
		}
	}

	if *reconcileFlag {
		if err := services.DbService.Reconcile(ctx, services.Treasury.ContractAddress(), treasuryCfg.Denom); err != nil {
			common.PrintFooter("RECONCILIATION FAILED: "+err.Error(), common.WideWidth)
			zap.L().Fatal("Reconciliation failed", zap.Error(err))
		}
		common.PrintFooter("Contract balance reconciled", common.WideWidth)
		return
	}
	common.PrintSeparator("=", common.WideWidth)
}
