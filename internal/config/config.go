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

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"treasury-ledger-go/internal/models"
)

func Load() (*models.Config, error) {
	connMaxLifetime, err := getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	connMaxIdleTime, err := getEnvDuration("DB_CONN_MAX_IDLE_TIME", 30*time.Second)
	if err != nil {
		return nil, err
	}

	pingTimeout, err := getEnvDuration("DB_PING_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	backend := strings.ToLower(getEnvString("BANK_BACKEND", "sqlite"))
	if backend != "sqlite" && backend != "formance" {
		return nil, fmt.Errorf("invalid BANK_BACKEND %q: expected sqlite or formance", backend)
	}

	return &models.Config{
		Database: models.DatabaseConfig{
			Path:            getEnvString("DATABASE_PATH", "treasury.db"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: connMaxLifetime,
			ConnMaxIdleTime: connMaxIdleTime,
			PingTimeout:     pingTimeout,
		},
		Treasury: models.TreasuryConfig{
			ContractName:       getEnvString("TREASURY_CONTRACT_NAME", "contribute"),
			ContractVersion:    getEnvString("TREASURY_CONTRACT_VERSION", "0.1.0"),
			ContractAddress:    getEnvString("TREASURY_CONTRACT_ADDRESS", "contrib1treazuryxx"),
			AddressPrefix:      getEnvString("TREASURY_ADDRESS_PREFIX", "contrib"),
			RejectForeignDenom: getEnvBool("TREASURY_REJECT_FOREIGN_DENOM", true),
			GenesisFile:        getEnvString("GENESIS_FILE", "genesis.yaml"),
		},
		Bank: models.BankConfig{
			Backend: backend,
		},
		Formance: models.FormanceConfig{
			StackURL:     getEnvString("FORMANCE_STACK_URL", ""),
			ClientID:     getEnvString("FORMANCE_CLIENT_ID", ""),
			ClientSecret: getEnvString("FORMANCE_CLIENT_SECRET", ""),
			LedgerName:   getEnvString("FORMANCE_LEDGER_NAME", "treasury-ledger"),
		},
		Prime: models.PrimeConfig{
			Enabled:     getEnvBool("PRIME_SETTLEMENT_ENABLED", false),
			PortfolioId: getEnvString("PRIME_PORTFOLIO_ID", ""),
			WalletId:    getEnvString("PRIME_WALLET_ID", ""),
			Symbol:      getEnvString("PRIME_SYMBOL", ""),
			Precision:   getEnvInt("PRIME_PRECISION", 0),
		},
	}, nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	if value := os.Getenv(key); value != "" {
		duration, err := time.ParseDuration(value)
		if err != nil {
			return 0, fmt.Errorf("invalid duration for %s: %q (%w)", key, value, err)
		}
		return duration, nil
	}
	return defaultValue, nil
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
