package models

import "time"

// Config represents the application configuration
type Config struct {
	Database DatabaseConfig
	Treasury TreasuryConfig
	Bank     BankConfig
	Formance FormanceConfig
	Prime    PrimeConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
}

// TreasuryConfig holds contract-level settings
type TreasuryConfig struct {
	ContractName       string
	ContractVersion    string
	ContractAddress    string
	AddressPrefix      string
	RejectForeignDenom bool
	GenesisFile        string
}

// BankConfig selects where live balances are held and settled
type BankConfig struct {
	Backend string // "sqlite" or "formance"
}

// FormanceConfig holds Formance Stack connection settings
type FormanceConfig struct {
	StackURL     string
	ClientID     string
	ClientSecret string
	LedgerName   string
}

// PrimeConfig enables settlement of withdrawals through Coinbase Prime
type PrimeConfig struct {
	Enabled     bool
	PortfolioId string
	WalletId    string
	Symbol      string // Prime asset symbol, defaults to the upper-cased denom
	Precision   int    // decimal places between base units and the Prime amount
}
