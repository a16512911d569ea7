package common

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"treasury-ledger-go/internal/api"
	"treasury-ledger-go/internal/bank"
	"treasury-ledger-go/internal/database"
	"treasury-ledger-go/internal/formance"
	"treasury-ledger-go/internal/models"
	"treasury-ledger-go/internal/prime"
	"treasury-ledger-go/internal/treasury"

	"github.com/coinbase-samples/prime-sdk-go/credentials"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// init loads environment variables from .env file if it exists
func init() {
	// Environment variables can also be set via shell export, docker, etc.
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: No .env file found or unable to load it: %v\n", err)
		log.Println("Make sure to set environment variables via export or other means")
	} else {
		log.Println("✓ Loaded environment variables from .env file")
	}
}

type Services struct {
	DbService       *database.Service
	FormanceService *formance.Service
	PrimeService    *prime.Service
	Treasury        *api.TreasuryService
}

func InitializeLogger() (*zap.Logger, func()) {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	zap.ReplaceGlobals(logger)

	cleanup := func() {
		if err := logger.Sync(); err != nil {
			if !isIgnorableSyncError(err) {
				log.Printf("Failed to sync logger: %v\n", err)
			}
		}
	}

	return logger, cleanup
}

// NewContract builds the treasury contract from configuration.
func NewContract(cfg models.TreasuryConfig) *treasury.Contract {
	return treasury.NewContract(treasury.Options{
		ContractName:       cfg.ContractName,
		ContractVersion:    cfg.ContractVersion,
		AddressPrefix:      cfg.AddressPrefix,
		RejectForeignDenom: cfg.RejectForeignDenom,
	})
}

// InitializeServices opens the state database, binds the configured bank and,
// when enabled, routes payouts through Prime.
func InitializeServices(ctx context.Context, cfg *models.Config) (*Services, error) {
	dbService, err := database.NewService(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	services := &Services{DbService: dbService}

	binding := api.TxScopedBank()
	if cfg.Bank.Backend == "formance" {
		zap.L().Info("Using Formance bank backend")
		formanceService, err := formance.NewService(ctx, cfg.Formance)
		if err != nil {
			services.Close()
			return nil, err
		}
		services.FormanceService = formanceService
		binding = api.SharedBank(formanceService)
	}

	opts := api.Options{ContractAddress: cfg.Treasury.ContractAddress}

	if cfg.Prime.Enabled {
		primeCfg, primeService, err := initializePrime(ctx, cfg.Prime)
		if err != nil {
			services.Close()
			return nil, err
		}
		services.PrimeService = primeService
		opts.WrapSettler = func(base bank.Settler) bank.Settler {
			return prime.NewSettler(primeService, primeCfg, base)
		}
	}

	services.Treasury, err = api.NewTreasuryService(NewContract(cfg.Treasury), dbService, binding, opts)
	if err != nil {
		services.Close()
		return nil, err
	}

	zap.L().Info("Treasury services initialized",
		zap.String("contract_address", cfg.Treasury.ContractAddress),
		zap.String("bank_backend", cfg.Bank.Backend),
		zap.Bool("prime_settlement", cfg.Prime.Enabled))
	return services, nil
}

func initializePrime(ctx context.Context, cfg models.PrimeConfig) (models.PrimeConfig, *prime.Service, error) {
	zap.L().Info("Loading Prime API credentials")
	creds, err := loadPrimeCredentials()
	if err != nil {
		return cfg, nil, err
	}

	primeService, err := prime.NewService(creds)
	if err != nil {
		return cfg, nil, err
	}

	if cfg.PortfolioId == "" {
		zap.L().Info("Finding default portfolio")
		defaultPortfolio, err := primeService.FindDefaultPortfolio(ctx)
		if err != nil {
			return cfg, nil, err
		}
		zap.L().Info("Using default portfolio",
			zap.String("name", defaultPortfolio.Name),
			zap.String("id", defaultPortfolio.Id))
		cfg.PortfolioId = defaultPortfolio.Id
	}
	if cfg.WalletId == "" {
		return cfg, nil, fmt.Errorf("PRIME_WALLET_ID is required when Prime settlement is enabled")
	}
	return cfg, primeService, nil
}

func (cs *Services) Close() {
	if cs.FormanceService != nil {
		cs.FormanceService.Close()
	}
	if cs.DbService != nil {
		cs.DbService.Close()
	}
}

func loadPrimeCredentials() (*credentials.Credentials, error) {
	accessKey := os.Getenv("PRIME_ACCESS_KEY")
	passphrase := os.Getenv("PRIME_PASSPHRASE")
	signingKey := os.Getenv("PRIME_SIGNING_KEY")

	if accessKey == "" || passphrase == "" || signingKey == "" {
		return nil, fmt.Errorf("missing required Prime API credentials: PRIME_ACCESS_KEY, PRIME_PASSPHRASE, PRIME_SIGNING_KEY")
	}

	return &credentials.Credentials{
		AccessKey:  accessKey,
		Passphrase: passphrase,
		SigningKey: signingKey,
	}, nil
}

func isIgnorableSyncError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "sync /dev/stderr: inappropriate ioctl for device") ||
		strings.Contains(msg, "sync /dev/stdout: inappropriate ioctl for device")
}
