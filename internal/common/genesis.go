package common

import (
	"fmt"
	"os"
	"path/filepath"

	"treasury-ledger-go/internal/models"

	"gopkg.in/yaml.v2"
)

// GenesisBalance seeds an address with coins, e.g. "100ucontrib,5uatom".
type GenesisBalance struct {
	Address string `yaml:"address"`
	Coins   string `yaml:"coins"`
}

type GenesisFile struct {
	Owner    string           `yaml:"owner"`
	Funds    string           `yaml:"funds"`
	Balances []GenesisBalance `yaml:"balances"`
}

// Genesis is a parsed and validated GenesisFile.
type Genesis struct {
	Owner    string
	Funds    models.Coins
	Balances map[string]models.Coins
}

func LoadGenesis(genesisFile string) (*Genesis, error) {
	var genesisPath string
	if filepath.IsAbs(genesisFile) {
		genesisPath = genesisFile
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		genesisPath = filepath.Join(wd, genesisFile)
	}

	data, err := os.ReadFile(genesisPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", genesisFile, err)
	}
	return ParseGenesis(data)
}

func ParseGenesis(data []byte) (*Genesis, error) {
	var file GenesisFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unable to parse genesis: %w", err)
	}

	if file.Owner == "" {
		return nil, fmt.Errorf("genesis missing owner")
	}
	funds, err := models.ParseCoins(file.Funds)
	if err != nil {
		return nil, fmt.Errorf("invalid genesis funds: %w", err)
	}
	if len(funds) == 0 {
		return nil, fmt.Errorf("genesis funds must name at least one coin")
	}

	genesis := &Genesis{
		Owner:    file.Owner,
		Funds:    funds,
		Balances: make(map[string]models.Coins, len(file.Balances)),
	}
	for i, balance := range file.Balances {
		if balance.Address == "" {
			return nil, fmt.Errorf("balance at index %d missing address", i)
		}
		if _, dup := genesis.Balances[balance.Address]; dup {
			return nil, fmt.Errorf("duplicate balance for %s", balance.Address)
		}
		coins, err := models.ParseCoins(balance.Coins)
		if err != nil {
			return nil, fmt.Errorf("invalid coins for %s: %w", balance.Address, err)
		}
		genesis.Balances[balance.Address] = coins
	}

	return genesis, nil
}
