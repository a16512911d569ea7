package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
)

const sampleGenesis = `
owner: contrib1xwnerxxx
funds: "1ucontrib"
balances:
  - address: contrib1xwnerxxx
    coins: "10ucontrib"
  - address: contrib1alcexxxx
    coins: "100ucontrib,5uatom"
`

func TestParseGenesis(t *testing.T) {
	genesis, err := ParseGenesis([]byte(sampleGenesis))
	if err != nil {
		t.Fatalf("ParseGenesis failed: %v", err)
	}
	if genesis.Owner != "contrib1xwnerxxx" {
		t.Errorf("Unexpected owner %q", genesis.Owner)
	}
	if len(genesis.Funds) != 1 || genesis.Funds[0].Denom != "ucontrib" {
		t.Errorf("Unexpected funds %v", genesis.Funds)
	}
	alice := genesis.Balances["contrib1alcexxxx"]
	if !alice.AmountOf("uatom").Equal(decimal.NewFromInt(5)) {
		t.Errorf("Unexpected alice balance %v", alice)
	}
}

func TestParseGenesis_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing owner", `funds: "1ucontrib"`},
		{"missing funds", `owner: contrib1xwnerxxx`},
		{"bad funds", "owner: contrib1xwnerxxx\nfunds: \"ucontrib\""},
		{"missing address", "owner: contrib1xwnerxxx\nfunds: \"1ucontrib\"\nbalances:\n  - coins: \"1ucontrib\""},
		{"duplicate address", "owner: contrib1xwnerxxx\nfunds: \"1ucontrib\"\nbalances:\n  - address: a\n    coins: \"1ucontrib\"\n  - address: a\n    coins: \"2ucontrib\""},
		{"not yaml", "owner: [unterminated"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseGenesis([]byte(tt.data)); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestLoadGenesis(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genesis.yaml")
	if err := os.WriteFile(path, []byte(sampleGenesis), 0o600); err != nil {
		t.Fatalf("Failed to write genesis: %v", err)
	}
	genesis, err := LoadGenesis(path)
	if err != nil {
		t.Fatalf("LoadGenesis failed: %v", err)
	}
	if len(genesis.Balances) != 2 {
		t.Errorf("Expected 2 balances, got %d", len(genesis.Balances))
	}

	if _, err := LoadGenesis(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}
