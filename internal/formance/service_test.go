package formance

import (
	"errors"
	"math/big"
	"strings"
	"testing"

	"treasury-ledger-go/internal/bank"
	"treasury-ledger-go/internal/models"

	"github.com/formancehq/formance-sdk-go/v3/pkg/models/shared"
	"github.com/shopspring/decimal"
)

// ---------- Unit tests for pure helpers (no Formance stack needed) ----------

func TestFormanceAsset(t *testing.T) {
	tests := []struct {
		denom string
		want  string
	}{
		{"ucontrib", "UCONTRIB"},
		{"uatom", "UATOM"},
		{"USDC", "USDC"},
	}
	for _, tt := range tests {
		if got := formanceAsset(tt.denom); got != tt.want {
			t.Errorf("formanceAsset(%q) = %q, want %q", tt.denom, got, tt.want)
		}
	}
}

func TestWalletAccount(t *testing.T) {
	if got := walletAccount("contrib1alcexxxx"); got != "wallets:contrib1alcexxxx" {
		t.Errorf("unexpected account %q", got)
	}
}

func TestVolumeBalance(t *testing.T) {
	vols := map[string]shared.V2Volume{
		"UCONTRIB": {Input: big.NewInt(150), Output: big.NewInt(50), Balance: big.NewInt(100)},
		"UATOM":    {Input: big.NewInt(7), Output: big.NewInt(2)},
	}

	if got := volumeBalance(vols, "UCONTRIB"); got == nil || got.Int64() != 100 {
		t.Errorf("expected explicit balance 100, got %v", got)
	}
	if got := volumeBalance(vols, "UATOM"); got == nil || got.Int64() != 5 {
		t.Errorf("expected input-output 5, got %v", got)
	}
	if got := volumeBalance(vols, "MISSING"); got != nil {
		t.Errorf("expected nil for missing asset, got %v", got)
	}
	if got := volumeBalance(nil, "UCONTRIB"); got != nil {
		t.Errorf("expected nil for nil volumes, got %v", got)
	}
}

func TestTransferScript(t *testing.T) {
	coins := models.Coins{
		{Denom: "ucontrib", Amount: decimal.NewFromInt(150)},
		{Denom: "uatom", Amount: decimal.Zero},
		{Denom: "uosmo", Amount: decimal.NewFromInt(3)},
	}

	script, vars, err := transferScript(coins, "@wallets:contrib1treazuryxx")
	if err != nil {
		t.Fatalf("transferScript failed: %v", err)
	}

	if vars["coin_0"] != "UCONTRIB 150" {
		t.Errorf("coin_0 = %q", vars["coin_0"])
	}
	if vars["coin_1"] != "UOSMO 3" {
		t.Errorf("coin_1 = %q", vars["coin_1"])
	}
	if _, ok := vars["coin_2"]; ok {
		t.Error("zero coin should not produce a variable")
	}
	if strings.Count(script, "send $coin_") != 2 {
		t.Errorf("expected two send statements, got script:\n%s", script)
	}
	if !strings.Contains(script, "source = @wallets:contrib1treazuryxx") {
		t.Errorf("script missing source account:\n%s", script)
	}
	if strings.Contains(script, "overdraft") {
		t.Errorf("wallet sources must not overdraft:\n%s", script)
	}
}

func TestTransferScript_Empty(t *testing.T) {
	script, _, err := transferScript(models.Coins{{Denom: "ucontrib", Amount: decimal.Zero}}, "@world")
	if err != nil {
		t.Fatalf("transferScript failed: %v", err)
	}
	if script != "" {
		t.Errorf("expected empty script for zero bundle, got:\n%s", script)
	}
}

func TestTransferScript_InvalidAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount decimal.Decimal
	}{
		{"negative", decimal.NewFromInt(-1)},
		{"fractional", decimal.RequireFromString("1.5")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := transferScript(models.Coins{{Denom: "ucontrib", Amount: tt.amount}}, "@world")
			if !errors.Is(err, bank.ErrInvalidAmount) {
				t.Errorf("expected ErrInvalidAmount, got %v", err)
			}
		})
	}
}
