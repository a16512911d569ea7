package treasury

import (
	"context"
	"errors"
	"testing"

	"treasury-ledger-go/internal/models"
)

func TestMigrate_MatchingNameIsNoop(t *testing.T) {
	h := setupTreasury(t)
	if _, err := h.deposit(aliceAddr, coins(10, denom)); err != nil {
		t.Fatalf("Deposit failed: %v", err)
	}
	cfgBefore, histBefore := h.config(), h.history()

	resp, err := h.run(func(deps Deps) (*models.Response, error) {
		return h.contract.Migrate(context.Background(), deps)
	})
	if err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	if len(resp.Messages) != 0 || len(resp.Events) != 0 {
		t.Errorf("Expected empty response, got %+v", resp)
	}
	if !sameState(cfgBefore, h.config()) || !sameHistory(histBefore, h.history()) {
		t.Error("State changed by migration")
	}
}

func TestMigrate_NameMismatch(t *testing.T) {
	h := setupTreasury(t)
	cfgBefore, histBefore := h.config(), h.history()

	other := NewContract(Options{ContractName: "crowdfund", AddressPrefix: DefaultAddressPrefix})
	_, err := h.run(func(deps Deps) (*models.Response, error) {
		return other.Migrate(context.Background(), deps)
	})
	if !errors.Is(err, ErrCannotMigrate) {
		t.Fatalf("Expected ErrCannotMigrate, got %v", err)
	}

	var migrateErr *MigrateError
	if !errors.As(err, &migrateErr) {
		t.Fatalf("Expected *MigrateError, got %T", err)
	}
	if migrateErr.PreviousContract != DefaultContractName {
		t.Errorf("Expected previous contract %q, got %q", DefaultContractName, migrateErr.PreviousContract)
	}
	if !sameState(cfgBefore, h.config()) || !sameHistory(histBefore, h.history()) {
		t.Error("State changed by rejected migration")
	}
}
