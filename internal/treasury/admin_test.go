package treasury

import (
	"context"
	"errors"
	"testing"

	"treasury-ledger-go/internal/models"
)

func (h *harness) updateOwner(sender, newOwner string) error {
	_, err := h.run(func(deps Deps) (*models.Response, error) {
		return h.contract.UpdateOwner(context.Background(), deps, models.MessageInfo{Sender: sender}, newOwner)
	})
	return err
}

func (h *harness) updateEnabled(sender string, enabled bool) error {
	_, err := h.run(func(deps Deps) (*models.Response, error) {
		return h.contract.UpdateEnabled(context.Background(), deps, models.MessageInfo{Sender: sender}, enabled)
	})
	return err
}

func TestCheckOwner(t *testing.T) {
	cfg := &models.TreasuryState{Owner: ownerAddr}
	if err := CheckOwner(cfg, ownerAddr); err != nil {
		t.Errorf("Expected owner to pass, got %v", err)
	}
	if err := CheckOwner(cfg, aliceAddr); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized, got %v", err)
	}
}

func TestCheckEnabled(t *testing.T) {
	if err := CheckEnabled(&models.TreasuryState{Enabled: true}); err != nil {
		t.Errorf("Expected enabled to pass, got %v", err)
	}
	if err := CheckEnabled(&models.TreasuryState{}); !errors.Is(err, ErrContractDisabled) {
		t.Errorf("Expected ErrContractDisabled, got %v", err)
	}
}

func TestUpdateOwner_TransfersAdminRights(t *testing.T) {
	h := setupTreasury(t)

	if err := h.updateOwner(ownerAddr, aliceAddr); err != nil {
		t.Fatalf("UpdateOwner failed: %v", err)
	}
	if got := h.config().Owner; got != aliceAddr {
		t.Fatalf("Expected owner %s, got %s", aliceAddr, got)
	}

	if err := h.updateEnabled(ownerAddr, false); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Expected previous owner to be rejected, got %v", err)
	}
	if _, err := h.withdraw(ownerAddr); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Expected previous owner withdrawal to be rejected, got %v", err)
	}
	if err := h.updateEnabled(aliceAddr, false); err != nil {
		t.Errorf("Expected new owner to succeed, got %v", err)
	}
}

func TestUpdateOwner_SelfIsNoop(t *testing.T) {
	h := setupTreasury(t)
	before := h.config()

	if err := h.updateOwner(ownerAddr, ownerAddr); err != nil {
		t.Fatalf("UpdateOwner to self failed: %v", err)
	}
	if !sameState(before, h.config()) {
		t.Error("Config changed by self owner update")
	}
}

func TestUpdateOwner_Errors(t *testing.T) {
	tests := []struct {
		name     string
		sender   string
		newOwner string
		wantErr  error
	}{
		{"non-owner", aliceAddr, bobAddr, ErrUnauthorized},
		{"empty owner", ownerAddr, "", ErrInvalidIdentity},
		{"uppercase owner", ownerAddr, "CONTRIB1ALCEXXXX", ErrInvalidIdentity},
		{"wrong prefix", ownerAddr, "cosmos1alcexxxx", ErrInvalidIdentity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := setupTreasury(t)
			if err := h.updateOwner(tt.sender, tt.newOwner); !errors.Is(err, tt.wantErr) {
				t.Fatalf("Expected %v, got %v", tt.wantErr, err)
			}
			if got := h.config().Owner; got != ownerAddr {
				t.Errorf("Owner changed to %s by failed update", got)
			}
		})
	}
}

func TestUpdateEnabled_TogglesDepositGate(t *testing.T) {
	h := setupTreasury(t)

	if err := h.updateEnabled(aliceAddr, false); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("Expected ErrUnauthorized, got %v", err)
	}
	if !h.config().Enabled {
		t.Fatal("Non-owner disabled the treasury")
	}

	if err := h.updateEnabled(ownerAddr, false); err != nil {
		t.Fatalf("Disable failed: %v", err)
	}
	if _, err := h.deposit(aliceAddr, coins(1, denom)); !errors.Is(err, ErrContractDisabled) {
		t.Fatalf("Expected ErrContractDisabled, got %v", err)
	}

	if err := h.updateEnabled(ownerAddr, true); err != nil {
		t.Fatalf("Enable failed: %v", err)
	}
	if _, err := h.deposit(aliceAddr, coins(1, denom)); err != nil {
		t.Fatalf("Deposit after re-enable failed: %v", err)
	}
}
