package treasury

import (
	"context"
	"testing"
)

// Alice and Bob deposit, the owner sweeps: live balance drops to zero while
// the lifetime counter and the per-depositor history are kept.
func TestScenario_DepositDepositWithdraw(t *testing.T) {
	h := setupTreasury(t)

	if _, err := h.deposit(aliceAddr, coins(100, denom)); err != nil {
		t.Fatalf("Alice deposit failed: %v", err)
	}
	alice, _ := h.historyOf(aliceAddr)
	assertAmount(t, "alice history", alice, 100)
	assertAmount(t, "cumulative amount", h.config().Amount, 100)

	if _, err := h.deposit(bobAddr, coins(50, denom)); err != nil {
		t.Fatalf("Bob deposit failed: %v", err)
	}
	bob, _ := h.historyOf(bobAddr)
	assertAmount(t, "bob history", bob, 50)
	assertAmount(t, "cumulative amount", h.config().Amount, 150)

	resp, err := h.withdraw(ownerAddr)
	if err != nil {
		t.Fatalf("Withdraw failed: %v", err)
	}
	if len(resp.Messages) != 1 || resp.Messages[0].ToAddress != ownerAddr {
		t.Fatalf("Unexpected transfer commands: %+v", resp.Messages)
	}
	assertAmount(t, "transfer amount", resp.Messages[0].Amount[0].Amount, 150)

	live, _ := h.bank.Balance(context.Background(), contractAddr, denom)
	assertAmount(t, "live balance", live, 0)
	assertAmount(t, "cumulative amount", h.config().Amount, 150)

	h.read(func(deps Deps) {
		cfg, err := h.contract.QueryConfig(context.Background(), deps, h.env)
		if err != nil {
			t.Fatalf("QueryConfig failed: %v", err)
		}
		assertAmount(t, "config amount", cfg.Amount, 0)
	})

	alice, err = h.historyOf(aliceAddr)
	if err != nil {
		t.Fatalf("QueryHistory failed: %v", err)
	}
	assertAmount(t, "alice history after withdraw", alice, 100)
}
