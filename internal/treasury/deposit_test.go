package treasury

import (
	"context"
	"errors"
	"testing"

	"treasury-ledger-go/internal/models"

	"github.com/shopspring/decimal"
)

func TestDeposit_AccumulatesHistoryAndCounter(t *testing.T) {
	h := setupTreasury(t)

	if _, err := h.deposit(aliceAddr, coins(100, denom)); err != nil {
		t.Fatalf("First deposit failed: %v", err)
	}
	if _, err := h.deposit(aliceAddr, coins(25, denom)); err != nil {
		t.Fatalf("Second deposit failed: %v", err)
	}

	amount, err := h.historyOf(aliceAddr)
	if err != nil {
		t.Fatalf("QueryHistory failed: %v", err)
	}
	assertAmount(t, "alice history", amount, 125)
	assertAmount(t, "cumulative amount", h.config().Amount, 125)
}

func TestDeposit_IgnoresOtherDenoms(t *testing.T) {
	h := setupTreasury(t)
	funds := models.Coins{coins(40, "uatom")[0], coins(60, denom)[0]}

	if _, err := h.deposit(aliceAddr, funds); err != nil {
		t.Fatalf("Deposit failed: %v", err)
	}

	amount, _ := h.historyOf(aliceAddr)
	assertAmount(t, "alice history", amount, 60)
	assertAmount(t, "cumulative amount", h.config().Amount, 60)
}

func TestDeposit_EmitsEvent(t *testing.T) {
	h := setupTreasury(t)

	resp, err := h.deposit(aliceAddr, coins(100, denom))
	if err != nil {
		t.Fatalf("Deposit failed: %v", err)
	}
	if len(resp.Messages) != 0 {
		t.Errorf("Deposit should not emit transfer commands, got %d", len(resp.Messages))
	}
	if len(resp.Events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(resp.Events))
	}
	ev := resp.Events[0]
	if ev.Attr("action") != "deposit" || ev.Attr("address") != aliceAddr || ev.Attr("amount") != "100" {
		t.Errorf("Unexpected event attributes: %+v", ev.Attributes)
	}
}

func TestDeposit_DisabledLeavesStateUnchanged(t *testing.T) {
	h := setupTreasury(t)
	if _, err := h.deposit(aliceAddr, coins(10, denom)); err != nil {
		t.Fatalf("Deposit failed: %v", err)
	}
	if _, err := h.run(func(deps Deps) (*models.Response, error) {
		return h.contract.UpdateEnabled(context.Background(), deps, models.MessageInfo{Sender: ownerAddr}, false)
	}); err != nil {
		t.Fatalf("UpdateEnabled failed: %v", err)
	}

	cfgBefore, histBefore := h.config(), h.history()

	_, err := h.deposit(bobAddr, coins(50, denom))
	if !errors.Is(err, ErrContractDisabled) {
		t.Fatalf("Expected ErrContractDisabled, got %v", err)
	}

	if !sameState(cfgBefore, h.config()) {
		t.Error("Config changed by rejected deposit")
	}
	if !sameHistory(histBefore, h.history()) {
		t.Error("History changed by rejected deposit")
	}
}

func TestDeposit_ForeignDenom(t *testing.T) {
	tests := []struct {
		name    string
		reject  bool
		funds   models.Coins
		wantErr error
	}{
		{"rejected when only other denoms", true, coins(10, "uatom"), ErrInvalidCurrency},
		{"rejected when no funds", true, nil, ErrInvalidCurrency},
		{"rejected when zero amount", true, coins(0, denom), ErrInvalidCurrency},
		{"rejected when fractional", true, models.Coins{{Denom: denom, Amount: decimal.RequireFromString("0.5")}}, ErrInvalidCurrency},
		{"fractional rejected in compatibility mode", false, models.Coins{{Denom: denom, Amount: decimal.RequireFromString("10.25")}}, ErrInvalidCurrency},
		{"recorded as zero in compatibility mode", false, coins(10, "uatom"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, Options{RejectForeignDenom: tt.reject})
			if _, err := h.run(func(deps Deps) (*models.Response, error) {
				return h.contract.Instantiate(context.Background(), deps, models.MessageInfo{Sender: ownerAddr, Funds: coins(1, denom)})
			}); err != nil {
				t.Fatalf("Instantiate failed: %v", err)
			}

			_, err := h.deposit(aliceAddr, tt.funds)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Expected %v, got %v", tt.wantErr, err)
				}
				if len(h.history()) != 0 {
					t.Error("History written by rejected deposit")
				}
				return
			}
			if err != nil {
				t.Fatalf("Deposit failed: %v", err)
			}
			amount, err := h.historyOf(aliceAddr)
			if err != nil {
				t.Fatalf("Expected zero entry to exist, got %v", err)
			}
			assertAmount(t, "alice history", amount, 0)
			assertAmount(t, "cumulative amount", h.config().Amount, 0)
		})
	}
}

func TestDeposit_CounterEqualsHistorySum(t *testing.T) {
	h := setupTreasury(t)
	deposits := []struct {
		sender string
		amount int64
	}{
		{aliceAddr, 10}, {bobAddr, 20}, {aliceAddr, 30}, {carolAddr, 5}, {bobAddr, 1},
	}
	for _, d := range deposits {
		if _, err := h.deposit(d.sender, coins(d.amount, denom)); err != nil {
			t.Fatalf("Deposit failed: %v", err)
		}
	}

	sum := decimal.Zero
	for _, e := range h.history() {
		sum = sum.Add(e.Amount)
	}
	if !sum.Equal(h.config().Amount) {
		t.Errorf("History sum %s != cumulative amount %s", sum.String(), h.config().Amount.String())
	}
	assertAmount(t, "cumulative amount", h.config().Amount, 66)
}
