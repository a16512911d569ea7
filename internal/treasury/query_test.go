package treasury

import (
	"context"
	"errors"
	"testing"
)

func TestQueryConfig_ReportsLiveBalance(t *testing.T) {
	h := setupTreasury(t)
	if _, err := h.deposit(aliceAddr, coins(40, denom)); err != nil {
		t.Fatalf("Deposit failed: %v", err)
	}
	h.bank.Mint(contractAddr, coins(2, denom))

	h.read(func(deps Deps) {
		resp, err := h.contract.QueryConfig(context.Background(), deps, h.env)
		if err != nil {
			t.Fatalf("QueryConfig failed: %v", err)
		}
		if resp.Owner != ownerAddr || resp.Denom != denom || !resp.Enabled {
			t.Errorf("Unexpected config response: %+v", resp)
		}
		assertAmount(t, "live amount", resp.Amount, 42)
	})
}

func TestQueryHistory_NotFound(t *testing.T) {
	h := setupTreasury(t)

	_, err := h.historyOf(aliceAddr)
	if !errors.Is(err, ErrHistoryNotFound) {
		t.Fatalf("Expected ErrHistoryNotFound, got %v", err)
	}
}

func TestQueryHistory_InvalidAddress(t *testing.T) {
	h := setupTreasury(t)

	_, err := h.historyOf("not-an-address")
	if !errors.Is(err, ErrInvalidIdentity) {
		t.Fatalf("Expected ErrInvalidIdentity, got %v", err)
	}
}

func TestQueryHistories_Pagination(t *testing.T) {
	h := setupTreasury(t)
	for _, addr := range []string{carolAddr, aliceAddr, bobAddr} {
		if _, err := h.deposit(addr, coins(1, denom)); err != nil {
			t.Fatalf("Deposit failed: %v", err)
		}
	}

	h.read(func(deps Deps) {
		page, err := h.contract.QueryHistories(context.Background(), deps, "", 2)
		if err != nil {
			t.Fatalf("QueryHistories failed: %v", err)
		}
		if len(page.Entries) != 2 || page.Entries[0].Address != aliceAddr || page.Entries[1].Address != carolAddr {
			t.Fatalf("Unexpected first page: %+v", page.Entries)
		}

		page, err = h.contract.QueryHistories(context.Background(), deps, page.Entries[1].Address, 0)
		if err != nil {
			t.Fatalf("QueryHistories failed: %v", err)
		}
		if len(page.Entries) != 1 || page.Entries[0].Address != bobAddr {
			t.Fatalf("Unexpected second page: %+v", page.Entries)
		}
	})
}
