package treasury

import (
	"context"
	"testing"

	"treasury-ledger-go/internal/bank"
	"treasury-ledger-go/internal/models"
	"treasury-ledger-go/internal/store"

	"github.com/shopspring/decimal"
)

const (
	ownerAddr    = "contrib1xwnerxxx"
	aliceAddr    = "contrib1alcexxxx"
	bobAddr      = "contrib1d0ddxxxx"
	carolAddr    = "contrib1carlxxxx"
	contractAddr = "contrib1treazuryxx"
	denom        = "ucontrib"
)

type harness struct {
	t        *testing.T
	contract *Contract
	store    *store.Memory
	bank     *bank.Memory
	env      models.Env
}

func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()
	if opts.AddressPrefix == "" {
		opts.AddressPrefix = DefaultAddressPrefix
	}
	return &harness{
		t:        t,
		contract: NewContract(opts),
		store:    store.NewMemory(),
		bank:     bank.NewMemory(),
		env:      models.Env{ContractAddress: contractAddr},
	}
}

// setupTreasury returns an instantiated treasury owned by ownerAddr.
func setupTreasury(t *testing.T) *harness {
	t.Helper()
	h := newHarness(t, Options{RejectForeignDenom: true})
	if _, err := h.run(func(deps Deps) (*models.Response, error) {
		return h.contract.Instantiate(context.Background(), deps, models.MessageInfo{Sender: ownerAddr, Funds: coins(1, denom)})
	}); err != nil {
		t.Fatalf("Instantiate failed: %v", err)
	}
	return h
}

// run executes fn inside a transaction, committing only on success.
func (h *harness) run(fn func(Deps) (*models.Response, error)) (*models.Response, error) {
	h.t.Helper()
	tx, err := h.store.Begin(context.Background())
	if err != nil {
		h.t.Fatalf("Begin failed: %v", err)
	}
	resp, err := fn(Deps{Storage: tx, Querier: h.bank})
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		h.t.Fatalf("Commit failed: %v", err)
	}
	return resp, nil
}

// read runs a read-only fn against committed state.
func (h *harness) read(fn func(Deps)) {
	h.t.Helper()
	tx, err := h.store.Begin(context.Background())
	if err != nil {
		h.t.Fatalf("Begin failed: %v", err)
	}
	defer tx.Rollback()
	fn(Deps{Storage: tx, Querier: h.bank})
}

// deposit moves funds into the contract like the host does, then records them.
func (h *harness) deposit(sender string, funds models.Coins) (*models.Response, error) {
	h.t.Helper()
	resp, err := h.run(func(deps Deps) (*models.Response, error) {
		return h.contract.Deposit(context.Background(), deps, models.MessageInfo{Sender: sender, Funds: funds})
	})
	if err == nil {
		h.bank.Mint(contractAddr, funds)
	}
	return resp, err
}

func (h *harness) withdraw(sender string) (*models.Response, error) {
	h.t.Helper()
	resp, err := h.run(func(deps Deps) (*models.Response, error) {
		return h.contract.Withdraw(context.Background(), deps, h.env, models.MessageInfo{Sender: sender})
	})
	if err == nil {
		for _, cmd := range resp.Messages {
			if err := h.bank.Transfer(context.Background(), contractAddr, cmd); err != nil {
				h.t.Fatalf("Settlement failed: %v", err)
			}
		}
	}
	return resp, err
}

func (h *harness) config() models.TreasuryState {
	h.t.Helper()
	var cfg *models.TreasuryState
	h.read(func(deps Deps) {
		var err error
		cfg, err = NewConfigStore(deps.Storage).Load(context.Background())
		if err != nil {
			h.t.Fatalf("Load config failed: %v", err)
		}
	})
	return *cfg
}

func (h *harness) history() []models.HistoryEntry {
	h.t.Helper()
	var entries []models.HistoryEntry
	h.read(func(deps Deps) {
		var err error
		entries, err = deps.Storage.ListHistory(context.Background(), "", 0)
		if err != nil {
			h.t.Fatalf("ListHistory failed: %v", err)
		}
	})
	return entries
}

func (h *harness) historyOf(addr string) (decimal.Decimal, error) {
	h.t.Helper()
	var amount decimal.Decimal
	var err error
	h.read(func(deps Deps) {
		amount, err = h.contract.QueryHistory(context.Background(), deps, addr)
	})
	return amount, err
}

func coins(amount int64, denom string) models.Coins {
	return models.Coins{{Denom: denom, Amount: decimal.NewFromInt(amount)}}
}

func assertAmount(t *testing.T, what string, got decimal.Decimal, want int64) {
	t.Helper()
	if !got.Equal(decimal.NewFromInt(want)) {
		t.Errorf("Expected %s %d, got %s", what, want, got.String())
	}
}

func sameState(a, b models.TreasuryState) bool {
	return a.Owner == b.Owner && a.Denom == b.Denom && a.Enabled == b.Enabled && a.Amount.Equal(b.Amount)
}

func sameHistory(a, b []models.HistoryEntry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Address != b[i].Address || !a[i].Amount.Equal(b[i].Amount) {
			return false
		}
	}
	return true
}
