package prime

import (
	"context"
	"errors"
	"testing"

	"treasury-ledger-go/internal/bank"
	"treasury-ledger-go/internal/models"

	"github.com/shopspring/decimal"
)

type fakeWithdrawer struct {
	calls []CreateWithdrawalParams
	err   error
}

func (f *fakeWithdrawer) CreateWithdrawal(_ context.Context, params CreateWithdrawalParams) (*Withdrawal, error) {
	f.calls = append(f.calls, params)
	if f.err != nil {
		return nil, f.err
	}
	return &Withdrawal{ActivityId: "activity-1", Amount: params.Amount, IdempotencyKey: params.IdempotencyKey}, nil
}

const (
	treasury = "contrib1treazuryxx"
	owner    = "contrib1xwnerxxx"
)

func newFundedBank(amount int64) *bank.Memory {
	b := bank.NewMemory()
	b.Mint(treasury, models.Coins{{Denom: "ucontrib", Amount: decimal.NewFromInt(amount)}})
	return b
}

func TestSettler_DebitsBaseAndWithdraws(t *testing.T) {
	ctx := context.Background()
	base := newFundedBank(150_000_000)
	prime := &fakeWithdrawer{}
	settler := NewSettler(prime, models.PrimeConfig{PortfolioId: "p1", WalletId: "w1", Symbol: "ATOM-cosmos-mainnet", Precision: 6}, base)

	cmd := models.TransferCommand{Id: "cmd-1", ToAddress: owner, Amount: models.Coins{{Denom: "ucontrib", Amount: decimal.NewFromInt(150_000_000)}}}
	if err := settler.Transfer(ctx, treasury, cmd); err != nil {
		t.Fatalf("Transfer failed: %v", err)
	}

	if len(prime.calls) != 1 {
		t.Fatalf("Expected 1 withdrawal, got %d", len(prime.calls))
	}
	call := prime.calls[0]
	if call.Amount != "150" || call.Asset != "ATOM-cosmos-mainnet" || call.DestinationAddress != owner {
		t.Errorf("Unexpected withdrawal params %+v", call)
	}
	if call.IdempotencyKey != idempotencyKey("cmd-1", "ucontrib") {
		t.Errorf("Unexpected idempotency key %s", call.IdempotencyKey)
	}

	left, err := base.Balance(ctx, treasury, "ucontrib")
	if err != nil {
		t.Fatalf("Balance failed: %v", err)
	}
	if !left.IsZero() {
		t.Errorf("Expected treasury to be drained, got %s", left)
	}
}

func TestSettler_InsufficientFundsSkipsPrime(t *testing.T) {
	base := newFundedBank(10)
	prime := &fakeWithdrawer{}
	settler := NewSettler(prime, models.PrimeConfig{}, base)

	cmd := models.TransferCommand{Id: "cmd-2", ToAddress: owner, Amount: models.Coins{{Denom: "ucontrib", Amount: decimal.NewFromInt(11)}}}
	err := settler.Transfer(context.Background(), treasury, cmd)
	if !errors.Is(err, bank.ErrInsufficientFunds) {
		t.Fatalf("Expected ErrInsufficientFunds, got %v", err)
	}
	if len(prime.calls) != 0 {
		t.Errorf("Prime must not be called when the debit fails")
	}
}

func TestSettler_PrimeErrorPropagates(t *testing.T) {
	base := newFundedBank(10)
	prime := &fakeWithdrawer{err: errors.New("prime down")}
	settler := NewSettler(prime, models.PrimeConfig{}, base)

	cmd := models.TransferCommand{Id: "cmd-3", ToAddress: owner, Amount: models.Coins{{Denom: "ucontrib", Amount: decimal.NewFromInt(10)}}}
	if err := settler.Transfer(context.Background(), treasury, cmd); err == nil {
		t.Fatal("Expected Prime failure to surface")
	}
	if prime.calls[0].Asset != "UCONTRIB" || prime.calls[0].Amount != "10" {
		t.Errorf("Unexpected default symbol or amount %+v", prime.calls[0])
	}
}

func TestIdempotencyKey_Stable(t *testing.T) {
	if idempotencyKey("cmd", "ucontrib") != idempotencyKey("cmd", "ucontrib") {
		t.Error("Expected deterministic key")
	}
	if idempotencyKey("cmd", "ucontrib") == idempotencyKey("cmd", "uatom") {
		t.Error("Expected distinct keys per denom")
	}
}

func TestWithdrawalRequest_Network(t *testing.T) {
	req := withdrawalRequest(CreateWithdrawalParams{Asset: "ATOM-cosmos-mainnet", DestinationAddress: owner})
	if req.Symbol != "ATOM" || req.BlockchainAddress.Network == nil || req.BlockchainAddress.Network.Id != "cosmos" {
		t.Errorf("Unexpected request %+v", req)
	}

	req = withdrawalRequest(CreateWithdrawalParams{Asset: "ATOM"})
	if req.Symbol != "ATOM" || req.BlockchainAddress.Network != nil {
		t.Errorf("Expected bare symbol without network, got %+v", req)
	}
}
