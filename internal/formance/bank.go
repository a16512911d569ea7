package formance

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"treasury-ledger-go/internal/bank"
	"treasury-ledger-go/internal/models"

	v3 "github.com/formancehq/formance-sdk-go/v3"
	"github.com/formancehq/formance-sdk-go/v3/pkg/models/operations"
	"github.com/formancehq/formance-sdk-go/v3/pkg/models/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	eventTypeTransfer = "transfer"
	eventTypeMint     = "mint"
)

// Balance returns the live balance of address in denom. Unknown accounts hold zero.
func (s *Service) Balance(ctx context.Context, address, denom string) (decimal.Decimal, error) {
	vols, err := s.getAccountVolumes(ctx, walletAccount(address))
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get balance for %s: %w", address, err)
	}
	if bal := volumeBalance(vols, formanceAsset(denom)); bal != nil {
		return decimal.NewFromBigInt(bal, 0), nil
	}
	return decimal.Zero, nil
}

// Transfer posts every coin of cmd as one atomic Formance transaction
// referenced by cmd.Id. Replaying an already posted reference is a no-op.
func (s *Service) Transfer(ctx context.Context, from string, cmd models.TransferCommand) error {
	script, vars, err := transferScript(cmd.Amount, "@"+walletAccount(from))
	if err != nil {
		return err
	}
	if script == "" {
		return nil
	}
	vars["to"] = walletAccount(cmd.ToAddress)
	vars["event_type"] = eventTypeTransfer

	return s.post(ctx, cmd.Id, script, vars)
}

// Mint credits coins to address from @world. Used to seed genesis balances;
// the reference is derived from the address so a replayed seed is a no-op.
func (s *Service) Mint(ctx context.Context, address string, coins models.Coins) error {
	reference := "genesis:" + address
	for _, c := range coins {
		if !c.Amount.IsPositive() {
			return fmt.Errorf("%w: %s", bank.ErrInvalidAmount, c.String())
		}
	}
	script, vars, err := transferScript(coins, "@world")
	if err != nil {
		return err
	}
	if script == "" {
		return nil
	}
	vars["to"] = walletAccount(address)
	vars["event_type"] = eventTypeMint

	return s.post(ctx, reference, script, vars)
}

func (s *Service) post(ctx context.Context, reference, script string, vars map[string]string) error {
	_, err := s.client.Ledger.V2.CreateTransaction(ctx, operations.V2CreateTransactionRequest{
		Ledger: s.ledger,
		V2PostTransaction: shared.V2PostTransaction{
			Reference: strPtr(reference),
			Script: &shared.V2PostTransactionScript{
				Plain: script,
				Vars:  vars,
			},
		},
	})
	if err != nil {
		if isConflictError(err) {
			zap.L().Info("Transaction already posted, skipping", zap.String("reference", reference))
			return nil
		}
		if isInsufficientFundError(err) {
			return fmt.Errorf("%w: %v", bank.ErrInsufficientFunds, err)
		}
		return fmt.Errorf("error posting transaction %s: %w", reference, err)
	}

	zap.L().Info("Transaction posted in Formance",
		zap.String("reference", reference),
		zap.String("destination", vars["to"]))
	return nil
}

// transferScript builds a Numscript sending every non-zero coin from source
// to the $to account. source is either an account literal such as
// "@wallets:<address>" or "@world". An all-zero bundle yields an empty script.
func transferScript(coins models.Coins, source string) (string, map[string]string, error) {
	var decl, body strings.Builder
	vars := make(map[string]string)

	decl.WriteString("vars {\n  account $to\n  string $event_type\n")
	n := 0
	for _, c := range coins {
		if c.Amount.IsNegative() || !c.Amount.IsInteger() {
			return "", nil, fmt.Errorf("%w: %s", bank.ErrInvalidAmount, c.String())
		}
		if c.Amount.IsZero() {
			continue
		}
		fmt.Fprintf(&decl, "  monetary $coin_%d\n", n)
		fmt.Fprintf(&body, "send $coin_%d (\n  source = %s\n  destination = $to\n)\n\n", n, source)
		vars[fmt.Sprintf("coin_%d", n)] = fmt.Sprintf("%s %s", formanceAsset(c.Denom), c.Amount.BigInt().String())
		n++
	}
	if n == 0 {
		return "", vars, nil
	}
	decl.WriteString("}\n\n")
	body.WriteString("set_tx_meta(\"event_type\", $event_type)\n")
	return decl.String() + body.String(), vars, nil
}

// getAccountVolumes fetches volumes for a single account via GetAccount (clean GET).
func (s *Service) getAccountVolumes(ctx context.Context, address string) (map[string]shared.V2Volume, error) {
	resp, err := s.client.Ledger.V2.GetAccount(ctx, operations.V2GetAccountRequest{
		Ledger:  s.ledger,
		Address: address,
		Expand:  v3.Pointer("volumes"),
	})
	if err != nil {
		if isNotFoundError(err) {
			return nil, nil
		}
		zap.L().Warn("Failed to get account volumes", zap.String("address", address), zap.Error(err))
		return nil, err
	}
	return resp.V2AccountResponse.Data.Volumes, nil
}

// volumeBalance extracts the balance for a specific asset from volumes.
func volumeBalance(vols map[string]shared.V2Volume, fAsset string) *big.Int {
	vol, ok := vols[fAsset]
	if !ok {
		return nil
	}
	if vol.Balance != nil {
		return vol.Balance
	}
	if vol.Input == nil {
		return nil
	}
	result := new(big.Int).Set(vol.Input)
	if vol.Output != nil {
		result.Sub(result, vol.Output)
	}
	return result
}
