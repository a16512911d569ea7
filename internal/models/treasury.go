/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package models

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Coin is an amount of a single native denomination, in base units
type Coin struct {
	Denom  string          `json:"denom" yaml:"denom"`
	Amount decimal.Decimal `json:"amount" yaml:"amount"`
}

func (c Coin) String() string {
	return c.Amount.String() + c.Denom
}

// Coins is a bundle of amounts, possibly in several denominations
type Coins []Coin

// AmountOf returns the summed amount of denom in the bundle, zero when absent
func (cs Coins) AmountOf(denom string) decimal.Decimal {
	total := decimal.Zero
	for _, c := range cs {
		if c.Denom == denom {
			total = total.Add(c.Amount)
		}
	}
	return total
}

// IsZero reports whether every coin in the bundle has a zero amount
func (cs Coins) IsZero() bool {
	for _, c := range cs {
		if !c.Amount.IsZero() {
			return false
		}
	}
	return true
}

func (cs Coins) String() string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, ",")
}

// ParseCoins parses a comma separated list such as "100ucontrib,5uatom".
// Order is preserved since the first coin of an instantiate bundle fixes the currency.
func ParseCoins(s string) (Coins, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Coins{}, nil
	}

	var coins Coins
	seen := make(map[string]bool)
	for _, raw := range strings.Split(s, ",") {
		raw = strings.TrimSpace(raw)
		i := strings.IndexFunc(raw, func(r rune) bool { return r < '0' || r > '9' })
		if i <= 0 {
			return nil, fmt.Errorf("invalid coin %q: expected <amount><denom>", raw)
		}
		amount, err := decimal.NewFromString(raw[:i])
		if err != nil {
			return nil, fmt.Errorf("invalid coin amount %q: %w", raw, err)
		}
		denom := raw[i:]
		if err := ValidateDenom(denom); err != nil {
			return nil, err
		}
		if seen[denom] {
			return nil, fmt.Errorf("duplicate denom %q", denom)
		}
		seen[denom] = true
		coins = append(coins, Coin{Denom: denom, Amount: amount})
	}
	return coins, nil
}

// ValidateDenom checks a native denomination: 3-128 chars, starts with a letter
func ValidateDenom(denom string) error {
	if len(denom) < 3 || len(denom) > 128 {
		return fmt.Errorf("invalid denom %q: length must be 3-128", denom)
	}
	for i, r := range denom {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if i == 0 && !isLetter {
			return fmt.Errorf("invalid denom %q: must start with a letter", denom)
		}
		if !isLetter && !(r >= '0' && r <= '9') && r != '/' && r != ':' && r != '.' && r != '_' && r != '-' {
			return fmt.Errorf("invalid denom %q: unexpected character %q", denom, r)
		}
	}
	return nil
}

// Sorted returns a copy ordered by denom
func (cs Coins) Sorted() Coins {
	out := make(Coins, len(cs))
	copy(out, cs)
	sort.Slice(out, func(i, j int) bool { return out[i].Denom < out[j].Denom })
	return out
}

// TreasuryState is the singleton record stored under the "config" key
type TreasuryState struct {
	Owner   string          `json:"owner"`
	Denom   string          `json:"denom"`
	Enabled bool            `json:"enabled"`
	Amount  decimal.Decimal `json:"amount"` // lifetime deposits, never reduced by withdrawals
}

// ContractInfo is the stored name/version tag checked on migration
type ContractInfo struct {
	Contract string `json:"contract"`
	Version  string `json:"version"`
}

// HistoryEntry is a depositor's lifetime deposited amount
type HistoryEntry struct {
	Address string          `json:"address"`
	Amount  decimal.Decimal `json:"amount"`
}

// TransferCommand moves coins out of the contract; it is settled by the host
type TransferCommand struct {
	Id        string `json:"id"`
	ToAddress string `json:"to_address"`
	Amount    Coins  `json:"amount"`
}

// Attribute is a key/value pair on an emitted event
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Event describes an observable state transition
type Event struct {
	Id         string      `json:"id"`
	Type       string      `json:"type"`
	Attributes []Attribute `json:"attributes"`
}

// Attr returns the value of key, or "" when absent
func (e Event) Attr(key string) string {
	for _, a := range e.Attributes {
		if a.Key == key {
			return a.Value
		}
	}
	return ""
}

// Response is the outbox of a single operation
type Response struct {
	Messages []TransferCommand `json:"messages"`
	Events   []Event           `json:"events"`
}

// MessageInfo identifies the caller and the funds attached to the call
type MessageInfo struct {
	Sender string
	Funds  Coins
}

// Env describes the executing contract
type Env struct {
	ContractAddress string
	BlockTime       time.Time
}
