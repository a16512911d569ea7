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

package treasury

import (
	"treasury-ledger-go/internal/bank"
	"treasury-ledger-go/internal/store"
)

const (
	DefaultContractName  = "contribute"
	DefaultAddressPrefix = "contrib"

	eventType = "wasm"
)

// Options tune the contract's behaviour.
type Options struct {
	ContractName    string
	ContractVersion string
	AddressPrefix   string
	// RejectForeignDenom makes a deposit carrying no (or zero) accepted
	// currency fail with ErrInvalidCurrency instead of recording zero.
	RejectForeignDenom bool
}

// Deps is the per-operation scope handed to every handler. Storage must be
// a transaction owned by the host; Querier answers live balance queries.
type Deps struct {
	Storage store.Tx
	Querier bank.Querier
}

// Contract implements the treasury ledger on top of host-provided Deps.
// It holds no mutable state of its own.
type Contract struct {
	opts Options
}

func NewContract(opts Options) *Contract {
	if opts.ContractName == "" {
		opts.ContractName = DefaultContractName
	}
	if opts.ContractVersion == "" {
		opts.ContractVersion = "0.1.0"
	}
	if opts.AddressPrefix == "" {
		opts.AddressPrefix = DefaultAddressPrefix
	}
	return &Contract{opts: opts}
}

func (c *Contract) Options() Options {
	return c.opts
}

func (c *Contract) validate(addr string) error {
	return ValidateAddress(addr, c.opts.AddressPrefix)
}
