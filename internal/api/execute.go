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

package api

import (
	"context"
	"fmt"

	"treasury-ledger-go/internal/models"
	"treasury-ledger-go/internal/treasury"
)

// Instantiate creates the treasury. The sender becomes owner and the first
// attached coin fixes the accepted currency.
func (s *TreasuryService) Instantiate(ctx context.Context, info models.MessageInfo) (*models.Response, error) {
	return s.run(ctx, "instantiate", info, func(deps treasury.Deps, _ models.Env) (*models.Response, error) {
		return s.contract.Instantiate(ctx, deps, info)
	})
}

// Execute dispatches a decoded execute message.
func (s *TreasuryService) Execute(ctx context.Context, info models.MessageInfo, msg *models.ExecuteMsg) (*models.Response, error) {
	switch {
	case msg.Deposit != nil:
		return s.run(ctx, "deposit", info, func(deps treasury.Deps, _ models.Env) (*models.Response, error) {
			return s.contract.Deposit(ctx, deps, info)
		})
	case msg.Withdraw != nil:
		return s.run(ctx, "withdraw", info, func(deps treasury.Deps, env models.Env) (*models.Response, error) {
			return s.contract.Withdraw(ctx, deps, env, info)
		})
	case msg.UpdateOwner != nil:
		return s.run(ctx, "update_owner", info, func(deps treasury.Deps, _ models.Env) (*models.Response, error) {
			return s.contract.UpdateOwner(ctx, deps, info, msg.UpdateOwner.Owner)
		})
	case msg.UpdateEnabled != nil:
		return s.run(ctx, "update_enabled", info, func(deps treasury.Deps, _ models.Env) (*models.Response, error) {
			return s.contract.UpdateEnabled(ctx, deps, info, msg.UpdateEnabled.Enabled)
		})
	default:
		return nil, fmt.Errorf("empty execute msg")
	}
}

// ExecuteJSON decodes a JSON execute envelope such as {"deposit":{}} and dispatches it.
func (s *TreasuryService) ExecuteJSON(ctx context.Context, info models.MessageInfo, raw []byte) (*models.Response, error) {
	msg, err := models.ParseExecuteMsg(raw)
	if err != nil {
		return nil, err
	}
	return s.Execute(ctx, info, msg)
}

// Migrate accepts an upgrade of the stored contract when its name matches.
func (s *TreasuryService) Migrate(ctx context.Context) (*models.Response, error) {
	return s.run(ctx, "migrate", models.MessageInfo{}, func(deps treasury.Deps, _ models.Env) (*models.Response, error) {
		return s.contract.Migrate(ctx, deps)
	})
}
