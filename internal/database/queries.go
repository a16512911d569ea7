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

package database

const (
	// Treasury state queries
	queryGetConfig = `
		SELECT owner, denom, enabled, amount
		FROM config
		WHERE key = 'config'`

	queryUpsertConfig = `
		INSERT INTO config (key, owner, denom, enabled, amount)
		VALUES ('config', ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			owner = excluded.owner,
			denom = excluded.denom,
			enabled = excluded.enabled,
			amount = excluded.amount,
			updated_at = CURRENT_TIMESTAMP`

	queryGetContractInfo = `
		SELECT contract, version
		FROM contract_info
		WHERE key = 'contract_info'`

	queryUpsertContractInfo = `
		INSERT INTO contract_info (key, contract, version)
		VALUES ('contract_info', ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			contract = excluded.contract,
			version = excluded.version`

	queryGetHistory = `
		SELECT amount
		FROM history
		WHERE address = ?`

	queryUpsertHistory = `
		INSERT INTO history (address, amount)
		VALUES (?, ?)
		ON CONFLICT(address) DO UPDATE SET
			amount = excluded.amount,
			updated_at = CURRENT_TIMESTAMP`

	queryListHistory = `
		SELECT address, amount
		FROM history
		WHERE address > ?
		ORDER BY address
		LIMIT ?`

	// Audit trail queries
	queryInsertEvent = `
		INSERT INTO events (id, type, action, address, attributes)
		VALUES (?, ?, ?, ?, ?)`

	queryListEvents = `
		SELECT id, type, attributes, created_at
		FROM events
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`

	queryInsertCommand = `
		INSERT INTO outbox (id, to_address, amount, status)
		VALUES (?, ?, ?, ?)`

	// Bank queries
	queryGetBalance = `
		SELECT balance
		FROM bank_balances
		WHERE address = ? AND denom = ?`

	queryGetAllBalances = `
		SELECT id, address, denom, balance, last_transfer_id, version, updated_at
		FROM bank_balances
		WHERE address = ? AND balance != '0'
		ORDER BY denom`

	queryGetAccountBalance = `
		SELECT id, balance, version
		FROM bank_balances
		WHERE address = ? AND denom = ?`

	queryInsertAccountBalance = `
		INSERT INTO bank_balances (id, address, denom, balance, version)
		VALUES (?, ?, ?, ?, ?)`

	queryUpdateAccountBalance = `
		UPDATE bank_balances
		SET balance = ?, last_transfer_id = ?, version = version + 1, updated_at = CURRENT_TIMESTAMP
		WHERE address = ? AND denom = ? AND version = ?`

	queryInsertTransfer = `
		INSERT INTO bank_transfers (
			id, address, denom, transfer_type, amount, balance_before, balance_after,
			counterparty, reference, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	queryGetTransferAmounts = `
		SELECT amount
		FROM bank_transfers
		WHERE address = ? AND denom = ?`
)
