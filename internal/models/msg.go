package models

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// ExecuteMsg is the JSON envelope of a mutating call; exactly one field is set
type ExecuteMsg struct {
	UpdateOwner   *UpdateOwnerMsg   `json:"update_owner,omitempty"`
	UpdateEnabled *UpdateEnabledMsg `json:"update_enabled,omitempty"`
	Deposit       *struct{}         `json:"deposit,omitempty"`
	Withdraw      *struct{}         `json:"withdraw,omitempty"`
}

type UpdateOwnerMsg struct {
	Owner string `json:"owner"`
}

type UpdateEnabledMsg struct {
	Enabled bool `json:"enabled"`
}

// QueryMsg is the JSON envelope of a read-only call; exactly one field is set
type QueryMsg struct {
	Config       *struct{}       `json:"config,omitempty"`
	History      *HistoryQuery   `json:"history,omitempty"`
	Histories    *HistoriesQuery `json:"histories,omitempty"`
	ContractInfo *struct{}       `json:"contract_info,omitempty"`
}

type HistoryQuery struct {
	Address string `json:"address"`
}

type HistoriesQuery struct {
	StartAfter string `json:"start_after,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}

// ConfigResponse reports the live balance in Amount, not the lifetime counter
type ConfigResponse struct {
	Owner   string          `json:"owner"`
	Denom   string          `json:"denom"`
	Enabled bool            `json:"enabled"`
	Amount  decimal.Decimal `json:"amount"`
}

type HistoriesResponse struct {
	Entries []HistoryEntry `json:"entries"`
}

// ParseExecuteMsg decodes raw JSON and checks that exactly one variant is present
func ParseExecuteMsg(data []byte) (*ExecuteMsg, error) {
	var msg ExecuteMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("unable to parse execute msg: %w", err)
	}
	n := 0
	for _, set := range []bool{msg.UpdateOwner != nil, msg.UpdateEnabled != nil, msg.Deposit != nil, msg.Withdraw != nil} {
		if set {
			n++
		}
	}
	if n != 1 {
		return nil, fmt.Errorf("execute msg must contain exactly one variant, got %d", n)
	}
	return &msg, nil
}

// ParseQueryMsg decodes raw JSON and checks that exactly one variant is present
func ParseQueryMsg(data []byte) (*QueryMsg, error) {
	var msg QueryMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("unable to parse query msg: %w", err)
	}
	n := 0
	for _, set := range []bool{msg.Config != nil, msg.History != nil, msg.Histories != nil, msg.ContractInfo != nil} {
		if set {
			n++
		}
	}
	if n != 1 {
		return nil, fmt.Errorf("query msg must contain exactly one variant, got %d", n)
	}
	return &msg, nil
}
