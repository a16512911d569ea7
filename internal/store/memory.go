package store

import (
	"context"
	"sort"
	"sync"

	"treasury-ledger-go/internal/models"

	"github.com/shopspring/decimal"
)

type memoryState struct {
	config   *models.TreasuryState
	info     *models.ContractInfo
	history  map[string]decimal.Decimal
	events   []models.Event
	commands []models.TransferCommand
}

func (s *memoryState) clone() *memoryState {
	c := &memoryState{
		history:  make(map[string]decimal.Decimal, len(s.history)),
		events:   append([]models.Event(nil), s.events...),
		commands: append([]models.TransferCommand(nil), s.commands...),
	}
	if s.config != nil {
		cfg := *s.config
		c.config = &cfg
	}
	if s.info != nil {
		info := *s.info
		c.info = &info
	}
	for k, v := range s.history {
		c.history[k] = v
	}
	return c
}

// Memory is an in-memory Backend useful for unit tests. Each Tx works on a
// private copy that replaces the committed state on Commit.
type Memory struct {
	mu    sync.Mutex
	state *memoryState
}

func NewMemory() *Memory {
	return &Memory{state: &memoryState{history: make(map[string]decimal.Decimal)}}
}

func (m *Memory) Begin(_ context.Context) (Tx, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return &memoryTx{parent: m, state: m.state.clone()}, nil
}

func (m *Memory) Close() {}

// Events returns the committed event journal.
func (m *Memory) Events() []models.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Event(nil), m.state.events...)
}

// Commands returns the committed outbox.
func (m *Memory) Commands() []models.TransferCommand {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.TransferCommand(nil), m.state.commands...)
}

type memoryTx struct {
	parent *Memory
	state  *memoryState
	done   bool
}

func (t *memoryTx) GetConfig(_ context.Context) (*models.TreasuryState, error) {
	if t.done {
		return nil, ErrTxDone
	}
	if t.state.config == nil {
		return nil, ErrNotFound
	}
	cfg := *t.state.config
	return &cfg, nil
}

func (t *memoryTx) PutConfig(_ context.Context, cfg models.TreasuryState) error {
	if t.done {
		return ErrTxDone
	}
	t.state.config = &cfg
	return nil
}

func (t *memoryTx) GetContractInfo(_ context.Context) (*models.ContractInfo, error) {
	if t.done {
		return nil, ErrTxDone
	}
	if t.state.info == nil {
		return nil, ErrNotFound
	}
	info := *t.state.info
	return &info, nil
}

func (t *memoryTx) PutContractInfo(_ context.Context, info models.ContractInfo) error {
	if t.done {
		return ErrTxDone
	}
	t.state.info = &info
	return nil
}

func (t *memoryTx) GetHistory(_ context.Context, address string) (decimal.Decimal, error) {
	if t.done {
		return decimal.Zero, ErrTxDone
	}
	amount, ok := t.state.history[address]
	if !ok {
		return decimal.Zero, ErrNotFound
	}
	return amount, nil
}

func (t *memoryTx) PutHistory(_ context.Context, address string, amount decimal.Decimal) error {
	if t.done {
		return ErrTxDone
	}
	t.state.history[address] = amount
	return nil
}

func (t *memoryTx) ListHistory(_ context.Context, startAfter string, limit int) ([]models.HistoryEntry, error) {
	if t.done {
		return nil, ErrTxDone
	}
	addresses := make([]string, 0, len(t.state.history))
	for addr := range t.state.history {
		if addr > startAfter {
			addresses = append(addresses, addr)
		}
	}
	sort.Strings(addresses)
	if limit > 0 && len(addresses) > limit {
		addresses = addresses[:limit]
	}
	entries := make([]models.HistoryEntry, len(addresses))
	for i, addr := range addresses {
		entries[i] = models.HistoryEntry{Address: addr, Amount: t.state.history[addr]}
	}
	return entries, nil
}

func (t *memoryTx) RecordEvent(_ context.Context, event models.Event) error {
	if t.done {
		return ErrTxDone
	}
	t.state.events = append(t.state.events, event)
	return nil
}

func (t *memoryTx) RecordCommand(_ context.Context, cmd models.TransferCommand, _ string) error {
	if t.done {
		return ErrTxDone
	}
	t.state.commands = append(t.state.commands, cmd)
	return nil
}

func (t *memoryTx) Commit() error {
	if t.done {
		return ErrTxDone
	}
	t.done = true
	t.parent.mu.Lock()
	defer t.parent.mu.Unlock()
	t.parent.state = t.state
	return nil
}

func (t *memoryTx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	return nil
}
