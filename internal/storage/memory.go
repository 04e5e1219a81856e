package storage

import (
	"context"
	"sync"

	"finanzas/internal/core"
)

// MemoryStore keeps everything in process memory. It backs tests and
// the "memory" data backend for throwaway runs.
type MemoryStore struct {
	mu       sync.RWMutex
	logs     map[string]core.TransactionLog
	profiles map[string]core.Profile
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		logs:     make(map[string]core.TransactionLog),
		profiles: make(map[string]core.Profile),
	}
}

func (m *MemoryStore) LoadTransactions(_ context.Context, userID string) (core.TransactionLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	txLog, ok := m.logs[userID]
	if !ok {
		return core.TransactionLog{}, nil
	}
	return txLog.Clone(), nil
}

func (m *MemoryStore) SaveTransaction(_ context.Context, userID string, tx core.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	txLog := m.logs[userID]
	if txLog == nil {
		txLog = core.TransactionLog{}
		m.logs[userID] = txLog
	}
	if _, ok := txLog.Find(tx.ID); ok {
		return txLog.Replace(tx)
	}
	txLog.Add(tx)
	return nil
}

func (m *MemoryStore) DeleteTransaction(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	txLog, ok := m.logs[userID]
	if !ok {
		return core.ErrNotFound
	}
	return txLog.Remove(id)
}

func (m *MemoryStore) SaveAllTransactions(_ context.Context, userID string, txLog core.TransactionLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logs[userID] = txLog.Clone()
	return nil
}

func (m *MemoryStore) LoadProfile(_ context.Context, userID string) (*core.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.profiles[userID]
	if !ok {
		return nil, nil
	}
	clone := p.Clone()
	return &clone, nil
}

func (m *MemoryStore) SaveProfile(_ context.Context, userID string, p core.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.profiles[userID] = p.Clone()
	return nil
}

func (m *MemoryStore) Close() error { return nil }
