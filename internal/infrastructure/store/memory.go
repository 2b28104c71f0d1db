package store

import (
	"context"
	"sync"
)

// Memory is the in-process implementation, used by tests and as a last
// resort when no external store is configured.
type Memory struct {
	mu    sync.Mutex
	scans map[string]int64
	pro   map[string]struct{}
}

func NewMemory() *Memory {
	return &Memory{
		scans: make(map[string]int64),
		pro:   make(map[string]struct{}),
	}
}

func (m *Memory) IncrScans(_ context.Context, userID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.scans[userID]++

	return m.scans[userID], nil
}

func (m *Memory) Scans(_ context.Context, userID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.scans[userID], nil
}

func (m *Memory) GrantPro(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pro[userID] = struct{}{}

	return nil
}

func (m *Memory) IsPro(_ context.Context, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.pro[userID]

	return ok, nil
}
