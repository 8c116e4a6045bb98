package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/wedlock-lab/mandap/pkg/domain/interfaces"
	"github.com/wedlock-lab/mandap/pkg/domain/model"
	"github.com/wedlock-lab/mandap/pkg/domain/types"
)

// Memory implements Repository interface with in-memory storage
type Memory struct {
	mu         sync.RWMutex
	statuses   map[types.GroupNumber]types.QueueStatus
	dispatches []*model.DispatchRecord
}

// NewMemory creates a new memory repository
func NewMemory() interfaces.Repository {
	return &Memory{
		statuses: make(map[types.GroupNumber]types.QueueStatus),
	}
}

// GetStatus retrieves the queue status for a group, defaulting to waiting
func (m *Memory) GetStatus(ctx context.Context, groupNumber types.GroupNumber) (types.QueueStatus, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	status, exists := m.statuses[groupNumber]
	if !exists {
		return types.QueueStatusWaiting, nil
	}
	return status, nil
}

// SetStatus updates the queue status for a group
func (m *Memory) SetStatus(ctx context.Context, groupNumber types.GroupNumber, status types.QueueStatus) error {
	if !status.IsValid() {
		return goerr.New("invalid queue status", goerr.V("status", status))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.statuses[groupNumber] = status
	return nil
}

// ListStatuses returns every recorded group status
func (m *Memory) ListStatuses(ctx context.Context) (map[types.GroupNumber]types.QueueStatus, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	statuses := make(map[types.GroupNumber]types.QueueStatus, len(m.statuses))
	for n, s := range m.statuses {
		statuses[n] = s
	}
	return statuses, nil
}

// SaveDispatch saves a dispatch audit record
func (m *Memory) SaveDispatch(ctx context.Context, record *model.DispatchRecord) error {
	if record == nil {
		return goerr.New("dispatch record is nil")
	}
	if record.ID == "" {
		return goerr.New("dispatch record ID is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	recordCopy := *record
	m.dispatches = append(m.dispatches, &recordCopy)
	return nil
}

// ListDispatches lists dispatch records, newest first
func (m *Memory) ListDispatches(ctx context.Context, limit int) ([]*model.DispatchRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*model.DispatchRecord, 0, len(m.dispatches))
	for _, r := range m.dispatches {
		recordCopy := *r
		records = append(records, &recordCopy)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// Close closes the repository (no-op for memory)
func (m *Memory) Close() error {
	return nil
}
