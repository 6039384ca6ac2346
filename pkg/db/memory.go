package db

import (
	"context"
	"sort"
	"sync"

	"github.com/rhallewell/wardroster/pkg/core/model"
)

// MemoryStore is an in-memory ScheduleStore. Useful for tests and for
// running the CLI without a database connection.
type MemoryStore struct {
	mu        sync.Mutex
	schedules map[string]*model.Schedule
}

// NewMemoryStore creates an empty in-memory schedule store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{schedules: make(map[string]*model.Schedule)}
}

func (m *MemoryStore) GetSchedule(ctx context.Context, monthKey string) (*model.Schedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.schedules[monthKey], nil
}

func (m *MemoryStore) UpsertSchedule(ctx context.Context, monthKey string, schedule *model.Schedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schedules[monthKey] = schedule
	return nil
}

func (m *MemoryStore) DeleteAllSchedules(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schedules = make(map[string]*model.Schedule)
	return nil
}

func (m *MemoryStore) ListMonthKeys(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.schedules))
	for key := range m.schedules {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}
