package scheduleRepo

import (
	"context"
	"sync"

	"detailify/models"
)

// MemoryScheduleStore is an in-process ScheduleStore for tests.
type MemoryScheduleStore struct {
	mu    sync.RWMutex
	rules map[int]models.WorkingHoursRule
}

func NewMemoryScheduleStore(rules ...models.WorkingHoursRule) *MemoryScheduleStore {
	store := &MemoryScheduleStore{rules: make(map[int]models.WorkingHoursRule)}
	for _, rule := range rules {
		store.rules[rule.DayOfWeek] = rule
	}
	return store
}

func (m *MemoryScheduleStore) GetRule(_ context.Context, dayOfWeek int) (*models.WorkingHoursRule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rule, ok := m.rules[dayOfWeek]
	if !ok {
		return nil, ErrNoRule
	}
	copied := rule
	return &copied, nil
}

func (m *MemoryScheduleStore) GetAll(_ context.Context) ([]models.WorkingHoursRule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rules := make([]models.WorkingHoursRule, 0, len(m.rules))
	for day := 0; day < 7; day++ {
		if rule, ok := m.rules[day]; ok {
			rules = append(rules, rule)
		}
	}
	return rules, nil
}

func (m *MemoryScheduleStore) Upsert(_ context.Context, rule models.WorkingHoursRule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rules[rule.DayOfWeek] = rule
	return nil
}
