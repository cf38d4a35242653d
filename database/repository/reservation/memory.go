package reservationRepo

import (
	"context"
	"sync"
)

// MemoryReservationStore is an in-process ReservationStore used in tests
// and local development. The mutex makes Reserve atomic.
type MemoryReservationStore struct {
	mu     sync.Mutex
	counts map[string]int // key: date + "|" + startTime
}

func NewMemoryReservationStore() *MemoryReservationStore {
	return &MemoryReservationStore{counts: make(map[string]int)}
}

func slotKey(date, startTime string) string {
	return date + "|" + startTime
}

func (m *MemoryReservationStore) CountBookings(_ context.Context, date, startTime string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[slotKey(date, startTime)], nil
}

func (m *MemoryReservationStore) CountsForDay(_ context.Context, date string) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	prefix := date + "|"
	counts := make(map[string]int)
	for key, count := range m.counts {
		if len(key) > len(prefix) && key[:len(prefix)] == prefix {
			counts[key[len(prefix):]] = count
		}
	}
	return counts, nil
}

func (m *MemoryReservationStore) Reserve(_ context.Context, date, startTime string, capacity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := slotKey(date, startTime)
	if m.counts[key] >= capacity {
		return ErrSlotFull
	}
	m.counts[key]++
	return nil
}

func (m *MemoryReservationStore) Release(_ context.Context, date, startTime string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := slotKey(date, startTime)
	if m.counts[key] > 0 {
		m.counts[key]--
	}
	return nil
}
