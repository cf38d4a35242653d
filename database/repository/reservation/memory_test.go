package reservationRepo

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReserveEnforcesCapacity(t *testing.T) {
	store := NewMemoryReservationStore()
	ctx := context.Background()

	require.NoError(t, store.Reserve(ctx, "2026-03-02", "09:00", 2))
	require.NoError(t, store.Reserve(ctx, "2026-03-02", "09:00", 2))
	assert.ErrorIs(t, store.Reserve(ctx, "2026-03-02", "09:00", 2), ErrSlotFull)

	// A different slot on the same day is unaffected.
	assert.NoError(t, store.Reserve(ctx, "2026-03-02", "10:30", 2))
}

func TestReserveIsAtomicUnderContention(t *testing.T) {
	store := NewMemoryReservationStore()
	ctx := context.Background()

	const attempts = 50
	results := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- store.Reserve(ctx, "2026-03-02", "09:00", 1)
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, full int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case err == ErrSlotFull:
			full++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, succeeded, "exactly one reservation may win a capacity-1 slot")
	assert.Equal(t, attempts-1, full)

	count, err := store.CountBookings(ctx, "2026-03-02", "09:00")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestReleaseFreesTheSlot(t *testing.T) {
	store := NewMemoryReservationStore()
	ctx := context.Background()

	require.NoError(t, store.Reserve(ctx, "2026-03-02", "09:00", 1))
	assert.ErrorIs(t, store.Reserve(ctx, "2026-03-02", "09:00", 1), ErrSlotFull)

	require.NoError(t, store.Release(ctx, "2026-03-02", "09:00"))
	assert.NoError(t, store.Reserve(ctx, "2026-03-02", "09:00", 1))

	// Releasing an empty slot is a no-op, not an underflow.
	require.NoError(t, store.Release(ctx, "2026-03-02", "12:00"))
	count, err := store.CountBookings(ctx, "2026-03-02", "12:00")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCountsForDayGroupsByStartTime(t *testing.T) {
	store := NewMemoryReservationStore()
	ctx := context.Background()

	require.NoError(t, store.Reserve(ctx, "2026-03-02", "09:00", 5))
	require.NoError(t, store.Reserve(ctx, "2026-03-02", "09:00", 5))
	require.NoError(t, store.Reserve(ctx, "2026-03-02", "10:30", 5))
	require.NoError(t, store.Reserve(ctx, "2026-03-03", "09:00", 5))

	counts, err := store.CountsForDay(ctx, "2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"09:00": 2, "10:30": 1}, counts)
}
