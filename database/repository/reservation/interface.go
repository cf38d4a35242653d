package reservationRepo

import (
	"context"
	"errors"
)

// ErrSlotFull is returned by Reserve when the slot has no remaining capacity.
var ErrSlotFull = errors.New("slot full")

// ReservationStore tracks how many bookings occupy each slot and performs
// the capacity-checked reservation. Reserve MUST be atomic: two concurrent
// calls against a slot with one remaining unit yield exactly one success
// and one ErrSlotFull.
type ReservationStore interface {
	// CountBookings returns the number of reservations for a slot.
	CountBookings(ctx context.Context, date, startTime string) (int, error)
	// CountsForDay returns a startTime -> count snapshot for a whole day.
	CountsForDay(ctx context.Context, date string) (map[string]int, error)
	// Reserve claims one unit of capacity for the slot, failing with
	// ErrSlotFull once capacity is reached.
	Reserve(ctx context.Context, date, startTime string, capacity int) error
	// Release gives one unit back (used when a payment is abandoned).
	Release(ctx context.Context, date, startTime string) error
}
