package availability

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"detailify/models"
)

// Calculator computes bookable time slots from a working-hours rule and a
// snapshot of existing booking counts. It performs no I/O; callers supply
// the counts snapshot and must go through the reservation store's atomic
// Reserve to actually claim a slot.
type Calculator struct{}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// parseClock converts an "HH:MM" string to minutes from midnight.
func parseClock(clock string) (int, error) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed time %q", clock)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("malformed time %q", clock)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("malformed time %q", clock)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("time %q out of range", clock)
	}
	return hours*60 + minutes, nil
}

// formatClock renders minutes from midnight as "HH:MM".
func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ComputeSlots generates the day's slots from the weekday rule, starting at
// StartTime and stepping by the slot duration until a slot would start at or
// after EndTime. Booked counts default to zero for slots absent from the
// snapshot.
func (c *Calculator) ComputeSlots(rule *models.WorkingHoursRule, bookingCounts map[string]int) ([]models.TimeSlot, error) {
	if rule == nil || !rule.IsActive {
		return []models.TimeSlot{}, nil
	}
	if rule.SlotDurationMinutes <= 0 {
		return nil, fmt.Errorf("invalid slot duration %d", rule.SlotDurationMinutes)
	}

	start, err := parseClock(rule.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid working-hours start: %w", err)
	}
	end, err := parseClock(rule.EndTime)
	if err != nil {
		return nil, fmt.Errorf("invalid working-hours end: %w", err)
	}

	var slots []models.TimeSlot
	for at := start; at < end; at += rule.SlotDurationMinutes {
		label := formatClock(at)
		booked := bookingCounts[label]
		slots = append(slots, models.TimeSlot{
			StartTime:   label,
			Label:       label,
			Capacity:    rule.MaxBookingsPerSlot,
			BookedCount: booked,
			IsAvailable: booked < rule.MaxBookingsPerSlot,
		})
	}
	if slots == nil {
		slots = []models.TimeSlot{}
	}
	return slots, nil
}

// IsWorkingDay reports whether the date's weekday is in the active-day set.
// Used upstream to reject a date before slot computation is attempted.
func IsWorkingDay(date time.Time, activeDays []int) bool {
	weekday := int(date.Weekday())
	for _, day := range activeDays {
		if day == weekday {
			return true
		}
	}
	return false
}
