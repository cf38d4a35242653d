package scheduleRepo

import (
	"context"
	"errors"

	"detailify/models"
)

// ErrNoRule is returned when a weekday has no configured working hours.
var ErrNoRule = errors.New("no working-hours rule for weekday")

// ScheduleStore holds the admin-configured working-hours calendar.
// The booking core only reads it; rules are created and edited through
// the admin surface.
type ScheduleStore interface {
	GetRule(ctx context.Context, dayOfWeek int) (*models.WorkingHoursRule, error)
	GetAll(ctx context.Context) ([]models.WorkingHoursRule, error)
	Upsert(ctx context.Context, rule models.WorkingHoursRule) error
}
