package models

// WorkingHoursRule is the admin-configured schedule for one weekday.
// Times are "HH:MM" strings; DayOfWeek follows time.Weekday (0 = Sunday).
type WorkingHoursRule struct {
	DayOfWeek           int    `bson:"dayOfWeek" json:"dayOfWeek"`
	StartTime           string `bson:"startTime" json:"startTime"` // e.g. "09:00"
	EndTime             string `bson:"endTime" json:"endTime"`     // e.g. "17:00"
	SlotDurationMinutes int    `bson:"slotDurationMinutes" json:"slotDurationMinutes"`
	MaxBookingsPerSlot  int    `bson:"maxBookingsPerSlot" json:"maxBookingsPerSlot"`
	IsActive            bool   `bson:"isActive" json:"isActive"`
}

// TimeSlot is one bookable window on a given day, computed fresh per request.
type TimeSlot struct {
	StartTime   string `json:"startTime"` // "HH:MM"
	Label       string `json:"label"`
	Capacity    int    `json:"capacity"`
	BookedCount int    `json:"bookedCount"`
	IsAvailable bool   `json:"isAvailable"`
}
