package ports

import (
	"context"

	"github.com/counselling-appointment/booking-system/internal/core/domain"
)

// DaySchedule is one business day of the week view. Slots maps every time
// slot label to its record; keys absent from the store appear as Free.
// Holiday days carry no slots.
type DaySchedule struct {
	Date    string
	DayName string
	Holiday bool
	Slots   map[string]domain.SlotRecord
}

// WeekSchedule is the full Monday-to-Friday view.
type WeekSchedule struct {
	Days []DaySchedule
}

// ScheduleService assembles the week view from the slot store. Every call
// re-fetches from the store; nothing is cached between requests, since other
// clients mutate concurrently.
type ScheduleService interface {
	FetchWeek(ctx context.Context) (*WeekSchedule, error)
	Holidays(ctx context.Context) ([]string, error)
}
