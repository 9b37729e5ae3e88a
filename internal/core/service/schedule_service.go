package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/counselling-appointment/booking-system/internal/core/domain"
	"github.com/counselling-appointment/booking-system/internal/core/ports"
)

type scheduleService struct {
	slots    ports.SlotRepository
	holidays ports.HolidayRepository
	log      zerolog.Logger
	now      func() time.Time
}

// NewScheduleService returns a ScheduleService reading the current business
// week from the slot store.
func NewScheduleService(slots ports.SlotRepository, holidays ports.HolidayRepository, log zerolog.Logger) ports.ScheduleService {
	return &scheduleService{
		slots:    slots,
		holidays: holidays,
		log:      log,
		now:      time.Now,
	}
}

// FetchWeek assembles the Monday-to-Friday view. Every (date, slot) pair
// absent from the store is filled with an implicit Free record; holiday
// dates carry no slots at all.
func (s *scheduleService) FetchWeek(ctx context.Context) (*ports.WeekSchedule, error) {
	holidays, err := s.holidays.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch week: holidays: %w", err)
	}
	holidaySet := make(map[string]struct{}, len(holidays))
	for _, d := range holidays {
		holidaySet[d] = struct{}{}
	}

	week := &ports.WeekSchedule{}
	for _, day := range domain.BusinessWeek(s.now()) {
		if _, off := holidaySet[day.Date]; off {
			week.Days = append(week.Days, ports.DaySchedule{
				Date:    day.Date,
				DayName: day.DayName,
				Holiday: true,
			})
			continue
		}

		stored, err := s.slots.ListDay(ctx, day.Date)
		if err != nil {
			return nil, fmt.Errorf("fetch week: list %s: %w", day.Date, err)
		}

		daySlots := make(map[string]domain.SlotRecord, len(domain.TimeSlots))
		for _, label := range domain.TimeSlots {
			if rec, ok := stored[label]; ok {
				daySlots[label] = rec
			} else {
				daySlots[label] = domain.FreeSlot(day.Date, label)
			}
		}
		week.Days = append(week.Days, ports.DaySchedule{
			Date:    day.Date,
			DayName: day.DayName,
			Slots:   daySlots,
		})
	}
	return week, nil
}

func (s *scheduleService) Holidays(ctx context.Context) ([]string, error) {
	dates, err := s.holidays.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list holidays: %w", err)
	}
	return dates, nil
}
