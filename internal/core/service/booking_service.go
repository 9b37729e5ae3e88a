package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/counselling-appointment/booking-system/internal/core/domain"
	"github.com/counselling-appointment/booking-system/internal/core/ports"
)

type bookingService struct {
	slots    ports.SlotRepository
	holidays ports.HolidayRepository
	log      zerolog.Logger
	now      func() time.Time
}

// NewBookingService returns a BookingService backed by the given repositories.
func NewBookingService(slots ports.SlotRepository, holidays ports.HolidayRepository, log zerolog.Logger) ports.BookingService {
	return &bookingService{
		slots:    slots,
		holidays: holidays,
		log:      log,
		now:      time.Now,
	}
}

// BookSlot claims a free slot for the requester.
//
// The pre-checks mirror what the caller saw when it selected the slot, but
// time passes between selection and submission, so the record is re-read and
// the final insert is conditional on the key still being absent. A race that
// slips past the re-read surfaces as domain.ErrSlotTaken from the store, not
// as a silent overwrite.
func (s *bookingService) BookSlot(ctx context.Context, input ports.BookSlotInput) (*domain.SlotRecord, error) {
	if !domain.ValidTimeSlot(input.TimeSlot) {
		return nil, domain.ErrUnknownTimeSlot
	}
	date, err := domain.ParseDate(input.Date)
	if err != nil {
		return nil, err
	}
	if domain.BeforeToday(date, s.now()) {
		return nil, domain.ErrPastDate
	}

	if err := s.rejectHoliday(ctx, input.Date); err != nil {
		return nil, err
	}

	// Second check before committing.
	current, err := s.slots.Get(ctx, input.Date, input.TimeSlot)
	switch {
	case err == nil:
		if current.Status == domain.StatusBlocked {
			return nil, domain.ErrSlotBlocked
		}
		return nil, domain.ErrSlotTaken
	case errors.Is(err, domain.ErrSlotNotFound):
		// free, proceed
	default:
		return nil, fmt.Errorf("book slot: %w", err)
	}

	rec := &domain.SlotRecord{
		Date:               input.Date,
		TimeSlot:           input.TimeSlot,
		Status:             domain.StatusBooked,
		Name:               input.Name,
		Phone:              input.Phone,
		RegistrationNumber: input.RegistrationNumber,
		Reason:             input.Reason,
		UserID:             input.UserID,
		CreatedAt:          s.now().UTC(),
	}
	if err := s.slots.CreateIfAbsent(ctx, rec); err != nil {
		if errors.Is(err, domain.ErrSlotTaken) {
			s.log.Info().Str("date", input.Date).Str("slot", input.TimeSlot).Msg("booking lost the race")
			return nil, domain.ErrSlotTaken
		}
		s.log.Error().Err(err).Str("date", input.Date).Str("slot", input.TimeSlot).Msg("failed to write booking")
		return nil, fmt.Errorf("book slot: %w", err)
	}

	s.log.Info().
		Str("date", input.Date).
		Str("slot", input.TimeSlot).
		Str("user_id", input.UserID).
		Msg("slot booked")

	return rec, nil
}

// CancelBooking deletes the requester's booking. Only the owner may cancel;
// admins cancel on a user's behalf through the moderation engine instead.
func (s *bookingService) CancelBooking(ctx context.Context, date, slot, requesterID string) error {
	if !domain.ValidTimeSlot(slot) {
		return domain.ErrUnknownTimeSlot
	}
	if _, err := domain.ParseDate(date); err != nil {
		return err
	}

	current, err := s.slots.Get(ctx, date, slot)
	if err != nil {
		return err
	}
	if current.Status != domain.StatusBooked {
		return domain.ErrNotBooked
	}
	if current.UserID != requesterID {
		return domain.ErrNotSlotOwner
	}

	if err := s.slots.Delete(ctx, date, slot); err != nil {
		return fmt.Errorf("cancel booking: %w", err)
	}

	s.log.Info().Str("date", date).Str("slot", slot).Str("user_id", requesterID).Msg("booking cancelled")
	return nil
}

// ListUpcoming scans the current week's non-holiday dates and returns the
// requester's bookings in date-then-slot order.
func (s *bookingService) ListUpcoming(ctx context.Context, requesterID string) ([]domain.SlotRecord, error) {
	holidays, err := s.holidays.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list upcoming: holidays: %w", err)
	}
	holidaySet := make(map[string]struct{}, len(holidays))
	for _, d := range holidays {
		holidaySet[d] = struct{}{}
	}

	var mine []domain.SlotRecord
	for _, day := range domain.BusinessWeek(s.now()) {
		if _, off := holidaySet[day.Date]; off {
			continue
		}
		stored, err := s.slots.ListDay(ctx, day.Date)
		if err != nil {
			return nil, fmt.Errorf("list upcoming: %s: %w", day.Date, err)
		}
		for _, rec := range stored {
			if rec.UserID == requesterID {
				mine = append(mine, rec)
			}
		}
	}

	sort.Slice(mine, func(i, j int) bool {
		if mine[i].Date != mine[j].Date {
			return mine[i].Date < mine[j].Date
		}
		return domain.SlotIndex(mine[i].TimeSlot) < domain.SlotIndex(mine[j].TimeSlot)
	})
	return mine, nil
}

func (s *bookingService) rejectHoliday(ctx context.Context, date string) error {
	holidays, err := s.holidays.List(ctx)
	if err != nil {
		return fmt.Errorf("holiday check: %w", err)
	}
	for _, d := range holidays {
		if d == date {
			return domain.ErrHoliday
		}
	}
	return nil
}
