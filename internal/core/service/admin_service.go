package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/counselling-appointment/booking-system/internal/core/domain"
	"github.com/counselling-appointment/booking-system/internal/core/ports"
)

type adminService struct {
	slots    ports.SlotRepository
	holidays ports.HolidayRepository
	log      zerolog.Logger
}

// NewAdminService returns the moderation engine. Role enforcement happens at
// the transport layer; every operation here assumes an admin caller.
func NewAdminService(slots ports.SlotRepository, holidays ports.HolidayRepository, log zerolog.Logger) ports.AdminService {
	return &adminService{slots: slots, holidays: holidays, log: log}
}

// BlockSlot is only valid from implicit Free: an existing record, whatever
// its status, refuses the transition.
func (s *adminService) BlockSlot(ctx context.Context, date, slot string) error {
	if err := validateKey(date, slot); err != nil {
		return err
	}
	if err := s.rejectHoliday(ctx, date); err != nil {
		return err
	}

	rec := &domain.SlotRecord{Date: date, TimeSlot: slot, Status: domain.StatusBlocked}
	if err := s.slots.CreateIfAbsent(ctx, rec); err != nil {
		if errors.Is(err, domain.ErrSlotTaken) {
			return domain.ErrSlotNotFree
		}
		return fmt.Errorf("block slot: %w", err)
	}

	s.log.Info().Str("date", date).Str("slot", slot).Msg("slot blocked")
	return nil
}

// UnblockOrCancel deletes the record whether it is Blocked or Booked. For a
// booking this cancels on behalf of the owner.
func (s *adminService) UnblockOrCancel(ctx context.Context, date, slot string) error {
	if err := validateKey(date, slot); err != nil {
		return err
	}

	current, err := s.slots.Get(ctx, date, slot)
	if err != nil {
		return err
	}

	if err := s.slots.Delete(ctx, date, slot); err != nil {
		return fmt.Errorf("unblock or cancel: %w", err)
	}

	s.log.Info().
		Str("date", date).
		Str("slot", slot).
		Str("was", string(current.Status)).
		Msg("slot freed by admin")
	return nil
}

// CompleteSession merges feedback and completion into an existing booking.
// Identity fields (name, phone, reason, owner) are never touched.
func (s *adminService) CompleteSession(ctx context.Context, input ports.CompleteSessionInput) error {
	if err := validateKey(input.Date, input.TimeSlot); err != nil {
		return err
	}

	current, err := s.slots.Get(ctx, input.Date, input.TimeSlot)
	if err != nil {
		if errors.Is(err, domain.ErrSlotNotFound) {
			return domain.ErrNotBooked
		}
		return err
	}
	if current.Status != domain.StatusBooked {
		return domain.ErrNotBooked
	}

	if err := s.slots.Merge(ctx, input.Date, input.TimeSlot, input.Feedback, input.SessionComplete); err != nil {
		return fmt.Errorf("complete session: %w", err)
	}

	s.log.Info().
		Str("date", input.Date).
		Str("slot", input.TimeSlot).
		Bool("session_complete", input.SessionComplete).
		Msg("session annotated")
	return nil
}

func (s *adminService) MarkHoliday(ctx context.Context, date string) error {
	if _, err := domain.ParseDate(date); err != nil {
		return err
	}
	if err := s.holidays.Add(ctx, date); err != nil {
		return fmt.Errorf("mark holiday: %w", err)
	}
	s.log.Info().Str("date", date).Msg("holiday marked")
	return nil
}

func (s *adminService) UnmarkHoliday(ctx context.Context, date string) error {
	if _, err := domain.ParseDate(date); err != nil {
		return err
	}
	if err := s.holidays.Remove(ctx, date); err != nil {
		return fmt.Errorf("unmark holiday: %w", err)
	}
	s.log.Info().Str("date", date).Msg("holiday unmarked")
	return nil
}

// ExportBookedRows projects every Booked record under the given dates into
// the spreadsheet row shape, ordered by date then slot.
func (s *adminService) ExportBookedRows(ctx context.Context, dates []string) ([]ports.ExportRow, error) {
	holidays, err := s.holidays.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("export: holidays: %w", err)
	}
	holidaySet := make(map[string]struct{}, len(holidays))
	for _, d := range holidays {
		holidaySet[d] = struct{}{}
	}

	sorted := append([]string(nil), dates...)
	sort.Strings(sorted)

	var rows []ports.ExportRow
	for _, date := range sorted {
		if _, off := holidaySet[date]; off {
			continue
		}
		stored, err := s.slots.ListDay(ctx, date)
		if err != nil {
			return nil, fmt.Errorf("export: %s: %w", date, err)
		}
		for _, label := range domain.TimeSlots {
			rec, ok := stored[label]
			if !ok || rec.Status != domain.StatusBooked {
				continue
			}
			complete := "No"
			if rec.SessionComplete {
				complete = "Yes"
			}
			rows = append(rows, ports.ExportRow{
				Date:               date,
				Slot:               label,
				Name:               rec.Name,
				RegistrationNumber: rec.RegistrationNumber,
				Phone:              rec.Phone,
				Reason:             rec.Reason,
				Feedback:           rec.Feedback,
				SessionComplete:    complete,
			})
		}
	}
	return rows, nil
}

func (s *adminService) rejectHoliday(ctx context.Context, date string) error {
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

func validateKey(date, slot string) error {
	if !domain.ValidTimeSlot(slot) {
		return domain.ErrUnknownTimeSlot
	}
	if _, err := domain.ParseDate(date); err != nil {
		return err
	}
	return nil
}
