package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/counselling-appointment/booking-system/internal/core/domain"
	"github.com/counselling-appointment/booking-system/internal/core/ports"
)

func newAdminFixture() (ports.AdminService, *stubSlotRepo, *stubHolidayRepo) {
	slots := newStubSlotRepo()
	holidays := &stubHolidayRepo{}
	return NewAdminService(slots, holidays, discardLogger), slots, holidays
}

func seedBooked(slots *stubSlotRepo, date, slot, userID string) {
	slots.records[slotKey(date, slot)] = &domain.SlotRecord{
		Date:               date,
		TimeSlot:           slot,
		Status:             domain.StatusBooked,
		Name:               "A",
		Phone:              "123",
		RegistrationNumber: "REG-1",
		Reason:             "checkup",
		UserID:             userID,
	}
}

// ---------------------------------------------------------------------------
// BlockSlot / UnblockOrCancel
// ---------------------------------------------------------------------------

func TestAdminService_BlockThenUnblock_RoundTrip(t *testing.T) {
	svc, slots, _ := newAdminFixture()

	if err := svc.BlockSlot(context.Background(), "2025-03-13", "9:00-10:00"); err != nil {
		t.Fatalf("block: %v", err)
	}
	rec := slots.records[slotKey("2025-03-13", "9:00-10:00")]
	if rec == nil || rec.Status != domain.StatusBlocked {
		t.Fatalf("expected Blocked record, got %+v", rec)
	}

	if err := svc.UnblockOrCancel(context.Background(), "2025-03-13", "9:00-10:00"); err != nil {
		t.Fatalf("unblock: %v", err)
	}
	if _, ok := slots.records[slotKey("2025-03-13", "9:00-10:00")]; ok {
		t.Error("unblocked key must revert to implicit Free")
	}
}

func TestAdminService_BlockSlot_OnlyFromFree(t *testing.T) {
	svc, slots, _ := newAdminFixture()
	seedBooked(slots, "2025-03-13", "9:00-10:00", "U1")

	err := svc.BlockSlot(context.Background(), "2025-03-13", "9:00-10:00")
	if !errors.Is(err, domain.ErrSlotNotFree) {
		t.Fatalf("expected ErrSlotNotFree, got %v", err)
	}
	if slots.records[slotKey("2025-03-13", "9:00-10:00")].UserID != "U1" {
		t.Error("failed block must not disturb the booking")
	}
}

func TestAdminService_BlockSlot_HolidayRejected(t *testing.T) {
	svc, _, holidays := newAdminFixture()
	holidays.dates = []string{"2025-03-13"}

	err := svc.BlockSlot(context.Background(), "2025-03-13", "9:00-10:00")
	if !errors.Is(err, domain.ErrHoliday) {
		t.Fatalf("expected ErrHoliday, got %v", err)
	}
}

func TestAdminService_UnblockOrCancel_CancelsBooking(t *testing.T) {
	svc, slots, _ := newAdminFixture()
	seedBooked(slots, "2025-03-13", "2:00-3:00", "U1")

	if err := svc.UnblockOrCancel(context.Background(), "2025-03-13", "2:00-3:00"); err != nil {
		t.Fatalf("admin cancel: %v", err)
	}
	if _, ok := slots.records[slotKey("2025-03-13", "2:00-3:00")]; ok {
		t.Error("admin cancel must delete the booking")
	}
}

func TestAdminService_UnblockOrCancel_FreeSlot(t *testing.T) {
	svc, _, _ := newAdminFixture()

	err := svc.UnblockOrCancel(context.Background(), "2025-03-13", "2:00-3:00")
	if !errors.Is(err, domain.ErrSlotNotFound) {
		t.Fatalf("expected ErrSlotNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// CompleteSession
// ---------------------------------------------------------------------------

func TestAdminService_CompleteSession_MergesWithoutTouchingIdentity(t *testing.T) {
	svc, slots, _ := newAdminFixture()
	seedBooked(slots, "2025-03-13", "9:00-10:00", "U1")

	err := svc.CompleteSession(context.Background(), ports.CompleteSessionInput{
		Date:            "2025-03-13",
		TimeSlot:        "9:00-10:00",
		Feedback:        "good progress",
		SessionComplete: true,
	})
	if err != nil {
		t.Fatalf("complete session: %v", err)
	}

	rec := slots.records[slotKey("2025-03-13", "9:00-10:00")]
	if rec.Feedback != "good progress" || !rec.SessionComplete {
		t.Errorf("annotation not merged: %+v", rec)
	}
	if rec.Name != "A" || rec.Phone != "123" || rec.Reason != "checkup" || rec.UserID != "U1" {
		t.Errorf("identity fields must be unchanged: %+v", rec)
	}
	if rec.Status != domain.StatusBooked {
		t.Errorf("status must remain Booked, got %s", rec.Status)
	}
}

func TestAdminService_CompleteSession_FreeSlotRejected(t *testing.T) {
	svc, slots, _ := newAdminFixture()

	err := svc.CompleteSession(context.Background(), ports.CompleteSessionInput{
		Date: "2025-03-13", TimeSlot: "9:00-10:00", Feedback: "x", SessionComplete: true,
	})
	if !errors.Is(err, domain.ErrNotBooked) {
		t.Fatalf("expected ErrNotBooked, got %v", err)
	}
	if len(slots.records) != 0 {
		t.Error("rejected completion must not create a record")
	}
}

func TestAdminService_CompleteSession_BlockedSlotRejected(t *testing.T) {
	svc, slots, _ := newAdminFixture()
	slots.records[slotKey("2025-03-13", "9:00-10:00")] = &domain.SlotRecord{
		Date: "2025-03-13", TimeSlot: "9:00-10:00", Status: domain.StatusBlocked,
	}

	err := svc.CompleteSession(context.Background(), ports.CompleteSessionInput{
		Date: "2025-03-13", TimeSlot: "9:00-10:00", SessionComplete: true,
	})
	if !errors.Is(err, domain.ErrNotBooked) {
		t.Fatalf("expected ErrNotBooked, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Holidays
// ---------------------------------------------------------------------------

func TestAdminService_Holiday_MarkUnmarkRoundTrip(t *testing.T) {
	svc, slots, holidays := newAdminFixture()
	seedBooked(slots, "2025-03-13", "9:00-10:00", "U1")

	if err := svc.MarkHoliday(context.Background(), "2025-03-13"); err != nil {
		t.Fatalf("mark holiday: %v", err)
	}
	if len(holidays.dates) != 1 || holidays.dates[0] != "2025-03-13" {
		t.Fatalf("holiday set wrong: %v", holidays.dates)
	}

	if err := svc.UnmarkHoliday(context.Background(), "2025-03-13"); err != nil {
		t.Fatalf("unmark holiday: %v", err)
	}
	if len(holidays.dates) != 0 {
		t.Errorf("holiday set must be restored, got %v", holidays.dates)
	}

	// Slot records under the date are unaffected by either call.
	rec := slots.records[slotKey("2025-03-13", "9:00-10:00")]
	if rec == nil || rec.Status != domain.StatusBooked {
		t.Error("holiday toggling must not touch slot records")
	}
}

func TestAdminService_MarkHoliday_BadDate(t *testing.T) {
	svc, _, _ := newAdminFixture()

	if err := svc.MarkHoliday(context.Background(), "next friday"); !errors.Is(err, domain.ErrBadDate) {
		t.Fatalf("expected ErrBadDate, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// ExportBookedRows
// ---------------------------------------------------------------------------

func TestAdminService_Export_ProjectsBookedOnlyInOrder(t *testing.T) {
	svc, slots, _ := newAdminFixture()

	seedBooked(slots, "2025-03-14", "8:30-9:00", "U2")
	seedBooked(slots, "2025-03-13", "3:00-4:00", "U1")
	seedBooked(slots, "2025-03-13", "9:00-10:00", "U1")
	slots.records[slotKey("2025-03-13", "9:00-10:00")].Feedback = "resolved"
	slots.records[slotKey("2025-03-13", "9:00-10:00")].SessionComplete = true
	slots.records[slotKey("2025-03-13", "2:00-3:00")] = &domain.SlotRecord{
		Date: "2025-03-13", TimeSlot: "2:00-3:00", Status: domain.StatusBlocked,
	}

	rows, err := svc.ExportBookedRows(context.Background(),
		[]string{"2025-03-14", "2025-03-13", "2025-03-12"})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 booked rows, got %d", len(rows))
	}

	want := ports.ExportRow{
		Date:               "2025-03-13",
		Slot:               "9:00-10:00",
		Name:               "A",
		RegistrationNumber: "REG-1",
		Phone:              "123",
		Reason:             "checkup",
		Feedback:           "resolved",
		SessionComplete:    "Yes",
	}
	if !reflect.DeepEqual(rows[0], want) {
		t.Errorf("first row mismatch:\n got %+v\nwant %+v", rows[0], want)
	}
	if rows[1].Slot != "3:00-4:00" || rows[1].SessionComplete != "No" {
		t.Errorf("second row mismatch: %+v", rows[1])
	}
	if rows[2].Date != "2025-03-14" {
		t.Errorf("rows must be ordered by date then slot: %+v", rows[2])
	}
}

func TestAdminService_Export_SkipsHolidayDates(t *testing.T) {
	svc, slots, holidays := newAdminFixture()
	seedBooked(slots, "2025-03-13", "9:00-10:00", "U1")
	holidays.dates = []string{"2025-03-13"}

	rows, err := svc.ExportBookedRows(context.Background(), []string{"2025-03-13"})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("holiday dates offer no slots, got %d rows", len(rows))
	}
}
