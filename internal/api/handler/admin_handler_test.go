package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"

	"github.com/counselling-appointment/booking-system/internal/core/domain"
	"github.com/counselling-appointment/booking-system/internal/core/ports"
)

type stubAdminService struct {
	blockFn    func(ctx context.Context, date, slot string) error
	unblockFn  func(ctx context.Context, date, slot string) error
	completeFn func(ctx context.Context, input ports.CompleteSessionInput) error
	markFn     func(ctx context.Context, date string) error
	unmarkFn   func(ctx context.Context, date string) error
	exportFn   func(ctx context.Context, dates []string) ([]ports.ExportRow, error)
}

func (s *stubAdminService) BlockSlot(ctx context.Context, date, slot string) error {
	return s.blockFn(ctx, date, slot)
}

func (s *stubAdminService) UnblockOrCancel(ctx context.Context, date, slot string) error {
	return s.unblockFn(ctx, date, slot)
}

func (s *stubAdminService) CompleteSession(ctx context.Context, input ports.CompleteSessionInput) error {
	return s.completeFn(ctx, input)
}

func (s *stubAdminService) MarkHoliday(ctx context.Context, date string) error {
	return s.markFn(ctx, date)
}

func (s *stubAdminService) UnmarkHoliday(ctx context.Context, date string) error {
	return s.unmarkFn(ctx, date)
}

func (s *stubAdminService) ExportBookedRows(ctx context.Context, dates []string) ([]ports.ExportRow, error) {
	return s.exportFn(ctx, dates)
}

func TestAdminHandler_Week_CarriesFullDetails(t *testing.T) {
	week := &ports.WeekSchedule{
		Days: []ports.DaySchedule{
			{
				Date: "2025-03-10", DayName: "Monday",
				Slots: map[string]domain.SlotRecord{
					"8:30-9:00": {
						Date: "2025-03-10", TimeSlot: "8:30-9:00",
						Status: domain.StatusBooked,
						Name:   "Alice", Phone: "555-0101", UserID: "uid-1",
					},
				},
			},
		},
	}
	schedule := &stubScheduleService{
		weekFn: func(ctx context.Context) (*ports.WeekSchedule, error) { return week, nil },
	}
	handler := NewAdminHandler(&stubAdminService{}, schedule)

	c, rec := newTestContext(t, http.MethodGet, "/admin/schedule", "")

	if err := handler.Week(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp adminWeekResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	slot := resp.Days[0].Slots["8:30-9:00"]
	if slot.Name != "Alice" || slot.Phone != "555-0101" || slot.UserID != "uid-1" {
		t.Fatalf("admin view missing booking details: %+v", slot)
	}
}

func TestAdminHandler_Block_Success(t *testing.T) {
	var gotDate, gotSlot string
	admin := &stubAdminService{
		blockFn: func(ctx context.Context, date, slot string) error {
			gotDate, gotSlot = date, slot
			return nil
		},
	}
	handler := NewAdminHandler(admin, &stubScheduleService{})

	c, rec := newTestContext(t, http.MethodPost, "/admin/slots/2025-03-13/8:30-9:00/block", "")
	c.SetParamNames("date", "slot")
	c.SetParamValues("2025-03-13", "8:30-9:00")

	if err := handler.Block(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if gotDate != "2025-03-13" || gotSlot != "8:30-9:00" {
		t.Fatalf("params not forwarded: %s %s", gotDate, gotSlot)
	}
}

func TestAdminHandler_Block_NotFree(t *testing.T) {
	admin := &stubAdminService{
		blockFn: func(ctx context.Context, date, slot string) error {
			return domain.ErrSlotNotFree
		},
	}
	handler := NewAdminHandler(admin, &stubScheduleService{})

	c, _ := newTestContext(t, http.MethodPost, "/admin/slots/2025-03-13/8:30-9:00/block", "")
	c.SetParamNames("date", "slot")
	c.SetParamValues("2025-03-13", "8:30-9:00")

	if err := handler.Block(c); !errors.Is(err, domain.ErrSlotNotFree) {
		t.Fatalf("expected ErrSlotNotFree, got %v", err)
	}
}

func TestAdminHandler_CompleteSession(t *testing.T) {
	var got ports.CompleteSessionInput
	admin := &stubAdminService{
		completeFn: func(ctx context.Context, input ports.CompleteSessionInput) error {
			got = input
			return nil
		},
	}
	handler := NewAdminHandler(admin, &stubScheduleService{})

	body := `{"feedback":"good progress","session_complete":true}`
	c, rec := newTestContext(t, http.MethodPut, "/admin/slots/2025-03-13/8:30-9:00/session", body)
	c.SetParamNames("date", "slot")
	c.SetParamValues("2025-03-13", "8:30-9:00")

	if err := handler.CompleteSession(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if got.Date != "2025-03-13" || got.TimeSlot != "8:30-9:00" {
		t.Fatalf("slot key not forwarded: %+v", got)
	}
	if got.Feedback != "good progress" || !got.SessionComplete {
		t.Fatalf("annotation not forwarded: %+v", got)
	}
}

func TestAdminHandler_CompleteSession_NotBooked(t *testing.T) {
	admin := &stubAdminService{
		completeFn: func(ctx context.Context, input ports.CompleteSessionInput) error {
			return domain.ErrNotBooked
		},
	}
	handler := NewAdminHandler(admin, &stubScheduleService{})

	c, _ := newTestContext(t, http.MethodPut, "/admin/slots/2025-03-13/8:30-9:00/session", `{}`)
	c.SetParamNames("date", "slot")
	c.SetParamValues("2025-03-13", "8:30-9:00")

	if err := handler.CompleteSession(c); !errors.Is(err, domain.ErrNotBooked) {
		t.Fatalf("expected ErrNotBooked, got %v", err)
	}
}

func TestAdminHandler_HolidayRoundTrip(t *testing.T) {
	var marked, unmarked string
	admin := &stubAdminService{
		markFn: func(ctx context.Context, date string) error {
			marked = date
			return nil
		},
		unmarkFn: func(ctx context.Context, date string) error {
			unmarked = date
			return nil
		},
	}
	handler := NewAdminHandler(admin, &stubScheduleService{})

	c, rec := newTestContext(t, http.MethodPost, "/admin/holidays/2025-03-14", "")
	c.SetParamNames("date")
	c.SetParamValues("2025-03-14")
	if err := handler.MarkHoliday(c); err != nil {
		t.Fatalf("mark error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	c, _ = newTestContext(t, http.MethodDelete, "/admin/holidays/2025-03-14", "")
	c.SetParamNames("date")
	c.SetParamValues("2025-03-14")
	if err := handler.UnmarkHoliday(c); err != nil {
		t.Fatalf("unmark error: %v", err)
	}

	if marked != "2025-03-14" || unmarked != "2025-03-14" {
		t.Fatalf("dates not forwarded: %s %s", marked, unmarked)
	}
}

func TestAdminHandler_Export(t *testing.T) {
	prev := timeNow
	timeNow = func() time.Time {
		return time.Date(2025, time.March, 12, 10, 0, 0, 0, time.UTC)
	}
	defer func() { timeNow = prev }()

	var gotDates []string
	admin := &stubAdminService{
		exportFn: func(ctx context.Context, dates []string) ([]ports.ExportRow, error) {
			gotDates = dates
			return []ports.ExportRow{
				{
					Date: "2025-03-13", Slot: "8:30-9:00", Name: "Alice",
					RegistrationNumber: "S-042", Phone: "555-0101",
					Reason: "exam stress", Feedback: "", SessionComplete: "No",
				},
			}, nil
		},
	}
	handler := NewAdminHandler(admin, &stubScheduleService{})

	c, rec := newTestContext(t, http.MethodGet, "/admin/export", "")

	if err := handler.Export(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	// 2025-03-12 is a Wednesday, so the window is that week's Mon-Fri.
	want := []string{"2025-03-10", "2025-03-11", "2025-03-12", "2025-03-13", "2025-03-14"}
	if len(gotDates) != len(want) {
		t.Fatalf("expected %d dates, got %v", len(want), gotDates)
	}
	for i, d := range want {
		if gotDates[i] != d {
			t.Fatalf("date %d: expected %s, got %s", i, d, gotDates[i])
		}
	}

	disposition := rec.Header().Get(echo.HeaderContentDisposition)
	if !strings.Contains(disposition, "Weekly_Appointments.xlsx") {
		t.Fatalf("unexpected content disposition: %s", disposition)
	}

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("response is not a readable workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Appointments")
	if err != nil {
		t.Fatalf("reading sheet: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header plus one row, got %d", len(rows))
	}
	if rows[1][0] != "2025-03-13" || rows[1][2] != "Alice" {
		t.Fatalf("unexpected exported row: %v", rows[1])
	}
}

func TestAdminHandler_Export_ServiceError(t *testing.T) {
	admin := &stubAdminService{
		exportFn: func(ctx context.Context, dates []string) ([]ports.ExportRow, error) {
			return nil, errors.New("store offline")
		},
	}
	handler := NewAdminHandler(admin, &stubScheduleService{})

	c, _ := newTestContext(t, http.MethodGet, "/admin/export", "")

	if err := handler.Export(c); err == nil {
		t.Fatalf("expected error to propagate")
	}
}
