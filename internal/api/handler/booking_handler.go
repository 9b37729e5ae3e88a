package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/counselling-appointment/booking-system/internal/api/metrics"
	"github.com/counselling-appointment/booking-system/internal/core/domain"
	"github.com/counselling-appointment/booking-system/internal/core/ports"
)

type BookingHandler struct {
	bookings ports.BookingService
	schedule ports.ScheduleService
}

func NewBookingHandler(bookings ports.BookingService, schedule ports.ScheduleService) *BookingHandler {
	return &BookingHandler{bookings: bookings, schedule: schedule}
}

// Week returns the current week's slot grid for the booking view. Slots are
// reduced to their status; another student's booking details never leave the
// server.
//
// @Summary      Current week schedule
// @Tags         schedule
// @Produce      json
// @Success      200  {object}  weekScheduleResponse
// @Router       /schedule [get]
func (h *BookingHandler) Week(c echo.Context) error {
	viewerID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	week, err := h.schedule.FetchWeek(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toWeekScheduleResponse(week, viewerID))
}

// Book claims a free slot for the requester.
//
// @Summary      Book a slot
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Param        body  body      bookSlotRequest  true  "Slot and contact details"
// @Success      201   {object}  appointmentResponse
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /appointments [post]
func (h *BookingHandler) Book(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req bookSlotRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rec, err := h.bookings.BookSlot(c.Request().Context(), ports.BookSlotInput{
		Date:               req.Date,
		TimeSlot:           req.TimeSlot,
		Name:               req.Name,
		Phone:              req.Phone,
		RegistrationNumber: req.RegistrationNumber,
		Reason:             req.Reason,
		UserID:             userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPastDate):
			metrics.BookingRejectionsTotal.WithLabelValues("past_date").Inc()
		case errors.Is(err, domain.ErrSlotTaken):
			metrics.BookingRejectionsTotal.WithLabelValues("taken").Inc()
		case errors.Is(err, domain.ErrSlotBlocked):
			metrics.BookingRejectionsTotal.WithLabelValues("blocked").Inc()
		case errors.Is(err, domain.ErrHoliday):
			metrics.BookingRejectionsTotal.WithLabelValues("holiday").Inc()
		}
		return err
	}

	metrics.BookingsTotal.Inc()
	return c.JSON(http.StatusCreated, toAppointmentResponse(*rec))
}

// Upcoming lists the requester's bookings for the current week.
//
// @Summary      Own upcoming appointments
// @Tags         appointments
// @Produce      json
// @Success      200  {array}  appointmentResponse
// @Router       /appointments [get]
func (h *BookingHandler) Upcoming(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	records, err := h.bookings.ListUpcoming(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	out := make([]appointmentResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, toAppointmentResponse(rec))
	}
	return c.JSON(http.StatusOK, out)
}

// Cancel removes the requester's own booking.
//
// @Summary      Cancel own appointment
// @Tags         appointments
// @Produce      json
// @Param        date  path  string  true  "Date (YYYY-MM-DD)"
// @Param        slot  path  string  true  "Time slot label"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /appointments/{date}/{slot} [delete]
func (h *BookingHandler) Cancel(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	date := c.Param("date")
	slot := c.Param("slot")
	if err := h.bookings.CancelBooking(c.Request().Context(), date, slot, userID); err != nil {
		return err
	}

	metrics.CancellationsTotal.WithLabelValues("owner").Inc()
	return c.NoContent(http.StatusNoContent)
}
