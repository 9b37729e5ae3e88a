package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/counselling-appointment/booking-system/internal/api/metrics"
	"github.com/counselling-appointment/booking-system/internal/core/domain"
	"github.com/counselling-appointment/booking-system/internal/core/ports"
	"github.com/counselling-appointment/booking-system/internal/infrastructure/export"
)

type AdminHandler struct {
	admin    ports.AdminService
	schedule ports.ScheduleService
}

func NewAdminHandler(admin ports.AdminService, schedule ports.ScheduleService) *AdminHandler {
	return &AdminHandler{admin: admin, schedule: schedule}
}

// Week returns the current week with full record details for moderation.
//
// @Summary      Admin week schedule
// @Tags         admin
// @Produce      json
// @Success      200  {object}  adminWeekResponse
// @Router       /admin/schedule [get]
func (h *AdminHandler) Week(c echo.Context) error {
	week, err := h.schedule.FetchWeek(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAdminWeekResponse(week))
}

// Block removes a free slot from availability.
//
// @Summary      Block a free slot
// @Tags         admin
// @Produce      json
// @Param        date  path  string  true  "Date (YYYY-MM-DD)"
// @Param        slot  path  string  true  "Time slot label"
// @Success      204
// @Failure      409  {object}  map[string]string
// @Router       /admin/slots/{date}/{slot}/block [post]
func (h *AdminHandler) Block(c echo.Context) error {
	if err := h.admin.BlockSlot(c.Request().Context(), c.Param("date"), c.Param("slot")); err != nil {
		return err
	}
	metrics.ModerationActionsTotal.WithLabelValues("block").Inc()
	return c.NoContent(http.StatusNoContent)
}

// UnblockOrCancel deletes a Blocked or Booked record.
//
// @Summary      Unblock a slot or cancel its booking
// @Tags         admin
// @Produce      json
// @Param        date  path  string  true  "Date (YYYY-MM-DD)"
// @Param        slot  path  string  true  "Time slot label"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /admin/slots/{date}/{slot} [delete]
func (h *AdminHandler) UnblockOrCancel(c echo.Context) error {
	if err := h.admin.UnblockOrCancel(c.Request().Context(), c.Param("date"), c.Param("slot")); err != nil {
		return err
	}
	metrics.ModerationActionsTotal.WithLabelValues("unblock").Inc()
	metrics.CancellationsTotal.WithLabelValues("admin").Inc()
	return c.NoContent(http.StatusNoContent)
}

// CompleteSession annotates a booked slot with feedback and completion.
//
// @Summary      Mark a session complete with feedback
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        date  path  string                  true  "Date (YYYY-MM-DD)"
// @Param        slot  path  string                  true  "Time slot label"
// @Param        body  body  completeSessionRequest  true  "Annotation"
// @Success      204
// @Failure      409  {object}  map[string]string
// @Router       /admin/slots/{date}/{slot}/session [put]
func (h *AdminHandler) CompleteSession(c echo.Context) error {
	var req completeSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	err := h.admin.CompleteSession(c.Request().Context(), ports.CompleteSessionInput{
		Date:            c.Param("date"),
		TimeSlot:        c.Param("slot"),
		Feedback:        req.Feedback,
		SessionComplete: req.SessionComplete,
	})
	if err != nil {
		return err
	}
	metrics.ModerationActionsTotal.WithLabelValues("complete_session").Inc()
	return c.NoContent(http.StatusNoContent)
}

// MarkHoliday adds a date to the holiday set.
//
// @Summary      Mark a holiday
// @Tags         admin
// @Produce      json
// @Param        date  path  string  true  "Date (YYYY-MM-DD)"
// @Success      204
// @Router       /admin/holidays/{date} [post]
func (h *AdminHandler) MarkHoliday(c echo.Context) error {
	if err := h.admin.MarkHoliday(c.Request().Context(), c.Param("date")); err != nil {
		return err
	}
	metrics.ModerationActionsTotal.WithLabelValues("mark_holiday").Inc()
	return c.NoContent(http.StatusNoContent)
}

// UnmarkHoliday removes a date from the holiday set.
//
// @Summary      Unmark a holiday
// @Tags         admin
// @Produce      json
// @Param        date  path  string  true  "Date (YYYY-MM-DD)"
// @Success      204
// @Router       /admin/holidays/{date} [delete]
func (h *AdminHandler) UnmarkHoliday(c echo.Context) error {
	if err := h.admin.UnmarkHoliday(c.Request().Context(), c.Param("date")); err != nil {
		return err
	}
	metrics.ModerationActionsTotal.WithLabelValues("unmark_holiday").Inc()
	return c.NoContent(http.StatusNoContent)
}

// Export serves the current week's booked rows as an xlsx download.
//
// @Summary      Download this week's booked appointments
// @Tags         admin
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Router       /admin/export [get]
func (h *AdminHandler) Export(c echo.Context) error {
	ctx := c.Request().Context()

	var dates []string
	for _, day := range domain.BusinessWeek(timeNow()) {
		dates = append(dates, day.Date)
	}

	rows, err := h.admin.ExportBookedRows(ctx, dates)
	if err != nil {
		return err
	}

	data, err := export.WriteWorkbook(rows)
	if err != nil {
		return err
	}

	metrics.ExportsTotal.Inc()
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", export.Filename))
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
