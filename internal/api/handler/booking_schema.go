package handler

import (
	"github.com/counselling-appointment/booking-system/internal/core/domain"
	"github.com/counselling-appointment/booking-system/internal/core/ports"
)

// bookSlotRequest is the payload for POST /appointments.
type bookSlotRequest struct {
	Date               string `json:"date" validate:"required"`
	TimeSlot           string `json:"time_slot" validate:"required"`
	Name               string `json:"name" validate:"required"`
	Phone              string `json:"phone" validate:"required"`
	RegistrationNumber string `json:"registration_number" validate:"required"`
	Reason             string `json:"reason" validate:"required"`
}

// appointmentResponse is a single booking as returned to its owner.
type appointmentResponse struct {
	Date               string `json:"date"`
	TimeSlot           string `json:"time_slot"`
	Status             string `json:"status"`
	Name               string `json:"name"`
	Phone              string `json:"phone"`
	RegistrationNumber string `json:"registration_number"`
	Reason             string `json:"reason"`
	Feedback           string `json:"feedback,omitempty"`
	SessionComplete    bool   `json:"session_complete"`
}

func toAppointmentResponse(rec domain.SlotRecord) appointmentResponse {
	return appointmentResponse{
		Date:               rec.Date,
		TimeSlot:           rec.TimeSlot,
		Status:             string(rec.Status),
		Name:               rec.Name,
		Phone:              rec.Phone,
		RegistrationNumber: rec.RegistrationNumber,
		Reason:             rec.Reason,
		Feedback:           rec.Feedback,
		SessionComplete:    rec.SessionComplete,
	}
}

// slotStatusView is what the user week view exposes per slot: status only,
// never another student's contact details.
type slotStatusView struct {
	Status string `json:"status"`
	Mine   bool   `json:"mine,omitempty"`
}

// dayScheduleResponse is one column of the week view.
type dayScheduleResponse struct {
	Date    string                    `json:"date"`
	DayName string                    `json:"day_name"`
	Holiday bool                      `json:"holiday"`
	Slots   map[string]slotStatusView `json:"slots,omitempty"`
}

// weekScheduleResponse is the full Monday-to-Friday user view.
type weekScheduleResponse struct {
	TimeSlots []string              `json:"time_slots"`
	Days      []dayScheduleResponse `json:"days"`
}

func toWeekScheduleResponse(week *ports.WeekSchedule, viewerID string) weekScheduleResponse {
	out := weekScheduleResponse{TimeSlots: domain.TimeSlots}
	for _, day := range week.Days {
		dr := dayScheduleResponse{Date: day.Date, DayName: day.DayName, Holiday: day.Holiday}
		if !day.Holiday {
			dr.Slots = make(map[string]slotStatusView, len(day.Slots))
			for label, rec := range day.Slots {
				dr.Slots[label] = slotStatusView{
					Status: string(rec.Status),
					Mine:   rec.UserID != "" && rec.UserID == viewerID,
				}
			}
		}
		out.Days = append(out.Days, dr)
	}
	return out
}

// adminDayResponse carries full records for the admin dashboard.
type adminDayResponse struct {
	Date    string                         `json:"date"`
	DayName string                         `json:"day_name"`
	Holiday bool                           `json:"holiday"`
	Slots   map[string]adminSlotDetailView `json:"slots,omitempty"`
}

type adminSlotDetailView struct {
	Status             string `json:"status"`
	Name               string `json:"name,omitempty"`
	Phone              string `json:"phone,omitempty"`
	RegistrationNumber string `json:"registration_number,omitempty"`
	Reason             string `json:"reason,omitempty"`
	UserID             string `json:"user_id,omitempty"`
	Feedback           string `json:"feedback,omitempty"`
	SessionComplete    bool   `json:"session_complete,omitempty"`
}

type adminWeekResponse struct {
	TimeSlots []string           `json:"time_slots"`
	Days      []adminDayResponse `json:"days"`
}

func toAdminWeekResponse(week *ports.WeekSchedule) adminWeekResponse {
	out := adminWeekResponse{TimeSlots: domain.TimeSlots}
	for _, day := range week.Days {
		dr := adminDayResponse{Date: day.Date, DayName: day.DayName, Holiday: day.Holiday}
		if !day.Holiday {
			dr.Slots = make(map[string]adminSlotDetailView, len(day.Slots))
			for label, rec := range day.Slots {
				dr.Slots[label] = adminSlotDetailView{
					Status:             string(rec.Status),
					Name:               rec.Name,
					Phone:              rec.Phone,
					RegistrationNumber: rec.RegistrationNumber,
					Reason:             rec.Reason,
					UserID:             rec.UserID,
					Feedback:           rec.Feedback,
					SessionComplete:    rec.SessionComplete,
				}
			}
		}
		out.Days = append(out.Days, dr)
	}
	return out
}

// completeSessionRequest is the payload for PUT /admin/slots/:date/:slot/session.
type completeSessionRequest struct {
	Feedback        string `json:"feedback"`
	SessionComplete bool   `json:"session_complete"`
}
