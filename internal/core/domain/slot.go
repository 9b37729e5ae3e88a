package domain

import (
	"errors"
	"time"
)

// SlotStatus represents the availability state of an appointment slot.
type SlotStatus string

const (
	StatusFree    SlotStatus = "Free"
	StatusBooked  SlotStatus = "Booked"
	StatusBlocked SlotStatus = "Blocked"
)

// TimeSlots is the closed set of bookable intervals, in display order.
// Indexing into this slice defines the canonical ordering used by the
// week view and the export.
var TimeSlots = []string{
	"8:30-9:00",
	"9:00-10:00",
	"10:00-11:00",
	"11:00-12:00",
	"12:00-1:00",
	"1:00-2:00",
	"2:00-3:00",
	"3:00-4:00",
	"4:00-4:30",
}

var ErrPastDate = errors.New("date is in the past")
var ErrSlotTaken = errors.New("slot already booked")
var ErrSlotBlocked = errors.New("slot is blocked")
var ErrSlotNotFound = errors.New("slot record not found")
var ErrSlotNotFree = errors.New("slot is not free")
var ErrNotBooked = errors.New("slot is not booked")
var ErrNotSlotOwner = errors.New("booking belongs to another user")
var ErrHoliday = errors.New("date is a holiday")
var ErrUnknownTimeSlot = errors.New("unknown time slot")
var ErrBadDate = errors.New("malformed date")

// SlotIndex returns the position of label in TimeSlots, or -1 when the
// label is not part of the enumeration.
func SlotIndex(label string) int {
	for i, s := range TimeSlots {
		if s == label {
			return i
		}
	}
	return -1
}

// ValidTimeSlot reports whether label is one of the nine fixed intervals.
func ValidTimeSlot(label string) bool {
	return SlotIndex(label) >= 0
}

// SlotRecord is a single appointment slot keyed by (Date, TimeSlot).
// A key with no record is implicitly Free. Booking detail fields are only
// meaningful when Status is Booked.
type SlotRecord struct {
	Date               string     `json:"date" bson:"date"`
	TimeSlot           string     `json:"time_slot" bson:"time_slot"`
	Status             SlotStatus `json:"status" bson:"status"`
	Name               string     `json:"name,omitempty" bson:"name,omitempty"`
	Phone              string     `json:"phone,omitempty" bson:"phone,omitempty"`
	RegistrationNumber string     `json:"registration_number,omitempty" bson:"registration_number,omitempty"`
	Reason             string     `json:"reason,omitempty" bson:"reason,omitempty"`
	UserID             string     `json:"user_id,omitempty" bson:"user_id,omitempty"`
	Feedback           string     `json:"feedback,omitempty" bson:"feedback,omitempty"`
	SessionComplete    bool       `json:"session_complete,omitempty" bson:"session_complete,omitempty"`
	CreatedAt          time.Time  `json:"created_at" bson:"created_at,omitempty"`
}

// FreeSlot returns the implicit record used for keys absent from the store.
func FreeSlot(date, slot string) SlotRecord {
	return SlotRecord{Date: date, TimeSlot: slot, Status: StatusFree}
}
