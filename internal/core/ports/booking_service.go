package ports

import (
	"context"

	"github.com/counselling-appointment/booking-system/internal/core/domain"
)

// BookSlotInput carries everything needed to claim a free slot.
type BookSlotInput struct {
	Date               string
	TimeSlot           string
	Name               string
	Phone              string
	RegistrationNumber string
	Reason             string
	UserID             string
}

// BookingService defines the user-facing booking operations.
type BookingService interface {
	// BookSlot validates the transition against current state and policy,
	// then commits. The write is conditional on the key still being free.
	BookSlot(ctx context.Context, input BookSlotInput) (*domain.SlotRecord, error)

	// CancelBooking removes the requester's own booking, reverting the key
	// to implicit Free.
	CancelBooking(ctx context.Context, date, slot, requesterID string) error

	// ListUpcoming returns the requester's bookings across the current
	// week's non-holiday dates, ordered by date then slot.
	ListUpcoming(ctx context.Context, requesterID string) ([]domain.SlotRecord, error)
}
