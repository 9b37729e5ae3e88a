package ports

import "context"

// CompleteSessionInput annotates a booked slot after the appointment.
type CompleteSessionInput struct {
	Date            string
	TimeSlot        string
	Feedback        string
	SessionComplete bool
}

// ExportRow is one line of the booked-appointments export, projected in the
// column order the spreadsheet uses.
type ExportRow struct {
	Date               string
	Slot               string
	Name               string
	RegistrationNumber string
	Phone              string
	Reason             string
	Feedback           string
	SessionComplete    string // "Yes" / "No"
}

// AdminService defines the privileged moderation operations. Callers must
// already have passed the admin role gate.
type AdminService interface {
	// BlockSlot removes a free slot from availability.
	BlockSlot(ctx context.Context, date, slot string) error

	// UnblockOrCancel deletes a Blocked or Booked record, reverting the key
	// to implicit Free. Cancelling a booking this way acts on behalf of the
	// owner.
	UnblockOrCancel(ctx context.Context, date, slot string) error

	// CompleteSession merges feedback and completion state into an existing
	// booking without altering who booked it.
	CompleteSession(ctx context.Context, input CompleteSessionInput) error

	MarkHoliday(ctx context.Context, date string) error
	UnmarkHoliday(ctx context.Context, date string) error

	// ExportBookedRows projects all Booked records across the given dates
	// into an ordered table. Pure read; no mutation.
	ExportBookedRows(ctx context.Context, dates []string) ([]ExportRow, error)
}
