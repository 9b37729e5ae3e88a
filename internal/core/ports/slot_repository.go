package ports

import (
	"context"

	"github.com/counselling-appointment/booking-system/internal/core/domain"
)

// SlotRepository defines persistence operations for appointment slots.
// The (date, time_slot) pair is the primary key; a missing record means the
// slot is implicitly Free.
type SlotRepository interface {
	// Get retrieves the record for a single key. Returns
	// domain.ErrSlotNotFound when no record exists.
	Get(ctx context.Context, date, slot string) (*domain.SlotRecord, error)

	// ListDay returns all records stored under a date, keyed by time slot.
	ListDay(ctx context.Context, date string) (map[string]domain.SlotRecord, error)

	// CreateIfAbsent inserts rec only when no record exists for its key.
	// Returns domain.ErrSlotTaken when the key is already occupied, which is
	// the compare-and-set that closes the read-then-write booking race.
	CreateIfAbsent(ctx context.Context, rec *domain.SlotRecord) error

	// Put writes rec unconditionally, replacing any existing record.
	Put(ctx context.Context, rec *domain.SlotRecord) error

	// Merge updates feedback and session completion on an existing record
	// without touching identity fields. Returns domain.ErrSlotNotFound when
	// the key has no record.
	Merge(ctx context.Context, date, slot, feedback string, sessionComplete bool) error

	// Delete removes the record, reverting the key to implicit Free.
	// Deleting an absent key returns domain.ErrSlotNotFound.
	Delete(ctx context.Context, date, slot string) error
}

// HolidayRepository manages the set of admin-designated holiday dates.
// Membership updates are atomic per date; no whole-set read-modify-write.
type HolidayRepository interface {
	List(ctx context.Context) ([]string, error)
	Add(ctx context.Context, date string) error
	Remove(ctx context.Context, date string) error
}
