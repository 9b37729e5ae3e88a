package ports

import (
	"context"

	"github.com/counselling-appointment/booking-system/internal/core/domain"
)

// AuthRepository defines the interface for user account persistence.
type AuthRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// MarkVerified flips the verified flag on an existing account.
	MarkVerified(ctx context.Context, id string) error
}
