package ports

import (
	"context"

	"github.com/counselling-appointment/booking-system/internal/core/domain"
)

// AuthService implements the session/role gate: registration, login, and
// email verification.
type AuthService interface {
	// Register creates an account with role "user" and verified=false, then
	// dispatches a verification email. Completing verification is not a
	// precondition for login.
	Register(ctx context.Context, email, password string) (*domain.User, error)

	// Login authenticates credentials and returns a signed token carrying
	// the account's role. An account whose role does not parse fails with
	// domain.ErrRoleNotFound.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)

	// Verify consumes a verification token and marks the account verified.
	Verify(ctx context.Context, token string) error
}
