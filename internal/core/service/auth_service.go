package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/counselling-appointment/booking-system/internal/core/domain"
	"github.com/counselling-appointment/booking-system/internal/core/ports"
)

// AuthService implements registration, login, and email verification.
type AuthService struct {
	repo      ports.AuthRepository
	tokens    ports.VerificationStore
	mail      ports.MailDispatcher
	log       zerolog.Logger
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(
	repo ports.AuthRepository,
	tokens ports.VerificationStore,
	mail ports.MailDispatcher,
	log zerolog.Logger,
	jwtSecret string,
	tokenTTL time.Duration,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:      repo,
		tokens:    tokens,
		mail:      mail,
		log:       log,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// Register creates an account with role "user" and verified=false, issues a
// verification token, and hands the email off for asynchronous delivery.
// Logging in without completing verification is still permitted.
func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		Verified:     false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	token := uuid.NewString()
	if err := s.tokens.Issue(ctx, token, created.ID); err != nil {
		// The account exists either way; verification can be retried later.
		s.log.Error().Err(err).Str("user_id", created.ID).Msg("failed to issue verification token")
		return created, nil
	}
	s.mail.Enqueue(ports.VerificationMail{To: created.Email, Token: token})

	s.log.Info().Str("user_id", created.ID).Str("email", created.Email).Msg("user registered")
	return created, nil
}

// Login authenticates credentials and returns a signed token. An account
// whose stored role does not parse is a configuration problem surfaced as
// domain.ErrRoleNotFound rather than a retryable auth failure.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	role, err := domain.ParseRole(string(user.Role))
	if err != nil {
		s.log.Warn().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("login with unassigned role")
		return "", nil, err
	}

	token, err := s.generateToken(user, role)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// Verify consumes a pending verification token and marks the account.
func (s *AuthService) Verify(ctx context.Context, token string) error {
	if token == "" {
		return domain.ErrBadVerificationToken
	}

	userID, err := s.tokens.Consume(ctx, token)
	if err != nil {
		return err
	}

	if err := s.repo.MarkVerified(ctx, userID); err != nil {
		return err
	}

	s.log.Info().Str("user_id", userID).Msg("email verified")
	return nil
}

func (s *AuthService) generateToken(user *domain.User, role domain.Role) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  string(role),
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
