package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/counselling-appointment/booking-system/internal/core/domain"
)

const verificationTTL = 24 * time.Hour

// VerificationStore keeps pending email-verification tokens in Redis.
// Key format: verify:<token> -> userID, expiring after verificationTTL.
type VerificationStore struct {
	client *redis.Client
}

// NewVerificationStore creates a VerificationStore wrapping the given client.
func NewVerificationStore(client *redis.Client) *VerificationStore {
	return &VerificationStore{client: client}
}

// Issue stores token -> userID with the standard lifetime.
func (s *VerificationStore) Issue(ctx context.Context, token, userID string) error {
	if err := s.client.Set(ctx, s.key(token), userID, verificationTTL).Err(); err != nil {
		return fmt.Errorf("issue verification token: %w", err)
	}
	return nil
}

// Consume resolves a token to its user and deletes it in one round trip, so
// a token can only ever be redeemed once.
func (s *VerificationStore) Consume(ctx context.Context, token string) (string, error) {
	userID, err := s.client.GetDel(ctx, s.key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrBadVerificationToken
		}
		return "", fmt.Errorf("consume verification token: %w", err)
	}
	return userID, nil
}

func (s *VerificationStore) key(token string) string {
	return "verify:" + token
}
