package profile

import (
	"context"
	"errors"
	"strings"

	"github.com/redis/go-redis/v9"
)

const nameKey = "profile:name"

var ErrEmptyName = errors.New("name is empty")

// Store keeps the device owner's display name in Redis. Single-tenant:
// one name per deployment, set during onboarding.
type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// Name returns the saved display name. ok is false when onboarding has
// not happened yet.
func (s *Store) Name(ctx context.Context) (string, bool, error) {
	name, err := s.rdb.Get(ctx, nameKey).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return name, true, nil
}

// SetName saves the display name. No TTL, the profile is permanent.
func (s *Store) SetName(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	return s.rdb.Set(ctx, nameKey, name, 0).Err()
}
