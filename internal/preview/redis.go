package preview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tbourn/phrase-craze-backend/internal/domain"
)

// RedisStore keeps markers as JSON values whose Redis TTL matches ExpiresAt.
type RedisStore struct {
	Client redis.Cmdable
	Prefix string // key namespace, "preview" when empty
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore connects to addr and verifies the connection with PING.
func NewRedisStore(ctx context.Context, addr, password string, db int) (*RedisStore, *redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return &RedisStore{Client: client}, client, nil
}

func (s *RedisStore) key(userID, challengeID string) string {
	prefix := s.Prefix
	if prefix == "" {
		prefix = "preview"
	}
	return fmt.Sprintf("%s:%s:%s", prefix, userID, challengeID)
}

// Get returns the live marker or ErrNotFound.
func (s *RedisStore) Get(ctx context.Context, userID, challengeID string) (*domain.ScorePreview, error) {
	raw, err := s.Client.Get(ctx, s.key(userID, challengeID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodeMarker(raw, userID)
}

// Put stores the marker until its ExpiresAt. Already-expired markers are
// dropped.
func (s *RedisStore) Put(ctx context.Context, p *domain.ScorePreview) error {
	ttl := time.Until(p.ExpiresAt)
	if ttl <= 0 {
		return s.Delete(ctx, p.UserID, p.ChallengeID)
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, s.key(p.UserID, p.ChallengeID), raw, ttl).Err()
}

// Delete removes the marker; a missing marker is not an error.
func (s *RedisStore) Delete(ctx context.Context, userID, challengeID string) error {
	return s.Client.Del(ctx, s.key(userID, challengeID)).Err()
}

// decodeMarker restores a marker. UserID is not serialized, so it is taken
// from the key.
func decodeMarker(raw []byte, userID string) (*domain.ScorePreview, error) {
	var p domain.ScorePreview
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode preview: %w", err)
	}
	p.UserID = userID
	return &p, nil
}
