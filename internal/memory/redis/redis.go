package redis_memory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/siue-cs/eddiebot/internal/memory/models"
)

const keyPrefix = "eddiebot:session:"

// Store keeps session history in redis lists. The per-session TTL is
// enforced by redis itself: every access re-EXPIREs the key, so idle
// sessions vanish without any sweeping on our side.
type Store struct {
	client   *redis.Client
	maxTurns int
	ttl      time.Duration
}

func NewStore(addr, password string, db, maxTurns int, ttl time.Duration) *Store {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &Store{client: rdb, maxTurns: maxTurns, ttl: ttl}
}

func key(sessionID string) string { return keyPrefix + sessionID }

func (s *Store) Get(sessionID string) []models.Turn {
	ctx := context.Background()
	vals, err := s.client.LRange(ctx, key(sessionID), 0, -1).Result()
	if err != nil {
		return nil
	}
	_ = s.client.Expire(ctx, key(sessionID), s.ttl).Err()
	turns := make([]models.Turn, 0, len(vals))
	for _, v := range vals {
		var t models.Turn
		if err := json.Unmarshal([]byte(v), &t); err != nil {
			continue
		}
		turns = append(turns, t)
	}
	return turns
}

func (s *Store) Add(sessionID, role, text string) {
	ctx := context.Background()
	data, err := json.Marshal(models.Turn{Role: role, Text: text, Timestamp: time.Now()})
	if err != nil {
		return
	}
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key(sessionID), data)
	pipe.LTrim(ctx, key(sessionID), int64(-s.maxTurns), -1)
	pipe.Expire(ctx, key(sessionID), s.ttl)
	_, _ = pipe.Exec(ctx)
}

func (s *Store) Reset() {
	ctx := context.Background()
	iter := s.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		_ = s.client.Del(ctx, iter.Val()).Err()
	}
}

// Ping verifies the redis connection at startup.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}
