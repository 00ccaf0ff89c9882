package memory

import (
	"fmt"
	"time"

	"github.com/siue-cs/eddiebot/config"
	"github.com/siue-cs/eddiebot/internal/memory/inmemory"
	redis_memory "github.com/siue-cs/eddiebot/internal/memory/redis"
	"github.com/siue-cs/eddiebot/internal/memory/models"
)

const (
	DefaultMaxTurns = 12
	DefaultTTL      = time.Hour
)

// Store keeps a bounded, TTL-expiring conversation history per session.
// Reading or writing a session counts as activity and refreshes its TTL.
type Store interface {
	Get(sessionID string) []models.Turn
	Add(sessionID, role, text string)
	Reset()
}

type StoreType string

const (
	InMemoryStore StoreType = "inmemory"
	RedisStore    StoreType = "redis"
)

// NewStore creates a session store of the configured type.
func NewStore(storeType StoreType, cfg *config.Config) (Store, error) {
	maxTurns := cfg.Memory.MaxTurns
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	ttl := cfg.Memory.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	switch storeType {
	case InMemoryStore:
		return inmemory.NewStore(maxTurns, ttl), nil
	case RedisStore:
		return redis_memory.NewStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, maxTurns, ttl), nil
	default:
		return nil, fmt.Errorf("unsupported store type: %s", storeType)
	}
}
