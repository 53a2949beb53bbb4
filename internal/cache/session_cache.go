package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"factfind/internal/model"
	"factfind/internal/questionnaire"

	"github.com/redis/go-redis/v9"
)

// SessionState is the parked traversal for one in-progress session: the
// question snapshot taken at session start plus the controller state.
// Admin edits after session start do not leak into the snapshot.
type SessionState struct {
	Questions []model.Question    `json:"questions"`
	Traversal questionnaire.State `json:"traversal"`
}

type SessionCache interface {
	Set(ctx context.Context, sessionID int, state *SessionState) error
	// Get returns nil on a cache miss; the caller rebuilds from the
	// durable store.
	Get(ctx context.Context, sessionID int) (*SessionState, error)
	Delete(ctx context.Context, sessionID int) error
}

const sessionTTL = 24 * time.Hour

type sessionCache struct {
	client *redis.Client
}

func NewSessionCache(client *redis.Client) SessionCache {
	return &sessionCache{client: client}
}

func (c *sessionCache) key(sessionID int) string {
	return fmt.Sprintf("factfind:session:%d", sessionID)
}

func (c *sessionCache) Set(ctx context.Context, sessionID int, state *SessionState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(sessionID), data, sessionTTL).Err()
}

func (c *sessionCache) Get(ctx context.Context, sessionID int) (*SessionState, error) {
	data, err := c.client.Get(ctx, c.key(sessionID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var state SessionState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (c *sessionCache) Delete(ctx context.Context, sessionID int) error {
	return c.client.Del(ctx, c.key(sessionID)).Err()
}
