package cache

import (
	"context"
	"encoding/json"
	"time"

	"factfind/internal/model"

	"github.com/redis/go-redis/v9"
)

// QuestionCache caches the full ordered question list. Admin writes
// invalidate it; respondents read it on every session start.
type QuestionCache interface {
	Set(ctx context.Context, questions []model.Question) error
	// Get returns (nil, nil) on a cache miss.
	Get(ctx context.Context) ([]model.Question, error)
	Invalidate(ctx context.Context) error
}

const (
	questionListKey = "factfind:questions"
	questionListTTL = 10 * time.Minute
)

type questionCache struct {
	client *redis.Client
}

func NewQuestionCache(client *redis.Client) QuestionCache {
	return &questionCache{client: client}
}

func (c *questionCache) Set(ctx context.Context, questions []model.Question) error {
	data, err := json.Marshal(questions)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, questionListKey, data, questionListTTL).Err()
}

func (c *questionCache) Get(ctx context.Context) ([]model.Question, error) {
	data, err := c.client.Get(ctx, questionListKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var questions []model.Question
	if err := json.Unmarshal([]byte(data), &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (c *questionCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, questionListKey).Err()
}
