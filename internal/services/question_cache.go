package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/fastwise/tutr-backend/internal/logger"
	"github.com/fastwise/tutr-backend/internal/types"
)

// QuestionCache is a read-through cache for question lookups. It is an
// optimization only: every method degrades to a miss/no-op on any cache
// error.
type QuestionCache interface {
	GetQuestion(ctx context.Context, questionID string) (*types.Question, bool)
	SetQuestion(ctx context.Context, question *types.Question)
	Flush(ctx context.Context)
}

type questionCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

const questionCacheKeyPrefix = "tutr:question:"

// NewQuestionCache returns (nil, nil) when REDIS_ADDR is unset; callers
// treat a nil cache as "no caching".
func NewQuestionCache(log *logger.Logger) (QuestionCache, error) {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, nil
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	ttl := 15 * time.Minute
	return &questionCache{
		log: log.With("service", "QuestionCache"),
		rdb: rdb,
		ttl: ttl,
	}, nil
}

func (c *questionCache) GetQuestion(ctx context.Context, questionID string) (*types.Question, bool) {
	raw, err := c.rdb.Get(ctx, questionCacheKeyPrefix+questionID).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.log.Warn("Cache read failed", "question_id", questionID, "error", err)
		}
		return nil, false
	}
	var question types.Question
	if err := json.Unmarshal(raw, &question); err != nil {
		c.log.Warn("Cache entry unreadable, dropping", "question_id", questionID, "error", err)
		_ = c.rdb.Del(ctx, questionCacheKeyPrefix+questionID).Err()
		return nil, false
	}
	return &question, true
}

func (c *questionCache) SetQuestion(ctx context.Context, question *types.Question) {
	if question == nil || question.ID == "" {
		return
	}
	raw, err := json.Marshal(question)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, questionCacheKeyPrefix+question.ID, raw, c.ttl).Err(); err != nil {
		c.log.Warn("Cache write failed", "question_id", question.ID, "error", err)
	}
}

// Flush drops every cached question. Ingestion runs call this so re-ingested
// content is never served stale.
func (c *questionCache) Flush(ctx context.Context) {
	iter := c.rdb.Scan(ctx, 0, questionCacheKeyPrefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.log.Warn("Cache flush scan failed", "error", err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("Cache flush failed", "error", err)
		return
	}
	c.log.Debug("Question cache flushed", "keys", len(keys))
}
