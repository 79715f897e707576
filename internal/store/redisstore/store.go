// Package redisstore holds the gateway's Redis-backed helpers.
// Facebook delivers webhook events at least once, so processed message
// ids are remembered for a short window to suppress duplicate replies.
package redisstore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = 24 * time.Hour

type Store struct {
	rdb *redis.Client
}

func New(addr, password string, db int) *Store {
	return &Store{rdb: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

func (s *Store) Close() error {
	return s.rdb.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.rdb.Ping(ctx).Err()
}

// MarkMessageSeen records a webhook message id and reports whether this
// is its first delivery.
func (s *Store) MarkMessageSeen(ctx context.Context, messageID string) (first bool, err error) {
	return s.rdb.SetNX(ctx, "fb:msg:"+messageID, 1, dedupTTL).Result()
}
