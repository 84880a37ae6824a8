package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "sess:"

// RedisStore keeps session state in redis so multiple accountd instances can
// share it. A ttl of zero stores sessions without expiry, preserving the
// unbounded recovery-code lifetime; a positive ttl is the opt-in hardening
// path.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (r *RedisStore) key(id string) string {
	return redisKeyPrefix + id
}

func (r *RedisStore) Get(ctx context.Context, id string) (*State, error) {
	data, err := r.rdb.Get(ctx, r.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("session get: %w", err)
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("session decode: %w", err)
	}
	return &st, nil
}

func (r *RedisStore) Put(ctx context.Context, st *State) error {
	st.LastSeenAt = time.Now().UTC()

	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("session encode: %w", err)
	}
	if err := r.rdb.Set(ctx, r.key(st.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("session put: %w", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.rdb.Del(ctx, r.key(id)).Err(); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}

// PurgeIdle walks sess:* and drops entries idle past the cutoff. With a
// positive ttl redis already expires keys on its own and the walk just
// catches stragglers.
func (r *RedisStore) PurgeIdle(ctx context.Context, cutoff time.Time) (int, error) {
	n := 0
	iter := r.rdb.Scan(ctx, 0, redisKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()

		data, err := r.rdb.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue // expired between scan and get
			}
			return n, fmt.Errorf("session purge get: %w", err)
		}

		var st State
		if err := json.Unmarshal(data, &st); err != nil {
			continue // unreadable entry, leave it alone
		}
		if st.LastSeenAt.Before(cutoff) {
			if err := r.rdb.Del(ctx, key).Err(); err != nil {
				return n, fmt.Errorf("session purge del: %w", err)
			}
			n++
		}
	}
	if err := iter.Err(); err != nil {
		return n, fmt.Errorf("session purge scan: %w", err)
	}
	return n, nil
}
