package vocabulary

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// DefaultRedisKey holds the shared vocabulary hash
const DefaultRedisKey = "schema-validator:vocabulary"

const (
	fieldData      = "data"
	fieldFetchedAt = "fetched_at"
)

// RedisStore shares one vocabulary copy between hosts through a Redis hash
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore connects to the Redis server at redisURL
func NewRedisStore(ctx context.Context, redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{client: client, key: DefaultRedisKey}, nil
}

// Get reads the hash
func (s *RedisStore) Get(ctx context.Context) (*Entry, error) {
	values, err := s.client.HMGet(ctx, s.key, fieldData, fieldFetchedAt).Result()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	} else if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	data, ok := values[0].(string)
	if !ok {
		return nil, ErrCacheMiss
	}
	stamp, _ := values[1].(string)
	unix, err := strconv.ParseInt(stamp, 10, 64)
	if err != nil {
		// Without a timestamp the copy is treated as expired
		unix = 0
	}

	return &Entry{Data: []byte(data), FetchedAt: time.Unix(unix, 0)}, nil
}

// Put replaces the hash
func (s *RedisStore) Put(ctx context.Context, data []byte, fetchedAt time.Time) error {
	err := s.client.HSet(ctx, s.key,
		fieldData, data,
		fieldFetchedAt, strconv.FormatInt(fetchedAt.Unix(), 10),
	).Err()
	if err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// Close releases the connection pool
func (s *RedisStore) Close() error {
	return s.client.Close()
}
