package stores

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the session in a redis hash, one hash per client
// profile. It is an alternative persistent backend for deployments where
// several agent workstations share one session (support desks).
type RedisStore struct {
	client *redis.Client
	key    string
}

// RedisConfig holds the connection settings for the redis backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int

	// Namespace distinguishes client profiles sharing one redis instance.
	Namespace string
}

// NewRedisStore connects to redis and verifies the connection with a ping.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	ns := cfg.Namespace
	if ns == "" {
		ns = "default"
	}
	return &RedisStore{client: client, key: "parcelace:session:" + ns}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.client.HGet(ctx, s.key, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session[%s]: %w", key, err)
	}
	return v, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.HSet(ctx, s.key, key, value).Err(); err != nil {
		return fmt.Errorf("failed to set session[%s]: %w", key, err)
	}
	return nil
}

func (s *RedisStore) SetMany(ctx context.Context, values map[string][]byte) error {
	pipe := s.client.TxPipeline()
	for k, v := range values {
		pipe.HSet(ctx, s.key, k, v)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to set session keys: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.HDel(ctx, s.key, key).Err(); err != nil {
		return fmt.Errorf("failed to delete session[%s]: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("failed to clear session store: %w", err)
	}
	return nil
}

// Close releases the redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
