package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "finance-calculator:"

// RedisStore хранит коллекции в Redis
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore создаёт клиент Redis для адреса addr
func NewRedisStore(addr string) (*RedisStore, error) {
	return NewRedisStoreWithOptions(&redis.Options{Addr: addr})
}

// NewRedisStoreWithOptions создаёт хранилище с произвольными настройками клиента
func NewRedisStoreWithOptions(opts *redis.Options) (*RedisStore, error) {
	if opts == nil || opts.Addr == "" {
		return nil, fmt.Errorf("redis address is required")
	}
	return &RedisStore{client: redis.NewClient(opts)}, nil
}

func redisKey(key string) string {
	return redisKeyPrefix + key
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := s.client.Get(ctx, redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, redisKey(key), value, 0).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, redisKey(key)).Err()
}

// Ping проверяет соединение с Redis
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
