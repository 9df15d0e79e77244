package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"mushroom-doctor/internal/domain/port"
)

const redisKeyPrefix = "mushroom:prefs:"

// RedisPreferenceStore хранит настройки строковыми ключами Redis без TTL.
type RedisPreferenceStore struct {
	client *redis.Client
}

func NewRedisPreferenceStore(client *redis.Client) *RedisPreferenceStore {
	return &RedisPreferenceStore{client: client}
}

// ConnectRedis создаёт клиента и проверяет соединение.
func ConnectRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func redisKey(scope, name string) string {
	return redisKeyPrefix + scope + ":" + name
}

func (s *RedisPreferenceStore) Get(ctx context.Context, scope, name string) (string, bool, error) {
	value, err := s.client.Get(ctx, redisKey(scope, name)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get: %w", err)
	}
	return value, true, nil
}

func (s *RedisPreferenceStore) Set(ctx context.Context, scope, name, value string) error {
	if err := s.client.Set(ctx, redisKey(scope, name), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

var _ port.PreferenceStore = (*RedisPreferenceStore)(nil)
