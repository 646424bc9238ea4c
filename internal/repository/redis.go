package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"medivault/internal/config"
	"medivault/internal/models"

	"github.com/redis/go-redis/v9"
)

const doctorsKey = "doctors:directory"

// NewRedisClient создает новый клиент Redis на основе конфигурации
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

// RedisDoctorsCache keeps the doctor directory in Redis with a TTL.
type RedisDoctorsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisDoctorsCache(client *redis.Client, ttl time.Duration) *RedisDoctorsCache {
	return &RedisDoctorsCache{client: client, ttl: ttl}
}

func (r *RedisDoctorsCache) GetDoctors(ctx context.Context) ([]*models.User, bool, error) {
	if r.client == nil {
		return nil, false, fmt.Errorf("redis client is nil")
	}
	val, err := r.client.Get(ctx, doctorsKey).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get doctors from redis: %w", err)
	}

	var doctors []*models.User
	if err := json.Unmarshal([]byte(val), &doctors); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal doctors: %w", err)
	}
	return doctors, true, nil
}

func (r *RedisDoctorsCache) SetDoctors(ctx context.Context, doctors []*models.User) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	data, err := json.Marshal(doctors)
	if err != nil {
		return fmt.Errorf("failed to marshal doctors: %w", err)
	}
	if err := r.client.Set(ctx, doctorsKey, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set doctors in redis: %w", err)
	}
	return nil
}

func (r *RedisDoctorsCache) Invalidate(ctx context.Context) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if err := r.client.Del(ctx, doctorsKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate doctors cache: %w", err)
	}
	return nil
}

// Ping проверяет соединение с Redis
func Ping(ctx context.Context, client *redis.Client) error {
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}
	return nil
}
