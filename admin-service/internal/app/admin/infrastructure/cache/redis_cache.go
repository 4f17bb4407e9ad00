package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bedadmin/admin-service/internal/app/admin/entity"
	"bedadmin/pkg/metrics"

	"github.com/redis/go-redis/v9"
)

const (
	serviceName = "admin-service"
	keyPrefix   = "admin:options:"
)

// RedisCache хранит справочники форм (категории, подкатегории, бренды)
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache подключается к Redis и проверяет соединение
func NewRedisCache(addr, password string, db int) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisCache{client: client}, nil
}

// NewRedisCacheFromClient оборачивает готовый клиент
func NewRedisCacheFromClient(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// GetOptions возвращает справочник; ok=false если ключа нет
func (r *RedisCache) GetOptions(ctx context.Context, key string) (entity.OptionSet, bool, error) {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpGet)
	defer timer.ObserveDuration()

	data, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.RecordCacheMiss(serviceName, key)
			return nil, false, nil
		}
		metrics.RecordRedisError(serviceName, metrics.RedisOpGet)
		return nil, false, fmt.Errorf("failed to get options from cache: %w", err)
	}

	var options entity.OptionSet
	if err := json.Unmarshal(data, &options); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal options: %w", err)
	}

	metrics.RecordCacheHit(serviceName, key)
	return options, true, nil
}

// SetOptions сохраняет справочник с TTL
func (r *RedisCache) SetOptions(ctx context.Context, key string, options entity.OptionSet, ttl time.Duration) error {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpSet)
	defer timer.ObserveDuration()

	data, err := json.Marshal(options)
	if err != nil {
		return fmt.Errorf("failed to marshal options: %w", err)
	}

	if err := r.client.Set(ctx, keyPrefix+key, data, ttl).Err(); err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpSet)
		return fmt.Errorf("failed to set options in cache: %w", err)
	}

	return nil
}

// Invalidate удаляет справочник после изменения записей
func (r *RedisCache) Invalidate(ctx context.Context, key string) error {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpDel)
	defer timer.ObserveDuration()

	if err := r.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpDel)
		return fmt.Errorf("failed to delete options from cache: %w", err)
	}
	return nil
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
