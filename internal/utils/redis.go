package utils

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisClient обертка над Redis клиентом для работы с хэшами
// Приложение читает и пишет только хэши (профили и настройки)
type RedisClient struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisClient создает новый Redis клиент
func NewRedisClient(client *redis.Client) *RedisClient {
	return &RedisClient{
		client: client,
		ctx:    context.Background(),
	}
}

// HGetAll получает все поля хэша (профиль пользователя, настройки)
func (r *RedisClient) HGetAll(key string) (map[string]string, error) {
	return r.client.HGetAll(r.ctx, key).Result()
}

// HSet устанавливает поля хэша
func (r *RedisClient) HSet(key string, values ...interface{}) error {
	return r.client.HSet(r.ctx, key, values...).Err()
}
