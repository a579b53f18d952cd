package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Zanice/2D-Game-Framework/internal/domain"
	"github.com/Zanice/2D-Game-Framework/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// MapKeyPrefix - префикс ключей карт в redis
const MapKeyPrefix = "map"

// RedisSource хранит тексты карт в redis под ключом map:<directory>:<name>
type RedisSource struct {
	client redis.Cmdable
}

// NewRedisSource подключается к redis по адресу addr
func NewRedisSource(addr string) (*RedisSource, error) {
	if addr == "" {
		return nil, domain.Configf("redis: endpoint is required")
	}
	return NewRedisSourceFromClient(redis.NewClient(&redis.Options{Addr: addr})), nil
}

// NewRedisSourceFromClient оборачивает готовый клиент
func NewRedisSourceFromClient(client redis.Cmdable) *RedisSource {
	return &RedisSource{client: client}
}

// MapKey - ключ карты в redis
func MapKey(directory, name string) string {
	return fmt.Sprintf("%s:%s:%s", MapKeyPrefix, directory, name)
}

// Fetch читает текст карты
func (s *RedisSource) Fetch(ctx context.Context, directory, name string) (io.ReadCloser, error) {
	key := MapKey(directory, name)
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.NotFoundf("map %s not found", key)
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Put сохраняет текст карты (для засева хранилища)
func (s *RedisSource) Put(ctx context.Context, directory, name string, data []byte) error {
	key := MapKey(directory, name)
	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	logger.For("map_storage").WithField("key", key).Info("Map stored")
	return nil
}
