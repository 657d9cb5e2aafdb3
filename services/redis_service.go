package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss không có dữ liệu trong cache
var ErrCacheMiss = errors.New("cache miss")

const (
	reservationCacheTTL = 10 * time.Minute
	roomTypeCacheTTL    = 30 * time.Minute

	roomTypesCacheKey = "room_types:all"
)

func reservationCacheKey(id uint) string {
	return "reservation:" + strconv.FormatUint(uint64(id), 10)
}

// Cache lưu đệm kết quả đọc. Không dùng cho tình trạng phòng trống.
type Cache interface {
	Get(ctx context.Context, key string, target interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// RedisCache cache trên Redis, dữ liệu lưu dạng JSON
type RedisCache struct {
	rdb *redis.Client
}

func NewRedisCache(rdb *redis.Client) *RedisCache {
	return &RedisCache{rdb: rdb}
}

// Hàm lấy data từ Redis
func (c *RedisCache) Get(ctx context.Context, key string, target interface{}) error {
	cachedData, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(cachedData, target)
}

// Hàm lưu dữ liệu vào Redis
func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	dataJSON, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, dataJSON, ttl).Err()
}

// Hàm xóa cache Redis
func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// NopCache không lưu gì, mọi lần đọc đều miss
type NopCache struct{}

func (NopCache) Get(ctx context.Context, key string, target interface{}) error {
	return ErrCacheMiss
}

func (NopCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

func (NopCache) Delete(ctx context.Context, keys ...string) error {
	return nil
}
