package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cichowlasp/s3-demo/internal/config"
	"github.com/cichowlasp/s3-demo/internal/domain"
	"github.com/redis/go-redis/v9"
)

const fileListingKey = "files:listing"

// FileListCache holds the most recent file listing for a short TTL so the
// console's poll loop does not hit the bucket (and presign every object) on
// every refresh.
type FileListCache interface {
	Get(ctx context.Context) ([]domain.FileInfo, bool, error)
	Set(ctx context.Context, files []domain.FileInfo) error
	Invalidate(ctx context.Context) error
}

type redisFileCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopFileCache struct{}

// NewFileListCache returns a redis-backed cache when caching is enabled, or
// a no-op cache otherwise.
func NewFileListCache(cfg config.CacheConfig) (FileListCache, error) {
	if !cfg.Enabled {
		return &noopFileCache{}, nil
	}

	opts, err := buildRedisOptions(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	ttl := time.Duration(cfg.FilesTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}

	return &redisFileCache{
		client: client,
		ttl:    ttl,
	}, nil
}

// NewNoopFileListCache returns a cache that never stores anything.
func NewNoopFileListCache() FileListCache {
	return &noopFileCache{}
}

func (c *redisFileCache) Get(ctx context.Context) ([]domain.FileInfo, bool, error) {
	payload, err := c.client.Get(ctx, fileListingKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var files []domain.FileInfo
	if err := json.Unmarshal(payload, &files); err != nil {
		return nil, false, fmt.Errorf("corrupt cached listing: %w", err)
	}
	return files, true, nil
}

func (c *redisFileCache) Set(ctx context.Context, files []domain.FileInfo) error {
	payload, err := json.Marshal(files)
	if err != nil {
		return fmt.Errorf("failed to encode listing: %w", err)
	}
	if err := c.client.Set(ctx, fileListingKey, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisFileCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, fileListingKey).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

func (n *noopFileCache) Get(context.Context) ([]domain.FileInfo, bool, error) { return nil, false, nil }
func (n *noopFileCache) Set(context.Context, []domain.FileInfo) error         { return nil }
func (n *noopFileCache) Invalidate(context.Context) error                     { return nil }
