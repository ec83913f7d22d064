package listing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/odyssey-erp/bizdesk/internal/datatable"
)

const (
	cachePrefix = "bizdesk:list"
	bumpChannel = "bizdesk.list.bump"
)

// Cache keeps loaded list rows in Redis under a per-resource version. A
// mutation bumps the version so the next render re-fetches.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	// OnLookup observes hits and misses. Optional.
	OnLookup func(resource string, hit bool)
}

// NewCache instantiates the cache helper. A nil client disables caching.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Cache{client: client, ttl: ttl}
}

func versionKey(resource string) string {
	return cachePrefix + ":" + resource + ":version"
}

// Version returns the current version of resource, initialising when missing.
func (c *Cache) Version(ctx context.Context, resource string) (int64, error) {
	if c == nil || c.client == nil {
		return 0, nil
	}
	key := versionKey(resource)
	ver, err := c.client.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		if err := c.client.SetNX(ctx, key, 1, 0).Err(); err != nil {
			return 0, err
		}
		return c.client.Get(ctx, key).Int64()
	}
	if err != nil {
		return 0, err
	}
	if ver <= 0 {
		ver = 1
		if err := c.client.Set(ctx, key, ver, 0).Err(); err != nil {
			return 0, err
		}
	}
	return ver, nil
}

// BuildKey composes the rows key of resource with its current version.
func (c *Cache) BuildKey(ctx context.Context, resource string) (string, error) {
	base := cachePrefix + ":" + resource + ":rows"
	if c == nil || c.client == nil {
		return base, nil
	}
	ver, err := c.Version(ctx, resource)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%d", base, ver), nil
}

// Bump invalidates resource and publishes the new version.
func (c *Cache) Bump(ctx context.Context, resource string) error {
	if c == nil || c.client == nil {
		return nil
	}
	ver, err := c.client.Incr(ctx, versionKey(resource)).Result()
	if err != nil {
		return err
	}
	return c.client.Publish(ctx, bumpChannel, resource+":"+strconv.FormatInt(ver, 10)).Err()
}

// ListenForInvalidation calls fn for every bump published by any instance
// until ctx is cancelled.
func (c *Cache) ListenForInvalidation(ctx context.Context, fn func(resource string, version int64)) error {
	if c == nil || c.client == nil || fn == nil {
		return nil
	}
	pubsub := c.client.Subscribe(ctx, bumpChannel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return err
	}
	go func() {
		defer func() { _ = pubsub.Close() }()
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				resource, raw, found := strings.Cut(msg.Payload, ":")
				if !found {
					continue
				}
				if ver, err := strconv.ParseInt(raw, 10, 64); err == nil {
					fn(resource, ver)
				}
			}
		}
	}()
	return nil
}

// Loader fetches the rows of one resource.
type Loader func(ctx context.Context) ([]datatable.Row, error)

// Cached wraps load with the cache of resource. Rows round trip through
// JSON, so T must decode back into an equivalent value.
func Cached[T datatable.Row](c *Cache, resource string, load func(context.Context) ([]T, error)) Loader {
	return func(ctx context.Context) ([]datatable.Row, error) {
		items, err := fetch(ctx, c, resource, load)
		if err != nil {
			return nil, err
		}
		rows := make([]datatable.Row, len(items))
		for i := range items {
			rows[i] = items[i]
		}
		return rows, nil
	}
}

func fetch[T any](ctx context.Context, c *Cache, resource string, load func(context.Context) ([]T, error)) ([]T, error) {
	if c == nil || c.client == nil {
		return load(ctx)
	}
	key, err := c.BuildKey(ctx, resource)
	if err != nil {
		return load(ctx)
	}
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var items []T
		if err := json.Unmarshal(payload, &items); err == nil {
			c.observe(resource, true)
			return items, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		return load(ctx)
	}
	c.observe(resource, false)
	items, err := load(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	_ = c.client.Set(ctx, key, raw, c.ttl).Err()
	return items, nil
}

func (c *Cache) observe(resource string, hit bool) {
	if c.OnLookup != nil {
		c.OnLookup(resource, hit)
	}
}
