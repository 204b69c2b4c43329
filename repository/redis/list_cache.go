package redis

import (
	"context"
	"encoding/json"
	"fmt"

	redislib "github.com/redis/go-redis/v9"

	"github.com/taskmaster/backend/domain"
	"github.com/taskmaster/backend/repository"
)

type listCache struct {
	client *redislib.Client
	prefix string
}

// NewListCache creates a Redis-backed list result cache. Entries carry no
// TTL; they live until a mutation for the owning user evicts them.
func NewListCache(client *redislib.Client) repository.ListCache {
	return &listCache{
		client: client,
		prefix: "tasks:list:",
	}
}

func (c *listCache) Get(ctx context.Context, key repository.ListKey) (*domain.TaskPage, error) {
	result, err := c.client.Get(ctx, c.entryKey(key)).Result()
	if err != nil {
		if err == redislib.Nil {
			return nil, nil
		}
		return nil, err
	}

	var page domain.TaskPage
	if err := json.Unmarshal([]byte(result), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *listCache) Put(ctx context.Context, key repository.ListKey, page *domain.TaskPage) error {
	if page == nil {
		return domain.ErrInvalidPayload
	}

	payload, err := json.Marshal(page)
	if err != nil {
		return err
	}

	entry := c.entryKey(key)

	// The per-user index set makes EvictAll exact instead of a keyspace scan.
	pipe := c.client.TxPipeline()
	pipe.Set(ctx, entry, payload, 0)
	pipe.SAdd(ctx, c.indexKey(key.UserID), entry)
	_, err = pipe.Exec(ctx)
	return err
}

func (c *listCache) EvictAll(ctx context.Context, userID string) error {
	index := c.indexKey(userID)

	entries, err := c.client.SMembers(ctx, index).Result()
	if err != nil {
		return err
	}

	keys := append(entries, index)
	return c.client.Del(ctx, keys...).Err()
}

func (c *listCache) entryKey(key repository.ListKey) string {
	return c.prefix + key.String()
}

func (c *listCache) indexKey(userID string) string {
	return fmt.Sprintf("tasks:index:%s", userID)
}
