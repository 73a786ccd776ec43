package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	dom "github.com/adi-1080/notesapp/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "note:"
	keyList   = "list:"
	keySearch = "search:"
)

// NoteCache caches note list pages and search results in Redis, keyed
// per owner so one user's writes never evict another's entries.
type NoteCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewNoteCache returns a new NoteCache.
func NewNoteCache(rdb *redis.Client, ttl time.Duration) *NoteCache {
	return &NoteCache{rdb: rdb, ttl: ttl}
}

// GetList returns the cached page or nil on miss.
func (c *NoteCache) GetList(ctx context.Context, ownerID int64, offset, limit int) ([]dom.Note, error) {
	return c.get(ctx, listKey(ownerID, offset, limit))
}

// SetList stores a list page.
func (c *NoteCache) SetList(ctx context.Context, ownerID int64, offset, limit int, list []dom.Note) error {
	return c.set(ctx, listKey(ownerID, offset, limit), list)
}

// GetSearch returns the cached search result for query q, or nil on miss.
func (c *NoteCache) GetSearch(ctx context.Context, ownerID int64, q string) ([]dom.Note, error) {
	return c.get(ctx, searchKey(ownerID, q))
}

// SetSearch stores a search result.
func (c *NoteCache) SetSearch(ctx context.Context, ownerID int64, q string, list []dom.Note) error {
	return c.set(ctx, searchKey(ownerID, q), list)
}

// InvalidateOwner removes all cached pages for one owner (cache
// invalidation on write).
func (c *NoteCache) InvalidateOwner(ctx context.Context, ownerID int64) error {
	pattern := keyPrefix + "*:" + ownerKey(ownerID) + ":*"
	iter := c.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (c *NoteCache) get(ctx context.Context, key string) ([]dom.Note, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.Note
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *NoteCache) set(ctx context.Context, key string, list []dom.Note) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, b, c.ttl).Err()
}

func listKey(ownerID int64, offset, limit int) string {
	return keyPrefix + keyList + ownerKey(ownerID) + ":" + strconv.Itoa(offset) + ":" + strconv.Itoa(limit)
}

func searchKey(ownerID int64, q string) string {
	return keyPrefix + keySearch + ownerKey(ownerID) + ":" + normalizeQuery(q)
}

func ownerKey(ownerID int64) string {
	return strconv.FormatInt(ownerID, 10)
}

func normalizeQuery(q string) string {
	return strings.TrimSpace(strings.ToLower(q))
}
