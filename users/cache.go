package users

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

type UsernameSource interface {
	GetUsernames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

// CachedUsernames keeps resolved usernames for a short while. Concurrent
// misses for the same set of ids share one lookup.
type CachedUsernames struct {
	src     UsernameSource
	cache   *cache.Cache
	sfGroup singleflight.Group
}

func NewCachedUsernames(src UsernameSource, ttl time.Duration) *CachedUsernames {
	return &CachedUsernames{
		src:   src,
		cache: cache.New(ttl, 2*ttl),
	}
}

func (c *CachedUsernames) GetUsernames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	res := make(map[uuid.UUID]string, len(ids))
	var missing []uuid.UUID
	for _, id := range ids {
		if name, found := c.cache.Get(id.String()); found {
			res[id] = name.(string)
			continue
		}
		missing = append(missing, id)
	}
	if len(missing) == 0 {
		return res, nil
	}

	fetched, err, _ := c.sfGroup.Do(flightKey(missing), func() (interface{}, error) {
		names, err := c.src.GetUsernames(ctx, missing)
		if err != nil {
			return nil, err
		}
		for id, name := range names {
			c.cache.SetDefault(id.String(), name)
		}
		return names, nil
	})
	if err != nil {
		return nil, err
	}
	for id, name := range fetched.(map[uuid.UUID]string) {
		res[id] = name
	}
	return res, nil
}

func flightKey(ids []uuid.UUID) string {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = id.String()
	}
	slices.Sort(keys)
	return strings.Join(keys, ",")
}
