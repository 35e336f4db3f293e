package global

import (
	"context"
	"time"

	"trovescan/core"

	"github.com/bluele/gcache"
	"github.com/fox-one/pkg/store/db"
	"golang.org/x/sync/singleflight"
)

const globalKey = "global:only"

// Cache wraps the store with a short-lived read cache. The singleton is hit
// on every api request and every worker poll; the expiry bounds staleness
// when the indexer runs in another process.
func Cache(store core.GlobalStore, exp time.Duration) core.GlobalStore {
	return &cacheGlobalStore{
		GlobalStore: store,
		cache:       gcache.New(4).LRU().Build(),
		sf:          &singleflight.Group{},
		exp:         exp,
	}
}

type cacheGlobalStore struct {
	core.GlobalStore
	cache gcache.Cache
	sf    *singleflight.Group
	exp   time.Duration
}

func (s *cacheGlobalStore) Find(ctx context.Context) (*core.Global, error) {
	if v, err := s.cache.Get(globalKey); err == nil {
		if global, ok := v.(*core.Global); ok {
			return global, nil
		}
	}

	v, err, _ := s.sf.Do(globalKey, func() (interface{}, error) {
		global, err := s.GlobalStore.Find(ctx)
		if err != nil {
			return nil, err
		}

		if global.ID != "" {
			_ = s.cache.SetWithExpire(globalKey, global, s.exp)
		}

		return global, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*core.Global), nil
}

func (s *cacheGlobalStore) Update(ctx context.Context, tx *db.DB, global *core.Global) error {
	if err := s.GlobalStore.Update(ctx, tx, global); err != nil {
		return err
	}

	_ = s.cache.SetWithExpire(globalKey, global, s.exp)
	return nil
}
