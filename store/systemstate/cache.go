package systemstate

import (
	"context"

	"trovescan/core"

	"github.com/bluele/gcache"
	"golang.org/x/sync/singleflight"
)

// Cache wraps the store with an LRU read cache. Snapshot rows are
// append-only so a cached row never goes stale.
func Cache(store core.SystemStateStore) core.SystemStateStore {
	return &cacheSystemStateStore{
		SystemStateStore: store,
		cache:            gcache.New(512).LRU().Build(),
		sf:               &singleflight.Group{},
	}
}

type cacheSystemStateStore struct {
	core.SystemStateStore
	cache gcache.Cache
	sf    *singleflight.Group
}

func (s *cacheSystemStateStore) Find(ctx context.Context, id string) (*core.SystemState, error) {
	if v, err := s.cache.Get(id); err == nil {
		if state, ok := v.(*core.SystemState); ok {
			return state, nil
		}
	}

	v, err, _ := s.sf.Do(id, func() (interface{}, error) {
		state, err := s.SystemStateStore.Find(ctx, id)
		if err != nil {
			return nil, err
		}

		if state.ID != "" {
			_ = s.cache.Set(id, state)
		}

		return state, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*core.SystemState), nil
}
