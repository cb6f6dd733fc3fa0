// services/scheduler.go
package services

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"

	"gramx-admin-gateway/cache"
)

// StartRefreshScheduler runs a periodic job that re-fetches stale collections
// in the background, so a dashboard reopening a page rarely waits on the
// upstream. Fresh and loading keys are left alone.
func (s *AdminService) StartRefreshScheduler(interval time.Duration) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), interval)
			defer cancel()
			for key, refresh := range s.collectionFetchers() {
				if s.Cache.StateOf(key) != cache.StateStale {
					continue
				}
				if _, err := s.Cache.Get(ctx, key, refresh); err != nil {
					log.Printf("[CACHE] ⚠️ Background refresh of %q failed: %v", key, err)
				}
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	sched.Start()
	return sched, nil
}

// collectionFetchers maps each collection cache key to its loader.
func (s *AdminService) collectionFetchers() map[string]cache.FetchFunc {
	return map[string]cache.FetchFunc{
		UsersCacheKey: func(ctx context.Context) (interface{}, error) {
			return s.Users.List(ctx)
		},
		TasksCacheKey: func(ctx context.Context) (interface{}, error) {
			return s.Tasks.List(ctx)
		},
		LeaderboardCacheKey: func(ctx context.Context) (interface{}, error) {
			return s.Leaderboard.List(ctx)
		},
		BatchesCacheKey: func(ctx context.Context) (interface{}, error) {
			return s.Batches.List(ctx)
		},
	}
}
