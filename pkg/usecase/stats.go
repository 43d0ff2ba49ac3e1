package usecase

import (
	"context"
	"sync"

	"github.com/m-mizutani/aiforge/pkg/model"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
)

// UserStats counts the caller's records per kind. The four counts are
// independent reads, so they run concurrently.
func (uc *UseCases) UserStats(ctx context.Context, ownerID string) (*model.UsageStats, error) {
	var (
		stats model.UsageStats
		mu    sync.Mutex
	)

	eg, ctx := errgroup.WithContext(ctx)
	for _, kind := range model.Kinds() {
		eg.Go(func() error {
			count, err := uc.repo.CountRecords(ctx, ownerID, kind)
			if err != nil {
				return goerr.Wrap(err, "failed to count records", goerr.V("kind", kind))
			}
			mu.Lock()
			stats.Set(kind, count)
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return &stats, nil
}
