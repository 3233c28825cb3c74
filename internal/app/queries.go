package app

import (
	"context"
	"fmt"
	"time"

	"giata_content/internal/domain"
)

// QueryService serves dashboard datasets with a read-through cache in front
// of the store.
type QueryService struct {
	repo     domain.DashboardRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(r domain.DashboardRepository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, cache: c, cacheTTL: ttl}
}

func viewCacheKey(view, sort string) string {
	return fmt.Sprintf("view:%s:%s", view, sort)
}

func (s *QueryService) Views() []string {
	return s.repo.Views()
}

func (s *QueryService) Dataset(ctx context.Context, view, sort string) (domain.Dataset, error) {
	key := viewCacheKey(view, sort)
	var ds domain.Dataset
	if ok, _ := s.cache.Get(ctx, key, &ds); ok {
		return ds, nil
	}
	ds, err := s.repo.Dataset(ctx, view, sort)
	if err != nil {
		return domain.Dataset{}, err
	}
	_ = s.cache.Set(ctx, key, ds, int(s.cacheTTL.Seconds()))
	return ds, nil
}

// invalidateViewCache evicts the default-sort cache entry of every dashboard
// view; pipelines call it after a load so the dashboard stops serving the
// previous snapshot.
func invalidateViewCache(ctx context.Context, cache domain.Cache) {
	for _, view := range domain.DashboardViews {
		_ = cache.Del(ctx, viewCacheKey(view, ""))
	}
}
