package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nicolarischia/f1-analytics/pkg/model"
	driverrepos "github.com/nicolarischia/f1-analytics/pkg/repository/driver"
	"github.com/nicolarischia/f1-analytics/pkg/results"
	utilsCache "github.com/nicolarischia/f1-analytics/pkg/utils/cache"
	"github.com/nicolarischia/f1-analytics/pkg/utils/cache/loadercache"
)

// The key is the car number
func NewDriverCache(pool *pgxpool.Pool) utilsCache.Cache[int, model.Driver] {
	return loadercache.New(
		loadercache.WithLoader(
			func(key int) (*model.Driver, error) {
				return driverrepos.LoadByNumber(context.Background(), pool, key)
			}),
		loadercache.WithExpiration[int, model.Driver](5*time.Minute))
}

type cachedDriverSource struct {
	cache utilsCache.Cache[int, model.Driver]
}

// NewCachedDriverSource resolves driver display data through the cache,
// keeping the reconciler off the database hot path.
func NewCachedDriverSource(pool *pgxpool.Pool) results.DriverSource {
	return &cachedDriverSource{cache: NewDriverCache(pool)}
}

func (s *cachedDriverSource) ByNumber(
	ctx context.Context,
	driverNumber int,
) (*model.Driver, error) {
	return s.cache.Get(ctx, driverNumber)
}
