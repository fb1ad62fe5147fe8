package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dental-clinic-api/internal/delivery/dto"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// Redis key prefix for cached dashboard reports
	reportCacheKeyPrefix = "report:dashboard:"

	// Dashboard numbers may lag reality by this much
	reportCacheTTL = 60 * time.Second
)

// ReportCache keeps computed dashboard stats in Redis so repeated
// dashboard loads don't rescan the appointment table. Cache misses and
// Redis failures both fall through to recomputation.
type ReportCache struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewReportCache(redisClient *redis.Client, log *logrus.Logger) *ReportCache {
	return &ReportCache{
		redisClient: redisClient,
		log:         log,
	}
}

func cacheKey(year int) string {
	return fmt.Sprintf("%s%d", reportCacheKeyPrefix, year)
}

// Get returns the cached stats for a year, or nil on miss.
func (c *ReportCache) Get(ctx context.Context, year int) *dto.DashboardStatsResponse {
	payload, err := c.redisClient.Get(ctx, cacheKey(year)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warnf("Failed to read report cache: %+v", err)
		}
		return nil
	}

	var stats dto.DashboardStatsResponse
	if err := json.Unmarshal(payload, &stats); err != nil {
		c.log.Warnf("Failed to decode cached report, dropping it: %+v", err)
		c.redisClient.Del(ctx, cacheKey(year))
		return nil
	}

	return &stats
}

// Set stores the stats for a year with a short TTL.
func (c *ReportCache) Set(ctx context.Context, year int, stats *dto.DashboardStatsResponse) {
	payload, err := json.Marshal(stats)
	if err != nil {
		c.log.Warnf("Failed to encode report for cache: %+v", err)
		return
	}

	if err := c.redisClient.Set(ctx, cacheKey(year), payload, reportCacheTTL).Err(); err != nil {
		c.log.Warnf("Failed to write report cache: %+v", err)
	}
}

// Invalidate drops the cached stats for a year. Called after mutations
// that change the dashboard (settlement, status changes).
func (c *ReportCache) Invalidate(ctx context.Context, year int) {
	if err := c.redisClient.Del(ctx, cacheKey(year)).Err(); err != nil {
		c.log.Warnf("Failed to invalidate report cache: %+v", err)
	}
}
