package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// UserSessionKey returns the cache key holding a user's active login JTI.
func (r *CacheKeyStruct) UserSessionKey(userID string) string {
	return fmt.Sprintf("login:%s", userID)
}

// DashboardStatsKey returns the cache key for the admin dashboard counters.
func (r *CacheKeyStruct) DashboardStatsKey() string {
	return "dashboard:stats"
}

// PlatformStatisticsKey returns the cache key for the admin statistics view.
func (r *CacheKeyStruct) PlatformStatisticsKey() string {
	return "dashboard:statistics"
}

var CacheKey = NewCacheKeyStruct()
