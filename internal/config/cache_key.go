package config

import (
	"fmt"
	"time"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// RateLimitKey returns the counter key for a client IP in the window starting at windowStart.
func (r *CacheKeyStruct) RateLimitKey(ip string, windowStart time.Time) string {
	return fmt.Sprintf("ratelimit:%s:%d", ip, windowStart.Unix())
}

var CacheKey = NewCacheKeyStruct()
