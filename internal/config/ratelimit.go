package config

import "time"

// RateLimitConfig configures the Redis token bucket placed in front of
// the API. Capacity tokens are available per key; RefillTokens are added
// back every RefillInterval.
type RateLimitConfig struct {
	Enabled        bool          `default:"true"`
	Capacity       int           `default:"60"`
	RefillTokens   int           `split_words:"true" default:"1"`
	RefillInterval time.Duration `split_words:"true" default:"1s"`
	TTL            time.Duration `default:"10m"`
	KeyStrategy    string        `split_words:"true" default:"ip_user_route"`
	Prefix         string        `default:"rl"`
}

func (c RateLimitConfig) normalize() RateLimitConfig {
	if c.Capacity < 1 {
		c.Capacity = 1
	}
	if c.RefillTokens < 1 {
		c.RefillTokens = 1
	}
	if c.RefillInterval <= 0 {
		c.RefillInterval = time.Second
	}
	// keys must outlive a few refill intervals or buckets reset early
	if minTTL := 5 * c.RefillInterval; c.TTL < minTTL {
		c.TTL = minTTL
	}
	return c
}
