package lists

import "time"

// Config holds configuration for the lists feature.
type Config struct {
	// CacheTTLSeconds is how long the latest snapshot of a list is served from memory.
	// Zero disables caching.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"30"`
	// HistoryLimit caps the number of revisions returned by History.
	HistoryLimit int `mapstructure:"history_limit" default:"50"`
	// ArchivePrefix is the storage prefix revisions are archived under.
	ArchivePrefix string `mapstructure:"archive_prefix" default:"lists"`
	// Archive enables writing every revision to object storage.
	Archive bool `mapstructure:"archive" default:"true"`
	// StrictIdentity rejects stateless diff requests with duplicated item ids
	// instead of pairing duplicates in order.
	StrictIdentity bool `mapstructure:"strict_identity" default:"false"`
}

// CacheTTL returns the snapshot cache TTL.
func (c Config) CacheTTL() time.Duration {
	if c.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// Limit clamps a requested history size to the configured maximum.
func (c Config) Limit(requested int) int {
	max := c.HistoryLimit
	if max <= 0 {
		max = 50
	}
	if requested <= 0 || requested > max {
		return max
	}
	return requested
}
