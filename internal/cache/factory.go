package cache

import (
	"context"
	"strings"
	"time"

	"github.com/bobmcallan/invest-portal/internal/common"
	"github.com/bobmcallan/invest-portal/internal/config"
	"github.com/bobmcallan/invest-portal/internal/interfaces"
)

const redisPingTimeout = 2 * time.Second

// NewStore creates the configured store. A Redis store that cannot be
// reached falls back to memory so the portal still starts.
func NewStore(cfg *config.Config, logger *common.Logger) interfaces.QueryStore {
	mem := func() interfaces.QueryStore { return NewMemoryStore(cfg.Cache.MaxEntries) }

	if !strings.EqualFold(cfg.Cache.Backend, "redis") {
		logger.Info().Int("max_entries", cfg.Cache.MaxEntries).Msg("query cache: memory")
		return mem()
	}

	rs, err := NewRedisStore(cfg.Cache.RedisURL, cfg.Cache.KeyPrefix, logger)
	if err != nil {
		logger.Warn().Str("error", err.Error()).Msg("query cache: invalid redis url, using memory")
		return mem()
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := rs.Ping(ctx); err != nil {
		_ = rs.Close()
		logger.Warn().Str("error", err.Error()).Msg("query cache: redis unreachable, using memory")
		return mem()
	}

	logger.Info().Str("prefix", cfg.Cache.KeyPrefix).Msg("query cache: redis")
	return rs
}
