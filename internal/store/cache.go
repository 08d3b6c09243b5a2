package store

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"talent-match-workers/internal/common/logger"
	"talent-match-workers/internal/common/metrics"
	"talent-match-workers/internal/matching"
	"talent-match-workers/internal/models"
)

const (
	talentKeyPrefix      = "profile:talent:"
	opportunityKeyPrefix = "profile:opportunity:"
)

// CachedProfiles is a cache-aside wrapper over another ProfileStore. Redis
// failures are logged and fall through to the wrapped store.
type CachedProfiles struct {
	next   ProfileStore
	redis  redis.Cmdable
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedProfiles(next ProfileStore, rdb redis.Cmdable, ttl time.Duration, log logger.Logger) *CachedProfiles {
	return &CachedProfiles{next: next, redis: rdb, ttl: ttl, logger: log}
}

func (c *CachedProfiles) GetTalent(ctx context.Context, id string) (*models.TalentRecord, error) {
	var t models.TalentRecord
	if c.lookup(ctx, talentKeyPrefix+id, &t) {
		return &t, nil
	}
	rec, err := c.next.GetTalent(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(ctx, talentKeyPrefix+id, rec)
	return rec, nil
}

func (c *CachedProfiles) GetOpportunity(ctx context.Context, id string) (*models.OpportunityRecord, error) {
	var o models.OpportunityRecord
	if c.lookup(ctx, opportunityKeyPrefix+id, &o) {
		return &o, nil
	}
	rec, err := c.next.GetOpportunity(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(ctx, opportunityKeyPrefix+id, rec)
	return rec, nil
}

// GetTalents serves what it can from one MGET and loads the rest in a
// single call to the wrapped store.
func (c *CachedProfiles) GetTalents(ctx context.Context, ids []string) ([]models.TalentRecord, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	found := make(map[string]models.TalentRecord, len(ids))
	if c.ttl > 0 {
		keys := make([]string, len(ids))
		for i, id := range ids {
			keys[i] = talentKeyPrefix + id
		}
		vals, err := c.redis.MGet(ctx, keys...).Result()
		if err != nil {
			c.cacheFailure("mget", keys[0], err)
		}
		for i, v := range vals {
			s, ok := v.(string)
			if !ok {
				continue
			}
			var t models.TalentRecord
			if err := json.Unmarshal([]byte(s), &t); err == nil {
				found[ids[i]] = t
			}
		}
	}

	var missing []string
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	metrics.CacheRequests.WithLabelValues("profile", metrics.CacheHit).Add(float64(len(ids) - len(missing)))
	metrics.CacheRequests.WithLabelValues("profile", metrics.CacheMiss).Add(float64(len(missing)))

	if len(missing) > 0 {
		loaded, err := c.next.GetTalents(ctx, missing)
		if err != nil {
			return nil, err
		}
		for i := range loaded {
			found[loaded[i].ID] = loaded[i]
			c.store(ctx, talentKeyPrefix+loaded[i].ID, &loaded[i])
		}
	}

	out := make([]models.TalentRecord, 0, len(ids))
	for _, id := range ids {
		if t, ok := found[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

// Invalidate drops cached copies of the given profiles.
func (c *CachedProfiles) Invalidate(ctx context.Context, talentIDs, opportunityIDs []string) error {
	keys := make([]string, 0, len(talentIDs)+len(opportunityIDs))
	for _, id := range talentIDs {
		keys = append(keys, talentKeyPrefix+id)
	}
	for _, id := range opportunityIDs {
		keys = append(keys, opportunityKeyPrefix+id)
	}
	if len(keys) == 0 {
		return nil
	}
	return c.redis.Del(ctx, keys...).Err()
}

func (c *CachedProfiles) lookup(ctx context.Context, key string, dst any) bool {
	if c.ttl <= 0 {
		return false
	}
	return getJSON(ctx, c.redis, key, dst, "profile", c.logger)
}

func (c *CachedProfiles) store(ctx context.Context, key string, v any) {
	if c.ttl <= 0 {
		return
	}
	setJSON(ctx, c.redis, key, v, c.ttl, c.logger)
}

func (c *CachedProfiles) cacheFailure(op, key string, err error) {
	metrics.CacheRequests.WithLabelValues("profile", metrics.CacheError).Inc()
	c.logger.Warn("profile cache unavailable", map[string]interface{}{
		"op":    op,
		"key":   key,
		"error": err.Error(),
	})
}

// ResultCache stores match results keyed by both record versions and the
// engine version, so any change to either side or to the weights misses.
type ResultCache struct {
	redis  redis.Cmdable
	ttl    time.Duration
	logger logger.Logger
}

func NewResultCache(rdb redis.Cmdable, ttl time.Duration, log logger.Logger) *ResultCache {
	return &ResultCache{redis: rdb, ttl: ttl, logger: log}
}

// ResultKey reports false when either record has no version, since such a
// result could not be invalidated.
func ResultKey(engineVersion string, t models.TalentRecord, o models.OpportunityRecord) (string, bool) {
	if t.ID == "" || o.ID == "" || t.Version == "" || o.Version == "" {
		return "", false
	}
	return fmt.Sprintf("match:%s:%s@%s:%s@%s", engineVersion, t.ID, t.Version, o.ID, o.Version), true
}

func (c *ResultCache) Get(ctx context.Context, key string) (*matching.MatchResult, bool) {
	if c.ttl <= 0 {
		return nil, false
	}
	var r matching.MatchResult
	if !getJSON(ctx, c.redis, key, &r, "result", c.logger) {
		return nil, false
	}
	return &r, true
}

func (c *ResultCache) Put(ctx context.Context, key string, r matching.MatchResult) {
	if c.ttl <= 0 {
		return
	}
	setJSON(ctx, c.redis, key, r, c.ttl, c.logger)
}

func getJSON(ctx context.Context, rdb redis.Cmdable, key string, dst any, cache string, log logger.Logger) bool {
	raw, err := rdb.Get(ctx, key).Bytes()
	switch {
	case stderrors.Is(err, redis.Nil):
		metrics.CacheRequests.WithLabelValues(cache, metrics.CacheMiss).Inc()
		return false
	case err != nil:
		metrics.CacheRequests.WithLabelValues(cache, metrics.CacheError).Inc()
		log.Warn("cache read failed", map[string]interface{}{"key": key, "error": err.Error()})
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		metrics.CacheRequests.WithLabelValues(cache, metrics.CacheError).Inc()
		log.Warn("discarding undecodable cache entry", map[string]interface{}{"key": key, "error": err.Error()})
		return false
	}
	metrics.CacheRequests.WithLabelValues(cache, metrics.CacheHit).Inc()
	return true
}

func setJSON(ctx context.Context, rdb redis.Cmdable, key string, v any, ttl time.Duration, log logger.Logger) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Warn("cache encode failed", map[string]interface{}{"key": key, "error": err.Error()})
		return
	}
	if err := rdb.Set(ctx, key, data, ttl).Err(); err != nil {
		log.Warn("cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
}
