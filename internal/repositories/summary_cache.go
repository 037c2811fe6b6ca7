package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sgolovanov/finance-tracker/internal/logger"
	"github.com/sgolovanov/finance-tracker/internal/models"
)

const summaryVersionKey = "summary:version"

// SummaryCacheRepository caches the computed dashboard summary in Redis.
// Entries are keyed by an explicit version counter: Invalidate bumps the
// counter so every prior entry becomes unreachable and simply expires,
// instead of the caller reloading state implicitly after each write.
type SummaryCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration duration for cached summaries
}

// NewSummaryCacheRepository creates a new repository instance with the given TTL
func NewSummaryCacheRepository(client *redis.Client, expiration time.Duration) *SummaryCacheRepository {
	return &SummaryCacheRepository{
		client: client,
		exp:    expiration,
	}
}

// version reads the current cache version. A missing counter means no write
// has ever invalidated the cache, which is version zero.
func (r *SummaryCacheRepository) version(ctx context.Context) (int64, error) {
	v, err := r.client.Get(ctx, summaryVersionKey).Int64()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, err
	}
	return v, nil
}

// GetSummary fetches the cached summary for the current version. On a miss it
// still returns the version it read, so the caller can store a freshly
// computed summary under that same version: a write that bumps the counter in
// the meantime strands the caller's snapshot on the old, unreachable key
// instead of re-keying stale data to the newest version.
func (r *SummaryCacheRepository) GetSummary(ctx context.Context) (*models.Summary, int64, error) {
	version, err := r.version(ctx)
	if err != nil {
		logger.Log.Infow(
			"key", summaryVersionKey,
			"error", err,
		)
		return nil, 0, err
	}

	key := fmt.Sprintf("summary:v%d", version)

	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		logger.Log.Infow(
			"key", key,
			"result", val,
			"error", err,
		)
		if err == redis.Nil {
			return nil, version, fmt.Errorf("summary not found in cache for version %d", version)
		}
		return nil, version, err
	}

	var summary models.Summary
	if err := json.Unmarshal([]byte(val), &summary); err != nil {
		logger.Log.Infow(
			"key", key,
			"value", val,
			"error", err,
		)
		return nil, version, err
	}

	logger.Log.Infow(
		"key", key,
		"result", summary,
		"error", nil,
	)

	return &summary, version, nil
}

// SetSummary caches a computed summary under the given version with
// expiration. The version must be the one GetSummary returned for the miss
// that triggered the computation.
func (r *SummaryCacheRepository) SetSummary(ctx context.Context, version int64, summary *models.Summary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}

	key := fmt.Sprintf("summary:v%d", version)
	err = r.client.Set(ctx, key, data, r.exp).Err()

	logger.Log.Infow(
		"key", key,
		"error", err,
	)

	return err
}

// Invalidate bumps the version counter, making every cached summary stale.
func (r *SummaryCacheRepository) Invalidate(ctx context.Context) error {
	err := r.client.Incr(ctx, summaryVersionKey).Err()

	logger.Log.Infow(
		"key", summaryVersionKey,
		"op", "incr",
		"error", err,
	)

	return err
}
