package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	domain "github.com/adviseline/advisory-scheduler/internal/domain/appointment"
)

const (
	keyPrefix  = "availability:"
	defaultTTL = 60 * time.Second
)

// Availability is a read-through cache for the store's conflict-aware
// day availability. Writes that touch a day invalidate its key; a
// short TTL covers anything that slips through. Cache failures fall
// back to the loader, never to an error.
type Availability struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

func NewAvailability(rdb *redis.Client, log *zap.Logger) *Availability {
	return &Availability{
		rdb: rdb,
		ttl: defaultTTL,
		log: log,
	}
}

func dayKey(date time.Time) string {
	return keyPrefix + date.Format("2006-01-02")
}

type Loader func(ctx context.Context, date time.Time) ([]domain.TimeSlot, error)

func (a *Availability) Get(
	ctx context.Context,
	date time.Time,
	load Loader,
) ([]domain.TimeSlot, error) {

	key := dayKey(date)

	if raw, err := a.rdb.Get(ctx, key).Bytes(); err == nil {
		var slots []domain.TimeSlot
		if err := json.Unmarshal(raw, &slots); err == nil {
			return slots, nil
		}
	}

	slots, err := load(ctx, date)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(slots); err == nil {
		if err := a.rdb.Set(ctx, key, raw, a.ttl).Err(); err != nil {
			a.log.Warn("availability cache write failed", zap.String("key", key), zap.Error(err))
		}
	}

	return slots, nil
}

func (a *Availability) Invalidate(ctx context.Context, date time.Time) {
	if err := a.rdb.Del(ctx, dayKey(date)).Err(); err != nil {
		a.log.Warn("availability cache invalidation failed",
			zap.String("key", dayKey(date)),
			zap.Error(err),
		)
	}
}
