package counters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/2beens/liftlog/internal/telemetry/tracing"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const (
	countersKeyPrefix  = "liftlog-counters||"
	everSavedKeyPrefix = "liftlog-counters-saved||"

	maxUpdateAttempts = 5
)

var ErrConcurrentUpdate = errors.New("counters changed concurrently, giving up")

// RedisStore keeps all counters of a user in one JSON value, plus a flag
// telling whether the user has ever saved anything.
type RedisStore struct {
	redisClient *redis.Client
}

func NewRedisStore(redisClient *redis.Client) *RedisStore {
	return &RedisStore{
		redisClient: redisClient,
	}
}

func (s *RedisStore) Load(ctx context.Context, userID string) (_ []Counter, everSaved bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "redis.counters.load")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	return read(ctx, s.redisClient, userID)
}

// Update runs a read-modify-write of the user's counters under WATCH.
// When another writer touches the counters in between, the whole cycle is
// retried with fresh data, so fn may run more than once.
func (s *RedisStore) Update(
	ctx context.Context,
	userID string,
	fn func(counters []Counter, everSaved bool) ([]Counter, error),
) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "redis.counters.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	countersKey := countersKeyPrefix + userID
	txf := func(tx *redis.Tx) error {
		counters, everSaved, err := read(ctx, tx, userID)
		if err != nil {
			return err
		}
		updated, err := fn(counters, everSaved)
		if err != nil {
			return err
		}

		if updated == nil {
			updated = []Counter{}
		}
		blob, err := json.Marshal(updated)
		if err != nil {
			return fmt.Errorf("marshal counters: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, countersKey, blob, 0)
			pipe.Set(ctx, everSavedKeyPrefix+userID, "1", 0)
			return nil
		})
		return err
	}

	for attempt := 1; attempt <= maxUpdateAttempts; attempt++ {
		err = s.redisClient.Watch(ctx, txf, countersKey)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
		log.Tracef("counters of [%s] changed during update, attempt %d", userID, attempt)
	}
	return ErrConcurrentUpdate
}

func read(ctx context.Context, c redis.Cmdable, userID string) ([]Counter, bool, error) {
	blob, err := c.Get(ctx, countersKeyPrefix+userID).Bytes()
	if errors.Is(err, redis.Nil) {
		exists, err := c.Exists(ctx, everSavedKeyPrefix+userID).Result()
		if err != nil {
			return nil, false, err
		}
		return nil, exists > 0, nil
	}
	if err != nil {
		return nil, false, err
	}

	var counters []Counter
	if err := json.Unmarshal(blob, &counters); err != nil {
		return nil, true, fmt.Errorf("unmarshal counters: %w", err)
	}
	return counters, true, nil
}
