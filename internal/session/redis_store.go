package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/liftlog/internal/telemetry/tracing"

	"github.com/go-redis/redis/v8"
)

const (
	snapshotKeyPrefix = "liftlog-active-session||"
	snapshotTTL       = 7 * 24 * time.Hour
)

// RedisSnapshotStore keeps the active snapshot so a workout survives a restart.
type RedisSnapshotStore struct {
	redisClient *redis.Client
}

func NewRedisSnapshotStore(redisClient *redis.Client) *RedisSnapshotStore {
	return &RedisSnapshotStore{
		redisClient: redisClient,
	}
}

func (s *RedisSnapshotStore) Save(ctx context.Context, userID string, snapshot Snapshot) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "redis.session.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	blob, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	return s.redisClient.Set(ctx, snapshotKeyPrefix+userID, blob, snapshotTTL).Err()
}

// Load returns nil, nil when there is no stored snapshot.
func (s *RedisSnapshotStore) Load(ctx context.Context, userID string) (_ *Snapshot, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "redis.session.load")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	blob, err := s.redisClient.Get(ctx, snapshotKeyPrefix+userID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var snapshot Snapshot
	if err := json.Unmarshal(blob, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &snapshot, nil
}

func (s *RedisSnapshotStore) Delete(ctx context.Context, userID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "redis.session.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	return s.redisClient.Del(ctx, snapshotKeyPrefix+userID).Err()
}
