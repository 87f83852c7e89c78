package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	DefaultRedisChannel = "evolvx:rankings"
	latestKeyPrefix     = "evolvx-rankings||"
)

// Redis publishes every snapshot on a pub/sub channel and keeps the latest one per user
// in a hash, so that late subscribers can catch up.
type Redis struct {
	client  *redis.Client
	channel string
}

func NewRedis(client *redis.Client, channel string) *Redis {
	if channel == "" {
		channel = DefaultRedisChannel
	}
	return &Redis{
		client:  client,
		channel: channel,
	}
}

func LatestKey(userID int) string {
	return latestKeyPrefix + strconv.Itoa(userID)
}

func (r *Redis) Name() string {
	return "redis"
}

func (r *Redis) Publish(ctx context.Context, snapshot Snapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := r.client.Publish(ctx, r.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", r.channel, err)
	}

	if err := r.client.HSet(
		ctx,
		LatestKey(snapshot.UserID),
		"snapshot", payload,
		"timestamp", snapshot.Timestamp.Format(time.RFC3339Nano),
	).Err(); err != nil {
		return fmt.Errorf("store latest snapshot: %w", err)
	}

	return nil
}

// Close is a no-op; the redis client is shared and closed by its owner.
func (r *Redis) Close() error {
	return nil
}
