package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"bizwatchbot/internal/config"
	"bizwatchbot/internal/snapshot"
)

// adminKey is the single key holding the administrator identity record.
const adminKey = "admin_user_id"

// NewClient creates a Redis client from the configuration. The connection is
// not verified here; callers should Ping the store at startup.
func NewClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// redisStore implements Store on a Redis backend. Every write carries the
// configured TTL, so retention is enforced by the backend itself.
type redisStore struct {
	client *redis.Client
	logger *slog.Logger
	ttl    time.Duration
}

// NewStore creates a Store backed by the given Redis client. All snapshot
// and identity writes expire after ttl.
func NewStore(client *redis.Client, logger *slog.Logger, ttl time.Duration) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &redisStore{
		client: client,
		logger: logger.With("component", "store"),
		ttl:    ttl,
	}
}

func snapshotKey(chatID int64, messageID int) string {
	return fmt.Sprintf("%d:%d", chatID, messageID)
}

func (s *redisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (s *redisStore) PutSnapshot(ctx context.Context, snap *snapshot.MessageSnapshot) error {
	if snap == nil {
		return errors.New("cannot store nil snapshot")
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	key := snapshotKey(snap.ChatID, snap.MessageID)
	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", key, err)
	}

	s.logger.DebugContext(ctx, "Stored snapshot", "key", key, "bytes", len(data))
	return nil
}

func (s *redisStore) GetSnapshot(ctx context.Context, chatID int64, messageID int) (*snapshot.MessageSnapshot, error) {
	key := snapshotKey(chatID, messageID)

	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", key, err)
	}

	snap := &snapshot.MessageSnapshot{}
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", key, err)
	}
	return snap, nil
}

func (s *redisStore) GetSnapshotBatch(ctx context.Context, chatID int64, messageIDs []int) ([]*snapshot.MessageSnapshot, error) {
	if len(messageIDs) == 0 {
		return nil, nil
	}

	pipe := s.client.Pipeline()
	cmds := make([]*redis.StringCmd, 0, len(messageIDs))
	for _, id := range messageIDs {
		cmds = append(cmds, pipe.Get(ctx, snapshotKey(chatID, id)))
	}

	// Exec reports redis.Nil when any key is absent; absence is resolved
	// per command below.
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to read snapshot batch: %w", err)
	}

	snaps := make([]*snapshot.MessageSnapshot, len(messageIDs))
	for i, cmd := range cmds {
		data, err := cmd.Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read snapshot %s: %w", snapshotKey(chatID, messageIDs[i]), err)
		}

		snap := &snapshot.MessageSnapshot{}
		if err := json.Unmarshal(data, snap); err != nil {
			// An undecodable record cannot produce a notification; treat it
			// as absent rather than failing the whole batch.
			s.logger.WarnContext(ctx, "Skipping undecodable snapshot",
				"key", snapshotKey(chatID, messageIDs[i]), "error", err)
			continue
		}
		snaps[i] = snap
	}

	return snaps, nil
}

func (s *redisStore) DeleteSnapshots(ctx context.Context, chatID int64, messageIDs []int) error {
	if len(messageIDs) == 0 {
		return nil
	}

	keys := make([]string, 0, len(messageIDs))
	for _, id := range messageIDs {
		keys = append(keys, snapshotKey(chatID, id))
	}

	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete snapshots: %w", err)
	}

	s.logger.DebugContext(ctx, "Deleted snapshots", "count", len(keys))
	return nil
}

func (s *redisStore) LoadAdminID(ctx context.Context) (int64, error) {
	val, err := s.client.Get(ctx, adminKey).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read administrator identity: %w", err)
	}

	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid administrator identity record %q: %w", val, err)
	}
	return id, nil
}

func (s *redisStore) SaveAdminID(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("invalid administrator id %d", id)
	}
	if err := s.client.Set(ctx, adminKey, strconv.FormatInt(id, 10), s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to persist administrator identity: %w", err)
	}
	return nil
}
