// Package store persists message snapshots and the administrator identity in
// a Redis backend with bounded retention.
package store

import (
	"context"

	"bizwatchbot/internal/snapshot"
)

// Store defines the interface for snapshot and identity persistence.
// Methods accept context.Context for cancellation and timeouts.
type Store interface {
	// Ping checks the backend connection. Used as a startup health check.
	Ping(ctx context.Context) error

	// PutSnapshot writes a snapshot under its (chat_id, message_id) key,
	// replacing any previous version and resetting the retention TTL.
	PutSnapshot(ctx context.Context, snap *snapshot.MessageSnapshot) error

	// GetSnapshot returns the stored snapshot for the key, or nil if the key
	// was never written or has expired.
	GetSnapshot(ctx context.Context, chatID int64, messageID int) (*snapshot.MessageSnapshot, error)

	// GetSnapshotBatch retrieves snapshots for all message IDs in one
	// backend round trip. The result has one element per requested ID, in
	// request order, with nil marking absent keys.
	GetSnapshotBatch(ctx context.Context, chatID int64, messageIDs []int) ([]*snapshot.MessageSnapshot, error)

	// DeleteSnapshots removes the given keys.
	DeleteSnapshots(ctx context.Context, chatID int64, messageIDs []int) error

	// LoadAdminID returns the persisted administrator identity, or 0 if none
	// is registered.
	LoadAdminID(ctx context.Context) (int64, error)

	// SaveAdminID persists the administrator identity, resetting its TTL.
	SaveAdminID(ctx context.Context, id int64) error
}
