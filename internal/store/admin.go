package store

import (
	"context"
	"errors"
	"sync/atomic"
)

// ErrNoAdmin is reported when an operation needs a registered administrator
// and none exists.
var ErrNoAdmin = errors.New("no administrator registered")

// AdminIdentity is the process-wide administrator identity cell: persisted in
// the store, cached in memory, loaded once at startup and updated on
// registration. All handlers receive it as an injected dependency.
type AdminIdentity struct {
	store Store
	id    atomic.Int64 // 0 means unset
}

// NewAdminIdentity creates an identity cell backed by the given store.
func NewAdminIdentity(store Store) *AdminIdentity {
	return &AdminIdentity{store: store}
}

// Load populates the cache from the store. A missing record is not an error;
// the cell stays unset until registration.
func (a *AdminIdentity) Load(ctx context.Context) error {
	id, err := a.store.LoadAdminID(ctx)
	if err != nil {
		return err
	}
	a.id.Store(id)
	return nil
}

// Set registers a new administrator: the cache is updated first so the
// current process keeps working even if persistence fails.
func (a *AdminIdentity) Set(ctx context.Context, id int64) error {
	a.id.Store(id)
	return a.store.SaveAdminID(ctx, id)
}

// ID returns the cached administrator identity and whether one is set.
func (a *AdminIdentity) ID() (int64, bool) {
	id := a.id.Load()
	return id, id != 0
}

// Refresh re-persists the cached identity to push its TTL out. Returns
// ErrNoAdmin when no administrator is registered.
func (a *AdminIdentity) Refresh(ctx context.Context) error {
	id, ok := a.ID()
	if !ok {
		return ErrNoAdmin
	}
	return a.store.SaveAdminID(ctx, id)
}
