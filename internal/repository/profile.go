package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/store"
)

// ProfileStore implements UserProfileRepo on the userData key.
type ProfileStore struct {
	store *store.Store
}

// NewProfileStore creates a new ProfileStore.
func NewProfileStore(st *store.Store) *ProfileStore {
	return &ProfileStore{store: st}
}

func (r *ProfileStore) Get(ctx context.Context) (domain.UserProfile, error) {
	raw, ok, err := r.store.Lookup(ctx, domain.KeyUserData)
	if err != nil {
		return domain.UserProfile{}, fmt.Errorf("reading user profile: %w", err)
	}
	if !ok {
		return domain.UserProfile{}, fmt.Errorf("user profile: %w", ErrNotFound)
	}
	var p domain.UserProfile
	if err := json.Unmarshal(raw, &p); err != nil {
		return domain.UserProfile{}, fmt.Errorf("decoding user profile: %w", err)
	}
	return p, nil
}

func (r *ProfileStore) Upsert(ctx context.Context, p domain.UserProfile) error {
	if err := r.store.Set(ctx, domain.KeyUserData, p); err != nil {
		return fmt.Errorf("upserting user profile: %w", err)
	}
	return nil
}
