package cache

import (
	"encoding/json"
	"fmt"

	"myhair/internal/model"
)

// ProfileKey is the cache key holding the last known user.
const ProfileKey = "7ela9_user"

// ProfileCache persists the session user as JSON. It is a hint for instant
// startup; the backend session check stays authoritative.
type ProfileCache struct {
	store Store
}

func NewProfileCache(store Store) *ProfileCache {
	return &ProfileCache{store: store}
}

// Load returns the cached profile, or nil when nothing is cached. A value
// that does not decode to a usable profile is an error.
func (c *ProfileCache) Load() (*model.Profile, error) {
	raw, ok, err := c.store.Get(ProfileKey)
	if err != nil || !ok {
		return nil, err
	}
	var p model.Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("failed to decode cached profile: %w", err)
	}
	if !p.Valid() {
		return nil, fmt.Errorf("cached profile is incomplete")
	}
	return &p, nil
}

func (c *ProfileCache) Save(p *model.Profile) error {
	if p == nil {
		return c.Clear()
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	return c.store.Set(ProfileKey, string(data))
}

func (c *ProfileCache) Clear() error {
	return c.store.Delete(ProfileKey)
}
