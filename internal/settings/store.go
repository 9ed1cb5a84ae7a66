package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/atomicstack/cli-launcher/internal/kv"
	"github.com/atomicstack/cli-launcher/internal/logging/events"
)

// Store loads and saves the Configuration through a persistent slot.
type Store struct {
	slots kv.Store
	key   string
}

// NewStore returns a Store using the standard launcher_config slot.
func NewStore(slots kv.Store) *Store {
	return &Store{slots: slots, key: Key}
}

// Load never fails to produce a Configuration. A missing slot yields the
// defaults with a nil error; an unreadable slot or unparsable document yields
// the defaults with an error the caller should log and otherwise ignore.
func (s *Store) Load(ctx context.Context) (Configuration, error) {
	value, err := s.slots.Get(ctx, s.key)
	if errors.Is(err, kv.ErrNotFound) {
		events.Settings.Load(s.key, false)
		return Default(), nil
	}
	if err != nil {
		events.Settings.ParseFailed(s.key, err)
		return Default(), fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	events.Settings.Load(s.key, true)
	cfg, err := Decode([]byte(value))
	if err != nil {
		events.Settings.ParseFailed(s.key, err)
	}
	return cfg, err
}

// Save overwrites the slot with the full serialized Configuration.
func (s *Store) Save(ctx context.Context, cfg Configuration) error {
	data, err := Encode(cfg)
	if err != nil {
		events.Settings.Save(err)
		return err
	}
	if err := s.slots.Set(ctx, s.key, string(data)); err != nil {
		err = fmt.Errorf("save settings: %w", err)
		events.Settings.Save(err)
		return err
	}
	events.Settings.Save(nil)
	return nil
}
