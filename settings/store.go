package settings

import (
	"errors"
	"fmt"
	"log"

	"github.com/lixenwraith/vi-snake/constants"
	"github.com/lixenwraith/vi-snake/persistence"
	"github.com/lixenwraith/vi-snake/toml"
)

// Store owns the live settings record and writes it through a persistence.Store
type Store struct {
	backend persistence.Store
	current Settings
	dirty   bool
}

// NewStore creates a store holding defaults, call Load to restore saved values
func NewStore(backend persistence.Store) *Store {
	return &Store{
		backend: backend,
		current: Default(),
	}
}

// Get returns a copy of the current settings
func (s *Store) Get() Settings {
	return s.current
}

// Load restores settings from the backend and never fails
// Missing or malformed documents yield defaults, a partial document keeps
// defaults for absent or mistyped keys, out-of-range speed is clamped
func (s *Store) Load() {
	loaded := Default()
	defer func() {
		s.current = loaded.Clamp()
		s.dirty = false
	}()

	data, err := s.backend.Read(constants.SettingsFileName)
	if errors.Is(err, persistence.ErrNotFound) {
		log.Printf("settings: no saved settings, using defaults")
		return
	}
	if err != nil {
		log.Printf("settings: load failed, using defaults: %v", err)
		return
	}

	if err := toml.Unmarshal(data, &loaded); err != nil {
		if !errors.Is(err, toml.ErrTypeMismatch) {
			log.Printf("settings: corrupt document, using defaults: %v", err)
			loaded = Default()
			return
		}
		log.Printf("settings: ignoring mistyped keys: %v", err)
	}

	if c := loaded.Clamp(); c.BaseSpeed != loaded.BaseSpeed {
		log.Printf("settings: base_speed %d out of range, clamped to %d", loaded.BaseSpeed, c.BaseSpeed)
	}
}

// Save writes the current settings
func (s *Store) Save() error {
	data, err := toml.Marshal(s.current)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := s.backend.Write(constants.SettingsFileName, data); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	s.dirty = false
	return nil
}

// Flush saves only if a change failed to persist earlier
func (s *Store) Flush() error {
	if !s.dirty {
		return nil
	}
	return s.Save()
}

// SetBool sets a boolean option and persists it
func (s *Store) SetBool(k Key, v bool) error {
	if err := s.current.setBool(k, v); err != nil {
		return err
	}
	s.persist()
	return nil
}

// SetInt sets an integer option, clamped into range, and persists it
func (s *Store) SetInt(k Key, v int) error {
	if k != KeyBaseSpeed {
		if k.IsBool() {
			return fmt.Errorf("%w: %s is bool", ErrWrongType, k)
		}
		return fmt.Errorf("%w: %s", ErrUnknownKey, k)
	}
	s.current.BaseSpeed = ClampBaseSpeed(v)
	s.persist()
	return nil
}

// Toggle flips a boolean option and persists it
func (s *Store) Toggle(k Key) error {
	v, err := s.current.Bool(k)
	if err != nil {
		return err
	}
	return s.SetBool(k, !v)
}

// AdjustBaseSpeed moves base speed by delta within range
func (s *Store) AdjustBaseSpeed(delta int) {
	// Only error is a wrong key, KeyBaseSpeed is always valid
	_ = s.SetInt(KeyBaseSpeed, s.current.BaseSpeed+delta)
}

// persist saves immediately, a failure is logged and retried by Flush
func (s *Store) persist() {
	s.dirty = true
	if err := s.Save(); err != nil {
		log.Printf("settings: %v", err)
	}
}
