// Package settings holds the user-configurable options and their persistence
package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lixenwraith/vi-snake/constants"
)

var (
	ErrUnknownKey = errors.New("settings: unknown key")
	ErrWrongType  = errors.New("settings: wrong value type for key")
)

// Settings is the persisted option record
type Settings struct {
	GridVisible          bool `toml:"grid_visible"`
	ParticlesEnabled     bool `toml:"particles_enabled"`
	SpeedIncreaseEnabled bool `toml:"speed_increase_enabled"`
	BaseSpeed            int  `toml:"base_speed"`
	SoundEnabled         bool `toml:"sound_enabled"`
}

// Default returns the documented defaults
func Default() Settings {
	return Settings{
		GridVisible:          true,
		ParticlesEnabled:     true,
		SpeedIncreaseEnabled: true,
		BaseSpeed:            constants.DefaultBaseSpeed,
		SoundEnabled:         false,
	}
}

// Clamp returns s with BaseSpeed forced into the valid range
func (s Settings) Clamp() Settings {
	s.BaseSpeed = ClampBaseSpeed(s.BaseSpeed)
	return s
}

// ClampBaseSpeed forces v into [MinBaseSpeed, MaxBaseSpeed]
func ClampBaseSpeed(v int) int {
	return max(constants.MinBaseSpeed, min(constants.MaxBaseSpeed, v))
}

// Key names one option
type Key uint8

const (
	KeyGridVisible Key = iota
	KeyParticlesEnabled
	KeySpeedIncreaseEnabled
	KeyBaseSpeed
	KeySoundEnabled
)

// Keys lists options in settings screen order
var Keys = []Key{KeyGridVisible, KeyParticlesEnabled, KeySpeedIncreaseEnabled, KeyBaseSpeed, KeySoundEnabled}

// String returns the document key
func (k Key) String() string {
	switch k {
	case KeyGridVisible:
		return "grid_visible"
	case KeyParticlesEnabled:
		return "particles_enabled"
	case KeySpeedIncreaseEnabled:
		return "speed_increase_enabled"
	case KeyBaseSpeed:
		return "base_speed"
	case KeySoundEnabled:
		return "sound_enabled"
	default:
		return fmt.Sprintf("key(%d)", uint8(k))
	}
}

// Label returns the human-readable option name for the settings screen
func (k Key) Label() string {
	switch k {
	case KeyGridVisible:
		return "Show grid"
	case KeyParticlesEnabled:
		return "Particles"
	case KeySpeedIncreaseEnabled:
		return "Speed increase"
	case KeyBaseSpeed:
		return "Base speed"
	case KeySoundEnabled:
		return "Sound"
	default:
		return "?"
	}
}

// IsBool reports whether the option holds a boolean
func (k Key) IsBool() bool {
	switch k {
	case KeyGridVisible, KeyParticlesEnabled, KeySpeedIncreaseEnabled, KeySoundEnabled:
		return true
	}
	return false
}

// ParseKey resolves a document key name
func ParseKey(name string) (Key, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, k := range Keys {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKey, name)
}

// Bool returns a boolean option
func (s Settings) Bool(k Key) (bool, error) {
	switch k {
	case KeyGridVisible:
		return s.GridVisible, nil
	case KeyParticlesEnabled:
		return s.ParticlesEnabled, nil
	case KeySpeedIncreaseEnabled:
		return s.SpeedIncreaseEnabled, nil
	case KeySoundEnabled:
		return s.SoundEnabled, nil
	case KeyBaseSpeed:
		return false, fmt.Errorf("%w: %s is int", ErrWrongType, k)
	}
	return false, fmt.Errorf("%w: %s", ErrUnknownKey, k)
}

func (s *Settings) setBool(k Key, v bool) error {
	switch k {
	case KeyGridVisible:
		s.GridVisible = v
	case KeyParticlesEnabled:
		s.ParticlesEnabled = v
	case KeySpeedIncreaseEnabled:
		s.SpeedIncreaseEnabled = v
	case KeySoundEnabled:
		s.SoundEnabled = v
	case KeyBaseSpeed:
		return fmt.Errorf("%w: %s is int", ErrWrongType, k)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, k)
	}
	return nil
}
