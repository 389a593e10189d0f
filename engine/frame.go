package engine

import (
	"github.com/lixenwraith/vi-snake/core"
	"github.com/lixenwraith/vi-snake/game"
	"github.com/lixenwraith/vi-snake/particle"
	"github.com/lixenwraith/vi-snake/settings"
	"github.com/lixenwraith/vi-snake/status"
)

// Frame is the per-frame draw request handed to the renderer
// Slices are copies, the renderer may keep them
type Frame struct {
	State core.GameState
	Grid  game.Grid

	// Snake and food are set while a session exists
	Snake   []core.Point
	Food    core.Point
	HasFood bool

	Particles []particle.Particle

	Score     int
	HighScore int
	Speed     int

	Settings       settings.Settings
	SettingsCursor int

	// GameOver is set in StateGameOver only
	GameOver *GameOverInfo

	Fullscreen bool
	SessionID  string

	// Debug is filled when the loop runs with debug metrics
	Debug []status.Entry
}

// Frame builds the draw request for the current state
func (m *Machine) Frame() Frame {
	f := Frame{
		State:      m.state,
		Grid:       m.cfg.Grid,
		Particles:  m.particles.Active(),
		HighScore:  m.highScore.Get(),
		Settings:   m.settings.Get(),
		Fullscreen: m.fullscreen,
	}

	switch m.state {
	case core.StatePlaying, core.StatePaused, core.StateGameOver:
		s := m.session
		f.Snake = s.model.Body()
		f.Food, f.HasFood = s.model.Food()
		f.Score = s.model.Score()
		f.Speed = s.speed
		f.SessionID = s.id.String()
		if m.state == core.StateGameOver && m.over != nil {
			over := *m.over
			f.GameOver = &over
		}
	case core.StateSettings:
		f.SettingsCursor = m.cursor
	}
	return f
}
