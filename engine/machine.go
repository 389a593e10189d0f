package engine

import (
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"

	"github.com/lixenwraith/vi-snake/audio"
	"github.com/lixenwraith/vi-snake/constants"
	"github.com/lixenwraith/vi-snake/core"
	"github.com/lixenwraith/vi-snake/game"
	"github.com/lixenwraith/vi-snake/highscore"
	"github.com/lixenwraith/vi-snake/input"
	"github.com/lixenwraith/vi-snake/particle"
	"github.com/lixenwraith/vi-snake/settings"
)

// CuePlayer plays sound cues, implemented by audio.SoundManager
type CuePlayer interface {
	Play(c audio.Cue)
}

type nopPlayer struct{}

func (nopPlayer) Play(audio.Cue) {}

// Config fixes the playfield and speed curve for the process lifetime
type Config struct {
	Grid  game.Grid
	Speed game.SpeedPolicy
	Seed  uint64
}

// Deps are the collaborators owned by the caller and shared across sessions
type Deps struct {
	Settings  *settings.Store
	HighScore *highscore.Store
	Particles *particle.Engine
	// Sound may be nil for silent play
	Sound CuePlayer
}

// session is the per-game data carried by Playing, Paused and GameOver
type session struct {
	id      uuid.UUID
	model   *game.Model
	speed   int
	started time.Time
}

// GameOverInfo describes how the last session ended
type GameOverInfo struct {
	Collision    game.Collision
	Reason       string
	Score        int
	NewHighScore bool
}

// Machine is the game state machine
// The state tag selects which per-state data is meaningful:
// session in Playing, Paused and GameOver; over in GameOver; cursor in Settings
type Machine struct {
	state core.GameState

	session *session
	over    *GameOverInfo
	cursor  int

	quit       bool
	fullscreen bool

	cfg       Config
	settings  *settings.Store
	highScore *highscore.Store
	particles *particle.Engine
	sound     CuePlayer
	rng       *rand.Rand
	sessions  int
}

// NewMachine creates a machine in Menu
func NewMachine(cfg Config, deps Deps) *Machine {
	sound := deps.Sound
	if sound == nil {
		sound = nopPlayer{}
	}
	return &Machine{
		state:     core.StateMenu,
		cfg:       cfg,
		settings:  deps.Settings,
		highScore: deps.HighScore,
		particles: deps.Particles,
		sound:     sound,
		rng:       rand.New(rand.NewSource(cfg.Seed)),
	}
}

// State returns the active state tag
func (m *Machine) State() core.GameState { return m.state }

// QuitRequested reports whether Quit was dispatched
func (m *Machine) QuitRequested() bool { return m.quit }

// Fullscreen reports the board-only layout toggle
func (m *Machine) Fullscreen() bool { return m.fullscreen }

// Sessions returns how many sessions were started
func (m *Machine) Sessions() int { return m.sessions }

// CanTurn reports whether a direction command would be accepted now
func (m *Machine) CanTurn(d core.Direction) bool {
	return m.state == core.StatePlaying && m.session.model.CanTurn(d)
}

// TickInterval returns the gameplay tick period of the running session, zero outside Playing
func (m *Machine) TickInterval() time.Duration {
	if m.state != core.StatePlaying {
		return 0
	}
	return game.TickInterval(m.session.speed)
}

// Dispatch applies a command to the current state
// Pairs not handled by the current state are ignored
func (m *Machine) Dispatch(cmd input.Command) {
	// Valid in every state
	switch cmd.Kind {
	case input.CmdQuit:
		m.quit = true
		return
	case input.CmdToggleFullscreen:
		m.fullscreen = !m.fullscreen
		return
	}

	switch m.state {
	case core.StateMenu:
		switch cmd.Kind {
		case input.CmdStart:
			m.startSession()
		case input.CmdOpenSettings:
			m.enterSettings()
		}

	case core.StatePlaying:
		switch cmd.Kind {
		case input.CmdPause:
			m.state = core.StatePaused
		case input.CmdTurn:
			m.session.model.SetDirection(cmd.Dir)
		}

	case core.StatePaused:
		switch cmd.Kind {
		case input.CmdResume:
			m.state = core.StatePlaying
		case input.CmdRestart:
			m.startSession()
		case input.CmdReturnToMenu:
			m.enterMenu()
		}

	case core.StateGameOver:
		switch cmd.Kind {
		case input.CmdRestart:
			m.startSession()
		case input.CmdReturnToMenu:
			m.enterMenu()
		}

	case core.StateSettings:
		switch cmd.Kind {
		case input.CmdToggleOption:
			if err := m.settings.Toggle(cmd.Option); err != nil {
				log.Printf("settings: %v", err)
			}
		case input.CmdAdjustSpeed:
			m.settings.AdjustBaseSpeed(cmd.Delta)
		case input.CmdSelectNext:
			m.cursor = (m.cursor + 1) % len(settings.Keys)
		case input.CmdSelectPrev:
			m.cursor = (m.cursor + len(settings.Keys) - 1) % len(settings.Keys)
		case input.CmdActivate:
			m.activateSelected()
		case input.CmdReturnToMenu:
			m.enterMenu()
		}
	}
}

// Tick advances the running session by one step, ignored outside Playing
func (m *Machine) Tick() {
	if m.state != core.StatePlaying {
		return
	}
	s := m.session
	res := s.model.Step()

	if res.Collision != game.CollisionNone {
		m.endSession(res)
		return
	}

	cfg := m.settings.Get()
	if res.Ate {
		if cfg.ParticlesEnabled {
			m.particles.SpawnBurst(res.Head, constants.EatBurstCount, particle.KindEat)
		}
		m.playCue(audio.CueEat)
		s.speed = m.cfg.Speed.Speed(cfg.BaseSpeed, s.model.Score(), cfg.SpeedIncreaseEnabled)
	}

	if cfg.ParticlesEnabled && m.rng.Float64() < constants.SparkleChance {
		if food, ok := s.model.Food(); ok {
			m.particles.SpawnSparkle(food)
		}
	}
}

// startSession resets the model and enters Playing
func (m *Machine) startSession() {
	model, err := game.NewModel(m.cfg.Grid, game.NewRand(m.rng.Uint64()))
	if err != nil {
		log.Printf("session not started: %v", err)
		return
	}
	if m.session != nil && m.state != core.StateGameOver {
		log.Printf("session %s abandoned: score=%d", m.session.id, m.session.model.Score())
	}
	cfg := m.settings.Get()
	m.session = &session{
		id:      uuid.New(),
		model:   model,
		speed:   m.cfg.Speed.Speed(cfg.BaseSpeed, 0, cfg.SpeedIncreaseEnabled),
		started: time.Now(),
	}
	m.over = nil
	m.sessions++
	m.particles.Clear()
	m.state = core.StatePlaying

	log.Printf("session %s started: grid=%dx%d speed=%d", m.session.id, m.cfg.Grid.Width, m.cfg.Grid.Height, m.session.speed)
}

// endSession records the result and enters GameOver
func (m *Machine) endSession(res game.StepResult) {
	s := m.session
	score := s.model.Score()
	newHigh := m.highScore.RecordIfBetter(score)

	m.over = &GameOverInfo{
		Collision:    res.Collision,
		Reason:       res.Collision.Reason(),
		Score:        score,
		NewHighScore: newHigh,
	}

	// Only the crash burst survives into the GameOver screen
	m.particles.Clear()
	if m.settings.Get().ParticlesEnabled {
		at := res.Head
		if !m.cfg.Grid.Contains(at) {
			at = s.model.Head()
		}
		m.particles.SpawnBurst(at, constants.CrashBurstCount, particle.KindCrash)
	}

	m.playCue(audio.CueCrash)
	if newHigh {
		m.playCue(audio.CueHighScore)
	}
	m.state = core.StateGameOver

	log.Printf("session %s ended: score=%d reason=%s new_high=%v duration=%s",
		s.id, score, res.Collision, newHigh, time.Since(s.started).Round(time.Millisecond))
}

func (m *Machine) enterMenu() {
	m.session = nil
	m.over = nil
	m.particles.Clear()
	m.state = core.StateMenu
}

func (m *Machine) enterSettings() {
	m.cursor = 0
	m.state = core.StateSettings
}

// activateSelected toggles a boolean option or steps base speed, wrapping at the top
func (m *Machine) activateSelected() {
	k := settings.Keys[m.cursor]
	if k.IsBool() {
		if err := m.settings.Toggle(k); err != nil {
			log.Printf("settings: %v", err)
		}
		return
	}
	if m.settings.Get().BaseSpeed >= constants.MaxBaseSpeed {
		// SetInt only fails for non-int keys
		_ = m.settings.SetInt(settings.KeyBaseSpeed, constants.MinBaseSpeed)
		return
	}
	m.settings.AdjustBaseSpeed(1)
}

func (m *Machine) playCue(c audio.Cue) {
	if m.settings.Get().SoundEnabled {
		m.sound.Play(c)
	}
}
