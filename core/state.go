package core

// GameState tags the active screen, exactly one is current
type GameState uint8

const (
	StateMenu GameState = iota
	StatePlaying
	StatePaused
	StateGameOver
	StateSettings
)

// GameStates lists every state, used by exhaustive tests and keymap sections
var GameStates = []GameState{StateMenu, StatePlaying, StatePaused, StateGameOver, StateSettings}

func (s GameState) String() string {
	switch s {
	case StateMenu:
		return "Menu"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateGameOver:
		return "GameOver"
	case StateSettings:
		return "Settings"
	default:
		return "Unknown"
	}
}
