// Package input normalises terminal key events into per-state game commands
package input

import (
	"github.com/lixenwraith/vi-snake/core"
	"github.com/lixenwraith/vi-snake/settings"
)

// Kind is a semantic command
type Kind uint8

const (
	CmdNone Kind = iota
	CmdStart
	CmdOpenSettings
	CmdQuit
	CmdPause
	CmdResume
	CmdRestart
	CmdReturnToMenu
	CmdTurn
	CmdToggleOption
	CmdAdjustSpeed
	CmdSelectNext
	CmdSelectPrev
	CmdActivate
	CmdToggleFullscreen
)

func (k Kind) String() string {
	switch k {
	case CmdNone:
		return "None"
	case CmdStart:
		return "Start"
	case CmdOpenSettings:
		return "OpenSettings"
	case CmdQuit:
		return "Quit"
	case CmdPause:
		return "Pause"
	case CmdResume:
		return "Resume"
	case CmdRestart:
		return "Restart"
	case CmdReturnToMenu:
		return "ReturnToMenu"
	case CmdTurn:
		return "Turn"
	case CmdToggleOption:
		return "ToggleOption"
	case CmdAdjustSpeed:
		return "AdjustSpeed"
	case CmdSelectNext:
		return "SelectNext"
	case CmdSelectPrev:
		return "SelectPrev"
	case CmdActivate:
		return "Activate"
	case CmdToggleFullscreen:
		return "ToggleFullscreen"
	default:
		return "Unknown"
	}
}

// Command is one semantic input
// Dir is set for CmdTurn, Option for CmdToggleOption, Delta for CmdAdjustSpeed
type Command struct {
	Kind   Kind
	Dir    core.Direction
	Option settings.Key
	Delta  int
}

// Category groups commands that coalesce together within a frame
type Category uint8

const (
	CategoryNone Category = iota
	CategorySystem
	CategoryFlow
	CategorySettings
	CategoryDirection
)

// Category returns the coalescing group for the command
func (c Command) Category() Category {
	switch c.Kind {
	case CmdQuit, CmdToggleFullscreen:
		return CategorySystem
	case CmdStart, CmdOpenSettings, CmdPause, CmdResume, CmdRestart, CmdReturnToMenu:
		return CategoryFlow
	case CmdToggleOption, CmdAdjustSpeed, CmdSelectNext, CmdSelectPrev, CmdActivate:
		return CategorySettings
	case CmdTurn:
		return CategoryDirection
	default:
		return CategoryNone
	}
}

// Turn builds a direction command
func Turn(d core.Direction) Command {
	return Command{Kind: CmdTurn, Dir: d}
}

// Toggle builds a settings toggle command
func Toggle(k settings.Key) Command {
	return Command{Kind: CmdToggleOption, Option: k}
}

// Adjust builds a base speed adjustment command
func Adjust(delta int) Command {
	return Command{Kind: CmdAdjustSpeed, Delta: delta}
}

// Simple builds a command with no payload
func Simple(k Kind) Command {
	return Command{Kind: k}
}
