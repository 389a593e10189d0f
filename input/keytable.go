package input

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-snake/core"
	"github.com/lixenwraith/vi-snake/settings"
)

// Bindings maps printable runes and special keys to commands
type Bindings struct {
	Runes map[rune]Command
	Keys  map[tcell.Key]Command
}

func newBindings() Bindings {
	return Bindings{
		Runes: make(map[rune]Command),
		Keys:  make(map[tcell.Key]Command),
	}
}

func (b Bindings) clone() Bindings {
	out := newBindings()
	for r, c := range b.Runes {
		out.Runes[r] = c
	}
	for k, c := range b.Keys {
		out.Keys[k] = c
	}
	return out
}

func (b Bindings) lookup(ev *tcell.EventKey) (Command, bool) {
	if ev.Key() == tcell.KeyRune {
		// Alt-modified runes are terminal shortcuts, never game input
		if ev.Modifiers()&tcell.ModAlt != 0 {
			return Command{}, false
		}
		r := ev.Rune()
		if cmd, ok := b.Runes[r]; ok {
			return cmd, true
		}
		// Caps lock or shift should not break lowercase bindings
		if lr := unicode.ToLower(r); lr != r {
			cmd, ok := b.Runes[lr]
			return cmd, ok
		}
		return Command{}, false
	}
	cmd, ok := b.Keys[ev.Key()]
	return cmd, ok
}

// KeyTable holds per-state bindings plus global ones consulted after the state's
type KeyTable struct {
	Global Bindings
	States map[core.GameState]Bindings
}

// Translate maps a key event to a command for the current state
// A state binding to CmdNone unbinds the key without consulting the global bindings
func (kt *KeyTable) Translate(state core.GameState, ev *tcell.EventKey) (Command, bool) {
	if b, ok := kt.States[state]; ok {
		if cmd, ok := b.lookup(ev); ok {
			return cmd, cmd.Kind != CmdNone
		}
	}
	cmd, ok := kt.Global.lookup(ev)
	return cmd, ok && cmd.Kind != CmdNone
}

// Clone returns a deep copy
func (kt *KeyTable) Clone() *KeyTable {
	out := &KeyTable{
		Global: kt.Global.clone(),
		States: make(map[core.GameState]Bindings, len(kt.States)),
	}
	for s, b := range kt.States {
		out.States[s] = b.clone()
	}
	return out
}

// DefaultKeyTable returns the stock controls
// Arrows, WASD and vi hjkl steer; Ctrl+C and Ctrl+Q quit from anywhere
func DefaultKeyTable() *KeyTable {
	kt := &KeyTable{
		Global: newBindings(),
		States: make(map[core.GameState]Bindings, len(core.GameStates)),
	}
	for _, s := range core.GameStates {
		kt.States[s] = newBindings()
	}

	kt.Global.Keys[tcell.KeyCtrlC] = Simple(CmdQuit)
	kt.Global.Keys[tcell.KeyCtrlQ] = Simple(CmdQuit)
	kt.Global.Keys[tcell.KeyF11] = Simple(CmdToggleFullscreen)
	kt.Global.Runes['f'] = Simple(CmdToggleFullscreen)

	menu := kt.States[core.StateMenu]
	menu.Keys[tcell.KeyEnter] = Simple(CmdStart)
	menu.Runes[' '] = Simple(CmdStart)
	menu.Runes['s'] = Simple(CmdOpenSettings)
	menu.Keys[tcell.KeyEscape] = Simple(CmdQuit)
	menu.Runes['q'] = Simple(CmdQuit)

	playing := kt.States[core.StatePlaying]
	for k, d := range map[tcell.Key]core.Direction{
		tcell.KeyUp: core.DirUp, tcell.KeyDown: core.DirDown,
		tcell.KeyLeft: core.DirLeft, tcell.KeyRight: core.DirRight,
	} {
		playing.Keys[k] = Turn(d)
	}
	for r, d := range map[rune]core.Direction{
		'w': core.DirUp, 's': core.DirDown, 'a': core.DirLeft, 'd': core.DirRight,
		'k': core.DirUp, 'j': core.DirDown, 'h': core.DirLeft, 'l': core.DirRight,
	} {
		playing.Runes[r] = Turn(d)
	}
	playing.Keys[tcell.KeyEscape] = Simple(CmdPause)
	playing.Runes['p'] = Simple(CmdPause)

	paused := kt.States[core.StatePaused]
	paused.Runes[' '] = Simple(CmdResume)
	paused.Runes['p'] = Simple(CmdResume)
	paused.Keys[tcell.KeyEscape] = Simple(CmdResume)
	paused.Runes['r'] = Simple(CmdRestart)
	paused.Runes['m'] = Simple(CmdReturnToMenu)

	over := kt.States[core.StateGameOver]
	over.Runes['r'] = Simple(CmdRestart)
	over.Runes[' '] = Simple(CmdRestart)
	over.Keys[tcell.KeyEnter] = Simple(CmdRestart)
	over.Runes['m'] = Simple(CmdReturnToMenu)
	over.Keys[tcell.KeyEscape] = Simple(CmdQuit)
	over.Runes['q'] = Simple(CmdQuit)

	set := kt.States[core.StateSettings]
	set.Keys[tcell.KeyUp] = Simple(CmdSelectPrev)
	set.Runes['k'] = Simple(CmdSelectPrev)
	set.Runes['w'] = Simple(CmdSelectPrev)
	set.Keys[tcell.KeyDown] = Simple(CmdSelectNext)
	set.Runes['j'] = Simple(CmdSelectNext)
	set.Runes['s'] = Simple(CmdSelectNext)
	set.Keys[tcell.KeyEnter] = Simple(CmdActivate)
	set.Runes[' '] = Simple(CmdActivate)
	set.Keys[tcell.KeyLeft] = Adjust(-1)
	set.Runes['-'] = Adjust(-1)
	set.Runes['h'] = Adjust(-1)
	set.Keys[tcell.KeyRight] = Adjust(1)
	set.Runes['+'] = Adjust(1)
	set.Runes['='] = Adjust(1)
	set.Runes['l'] = Adjust(1)
	set.Runes['g'] = Toggle(settings.KeyGridVisible)
	set.Runes['p'] = Toggle(settings.KeyParticlesEnabled)
	set.Runes['i'] = Toggle(settings.KeySpeedIncreaseEnabled)
	set.Runes['o'] = Toggle(settings.KeySoundEnabled)
	set.Keys[tcell.KeyEscape] = Simple(CmdReturnToMenu)
	set.Runes['m'] = Simple(CmdReturnToMenu)

	return kt
}
