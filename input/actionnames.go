package input

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lixenwraith/vi-snake/core"
	"github.com/lixenwraith/vi-snake/settings"
)

// actionRegistry maps keymap action names to commands
// "none" unbinds a default key
var actionRegistry = map[string]Command{
	"none": {},

	"quit":       Simple(CmdQuit),
	"fullscreen": Simple(CmdToggleFullscreen),

	"start":    Simple(CmdStart),
	"settings": Simple(CmdOpenSettings),
	"pause":    Simple(CmdPause),
	"resume":   Simple(CmdResume),
	"restart":  Simple(CmdRestart),
	"menu":     Simple(CmdReturnToMenu),

	"up":    Turn(core.DirUp),
	"down":  Turn(core.DirDown),
	"left":  Turn(core.DirLeft),
	"right": Turn(core.DirRight),

	"next":       Simple(CmdSelectNext),
	"prev":       Simple(CmdSelectPrev),
	"activate":   Simple(CmdActivate),
	"speed_up":   Adjust(1),
	"speed_down": Adjust(-1),

	"toggle_grid":           Toggle(settings.KeyGridVisible),
	"toggle_particles":      Toggle(settings.KeyParticlesEnabled),
	"toggle_speed_increase": Toggle(settings.KeySpeedIncreaseEnabled),
	"toggle_sound":          Toggle(settings.KeySoundEnabled),
}

// ActionCommand resolves an action name
func ActionCommand(name string) (Command, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	cmd, ok := actionRegistry[name]
	if !ok {
		return Command{}, fmt.Errorf("unknown action: %q (valid: %s)", name, strings.Join(ActionNames(), ", "))
	}
	return cmd, nil
}

// ActionNames returns every valid action name sorted
func ActionNames() []string {
	names := make([]string, 0, len(actionRegistry))
	for n := range actionRegistry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
