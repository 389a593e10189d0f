package input

import (
	"reflect"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-snake/core"
	"github.com/lixenwraith/vi-snake/settings"
)

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func specialKey(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

// TestDefaultTranslation verifies the stock controls per state
func TestDefaultTranslation(t *testing.T) {
	kt := DefaultKeyTable()
	cases := []struct {
		state core.GameState
		ev    *tcell.EventKey
		want  Command
	}{
		{core.StateMenu, runeKey(' '), Simple(CmdStart)},
		{core.StateMenu, specialKey(tcell.KeyEnter), Simple(CmdStart)},
		{core.StateMenu, runeKey('s'), Simple(CmdOpenSettings)},
		{core.StateMenu, runeKey('q'), Simple(CmdQuit)},
		{core.StateMenu, specialKey(tcell.KeyEscape), Simple(CmdQuit)},

		{core.StatePlaying, specialKey(tcell.KeyUp), Turn(core.DirUp)},
		{core.StatePlaying, runeKey('a'), Turn(core.DirLeft)},
		{core.StatePlaying, runeKey('D'), Turn(core.DirRight)},
		{core.StatePlaying, runeKey('j'), Turn(core.DirDown)},
		{core.StatePlaying, specialKey(tcell.KeyEscape), Simple(CmdPause)},

		{core.StatePaused, runeKey(' '), Simple(CmdResume)},
		{core.StatePaused, specialKey(tcell.KeyEscape), Simple(CmdResume)},
		{core.StatePaused, runeKey('r'), Simple(CmdRestart)},
		{core.StatePaused, runeKey('m'), Simple(CmdReturnToMenu)},

		{core.StateGameOver, runeKey('r'), Simple(CmdRestart)},
		{core.StateGameOver, runeKey(' '), Simple(CmdRestart)},
		{core.StateGameOver, runeKey('m'), Simple(CmdReturnToMenu)},
		{core.StateGameOver, runeKey('q'), Simple(CmdQuit)},

		{core.StateSettings, specialKey(tcell.KeyDown), Simple(CmdSelectNext)},
		{core.StateSettings, specialKey(tcell.KeyUp), Simple(CmdSelectPrev)},
		{core.StateSettings, runeKey(' '), Simple(CmdActivate)},
		{core.StateSettings, specialKey(tcell.KeyRight), Adjust(1)},
		{core.StateSettings, runeKey('-'), Adjust(-1)},
		{core.StateSettings, runeKey('g'), Toggle(settings.KeyGridVisible)},
		{core.StateSettings, runeKey('o'), Toggle(settings.KeySoundEnabled)},
		{core.StateSettings, specialKey(tcell.KeyEscape), Simple(CmdReturnToMenu)},
	}
	for _, tc := range cases {
		got, ok := kt.Translate(tc.state, tc.ev)
		if !ok || got != tc.want {
			t.Errorf("%s %s: got %+v (%v), want %+v", tc.state, tc.ev.Name(), got, ok, tc.want)
		}
	}
}

// TestGlobalQuit verifies Ctrl+C and Ctrl+Q quit from every state
func TestGlobalQuit(t *testing.T) {
	kt := DefaultKeyTable()
	for _, s := range core.GameStates {
		for _, k := range []tcell.Key{tcell.KeyCtrlC, tcell.KeyCtrlQ} {
			got, ok := kt.Translate(s, specialKey(k))
			if !ok || got.Kind != CmdQuit {
				t.Errorf("%s key %d: got %+v", s, k, got)
			}
		}
		if got, _ := kt.Translate(s, specialKey(tcell.KeyF11)); got.Kind != CmdToggleFullscreen {
			t.Errorf("%s F11: got %+v", s, got)
		}
	}
}

// TestUnboundIgnored verifies keys irrelevant to a state produce nothing
func TestUnboundIgnored(t *testing.T) {
	kt := DefaultKeyTable()
	if _, ok := kt.Translate(core.StatePlaying, runeKey('z')); ok {
		t.Error("z should be unbound while playing")
	}
	if _, ok := kt.Translate(core.StateMenu, specialKey(tcell.KeyUp)); ok {
		t.Error("arrows should be unbound in menu")
	}
	alt := tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModAlt)
	if _, ok := kt.Translate(core.StatePlaying, alt); ok {
		t.Error("alt-modified runes should be ignored")
	}
}

// TestLoadKeyConfig verifies overrides replace, add and unbind keys
func TestLoadKeyConfig(t *testing.T) {
	data := []byte(`
[playing]
i = "up"
k = "down"
w = "none"
enter = "pause"

[menu]
space = "settings"

[global]
"ctrl-x" = "quit"
`)
	override, err := LoadKeyConfig(data)
	if err != nil {
		t.Fatalf("LoadKeyConfig failed: %v", err)
	}
	kt := MergeKeyTable(DefaultKeyTable(), override)

	if got, _ := kt.Translate(core.StatePlaying, runeKey('i')); got != Turn(core.DirUp) {
		t.Errorf("i = %+v, want up", got)
	}
	if got, _ := kt.Translate(core.StatePlaying, runeKey('k')); got != Turn(core.DirDown) {
		t.Errorf("k = %+v, want down", got)
	}
	if _, ok := kt.Translate(core.StatePlaying, runeKey('w')); ok {
		t.Error("w should be unbound")
	}
	if got, _ := kt.Translate(core.StatePlaying, specialKey(tcell.KeyEnter)); got.Kind != CmdPause {
		t.Errorf("enter = %+v, want pause", got)
	}
	if got, _ := kt.Translate(core.StateMenu, runeKey(' ')); got.Kind != CmdOpenSettings {
		t.Errorf("space = %+v, want settings", got)
	}
	if got, _ := kt.Translate(core.StateSettings, specialKey(tcell.KeyCtrlX)); got.Kind != CmdQuit {
		t.Errorf("ctrl-x = %+v, want quit", got)
	}

	// Defaults untouched
	if got, _ := DefaultKeyTable().Translate(core.StatePlaying, runeKey('w')); got != Turn(core.DirUp) {
		t.Error("merge mutated the base table")
	}
}

// TestLoadKeyConfigStateUnbind verifies "none" in a state section hides the global binding there only
func TestLoadKeyConfigStateUnbind(t *testing.T) {
	override, err := LoadKeyConfig([]byte("[settings]\nf = \"none\"\nf11 = \"none\"\n"))
	if err != nil {
		t.Fatalf("LoadKeyConfig failed: %v", err)
	}
	kt := MergeKeyTable(DefaultKeyTable(), override)

	if cmd, ok := kt.Translate(core.StateSettings, runeKey('f')); ok {
		t.Errorf("f in settings = %+v, want unbound", cmd)
	}
	if cmd, ok := kt.Translate(core.StateSettings, specialKey(tcell.KeyF11)); ok {
		t.Errorf("f11 in settings = %+v, want unbound", cmd)
	}
	// Shifted rune follows the lowercase unbinding
	if _, ok := kt.Translate(core.StateSettings, runeKey('F')); ok {
		t.Error("F in settings should be unbound")
	}
	if got, ok := kt.Translate(core.StatePlaying, runeKey('f')); !ok || got.Kind != CmdToggleFullscreen {
		t.Errorf("f in playing = %+v, %v, want fullscreen", got, ok)
	}
	if got, ok := kt.Translate(core.StateSettings, specialKey(tcell.KeyCtrlC)); !ok || got.Kind != CmdQuit {
		t.Errorf("ctrl-c in settings = %+v, %v, want quit", got, ok)
	}
}

// TestLoadKeyConfigErrors verifies bad keymaps are rejected with context
func TestLoadKeyConfigErrors(t *testing.T) {
	cases := map[string]string{
		"unknown action":  "[menu]\nx = \"fly\"\n",
		"unknown key":     "[menu]\nhyperdrive = \"start\"\n",
		"unknown section": "[lobby]\nx = \"start\"\n",
		"non-string":      "[menu]\nx = 1\n",
		"top-level key":   "x = \"start\"\n",
		"parse error":     "[menu\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadKeyConfig([]byte(doc)); err == nil {
				t.Errorf("expected error for %q", doc)
			}
		})
	}
}

// TestKeyByName verifies tcell names resolve case-insensitively
func TestKeyByName(t *testing.T) {
	for name, want := range map[string]tcell.Key{
		"Enter":  tcell.KeyEnter,
		"esc":    tcell.KeyEscape,
		"escape": tcell.KeyEscape,
		"UP":     tcell.KeyUp,
		"f11":    tcell.KeyF11,
		"Ctrl-Q": tcell.KeyCtrlQ,
	} {
		if got, ok := KeyByName(name); !ok || got != want {
			t.Errorf("KeyByName(%q) = %v, %v", name, got, ok)
		}
	}
}

// TestActionNames verifies every registered name resolves and unknown names list the valid ones
func TestActionNames(t *testing.T) {
	names := ActionNames()
	if len(names) == 0 {
		t.Fatal("no actions registered")
	}
	for _, n := range names {
		if _, err := ActionCommand(strings.ToUpper(n)); err != nil {
			t.Errorf("ActionCommand(%q) failed: %v", n, err)
		}
	}

	_, err := LoadKeyConfig([]byte("[playing]\nx = \"jump\"\n"))
	if err == nil {
		t.Fatal("expected error for unknown action")
	}
	msg := err.Error()
	for _, want := range []string{"[playing]", `"jump"`, "pause", "toggle_sound"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q does not mention %s", msg, want)
		}
	}
}

// TestCoalesce verifies one command per category with latest valid direction
func TestCoalesce(t *testing.T) {
	// Heading up: down is invalid
	canTurn := func(d core.Direction) bool { return d != core.DirDown }

	cmds := []Command{
		Turn(core.DirLeft),
		Simple(CmdPause),
		Turn(core.DirRight),
		Turn(core.DirDown),
		Simple(CmdToggleFullscreen),
		Simple(CmdResume),
	}
	got := Coalesce(cmds, canTurn)
	want := []Command{
		Turn(core.DirRight),
		Simple(CmdToggleFullscreen),
		Simple(CmdResume),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Coalesce() = %+v, want %+v", got, want)
	}
}

// TestCoalesceQuitWins verifies a later system command cannot displace Quit
func TestCoalesceQuitWins(t *testing.T) {
	got := Coalesce([]Command{Simple(CmdQuit), Simple(CmdToggleFullscreen)}, nil)
	if len(got) != 1 || got[0].Kind != CmdQuit {
		t.Errorf("Coalesce() = %+v, want [Quit]", got)
	}
}

// TestCoalesceEmpty verifies nothing in gives nothing out and invalid-only directions vanish
func TestCoalesceEmpty(t *testing.T) {
	if got := Coalesce(nil, nil); len(got) != 0 {
		t.Errorf("Coalesce(nil) = %+v", got)
	}
	never := func(core.Direction) bool { return false }
	if got := Coalesce([]Command{Turn(core.DirUp)}, never); len(got) != 0 {
		t.Errorf("invalid direction kept: %+v", got)
	}
}

// TestDrain verifies queued key events are translated without blocking and others are forwarded
func TestDrain(t *testing.T) {
	events := make(chan tcell.Event, 8)
	events <- runeKey('w')
	events <- tcell.NewEventResize(80, 24)
	events <- runeKey('z')
	events <- specialKey(tcell.KeyEscape)

	var resized int
	cmds := Drain(events, DefaultKeyTable(), core.StatePlaying, func(ev tcell.Event) {
		if _, ok := ev.(*tcell.EventResize); ok {
			resized++
		}
	})

	want := []Command{Turn(core.DirUp), Simple(CmdPause)}
	if !reflect.DeepEqual(cmds, want) {
		t.Errorf("Drain() = %+v, want %+v", cmds, want)
	}
	if resized != 1 {
		t.Errorf("resize forwarded %d times, want 1", resized)
	}
	if len(events) != 0 {
		t.Errorf("%d events left in channel", len(events))
	}
}
