package input

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-snake/core"
	"github.com/lixenwraith/vi-snake/toml"
)

// Rune aliases for keys that can't be written as a single character
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
}

const globalSection = "global"

var (
	keyNamesOnce sync.Once
	keyByName    map[string]tcell.Key
)

// KeyByName resolves a tcell key name such as "enter", "f11" or "ctrl-q", case-insensitive
func KeyByName(name string) (tcell.Key, bool) {
	keyNamesOnce.Do(func() {
		keyByName = make(map[string]tcell.Key, len(tcell.KeyNames))
		for k, n := range tcell.KeyNames {
			keyByName[strings.ToLower(n)] = k
		}
		// Common spellings tcell does not use
		keyByName["escape"] = tcell.KeyEscape
		keyByName["return"] = tcell.KeyEnter
	})
	k, ok := keyByName[strings.ToLower(strings.TrimSpace(name))]
	return k, ok
}

// sectionName returns the keymap section for a state
func sectionName(s core.GameState) string {
	return strings.ToLower(s.String())
}

// LoadKeyConfig parses TOML keymap data into a sparse override KeyTable
// Sections are [global] and one per state: [menu] [playing] [paused] [gameover] [settings]
// Returns error on unknown sections, unknown action names, invalid key names, or parse failure
func LoadKeyConfig(data []byte) (*KeyTable, error) {
	raw, err := toml.NewParser(data).Parse()
	if err != nil {
		return nil, fmt.Errorf("keymap parse: %w", err)
	}

	sections := map[string]bool{globalSection: true}
	for _, s := range core.GameStates {
		sections[sectionName(s)] = true
	}
	kt := &KeyTable{States: make(map[core.GameState]Bindings)}

	for name, val := range raw {
		if !sections[name] {
			return nil, fmt.Errorf("keymap: unknown section [%s]", name)
		}
		table, ok := val.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("keymap: %q must be a [section], got %T", name, val)
		}
		b, err := parseSection(name, table)
		if err != nil {
			return nil, err
		}
		if name == globalSection {
			kt.Global = b
			continue
		}
		for _, s := range core.GameStates {
			if sectionName(s) == name {
				kt.States[s] = b
			}
		}
	}
	return kt, nil
}

// parseSection parses key name -> action name bindings
func parseSection(section string, data map[string]any) (Bindings, error) {
	b := newBindings()
	for keyStr, val := range data {
		actionName, ok := val.(string)
		if !ok {
			return Bindings{}, fmt.Errorf("[%s] key %q: value must be string, got %T", section, keyStr, val)
		}
		cmd, err := ActionCommand(actionName)
		if err != nil {
			return Bindings{}, fmt.Errorf("[%s] key %q: %w", section, keyStr, err)
		}

		if r, ok := resolveRune(keyStr); ok {
			b.Runes[r] = cmd
			continue
		}
		k, ok := KeyByName(keyStr)
		if !ok {
			return Bindings{}, fmt.Errorf("[%s] unknown key name: %q", section, keyStr)
		}
		b.Keys[k] = cmd
	}
	return b, nil
}

// resolveRune converts a single character or alias to a rune
func resolveRune(s string) (rune, bool) {
	if r, ok := runeAliases[strings.ToLower(s)]; ok {
		return r, true
	}
	runes := []rune(s)
	if len(runes) == 1 {
		return runes[0], true
	}
	return 0, false
}

// MergeKeyTable returns a new KeyTable with base values overridden by override entries
// A global entry bound to "none" deletes the key; a state entry bound to "none" stays
// as an explicit unbinding so the key does not fall through to the global bindings
func MergeKeyTable(base, override *KeyTable) *KeyTable {
	result := base.Clone()
	if override == nil {
		return result
	}

	mergeBindings(result.Global, override.Global, false)
	for s, ob := range override.States {
		rb, ok := result.States[s]
		if !ok {
			rb = newBindings()
			result.States[s] = rb
		}
		mergeBindings(rb, ob, true)
	}
	return result
}

func mergeBindings(base, override Bindings, keepNone bool) {
	for r, c := range override.Runes {
		if c.Kind == CmdNone && !keepNone {
			delete(base.Runes, r)
		} else {
			base.Runes[r] = c
		}
	}
	for k, c := range override.Keys {
		if c.Kind == CmdNone && !keepNone {
			delete(base.Keys, k)
		} else {
			base.Keys[k] = c
		}
	}
}
