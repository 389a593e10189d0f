package input

import (
	"sort"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-snake/core"
)

// Coalesce reduces one frame's commands to at most one per category
// Direction keeps the latest command canTurn accepts, a nil canTurn accepts all
// Other categories keep the latest command, except that Quit outranks any other system command
// Survivors keep their arrival order
func Coalesce(cmds []Command, canTurn func(core.Direction) bool) []Command {
	if len(cmds) == 0 {
		return nil
	}

	type kept struct {
		idx int
		cmd Command
	}
	latest := make(map[Category]kept, 4)

	for i, c := range cmds {
		cat := c.Category()
		switch cat {
		case CategoryNone:
			continue
		case CategoryDirection:
			if canTurn != nil && !canTurn(c.Dir) {
				continue
			}
		case CategorySystem:
			if prev, ok := latest[cat]; ok && prev.cmd.Kind == CmdQuit {
				continue
			}
		}
		latest[cat] = kept{i, c}
	}

	out := make([]kept, 0, len(latest))
	for _, k := range latest {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].idx < out[j].idx })

	result := make([]Command, len(out))
	for i, k := range out {
		result[i] = k.cmd
	}
	return result
}

// Drain translates every queued key event for state without blocking
// Non-key events are passed to other, which may be nil
func Drain(events <-chan tcell.Event, kt *KeyTable, state core.GameState, other func(tcell.Event)) []Command {
	var cmds []Command
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return cmds
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if cmd, ok := kt.Translate(state, ev); ok {
					cmds = append(cmds, cmd)
				}
			default:
				if other != nil {
					other(ev)
				}
			}
		default:
			return cmds
		}
	}
}
