package render

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/vi-snake/core"
	"github.com/lixenwraith/vi-snake/settings"
)

// footerHints are the key reminders under the board
var footerHints = map[core.GameState]string{
	core.StateMenu:     "enter start  s settings  q quit",
	core.StatePlaying:  "arrows/wasd/hjkl steer  p pause  f fullscreen",
	core.StatePaused:   "space resume  r restart  m menu",
	core.StateGameOver: "r restart  m menu  q quit",
	core.StateSettings: "j/k select  enter change  h/l speed  esc back",
}

// hudLayer draws the score row and the footer, framed layout only
type hudLayer struct{}

func (hudLayer) Render(ctx RenderContext, buf *RenderBuffer) {
	l := ctx.Layout
	if !l.Framed {
		return
	}
	f := ctx.Frame
	left := l.BoardX - 1
	width := l.BoardWidth + 2
	row := l.HUDRow()

	switch f.State {
	case core.StatePlaying, core.StatePaused, core.StateGameOver:
		buf.Text(left, row, fmt.Sprintf("Score %d", f.Score), RgbText, true)
		high := fmt.Sprintf("High %d", max(f.HighScore, f.Score))
		buf.TextCentered(left, row, width, high, RgbTextDim, false)
		speed := fmt.Sprintf("Speed %d", f.Speed)
		buf.Text(left+width-runewidth.StringWidth(speed), row, speed, RgbTextDim, false)
	default:
		buf.Text(left, row, "vi-snake", RgbTitle, true)
		high := fmt.Sprintf("High %d", f.HighScore)
		buf.Text(left+width-runewidth.StringWidth(high), row, high, RgbTextDim, false)
	}

	// Hints may be wider than the board
	buf.TextCentered(0, l.FooterRow(), l.ScreenWidth, footerHints[f.State], RgbTextDim, false)
}

// line is one overlay row
type line struct {
	text string
	fg   RGB
	bold bool
}

// overlayLayer draws the per-state panel over the board
type overlayLayer struct{}

func (overlayLayer) Render(ctx RenderContext, buf *RenderBuffer) {
	var lines []line
	f := ctx.Frame

	switch f.State {
	case core.StatePlaying:
		return
	case core.StateMenu:
		lines = []line{
			{"V I - S N A K E", RgbTitle, true},
			{"", RgbText, false},
			{fmt.Sprintf("High score %d", f.HighScore), RgbText, false},
			{"", RgbText, false},
			{"enter  play", RgbTextDim, false},
			{"s  settings", RgbTextDim, false},
			{"q  quit", RgbTextDim, false},
		}
	case core.StatePaused:
		lines = []line{
			{"PAUSED", RgbWarning, true},
			{"", RgbText, false},
			{"space  resume", RgbTextDim, false},
			{"r  restart", RgbTextDim, false},
			{"m  menu", RgbTextDim, false},
		}
	case core.StateGameOver:
		lines = []line{{"GAME OVER", RgbParticleCrash, true}}
		if f.GameOver != nil {
			lines = append(lines,
				line{f.GameOver.Reason, RgbText, false},
				line{"", RgbText, false},
				line{fmt.Sprintf("Score %d", f.GameOver.Score), RgbText, true},
			)
			if f.GameOver.NewHighScore {
				lines = append(lines, line{"New high score!", RgbHighlight, true})
			} else {
				lines = append(lines, line{fmt.Sprintf("High score %d", f.HighScore), RgbTextDim, false})
			}
		}
		lines = append(lines,
			line{"", RgbText, false},
			line{"r restart  m menu", RgbTextDim, false},
		)
	case core.StateSettings:
		lines = settingsLines(f.Settings, f.SettingsCursor)
	}

	drawPanel(ctx.Layout, buf, lines)
}

// settingsLines renders one row per option with the cursor marker
func settingsLines(s settings.Settings, cursor int) []line {
	lines := []line{{"SETTINGS", RgbTitle, true}, {"", RgbText, false}}
	for i, k := range settings.Keys {
		var value string
		if k.IsBool() {
			v, _ := s.Bool(k)
			value = "off"
			if v {
				value = "on"
			}
		} else {
			value = fmt.Sprintf("< %2d >", s.BaseSpeed)
		}

		label := runewidth.FillRight(k.Label(), 16)
		text := fmt.Sprintf("  %s %6s", label, value)
		l := line{text, RgbText, false}
		if i == cursor {
			text = "> " + text[2:]
			l = line{text, RgbHighlight, true}
		}
		lines = append(lines, l)
	}
	return lines
}

// drawPanel centers a padded box of lines over the board
func drawPanel(l Layout, buf *RenderBuffer, lines []line) {
	if len(lines) == 0 {
		return
	}
	w := 0
	for _, ln := range lines {
		w = max(w, runewidth.StringWidth(ln.text))
	}
	w += 4
	h := len(lines) + 2

	x := l.BoardX + (l.BoardWidth-w)/2
	y := l.BoardY + (l.BoardHeight-h)/2
	buf.FillRect(x, y, w, h, RgbPanel)
	for i, ln := range lines {
		buf.TextCentered(x, y+1+i, w, ln.text, ln.fg, ln.bold)
	}
}

// debugLayer lists loop counters and the session id in the top-left corner
type debugLayer struct{}

func (debugLayer) Render(ctx RenderContext, buf *RenderBuffer) {
	f := ctx.Frame
	if len(f.Debug) == 0 {
		return
	}
	for i, e := range f.Debug {
		buf.Text(0, i, fmt.Sprintf("%s %s", e.Key, e.Value), RgbTextDim, false)
	}
	if f.SessionID != "" {
		buf.Text(0, len(f.Debug), "session "+f.SessionID, RgbTextDim, false)
	}
}

// drawTooSmall replaces the frame when the board does not fit
func drawTooSmall(l Layout, buf *RenderBuffer) {
	y := l.ScreenHeight/2 - 1
	buf.TextCentered(0, y, l.ScreenWidth, "Terminal too small", RgbWarning, true)
	need := fmt.Sprintf("need %dx%d, have %dx%d", l.NeedWidth, l.NeedHeight, l.ScreenWidth, l.ScreenHeight)
	buf.TextCentered(0, y+1, l.ScreenWidth, need, RgbTextDim, false)
}
