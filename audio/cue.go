package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// Cue is a short sound tied to a game event
type Cue uint8

const (
	CueEat Cue = iota
	CueCrash
	CueHighScore
)

func (c Cue) String() string {
	switch c {
	case CueEat:
		return "eat"
	case CueCrash:
		return "crash"
	case CueHighScore:
		return "highscore"
	default:
		return "unknown"
	}
}

// note is one tone segment of a cue
type note struct {
	freq float64
	dur  time.Duration
}

// cueNotes returns the tone sequence for a cue
func cueNotes(c Cue) []note {
	switch c {
	case CueEat:
		return []note{{880, 50 * time.Millisecond}, {1320, 40 * time.Millisecond}}
	case CueCrash:
		return []note{{220, 120 * time.Millisecond}, {165, 120 * time.Millisecond}, {110, 200 * time.Millisecond}}
	case CueHighScore:
		return []note{{660, 80 * time.Millisecond}, {880, 80 * time.Millisecond}, {1320, 160 * time.Millisecond}}
	default:
		return nil
	}
}

// cueDuration returns the total length of a cue
func cueDuration(c Cue) time.Duration {
	var d time.Duration
	for _, n := range cueNotes(c) {
		d += n.dur
	}
	return d
}

// buildCue renders a cue as a finite streamer at the given volume
func buildCue(sr beep.SampleRate, c Cue, volume float64) (beep.Streamer, error) {
	notes := cueNotes(c)
	if len(notes) == 0 {
		return nil, fmt.Errorf("audio: no notes for cue %s", c)
	}

	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		tone, err := generators.SineTone(sr, n.freq)
		if err != nil {
			return nil, fmt.Errorf("audio: cue %s tone %.0fHz: %w", c, n.freq, err)
		}
		parts = append(parts, beep.Take(sr.N(n.dur), tone))
	}
	return newVolume(beep.Seq(parts...), volume), nil
}

// newVolume scales by a linear factor, math.Log2(0) is -Inf so zero is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
