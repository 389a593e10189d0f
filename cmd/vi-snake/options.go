package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/lixenwraith/vi-snake/constants"
	"github.com/lixenwraith/vi-snake/game"
	"github.com/lixenwraith/vi-snake/input"
)

// options are the process-level knobs, user preferences live in settings.toml
type options struct {
	dataDir    string
	width      int
	height     int
	fps        int
	seed       uint64
	tierPoints int
	tierStep   int
	maxSpeed   int
	keymap     string
	debug      bool
}

// parseOptions parses args, help returns flag.ErrHelp
func parseOptions(args []string, output io.Writer) (options, error) {
	var o options
	policy := game.DefaultSpeedPolicy()

	fs := flag.NewFlagSet("vi-snake", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&o.dataDir, "data", defaultDataDir(), "directory for settings and high score")
	fs.IntVar(&o.width, "width", constants.DefaultGridWidth, "board width in cells")
	fs.IntVar(&o.height, "height", constants.DefaultGridHeight, "board height in cells")
	fs.IntVar(&o.fps, "fps", constants.DefaultFPS, "render frames per second")
	fs.Uint64Var(&o.seed, "seed", 0, "random seed, 0 picks one from the clock")
	fs.IntVar(&o.tierPoints, "tier-points", policy.PointsPerTier, "points per speed tier")
	fs.IntVar(&o.tierStep, "tier-step", policy.Increment, "speed added per tier")
	fs.IntVar(&o.maxSpeed, "max-speed", policy.Max, "speed cap in steps per second")
	fs.StringVar(&o.keymap, "keymap", "", "TOML keymap overriding the default bindings")
	fs.BoolVar(&o.debug, "debug", false, "log to logs/vi-snake.log and show loop counters")

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() > 0 {
		return o, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}

	var errs []error
	if o.fps < 1 || o.fps > 1000 {
		errs = append(errs, fmt.Errorf("-fps %d out of range 1..1000", o.fps))
	}
	if o.tierPoints < 1 {
		errs = append(errs, fmt.Errorf("-tier-points must be positive, got %d", o.tierPoints))
	}
	if o.tierStep < 0 {
		errs = append(errs, fmt.Errorf("-tier-step must not be negative, got %d", o.tierStep))
	}
	if o.maxSpeed < 1 {
		errs = append(errs, fmt.Errorf("-max-speed must be positive, got %d", o.maxSpeed))
	}
	if _, err := game.NewGrid(o.width, o.height); err != nil {
		errs = append(errs, err)
	}
	return o, errors.Join(errs...)
}

func (o options) speedPolicy() game.SpeedPolicy {
	return game.SpeedPolicy{PointsPerTier: o.tierPoints, Increment: o.tierStep, Max: o.maxSpeed}
}

func (o options) frameInterval() time.Duration {
	return time.Second / time.Duration(o.fps)
}

// defaultDataDir prefers the user config dir and falls back to the working directory
func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "vi-snake")
	}
	return ".vi-snake"
}

// loadKeyTable merges the keymap file at path over the defaults
func loadKeyTable(path string) (*input.KeyTable, error) {
	base := input.DefaultKeyTable()
	if path == "" {
		return base, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("keymap: %w", err)
	}
	override, err := input.LoadKeyConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return input.MergeKeyTable(base, override), nil
}
