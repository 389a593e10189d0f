package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-snake/audio"
	"github.com/lixenwraith/vi-snake/constants"
	"github.com/lixenwraith/vi-snake/core"
	"github.com/lixenwraith/vi-snake/engine"
	"github.com/lixenwraith/vi-snake/game"
	"github.com/lixenwraith/vi-snake/highscore"
	"github.com/lixenwraith/vi-snake/particle"
	"github.com/lixenwraith/vi-snake/persistence"
	"github.com/lixenwraith/vi-snake/render"
	"github.com/lixenwraith/vi-snake/settings"
	"github.com/lixenwraith/vi-snake/status"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// Panic Recovery: Ensure terminal is reset even if the game crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	opts, err := parseOptions(args, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "vi-snake: %v\n", err)
		return 1
	}

	if logFile := setupLogging(opts.debug); logFile != nil {
		defer logFile.Close()
	}

	keys, err := loadKeyTable(opts.keymap)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vi-snake: %v\n", err)
		return 1
	}
	// Validated by parseOptions
	grid, _ := game.NewGrid(opts.width, opts.height)

	store := persistence.NewFileStore(opts.dataDir)
	settingsStore := settings.NewStore(store)
	settingsStore.Load()
	highScores := highscore.NewStore(store)
	highScores.Load()
	log.Printf("data dir %s, high score %d", opts.dataDir, highScores.Get())

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		return 1
	}
	// Crash hook restores the terminal before the stack trace is printed
	core.SetCrashHook(screen.Fini)
	defer screen.Fini()
	screen.HideCursor()
	screen.Clear()

	var player engine.CuePlayer
	sound := audio.NewSoundManager(audio.LoadAudioConfig())
	if err := sound.Initialize(); err != nil {
		log.Printf("audio: %v (continuing without audio)", err)
	} else {
		defer sound.Cleanup()
		player = sound
	}

	seed := opts.seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.Printf("seed %d, grid %dx%d", seed, grid.Width, grid.Height)

	machine := engine.NewMachine(engine.Config{
		Grid:  grid,
		Speed: opts.speedPolicy(),
		Seed:  seed,
	}, engine.Deps{
		Settings:  settingsStore,
		HighScore: highScores,
		Particles: particle.NewEngine(game.NewRand(seed+1), constants.MaxParticles),
		Sound:     player,
	})
	loop := engine.NewLoop(machine, keys, engine.NewTimeProvider(), render.NewRenderer(screen), status.NewRegistry(),
		engine.LoopConfig{FrameInterval: opts.frameInterval(), Debug: opts.debug})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	events := make(chan tcell.Event, constants.InputChannelSize)
	core.Go(func() { pollEvents(ctx, screen, events) })

	if err := loop.Run(ctx, events); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("loop: %v", err)
	}
	return 0
}

// pollEvents forwards terminal events until the screen is finalized or ctx ends
func pollEvents(ctx context.Context, screen tcell.Screen, events chan<- tcell.Event) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-ctx.Done():
			return
		}
	}
}
