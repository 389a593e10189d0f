package constants

import "time"

// Frame Loop Timing
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// DefaultFPS is the -fps flag default
	DefaultFPS = 60

	// InputChannelSize buffers terminal events between the poller and the frame loop
	InputChannelSize = 256
)

// Grid
const (
	DefaultGridWidth  = 32
	DefaultGridHeight = 20

	// MinGridWidth and MinGridHeight keep a length-3 snake placeable with room to turn
	MinGridWidth  = 5
	MinGridHeight = 3

	// InitialSnakeLength is the body length after every reset
	InitialSnakeLength = 3
)

// Speed policy, steps per second
const (
	MinBaseSpeed     = 4
	MaxBaseSpeed     = 20
	DefaultBaseSpeed = 10

	// DefaultPointsPerTier, DefaultTierIncrement and DefaultMaxSpeed shape the
	// score-driven speed curve when speed increase is enabled
	DefaultPointsPerTier = 3
	DefaultTierIncrement = 1
	DefaultMaxSpeed      = 30
)

// Persistence file names inside the data directory
const (
	SettingsFileName  = "settings.toml"
	HighScoreFileName = "highscore.txt"
)
