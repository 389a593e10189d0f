package render

// Palette colors, Tokyo Night base
var (
	RgbBackground = Hex("#1a1b26")
	RgbBoard      = Hex("#16161e")
	RgbBorder     = Hex("#565f89")
	RgbGridDot    = Hex("#2f334d")

	RgbSnakeHead = Hex("#9ece6a")
	RgbSnakeTail = Hex("#1f6f5c")
	RgbFood      = Hex("#f7768e")

	RgbParticleEat     = Hex("#ff9e64")
	RgbParticleCrash   = Hex("#db4b4b")
	RgbParticleSparkle = Hex("#e0af68")

	RgbText      = Hex("#c0caf5")
	RgbTextDim   = Hex("#737aa2")
	RgbTitle     = Hex("#7aa2f7")
	RgbHighlight = Hex("#bb9af7")
	RgbWarning   = Hex("#e0af68")
	RgbPanel     = Hex("#24283b")
)
