package constants

// HUD and menu layout
const (
	// HUDHeight is the rows reserved above the board for score and speed
	HUDHeight = 1
	// FooterHeight is the rows reserved below the board for key hints
	FooterHeight = 1
	// BorderWidth is the frame drawn around the board in windowed layout
	BorderWidth = 1
	// CellWidth is terminal columns per grid cell, two columns keep cells square
	CellWidth = 2
)

// Game-over reasons shown on the GameOver screen
const (
	ReasonWall      = "Hit the wall!"
	ReasonSelf      = "Ate yourself!"
	ReasonBoardFull = "Board full!"
)
