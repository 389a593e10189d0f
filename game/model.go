package game

import (
	"errors"
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/lixenwraith/vi-snake/constants"
	"github.com/lixenwraith/vi-snake/core"
)

// ErrBoardFull is returned by PlaceFood when the snake covers every cell
var ErrBoardFull = errors.New("game: no free cell for food")

// Collision classifies how a step ended the session
type Collision uint8

const (
	CollisionNone Collision = iota
	CollisionWall
	CollisionSelf
	// CollisionBoardFull ends the session after the snake fills the grid
	CollisionBoardFull
)

func (c Collision) String() string {
	switch c {
	case CollisionNone:
		return "none"
	case CollisionWall:
		return "wall"
	case CollisionSelf:
		return "self"
	case CollisionBoardFull:
		return "board_full"
	default:
		return "unknown"
	}
}

// Reason returns the game-over banner text
func (c Collision) Reason() string {
	switch c {
	case CollisionWall:
		return constants.ReasonWall
	case CollisionSelf:
		return constants.ReasonSelf
	case CollisionBoardFull:
		return constants.ReasonBoardFull
	default:
		return ""
	}
}

// StepResult reports what one tick did
type StepResult struct {
	Collision Collision
	Ate       bool
	// Head is the cell the snake moved into, or tried to for a wall or self collision
	Head core.Point
	// Vacated is the former tail cell, valid when Moved is true and Ate is false
	Vacated core.Point
	Moved   bool
}

// Model is the snake, food and score of one session
// Body is head first and its cells are pairwise distinct
type Model struct {
	grid     Grid
	body     []core.Point
	occupied map[core.Point]struct{}
	dir      core.Direction
	pending  core.Direction
	food     core.Point
	hasFood  bool
	score    int
	rng      *rand.Rand
}

// NewModel creates a model on grid drawing food positions from rng
// Returns error for a grid NewGrid would reject or a nil rng
func NewModel(grid Grid, rng *rand.Rand) (*Model, error) {
	if _, err := NewGrid(grid.Width, grid.Height); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	if rng == nil {
		return nil, fmt.Errorf("game: nil rng")
	}
	m := &Model{
		grid:     grid,
		occupied: make(map[core.Point]struct{}, grid.Cells()),
		rng:      rng,
	}
	m.Reset()
	return m, nil
}

// NewRand returns the deterministic generator used for food and particles
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Reset places a fresh snake centred and heading right with food off its body
func (m *Model) Reset() {
	center := m.grid.Center()
	length := min(constants.InitialSnakeLength, center.X+1)

	body := make([]core.Point, 0, length)
	for i := 0; i < length; i++ {
		body = append(body, core.Point{X: center.X - i, Y: center.Y})
	}
	// A freshly centred snake always leaves free cells on a valid grid
	_ = m.Restore(body, core.DirRight)
	m.score = 0
}

// Restore replaces the snake with body heading dir, resets score and places new food
func (m *Model) Restore(body []core.Point, dir core.Direction) error {
	if len(body) == 0 {
		return fmt.Errorf("game: empty body")
	}
	occupied := make(map[core.Point]struct{}, m.grid.Cells())
	for _, p := range body {
		if !m.grid.Contains(p) {
			return fmt.Errorf("game: body cell %+v outside grid", p)
		}
		if _, dup := occupied[p]; dup {
			return fmt.Errorf("game: body cell %+v repeated", p)
		}
		occupied[p] = struct{}{}
	}

	m.body = append(m.body[:0], body...)
	m.occupied = occupied
	m.dir = dir
	m.pending = core.DirNone
	m.score = 0
	m.hasFood = false
	return m.PlaceFood()
}

// SetFood moves the food to p, which must be a free grid cell
func (m *Model) SetFood(p core.Point) error {
	if !m.grid.Contains(p) {
		return fmt.Errorf("game: food %+v outside grid", p)
	}
	if _, taken := m.occupied[p]; taken {
		return fmt.Errorf("game: food %+v under snake", p)
	}
	m.food = p
	m.hasFood = true
	return nil
}

// CanTurn reports whether SetDirection(d) would be accepted
func (m *Model) CanTurn(d core.Direction) bool {
	if d == core.DirNone {
		return false
	}
	return len(m.body) <= 1 || d != m.dir.Opposite()
}

// SetDirection buffers d for the next step unless it reverses the current heading
func (m *Model) SetDirection(d core.Direction) bool {
	if !m.CanTurn(d) {
		return false
	}
	m.pending = d
	return true
}

// Step advances the snake one cell
// A collision leaves body and food untouched
func (m *Model) Step() StepResult {
	if m.pending != core.DirNone {
		m.dir = m.pending
		m.pending = core.DirNone
	}

	head := m.body[0].Add(m.dir.Vector())
	res := StepResult{Head: head}

	if !m.grid.Contains(head) {
		res.Collision = CollisionWall
		return res
	}

	eating := m.hasFood && head == m.food
	tail := m.body[len(m.body)-1]
	if _, hit := m.occupied[head]; hit && (eating || head != tail) {
		res.Collision = CollisionSelf
		return res
	}

	res.Moved = true
	if !eating {
		res.Vacated = tail
		delete(m.occupied, tail)
		m.body = m.body[:len(m.body)-1]
	}
	m.body = append(m.body, core.Point{})
	copy(m.body[1:], m.body)
	m.body[0] = head
	m.occupied[head] = struct{}{}

	if eating {
		res.Ate = true
		m.score++
		m.hasFood = false
		if err := m.PlaceFood(); errors.Is(err, ErrBoardFull) {
			res.Collision = CollisionBoardFull
		}
	}
	return res
}

// PlaceFood picks a uniformly random free cell for the food
func (m *Model) PlaceFood() error {
	free := m.grid.Cells() - len(m.body)
	if free <= 0 {
		m.hasFood = false
		return ErrBoardFull
	}

	// Pick the n-th free cell in row-major order
	n := m.rng.Intn(free)
	for y := 0; y < m.grid.Height; y++ {
		for x := 0; x < m.grid.Width; x++ {
			p := core.Point{X: x, Y: y}
			if _, taken := m.occupied[p]; taken {
				continue
			}
			if n == 0 {
				m.food = p
				m.hasFood = true
				return nil
			}
			n--
		}
	}
	m.hasFood = false
	return ErrBoardFull
}

// Grid returns the playfield
func (m *Model) Grid() Grid { return m.grid }

// Head returns the head cell
func (m *Model) Head() core.Point { return m.body[0] }

// Len returns the body length
func (m *Model) Len() int { return len(m.body) }

// Direction returns the applied heading
func (m *Model) Direction() core.Direction { return m.dir }

// Pending returns the buffered heading, DirNone if none
func (m *Model) Pending() core.Direction { return m.pending }

// Score returns food eaten this session
func (m *Model) Score() int { return m.score }

// Food returns the food cell and whether one is placed
func (m *Model) Food() (core.Point, bool) { return m.food, m.hasFood }

// Body returns a copy of the snake cells, head first
func (m *Model) Body() []core.Point {
	return append([]core.Point(nil), m.body...)
}

// Occupies reports whether p is a snake cell
func (m *Model) Occupies(p core.Point) bool {
	_, ok := m.occupied[p]
	return ok
}
