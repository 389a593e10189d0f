// Package highscore keeps the best score across sessions
package highscore

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/lixenwraith/vi-snake/constants"
	"github.com/lixenwraith/vi-snake/persistence"
)

// Store holds the best score, persisted as a plain-text integer
type Store struct {
	backend persistence.Store
	best    int
	dirty   bool
}

// NewStore creates a store at 0, call Load to restore the saved value
func NewStore(backend persistence.Store) *Store {
	return &Store{backend: backend}
}

// Load restores the saved score, absent or malformed data yields 0
func (s *Store) Load() {
	s.best = 0
	s.dirty = false

	data, err := s.backend.Read(constants.HighScoreFileName)
	if errors.Is(err, persistence.ErrNotFound) {
		return
	}
	if err != nil {
		log.Printf("highscore: load failed, using 0: %v", err)
		return
	}

	v, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || v < 0 {
		log.Printf("highscore: corrupt value %q, using 0", truncate(string(data), 32))
		return
	}
	s.best = v
}

// Get returns the best score
func (s *Store) Get() int {
	return s.best
}

// RecordIfBetter stores score when it beats the best and reports whether it did
// The new value is kept in memory even if the write fails, Flush retries it
func (s *Store) RecordIfBetter(score int) bool {
	if score <= s.best {
		return false
	}
	s.best = score
	s.dirty = true
	if err := s.Save(); err != nil {
		log.Printf("highscore: %v", err)
	}
	return true
}

// Save writes the best score
func (s *Store) Save() error {
	data := []byte(strconv.Itoa(s.best) + "\n")
	if err := s.backend.Write(constants.HighScoreFileName, data); err != nil {
		return fmt.Errorf("save high score: %w", err)
	}
	s.dirty = false
	return nil
}

// Flush saves only if an earlier write failed
func (s *Store) Flush() error {
	if !s.dirty {
		return nil
	}
	return s.Save()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
