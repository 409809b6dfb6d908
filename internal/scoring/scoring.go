package scoring

import (
	"errors"
	"fmt"
)

const (
	MaxLevel         = 10
	BaseInterval     = 24 // gravity ticks per row at level 1
	LevelStep        = 2  // ticks removed from the interval per level
	SoftDropInterval = 4
	PointsPerLevel   = 100
)

// ErrInvalidLevel is returned for a start level outside [1, MaxLevel].
var ErrInvalidLevel = errors.New("invalid start level")

// Scoring tracks score, level and cleared lines for one session.
type Scoring struct {
	CurrentScore int
	Level        int
	LinesCleared int
	scoreTable   map[string]int
}

// InitScoring creates a Scoring starting at startLevel.
func InitScoring(startLevel int) (*Scoring, error) {
	if startLevel < 1 || startLevel > MaxLevel {
		return nil, fmt.Errorf("%w: %d (want 1..%d)", ErrInvalidLevel, startLevel, MaxLevel)
	}
	return &Scoring{
		Level:      startLevel,
		scoreTable: getScoreTable(),
	}, nil
}

// ScoreEvent applies count occurrences of a scoring event and returns the
// points awarded.
func (s *Scoring) ScoreEvent(event string, count int) int {
	if count <= 0 {
		return 0
	}
	if event == "lineCleared" {
		s.LinesCleared += count
	}
	points := s.scoreTable[event] * count
	s.CurrentScore += points
	return points
}

// AwardLines scores k rows cleared by a single lock. Points are linear in k.
func (s *Scoring) AwardLines(k int) int {
	return s.ScoreEvent("lineCleared", k)
}

// CheckLevelUp raises the level by one when the score has reached the
// current level's threshold. It reports whether the level changed.
func (s *Scoring) CheckLevelUp() bool {
	if s.Level >= MaxLevel || s.CurrentScore < PointsPerLevel*s.Level {
		return false
	}
	s.Level++
	return true
}

// GravityInterval returns the ticks per automatic descent at level.
func GravityInterval(level int) int {
	if level > MaxLevel {
		level = MaxLevel
	}
	if level < 1 {
		level = 1
	}
	return BaseInterval - LevelStep*(level-1)
}

// getScoreTable returns the points awarded per scoring event.
func getScoreTable() map[string]int {
	return map[string]int{
		"lineCleared": 10,
	}
}
