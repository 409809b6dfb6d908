package scoring

import (
	"sort"
	"time"
)

// ScoreHistory holds the results of the games finished in this process.
// Nothing is written to disk.
type ScoreHistory struct {
	Entries        []ScoreHistoryEntry
	HighScoreEntry *ScoreHistoryEntry
}

// ScoreHistoryEntry represents the result of a single game.
type ScoreHistoryEntry struct {
	Score     int
	Level     int
	Lines     int
	Timestamp string
}

// NewEntry captures the final state of s.
func NewEntry(s *Scoring, at time.Time) ScoreHistoryEntry {
	return ScoreHistoryEntry{
		Score:     s.CurrentScore,
		Level:     s.Level,
		Lines:     s.LinesCleared,
		Timestamp: at.Format(time.RFC3339),
	}
}

// Record appends an entry and updates the high score.
func (sh *ScoreHistory) Record(entry ScoreHistoryEntry) {
	sh.Entries = append(sh.Entries, entry)
	if sh.HighScoreEntry == nil || entry.Score > sh.HighScoreEntry.Score {
		e := entry
		sh.HighScoreEntry = &e
	}
}

// Attempts returns how many games have been recorded.
func (sh ScoreHistory) Attempts() int {
	return len(sh.Entries)
}

// GetHighScoreEntry returns the highest score entry, or nil before the first game.
func (sh ScoreHistory) GetHighScoreEntry() *ScoreHistoryEntry {
	return sh.HighScoreEntry
}

// GetNScoreEntries returns the top N score entries, sorted by score.
func (sh ScoreHistory) GetNScoreEntries(n int) []ScoreHistoryEntry {
	// Make a copy to avoid modifying the original slice.
	entriesCopy := make([]ScoreHistoryEntry, len(sh.Entries))
	copy(entriesCopy, sh.Entries)

	sort.SliceStable(entriesCopy, func(i, j int) bool {
		return entriesCopy[i].Score > entriesCopy[j].Score
	})

	if len(entriesCopy) < n {
		return entriesCopy
	}
	return entriesCopy[:n]
}

// GotHighScore reports whether score is at least the best recorded score.
func (sh ScoreHistory) GotHighScore(score int) bool {
	if sh.HighScoreEntry == nil {
		return true
	}
	return score >= sh.HighScoreEntry.Score
}
