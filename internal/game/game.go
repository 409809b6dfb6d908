package game

import (
	"fmt"
	"time"

	"go-tetris/internal/scoring"

	"github.com/rs/zerolog"
)

// MusicPlayer is the audio collaborator that ToggleMusic is forwarded to.
type MusicPlayer interface {
	Toggle() (playing bool)
	Playing() bool
}

// Game runs consecutive sessions for one process: it forwards music
// toggles, records finished sessions and starts a new session when the
// player acknowledges a game over.
type Game struct {
	Session *Session
	History scoring.ScoreHistory

	opts     Options
	music    MusicPlayer
	log      zerolog.Logger
	recorded bool
	now      func() time.Time
}

// NewGame creates a Game and starts its first session. music may be nil.
func NewGame(opts Options, music MusicPlayer) (*Game, error) {
	g := &Game{
		opts:  opts,
		music: music,
		log:   opts.Logger,
		now:   time.Now,
	}
	if err := g.NextSession(); err != nil {
		return nil, err
	}
	return g, nil
}

// NextSession replaces the current session with a freshly started one.
func (g *Game) NextSession() error {
	sess, err := NewSession(g.opts)
	if err != nil {
		return fmt.Errorf("new session: %w", err)
	}
	if err := sess.Start(); err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	g.Session = sess
	g.recorded = false
	g.log.Info().Int("game", g.History.Attempts()+1).Msg("session started")
	return nil
}

// HandleTick forwards one tick of commands to the current session.
func (g *Game) HandleTick(cmds ...Command) error {
	forwarded := cmds[:0:0]
	for _, c := range cmds {
		if c == ToggleMusic {
			g.toggleMusic()
			continue
		}
		forwarded = append(forwarded, c)
	}

	err := g.Session.Tick(forwarded...)
	if g.Session.State.IsGameOver() && !g.recorded {
		g.recorded = true
		g.History.Record(scoring.NewEntry(g.Session.Score, g.now()))
	}
	return err
}

// Acknowledge starts a new session after a game over. It is a no-op
// while the current session is still running.
func (g *Game) Acknowledge() error {
	if !g.Session.State.IsGameOver() {
		return nil
	}
	return g.NextSession()
}

// IsGameOver reports whether the current session awaits acknowledgement.
func (g *Game) IsGameOver() bool {
	return g.Session.State.IsGameOver()
}

// IsQuit reports whether the player quit.
func (g *Game) IsQuit() bool {
	return g.Session.State.IsStopped()
}

// Music reports whether music is playing. ok is false without a player.
func (g *Game) Music() (playing, ok bool) {
	if g.music == nil {
		return false, false
	}
	return g.music.Playing(), true
}

func (g *Game) toggleMusic() {
	if g.music == nil {
		return
	}
	playing := g.music.Toggle()
	g.log.Debug().Bool("playing", playing).Msg("music toggled")
}
