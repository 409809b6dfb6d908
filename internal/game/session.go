package game

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"go-tetris/internal/board"
	"go-tetris/internal/piece"
	"go-tetris/internal/scoring"
	"go-tetris/internal/shape"
	"go-tetris/internal/state"

	"github.com/rs/zerolog"
)

// MoveCooldown is the number of ticks a held direction waits between steps.
const MoveCooldown = 5

// Options configure a Session.
type Options struct {
	StartLevel int        // 1..10, zero means 1
	Rand       *rand.Rand // nil seeds from the clock
	Logger     zerolog.Logger
}

// Session is one game: the board, the active piece and every counter
// advanced by Tick.
type Session struct {
	board    *board.Board
	piece    piece.Piece
	hasPiece bool
	next     shape.Kind
	hasNext  bool

	Score *scoring.Scoring
	State *state.State

	fallTimer    int
	interval     int // effective gravity interval
	baseInterval int // level interval, restored when soft drop ends
	softDropHeld bool
	softDrop     bool
	moveCooldown int
	ticks        int
	locks        int

	rng *rand.Rand
	log zerolog.Logger
	err error
}

// NewSession creates a session in the New phase. Call Start before Tick.
func NewSession(opts Options) (*Session, error) {
	level := opts.StartLevel
	if level == 0 {
		level = 1
	}
	sc, err := scoring.InitScoring(level)
	if err != nil {
		return nil, err
	}

	rng := opts.Rand
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}

	s := &Session{
		board:        board.New(),
		Score:        sc,
		baseInterval: scoring.GravityInterval(level),
		rng:          rng,
		log:          opts.Logger,
	}
	s.interval = s.baseInterval
	s.State = state.NewState(s.log, state.Hooks{
		OnSpawn:    s.spawnNext,
		OnGameOver: s.logGameOver,
	})
	return s, nil
}

// Start spawns the first piece and its preview.
func (s *Session) Start() error {
	if err := s.State.Fire("start"); err != nil {
		return err
	}
	if s.err != nil {
		return s.abort(s.err)
	}
	return s.State.Fire("spawn")
}

// Board exposes the landed cells for read-only queries.
func (s *Session) Board() *board.Board {
	return s.board
}

// Piece returns the active piece and whether one exists.
func (s *Session) Piece() (piece.Piece, bool) {
	return s.piece, s.hasPiece
}

// Next returns the previewed kind.
func (s *Session) Next() shape.Kind {
	return s.next
}

// Interval returns the gravity interval in effect this tick.
func (s *Session) Interval() int {
	return s.interval
}

// Err returns the error that aborted the session, if any.
func (s *Session) Err() error {
	return s.err
}

// Aborted reports whether the session was stopped by an internal error.
func (s *Session) Aborted() bool {
	return s.err != nil
}

// IsOver reports whether the session has ended by game over or quit.
func (s *Session) IsOver() bool {
	return s.State.Started() && !s.State.Active()
}

// Tick advances the session by one frame given the commands sampled for it.
func (s *Session) Tick(cmds ...Command) error {
	if !s.State.Started() {
		return ErrNotStarted
	}
	in := digest(cmds)

	if in.quit {
		if !s.State.IsStopped() {
			return s.State.Fire("quit")
		}
		return nil
	}
	if !s.State.Active() {
		return nil
	}
	if in.pause {
		s.State.TogglePause()
	}
	if s.State.Paused {
		return nil
	}
	s.ticks++

	s.ensurePreview()

	if in.softDropOn {
		s.softDropHeld = true
	}
	if in.softDropOff {
		s.softDropHeld = false
	}

	// A piece spawned onto the stack cannot fall either.
	if cells := s.piece.Cells(); s.board.CollidesWithFloorOrStack(cells) || s.board.Overlaps(cells) {
		if err := s.lock(); err != nil {
			return err
		}
		if !s.State.Active() {
			return nil
		}
	} else if s.fallTimer == s.interval {
		s.piece = s.piece.Shifted(0, 1)
	}

	s.applySoftDrop()

	switch {
	case in.left:
		s.move(board.Left)
	case in.right:
		s.move(board.Right)
	}

	if in.rotate {
		s.rotate()
	}

	s.fallTimer++
	if s.fallTimer > s.interval {
		s.fallTimer = 0
	}
	if s.moveCooldown > 0 {
		s.moveCooldown--
	}
	return nil
}

func (s *Session) ensurePreview() {
	if s.hasNext {
		return
	}
	s.next = shape.Kinds[s.rng.IntN(shape.Count)]
	s.hasNext = true
}

// spawnNext installs the previewed piece and draws a new preview.
func (s *Session) spawnNext() {
	s.ensurePreview()
	p, err := piece.Spawn(s.next)
	if err != nil {
		s.err = err
		s.hasPiece = false
		return
	}
	s.piece = p
	s.hasPiece = true
	s.hasNext = false
	s.ensurePreview()
	s.log.Debug().Str("piece", p.Kind().String()).Str("next", s.next.String()).Msg("piece spawned")
}

// lock converts the active piece into landed cells, clears rows, scores,
// and either spawns the next piece or ends the game.
func (s *Session) lock() error {
	cells := s.piece.Cells()
	overflow := s.board.TopHasOverflow(cells)

	if err := s.State.Fire("land"); err != nil {
		return err
	}
	if overflow {
		// Topping out: keep what fits, the game ends anyway.
		cells = slices.DeleteFunc(cells, s.board.IsOccupied)
	}
	if err := s.board.Lock(cells, s.piece.Color()); err != nil {
		return s.abort(fmt.Errorf("lock %s at (%d,%d) orientation %d: %w",
			s.piece.Kind(), s.piece.Anchor.Col, s.piece.Anchor.Row, s.piece.Orientation, err))
	}
	s.hasPiece = false
	s.locks++
	s.log.Debug().Str("piece", s.piece.Kind().String()).Int("col", s.piece.Anchor.Col).Int("row", s.piece.Anchor.Row).Msg("piece locked")

	res := s.board.ClearCompletedRows()
	if res.Count > 0 {
		points := s.Score.AwardLines(res.Count)
		s.log.Info().Ints("rows", res.Rows).Int("points", points).Int("score", s.Score.CurrentScore).Msg("rows cleared")
	}
	if s.Score.CheckLevelUp() {
		s.baseInterval = scoring.GravityInterval(s.Score.Level)
		if !s.softDrop {
			s.interval = s.baseInterval
		}
		s.log.Info().Int("level", s.Score.Level).Int("interval", s.baseInterval).Msg("level up")
	}

	if overflow {
		return s.State.Fire("overflow")
	}
	if err := s.State.Fire("settle"); err != nil {
		return err
	}
	if s.err != nil {
		return s.abort(s.err)
	}
	return s.State.Fire("spawn")
}

func (s *Session) abort(err error) error {
	s.err = err
	s.log.Error().Err(err).Str("phase", s.State.Phase()).Int("landed", s.board.Len()).Msg("session aborted")
	if s.State.Active() {
		_ = s.State.Fire("abort")
	}
	return err
}

func (s *Session) applySoftDrop() {
	switch {
	case s.softDropHeld && !s.softDrop:
		s.softDrop = true
		s.interval = scoring.SoftDropInterval
	case !s.softDropHeld && s.softDrop:
		s.softDrop = false
		s.interval = s.baseInterval
	}
}

// move shifts the piece one column toward d. The cooldown starts whenever
// the edge allows the move, even if a landed neighbour then blocks it.
func (s *Session) move(d board.Direction) {
	cells := s.piece.Cells()
	if s.moveCooldown != 0 || board.TouchesEdge(cells, d) {
		return
	}
	s.moveCooldown = MoveCooldown
	if s.board.CollidesHorizontally(cells) {
		return
	}
	s.piece = s.piece.Shifted(int(d), 0)
}

// rotate commits the next orientation only if it fits where the piece is.
func (s *Session) rotate() bool {
	candidate := s.piece.Rotated()
	if !s.board.Fits(candidate.Cells()) {
		return false
	}
	s.piece = candidate
	return true
}

func (s *Session) logGameOver() {
	s.log.Info().
		Int("score", s.Score.CurrentScore).
		Int("level", s.Score.Level).
		Int("lines", s.Score.LinesCleared).
		Int("pieces", s.locks).
		Int("ticks", s.ticks).
		Msg("game over")
}
