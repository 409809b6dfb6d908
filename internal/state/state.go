package state

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
	"github.com/rs/zerolog"
)

// Session phases.
const (
	New      = "new"
	Spawning = "spawning"
	Falling  = "falling"
	Locking  = "locking"
	GameOver = "gameOver"
	Stopped  = "stopped"
)

// Hooks are invoked on phase entry. Nil hooks are skipped.
type Hooks struct {
	// OnSpawn runs when the session enters Spawning and must install the
	// next active piece.
	OnSpawn func()
	// OnGameOver runs once when the session enters GameOver.
	OnGameOver func()
}

// State tracks the session phase and the orthogonal pause flag.
type State struct {
	FSM    *fsm.FSM
	Paused bool
	log    zerolog.Logger
}

// NewState returns a State in the New phase.
func NewState(log zerolog.Logger, hooks Hooks) *State {
	s := &State{log: log}
	s.FSM = fsm.NewFSM(
		New,
		getStateTransitions(),
		getStateCallbacks(s, hooks),
	)
	return s
}

// Fire triggers a transition event.
func (s *State) Fire(event string) error {
	if err := s.FSM.Event(context.Background(), event); err != nil {
		return fmt.Errorf("session event %q from %q: %w", event, s.FSM.Current(), err)
	}
	return nil
}

// Phase returns the current phase name.
func (s *State) Phase() string {
	return s.FSM.Current()
}

// Started reports whether the session has left the New phase.
func (s *State) Started() bool {
	return !s.FSM.Is(New)
}

// Active reports whether ticks may still change the game.
func (s *State) Active() bool {
	switch s.FSM.Current() {
	case Spawning, Falling, Locking:
		return true
	}
	return false
}

// IsGameOver reports whether the session ended by overflow or abort.
func (s *State) IsGameOver() bool {
	return s.FSM.Is(GameOver)
}

// IsStopped reports whether the session was quit.
func (s *State) IsStopped() bool {
	return s.FSM.Is(Stopped)
}

// TogglePause flips the pause flag of an active session and returns the
// new value. Ended sessions stay unpaused.
func (s *State) TogglePause() bool {
	if !s.Active() {
		s.Paused = false
		return false
	}
	s.Paused = !s.Paused
	s.log.Debug().Bool("paused", s.Paused).Msg("pause toggled")
	return s.Paused
}

func getStateTransitions() []fsm.EventDesc {
	return fsm.Events{
		{Name: "start", Src: []string{New}, Dst: Spawning},
		{Name: "spawn", Src: []string{Spawning}, Dst: Falling},
		{Name: "land", Src: []string{Falling}, Dst: Locking},
		{Name: "settle", Src: []string{Locking}, Dst: Spawning},
		{Name: "overflow", Src: []string{Locking}, Dst: GameOver},

		// A board invariant violation ends the session wherever it happens.
		{Name: "abort", Src: []string{Spawning, Falling, Locking}, Dst: GameOver},

		{Name: "quit", Src: []string{New, Spawning, Falling, Locking, GameOver}, Dst: Stopped},
	}
}

func getStateCallbacks(s *State, hooks Hooks) map[string]fsm.Callback {
	return fsm.Callbacks{
		"enter_state": func(_ context.Context, e *fsm.Event) {
			s.log.Debug().Str("event", e.Event).Str("from", e.Src).Str("to", e.Dst).Msg("phase transition")
		},
		"enter_" + Spawning: func(_ context.Context, e *fsm.Event) {
			if hooks.OnSpawn != nil {
				hooks.OnSpawn()
			}
		},
		"enter_" + GameOver: func(_ context.Context, e *fsm.Event) {
			s.Paused = false
			if hooks.OnGameOver != nil {
				hooks.OnGameOver()
			}
		},
		"enter_" + Stopped: func(_ context.Context, e *fsm.Event) {
			s.Paused = false
		},
	}
}
