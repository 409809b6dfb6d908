package game

import (
	"errors"

	"go-tetris/internal/board"
	"go-tetris/internal/shape"
)

var (
	// ErrNotStarted is returned when a session is ticked or projected before Start.
	ErrNotStarted = errors.New("session not started")

	// ErrBoardInvariantViolation marks a lock onto an occupied or
	// out-of-range coordinate. The session is aborted when it occurs.
	ErrBoardInvariantViolation = board.ErrInvariantViolation

	// ErrInvalidShapeKind marks a lookup outside the seven piece kinds.
	ErrInvalidShapeKind = shape.ErrInvalidShapeKind
)
