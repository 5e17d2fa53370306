package session

import (
	"errors"
	"fmt"

	"github.com/abhisek/mathrush/internal/modes"
)

var (
	// ErrInvalidInput is returned when an answer cannot be parsed. No
	// attempt is counted.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoHints is returned by ShowHint when the budget is spent.
	ErrNoHints = errors.New("no hints remaining")

	// ErrNotPlaying is returned by operations that need an active session.
	ErrNotPlaying = errors.New("no game in progress")

	// ErrPaused is returned by operations ignored while paused.
	ErrPaused = errors.New("game is paused")
)

// ModeError reports an attempt to start an unregistered mode.
type ModeError struct {
	Mode modes.Mode
	Err  error
}

func (e *ModeError) Error() string {
	return fmt.Sprintf("start %q: %v", string(e.Mode), e.Err)
}

func (e *ModeError) Unwrap() error { return e.Err }
