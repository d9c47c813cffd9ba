package board

import (
	"errors"
	"fmt"
)

// Sentinel errors. Match them with errors.Is; the typed errors below
// unwrap to them and carry the offending input.
var (
	ErrParse           = errors.New("parse error")
	ErrIllegalMove     = errors.New("illegal move")
	ErrInvalidPosition = errors.New("invalid position")
	ErrNoHistory       = errors.New("no move to undo")
)

// ParseError reports malformed FEN or move text. Nothing is modified when
// one is returned.
type ParseError struct {
	Input  string // the text that failed to decode
	Field  string // which part of it: "placement", "castling", "move", ...
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s %q: %s", e.Field, e.Input, e.Reason)
}

func (e *ParseError) Unwrap() error { return ErrParse }

func parseErr(input, field, reason string) *ParseError {
	return &ParseError{Input: input, Field: field, Reason: reason}
}

// IllegalMoveError reports a move that is not in the legal-move set of
// the position it was offered to.
type IllegalMoveError struct {
	Move   string
	FEN    string
	Reason string
}

func (e *IllegalMoveError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("illegal move %s in %s", e.Move, e.FEN)
	}
	return fmt.Sprintf("illegal move %s in %s: %s", e.Move, e.FEN, e.Reason)
}

func (e *IllegalMoveError) Unwrap() error { return ErrIllegalMove }

// InvalidPositionError reports a FEN that decodes but describes a position
// that cannot arise in a game.
type InvalidPositionError struct {
	FEN    string
	Reason string
}

func (e *InvalidPositionError) Error() string {
	return fmt.Sprintf("invalid position %q: %s", e.FEN, e.Reason)
}

func (e *InvalidPositionError) Unwrap() error { return ErrInvalidPosition }
