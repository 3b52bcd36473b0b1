package table

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSize is returned by New when the requested table has no slots.
	ErrInvalidSize = errors.New("table size must be positive")
	// ErrBlockNotFound is the kind shared by every BlockNotFoundError.
	ErrBlockNotFound = errors.New("block not found")
	// ErrSameSlot reports a move whose destination already holds the moving blocks.
	// The table is left untouched.
	ErrSameSlot = errors.New("source and destination share a slot")
	// ErrMoveInProgress is returned when the table is accessed while a Move is outstanding.
	ErrMoveInProgress = errors.New("a move is already in progress")
	// ErrMoveConsumed is returned when a Move is completed more than once.
	ErrMoveConsumed = errors.New("move already completed")
)

// BlockNotFoundError names the block identifier that could not be resolved.
type BlockNotFoundError struct {
	ID int
}

func (e *BlockNotFoundError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %d", ErrBlockNotFound.Error(), e.ID)
}

func (e *BlockNotFoundError) Unwrap() error { return ErrBlockNotFound }
