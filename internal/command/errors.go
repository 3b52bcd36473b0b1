package command

import (
	"errors"
	"fmt"
)

var (
	// ErrImpossibleMove rejects moving a block onto or over itself.
	ErrImpossibleMove = errors.New("cannot move a block onto/over itself")
	// ErrBadSize is returned by ParseSize for anything but a positive integer.
	ErrBadSize = errors.New("invalid table size")

	errNegativeID    = errors.New("block ids are non-negative")
	errShellOperator = errors.New("unexpected shell operator")
)

// BadBlockIDError reports a block id that is not a non-negative integer.
type BadBlockIDError struct {
	Value string
	Err   error
}

func (e *BadBlockIDError) Error() string {
	return fmt.Sprintf("invalid block id %q: %v", e.Value, e.Err)
}

func (e *BadBlockIDError) Unwrap() error { return e.Err }

// BadCommandError reports a line that matches no known command.
type BadCommandError struct {
	Input string
	Err   error
}

func (e *BadCommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid command %q: %v", e.Input, e.Err)
	}
	return fmt.Sprintf("invalid command %q", e.Input)
}

func (e *BadCommandError) Unwrap() error { return e.Err }
