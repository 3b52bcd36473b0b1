// Package command parses the robot's line-oriented command language:
//
//	move|pile <block> onto|over <block>
//	print
//	quit
//
// Keywords are case-insensitive and blank lines are ignored.
package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-shellwords"
)

// Kind identifies what a parsed line asks the robot to do.
type Kind int

const (
	Continue Kind = iota
	Print
	Quit
	Move
)

func (k Kind) String() string {
	switch k {
	case Continue:
		return "continue"
	case Print:
		return "print"
	case Quit:
		return "quit"
	case Move:
		return "move"
	default:
		return "unknown"
	}
}

// TargetKind selects a single block or the pile the block belongs to.
type TargetKind int

const (
	Block TargetKind = iota
	Pile
)

// Target names a block, or the pile currently holding it, by block id.
type Target struct {
	Kind TargetKind
	ID   int
}

// Request is a validated move: source and destination never name the same block.
type Request struct {
	Source Target
	Dest   Target
}

func (r Request) String() string {
	verb := "move"
	if r.Source.Kind == Pile {
		verb = "pile"
	}
	mode := "onto"
	if r.Dest.Kind == Pile {
		mode = "over"
	}
	return fmt.Sprintf("%s %d %s %d", verb, r.Source.ID, mode, r.Dest.ID)
}

// Command is one parsed input line. Move is only set when Kind is Move.
type Command struct {
	Kind Kind
	Move Request
}

// Parse turns a single input line into a Command.
func Parse(line string) (Command, error) {
	trimmed := strings.ToLower(strings.TrimSpace(line))
	switch trimmed {
	case "":
		return Command{Kind: Continue}, nil
	case "print":
		return Command{Kind: Print}, nil
	case "quit":
		return Command{Kind: Quit}, nil
	}

	parser := shellwords.NewParser()
	words, err := parser.Parse(trimmed)
	if err != nil {
		return Command{}, &BadCommandError{Input: trimmed, Err: err}
	}
	// The parser stops at an unquoted ; & | < or > and records where.
	if parser.Position >= 0 {
		return Command{}, &BadCommandError{Input: trimmed, Err: errShellOperator}
	}
	if len(words) != 4 {
		return Command{}, &BadCommandError{Input: trimmed}
	}

	var req Request
	switch words[0] {
	case "move":
		req.Source.Kind = Block
	case "pile":
		req.Source.Kind = Pile
	default:
		return Command{}, &BadCommandError{Input: trimmed}
	}
	switch words[2] {
	case "onto":
		req.Dest.Kind = Block
	case "over":
		req.Dest.Kind = Pile
	default:
		return Command{}, &BadCommandError{Input: trimmed}
	}

	if req.Source.ID, err = parseBlockID(words[1]); err != nil {
		return Command{}, err
	}
	if req.Dest.ID, err = parseBlockID(words[3]); err != nil {
		return Command{}, err
	}
	if req.Source.ID == req.Dest.ID {
		return Command{}, ErrImpossibleMove
	}
	return Command{Kind: Move, Move: req}, nil
}

// ParseSize reads the setup line holding the number of blocks on the table.
func ParseSize(line string) (int, error) {
	raw := strings.TrimSpace(line)
	size, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %w", ErrBadSize, raw, err)
	}
	if size <= 0 {
		return 0, fmt.Errorf("%w %q: must be positive", ErrBadSize, raw)
	}
	return size, nil
}

func parseBlockID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &BadBlockIDError{Value: raw, Err: err}
	}
	if id < 0 {
		return 0, &BadBlockIDError{Value: raw, Err: errNegativeID}
	}
	return id, nil
}
