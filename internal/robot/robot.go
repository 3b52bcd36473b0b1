// Package robot drives a table from a stream of text commands: it reads the
// table size, then applies one command per line until "quit" or end of input,
// printing the table on request and on termination.
package robot

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/example/roblocks/internal/command"
	"github.com/example/roblocks/internal/table"
	"github.com/example/roblocks/internal/ui"
	"github.com/go-logr/logr"
	"github.com/pkg/errors"
)

// ErrInvariant marks a table that failed verification after a move.
var ErrInvariant = errors.New("table invariant violated")

// Printer renders the table for the print and quit commands.
type Printer interface {
	Print(w io.Writer, src ui.TableSource) error
}

// Stats counts what a run did.
type Stats struct {
	Commands int
	Moves    int
	Ignored  int
	Errors   int
}

// Option configures a Robot.
type Option func(*Robot)

// WithOutput sets where tables and command errors are written.
func WithOutput(out, errOut io.Writer) Option {
	return func(r *Robot) {
		r.out = out
		r.errOut = errOut
	}
}

func WithLogger(logger logr.Logger) Option {
	return func(r *Robot) { r.logger = logger }
}

func WithPrinter(p Printer) Option {
	return func(r *Robot) { r.printer = p }
}

// WithTable skips the size line and drives tbl instead.
func WithTable(tbl *table.Table) Option {
	return func(r *Robot) { r.table = tbl }
}

// WithStrict stops the run at the first failing command.
func WithStrict(strict bool) Option {
	return func(r *Robot) { r.strict = strict }
}

// WithVerify checks the table invariants after every applied move.
func WithVerify(verify bool) Option {
	return func(r *Robot) { r.verify = verify }
}

// Robot executes commands against a single table.
type Robot struct {
	table   *table.Table
	out     io.Writer
	errOut  io.Writer
	logger  logr.Logger
	printer Printer
	strict  bool
	verify  bool
	stats   Stats
}

func New(opts ...Option) *Robot {
	r := &Robot{
		out:    io.Discard,
		errOut: io.Discard,
		logger: logr.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Table returns the table being driven, or nil before the size line was read.
func (r *Robot) Table() *table.Table {
	return r.table
}

func (r *Robot) Stats() Stats {
	return r.stats
}

// Run reads commands from in until "quit" or end of input. Command errors are
// reported and skipped unless the robot is strict; I/O errors and context
// cancellation end the run.
func (r *Robot) Run(ctx context.Context, in io.Reader) error {
	reader := bufio.NewReader(in)
	if r.table == nil {
		if err := r.setup(reader); err != nil {
			return err
		}
	} else {
		r.logger.V(1).Info("table ready", "size", r.table.Size())
	}
	defer func() {
		r.logger.V(1).Info("run finished",
			"commands", r.stats.Commands,
			"moves", r.stats.Moves,
			"ignored", r.stats.Ignored,
			"errors", r.stats.Errors)
	}()

	for lineNo := 1; ; lineNo++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, readErr := reader.ReadString('\n')
		eof := errors.Is(readErr, io.EOF)
		if readErr != nil && !eof {
			return errors.Wrap(readErr, "read command")
		}
		if line != "" {
			quit, err := r.Exec(line)
			if err != nil {
				r.report(lineNo, err)
				if r.strict || errors.Is(err, ErrInvariant) {
					return errors.Wrapf(err, "line %d", lineNo)
				}
			}
			if quit {
				return nil
			}
		}
		if eof {
			r.logger.V(1).Info("end of input without quit")
			return r.print()
		}
	}
}

func (r *Robot) setup(reader *bufio.Reader) error {
	line, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return errors.Wrap(err, "read table size")
	}
	size, err := command.ParseSize(line)
	if err != nil {
		return err
	}
	tbl, err := table.New(size)
	if err != nil {
		return err
	}
	r.table = tbl
	r.logger.V(1).Info("table ready", "size", tbl.Size())
	return nil
}

// Exec runs a single command line. It reports quit=true for "quit".
func (r *Robot) Exec(line string) (quit bool, err error) {
	if r.table == nil {
		return false, errors.New("table is not initialized")
	}
	cmd, err := command.Parse(line)
	if err != nil {
		r.stats.Errors++
		return false, err
	}
	if cmd.Kind != command.Continue {
		r.stats.Commands++
	}
	switch cmd.Kind {
	case command.Print:
		return false, r.print()
	case command.Quit:
		return true, r.print()
	case command.Move:
		if err := r.apply(cmd.Move); err != nil {
			r.stats.Errors++
			return false, err
		}
	}
	return false, nil
}

func (r *Robot) apply(req command.Request) error {
	var (
		move *table.Move
		err  error
	)
	if req.Source.Kind == command.Pile {
		move, err = r.table.BeginPileMove(req.Source.ID)
	} else {
		move, err = r.table.BeginBlockMove(req.Source.ID)
	}
	if err != nil {
		return err
	}
	if req.Dest.Kind == command.Block {
		err = move.Onto(req.Dest.ID)
	} else {
		err = move.Over(req.Dest.ID)
	}
	switch {
	case errors.Is(err, table.ErrSameSlot):
		r.stats.Ignored++
		r.logger.V(1).Info("move ignored, blocks already share a pile", "command", req.String())
		return nil
	case err != nil:
		return err
	}
	r.stats.Moves++
	r.logger.V(2).Info("move applied", "command", req.String())
	if r.verify {
		if verr := r.table.Verify(); verr != nil {
			return fmt.Errorf("%w after %q: %v", ErrInvariant, req.String(), verr)
		}
	}
	return nil
}

func (r *Robot) print() error {
	var err error
	if r.printer != nil {
		err = r.printer.Print(r.out, r.table)
	} else {
		err = r.table.Render(r.out)
	}
	return errors.Wrap(err, "print table")
}

// report writes the user-facing message for a failed command.
func (r *Robot) report(lineNo int, err error) {
	r.logger.V(1).Info("command failed", "line", lineNo, "err", err.Error())
	fmt.Fprintln(r.errOut, Describe(err))
}

// Describe formats a command error the way the robot reports it to the user.
func Describe(err error) string {
	var (
		badID    *command.BadBlockIDError
		badCmd   *command.BadCommandError
		notFound *table.BlockNotFoundError
	)
	switch {
	case errors.As(err, &badID):
		return fmt.Sprintf("Invalid block id: %s", badID.Value)
	case errors.As(err, &badCmd):
		return fmt.Sprintf("Invalid command: %s", strings.TrimSpace(badCmd.Input))
	case errors.Is(err, command.ErrImpossibleMove):
		return "Cannot move a block onto/over itself"
	case errors.As(err, &notFound):
		return fmt.Sprintf("Block not found: %d", notFound.ID)
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}
