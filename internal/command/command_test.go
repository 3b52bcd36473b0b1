package command

import (
	"errors"
	"strconv"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		line string
		want Command
	}{
		{line: "", want: Command{Kind: Continue}},
		{line: "   \t", want: Command{Kind: Continue}},
		{line: "print", want: Command{Kind: Print}},
		{line: " QUIT \n", want: Command{Kind: Quit}},
		{line: "move 9 onto 1", want: Command{Kind: Move, Move: Request{Source: Target{Block, 9}, Dest: Target{Block, 1}}}},
		{line: "move 8 over 1", want: Command{Kind: Move, Move: Request{Source: Target{Block, 8}, Dest: Target{Pile, 1}}}},
		{line: "pile 8 onto 6", want: Command{Kind: Move, Move: Request{Source: Target{Pile, 8}, Dest: Target{Block, 6}}}},
		{line: "Pile  2   Over 7", want: Command{Kind: Move, Move: Request{Source: Target{Pile, 2}, Dest: Target{Pile, 7}}}},
	}
	for _, tt := range tests {
		got, err := Parse(tt.line)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.line, err)
		}
		if got != tt.want {
			t.Fatalf("Parse(%q) = %+v, want %+v", tt.line, got, tt.want)
		}
	}
}

func TestParseRejectsBadCommands(t *testing.T) {
	for _, line := range []string{
		"jump 1 onto 2",
		"move 1 under 2",
		"move 1 onto",
		"move 1 onto 2 3",
		"print now",
		"move 'a onto 2",
		"move 1 onto 2 | pile 3 over 4",
		"move 1 onto 2;",
		"pile 1 over 2 > out",
		"move 1 onto 2 & quit",
	} {
		_, err := Parse(line)
		var bad *BadCommandError
		if !errors.As(err, &bad) {
			t.Fatalf("Parse(%q): expected BadCommandError, got %v", line, err)
		}
	}
}

func TestParseRejectsBadBlockIDs(t *testing.T) {
	for _, line := range []string{"move x onto 2", "pile 1 over two", "move -1 onto 2"} {
		_, err := Parse(line)
		var bad *BadBlockIDError
		if !errors.As(err, &bad) {
			t.Fatalf("Parse(%q): expected BadBlockIDError, got %v", line, err)
		}
	}

	_, err := Parse("move x onto 2")
	if !errors.Is(err, strconv.ErrSyntax) {
		t.Fatalf("expected strconv syntax error to be wrapped, got %v", err)
	}
}

func TestParseRejectsSelfMove(t *testing.T) {
	if _, err := Parse("pile 3 over 3"); !errors.Is(err, ErrImpossibleMove) {
		t.Fatalf("expected ErrImpossibleMove, got %v", err)
	}
}

func TestParseSize(t *testing.T) {
	got, err := ParseSize(" 10\n")
	if err != nil || got != 10 {
		t.Fatalf("ParseSize = %d, %v", got, err)
	}
	for _, line := range []string{"", "0", "-2", "ten"} {
		if _, err := ParseSize(line); !errors.Is(err, ErrBadSize) {
			t.Fatalf("ParseSize(%q): expected ErrBadSize, got %v", line, err)
		}
	}
}

func TestRequestString(t *testing.T) {
	for _, line := range []string{"move 1 onto 2", "move 1 over 2", "pile 1 onto 2", "pile 1 over 2"} {
		cmd, err := Parse(line)
		if err != nil {
			t.Fatalf("Parse(%q): %v", line, err)
		}
		if got := cmd.Move.String(); got != line {
			t.Fatalf("String() = %q, want %q", got, line)
		}
	}
}
