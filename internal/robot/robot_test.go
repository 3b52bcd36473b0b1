package robot

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/roblocks/internal/command"
	"github.com/example/roblocks/internal/logging"
	"github.com/example/roblocks/internal/table"
)

func runScript(t *testing.T, script string, opts ...Option) (string, string, *Robot, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	opts = append([]Option{WithOutput(&out, &errOut)}, opts...)
	r := New(opts...)
	err := r.Run(context.Background(), strings.NewReader(script))
	return out.String(), errOut.String(), r, err
}

func TestRunMatchesGoldenTranscript(t *testing.T) {
	in, err := os.ReadFile(filepath.Join("testdata", "sample.in"))
	if err != nil {
		t.Fatalf("read input: %v", err)
	}
	want, err := os.ReadFile(filepath.Join("testdata", "sample.out"))
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	out, errOut, r, err := runScript(t, string(in))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != string(want) {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", out, want)
	}
	if errOut != "" {
		t.Fatalf("unexpected stderr: %q", errOut)
	}
	stats := r.Stats()
	if stats.Moves != 7 || stats.Ignored != 1 || stats.Errors != 0 || stats.Commands != 9 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestRunReportsErrorsAndContinues(t *testing.T) {
	script := strings.Join([]string{
		"5",
		"move 2 onto 0",
		"move 99 onto 1",
		"move 1 onto 1",
		"move x onto 1",
		"fly 1 to 2",
		"",
		"print",
		"pile 0 over 3",
		"quit",
		"move 4 onto 3",
	}, "\n")
	out, errOut, r, err := runScript(t, script)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	want := "0: 0 2\n1: 1\n2:\n3: 3\n4: 4\n" +
		"0:\n1: 1\n2:\n3: 3 0 2\n4: 4\n"
	if out != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", out, want)
	}
	wantErr := "Block not found: 99\n" +
		"Cannot move a block onto/over itself\n" +
		"Invalid block id: x\n" +
		"Invalid command: fly 1 to 2\n"
	if errOut != wantErr {
		t.Fatalf("unexpected stderr:\n%s\nwant:\n%s", errOut, wantErr)
	}
	if got := r.Stats().Errors; got != 4 {
		t.Fatalf("expected 4 errors, got %d", got)
	}
}

func TestRunPrintsTableAtEndOfInput(t *testing.T) {
	out, _, _, err := runScript(t, "3\nmove 0 over 2")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "0:\n1: 1\n2: 2 0\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRunStrictStopsAtFirstError(t *testing.T) {
	out, errOut, _, err := runScript(t, "3\nmove 7 onto 1\nquit\n", WithStrict(true))
	var notFound *table.BlockNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected BlockNotFoundError, got %v", err)
	}
	if !strings.Contains(err.Error(), "line 1") {
		t.Fatalf("expected line number in error, got %v", err)
	}
	if out != "" {
		t.Fatalf("strict run must stop before quit prints, got %q", out)
	}
	if errOut != "Block not found: 7\n" {
		t.Fatalf("unexpected stderr %q", errOut)
	}
}

func TestRunRejectsBadSize(t *testing.T) {
	for _, script := range []string{"0\nquit\n", "many\n", ""} {
		_, _, _, err := runScript(t, script)
		if err == nil {
			t.Fatalf("expected error for script %q", script)
		}
	}
	_, _, _, err := runScript(t, "0\n")
	if !errors.Is(err, command.ErrBadSize) {
		t.Fatalf("expected ErrBadSize, got %v", err)
	}
}

func TestRunWithPreparedTable(t *testing.T) {
	tbl, err := table.New(2)
	if err != nil {
		t.Fatalf("new table: %v", err)
	}
	out, _, r, err := runScript(t, "pile 1 onto 0\nquit\n", WithTable(tbl), WithVerify(true))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "0: 0 1\n1:\n" {
		t.Fatalf("unexpected output %q", out)
	}
	if r.Table() != tbl {
		t.Fatalf("expected robot to drive the prepared table")
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := New()
	if err := r.Run(ctx, strings.NewReader("3\nquit\n")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestExecRequiresTable(t *testing.T) {
	if _, err := New().Exec("print"); err == nil {
		t.Fatalf("expected error without a table")
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{err: &table.BlockNotFoundError{ID: 12}, want: "Block not found: 12"},
		{err: command.ErrImpossibleMove, want: "Cannot move a block onto/over itself"},
		{err: &command.BadCommandError{Input: "dance "}, want: "Invalid command: dance"},
		{err: &command.BadBlockIDError{Value: "-1"}, want: "Invalid block id: -1"},
		{err: errors.New("boom"), want: "Error: boom"},
	}
	for _, tt := range tests {
		if got := Describe(tt.err); got != tt.want {
			t.Fatalf("Describe(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestRunLogsTableSize(t *testing.T) {
	tbl, err := table.New(3)
	if err != nil {
		t.Fatalf("new table: %v", err)
	}
	cases := []struct {
		name   string
		script string
		opts   []Option
		want   string
	}{
		{name: "size line", script: "6\nquit\n", want: `"size": 6`},
		{name: "prepared table", script: "quit\n", opts: []Option{WithTable(tbl)}, want: `"size": 3`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var logs bytes.Buffer
			logger, err := logging.New("debug", &logs)
			if err != nil {
				t.Fatalf("logger: %v", err)
			}
			opts := append([]Option{WithLogger(logger)}, tc.opts...)
			if _, _, _, err := runScript(t, tc.script, opts...); err != nil {
				t.Fatalf("run: %v", err)
			}
			if !strings.Contains(logs.String(), "table ready") || !strings.Contains(logs.String(), tc.want) {
				t.Fatalf("expected table ready log with %s, got %q", tc.want, logs.String())
			}
		})
	}
}
