// check.go implements 'roblocks check', which replays scripts and diffs the printed tables against expected transcripts.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/roblocks/internal/check"
	"github.com/example/roblocks/internal/config"
	"github.com/spf13/cobra"
)

var errCheckFailed = errors.New("check failed")

func newCheckCommand(opts *config.Options) *cobra.Command {
	var expectPath string
	cmd := &cobra.Command{
		Use:   "check SCRIPT...",
		Short: "Run scripts and compare the printed tables with expected output",
		Long: strings.TrimSpace(`
Runs each SCRIPT and compares everything it prints with SCRIPT's expected
transcript: the file with the same name and a .out extension, or --expect
when a single script is given.
`),
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("expected at least one script")
			}
			if expectPath != "" && len(args) > 1 {
				return fmt.Errorf("--expect can only be used with a single script")
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, script := range args {
				want := expectPath
				if want == "" {
					want = strings.TrimSuffix(script, filepath.Ext(script)) + ".out"
				}
				res, err := checkScript(cmd, opts, script, want)
				if err != nil {
					return err
				}
				if res.OK() {
					fmt.Fprintf(cmd.OutOrStdout(), "ok    %s\n", script)
					continue
				}
				failed++
				fmt.Fprintf(cmd.OutOrStdout(), "FAIL  %s\n%s", script, res.Diff)
			}
			if failed > 0 {
				return fmt.Errorf("%w: %d of %d scripts differ", errCheckFailed, failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&expectPath, "expect", "", "Expected transcript (defaults to SCRIPT with a .out extension)")
	decorateCommandHelp(cmd, "")
	return cmd
}

func checkScript(cmd *cobra.Command, opts *config.Options, script, expectPath string) (check.Result, error) {
	want, err := os.ReadFile(expectPath)
	if err != nil {
		return check.Result{}, fmt.Errorf("read expected output: %w", err)
	}
	in, closeFn, err := openScript(cmd, script)
	if err != nil {
		return check.Result{}, err
	}
	defer closeFn()

	var got bytes.Buffer
	r, err := newRobot(cmd, opts, &got, false)
	if err != nil {
		return check.Result{}, err
	}
	if err := r.Run(cmd.Context(), in); err != nil {
		return check.Result{}, fmt.Errorf("%s: %w", script, err)
	}
	return check.Compare(script, string(want), got.String())
}
