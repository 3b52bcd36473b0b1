// File: internal/config/config.go
// Brief: Internal config package implementation for 'config'.

// Package config defines the runtime options shared by roblocks commands,
// translating Cobra/Viper flag values into a typed struct the robot consumes.
package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/example/roblocks/internal/logging"
	"github.com/example/roblocks/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Options holds all CLI configuration for a robot run.
type Options struct {
	LogLevel  string
	ColorMode string
	Output    string
	Size      int
	Strict    bool
	Features  []string
}

// NewOptions returns Options with defaults applied.
func NewOptions() *Options {
	return &Options{
		LogLevel:  "info",
		ColorMode: "auto",
		Output:    ui.FormatText,
	}
}

// AddFlags binds configuration flags as persistent flags of cmd so subcommands share them.
func (o *Options) AddFlags(cmd *cobra.Command) {
	o.BindFlags(cmd.PersistentFlags())
}

// BindFlags attaches run flags to fs.
func (o *Options) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.LogLevel, "log-level", o.LogLevel, "Log level for diagnostics on stderr (debug, info, warn, error)")
	fs.StringVarP(&o.ColorMode, "color", "m", o.ColorMode, "Colorize table output. 'auto': only on a terminal, 'always', 'never'")
	fs.StringVarP(&o.Output, "output", "o", o.Output, "Table output format: "+strings.Join(ui.Formats(), ", "))
	fs.IntVar(&o.Size, "size", o.Size, "Number of blocks; when set the first input line is read as a command instead of the table size")
	fs.BoolVar(&o.Strict, "strict", o.Strict, "Stop at the first command that fails instead of reporting it and continuing")
	fs.StringSliceVar(&o.Features, "feature", o.Features, "Enable experimental features (repeat or pass comma-separated names)")
}

// Validate normalizes values and rejects unknown settings.
func (o *Options) Validate() error {
	o.LogLevel = strings.ToLower(strings.TrimSpace(o.LogLevel))
	if _, _, err := logging.ParseLevel(o.LogLevel); err != nil {
		return err
	}
	switch mode := strings.ToLower(strings.TrimSpace(o.ColorMode)); mode {
	case "", "auto":
		o.ColorMode = "auto"
	case "always", "never":
		o.ColorMode = mode
	default:
		return fmt.Errorf("invalid --color value %q (allowed: auto, always, never)", o.ColorMode)
	}
	o.Output = strings.ToLower(strings.TrimSpace(o.Output))
	if o.Output == "" {
		o.Output = ui.FormatText
	}
	if !slices.Contains(ui.Formats(), o.Output) {
		return fmt.Errorf("invalid --output value %q (allowed: %s)", o.Output, strings.Join(ui.Formats(), ", "))
	}
	if o.Size < 0 {
		return fmt.Errorf("--size cannot be negative")
	}
	return nil
}
