// main.go bootstraps roblocks: it builds the root Cobra command and executes it with a signal-aware context.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/example/roblocks/internal/command"
	"github.com/example/roblocks/internal/config"
	"github.com/example/roblocks/internal/featureflags"
	"github.com/example/roblocks/internal/logging"
	"github.com/example/roblocks/internal/robot"
	"github.com/example/roblocks/internal/table"
	"github.com/example/roblocks/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rootCmd := newRootCommand()
	err := rootCmd.ExecuteContext(ctx)
	handleError(os.Stderr, err)
	if err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := config.NewOptions()
	v := newViper()
	cmd := &cobra.Command{
		Use:   "roblocks [SCRIPT]",
		Short: "Drive a robot arm that stacks numbered blocks",
		Long: strings.TrimSpace(`
roblocks reads a table size followed by one command per line and prints the
resulting piles. SCRIPT defaults to standard input ("-" also means stdin).

Commands:
  move <a> onto <b>   put a on b after returning blocks above both to their slots
  move <a> over <b>   put a on top of b's pile after returning blocks above a
  pile <a> onto <b>   put a and everything above it on b after clearing b
  pile <a> over <b>   put a and everything above it on top of b's pile
  print               print the table
  quit                print the table and stop
`),
		Example: `  # Run a script
  roblocks commands.txt

  # Interactive session on a 10-block table
  roblocks --size 10`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := applyViper(v, cmd.Flags()); err != nil {
				return err
			}
			flags, err := featureflags.Resolve(opts.Features, featureflags.EnabledFromEnv(nil))
			if err != nil {
				return err
			}
			cmd.SetContext(featureflags.ContextWithFlags(cmd.Context(), flags))
			return opts.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			in, closeFn, err := openScript(cmd, path)
			if err != nil {
				return err
			}
			defer closeFn()
			r, err := newRobot(cmd, opts, cmd.OutOrStdout(), ui.ResolveColor(opts.ColorMode, cmd.OutOrStdout()))
			if err != nil {
				return err
			}
			return r.Run(cmd.Context(), in)
		},
	}
	opts.AddFlags(cmd)
	cmd.AddCommand(newCheckCommand(opts), newVersionCommand())
	decorateCommandHelp(cmd, "Robot Flags")
	return cmd
}

// newRobot wires logging, printing and feature flags around a robot writing tables to out.
func newRobot(cmd *cobra.Command, opts *config.Options, out io.Writer, colorize bool) (*robot.Robot, error) {
	logger, err := logging.New(opts.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	printer, err := ui.NewPrinter(opts.Output, colorize)
	if err != nil {
		return nil, err
	}
	flags := featureflags.FromContext(cmd.Context())
	robotOpts := []robot.Option{
		robot.WithOutput(out, cmd.ErrOrStderr()),
		robot.WithLogger(logger),
		robot.WithPrinter(printer),
		robot.WithStrict(opts.Strict),
		robot.WithVerify(flags.Enabled(featureflags.FeatureVerifyInvariants)),
	}
	if opts.Size > 0 {
		tbl, err := table.New(opts.Size)
		if err != nil {
			return nil, err
		}
		robotOpts = append(robotOpts, robot.WithTable(tbl))
	}
	if names := flags.EnabledNames(); len(names) > 0 {
		logger.V(1).Info("feature flags enabled", "features", names)
	}
	return robot.New(robotOpts...), nil
}

func openScript(cmd *cobra.Command, path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open script: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.SetEnvPrefix("ROBLOCKS")
	v.AutomaticEnv()
	configureConfigFile(v, os.Getenv("ROBLOCKS_CONFIG"))
	return v
}

// applyViper fills every flag the user did not set from the environment or the config file.
func applyViper(v *viper.Viper, fs *pflag.FlagSet) error {
	if err := v.BindPFlags(fs); err != nil {
		return err
	}
	if err := readConfigFile(v, os.Getenv("ROBLOCKS_CONFIG") != ""); err != nil {
		return err
	}
	var setErr error
	fs.VisitAll(func(f *pflag.Flag) {
		if setErr != nil || f.Changed || !v.IsSet(f.Name) {
			return
		}
		var val string
		if f.Value.Type() == "stringSlice" {
			val = strings.Join(v.GetStringSlice(f.Name), ",")
		} else {
			val = fmt.Sprintf("%v", v.Get(f.Name))
		}
		if val == "" {
			return
		}
		if err := f.Value.Set(val); err != nil {
			setErr = fmt.Errorf("config value for --%s: %w", f.Name, err)
		}
	})
	return setErr
}

func configureConfigFile(v *viper.Viper, explicitPath string) {
	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
		return
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, dir := range configSearchDirs() {
		v.AddConfigPath(dir)
	}
}

func readConfigFile(v *viper.Viper, strict bool) error {
	if err := v.ReadInConfig(); err != nil {
		var cfgErr viper.ConfigFileNotFoundError
		if errors.As(err, &cfgErr) && !strict {
			return nil
		}
		return err
	}
	return nil
}

func configSearchDirs() []string {
	added := make(map[string]struct{})
	var dirs []string
	add := func(path string) {
		if path == "" {
			return
		}
		if _, ok := added[path]; ok {
			return
		}
		added[path] = struct{}{}
		dirs = append(dirs, path)
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		add(filepath.Join(xdg, "roblocks"))
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		add(filepath.Join(home, ".config", "roblocks"))
		add(filepath.Join(home, ".roblocks"))
	}
	return dirs
}

func handleError(w io.Writer, err error) {
	if err == nil || errors.Is(err, pflag.ErrHelp) {
		return
	}
	message := err.Error()
	switch {
	case errors.Is(err, context.Canceled):
		message = "interrupted"
	case errors.Is(err, command.ErrBadSize):
		message = fmt.Sprintf("%s\nHint: the first input line must be a positive block count, or pass --size.", err)
	}
	fmt.Fprintf(w, "Error: %s\n", message)
}
