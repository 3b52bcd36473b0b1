// help_template.go gives every roblocks command the same compact help layout.
package main

import (
	"io"
	"strings"

	"github.com/example/roblocks/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	maxHelpWidth = 100
	minHelpWidth = 60
)

const (
	localFlagsHeadingKey = "localFlagsHeading"
	localUsageKey        = "localFlagUsages"
	inheritedUsageKey    = "inheritedFlagUsages"
)

const commandHelpTemplate = `{{with or .Long .Short}}{{. | trimTrailingWhitespaces}}{{end}}

Usage:
  {{.UseLine}}
{{if .HasExample}}
Examples:
{{.Example}}
{{end}}{{if .HasAvailableSubCommands}}
Subcommands:
{{range .Commands}}{{if (and .IsAvailableCommand (ne .Name "help"))}}  {{rpad .Name .NamePadding}} {{.Short}}
{{end}}{{end}}{{end}}
{{index .Annotations "localFlagsHeading"}}:
{{with index .Annotations "localFlagUsages"}}{{.}}{{else}}  (none){{end}}
{{with index .Annotations "inheritedFlagUsages"}}
Global Flags:
{{.}}
{{end}}`

var titleCaser = cases.Title(language.English)

func decorateCommandHelp(cmd *cobra.Command, heading string) {
	if strings.TrimSpace(heading) == "" {
		heading = titleCaser.String(cmd.Name()) + " Flags"
	}
	cmd.SetHelpTemplate(commandHelpTemplate)
	defaultHelp := cmd.HelpFunc()
	cmd.SetHelpFunc(func(c *cobra.Command, args []string) {
		if c.Annotations == nil {
			c.Annotations = make(map[string]string)
		}
		c.Annotations[localFlagsHeadingKey] = heading
		width := helpWidth(c.OutOrStdout())
		setAnnotation(c, localUsageKey, formatFlagUsages(c.LocalFlags(), width))
		setAnnotation(c, inheritedUsageKey, formatFlagUsages(c.InheritedFlags(), width))
		defaultHelp(c, args)
	})
}

func setAnnotation(cmd *cobra.Command, key, value string) {
	if value == "" {
		delete(cmd.Annotations, key)
		return
	}
	cmd.Annotations[key] = value
}

// helpWidth wraps flag usages to the terminal, clamped to a readable range.
func helpWidth(w io.Writer) int {
	cols, ok := ui.TerminalWidth(w)
	if !ok || cols > maxHelpWidth {
		return maxHelpWidth
	}
	return max(cols, minHelpWidth)
}

func formatFlagUsages(fs *pflag.FlagSet, width int) string {
	if fs == nil || !fs.HasAvailableFlags() {
		return ""
	}
	usages := fs.FlagUsagesWrapped(width)
	usages = strings.ReplaceAll(usages, "\t", "  ")
	return strings.TrimRight(usages, "\n")
}
