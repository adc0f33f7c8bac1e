// internal/cli/root.go
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/law-makers/legisinfo/internal/app"
	"github.com/law-makers/legisinfo/internal/config"
	"github.com/law-makers/legisinfo/internal/ui"
)

// Version is stamped at build time
var Version = "0.1.0"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "legisinfo",
	Short: "Parliamentary bill records as flat JSON",
	Long: `Legisinfo fetches a bill from parl.ca/legisinfo, extracts its number, type,
status, sponsor and last update, and serves the result as JSON.

Configuration is read from an optional file (--config), LEGISINFO_* environment
variables and flags, in increasing priority.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command with ctx; it is called once by main.main().
func Execute(ctx context.Context) int {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", ui.Error("Error:"), err)
		return 1
	}
	return 0
}

func init() {
	config.RegisterFlags(rootCmd)
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		renderHelp(os.Stdout, cmd, true)
	})
	rootCmd.SetUsageFunc(func(cmd *cobra.Command) error {
		renderHelp(os.Stderr, cmd, false)
		return nil
	})

	// The application is built lazily so -h and --version never touch config
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if GetApp(cmd) != nil {
			return nil
		}

		cfg, err := config.Load(cmd)
		if err != nil {
			return err
		}
		// One-shot commands only report problems unless -v is given
		if cmd.Name() != serveCmd.Name() && cfg.LogLevel == config.DefaultLogLevel {
			cfg.LogLevel = "warn"
		}

		a, err := app.New(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		SetApp(cmd, a)
		log.Debug().Str("command", cmd.Name()).Msg("Configuration loaded")
		return nil
	}

	rootCmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		a := GetApp(cmd)
		if a == nil {
			return nil
		}
		ctx, cancel := context.WithTimeout(context.Background(), a.Config.ShutdownTimeout)
		defer cancel()
		return a.Close(ctx)
	}
}

// renderHelp prints a colorized help page; full adds the long description and examples
func renderHelp(w io.Writer, cmd *cobra.Command, full bool) {
	section := func(title string) {
		fmt.Fprintf(w, "\n%s\n", ui.Heading.Paint(title))
	}

	if full {
		fmt.Fprintf(w, "\n%s\n", ui.Strong.Paint(ui.Command.Paint(strings.ToUpper(cmd.Name()))))
		if cmd.Short != "" {
			fmt.Fprintln(w, cmd.Short)
		}
		if cmd.Long != "" && cmd.Long != cmd.Short {
			fmt.Fprintf(w, "\n%s\n", cmd.Long)
		}
	}

	section("Usage")
	if cmd.Runnable() {
		fmt.Fprintf(w, "  %s\n", ui.Command.Paint(cmd.UseLine()))
	}
	if cmd.HasAvailableSubCommands() {
		fmt.Fprintf(w, "  %s %s %s\n",
			ui.Command.Paint(cmd.CommandPath()),
			ui.Placeholder.Paint("<command>"),
			ui.Muted.Paint("[flags]"))
	}

	if full && cmd.HasExample() {
		section("Examples")
		for _, line := range strings.Split(cmd.Example, "\n") {
			line = strings.TrimSpace(line)
			switch {
			case line == "":
				continue
			case strings.HasPrefix(line, "#"):
				fmt.Fprintf(w, "  %s\n", ui.Muted.Paint(line))
			default:
				fmt.Fprintf(w, "  %s\n", ui.Good.Paint("$ "+line))
			}
		}
	}

	if cmd.HasAvailableSubCommands() {
		section("Commands")
		var names []string
		var shorts []string
		for _, c := range cmd.Commands() {
			if c.IsAvailableCommand() && c.Name() != "help" {
				names = append(names, c.Name())
				shorts = append(shorts, c.Short)
			}
		}
		printColumns(w, names, shorts, ui.Command, 0)
	}

	if cmd.HasAvailableLocalFlags() {
		section("Flags")
		printFlags(w, cmd.LocalFlags().FlagUsages())
	}
	if full && cmd.HasAvailableInheritedFlags() {
		section("Global Flags")
		printFlags(w, cmd.InheritedFlags().FlagUsages())
	}

	fmt.Fprintf(w, "\n%s\n\n", ui.Muted.Paint(fmt.Sprintf("Use \"%s --help\" for more information.", cmd.CommandPath())))
}

// printFlags re-aligns pflag's usage lines into two colored columns
func printFlags(w io.Writer, usages string) {
	var names, descs []string
	for _, line := range strings.Split(usages, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		parts := strings.SplitN(trimmed, "  ", 2)
		if !strings.HasPrefix(trimmed, "-") || len(parts) != 2 {
			// continuation of the previous description
			if len(descs) > 0 {
				descs[len(descs)-1] += " " + trimmed
			}
			continue
		}
		names = append(names, strings.TrimSpace(parts[0]))
		descs = append(descs, strings.TrimSpace(parts[1]))
	}
	printColumns(w, names, descs, ui.Good, 28)
}

// printColumns aligns by display width so wide runes in names stay aligned
func printColumns(w io.Writer, left, right []string, style ui.Style, minWidth int) {
	width := minWidth
	for _, l := range left {
		width = max(width, runewidth.StringWidth(l))
	}
	for i, l := range left {
		padding := strings.Repeat(" ", width-runewidth.StringWidth(l)+2)
		fmt.Fprintf(w, "  %s%s%s\n", style.Paint(l), padding, ui.Muted.Paint(right[i]))
	}
}
