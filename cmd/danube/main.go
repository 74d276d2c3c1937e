package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"danube/internal/project"
	"danube/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "danube",
	Short: "Danube front-end and scope graph tools",
	Long:  `Danube tokenizes, parses and collects Danube module trees into a scope graph, and resolves paths against it`,

	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		applyColorFlag(cmd)
		cleanup, err := setupProfiling(cmd)
		if err != nil {
			return err
		}
		profileCleanup = cleanup
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		finish(cmd, false)
	},
}

// errDiagnostics is returned after diagnostics were printed; main exits 1
// without printing it again.
var errDiagnostics = errors.New("diagnostics reported errors")

func init() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version
	rootCmd.SilenceErrors = true

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(scopesCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	addGlobalFlags(rootCmd)
}

// addGlobalFlags registers the persistent flags every subcommand reads.
func addGlobalFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.Int("max-diagnostics", project.DefaultMaxDiagnostics, "maximum number of diagnostics to keep")
	flags.Int("jobs", 0, "max parallel workers (0=auto)")
	flags.String("path-mode", "auto", "how file paths are shown (auto|absolute|relative|basename)")

	flags.String("trace", "", "trace output file (\"-\" for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	flags.String("trace-format", "auto", "trace encoding (auto|text|ndjson)")
	flags.Int("trace-ring-size", 4096, "events kept by the ring tracer")

	flags.String("cpu-profile", "", "write a CPU profile to file")
	flags.String("mem-profile", "", "write a heap profile to file on exit")
	flags.String("runtime-trace", "", "write a Go runtime trace to file")
}

// main executes the root command. Any error exits with status 1; errors
// other than reported diagnostics are printed first.
func main() {
	err := rootCmd.Execute()
	finish(rootCmd, err != nil)
	if err != nil {
		if !errors.Is(err, errDiagnostics) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor reports whether output to f should be colored.
func useColor(cmd *cobra.Command, f *os.File) bool {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false
	}
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(f)
	}
}

// applyColorFlag makes fatih/color honor --color for every writer.
func applyColorFlag(cmd *cobra.Command) {
	color.NoColor = !useColor(cmd, os.Stdout)
}

func quiet(cmd *cobra.Command) bool {
	q, err := cmd.Root().PersistentFlags().GetBool("quiet")
	return err == nil && q
}
