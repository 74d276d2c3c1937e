package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"danube/internal/diag"
	"danube/internal/diagfmt"
	"danube/internal/driver"
	"danube/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.dn|project-dir>",
	Short: "Collect a module tree and report unresolved or ambiguous paths",
	Long: `Check loads the root module and every module it declares, collects all
definitions into one scope graph and resolves every path in type position`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|short|json|yaml)")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	checkCmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	checkCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	checkCmd.Flags().Bool("stats", false, "print path resolution counters")
}

type diagOutput struct {
	format    string
	withNotes bool
	suggest   bool
}

func runCheck(cmd *cobra.Command, args []string) error {
	var out diagOutput
	var err error
	if out.format, err = cmd.Flags().GetString("format"); err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if out.withNotes, err = cmd.Flags().GetBool("with-notes"); err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	if out.suggest, err = cmd.Flags().GetBool("suggest"); err != nil {
		return fmt.Errorf("failed to get suggest flag: %w", err)
	}
	noWarnings, err := cmd.Flags().GetBool("no-warnings")
	if err != nil {
		return fmt.Errorf("failed to get no-warnings flag: %w", err)
	}
	warningsAsErrors, err := cmd.Flags().GetBool("warnings-as-errors")
	if err != nil {
		return fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	if noWarnings && warningsAsErrors {
		return fmt.Errorf("no-warnings and warnings-as-errors flags cannot be used together")
	}
	showStats, err := cmd.Flags().GetBool("stats")
	if err != nil {
		return fmt.Errorf("failed to get stats flag: %w", err)
	}

	a, err := analyzePath(cmd, args[0], false)
	if err != nil {
		return err
	}
	res := a.result

	bag := res.Bag
	if noWarnings {
		bag = withoutWarnings(bag)
	}
	if err := printDiagnostics(cmd, bag, res.FileSet, a.settings, out); err != nil {
		return err
	}
	if showStats && !quiet(cmd) {
		printCheckStats(cmd, res.Check)
	}
	a.printTimings(cmd, os.Stderr)

	if bag.HasErrors() || (warningsAsErrors && bag.HasWarnings()) {
		return errDiagnostics
	}
	return nil
}

// printDiagnostics writes bag to stdout in the requested format.
func printDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet, s settings, out diagOutput) error {
	w := cmd.OutOrStdout()
	jsonOpts := diagfmt.JSONOpts{
		IncludePositions: true,
		PathMode:         s.pathMode,
		IncludeNotes:     out.withNotes,
		IncludeFixes:     out.suggest,
	}
	switch out.format {
	case "pretty":
		diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stdout),
			Context:   2,
			PathMode:  s.pathMode,
			ShowNotes: out.withNotes,
			ShowFixes: out.suggest,
		})
		return nil
	case "short":
		return diagfmt.Short(w, bag, fs, out.withNotes)
	case "json":
		return diagfmt.JSON(w, bag, fs, jsonOpts)
	case "yaml":
		return diagfmt.YAML(w, bag, fs, jsonOpts)
	default:
		return fmt.Errorf("unknown format: %s", out.format)
	}
}

func withoutWarnings(bag *diag.Bag) *diag.Bag {
	out := diag.NewBag(int(bag.Cap()))
	for _, d := range bag.Items() {
		if d.Severity != diag.SevWarning {
			out.Add(d)
		}
	}
	return out
}

func printCheckStats(cmd *cobra.Command, st driver.CheckStats) {
	fmt.Fprintf(cmd.ErrOrStderr(), "paths: %d resolved, %d skipped, %d unresolved, %d ambiguous (of %d)\n",
		st.Resolved, st.Skipped, st.Unresolved, st.Ambiguous, st.Paths)
}
