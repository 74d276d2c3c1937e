package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"danube/internal/diag"
	"danube/internal/diagfmt"
	"danube/internal/driver"
	"danube/internal/source"
	"danube/internal/token"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file.dn|directory>",
	Short: "Tokenize a danube source file or every file in a directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

// sourceTool is the setup shared by the single-file commands: tracing and
// settings without a manifest, and a stderr reporter.
func sourceTool(cmd *cobra.Command) (settings, func(*diag.Bag, *source.FileSet) bool, error) {
	if err := setupTracing(cmd, nil); err != nil {
		return settings{}, nil, err
	}
	s, err := loadSettings(cmd, nil)
	if err != nil {
		return settings{}, nil, err
	}
	opts := diagfmt.PrettyOpts{Color: useColor(cmd, os.Stderr), Context: 2, PathMode: s.pathMode}
	report := func(bag *diag.Bag, fs *source.FileSet) bool {
		if bag.Len() > 0 {
			diagfmt.Pretty(os.Stderr, bag, fs, opts)
		}
		return bag.HasErrors()
	}
	return s, report, nil
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	var emit func(io.Writer, []token.Token, *source.FileSet) error
	switch format {
	case "pretty":
		emit = diagfmt.FormatTokensPretty
	case "json":
		emit = func(w io.Writer, toks []token.Token, _ *source.FileSet) error {
			return diagfmt.FormatTokensJSON(w, toks)
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	s, report, err := sourceTool(cmd)
	if err != nil {
		return err
	}
	st, err := os.Stat(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	failed := false
	if !st.IsDir() {
		res, err := driver.Tokenize(args[0], s.maxDiagnostics)
		if err != nil {
			return fmt.Errorf("tokenization failed: %w", err)
		}
		failed = report(res.Bag, res.FileSet)
		if err := emit(out, res.Tokens, res.FileSet); err != nil {
			return err
		}
	} else {
		fs, results, err := driver.TokenizeDir(cmd.Context(), args[0], s.maxDiagnostics, s.jobs)
		if err != nil {
			return fmt.Errorf("tokenization failed: %w", err)
		}
		for _, r := range results {
			failed = report(r.Bag, fs) || failed
			if format == "pretty" {
				fmt.Fprintf(out, "== %s ==\n", r.Path)
			}
			if err := emit(out, r.Tokens, fs); err != nil {
				return err
			}
		}
	}
	if failed {
		return errDiagnostics
	}
	return nil
}
