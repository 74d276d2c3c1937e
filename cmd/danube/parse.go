package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"danube/internal/diagfmt"
	"danube/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.dn",
	Short: "Parse a danube source file and print its declarations",
	Long:  `Parse builds the declaration tree of one file without following its module declarations`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	s, report, err := sourceTool(cmd)
	if err != nil {
		return err
	}
	res, err := driver.Parse(args[0], s.maxDiagnostics)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	failed := report(res.Bag, res.FileSet)

	out := cmd.OutOrStdout()
	if format == "json" {
		err = diagfmt.FormatASTJSON(out, res.Builder, res.FileID, res.Strings)
	} else {
		err = diagfmt.FormatASTPretty(out, res.Builder, res.FileID, res.Strings, res.FileSet)
	}
	switch {
	case err != nil:
		return err
	case failed:
		return errDiagnostics
	}
	return nil
}
