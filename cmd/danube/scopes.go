package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"danube/internal/ui"
)

var scopesCmd = &cobra.Command{
	Use:   "scopes [flags] <file.dn|project-dir>",
	Short: "Print the scope graph of a module tree",
	Args:  graphArgs(0),
	RunE:  runScopes,
}

func init() {
	scopesCmd.Flags().Int("depth", 0, "print scopes at most this deep below the root (0=all)")
	scopesCmd.Flags().Int("width", 32, "truncate names wider than this (0=never)")
	scopesCmd.Flags().Bool("prelude", false, "start from the prelude instead of the crate root")
	addGraphFlags(scopesCmd)
}

// graphArgs accepts extra positional arguments after the source path; the
// path may be omitted when --snapshot is given.
func graphArgs(extra int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		snap, _ := cmd.Flags().GetString("snapshot")
		want := extra + 1
		if snap != "" {
			want = extra
		}
		if len(args) != want {
			return fmt.Errorf("accepts %d arg(s), received %d", want, len(args))
		}
		return nil
	}
}

// sourceArg is the source path argument, or "" with --snapshot.
func sourceArg(cmd *cobra.Command, args []string) string {
	if snap, _ := cmd.Flags().GetString("snapshot"); snap != "" {
		return ""
	}
	return args[0]
}

func runScopes(cmd *cobra.Command, args []string) error {
	depth, err := cmd.Flags().GetInt("depth")
	if err != nil {
		return fmt.Errorf("failed to get depth flag: %w", err)
	}
	width, err := cmd.Flags().GetInt("width")
	if err != nil {
		return fmt.Errorf("failed to get width flag: %w", err)
	}
	fromPrelude, err := cmd.Flags().GetBool("prelude")
	if err != nil {
		return fmt.Errorf("failed to get prelude flag: %w", err)
	}

	g, err := loadGraph(cmd, sourceArg(cmd, args))
	if err != nil {
		return err
	}
	root := g.root
	if fromPrelude {
		root = g.env.Scope(root).Parent
	}
	if err := ui.RenderScopes(cmd.OutOrStdout(), g.env, g.strs, root, ui.ScopeOptions{
		Color:     useColor(cmd, os.Stdout),
		NameWidth: width,
		Locate:    g.locate(),
		Depth:     depth,
	}); err != nil {
		return err
	}
	g.printTimings(cmd)
	return nil
}
