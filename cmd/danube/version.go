package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"danube/internal/diagfmt"
	"danube/internal/version"
)

type buildInfo struct {
	Tool      string `json:"tool" yaml:"tool"`
	Version   string `json:"version" yaml:"version"`
	GitCommit string `json:"git_commit,omitempty" yaml:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty" yaml:"build_date,omitempty"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show danube build information",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().Bool("full", false, "include commit and build date")
	versionCmd.Flags().String("format", "pretty", "output format (pretty|json|yaml)")
}

func runVersion(cmd *cobra.Command, _ []string) error {
	full, _ := cmd.Flags().GetBool("full")
	format, _ := cmd.Flags().GetString("format")
	out := cmd.OutOrStdout()

	info := buildInfo{Tool: "danube", Version: version.Version}
	if full {
		info.GitCommit = orUnknown(version.GitCommit)
		info.BuildDate = orUnknown(version.BuildDate)
	}

	switch strings.ToLower(format) {
	case "pretty":
		line := "danube " + version.Colored()
		if full {
			line = version.String()
		}
		_, err := fmt.Fprintln(out, line)
		return err
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	case "yaml":
		return diagfmt.EncodeYAML(out, info)
	}
	return fmt.Errorf("unsupported format %q (must be pretty, json or yaml)", format)
}

func orUnknown(s string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return "unknown"
}
