package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"danube/internal/diagfmt"
	"danube/internal/driver"
	"danube/internal/observ"
	"danube/internal/project"
)

// settings are the effective options of one run: flags first, then the
// [build] section of the manifest, then defaults.
type settings struct {
	maxDiagnostics int
	jobs           int
	pathMode       diagfmt.PathMode
	timings        bool
}

func loadSettings(cmd *cobra.Command, m *project.Manifest) (settings, error) {
	flags := cmd.Root().PersistentFlags()
	var s settings
	var err error
	if s.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return s, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if s.jobs, err = flags.GetInt("jobs"); err != nil {
		return s, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if s.timings, err = flags.GetBool("timings"); err != nil {
		return s, fmt.Errorf("failed to get timings flag: %w", err)
	}
	modeStr, err := flags.GetString("path-mode")
	if err != nil {
		return s, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	mode, ok := diagfmt.ParsePathMode(modeStr)
	if !ok {
		return s, fmt.Errorf("unknown path mode: %s", modeStr)
	}
	s.pathMode = mode

	if m != nil {
		if !flags.Changed("max-diagnostics") && m.Config.Build.MaxDiagnostics > 0 {
			s.maxDiagnostics = m.Config.Build.MaxDiagnostics
		}
		if !flags.Changed("jobs") && m.Config.Build.Jobs > 0 {
			s.jobs = m.Config.Build.Jobs
		}
	}
	return s, nil
}

// analysis bundles what every tree-level command needs.
type analysis struct {
	settings settings
	timer    *observ.Timer
	result   *driver.Result
}

// analyzePath resolves path, sets up tracing for it and runs the driver.
func analyzePath(cmd *cobra.Command, path string, skipCheck bool) (*analysis, error) {
	in, err := driver.ResolveInput(path)
	if err != nil {
		return nil, err
	}
	if err := setupTracing(cmd, in.Manifest); err != nil {
		return nil, err
	}
	s, err := loadSettings(cmd, in.Manifest)
	if err != nil {
		return nil, err
	}
	a := &analysis{settings: s}
	if s.timings {
		a.timer = observ.NewTimer()
	}
	a.result, err = driver.Analyze(cmd.Context(), in, driver.Options{
		MaxDiagnostics: s.maxDiagnostics,
		Jobs:           s.jobs,
		SkipCheck:      skipCheck,
		Timer:          a.timer,
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// printTimings writes the phase summary to out when --timings is set.
func (a *analysis) printTimings(cmd *cobra.Command, out io.Writer) {
	if a.timer == nil || quiet(cmd) {
		return
	}
	fmt.Fprint(out, a.timer.Summary())
}
