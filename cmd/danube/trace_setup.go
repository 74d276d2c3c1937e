package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"danube/internal/project"
	"danube/internal/trace"
)

var (
	tracer         trace.Tracer = trace.Nop
	profileCleanup              = func() {}
	finished       bool
)

// setupTracing inspects trace-related flags and attaches a tracer to the
// command context. Values from the [trace] section of m apply when the
// matching flag was not given.
func setupTracing(cmd *cobra.Command, m *project.Manifest) error {
	root := cmd.Root()
	flags := root.PersistentFlags()

	// Read trace configuration from flags
	traceOutput, err := flags.GetString("trace")
	if err != nil {
		return fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := flags.GetString("trace-level")
	if err != nil {
		return fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	modeStr, err := flags.GetString("trace-mode")
	if err != nil {
		return fmt.Errorf("failed to get trace-mode flag: %w", err)
	}
	formatStr, err := flags.GetString("trace-format")
	if err != nil {
		return fmt.Errorf("failed to get trace-format flag: %w", err)
	}
	ringSize, err := flags.GetInt("trace-ring-size")
	if err != nil {
		return fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}

	if m != nil {
		if !flags.Changed("trace-level") && m.Config.Trace.Level != "" {
			levelStr = m.Config.Trace.Level
		}
		if !flags.Changed("trace") && m.Config.Trace.Output != "" {
			traceOutput = m.Config.Trace.Output
		}
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return err
	}
	// If level is off, skip tracing
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return nil
	}
	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return err
	}
	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return err
	}

	t, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: traceOutput,
		RingSize:   ringSize,
	})
	if err != nil {
		return fmt.Errorf("failed to create tracer: %w", err)
	}
	tracer = t
	cmd.SetContext(trace.WithTracer(cmd.Context(), t))
	return nil
}

// finish stops profiling and closes the tracer once. When the command
// failed, the ring buffer, if any, is dumped to stderr first.
func finish(cmd *cobra.Command, failed bool) {
	if finished {
		return
	}
	finished = true
	profileCleanup()

	if failed {
		if ring, ok := trace.RingOf(tracer); ok {
			fmt.Fprintln(os.Stderr, "trace: last events before failure:")
			if err := ring.Dump(os.Stderr, trace.FormatText); err != nil {
				fmt.Fprintf(os.Stderr, "trace: dump error: %v\n", err)
			}
		}
	}
	if err := tracer.Flush(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
	}
	if err := tracer.Close(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
	}
}
