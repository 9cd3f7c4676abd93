package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/colorprofile"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/spacialist/plugin-doctor/internal/config"
	"github.com/spacialist/plugin-doctor/internal/doctor"
	"github.com/spacialist/plugin-doctor/internal/log"
	"github.com/spacialist/plugin-doctor/internal/ui/progress"
	"github.com/spacialist/plugin-doctor/internal/ui/styles"
)

// newRootCmd builds the single doctor command. Flag parsing is left to
// the doctor's own parser so that unknown and conflicting options are
// reported the same way for every invocation.
func newRootCmd(run *doctor.Run) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor [options]",
		Short: "Check and repair a Spacialist plugin checkout",
		Long: `doctor checks the packaging metadata of a Spacialist plugin and creates
the symlinks the host application needs to discover it.

Run it from the plugin root (app/Plugins/<Name> inside the host checkout)
with exactly one option. Without options it prints the available ones.`,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			return doctor.Dispatch(cmd.Context(), run, args)
		},
	}
}

// runCommand executes the root command with args.
func runCommand(ctx context.Context, run *doctor.Run, args []string) error {
	if args == nil {
		// cobra falls back to os.Args for nil
		args = []string{}
	}
	cmd := newRootCmd(run)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

// Execute resolves the plugin, runs the requested command and exits.
func Execute() {
	pluginDir, err := config.PluginDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "doctor: failed to get plugin directory: %v\n", err)
		os.Exit(1)
	}

	// Load config
	cfg, err := config.Load(pluginDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	styles.Init(cfg.Theme)

	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Colors are downsampled or stripped for pipes and NO_COLOR.
	logger := log.New(colorprofile.NewWriter(os.Stdout, os.Environ()), cfg.Verbose)
	ctx = log.WithLogger(ctx, logger)
	logger.Debug("starting", "version", versionString(), "plugin", pluginDir, "host", cfg.Paths(pluginDir).HostRoot)

	run := doctor.New(cfg, cfg.Paths(pluginDir), runOptions()...)
	err = runCommand(ctx, run, os.Args[1:])
	if closeErr := run.Close(); closeErr != nil {
		logger.Debug("closing database", "error", closeErr)
	}

	if err != nil {
		if !doctor.Reported(err) {
			logger.Errorf("%v", err)
		}
		cancel()
		os.Exit(1)
	}
}

func runOptions() []doctor.Option {
	opts := []doctor.Option{doctor.WithClipboard(clipboard.WriteAll)}

	fd := os.Stderr.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		opts = append(opts, doctor.WithSpinner(func(message string) func() {
			s := progress.NewSpinner(os.Stderr, message)
			s.Start()
			return s.Stop
		}))
	}
	return opts
}
