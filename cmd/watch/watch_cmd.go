package watch

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/screenwrap/cmd/internal/runner"
)

// Cmd represents the watch command.
var Cmd = NewCommand()

// NewCommand returns a new watch command instance.
func NewCommand() *cobra.Command {
	opts := &runner.Options{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Apply once, then re-apply whenever a configured screen changes",
		Long: `Apply the wrapper to every configured screen, then watch the screens'
directories and re-apply when one of them is written, created or renamed.
Already wrapped screens are left alone, so the run settles after each change.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd, opts)
		},
	}

	opts.RegisterFlags(cmd)

	return cmd
}

func runWatch(cmd *cobra.Command, opts *runner.Options) error {
	cfg, err := opts.LoadConfig()
	if err != nil {
		return err
	}

	absRoot, err := filepath.Abs(cfg.Root)
	if err != nil {
		return fmt.Errorf("failed to resolve root path: %w", err)
	}
	cfg.Root = absRoot

	out := cmd.OutOrStdout()
	if _, err := opts.Run(out, cfg); err != nil {
		return err
	}

	// Our own writes make targets dirty, so later runs cannot require a clean tree.
	rerunCfg := *cfg
	rerunCfg.RequireClean = false

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	targets := newTargetSet(cfg.Root, cfg.Targets)
	if err := addWatchDirs(watcher.Add, targets.dirs()); err != nil {
		return fmt.Errorf("failed to watch directories: %w", err)
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	fmt.Fprintf(out, "Watching %d targets under %s\n", len(targets), cfg.Root)
	fmt.Fprintf(out, "Press Ctrl+C to stop\n")

	var mu sync.Mutex
	reapply := func() {
		mu.Lock()
		defer mu.Unlock()
		if _, err := opts.Run(out, &rerunCfg); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "reapply error: %v\n", err)
		}
	}

	return watchAndReapply(ctx, watcher, targets, reapply, cmd.ErrOrStderr())
}
