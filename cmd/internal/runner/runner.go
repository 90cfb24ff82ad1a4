// Package runner holds the flags and run loop shared by the patching commands.
package runner

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/screenwrap/config"
	"github.com/LegacyCodeHQ/screenwrap/dartsyntax"
	"github.com/LegacyCodeHQ/screenwrap/internal/logging"
	"github.com/LegacyCodeHQ/screenwrap/patcher"
	"github.com/LegacyCodeHQ/screenwrap/report"
	"github.com/LegacyCodeHQ/screenwrap/vcs/git"
)

var (
	// ErrDirtyTargets is returned when --require-clean finds uncommitted target files.
	ErrDirtyTargets = errors.New("targets have uncommitted changes")
	// ErrNotRepository is returned when --require-clean runs outside a git work tree.
	ErrNotRepository = errors.New("root is not inside a git repository")
)

// Options are the flags shared by apply, check and watch.
type Options struct {
	ConfigPath   string
	Root         string
	NoColor      bool
	Verbose      bool
	Table        bool
	RequireClean bool
	Verify       bool

	DryRun bool
	Diff   bool
}

// RegisterConfigFlags adds the flags that locate and override the configuration.
func (o *Options) RegisterConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.ConfigPath, "config", "c", "", "Config file (default: screenwrap.yaml in . or ./config)")
	cmd.Flags().StringVarP(&o.Root, "root", "r", "", "Project root the targets are relative to (overrides config)")
	cmd.Flags().BoolVarP(&o.Verbose, "verbose", "v", false, "Log debug details to stderr")
}

// RegisterFlags adds the configuration flags plus the flags of a patching run.
func (o *Options) RegisterFlags(cmd *cobra.Command) {
	o.RegisterConfigFlags(cmd)
	cmd.Flags().BoolVar(&o.NoColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVar(&o.Table, "table", false, "Print results as a table")
	cmd.Flags().BoolVar(&o.RequireClean, "require-clean", false, "Refuse to run when targets have uncommitted git changes")
	cmd.Flags().BoolVar(&o.Verify, "verify", false, "Skip rewrites that introduce Dart parse errors")
}

// LoadConfig loads the configuration, applies flag overrides and sets up logging.
func (o *Options) LoadConfig() (*config.Config, error) {
	if err := logging.Configure(o.Verbose); err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return nil, err
	}
	if o.Root != "" {
		cfg.Root = o.Root
	}
	if o.RequireClean {
		cfg.RequireClean = true
	}
	if o.Verify {
		cfg.VerifySyntax = true
	}
	return cfg, nil
}

// NewEngine builds the patcher engine described by cfg.
func (o *Options) NewEngine(cfg *config.Config) (*patcher.Engine, error) {
	engineOpts := []patcher.Option{patcher.WithDryRun(o.DryRun)}
	if cfg.VerifySyntax {
		engineOpts = append(engineOpts, patcher.WithSyntaxChecker(dartsyntax.NewChecker()))
	}

	engine, err := patcher.New(cfg.Root, cfg.PatcherOptions(), engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create patcher: %w", err)
	}
	return engine, nil
}

// NewReporter returns a reporter for out, colored only on a terminal.
func (o *Options) NewReporter(out io.Writer) *report.Reporter {
	return report.New(out, report.Options{
		Color:  !o.NoColor && !color.NoColor && out == os.Stdout,
		DryRun: o.DryRun,
	})
}

// Run patches every configured target and reports the results to out.
// Per-file failures are reported, not returned.
func (o *Options) Run(out io.Writer, cfg *config.Config) (patcher.Summary, error) {
	if cfg.RequireClean {
		if !git.IsRepository(cfg.Root) {
			return patcher.Summary{}, fmt.Errorf("%w: %s", ErrNotRepository, cfg.Root)
		}
		dirty, err := git.DirtyPaths(cfg.Root, cfg.Targets)
		if err != nil {
			return patcher.Summary{}, fmt.Errorf("failed to check target status: %w", err)
		}
		if len(dirty) > 0 {
			return patcher.Summary{}, fmt.Errorf("%w: %s", ErrDirtyTargets, strings.Join(dirty, ", "))
		}
	}

	engine, err := o.NewEngine(cfg)
	if err != nil {
		return patcher.Summary{}, err
	}

	results := engine.Run(cfg.Targets)
	if err := o.render(out, results); err != nil {
		return patcher.Summary{}, err
	}

	for _, res := range results {
		if res.Outcome.Failed() {
			logging.Warn("target not patched", map[string]any{
				"path":    res.Path,
				"outcome": res.Outcome.String(),
				"error":   res.Err,
			})
		}
	}

	summary := patcher.Summarize(results)
	logging.Info("run complete", map[string]any{
		"root":     cfg.Root,
		"targets":  summary.Total,
		"modified": summary.Modified,
		"failed":   summary.Failed,
		"dry_run":  o.DryRun,
	})
	return summary, nil
}

func (o *Options) render(out io.Writer, results []patcher.Result) error {
	r := o.NewReporter(out)

	if o.Table {
		if err := r.Table(results); err != nil {
			return err
		}
	} else {
		for _, res := range results {
			if err := r.Line(res); err != nil {
				return err
			}
		}
	}

	if o.Diff {
		for _, res := range results {
			if err := r.Diff(res); err != nil {
				return err
			}
		}
	}

	return r.Summary(patcher.Summarize(results))
}
