package targets

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/screenwrap/cmd/internal/runner"
	"github.com/LegacyCodeHQ/screenwrap/patcher"
)

// Cmd represents the targets command.
var Cmd = NewCommand()

// NewCommand returns a new targets command instance.
func NewCommand() *cobra.Command {
	opts := &runner.Options{}

	cmd := &cobra.Command{
		Use:   "targets",
		Short: "List configured screens with the import each one receives",
		Long: `List every configured target file in processing order, with its depth below
the source root and the import line apply would add to it.

Examples:
  screenwrap targets
  screenwrap targets -c config/screenwrap.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.LoadConfig()
			if err != nil {
				return err
			}
			engine, err := opts.NewEngine(cfg)
			if err != nil {
				return err
			}

			for _, target := range cfg.Targets {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s (depth %d): %s\n",
					target, patcher.Depth(target), engine.ImportLine(target)); err != nil {
					return err
				}
			}
			return nil
		},
	}

	opts.RegisterConfigFlags(cmd)

	return cmd
}
