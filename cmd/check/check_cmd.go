package check

import (
	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/screenwrap/cmd/internal/runner"
)

// Cmd represents the check command.
var Cmd = NewCommand()

// NewCommand returns a new check command instance.
func NewCommand() *cobra.Command {
	opts := &runner.Options{DryRun: true}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Show what apply would change without writing files",
		Long: `Run the same pipeline as apply without writing anything back, and print a
line diff for every file that would be modified.

Examples:
  screenwrap check
  screenwrap check --diff=false --table`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.LoadConfig()
			if err != nil {
				return err
			}
			_, err = opts.Run(cmd.OutOrStdout(), cfg)
			return err
		},
	}

	opts.RegisterFlags(cmd)
	cmd.Flags().BoolVar(&opts.Diff, "diff", true, "Print a diff for each file that would change")

	return cmd
}
