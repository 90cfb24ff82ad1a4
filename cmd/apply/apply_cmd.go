package apply

import (
	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/screenwrap/cmd/internal/runner"
)

// Cmd represents the apply command.
var Cmd = NewCommand()

// NewCommand returns a new apply command instance.
func NewCommand() *cobra.Command {
	opts := &runner.Options{}

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Wrap the root container of every configured screen",
		Long: `Wrap the root container of every configured screen file with the wrapper
widget, add the wrapper's import and close the wrapper before the end of the
build method. Files are rewritten in place, in the order they are configured.

Files that already mention the wrapper are skipped, so apply can be re-run.

Examples:
  screenwrap apply
  screenwrap apply -c screenwrap.yaml -r ../app
  screenwrap apply --require-clean --verify
  screenwrap apply --table`,
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

	return cmd
}
