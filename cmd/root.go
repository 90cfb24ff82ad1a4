package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/screenwrap/cmd/apply"
	"github.com/LegacyCodeHQ/screenwrap/cmd/check"
	"github.com/LegacyCodeHQ/screenwrap/cmd/targets"
	"github.com/LegacyCodeHQ/screenwrap/cmd/watch"
	"github.com/LegacyCodeHQ/screenwrap/internal/logging"
)

// version is set via build-time ldflags
var version = "dev"

// buildDate is set via build-time ldflags
var buildDate = "unknown"

// commit is set via build-time ldflags
var commit = "unknown"

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCommand()

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "screenwrap",
		Short: "Wrap Flutter screens in a back-navigation handler",
		Long: `Screenwrap rewrites a configured list of Flutter screen files so that the
Scaffold returned by each build method is wrapped in a BackHandler widget.
It adds the widget's import with the right relative depth and closes the
extra parenthesis, leaving files that are already wrapped untouched.

Use 'screenwrap check' to preview the rewrite and 'screenwrap apply' to write it.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			logging.Sync()
		},
	}

	cmd.AddCommand(apply.Cmd)
	cmd.AddCommand(check.Cmd)
	cmd.AddCommand(targets.Cmd)
	cmd.AddCommand(watch.Cmd)

	// Initialize annotations for version template
	cmd.Annotations = map[string]string{
		"buildDate": buildDate,
		"commit":    commit,
	}

	// Customize version template to show additional build info
	cmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
Build date: {{printf "%s" (index .Annotations "buildDate")}}
Commit: {{printf "%s" (index .Annotations "commit")}}
`)

	return cmd
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
