package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tsawler/quill/logging"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	verbosity  int
	configFile string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "quill",
		Short: "Build the tweet sentiment analysis project report",
		Long: `quill writes the tweet sentiment analysis project report as a formatted
Word document. Run without a command it behaves like "quill build".

Formatting can be changed through a TOML config file or QUILL_ environment
variables; see "quill config" for the effective values.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return newBuildJob(cmd, opts, &buildOptions{}).run()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default is $XDG_CONFIG_HOME/quill/config.toml)")

	cmd.AddCommand(
		newBuildCmd(opts),
		newInspectCmd(),
		newConfigCmd(opts),
		newVersionCmd(),
	)
	return cmd
}
