package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tsawler/quill/config"
)

func newConfigCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Long: `Print the configuration that "quill build" would use after merging the
built-in defaults, the config file and QUILL_ environment variables. The
output is valid input for --config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(global.configFile)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if cfg.File != "" {
				fmt.Fprintf(out, "# loaded from %s\n", cfg.File)
			}
			return cfg.Encode(out)
		},
	}
}
