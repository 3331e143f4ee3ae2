package commands

import (
	"github.com/spf13/cobra"

	"github.com/motoki317/fetchstate/internal/config"
)

// applyFlags overrides cfg with the flags set on the command line.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("url") {
		cfg.UsersURL = usersURL
	}
	if flags.Changed("timeout") {
		cfg.HTTPTimeout = timeout
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = logFormat
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if noVerify {
		cfg.Validate = false
	}
	return cfg.Check()
}
