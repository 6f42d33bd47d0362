// Package commands provides the command-line interface for the formcipher tool.
//
// It implements commands for:
//   - encryption of form files
//   - decryption of form files
//   - passphrase derivation
//
// The package handles command-line parsing, configuration validation,
// and environment variable binding through cobra and viper.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/idelchi/formcipher/internal/config"
	"github.com/idelchi/formcipher/internal/logger"
	"github.com/idelchi/formcipher/internal/logic"
)

// preRun returns a PreRunE handler that resolves positional args into cfg.Files
// and validates the configuration.
func preRun(cfg *config.Config) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, args []string) error {
		if len(args) == 0 {
			cfg.Files = []string{"."}
		} else {
			cfg.Files = args
		}

		return cfg.Validate()
	}
}

// run prints the configuration when --show is set, and otherwise processes the files.
func run(cfg *config.Config) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		if cfg.Show {
			out, err := cfg.Display()
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), out)

			return nil
		}

		log, err := logger.Open(os.Stderr, cfg.LogLevel, cfg.LogFormat)
		if err != nil {
			return err
		}

		return logic.Run(cfg, log)
	}
}
