package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/formcipher/internal/config"
)

// NewDecryptCommand creates a new cobra command for the decrypt subcommand.
func NewDecryptCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "decrypt [flags] [files/directories...]",
		Aliases: []string{"dec"},
		Short:   "Decrypt form files",
		Long: `Decrypts each form file, stripping <encrypt-ext> and appending <decrypt-ext>.
Directories are searched for form files ending in <encrypt-ext>.`,
		Args: cobra.ArbitraryArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Decrypt = true

			return preRun(cfg)(cmd, args)
		},
		RunE: run(cfg),
	}
}
