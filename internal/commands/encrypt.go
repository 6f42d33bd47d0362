package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/formcipher/internal/config"
)

// NewEncryptCommand creates a new cobra command for the encrypt subcommand.
func NewEncryptCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "encrypt [flags] [files/directories...]",
		Aliases: []string{"enc"},
		Short:   "Encrypt form files",
		Long: `Encrypts each form file into <file><encrypt-ext>.
Content fields up to the form's security level are encrypted and the passphrase fields are removed.
Directories are searched for .json, .jsonc, .yaml and .yml files.`,
		Args: cobra.ArbitraryArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Decrypt = false

			return preRun(cfg)(cmd, args)
		},
		RunE: run(cfg),
	}
}
