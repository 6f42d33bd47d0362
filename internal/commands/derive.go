package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idelchi/formcipher/pkg/passphrase"
)

// NewDeriveCommand creates a new cobra command that prints the passphrase derived from a key.
func NewDeriveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "derive KEY",
		Short: "Print the passphrase derived from KEY",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			derived, err := passphrase.Derive(args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), derived)

			return nil
		},
	}
}
