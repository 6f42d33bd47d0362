package commands

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/formcipher/internal/config"
	"github.com/idelchi/formcipher/internal/logger"
	"github.com/idelchi/formcipher/internal/primitive"
)

// NewRootCommand creates the root command with common configuration.
// It sets up environment variable binding and flag handling.
func NewRootCommand(cfg *config.Config, version string) *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:   "formcipher [flags] command [flags]",
		Short: "Layered form field encryption",
		Long: `Encrypts the content fields of form files at security level 0, 1 or 2.
Level 0 leaves content unencrypted, level 1 encrypts it under one passphrase and
level 2 nests a second passphrase inside the first.

Every flag can also be set through a FORMCIPHER_<FLAG> environment variable,
for example FORMCIPHER_PASSPHRASE1.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			v.SetEnvPrefix("FORMCIPHER")
			v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
			v.AutomaticEnv()

			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return fmt.Errorf("binding flags: %w", err)
			}

			if err := v.Unmarshal(cfg); err != nil {
				return fmt.Errorf("parsing config: %w", err)
			}

			return nil
		},
	}

	flags := root.PersistentFlags()

	flags.BoolP("show", "s", false, "Show the configuration and exit")
	flags.IntP("parallel", "j", runtime.NumCPU(), "Number of parallel workers, defaults to number of CPUs")
	flags.BoolP("quiet", "q", false, "Suppress non-error output")
	flags.Bool("stats", false, "Print statistics after processing")
	flags.BoolP("delete", "d", false, "Delete the original file after successful encryption/decryption")
	flags.String("log-level", "warn", "Log level (trace, debug, info, warn, error, disabled)")
	flags.String("log-format", logger.FormatConsole, "Log format (console, json)")
	flags.StringP("primitive", "p", primitive.NameAESCBC,
		"Cipher primitive ("+strings.Join(primitive.Names(), ", ")+")")

	flags.String("encrypt-ext", ".enc", "Suffix to append to encrypted files")
	flags.String("decrypt-ext", "", "Suffix to append to decrypted files, after stripping the encrypted suffix")

	flags.String("passphrase1", "", "First passphrase, overrides the form field")
	flags.String("passphrase2", "", "Second passphrase, overrides the form field")

	flags.String("level-field", "level", "Field holding the security level")
	flags.String("level0-field", "level0", "Field holding level 0 content")
	flags.String("level1-field", "level1", "Field holding level 1 content")
	flags.String("level2-field", "level2", "Field holding level 2 content")
	flags.String("passphrase1-field", "passphrase1", "Field holding the first passphrase")
	flags.String("passphrase1-confirm-field", "passphrase1_confirm", "Field holding the first passphrase confirmation")
	flags.String("passphrase2-field", "passphrase2", "Field holding the second passphrase")
	flags.String("passphrase2-confirm-field", "passphrase2_confirm", "Field holding the second passphrase confirmation")

	root.AddCommand(NewEncryptCommand(cfg), NewDecryptCommand(cfg), NewDeriveCommand())

	return root
}
