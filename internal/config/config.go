// Package config holds the command line configuration of formcipher.
package config

import (
	"fmt"

	"github.com/goccy/go-yaml"
	mask "github.com/showa-93/go-mask"

	"github.com/idelchi/formcipher/internal/item"
	"github.com/idelchi/formcipher/internal/layered"
	"github.com/idelchi/formcipher/pkg/passphrase"
)

// Fields names the form fields of an item.
// Every non-empty id must be distinct, so no field is both written and removed.
type Fields struct {
	Level string `label:"--level-field" mapstructure:"level-field" validate:"required" yaml:"level-field"`

	Level0 string `label:"--level0-field" mapstructure:"level0-field" yaml:"level0-field"`
	Level1 string `label:"--level1-field" mapstructure:"level1-field" yaml:"level1-field"`
	Level2 string `label:"--level2-field" mapstructure:"level2-field" yaml:"level2-field"`

	Passphrase1        string `label:"--passphrase1-field" mapstructure:"passphrase1-field" yaml:"passphrase1-field"`
	Passphrase1Confirm string `label:"--passphrase1-confirm-field" mapstructure:"passphrase1-confirm-field" yaml:"passphrase1-confirm-field"`
	Passphrase2        string `label:"--passphrase2-field" mapstructure:"passphrase2-field" yaml:"passphrase2-field"`
	Passphrase2Confirm string `label:"--passphrase2-confirm-field" mapstructure:"passphrase2-confirm-field" yaml:"passphrase2-confirm-field"`
}

// Config holds the settings of a run, populated from flags and FORMCIPHER_* environment variables.
type Config struct {
	// Common flags
	Show      bool   `mapstructure:"show" yaml:"show"`
	Quiet     bool   `mapstructure:"quiet" yaml:"quiet"`
	Stats     bool   `mapstructure:"stats" yaml:"stats"`
	Delete    bool   `mapstructure:"delete" yaml:"delete"`
	Parallel  int    `label:"--parallel" mapstructure:"parallel" validate:"min=1" yaml:"parallel"`
	LogFormat string `label:"--log-format" mapstructure:"log-format" validate:"oneof=console json" yaml:"log-format"`
	LogLevel  string `label:"--log-level" mapstructure:"log-level" validate:"oneof=trace debug info warn error disabled" yaml:"log-level"`
	Primitive string `label:"--primitive" mapstructure:"primitive" validate:"oneof=aes-cbc aes-siv chacha20poly1305" yaml:"primitive"`

	EncryptExt string `label:"--encrypt-ext" mapstructure:"encrypt-ext" validate:"required" yaml:"encrypt-ext"`
	DecryptExt string `label:"--decrypt-ext" mapstructure:"decrypt-ext" yaml:"decrypt-ext"`

	// Passphrases given on the command line take precedence over form fields.
	Passphrase1 string `mapstructure:"passphrase1" mask:"fixed" yaml:"passphrase1"`
	Passphrase2 string `mapstructure:"passphrase2" mask:"fixed" yaml:"passphrase2"`

	Fields Fields `mapstructure:",squash" yaml:"fields"`

	// Command-specific
	Decrypt bool `mapstructure:"-" yaml:"decrypt"`

	// Positional arguments
	Files []string `label:"files" mapstructure:"-" validate:"min=1" yaml:"files"`
}

// Binding maps the configured field names onto an item binding.
func (c *Config) Binding() item.Binding {
	return item.Binding{
		LevelField: c.Fields.Level,
		Content:    [3]string{c.Fields.Level0, c.Fields.Level1, c.Fields.Level2},
		First: item.Secret{
			Name:    layered.FirstName,
			Field:   c.Fields.Passphrase1,
			Confirm: c.Fields.Passphrase1Confirm,
		},
		Second: item.Secret{
			Name:    layered.SecondName,
			Field:   c.Fields.Passphrase2,
			Confirm: c.Fields.Passphrase2Confirm,
		},
	}
}

// Overrides derives the passphrases given on the command line.
// Empty settings leave the slot empty so the form is consulted.
func (c *Config) Overrides() layered.Keys {
	keys := layered.Keys{
		First:  layered.Passphrase{Name: layered.FirstName},
		Second: layered.Passphrase{Name: layered.SecondName},
	}

	if c.Passphrase1 != "" {
		keys.First.Value = passphrase.MustDerive(c.Passphrase1)
	}

	if c.Passphrase2 != "" {
		keys.Second.Value = passphrase.MustDerive(c.Passphrase2)
	}

	return keys
}

// Display renders the configuration as YAML with passphrases masked.
func (c Config) Display() (string, error) {
	masked, err := mask.Mask(c)
	if err != nil {
		return "", fmt.Errorf("masking configuration: %w", err)
	}

	out, err := yaml.Marshal(masked)
	if err != nil {
		return "", fmt.Errorf("rendering configuration: %w", err)
	}

	return string(out), nil
}
