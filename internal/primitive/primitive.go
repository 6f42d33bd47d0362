package primitive

import (
	"fmt"
)

// Primitive is a single-pass symmetric cipher keyed by a passphrase.
type Primitive interface {
	// Encrypt returns the ciphertext of text under passphrase.
	Encrypt(text, passphrase string) (string, error)
	// Decrypt returns the raw plaintext bytes of ciphertext under passphrase.
	// The bytes are not guaranteed to be valid text.
	Decrypt(ciphertext, passphrase string) ([]byte, error)
}

// Names of the available primitives.
const (
	NameAESCBC = "aes-cbc"
	NameAESSIV = "aes-siv"
	NameChaCha = "chacha20poly1305"
)

// Names returns the names accepted by New, default first.
func Names() []string {
	return []string{NameAESCBC, NameAESSIV, NameChaCha}
}

// New returns the primitive registered under name.
func New(name string) (Primitive, error) {
	switch name {
	case NameAESCBC:
		return AESCBC{}, nil
	case NameAESSIV:
		return AESSIV{}, nil
	case NameChaCha:
		return NewChaCha(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, name)
	}
}
