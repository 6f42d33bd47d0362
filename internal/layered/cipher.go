package layered

import (
	"fmt"
	"unicode/utf8"

	"github.com/idelchi/formcipher/internal/logger"
	"github.com/idelchi/formcipher/internal/primitive"
)

// Passphrase is a derived passphrase together with the name used in messages.
type Passphrase struct {
	Name  string
	Value string
}

// Cipher encrypts and decrypts values at a security level using a single primitive.
// It holds no mutable state and is safe for concurrent use.
type Cipher struct {
	primitive primitive.Primitive
	log       *logger.Logger
}

// Option configures a Cipher.
type Option func(*Cipher)

// WithLogger sets the logger used for debug events.
func WithLogger(l *logger.Logger) Option {
	return func(c *Cipher) {
		c.log = l
	}
}

// New returns a Cipher over p.
func New(p primitive.Primitive, opts ...Option) *Cipher {
	c := &Cipher{
		primitive: p,
		log:       logger.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// EncryptOnce encrypts plain under p and verifies that the ciphertext decrypts back to plain.
func (c *Cipher) EncryptOnce(plain string, p Passphrase) Result {
	if plain == "" {
		return Succeeded(nil, "")
	}

	name := nameOr(p.Name, "passphrase")

	if p.Value == "" {
		return c.fail(nil, "encrypt", missingPassphrase(name))
	}

	ciphertext, err := c.encrypt(plain, p.Value)
	if err != nil {
		return c.fail(nil, "encrypt", NewError(KindPrimitiveFailure, err.Error()))
	}

	if ciphertext == "" {
		return c.fail(nil, "encrypt", NewError(KindPrimitiveFailure, "encryption failed"))
	}

	if check := c.DecryptOnce(ciphertext, Passphrase{Name: name, Value: p.Value}); !check.OK() || *check.Value != plain {
		return c.fail(nil, "encrypt", NewError(KindVerificationMismatch, ErrVerificationMismatch.Message))
	}

	c.log.Debug().Str("op", "encrypt").Str("slot", name).Msg("encrypted")

	return Succeeded(nil, ciphertext)
}

// DecryptOnce decrypts ciphertext under p.
// An empty or undecodable plaintext is reported as a wrong passphrase or corrupt ciphertext.
func (c *Cipher) DecryptOnce(ciphertext string, p Passphrase) Result {
	if ciphertext == "" {
		return Succeeded(nil, "")
	}

	name := nameOr(p.Name, "passphrase")

	if p.Value == "" {
		return c.fail(nil, "decrypt", missingPassphrase(name))
	}

	plain, err := c.decrypt(ciphertext, p.Value)
	if err != nil || len(plain) == 0 {
		if err != nil {
			c.log.Debug().Str("op", "decrypt").Str("slot", name).Err(err).Msg("primitive rejected ciphertext")
		}

		return c.fail(nil, "decrypt", incorrectPassphrase(KindPrimitiveFailure, name))
	}

	if !utf8.Valid(plain) {
		return c.fail(nil, "decrypt", incorrectPassphrase(KindDecodeFailure, name))
	}

	c.log.Debug().Str("op", "decrypt").Str("slot", name).Msg("decrypted")

	return Succeeded(nil, string(plain))
}

// encrypt calls the primitive, converting a panic into an error.
func (c *Cipher) encrypt(plain, passphrase string) (ciphertext string, err error) {
	defer recoverInto(&err)

	return c.primitive.Encrypt(plain, passphrase)
}

// decrypt calls the primitive, converting a panic into an error.
func (c *Cipher) decrypt(ciphertext, passphrase string) (plain []byte, err error) {
	defer recoverInto(&err)

	return c.primitive.Decrypt(ciphertext, passphrase)
}

func recoverInto(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("primitive panicked: %v", r)
	}
}

func (c *Cipher) fail(level *Level, op string, err *Error) Result {
	c.log.Debug().
		Str("op", op).
		Str("level", Format(level)).
		Stringer("kind", err.Kind).
		Msg(err.Message)

	return Failed(StatusError, level, err)
}

func nameOr(name, fallback string) string {
	if name == "" {
		return fallback
	}

	return name
}
