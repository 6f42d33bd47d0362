package primitive

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

const chachaSaltSize = 16

// ChaCha is ChaCha20-Poly1305 with a per-ciphertext Argon2id key.
// The encoded ciphertext is base64(salt || nonce || sealed).
type ChaCha struct {
	// Argon2id tuning parameters. Zero values fall back to the defaults of NewChaCha.
	Time    uint32
	Memory  uint32
	Threads uint8
}

// NewChaCha returns a ChaCha primitive with time cost 1, 64 MiB of memory and 4 threads.
func NewChaCha() *ChaCha {
	return &ChaCha{
		Time:    1,
		Memory:  64 * 1024,
		Threads: 4,
	}
}

// Encrypt implements Primitive.
func (c *ChaCha) Encrypt(text, passphrase string) (string, error) {
	salt := make([]byte, chachaSaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	aead, err := chacha20poly1305.New(c.key(passphrase, salt))
	if err != nil {
		return "", fmt.Errorf("creating cipher: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generating nonce: %w", err)
	}

	out := make([]byte, 0, len(salt)+len(nonce)+len(text)+aead.Overhead())
	out = append(out, salt...)
	out = append(out, nonce...)
	out = aead.Seal(out, nonce, []byte(text), nil)

	return base64.StdEncoding.EncodeToString(out), nil
}

// Decrypt implements Primitive.
func (c *ChaCha) Decrypt(ciphertext, passphrase string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	const headerSize = chachaSaltSize + chacha20poly1305.NonceSize

	if len(raw) < headerSize+chacha20poly1305.Overhead {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrMalformed)
	}

	salt, nonce, sealed := raw[:chachaSaltSize], raw[chachaSaltSize:headerSize], raw[headerSize:]

	aead, err := chacha20poly1305.New(c.key(passphrase, salt))
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("decrypting: %w", err)
	}

	return plaintext, nil
}

func (c *ChaCha) key(passphrase string, salt []byte) []byte {
	defaults := NewChaCha()

	timeCost, memory, threads := c.Time, c.Memory, c.Threads

	if timeCost == 0 {
		timeCost = defaults.Time
	}

	if memory == 0 {
		memory = defaults.Memory
	}

	if threads == 0 {
		threads = defaults.Threads
	}

	return argon2.IDKey([]byte(passphrase), salt, timeCost, memory, threads, chacha20poly1305.KeySize)
}
