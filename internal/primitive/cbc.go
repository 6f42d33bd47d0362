package primitive

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/md5" //nolint:gosec // EVP_BytesToKey is defined over MD5
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
)

const (
	saltedMagic = "Salted__"
	saltSize    = 8
	cbcKeySize  = 32
)

// AESCBC is AES-256-CBC in the OpenSSL "Salted__" format.
// The key and IV are derived from the passphrase and a random 8-byte salt with EVP_BytesToKey(MD5, 1 round).
type AESCBC struct{}

// Encrypt implements Primitive.
func (AESCBC) Encrypt(text, passphrase string) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	key, iv := evpBytesToKey([]byte(passphrase), salt, cbcKeySize, aes.BlockSize)

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("creating cipher: %w", err)
	}

	padded := pkcs7Pad([]byte(text), aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	out := make([]byte, 0, len(saltedMagic)+saltSize+len(ciphertext))
	out = append(out, saltedMagic...)
	out = append(out, salt...)
	out = append(out, ciphertext...)

	return base64.StdEncoding.EncodeToString(out), nil
}

// Decrypt implements Primitive.
func (AESCBC) Decrypt(ciphertext, passphrase string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	const headerSize = len(saltedMagic) + saltSize

	if len(raw) < headerSize+aes.BlockSize || !bytes.HasPrefix(raw, []byte(saltedMagic)) {
		return nil, fmt.Errorf("%w: missing salt header", ErrMalformed)
	}

	salt, body := raw[len(saltedMagic):headerSize], raw[headerSize:]
	if len(body)%aes.BlockSize != 0 {
		return nil, ErrInvalidBlockSize
	}

	key, iv := evpBytesToKey([]byte(passphrase), salt, cbcKeySize, aes.BlockSize)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	plaintext := make([]byte, len(body))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, body)

	unpadded, err := pkcs7Unpad(plaintext, aes.BlockSize)
	if err != nil {
		return nil, fmt.Errorf("removing padding: %w", err)
	}

	return unpadded, nil
}

// evpBytesToKey implements OpenSSL's EVP_BytesToKey with MD5 and a single iteration.
func evpBytesToKey(passphrase, salt []byte, keyLen, ivLen int) ([]byte, []byte) {
	var derived, digest []byte

	for len(derived) < keyLen+ivLen {
		hash := md5.New() //nolint:gosec
		hash.Write(digest)
		hash.Write(passphrase)
		hash.Write(salt)

		digest = hash.Sum(nil)
		derived = append(derived, digest...)
	}

	return derived[:keyLen], derived[keyLen : keyLen+ivLen]
}
