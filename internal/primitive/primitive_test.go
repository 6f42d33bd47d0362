package primitive_test

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/formcipher/internal/primitive"
	"github.com/idelchi/formcipher/pkg/passphrase"
)

// light returns the available primitives, with Argon2id tuned down for tests.
func light() map[string]primitive.Primitive {
	return map[string]primitive.Primitive{
		primitive.NameAESCBC: primitive.AESCBC{},
		primitive.NameAESSIV: primitive.AESSIV{},
		primitive.NameChaCha: &primitive.ChaCha{Time: 1, Memory: 8 * 1024, Threads: 1},
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	for _, name := range primitive.Names() {
		p, err := primitive.New(name)
		require.NoError(t, err, name)
		assert.NotNil(t, p, name)
	}

	_, err := primitive.New("rot13")
	require.ErrorIs(t, err, primitive.ErrUnsupported)
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	pass := passphrase.MustDerive("secret")
	inputs := []string{"hello", "日本語のテキスト", strings.Repeat("x", 16), strings.Repeat("y", 1000)}

	for name, p := range light() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			for _, in := range inputs {
				ciphertext, err := p.Encrypt(in, pass)
				require.NoError(t, err)
				assert.NotEqual(t, in, ciphertext)

				plain, err := p.Decrypt(ciphertext, pass)
				require.NoError(t, err)
				assert.Equal(t, in, string(plain))
			}
		})
	}
}

func TestDecrypt_Malformed(t *testing.T) {
	t.Parallel()

	pass := passphrase.MustDerive("secret")

	for name, p := range light() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := p.Decrypt("not base64 !!", pass)
			require.ErrorIs(t, err, primitive.ErrMalformed)

			_, err = p.Decrypt(base64.StdEncoding.EncodeToString([]byte("short")), pass)
			require.Error(t, err)
		})
	}
}

func TestDecrypt_WrongPassphraseAuthenticated(t *testing.T) {
	t.Parallel()

	right := passphrase.MustDerive("A")
	wrong := passphrase.MustDerive("B")

	for _, name := range []string{primitive.NameAESSIV, primitive.NameChaCha} {
		p := light()[name]

		ciphertext, err := p.Encrypt("hello", right)
		require.NoError(t, err, name)

		_, err = p.Decrypt(ciphertext, wrong)
		require.Error(t, err, name)
	}
}

func TestAESCBC_OpenSSLFormat(t *testing.T) {
	t.Parallel()

	ciphertext, err := primitive.AESCBC{}.Encrypt("hello", passphrase.MustDerive("A"))
	require.NoError(t, err)

	// base64("Salted__") begins with this prefix regardless of the salt.
	assert.True(t, strings.HasPrefix(ciphertext, "U2FsdGVkX1"), ciphertext)

	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	require.NoError(t, err)
	// header (16) + one padded block (16)
	assert.Len(t, raw, 32)
}

func TestAESCBC_Randomized(t *testing.T) {
	t.Parallel()

	pass := passphrase.MustDerive("A")

	first, err := primitive.AESCBC{}.Encrypt("hello", pass)
	require.NoError(t, err)

	second, err := primitive.AESCBC{}.Encrypt("hello", pass)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestAESSIV_Deterministic(t *testing.T) {
	t.Parallel()

	pass := passphrase.MustDerive("A")

	first, err := primitive.AESSIV{}.Encrypt("hello", pass)
	require.NoError(t, err)

	second, err := primitive.AESSIV{}.Encrypt("hello", pass)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	other, err := primitive.AESSIV{}.Encrypt("hello", passphrase.MustDerive("B"))
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}
