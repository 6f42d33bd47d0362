package layered_test

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/formcipher/internal/layered"
	"github.com/idelchi/formcipher/internal/primitive"
	"github.com/idelchi/formcipher/pkg/passphrase"
)

func keys(first, second string) layered.Keys {
	k := layered.Keys{
		First:  layered.Passphrase{Name: "passphrase1"},
		Second: layered.Passphrase{Name: "passphrase2"},
	}

	if first != "" {
		k.First.Value = passphrase.MustDerive(first)
	}

	if second != "" {
		k.Second.Value = passphrase.MustDerive(second)
	}

	return k
}

func primitives() map[string]primitive.Primitive {
	return map[string]primitive.Primitive{
		primitive.NameAESCBC: primitive.AESCBC{},
		primitive.NameAESSIV: primitive.AESSIV{},
		primitive.NameChaCha: &primitive.ChaCha{Time: 1, Memory: 8 * 1024, Threads: 1},
	}
}

func requireError(t *testing.T, r layered.Result, target error) {
	t.Helper()

	require.Equal(t, layered.StatusError, r.Status, r.Summary())
	require.Nil(t, r.Value)
	require.NotEmpty(t, r.Message)
	require.ErrorIs(t, r.Err, target)
	require.Equal(t, r.Message, r.Err.Error())
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	values := []string{"hello", "x", "こんにちは世界", strings.Repeat("long value ", 40), "U2FsdGVkX1"}

	for name, p := range primitives() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			c := layered.New(p)
			k := keys("first key", "second key")

			for _, level := range layered.Levels() {
				for _, v := range values {
					enc := c.EncryptAtLevel(v, level, k)
					require.True(t, enc.OK(), enc.Summary())
					require.NotNil(t, enc.Level)
					assert.Equal(t, level, *enc.Level)

					if level == layered.Level0 {
						assert.Equal(t, v, enc.String())
					} else {
						assert.NotEqual(t, v, enc.String())
					}

					dec := c.DecryptAtLevel(enc.String(), level, k)
					require.True(t, dec.OK(), dec.Summary())
					assert.Equal(t, v, dec.String())
					assert.Equal(t, level, *dec.Level)
				}
			}
		})
	}
}

func TestVacuousInput(t *testing.T) {
	t.Parallel()

	c := layered.New(primitive.AESSIV{})

	for _, k := range []layered.Keys{keys("", ""), keys("a", ""), keys("a", "b")} {
		for _, level := range layered.Levels() {
			for _, r := range []layered.Result{
				c.EncryptAtLevel("", level, k),
				c.DecryptAtLevel("", level, k),
			} {
				require.True(t, r.OK(), r.Summary())
				require.NotNil(t, r.Value)
				assert.Empty(t, *r.Value)
				assert.Empty(t, r.Message)
			}
		}
	}

	once := c.EncryptOnce("", layered.Passphrase{})
	require.True(t, once.OK())
	assert.Empty(t, once.String())
}

func TestMissingPassphrase(t *testing.T) {
	t.Parallel()

	c := layered.New(primitive.AESSIV{})

	r := c.EncryptAtLevel("x", layered.Level1, layered.Keys{First: layered.Passphrase{Name: "master key"}})
	requireError(t, r, layered.ErrMissingPassphrase)
	assert.Contains(t, r.Message, "master key")
	assert.Equal(t, layered.Level1, *r.Level)

	r = c.EncryptAtLevel("x", layered.Level2, keys("", "b"))
	requireError(t, r, layered.ErrMissingPassphrase)
	assert.Equal(t, "passphrase1 not supplied", r.Message)

	r = c.EncryptAtLevel("x", layered.Level2, keys("a", ""))
	requireError(t, r, layered.ErrMissingPassphrase)
	assert.Equal(t, "passphrase2 not supplied", r.Message)

	r = c.DecryptAtLevel("x", layered.Level2, keys("", ""))
	requireError(t, r, layered.ErrMissingPassphrase)
	assert.Equal(t, "passphrase1 not supplied", r.Message, "slots are checked in ascending order")

	r = c.DecryptOnce("x", layered.Passphrase{Name: "pin"})
	requireError(t, r, layered.ErrMissingPassphrase)
	assert.Equal(t, "pin not supplied", r.Message)
	assert.Nil(t, r.Level)
}

func TestMissingPassphrase_DefaultNames(t *testing.T) {
	t.Parallel()

	c := layered.New(primitive.AESSIV{})

	r := c.EncryptLevel2("x", layered.Passphrase{Value: passphrase.MustDerive("a")}, layered.Passphrase{})
	requireError(t, r, layered.ErrMissingPassphrase)
	assert.Equal(t, layered.SecondName+" not supplied", r.Message)
}

func TestWrongPassphrase(t *testing.T) {
	t.Parallel()

	for _, name := range []string{primitive.NameAESSIV, primitive.NameChaCha} {
		c := layered.New(primitives()[name])

		enc := c.EncryptAtLevel("hello", layered.Level1, keys("A", ""))
		require.True(t, enc.OK(), enc.Summary())

		dec := c.DecryptAtLevel(enc.String(), layered.Level1, layered.Keys{
			First: layered.Passphrase{Name: "account key", Value: passphrase.MustDerive("B")},
		})
		requireError(t, dec, layered.ErrPrimitiveFailure)
		assert.Equal(t, "account key is incorrect or ciphertext is corrupt", dec.Message)
		assert.Equal(t, layered.Level1, *dec.Level)
	}
}

func TestCorruptCiphertext(t *testing.T) {
	t.Parallel()

	c := layered.New(primitive.AESCBC{})

	dec := c.DecryptAtLevel("definitely not a ciphertext", layered.Level1, keys("A", ""))
	requireError(t, dec, layered.ErrPrimitiveFailure)
}

func TestLevelIndependence(t *testing.T) {
	t.Parallel()

	c := layered.New(primitive.AESSIV{})
	k := keys("first", "second")

	level1 := c.EncryptAtLevel("hello", layered.Level1, k)
	require.True(t, level1.OK())

	dec := c.DecryptAtLevel(level1.String(), layered.Level2, k)
	require.False(t, dec.OK(), "level 1 ciphertext must not decrypt at level 2")
	assert.Nil(t, dec.Value)

	level2 := c.EncryptAtLevel("hello", layered.Level2, k)
	require.True(t, level2.OK())

	dec = c.DecryptAtLevel(level2.String(), layered.Level1, k)
	if dec.OK() {
		assert.NotEqual(t, "hello", dec.String(), "level 2 ciphertext must not yield the plaintext at level 1")
	}
}

func TestOrderSensitivity(t *testing.T) {
	t.Parallel()

	for name, p := range map[string]primitive.Primitive{
		primitive.NameAESSIV: primitive.AESSIV{},
		primitive.NameChaCha: primitives()[primitive.NameChaCha],
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			c := layered.New(p)
			k := keys("first", "second")

			enc := c.EncryptAtLevel("hello", layered.Level2, k)
			require.True(t, enc.OK(), enc.Summary())

			swapped := layered.Keys{First: k.Second, Second: k.First}
			dec := c.DecryptAtLevel(enc.String(), layered.Level2, swapped)
			requireError(t, dec, layered.ErrPrimitiveFailure)
			assert.Contains(t, dec.Message, "passphrase2", "the outer layer fails first")
		})
	}
}

func TestLevel2Composition(t *testing.T) {
	t.Parallel()

	// AES-SIV is deterministic, so the nesting can be compared directly.
	c := layered.New(primitive.AESSIV{})
	k := keys("first", "second")

	inner := c.EncryptOnce("hello", k.Second)
	require.True(t, inner.OK())

	outer := c.EncryptLevel1(inner.String(), k.First)
	require.True(t, outer.OK())

	level2 := c.EncryptLevel2("hello", k.First, k.Second)
	require.True(t, level2.OK())
	assert.Equal(t, outer.String(), level2.String())

	peeled := c.DecryptLevel1(level2.String(), k.First)
	require.True(t, peeled.OK())
	assert.Equal(t, inner.String(), peeled.String())
}

func TestSchedule(t *testing.T) {
	t.Parallel()

	k := keys("first", "second")

	names := func(level layered.Level) []string {
		var out []string
		for _, p := range k.Schedule(level) {
			out = append(out, p.Name)
		}

		return out
	}

	assert.Empty(t, names(layered.Level0))
	assert.Equal(t, []string{"passphrase1"}, names(layered.Level1))
	assert.Equal(t, []string{"passphrase2", "passphrase1"}, names(layered.Level2))
	assert.Nil(t, k.Schedule(layered.Level(9)))
}

func TestUnsupportedLevel(t *testing.T) {
	t.Parallel()

	c := layered.New(primitive.AESSIV{})
	k := keys("a", "b")

	for _, r := range []layered.Result{
		c.EncryptAtLevel("x", layered.Level(9), k),
		c.DecryptAtLevel("x", layered.Level(9), k),
		c.EncryptAtLevel("", layered.Level(-1), k),
	} {
		requireError(t, r, layered.ErrUnsupportedLevel)
		assert.Nil(t, r.Level)
	}

	r := c.EncryptAtLevel("x", layered.Level(9), k)
	assert.Equal(t, "unsupported security level: 9", r.Message)

	_, err := layered.ParseLevel("9")
	require.ErrorIs(t, err, layered.ErrUnsupportedLevel)
	assert.Equal(t, "unsupported security level: 9", err.Error())

	for tag, want := range map[string]layered.Level{"0": layered.Level0, "1": layered.Level1, "2": layered.Level2} {
		got, err := layered.ParseLevel(tag)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	for _, tag := range []string{"", " 1", "01", "two", "3"} {
		_, err := layered.ParseLevel(tag)
		require.Error(t, err, tag)
	}
}

func TestConcurrentUse(t *testing.T) {
	t.Parallel()

	c := layered.New(primitive.AESCBC{})
	k := keys("first", "second")

	var wg sync.WaitGroup

	errs := make(chan error, 16)

	for i := range 16 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			v := fmt.Sprintf("value-%d", i)

			enc := c.EncryptAtLevel(v, layered.Level2, k)
			dec := c.DecryptAtLevel(enc.String(), layered.Level2, k)

			if !dec.OK() || dec.String() != v {
				errs <- errors.New(dec.Summary())
			}
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}
