package layered

// Default passphrase names used when a Keys slot has no name.
const (
	FirstName  = "passphrase1"
	SecondName = "passphrase2"
)

// Keys holds the passphrases available to a level operation.
// First guards level 1 and the outer layer of level 2; Second guards the inner layer of level 2.
type Keys struct {
	First  Passphrase
	Second Passphrase
}

type slot int

const (
	slotFirst slot = iota
	slotSecond
)

// layers lists the passphrase slots applied when encrypting at each level, innermost first.
// Decryption walks the same list backwards.
//
//nolint:gochecknoglobals
var layers = [...][]slot{
	Level0: nil,
	Level1: {slotFirst},
	Level2: {slotSecond, slotFirst},
}

func (k Keys) get(s slot) Passphrase {
	switch s {
	case slotFirst:
		return Passphrase{Name: nameOr(k.First.Name, FirstName), Value: k.First.Value}
	case slotSecond:
		return Passphrase{Name: nameOr(k.Second.Name, SecondName), Value: k.Second.Value}
	default:
		panic("layered: unknown passphrase slot")
	}
}

// Schedule returns the passphrases applied when encrypting at level, innermost first.
// It returns nil for level 0 and for unsupported levels.
func (k Keys) Schedule(level Level) []Passphrase {
	if !level.Valid() {
		return nil
	}

	schedule := make([]Passphrase, 0, len(layers[level]))

	for _, s := range layers[level] {
		schedule = append(schedule, k.get(s))
	}

	return schedule
}

// missing returns the first passphrase required at level that is empty, checking slots in ascending order.
func (k Keys) missing(level Level) (Passphrase, bool) {
	for s := slotFirst; int(s) < len(layers[level]); s++ {
		if p := k.get(s); p.Value == "" {
			return p, true
		}
	}

	return Passphrase{}, false
}

// EncryptAtLevel encrypts plain at level.
func (c *Cipher) EncryptAtLevel(plain string, level Level, keys Keys) Result {
	switch level {
	case Level0:
		return c.EncryptLevel0(plain)
	case Level1:
		return c.EncryptLevel1(plain, keys.First)
	case Level2:
		return c.EncryptLevel2(plain, keys.First, keys.Second)
	default:
		return c.fail(nil, "encrypt", unsupportedLevel(level.String()))
	}
}

// DecryptAtLevel decrypts ciphertext that was encrypted at level.
func (c *Cipher) DecryptAtLevel(ciphertext string, level Level, keys Keys) Result {
	switch level {
	case Level0:
		return c.DecryptLevel0(ciphertext)
	case Level1:
		return c.DecryptLevel1(ciphertext, keys.First)
	case Level2:
		return c.DecryptLevel2(ciphertext, keys.First, keys.Second)
	default:
		return c.fail(nil, "decrypt", unsupportedLevel(level.String()))
	}
}

// EncryptLevel0 returns plain unchanged.
func (c *Cipher) EncryptLevel0(plain string) Result {
	return Succeeded(Level0.ptr(), plain)
}

// DecryptLevel0 returns ciphertext unchanged.
func (c *Cipher) DecryptLevel0(ciphertext string) Result {
	return Succeeded(Level0.ptr(), ciphertext)
}

// EncryptLevel1 encrypts plain under first.
func (c *Cipher) EncryptLevel1(plain string, first Passphrase) Result {
	return c.encryptLayers(Level1, plain, Keys{First: first})
}

// DecryptLevel1 decrypts a level 1 ciphertext under first.
func (c *Cipher) DecryptLevel1(ciphertext string, first Passphrase) Result {
	return c.decryptLayers(Level1, ciphertext, Keys{First: first})
}

// EncryptLevel2 encrypts plain under second and the result under first.
func (c *Cipher) EncryptLevel2(plain string, first, second Passphrase) Result {
	return c.encryptLayers(Level2, plain, Keys{First: first, Second: second})
}

// DecryptLevel2 decrypts a level 2 ciphertext under first and the result under second.
func (c *Cipher) DecryptLevel2(ciphertext string, first, second Passphrase) Result {
	return c.decryptLayers(Level2, ciphertext, Keys{First: first, Second: second})
}

func (c *Cipher) encryptLayers(level Level, plain string, keys Keys) Result {
	if plain == "" {
		return Succeeded(level.ptr(), "")
	}

	if p, ok := keys.missing(level); ok {
		return c.fail(level.ptr(), "encrypt", missingPassphrase(p.Name))
	}

	value := plain

	for _, p := range keys.Schedule(level) {
		r := c.EncryptOnce(value, p)
		if !r.OK() {
			return r.at(level)
		}

		value = *r.Value
	}

	return c.EncryptLevel0(value).at(level)
}

func (c *Cipher) decryptLayers(level Level, ciphertext string, keys Keys) Result {
	if ciphertext == "" {
		return Succeeded(level.ptr(), "")
	}

	if p, ok := keys.missing(level); ok {
		return c.fail(level.ptr(), "decrypt", missingPassphrase(p.Name))
	}

	value := c.DecryptLevel0(ciphertext).String()
	schedule := keys.Schedule(level)

	for i := len(schedule) - 1; i >= 0; i-- {
		r := c.DecryptOnce(value, schedule[i])
		if !r.OK() {
			return r.at(level)
		}

		value = *r.Value
	}

	return Succeeded(level.ptr(), value)
}
