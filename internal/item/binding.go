package item

import (
	"github.com/idelchi/formcipher/internal/form"
	"github.com/idelchi/formcipher/internal/layered"
)

// Secret names the fields holding one passphrase.
type Secret struct {
	// Name is used in messages. Defaults to the layered slot name.
	Name string
	// Field holds the passphrase.
	Field string
	// Confirm holds the confirmation. Empty disables the check.
	Confirm string
}

// Binding maps an item onto form fields.
type Binding struct {
	// LevelField holds the security level tag.
	LevelField string
	// Content holds the field id transformed at each level. An empty id skips the slot.
	Content [3]string
	// First guards level 1 and the outer layer of level 2.
	First Secret
	// Second guards the inner layer of level 2.
	Second Secret
}

func (b Binding) secrets() [2]Secret {
	first, second := b.First, b.Second

	if first.Name == "" {
		first.Name = layered.FirstName
	}

	if second.Name == "" {
		second.Name = layered.SecondName
	}

	return [2]Secret{first, second}
}

// SecretFields returns the ids of all passphrase and confirmation fields that are set.
func (b Binding) SecretFields() []string {
	var ids []string

	for _, s := range b.secrets() {
		for _, id := range []string{s.Field, s.Confirm} {
			if id != "" {
				ids = append(ids, id)
			}
		}
	}

	return ids
}

// Keys resolves the passphrases needed at level.
// A non-empty value in override wins over the form; otherwise the passphrase is read from acc.
// Passphrases not needed at level are left empty and their fields are not inspected.
func (b Binding) Keys(acc form.Accessor, level layered.Level, override layered.Keys) (layered.Keys, layered.Result) {
	secrets := b.secrets()
	overrides := [2]layered.Passphrase{override.First, override.Second}

	var resolved [2]layered.Passphrase

	for i, s := range secrets {
		resolved[i].Name = s.Name

		if int(level) <= i {
			continue
		}

		if overrides[i].Value != "" {
			resolved[i].Value = overrides[i].Value

			continue
		}

		r := Passphrase(acc, s.Name, s.Field, s.Confirm)
		if !r.OK() {
			return layered.Keys{}, r
		}

		resolved[i].Value = r.String()
	}

	return layered.Keys{First: resolved[0], Second: resolved[1]}, layered.Succeeded(nil, "")
}

// Apply writes the values of o into doc and removes the passphrase fields.
// Slots without a value are left untouched.
func (b Binding) Apply(doc *form.Document, o Outcome) {
	for i, id := range b.Content {
		if id == "" || o.Values[i] == nil {
			continue
		}

		doc.Set(id, *o.Values[i])
	}

	for _, id := range b.SecretFields() {
		doc.Delete(id)
	}
}
