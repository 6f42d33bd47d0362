// Package item applies the layered cipher to form items.
//
// An item is a form with a security level field, one content field per level
// and up to two passphrase fields with optional confirmations. Encrypting an
// item at level L transforms each content field i <= L at level i.
package item

import (
	"github.com/idelchi/formcipher/internal/form"
	"github.com/idelchi/formcipher/internal/layered"
	"github.com/idelchi/formcipher/pkg/passphrase"
)

// Level reads the security level tag from the field fieldID.
// The tag is returned unparsed as the result value.
func Level(acc form.Accessor, fieldID string) layered.Result {
	if fieldID == "" {
		return layered.Failed(layered.StatusError, nil,
			layered.NewError(layered.KindMissingField, "security level not specified"))
	}

	tag, ok := acc.Field(fieldID)
	if !ok {
		return layered.Failed(layered.StatusError, nil, fieldNotFound(fieldID))
	}

	return layered.Succeeded(nil, tag)
}

// Passphrase reads the key field keyID, checks it against the confirmation field confirmID
// when one is named, and returns the derived passphrase as the result value.
// name is used in messages.
func Passphrase(acc form.Accessor, name, keyID, confirmID string) layered.Result {
	key, ok := lookup(acc, keyID)
	if !ok {
		return layered.Failed(layered.StatusUndefined, nil,
			layered.NewError(layered.KindMissingField, name+" not found"))
	}

	if key == "" {
		return layered.Failed(layered.StatusError, nil,
			layered.NewError(layered.KindMissingPassphrase, name+" not supplied"))
	}

	if confirmID != "" {
		confirm, ok := acc.Field(confirmID)

		switch {
		case !ok:
			return layered.Failed(layered.StatusUndefined, nil,
				layered.NewError(layered.KindMismatchedConfirmation, name+" (confirmation) not found"))
		case confirm == "":
			return layered.Failed(layered.StatusError, nil,
				layered.NewError(layered.KindMismatchedConfirmation, name+" (confirmation) not supplied"))
		case confirm != key:
			return layered.Failed(layered.StatusMismatch, nil,
				layered.NewError(layered.KindMismatchedConfirmation, name+" (confirmation) does not match"))
		}
	}

	return layered.Succeeded(nil, passphrase.MustDerive(key))
}

func lookup(acc form.Accessor, id string) (string, bool) {
	if id == "" {
		return "", false
	}

	return acc.Field(id)
}

func fieldNotFound(id string) *layered.Error {
	return layered.NewError(layered.KindMissingField, "field "+id+" not found")
}
