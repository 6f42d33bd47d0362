package layered

import (
	"strconv"
)

// Kind classifies a failure.
type Kind int

const (
	// KindMissingPassphrase: a required passphrase is empty.
	KindMissingPassphrase Kind = iota + 1
	// KindPrimitiveFailure: the cipher primitive failed or produced no output.
	KindPrimitiveFailure
	// KindDecodeFailure: decrypted bytes are not valid UTF-8 text.
	KindDecodeFailure
	// KindVerificationMismatch: a fresh ciphertext did not decrypt back to its plaintext.
	KindVerificationMismatch
	// KindUnsupportedLevel: the level is outside 0-2.
	KindUnsupportedLevel
	// KindMissingField: a form field is absent or no field was named.
	KindMissingField
	// KindMismatchedConfirmation: a passphrase differs from its confirmation.
	KindMismatchedConfirmation
)

func (k Kind) String() string {
	switch k {
	case KindMissingPassphrase:
		return "MissingPassphrase"
	case KindPrimitiveFailure:
		return "PrimitiveFailure"
	case KindDecodeFailure:
		return "DecodeFailure"
	case KindVerificationMismatch:
		return "VerificationMismatch"
	case KindUnsupportedLevel:
		return "UnsupportedLevel"
	case KindMissingField:
		return "MissingField"
	case KindMismatchedConfirmation:
		return "MismatchedConfirmation"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Error is a classified failure. Two errors match under errors.Is when their kinds are equal.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrMissingPassphrase      = &Error{Kind: KindMissingPassphrase, Message: "passphrase not supplied"}
	ErrPrimitiveFailure       = &Error{Kind: KindPrimitiveFailure, Message: "primitive failure"}
	ErrDecodeFailure          = &Error{Kind: KindDecodeFailure, Message: "decode failure"}
	ErrVerificationMismatch   = &Error{Kind: KindVerificationMismatch, Message: "post-encryption verification mismatch"}
	ErrUnsupportedLevel       = &Error{Kind: KindUnsupportedLevel, Message: "unsupported security level"}
	ErrMissingField           = &Error{Kind: KindMissingField, Message: "field not found"}
	ErrMismatchedConfirmation = &Error{Kind: KindMismatchedConfirmation, Message: "confirmation does not match"}
)

// NewError returns an *Error of the given kind.
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func missingPassphrase(name string) *Error {
	return NewError(KindMissingPassphrase, name+" not supplied")
}

func incorrectPassphrase(kind Kind, name string) *Error {
	return NewError(kind, name+" is incorrect or ciphertext is corrupt")
}

func unsupportedLevel(tag string) *Error {
	return NewError(KindUnsupportedLevel, "unsupported security level: "+tag)
}
