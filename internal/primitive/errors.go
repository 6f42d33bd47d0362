package primitive

import "errors"

var (
	// ErrUnsupported is returned for an unknown primitive name.
	ErrUnsupported = errors.New("unsupported primitive")
	// ErrMalformed is returned when a ciphertext cannot be parsed.
	ErrMalformed = errors.New("malformed ciphertext")
	// ErrEmptyData is returned when attempting to unpad empty input data.
	ErrEmptyData = errors.New("empty data")
	// ErrInvalidPadding is returned when PKCS7 padding is malformed.
	ErrInvalidPadding = errors.New("invalid padding")
	// ErrInvalidBlockSize is returned when encrypted data length is not aligned with AES block size.
	ErrInvalidBlockSize = errors.New("ciphertext is not a multiple of block size")
)
