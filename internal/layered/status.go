package layered

import (
	"strconv"
)

// Status is the outcome tag of a Result.
type Status int

const (
	// StatusOK marks a successful operation. An empty value means there was no input.
	StatusOK Status = iota
	// StatusError marks a failed operation.
	StatusError
	// StatusUndefined marks a form field that does not exist.
	StatusUndefined
	// StatusMismatch marks a passphrase that differs from its confirmation.
	StatusMismatch
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusError:
		return "ERROR"
	case StatusUndefined:
		return "UNDEFINED"
	case StatusMismatch:
		return "MISMATCH"
	default:
		return "Status(" + strconv.Itoa(int(s)) + ")"
	}
}

// Level is a security level.
type Level int

const (
	// Level0 passes values through unencrypted.
	Level0 Level = iota
	// Level1 encrypts under one passphrase.
	Level1
	// Level2 encrypts under two nested passphrases.
	Level2
)

// Levels returns the supported levels in ascending order.
func Levels() []Level {
	return []Level{Level0, Level1, Level2}
}

// ParseLevel converts a level tag ("0", "1" or "2") into a Level.
func ParseLevel(tag string) (Level, error) {
	switch tag {
	case "0":
		return Level0, nil
	case "1":
		return Level1, nil
	case "2":
		return Level2, nil
	default:
		return 0, unsupportedLevel(tag)
	}
}

// Valid reports whether l is a supported level.
func (l Level) Valid() bool {
	return l >= Level0 && l <= Level2
}

func (l Level) String() string {
	return strconv.Itoa(int(l))
}

// Format renders an optional level, using "-" for nil.
func Format(l *Level) string {
	if l == nil {
		return "-"
	}

	return l.String()
}

func (l Level) ptr() *Level {
	return &l
}
