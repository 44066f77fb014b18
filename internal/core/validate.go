package core

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// DefaultMaxNameLen bounds display names.
	DefaultMaxNameLen = 20
	// DefaultMaxMessageLen bounds chat message bodies.
	DefaultMaxMessageLen = 200

	reservedName = "system"
)

// Limits carries the validation bounds the broker enforces.
type Limits struct {
	MaxNameLen    int
	MaxMessageLen int
}

// DefaultLimits returns the stock validation bounds.
func DefaultLimits() Limits {
	return Limits{
		MaxNameLen:    DefaultMaxNameLen,
		MaxMessageLen: DefaultMaxMessageLen,
	}
}

// SanitizeName strips everything but letters, digits, and spaces.
func SanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' {
			return r
		}
		return -1
	}, name)
}

// ValidateName sanitizes and bounds a display name. The name "system"
// is reserved in any casing.
func ValidateName(name string, max int) (string, error) {
	if max <= 0 {
		max = DefaultMaxNameLen
	}
	name = strings.TrimSpace(SanitizeName(name))
	if name == "" || utf8.RuneCountInString(name) > max {
		return "", ErrInvalidName
	}
	if strings.EqualFold(name, reservedName) {
		return "", ErrInvalidName
	}
	return name, nil
}

// ValidateMessage trims and bounds a chat message body.
func ValidateMessage(text string, max int) (string, error) {
	if max <= 0 {
		max = DefaultMaxMessageLen
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyMessage
	}
	if utf8.RuneCountInString(text) > max {
		return "", ErrMessageTooLong
	}
	return text, nil
}
