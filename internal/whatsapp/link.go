// internal/whatsapp/link.go

// Package whatsapp builds wa.me deep links that open a chat with a
// pre-filled message.
package whatsapp

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const baseURL = "https://wa.me/"

var ErrInvalidNumber = errors.New("invalid phone number")

// Link returns the deep link for phone with message as the text parameter.
// The phone is used as given, without separators.
func Link(phone, message string) string {
	return baseURL + digitsOnly(phone) + "?text=" + EscapeComponent(message)
}

// NormalizeNumber strips separators from raw and checks that the result is
// a valid number for region. The returned digits are what Link expects.
func NormalizeNumber(raw, region string) (string, error) {
	digits := digitsOnly(raw)
	if digits == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidNumber)
	}

	num, err := phonenumbers.Parse(strings.TrimSpace(raw), region)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidNumber, err)
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", fmt.Errorf("%w: %s is not a valid %s number", ErrInvalidNumber, raw, region)
	}
	return digits, nil
}

// DisplayNumber formats raw in international notation, falling back to raw
// when it cannot be parsed.
func DisplayNumber(raw, region string) string {
	num, err := phonenumbers.Parse(strings.TrimSpace(raw), region)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return raw
	}
	return phonenumbers.Format(num, phonenumbers.INTERNATIONAL)
}

func digitsOnly(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

const upperHex = "0123456789ABCDEF"

// EscapeComponent percent-encodes s the way browsers encode a URI component:
// letters, digits and -_.!~*'() are kept, every other byte of the UTF-8
// encoding becomes %XX. Spaces are %20, never '+'.
func EscapeComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 3)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperHex[c>>4])
		b.WriteByte(upperHex[c&15])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
