// Package invitecode implements the canonical invitation code format:
// eight characters over a restricted alphabet, displayed as XXXX-XXXX.
// All functions are pure; nothing here touches storage.
package invitecode

import (
	"crypto/rand"
	"fmt"
	"strings"
)

// Alphabet excludes I, O, 0 and 1; they are too easy to misread when a code
// is copied by hand. 32^8 possible codes.
const (
	Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	Length   = 8
)

// IsValidChar reports whether r can appear in a code entry field. Lowercase
// letters count as valid since Normalize uppercases them. Used to reject
// keystrokes up front instead of silently dropping characters later.
func IsValidChar(r rune) bool {
	if r >= 'a' && r <= 'z' {
		r -= 'a' - 'A'
	}
	return strings.ContainsRune(Alphabet, r)
}

// Normalize converts raw user input to canonical form: uppercase, strip
// everything outside the alphabet (hyphens included), truncate to Length.
// Idempotent.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(Length)
	for _, r := range strings.ToUpper(raw) {
		if !strings.ContainsRune(Alphabet, r) {
			continue
		}
		b.WriteRune(r)
		if b.Len() == Length {
			break
		}
	}
	return b.String()
}

// Format renders a canonical code for display, inserting a hyphen after the
// fourth character. Codes shorter than five characters are returned as typed
// so an input widget can format incrementally. Normalize(Format(c)) == c for
// any canonical c.
func Format(canonical string) string {
	if len(canonical) < 5 {
		return canonical
	}
	return canonical[:4] + "-" + canonical[4:]
}

// IsCanonical reports whether s is a complete canonical code.
func IsCanonical(s string) bool {
	if len(s) != Length {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune(Alphabet, r) {
			return false
		}
	}
	return true
}

// Generate returns a new random canonical code. The alphabet size divides
// 256, so taking each byte modulo the size stays uniform.
func Generate() (string, error) {
	buf := make([]byte, Length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	code := make([]byte, Length)
	for i, b := range buf {
		code[i] = Alphabet[int(b)%len(Alphabet)]
	}
	return string(code), nil
}
