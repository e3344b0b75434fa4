package usecase

import (
	"crypto/rand"
	"io"
)

// Card codes function as bearer tokens for paid access, so all three
// generators draw from crypto/rand. None of them guarantees uniqueness;
// callers rely on the storage unique constraints and surface conflicts.

const (
	cardCodePrefix   = "MKT-"
	cardCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	cardCodeGroups   = 4
	cardCodeGroupLen = 4

	usernamePrefix   = "user_"
	usernameAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	usernameLen      = 6

	// Excludes visually ambiguous characters (0/O, 1/I/l).
	passwordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghjkmnpqrstuvwxyz23456789"
	passwordLen      = 8
)

func randomString(alphabet string, n int) (string, error) {
	// Bytes at or above the largest multiple of len(alphabet) would skew the
	// low characters under plain modulo, so they are redrawn.
	limit := 256 - 256%len(alphabet)
	out := make([]byte, 0, n)
	buffer := make([]byte, n)
	for len(out) < n {
		if _, err := io.ReadFull(rand.Reader, buffer); err != nil {
			return "", err
		}
		for _, b := range buffer {
			if int(b) >= limit {
				continue
			}
			out = append(out, alphabet[int(b)%len(alphabet)])
			if len(out) == n {
				break
			}
		}
	}
	return string(out), nil
}

// GenerateCardCode creates a random, human-transcribable card code.
// Format: MKT-XXXX-XXXX-XXXX-XXXX over A-Z0-9.
func GenerateCardCode() (string, error) {
	out := cardCodePrefix
	for i := 0; i < cardCodeGroups; i++ {
		group, err := randomString(cardCodeAlphabet, cardCodeGroupLen)
		if err != nil {
			return "", err
		}
		if i > 0 {
			out += "-"
		}
		out += group
	}
	return out, nil
}

// GenerateUsername suggests a subscriber username: user_ + 6 of a-z0-9.
func GenerateUsername() (string, error) {
	suffix, err := randomString(usernameAlphabet, usernameLen)
	if err != nil {
		return "", err
	}
	return usernamePrefix + suffix, nil
}

// GeneratePassword creates an 8-character mixed-case password from an
// ambiguity-free alphabet.
func GeneratePassword() (string, error) {
	return randomString(passwordAlphabet, passwordLen)
}
