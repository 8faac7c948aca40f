package domain

import "crypto/rand"

// Alphabets for generated public identifiers. QR and checkpoint codes use
// uppercase alphanumerics; attendee IDs are numeric so they can be typed on
// a phone keypad.
const (
	CodeAlphabet  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	DigitAlphabet = "0123456789"
)

// RandomCode generates a random code of length n over the given alphabet.
// Codes are generated before an aggregate is constructed; uniqueness is
// enforced by storage indexes, with collision retries at the caller.
func RandomCode(n int, alphabet string) string {
	buf := make([]byte, n)
	// rand.Read never fails on supported platforms
	_, _ = rand.Read(buf)
	for i := range buf {
		buf[i] = alphabet[int(buf[i])%len(alphabet)]
	}
	return string(buf)
}
