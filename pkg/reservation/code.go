package reservation

import (
	"crypto/rand"
	"fmt"
)

// codeAlphabet is Crockford base32: no I, L, O or U, so codes survive being
// read over the phone.
const codeAlphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

const codeLength = 6

// NewCode generates the short public confirmation reference, e.g. "R-7F3K2M".
// It is the only identifier customers ever see.
func NewCode() (string, error) {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("could not generate reservation code: %w", err)
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return "R-" + string(buf), nil
}
