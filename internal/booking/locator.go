package booking

import (
	"github.com/reserve-se/reserve-se/pkg/crypto"
)

const locatorAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewLocator generates a guest-facing booking reference of the form
// XXXX-XXXX over uppercase letters and digits.
func NewLocator() (string, error) {
	raw, err := crypto.GenerateRandomBytes(8)
	if err != nil {
		return "", err
	}
	buf := make([]byte, 9)
	for i, b := range raw {
		pos := i
		if i >= 4 {
			pos++
		}
		buf[pos] = locatorAlphabet[int(b)%len(locatorAlphabet)]
	}
	buf[4] = '-'
	return string(buf), nil
}
