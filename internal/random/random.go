package random

import (
	"crypto/rand"
	"math/big"
	mathrand "math/rand"
)

var allowedLetters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")

// Letters generates n random letters suitable for unguessable identifiers.
func Letters(n uint) (string, error) {
	letters := make([]rune, n)
	for i := range letters {
		letterIndex, err := rand.Int(rand.Reader, big.NewInt(int64(len(allowedLetters))))
		if err != nil {
			return "", err
		}
		letters[i] = allowedLetters[letterIndex.Int64()]
	}
	return string(letters), nil
}

// Percent draws a uniform value in [0, 100). Gameplay rolls don't need
// cryptographic randomness, so this uses math/rand.
func Percent() float64 {
	return mathrand.Float64() * 100 //nolint:mnd // percentage scale
}
