package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"math/big"
	"strings"
)

// GenerateSecureToken creates a cryptographically secure random token.
func GenerateSecureToken(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// GenerateNumericCode returns a random code of exactly digits decimal digits
// with no leading zero, e.g. 6 digits -> 100000..999999.
func GenerateNumericCode(digits int) (string, error) {
	if digits <= 0 {
		return "", fmt.Errorf("digits must be positive")
	}
	low := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits-1)), nil)
	span := new(big.Int).Sub(new(big.Int).Mul(low, big.NewInt(10)), low)
	if digits == 1 {
		low, span = big.NewInt(0), big.NewInt(10)
	}
	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", err
	}
	code := n.Add(n, low).String()
	return strings.Repeat("0", digits-len(code)) + code, nil
}
