package handlers

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rohits-web03/lumina/internal/utils"
)

const stateTTL = 10 * time.Minute

// Sign-in flows carried through the OAuth state.
const (
	flowLogin    = "login"
	flowRegister = "register"
)

type oauthState struct {
	Flow string `json:"flow"`
	jwt.RegisteredClaims
}

// GenerateState creates a signed, short-lived OAuth state that carries the
// sign-in flow ("login" or "register") back to the callback.
func GenerateState(secret, flow string, now time.Time) (string, error) {
	nonce, err := utils.GenerateSecureToken(16)
	if err != nil {
		return "", fmt.Errorf("failed to generate state nonce: %w", err)
	}
	claims := oauthState{
		Flow: flow,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        nonce,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(stateTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(stateKey(secret))
}

// DecodeState verifies the state and returns the flow it was created for.
func DecodeState(secret, state string) (string, error) {
	var claims oauthState
	_, err := jwt.ParseWithClaims(state, &claims, func(*jwt.Token) (any, error) {
		return stateKey(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return "", fmt.Errorf("invalid state: %w", err)
	}
	switch claims.Flow {
	case flowLogin, flowRegister:
		return claims.Flow, nil
	default:
		return "", fmt.Errorf("invalid state flow %q", claims.Flow)
	}
}

// stateKey keeps state signatures apart from access-token signatures.
func stateKey(secret string) []byte {
	return []byte("oauth-state:" + secret)
}
