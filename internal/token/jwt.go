package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	issuer   = "passgen"
	audience = "passgen-api"

	// leeway absorbs clock skew between the signing and verifying hosts.
	leeway = 5 * time.Second
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Issuer signs session tokens and resolves them back to session IDs. The
// session ID travels in the standard "sub" claim.
type Issuer struct {
	key    []byte
	parser *jwt.Parser
}

// NewIssuer creates an Issuer that signs with HS256 under secret.
func NewIssuer(secret string) *Issuer {
	return &Issuer{
		key: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(issuer),
			jwt.WithAudience(audience),
			jwt.WithExpirationRequired(),
			jwt.WithIssuedAt(),
			jwt.WithLeeway(leeway),
		),
	}
}

// Issue returns a token for sessionID that stops being valid at expiresAt.
func (i *Issuer) Issue(sessionID string, expiresAt time.Time) (string, error) {
	if sessionID == "" {
		return "", errors.New("token: empty session id")
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   sessionID,
		Audience:  jwt.ClaimStrings{audience},
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.key)
}

// SessionID verifies tok and returns the session it was issued for. Every
// failure wraps ErrInvalidToken.
func (i *Issuer) SessionID(tok string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := i.parser.ParseWithClaims(tok, &claims, func(*jwt.Token) (any, error) {
		return i.key, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: no session id", ErrInvalidToken)
	}
	return claims.Subject, nil
}
