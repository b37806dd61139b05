package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func sign(t *testing.T, method jwt.SigningMethod, claims jwt.Claims, key any) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("SignedString() unexpected error: %v", err)
	}
	return s
}

// validClaims returns claims NewIssuer accepts, for tests to break one field at a time.
func validClaims() jwt.RegisteredClaims {
	now := time.Now()
	return jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   "session-1",
		Audience:  jwt.ClaimStrings{audience},
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
}

func TestIssueRoundTrip(t *testing.T) {
	iss := NewIssuer(testSecret)

	tok, err := iss.Issue("session-1", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	id, err := iss.SessionID(tok)
	if err != nil {
		t.Fatalf("SessionID() unexpected error: %v", err)
	}
	if id != "session-1" {
		t.Errorf("SessionID() = %q, want %q", id, "session-1")
	}
}

func TestIssueRejectsEmptySession(t *testing.T) {
	if _, err := NewIssuer(testSecret).Issue("", time.Now().Add(time.Hour)); err == nil {
		t.Error("Issue(\"\") expected an error")
	}
}

func TestSessionIDInvalid(t *testing.T) {
	tests := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{
			name:  "garbage",
			token: func(*testing.T) string { return "not-a-valid-token" },
		},
		{
			name: "wrong secret",
			token: func(t *testing.T) string {
				tok, _ := NewIssuer("other-secret").Issue("session-1", time.Now().Add(time.Hour))
				return tok
			},
		},
		{
			name: "expired",
			token: func(t *testing.T) string {
				tok, _ := NewIssuer(testSecret).Issue("session-1", time.Now().Add(-time.Minute))
				return tok
			},
		},
		{
			name: "no expiry",
			token: func(t *testing.T) string {
				c := validClaims()
				c.ExpiresAt = nil
				return sign(t, jwt.SigningMethodHS256, c, []byte(testSecret))
			},
		},
		{
			name: "other HMAC algorithm",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS512, validClaims(), []byte(testSecret))
			},
		},
		{
			name: "wrong issuer",
			token: func(t *testing.T) string {
				c := validClaims()
				c.Issuer = "vaultpass"
				return sign(t, jwt.SigningMethodHS256, c, []byte(testSecret))
			},
		},
		{
			name: "wrong audience",
			token: func(t *testing.T) string {
				c := validClaims()
				c.Audience = jwt.ClaimStrings{"wrong-audience"}
				return sign(t, jwt.SigningMethodHS256, c, []byte(testSecret))
			},
		},
		{
			name: "issued in the future",
			token: func(t *testing.T) string {
				c := validClaims()
				c.IssuedAt = jwt.NewNumericDate(time.Now().Add(time.Hour))
				return sign(t, jwt.SigningMethodHS256, c, []byte(testSecret))
			},
		},
		{
			name: "missing session id",
			token: func(t *testing.T) string {
				c := validClaims()
				c.Subject = ""
				return sign(t, jwt.SigningMethodHS256, c, []byte(testSecret))
			},
		},
	}

	iss := NewIssuer(testSecret)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := iss.SessionID(tt.token(t)); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("SessionID() error = %v, want %v", err, ErrInvalidToken)
			}
		})
	}
}
