package model

import (
	"encoding/json"
	"time"

	"github.com/vaultpass/passgen/internal/notify"
)

// GenerateRequest represents a password generation request.
// Pointer fields distinguish between missing (nil -> keep current or default) and explicit values.
// Length is kept as a JSON number so that values of any magnitude can be clamped.
type GenerateRequest struct {
	Length    *json.Number `json:"length"`
	Uppercase *bool        `json:"uppercase"`
	Lowercase *bool        `json:"lowercase"`
	Numbers   *bool        `json:"numbers"`
	Symbols   *bool        `json:"symbols"`
}

// GenerateResponse represents a password generation response.
type GenerateResponse struct {
	Password      string                `json:"password"`
	Length        int                   `json:"length"`
	Notifications []notify.Notification `json:"notifications,omitempty"`
}

// LengthRequest sets the configured length; out-of-range values are clamped.
// Length is required.
type LengthRequest struct {
	Length *json.Number `json:"length"`
}

// FlagRequest toggles a single character class. Enabled is required.
type FlagRequest struct {
	Enabled *bool `json:"enabled"`
}

// StateResponse is a snapshot of a generator's configuration and current password.
type StateResponse struct {
	Length    int    `json:"length"`
	Uppercase bool   `json:"uppercase"`
	Lowercase bool   `json:"lowercase"`
	Numbers   bool   `json:"numbers"`
	Symbols   bool   `json:"symbols"`
	Password  string `json:"password"`
}

// CopyResponse reports the outcome of a clipboard copy.
type CopyResponse struct {
	Copied        bool                  `json:"copied"`
	Notifications []notify.Notification `json:"notifications"`
}

// SessionResponse is returned when a generator session is created.
type SessionResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	State     StateResponse `json:"state"`
}

// ErrorResponse carries an error message and any notifications raised while handling the request.
type ErrorResponse struct {
	Error         string                `json:"error"`
	Notifications []notify.Notification `json:"notifications,omitempty"`
}
