package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultpass/passgen/internal/session"
	"github.com/vaultpass/passgen/internal/token"
)

const testSecret = "test-secret"

func newTestStore(t *testing.T) *session.Store {
	t.Helper()
	store, err := session.NewStore(session.Options{TTL: time.Minute, MaxSessions: 100})
	require.NoError(t, err)
	t.Cleanup(store.Close)
	return store
}

func TestSessionAuth(t *testing.T) {
	store := newTestStore(t)
	sess, err := store.Create()
	require.NoError(t, err)

	tokens := token.NewIssuer(testSecret)
	valid, err := tokens.Issue(sess.ID, sess.ExpiresAt)
	require.NoError(t, err)
	orphan, err := tokens.Issue("no-such-session", sess.ExpiresAt)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "valid token", header: "Bearer " + valid, wantStatus: http.StatusOK},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + valid, wantStatus: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer nope", wantStatus: http.StatusUnauthorized},
		{name: "unknown session", header: "Bearer " + orphan, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *session.Session
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got, _ = SessionFromContext(r.Context())
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/generator", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			SessionAuth(tokens, store)(next).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Same(t, sess, got)
			} else {
				assert.Nil(t, got)
				assert.Contains(t, w.Body.String(), `"error"`)
			}
		})
	}
}

func TestSessionFromContextMissing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := SessionFromContext(req.Context())
	assert.False(t, ok)
}
