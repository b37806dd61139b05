package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/vaultpass/passgen/internal/middleware"
	"github.com/vaultpass/passgen/internal/model"
	"github.com/vaultpass/passgen/internal/session"
	"github.com/vaultpass/passgen/internal/token"
)

// SessionHandler issues generator sessions.
type SessionHandler struct {
	store  *session.Store
	tokens *token.Issuer
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(store *session.Store, tokens *token.Issuer) *SessionHandler {
	return &SessionHandler{store: store, tokens: tokens}
}

// HandleCreate handles POST /api/v1/session requests.
func (h *SessionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	sess, err := h.store.Create()
	if err != nil {
		if errors.Is(err, session.ErrStoreFull) {
			writeJSON(w, http.StatusServiceUnavailable, errorResponse(err.Error()))
			return
		}
		slog.Error("session creation failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	tok, err := h.tokens.Issue(sess.ID, sess.ExpiresAt)
	if err != nil {
		h.store.Delete(sess.ID)
		slog.Error("token signing failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	slog.Info("session created", "session_id", sess.ID, "expires_at", sess.ExpiresAt)
	writeJSON(w, http.StatusCreated, model.SessionResponse{
		Token:     tok,
		ExpiresAt: sess.ExpiresAt.UTC(),
		State:     sess.Generator.State(),
	})
}

// HandleDelete handles DELETE /api/v1/session requests.
func (h *SessionHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	h.store.Delete(sess.ID)
	w.WriteHeader(http.StatusNoContent)
}
