package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vaultpass/passgen/internal/clipboard"
	"github.com/vaultpass/passgen/internal/generator"
	"github.com/vaultpass/passgen/internal/middleware"
	"github.com/vaultpass/passgen/internal/model"
	"github.com/vaultpass/passgen/internal/notify"
	"github.com/vaultpass/passgen/internal/service"
)

// GeneratorHandler exposes a session's generator over HTTP.
type GeneratorHandler struct {
	source generator.Source
}

// NewGeneratorHandler creates a GeneratorHandler. src is used by the stateless endpoint.
func NewGeneratorHandler(src generator.Source) *GeneratorHandler {
	return &GeneratorHandler{source: src}
}

// HandleState handles GET /api/v1/generator requests.
func (h *GeneratorHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}
	writeJSON(w, http.StatusOK, sess.Generator.State())
}

// HandleSetLength handles PUT /api/v1/generator/length requests.
func (h *GeneratorHandler) HandleSetLength(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.LengthRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Length == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("length is required"))
		return
	}
	length, err := generator.ParseLength(req.Length.String())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	sess.Generator.SetLength(length)
	writeJSON(w, http.StatusOK, sess.Generator.State())
}

// HandleSetFlag handles PUT /api/v1/generator/flags/{class} requests.
func (h *GeneratorHandler) HandleSetFlag(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	class, err := generator.ParseClass(chi.URLParam(r, "class"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	var req model.FlagRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Enabled == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("enabled is required"))
		return
	}

	sess.Generator.SetFlag(class, *req.Enabled)
	writeJSON(w, http.StatusOK, sess.Generator.State())
}

// HandleGenerate handles POST /api/v1/generator/generate requests. Fields in
// the optional body are applied to the session before generating.
func (h *GeneratorHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.GenerateRequest
	if !decodeOptionalBody(w, r, &req) {
		return
	}
	if err := sess.Generator.Apply(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	h.generate(w, r, sess.Generator, sess.Notifications)
}

// HandleCopy handles POST /api/v1/generator/copy requests.
func (h *GeneratorHandler) HandleCopy(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	err := sess.Generator.CopyToClipboard(r.Context())
	notes := sess.Notifications.Drain()
	if err != nil {
		if errors.Is(err, clipboard.ErrUnavailable) {
			writeJSON(w, http.StatusServiceUnavailable, errorResponse(err.Error(), notes...))
			return
		}
		slog.Error("clipboard copy failed", "session_id", sess.ID, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error", notes...))
		return
	}

	writeJSON(w, http.StatusOK, model.CopyResponse{Copied: true, Notifications: notes})
}

// HandleGenerateOnce handles POST /api/v1/generate requests. It needs no
// session: missing fields take their defaults and nothing is kept.
func (h *GeneratorHandler) HandleGenerateOnce(w http.ResponseWriter, r *http.Request) {
	var req model.GenerateRequest
	if !decodeOptionalBody(w, r, &req) {
		return
	}

	rec := notify.NewRecorder()
	svc := service.NewGeneratorService(h.source, nil, rec)
	if err := svc.Apply(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	h.generate(w, r, svc, rec)
}

func (h *GeneratorHandler) generate(w http.ResponseWriter, r *http.Request, svc *service.GeneratorService, rec *notify.Recorder) {
	password, err := svc.Generate(r.Context())
	notes := rec.Drain()
	if err != nil {
		if errors.Is(err, generator.ErrNoCharacterClassSelected) {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error(), notes...))
			return
		}
		slog.Error("password generation failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, model.GenerateResponse{
		Password:      password,
		Length:        len(password),
		Notifications: notes,
	})
}
