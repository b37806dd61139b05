package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/vaultpass/passgen/internal/model"
	"github.com/vaultpass/passgen/internal/notify"
)

const maxBodyBytes = 1 << 10 // 1KB, requests carry a handful of fields

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func errorResponse(msg string, notes ...notify.Notification) model.ErrorResponse {
	return model.ErrorResponse{Error: msg, Notifications: notes}
}

// decodeBody decodes a required JSON body into v. It writes the error
// response itself and returns false on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	return decodeJSON(w, r, v, false)
}

// decodeOptionalBody is decodeBody for endpoints where an empty body means
// "no changes".
func decodeOptionalBody(w http.ResponseWriter, r *http.Request, v any) bool {
	return decodeJSON(w, r, v, true)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any, optional bool) bool {
	if r.Body == nil {
		return emptyBody(w, optional)
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return emptyBody(w, optional)
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
			return false
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return false
	}
	return true
}

func emptyBody(w http.ResponseWriter, optional bool) bool {
	if !optional {
		writeJSON(w, http.StatusBadRequest, errorResponse("request body is required"))
	}
	return optional
}
