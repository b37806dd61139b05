package handler

import (
	_ "embed"
	"net/http"
)

//go:embed web/index.html
var indexHTML []byte

// HandleIndex serves the generator form. All state changes go through the JSON API.
func HandleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(indexHTML)
}
