// internal/adapters/in/http/store/handler/helper_handler.go
package storeHandler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"storefront/internal/application/usecase"
	"storefront/internal/domain/common"
)

// ============================================================
// Response envelope
// ============================================================
//
// 全エンドポイント共通: {"success": bool, "message": string, ...payload}

func writeOK(w http.ResponseWriter, code int, message string, payload map[string]any) {
	body := map[string]any{
		"success": true,
		"message": message,
	}
	for k, v := range payload {
		body[k] = v
	}
	writeJSON(w, code, body)
}

func writeFail(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]any{
		"success": false,
		"message": strings.TrimSpace(message),
	})
}

// statusForErr maps app errors onto HTTP statuses.
func statusForErr(err error) int {
	switch {
	case errors.Is(err, common.ErrValidation), errors.Is(err, common.ErrEmptyCart):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrAuthFailed):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrConflict),
		errors.Is(err, common.ErrInsufficientStock),
		errors.Is(err, common.ErrDuplicateEmail):
		return http.StatusConflict
	case errors.Is(err, common.ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeErr(w http.ResponseWriter, err error) {
	code := statusForErr(err)
	msg := err.Error()
	switch code {
	case http.StatusUnauthorized:
		msg = "invalid email or password"
	case http.StatusServiceUnavailable:
		msg = "storage unavailable"
	}
	writeFail(w, code, msg)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func methodNotAllowed(w http.ResponseWriter) {
	writeFail(w, http.StatusMethodNotAllowed, "method not allowed")
}

func notFound(w http.ResponseWriter) {
	writeFail(w, http.StatusNotFound, "not found")
}

// readJSON decodes a small JSON body into dst.
func readJSON(r *http.Request, dst any) error {
	defer func() { _, _ = io.Copy(io.Discard, r.Body) }()
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// pathTail returns the path segment after prefix, trailing slash absorbed.
// ok is false when the path does not start with prefix.
func pathTail(r *http.Request, prefix string) (string, bool) {
	p := strings.TrimSuffix(strings.TrimSpace(r.URL.Path), "/")
	if p == strings.TrimSuffix(prefix, "/") {
		return "", true
	}
	if !strings.HasPrefix(p, prefix) {
		return "", false
	}
	return strings.TrimPrefix(p, prefix), true
}
