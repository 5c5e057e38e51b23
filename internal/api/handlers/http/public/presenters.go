package public

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/mufaddal-lashkar/safirah-server/pkg/e"
)

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	l := h.log(r)

	l.Error("handler error",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)

	switch {
	case errors.Is(err, e.ErrNotFound):
		h.writeJSON(w, http.StatusNotFound, failure("not found"))
	case errors.Is(err, e.ErrInvalidInput):
		h.writeJSON(w, http.StatusBadRequest, failure(fieldMessage(err)))
	case errors.Is(err, e.ErrConflict):
		h.writeJSON(w, http.StatusConflict, failure("conflict, please retry"))
	default:
		h.writeJSON(w, http.StatusInternalServerError, failure("internal error"))
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func failure(message string) map[string]any {
	return map[string]any{"success": false, "message": message}
}

// fieldMessage strips internal op prefixes ("service.Feed.Fetch: ...")
// and the sentinel suffix from a validation error, leaving only the
// field-level message for the client.
func fieldMessage(err error) string {
	msg := strings.TrimSuffix(err.Error(), ": "+e.ErrInvalidInput.Error())
	for {
		head, rest, found := strings.Cut(msg, ": ")
		if !found || strings.Contains(head, " ") {
			return msg
		}
		msg = rest
	}
}

func parseInt(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
