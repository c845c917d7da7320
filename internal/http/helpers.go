package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"cassa/internal/core"
	"cassa/internal/export"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps domain errors onto HTTP statuses: validation
// failures tell the caller to re-prompt, lookups report absence, anything
// else is internal.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrEmptyName),
		errors.Is(err, core.ErrInvalidPrice),
		errors.Is(err, core.ErrDuplicateName):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, core.ErrUnknownProduct),
		errors.Is(err, core.ErrBadIndex),
		errors.Is(err, export.ErrNoHistory):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, export.ErrBadFormat):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func pathIndex(r *http.Request) (int, error) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		return 0, core.ErrBadIndex
	}
	return index, nil
}

func queryInt(r *http.Request, key string, fallback int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
