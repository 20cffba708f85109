package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"procurement/models"
	"procurement/repository"
)

// ApiResponse is the envelope of every non-list response. Message carries the text the
// vendor screen shows in its notifications.
type ApiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ApiResponse{Success: false, Message: message})
}

// writeRepoError maps repository sentinels to 404/409 and hides everything else behind
// a generic 500 message.
func writeRepoError(w http.ResponseWriter, logger *slog.Logger, err error, notFound, duplicate, failed string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, notFound)
	case errors.Is(err, repository.ErrDuplicate):
		writeError(w, http.StatusConflict, duplicate)
	default:
		logger.Error(failed, "error", err)
		writeError(w, http.StatusInternalServerError, failed)
	}
}

func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// listFilters reads page, limit and search from the query string.
func listFilters(r *http.Request) models.ListFilters {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	return models.ListFilters{
		Page:   page,
		Limit:  limit,
		Search: q.Get("search"),
	}.Normalize()
}
