package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/profilekeeper/internal/common"
)

type errorResponse struct {
	Error string `json:"error"`
}

// statusFor maps service errors to a status code and a client-facing message.
// Internal details of storage failures are not exposed.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrorConflict):
		return http.StatusBadRequest, common.ErrorConflict.Error()
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, common.ErrorIO):
		return http.StatusInternalServerError, "failed to store or read profile picture"
	case errors.Is(err, common.ErrorStorage):
		return http.StatusInternalServerError, "storage error"
	default:
		return http.StatusInternalServerError, common.ErrorInternal.Error()
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
