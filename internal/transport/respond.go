package transport

import (
	"encoding/json"
	"net/http"

	"github.com/chemviz/equipview/internal/domain/dataset"
)

type errorResponse struct {
	Error string `json:"error"`
}

type validationResponse struct {
	Error   string                   `json:"error"`
	Details *dataset.ValidationError `json:"details"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeValidationError(w http.ResponseWriter, verr *dataset.ValidationError) {
	writeJSON(w, http.StatusBadRequest, validationResponse{
		Error:   verr.Error(),
		Details: verr,
	})
}
