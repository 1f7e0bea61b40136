package api

import (
	"encoding/json"
	"net/http"
	"time"

	"design-studio/backend/internal/constants"
	"design-studio/backend/internal/logging"
	"design-studio/backend/internal/models/dtos/responses"
)

// respondWithJSON writes body as-is, without the API envelope
func respondWithJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Error("JSON encode failed", "error", err.Error())
	}
}

// respondWithRawJSON writes an already encoded JSON document
func respondWithRawJSON(w http.ResponseWriter, statusCode int, body json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = w.Write(body)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	resp := responses.APIResponse[any]{
		Status:    string(constants.APIStatusError),
		Timestamp: time.Now().UTC(),
		Error:     message,
	}

	respondWithJSON(w, statusCode, resp)
}
