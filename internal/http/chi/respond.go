package chi

import (
	"encoding/json"
	"net/http"

	"github.com/marcelsud/bookstore-catalog/fault"
	"github.com/rs/zerolog"
)

/* respondError is the only place an error response is written. Handlers
 * funnel every failure here, so each endpoint shares one envelope shape.
 */

type errorEnvelope struct {
	Status     string `json:"status"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func respondError(w http.ResponseWriter, logger zerolog.Logger, err error) {
	f := fault.From(err)

	// The original failure is logged before responding; a logging failure
	// must never prevent the response from being sent.
	logger.Error().Err(err).Int("status_code", f.StatusCode()).Msg("request failed")

	writeEnvelope(w, logger, f.StatusCode(), f.Error())
}

func writeEnvelope(w http.ResponseWriter, logger zerolog.Logger, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(errorEnvelope{
		Status:     "error",
		StatusCode: statusCode,
		Message:    message,
	}); err != nil {
		logger.Error().Err(err).Msg("writing error response")
	}
}

func respondJSON(w http.ResponseWriter, logger zerolog.Logger, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error().Err(err).Msg("writing response")
	}
}

// decodeJSON reads the request body, reporting malformed JSON as a
// validation failure so it follows the normal error path.
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fault.NewValidation("invalid request body")
	}
	return nil
}
