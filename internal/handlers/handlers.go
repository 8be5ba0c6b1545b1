package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/tobz1000/mines/internal/protocol"
	"github.com/tobz1000/mines/internal/sandbox"
)

const maxRequestSize = 16 << 20

func SendJSON(w http.ResponseWriter, v any) (int, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	w.Header().Set("Content-Type", "application/json")
	return w.Write(payload)
}

func sendJSONOrLog(w http.ResponseWriter, logger *slog.Logger, v any) {
	_, err := SendJSON(w, v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error(
			"unable to send response",
			slog.Any("response", v),
			slog.Any("error", err),
		)
	}
}

func wrapError(err error) protocol.ErrorResponse {
	return protocol.ErrorResponse{Error: err.Error()}
}

// statusCode maps game errors onto HTTP statuses. Anything it does not
// recognize is an internal error.
func statusCode(err error) int {
	switch {
	case errors.Is(err, sandbox.ErrInvalidParams),
		errors.Is(err, sandbox.ErrInvalidCoords):
		return http.StatusBadRequest
	case errors.Is(err, sandbox.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, sandbox.ErrGameOver):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func sendError(w http.ResponseWriter, logger *slog.Logger, err error) {
	code := statusCode(err)
	if code == http.StatusInternalServerError {
		logger.Error("unable to handle request", slog.Any("error", err))
		err = errors.New(http.StatusText(code))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	sendJSONOrLog(w, logger, wrapError(err))
}

func sendBadRequest(w http.ResponseWriter, logger *slog.Logger, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	sendJSONOrLog(w, logger, wrapError(err))
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestSize)).Decode(v)
}
