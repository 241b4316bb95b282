package transport

import (
	"encoding/json"
	"net/http"

	cerr "github.com/nlhsang/chat-account/utils/errors"
)

// response is the stable envelope the client consumes:
// {success, statusCode, message} plus data on success.
type response struct {
	Success    bool        `json:"success"`
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
}

func writeSuccess(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	writeJSON(w, statusCode, response{
		Success:    true,
		StatusCode: statusCode,
		Message:    message,
		Data:       data,
	})
}

// writeError maps CustomError to its status and message; anything else is an
// unexpected failure and becomes a generic 500 without leaking internals.
func writeError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	if ce, ok := err.(cerr.CustomError); ok {
		statusCode = ce.ErrorHTTPCode()
		message = ce.Error()
	}

	writeJSON(w, statusCode, response{
		Success:    false,
		StatusCode: statusCode,
		Message:    message,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}
