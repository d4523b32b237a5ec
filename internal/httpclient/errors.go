package httpclient

import (
	"encoding/json"
	"fmt"
)

const (
	// NetworkErrorMessage is reported when a request was sent but no response came back.
	NetworkErrorMessage = "Network error. Please check if the server is running."

	defaultServerMessage = "An error occurred"
	defaultClientMessage = "An unexpected error occurred"
)

// APIError is the single failure shape returned by Client. Status is the HTTP
// status for server-side failures and 0 when no response was received or the
// request could not be built or decoded.
type APIError struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("http %d: %s", e.Status, e.Message)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// serverFailure builds the error for a response with status >= 400. The server
// reports failures as {"error": "..."}; anything else falls back to a generic text.
func serverFailure(status int, body []byte) *APIError {
	var payload struct {
		Error string `json:"error"`
	}
	msg := defaultServerMessage
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		msg = payload.Error
	}
	return &APIError{Message: msg, Status: status}
}

func networkFailure(err error) *APIError {
	return &APIError{Message: NetworkErrorMessage, Status: 0, Err: err}
}

func clientFailure(err error) *APIError {
	msg := defaultClientMessage
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return &APIError{Message: msg, Status: 0, Err: err}
}
