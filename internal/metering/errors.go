package metering

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// unknownErrorMessage is used when the upstream error body carries no message.
const unknownErrorMessage = "Unknown error"

// APIError is an upstream failure: the remote call failed or returned a
// non-success status. The message is passed through from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	message := e.Message
	if message == "" {
		message = unknownErrorMessage
	}
	if e.Status == 0 {
		return fmt.Sprintf("metering: %s", message)
	}
	return fmt.Sprintf("metering: %s (status %d)", message, e.Status)
}

// AsAPIError unwraps err into an *APIError when possible.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsNotFound reports whether err is an upstream 404.
func IsNotFound(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Status == http.StatusNotFound
}

// ErrorMessage extracts the upstream message, defaulting to "Unknown error".
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	if apiErr, ok := AsAPIError(err); ok && strings.TrimSpace(apiErr.Message) != "" {
		return apiErr.Message
	}
	if message := strings.TrimSpace(err.Error()); message != "" {
		return message
	}
	return unknownErrorMessage
}

func decodeAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode, Message: unknownErrorMessage}
	data, _ := io.ReadAll(resp.Body)
	if len(data) == 0 {
		return apiErr
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return apiErr
	}
	if message := strings.TrimSpace(payload.Message); message != "" {
		apiErr.Message = message
	} else if message := strings.TrimSpace(payload.Error); message != "" {
		apiErr.Message = message
	}
	return apiErr
}
