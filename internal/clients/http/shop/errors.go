package shop

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var (
	// ErrUnauthorized matches APIErrors with status 401; the caller's credential is no longer valid.
	ErrUnauthorized = errors.New("shop API rejected the credential")
	// ErrNotFound matches APIErrors with status 404.
	ErrNotFound = errors.New("shop API resource not found")
)

// APIError is a non-2xx answer from the shop API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("shop API error (status %d): %s", e.Status, e.Message)
}

// Is lets errors.Is match the status sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	default:
		return false
	}
}

// StatusCode returns the HTTP status carried by err, or 0 when err is not an APIError.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

func decodeAPIError(res *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(res.Body, 64<<10))
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	_ = json.Unmarshal(body, &payload)
	return &APIError{Status: res.StatusCode, Message: errorMessage(payload.Message, payload.Error, res.Status)}
}

func errorMessage(candidates ...string) string {
	for _, c := range candidates {
		if msg := strings.TrimSpace(c); msg != "" {
			return msg
		}
	}
	return "something went wrong"
}
