// Package errors renders storefront failures as RFC 7807 problem documents.
package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

// ProblemDetail is one problem+json document. Extensions are emitted as
// top-level members next to the standard ones.
type ProblemDetail struct {
	Type     string
	Title    string
	Status   int
	Detail   string
	Instance string

	Extensions map[string]any

	retryAfter int
}

func (p ProblemDetail) Error() string {
	if p.Detail != "" {
		return fmt.Sprintf("%s: %s", p.Title, p.Detail)
	}
	return p.Title
}

// MarshalJSON flattens Extensions. Standard members win on key clashes.
func (p ProblemDetail) MarshalJSON() ([]byte, error) {
	doc := make(map[string]any, len(p.Extensions)+5)
	for key, value := range p.Extensions {
		doc[key] = value
	}
	doc["type"] = p.Type
	doc["title"] = p.Title
	doc["status"] = p.Status
	if p.Detail != "" {
		doc["detail"] = p.Detail
	}
	if p.Instance != "" {
		doc["instance"] = p.Instance
	}
	return json.Marshal(doc)
}

func (p ProblemDetail) WithDetail(detail string) ProblemDetail {
	p.Detail = detail
	return p
}

// WithExtension returns a copy carrying key. The receiver's map is never shared.
func (p ProblemDetail) WithExtension(key string, value any) ProblemDetail {
	ext := make(map[string]any, len(p.Extensions)+1)
	for k, v := range p.Extensions {
		ext[k] = v
	}
	ext[key] = value
	p.Extensions = ext
	return p
}

// WithRetryAfter asks the responder to send a Retry-After header.
func (p ProblemDetail) WithRetryAfter(seconds int) ProblemDetail {
	p.retryAfter = seconds
	return p
}

// RetryAfter returns the Retry-After header value, if any.
func (p ProblemDetail) RetryAfter() (string, bool) {
	if p.retryAfter <= 0 {
		return "", false
	}
	return strconv.Itoa(p.retryAfter), true
}

func problem(slug, title string, status int) ProblemDetail {
	return ProblemDetail{Type: "/problems/" + slug, Title: title, Status: status}
}

var (
	ErrBadRequest    = problem("bad-request", "Bad Request", http.StatusBadRequest)
	ErrValidation    = problem("validation-error", "Validation Error", http.StatusBadRequest)
	ErrUnauthorized  = problem("unauthorized", "Unauthorized", http.StatusUnauthorized)
	ErrForbidden     = problem("forbidden", "Forbidden", http.StatusForbidden)
	ErrNotFound      = problem("not-found", "Resource Not Found", http.StatusNotFound)
	ErrConflict      = problem("conflict", "Conflict", http.StatusConflict)
	ErrUnprocessable = problem("unprocessable-entity", "Unprocessable Entity", http.StatusUnprocessableEntity)
	ErrInternal      = problem("internal-error", "Internal Server Error", http.StatusInternalServerError)
	// ErrUpstream means the shop API failed to serve the request.
	ErrUpstream = problem("upstream-error", "Upstream Error", http.StatusBadGateway)
	// ErrUnavailable means the answer is not ready yet; retry shortly.
	ErrUnavailable = problem("service-unavailable", "Service Unavailable", http.StatusServiceUnavailable)
)

// ForStatus picks the template matching status, falling back to ErrInternal.
func ForStatus(status int) ProblemDetail {
	for _, p := range []ProblemDetail{
		ErrBadRequest, ErrUnauthorized, ErrForbidden, ErrNotFound,
		ErrConflict, ErrUnprocessable, ErrUpstream, ErrUnavailable,
	} {
		if p.Status == status {
			return p
		}
	}
	return ErrInternal
}
