package errors

import (
	"errors"

	"github.com/gin-gonic/gin"
)

const ContentTypeProblemJSON = "application/problem+json"

// ErrorMapper turns a known error into a problem.
type ErrorMapper func(err error) (ProblemDetail, bool)

// Responder writes problem+json answers. Errors no mapper claims become 500s.
type Responder struct {
	mappers []ErrorMapper
}

func NewResponder(mappers ...ErrorMapper) *Responder {
	return &Responder{mappers: mappers}
}

// Respond writes problem, defaulting Instance to the request path.
func (r *Responder) Respond(c *gin.Context, problem ProblemDetail) {
	if problem.Instance == "" {
		problem.Instance = c.Request.URL.Path
	}
	if value, ok := problem.RetryAfter(); ok {
		c.Header("Retry-After", value)
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.JSON(problem.Status, problem)
}

func (r *Responder) RespondError(c *gin.Context, err error) {
	var problem ProblemDetail
	if errors.As(err, &problem) {
		r.Respond(c, problem)
		return
	}
	for _, mapper := range r.mappers {
		if problem, ok := mapper(err); ok {
			r.Respond(c, problem)
			return
		}
	}
	r.Respond(c, ErrInternal.WithDetail(err.Error()))
}

var plain = NewResponder()

// Respond writes problem without any error mapping.
func Respond(c *gin.Context, problem ProblemDetail) {
	plain.Respond(c, problem)
}
