package errors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProblemDetail_FlattensExtensions(t *testing.T) {
	p := ErrConflict.WithDetail("already in cart").
		WithExtension("outcome", "duplicate").
		WithExtension("status", "ignored")

	raw, err := json.Marshal(p)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))

	assert.Equal(t, "/problems/conflict", doc["type"])
	assert.Equal(t, "duplicate", doc["outcome"])
	assert.EqualValues(t, http.StatusConflict, doc["status"])
	assert.NotContains(t, doc, "instance")
	assert.Nil(t, ErrConflict.Extensions)
}

func TestForStatus(t *testing.T) {
	assert.Equal(t, ErrNotFound, ForStatus(http.StatusNotFound))
	assert.Equal(t, ErrBadRequest, ForStatus(http.StatusBadRequest))
	assert.Equal(t, ErrInternal, ForStatus(http.StatusTeapot))
}

func TestResponder_MapsAndFallsBack(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sentinel := assert.AnError
	r := NewResponder(func(err error) (ProblemDetail, bool) {
		if err == sentinel {
			return ErrUnavailable.WithRetryAfter(2), true
		}
		return ProblemDetail{}, false
	})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/cart", nil)
	r.RespondError(c, sentinel)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("Retry-After"))
	assert.Equal(t, ContentTypeProblemJSON, rec.Header().Get("Content-Type"))

	rec = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/cart", nil)
	r.RespondError(c, json.Unmarshal([]byte("{"), &struct{}{}))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "/cart", doc["instance"])
}
