package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/supplychain/backend/internal/domain/shared"
)

func TestHandleError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{"not found", shared.ErrNotFound, http.StatusNotFound, "ERR_NOT_FOUND"},
		{"conflict", shared.ErrConflict, http.StatusConflict, "ERR_CONFLICT"},
		{"invalid input", shared.ErrInvalidInput, http.StatusBadRequest, "ERR_INVALID_INPUT"},
		{"invalid state", shared.ErrInvalidState, http.StatusUnprocessableEntity, "ERR_INVALID_STATE"},
		{"insufficient stock", shared.ErrInsufficientStock, http.StatusUnprocessableEntity, "ERR_INSUFFICIENT_STOCK"},
		{"upstream unavailable", shared.ErrUpstreamUnavailable, http.StatusBadGateway, "ERR_UPSTREAM_UNAVAILABLE"},
		{"wrapped domain error", errorsJoin(shared.ErrNotFound), http.StatusNotFound, "ERR_NOT_FOUND"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "ERR_INTERNAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			h.HandleError(c, tt.err)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedCode)
		})
	}
}

func errorsJoin(err error) error {
	return errors.Join(errors.New("save order"), err)
}

func TestHandleErrorNilIsNoop(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	h.HandleError(c, nil)

	assert.Empty(t, w.Body.String())
}

func TestErrorResponseCarriesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set("request_id", "req-42")

	h.NotFound(c, "Order not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "req-42")
}
