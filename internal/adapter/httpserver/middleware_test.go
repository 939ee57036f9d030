package httpserver

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AseemBaranwal/Sentimentor/internal/platform/correlation"
	apperrors "github.com/AseemBaranwal/Sentimentor/internal/platform/errors"
)

func TestErrorHandlingMiddleware_NoError(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}

	err := ErrorHandlingMiddleware()(handler)(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestErrorHandlingMiddleware_StructuredError(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		return apperrors.NotFoundError("Room not found").WithField("room_id", 123456)
	}

	err := ErrorHandlingMiddleware()(handler)(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error":"Room not found"`)
	assert.Contains(t, rec.Body.String(), `"type":"not_found"`)
	assert.Contains(t, rec.Body.String(), `"room_id":123456`)
}

func TestErrorHandlingMiddleware_PlainError(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		return errors.New("boom")
	}

	err := ErrorHandlingMiddleware()(handler)(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"type":"internal"`)
	// The raw cause must not leak to the client.
	assert.NotContains(t, rec.Body.String(), "boom")
}

func TestErrorHandlingMiddleware_EchoHTTPErrorPassthrough(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	httpErr := echo.NewHTTPError(http.StatusTooManyRequests, "slow down")
	handler := func(c echo.Context) error {
		return httpErr
	}

	err := ErrorHandlingMiddleware()(handler)(c)

	assert.Equal(t, httpErr, err)
}

func TestCorrelationMiddleware_InjectsID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var gotID string
	handler := func(c echo.Context) error {
		id, ok := correlation.ID(c.Request().Context())
		require.True(t, ok)
		gotID = id
		return nil
	}

	err := correlationMiddleware(handler)(c)

	require.NoError(t, err)
	assert.Len(t, gotID, 8)
}
