package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLogger_LogsRecoveredPanic(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	e := echo.New()
	e.Use(echomiddleware.RequestID())
	e.Use(RequestLogger(log))
	e.Use(Recovery(log))
	e.GET("/boom", func(echo.Context) error { panic("kaboom") })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var panicEvt, reqEvt map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &panicEvt))
	require.NoError(t, json.Unmarshal(lines[1], &reqEvt))

	assert.Equal(t, "kaboom", panicEvt["panic"])
	assert.Equal(t, "request", reqEvt["message"])
	assert.Equal(t, float64(http.StatusInternalServerError), reqEvt["status"])
	assert.Equal(t, "/boom", reqEvt["path"])
	assert.NotEmpty(t, reqEvt["request_id"])
	assert.Equal(t, panicEvt["request_id"], reqEvt["request_id"])
}
