package wshub

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"sourcelike.dev/typegen/hub"
	"sourcelike.dev/typegen/log"
)

func TestServeHTTPRejectsUserFuncError(t *testing.T) {
	s := NewServer(hub.NewHub())
	s.Log = &log.Test{TB: t}
	s.UserFunc = func(*http.Request) (string, error) {
		return "", errors.New("no session cookie")
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	s.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
