package endpoints

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	env := newTestEnv(t)
	env.health.On("CheckConnectivity").Return(nil)

	rr := env.request(t, "GET", "/status", nil, "")

	require.Equal(t, http.StatusOK, rr.Code)
	var resp StatusResponse
	decodeBody(t, rr, &resp)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "0.1.0", resp.Version)
}

func TestStatusVersionOverride(t *testing.T) {
	t.Setenv("BOOKSHELF_VERSION_DISPLAY", "9.9.9")

	env := newTestEnv(t)
	env.health.On("CheckConnectivity").Return(nil)

	rr := env.request(t, "GET", "/status", nil, "")

	require.Equal(t, http.StatusOK, rr.Code)
	var resp StatusResponse
	decodeBody(t, rr, &resp)
	assert.Equal(t, "9.9.9", resp.Version)
}

func TestStatusDatabaseDown(t *testing.T) {
	env := newTestEnv(t)
	env.health.On("CheckConnectivity").Return(errors.New("connection refused"))

	rr := env.request(t, "GET", "/status", nil, "")

	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	var resp StatusErrorResponse
	decodeBody(t, rr, &resp)
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "database connectivity check failed", resp.Error)
}
