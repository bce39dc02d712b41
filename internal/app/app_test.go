package app

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insightflow/internal/config"
)

func newTestApplication(t *testing.T) *Application {
	t.Helper()

	cfg := config.Default()
	cfg.Security.RateLimit.Enabled = false

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app, err := NewApplicationWith(cfg, logger)
	require.NoError(t, err)
	return app
}

func TestApplicationRoutes(t *testing.T) {
	app := newTestApplication(t)
	srv := httptest.NewServer(app.Router)
	t.Cleanup(srv.Close)

	t.Run("healthz", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/healthz")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), "healthy")
	})

	t.Run("dashboard returns default dataset", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/dashboard")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), "Total Revenue")
	})

	t.Run("capture view carries the export region", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/dashboard/view")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), `id="dashboard-export"`)
	})

	t.Run("prometheus metrics exposed", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/metrics")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("csv export end to end", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/api/export", "application/json",
			strings.NewReader(`{"format":"csv"}`))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	})

	t.Run("unsupported export format", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/api/export", "application/json",
			strings.NewReader(`{"format":"xlsx"}`))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("responses gzip compressed when accepted", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/dashboard", nil)
		require.NoError(t, err)
		// Setting the header manually keeps the transport from
		// decompressing and stripping Content-Encoding.
		req.Header.Set("Accept-Encoding", "gzip")

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "gzip", resp.Header.Get("Content-Encoding"))
	})

	t.Run("request id header set", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/healthz")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	})

	t.Run("unknown route", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/nope")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestApplicationSelectorAgreement(t *testing.T) {
	app := newTestApplication(t)

	// The configured capture selector must match the id rendered by the
	// dashboard view or every screenshot export fails.
	assert.Equal(t, "#dashboard-export", app.Config.Export.CaptureSelector)
	assert.Equal(t, "http://127.0.0.1:8080/dashboard/view", app.Config.ViewURL())
}
