package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insightflow/internal/dashboard"
	apierrors "insightflow/internal/errors"
	"insightflow/internal/exporter"
	"insightflow/internal/services"
	"insightflow/pkg/contracts/domain"
)

type stubCapturer struct {
	screenshot []byte
	captureErr error
	pdf        []byte
}

func (s *stubCapturer) CaptureRegion(ctx context.Context, pageURL, selector string) ([]byte, error) {
	if s.captureErr != nil {
		return nil, s.captureErr
	}
	return s.screenshot, nil
}

func (s *stubCapturer) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	return s.pdf, nil
}

func newExportServer(t *testing.T, capturer exporter.Capturer) *httptest.Server {
	t.Helper()

	logger := testLogger()
	store := dashboard.NewStore(domain.DefaultDataset(), time.Hour, logger)
	exp := exporter.New(capturer, exporter.Config{
		ViewURL:  "http://127.0.0.1/dashboard/view",
		Selector: "#dashboard-export",
	}, logger)
	svc := services.NewExportService(store, exp, logger)
	handler := NewExportHandler(svc, logger, apierrors.NewErrorHandler(logger))

	r := chi.NewRouter()
	r.Mount("/api/export", handler.Routes())

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	return resp
}

func TestExportEndpointCSV(t *testing.T) {
	srv := newExportServer(t, nil)

	resp := postJSON(t, srv.URL+"/api/export", `{"format":"csv","filename":"report.csv"}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Equal(t, `attachment; filename="report.csv"`, resp.Header.Get("Content-Disposition"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Metric,Value,Change (%),Format")
	assert.Contains(t, string(body), "Total Revenue,2847392,0.12,currency")
}

func TestExportEndpointPNG(t *testing.T) {
	srv := newExportServer(t, &stubCapturer{screenshot: []byte("png-bytes")})

	resp := postJSON(t, srv.URL+"/api/export", `{"format":"png"}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(body))
}

func TestExportEndpointUnsupportedFormat(t *testing.T) {
	srv := newExportServer(t, nil)

	resp := postJSON(t, srv.URL+"/api/export", `{"format":"xlsx"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeJSON(t, resp)
	assert.Equal(t, apierrors.TypeUnsupportedExport, body["type"])
	assert.Contains(t, body["detail"], "xlsx")
}

func TestExportEndpointCaptureTargetMissing(t *testing.T) {
	srv := newExportServer(t, &stubCapturer{
		captureErr: fmt.Errorf("%w: selector %q", exporter.ErrCaptureTargetMissing, "#dashboard-export"),
	})

	resp := postJSON(t, srv.URL+"/api/export", `{"format":"png"}`)
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)

	body := decodeJSON(t, resp)
	assert.Equal(t, apierrors.TypeCaptureMissing, body["type"])
}

func TestExportEndpointMissingFormat(t *testing.T) {
	srv := newExportServer(t, nil)

	resp := postJSON(t, srv.URL+"/api/export", `{}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestScheduleEndpoint(t *testing.T) {
	srv := newExportServer(t, nil)

	t.Run("valid", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/api/export/schedule",
			`{"format":"csv","frequency":"weekly","email":"cfo@example.com"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeJSON(t, resp)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "Export scheduled for weekly delivery", body["message"])
	})

	t.Run("invalid frequency", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/api/export/schedule", `{"format":"csv","frequency":"hourly"}`)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("invalid email", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/api/export/schedule",
			`{"format":"csv","frequency":"daily","email":"nope"}`)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
