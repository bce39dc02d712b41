package exporter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"insightflow/pkg/contracts/domain"
)

var (
	// ErrUnsupportedFormat is returned for export targets no serializer
	// handles.
	ErrUnsupportedFormat = errors.New("unsupported export format")

	// ErrCaptureTargetMissing is returned when the designated capture region
	// does not exist in the rendered view. It is fatal for the whole export.
	ErrCaptureTargetMissing = errors.New("capture target not found")
)

var (
	exportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "insightflow_exports_total",
		Help: "Export operations by format and outcome.",
	}, []string{"format", "outcome"})

	exportsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "insightflow_exports_in_flight",
		Help: "Export operations currently serializing.",
	})
)

// State tracks an export operation's lifecycle.
type State string

const (
	StateIdle        State = "idle"
	StateSerializing State = "serializing"
	StateSucceeded   State = "succeeded"
	StateFailed      State = "failed"
)

// Artifact is a finished downloadable file.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Capturer renders the live dashboard view. The chromedp implementation is
// ChromeCapturer; tests substitute a fake.
type Capturer interface {
	// CaptureRegion screenshots the selector's region of the page as PNG at
	// 2x pixel density on a white background. A missing selector fails with
	// ErrCaptureTargetMissing.
	CaptureRegion(ctx context.Context, pageURL, selector string) ([]byte, error)
	// RenderPDF prints a self-contained HTML document to PDF in landscape.
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}

// Config holds the capture coordinates for screenshot-based serializers.
type Config struct {
	// ViewURL is the server-rendered dashboard page to capture.
	ViewURL string
	// Selector designates the on-screen capture region.
	Selector string
}

// Exporter dispatches export requests to the format serializers.
type Exporter struct {
	capturer Capturer
	cfg      Config
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithClock overrides the clock used for default filenames.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) { e.now = now }
}

// New creates an exporter. The capturer may be nil when only CSV export is
// needed; capture-based formats then fail.
func New(capturer Capturer, cfg Config, logger *slog.Logger, opts ...Option) *Exporter {
	e := &Exporter{
		capturer: capturer,
		cfg:      cfg,
		logger:   logger.With(slog.String("component", "exporter")),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export serializes the payload into the requested format. The payload is a
// read-only snapshot; on failure no artifact is produced and the error
// carries a human-readable message for the caller to surface verbatim.
func (e *Exporter) Export(ctx context.Context, format domain.ExportFormat, payload domain.ExportPayload, filename string) (*Artifact, error) {
	state := StateSerializing
	exportsInFlight.Inc()
	defer exportsInFlight.Dec()

	e.logger.InfoContext(ctx, "export started",
		slog.String("format", string(format)),
		slog.String("state", string(state)),
		slog.Int("metrics", len(payload.Metrics)))

	artifact, err := e.serialize(ctx, format, payload, filename)
	if err != nil {
		state = StateFailed
		exportsTotal.WithLabelValues(string(format), "failed").Inc()
		e.logger.ErrorContext(ctx, "export failed",
			slog.String("format", string(format)),
			slog.String("state", string(state)),
			slog.String("error", err.Error()))
		return nil, err
	}

	state = StateSucceeded
	exportsTotal.WithLabelValues(string(format), "succeeded").Inc()
	e.logger.InfoContext(ctx, "export completed",
		slog.String("format", string(format)),
		slog.String("state", string(state)),
		slog.String("filename", artifact.Filename),
		slog.Int("bytes", len(artifact.Data)))
	return artifact, nil
}

func (e *Exporter) serialize(ctx context.Context, format domain.ExportFormat, payload domain.ExportPayload, filename string) (*Artifact, error) {
	switch format {
	case domain.ExportCSV:
		return &Artifact{
			Filename:    e.artifactName(filename, "dashboard-export", "csv"),
			ContentType: "text/csv; charset=utf-8",
			Data:        []byte(BuildCSV(payload)),
		}, nil

	case domain.ExportPDF:
		return e.exportPDF(ctx, payload, filename)

	case domain.ExportPNG:
		return e.exportPNG(ctx, filename)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func (e *Exporter) exportPDF(ctx context.Context, payload domain.ExportPayload, filename string) (*Artifact, error) {
	shot, err := e.capture(ctx)
	if err != nil {
		return nil, err
	}

	html, err := buildReportHTML(payload, shot)
	if err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}

	pdf, err := e.capturer.RenderPDF(ctx, html)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return &Artifact{
		Filename:    e.artifactName(filename, "dashboard-report", "pdf"),
		ContentType: "application/pdf",
		Data:        pdf,
	}, nil
}

func (e *Exporter) exportPNG(ctx context.Context, filename string) (*Artifact, error) {
	shot, err := e.capture(ctx)
	if err != nil {
		return nil, err
	}
	return &Artifact{
		Filename:    e.artifactName(filename, "dashboard", "png"),
		ContentType: "image/png",
		Data:        shot,
	}, nil
}

func (e *Exporter) capture(ctx context.Context) ([]byte, error) {
	if e.capturer == nil {
		return nil, fmt.Errorf("capture-based export unavailable: no capturer configured")
	}
	shot, err := e.capturer.CaptureRegion(ctx, e.cfg.ViewURL, e.cfg.Selector)
	if err != nil {
		if errors.Is(err, ErrCaptureTargetMissing) {
			return nil, err
		}
		return nil, fmt.Errorf("capture dashboard region: %w", err)
	}
	return shot, nil
}

// artifactName returns the caller's filename or the dated default
// <prefix>-<ISO-date>.<ext>.
func (e *Exporter) artifactName(filename, prefix, ext string) string {
	if filename != "" {
		return filename
	}
	return fmt.Sprintf("%s-%s.%s", prefix, e.now().UTC().Format("2006-01-02"), ext)
}
