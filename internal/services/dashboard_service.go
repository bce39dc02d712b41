package services

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"insightflow/internal/dashboard"
	"insightflow/internal/importer"
	"insightflow/internal/transform"
	"insightflow/pkg/contracts/domain"
)

var importsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "insightflow_imports_total",
	Help: "Import operations by format and outcome.",
}, []string{"format", "outcome"})

// ImportSummary reports what an import produced.
type ImportSummary struct {
	Format      string `json:"format"`
	RecordCount int    `json:"record_count"`
	MetricCount int    `json:"metric_count"`
}

// DashboardService orchestrates the import pipeline and the session state:
// parse, transform, replace. Imports are all-or-nothing per file; any failure
// leaves the session's previous dataset untouched.
type DashboardService struct {
	store       *dashboard.Store
	transformer *transform.Transformer
	logger      *slog.Logger
}

// NewDashboardService creates the dashboard service.
func NewDashboardService(store *dashboard.Store, transformer *transform.Transformer, logger *slog.Logger) *DashboardService {
	return &DashboardService{
		store:       store,
		transformer: transformer,
		logger:      logger.With(slog.String("component", "dashboard_service")),
	}
}

// ImportFile parses the uploaded file, transforms it and replaces the
// session's dataset. The format is detected from the filename extension.
func (s *DashboardService) ImportFile(ctx context.Context, sessionID, filename string, data []byte) (*ImportSummary, error) {
	format, err := importer.DetectFormat(filename)
	if err != nil {
		importsTotal.WithLabelValues("unknown", "failed").Inc()
		return nil, err
	}

	records, err := importer.Parse(format, data)
	if err != nil {
		importsTotal.WithLabelValues(string(format), "failed").Inc()
		s.logger.WarnContext(ctx, "import parse failed",
			slog.String("session", sessionID),
			slog.String("filename", filename),
			slog.String("error", err.Error()))
		return nil, err
	}

	result, err := s.transformer.Transform(records)
	if err != nil {
		importsTotal.WithLabelValues(string(format), "failed").Inc()
		return nil, err
	}

	s.store.Replace(sessionID, domain.Dataset{
		Metrics: result.Metrics,
		Charts:  domain.ChartChannels{Revenue: result.ChartData},
		Raw:     result.RawData,
		Widgets: domain.DefaultDataset().Widgets,
		Source:  domain.SourceFile,
	})

	importsTotal.WithLabelValues(string(format), "succeeded").Inc()
	s.logger.InfoContext(ctx, "file imported",
		slog.String("session", sessionID),
		slog.String("filename", filename),
		slog.String("format", string(format)),
		slog.Int("records", len(records)))

	return &ImportSummary{
		Format:      string(format),
		RecordCount: len(records),
		MetricCount: len(result.Metrics),
	}, nil
}

// ImportManual transforms hand-entered rows and replaces the session's
// dataset.
func (s *DashboardService) ImportManual(ctx context.Context, sessionID string, entries []transform.ManualEntry) (*ImportSummary, error) {
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}

	result := s.transformer.TransformManual(entries)
	s.store.Replace(sessionID, domain.Dataset{
		Metrics: result.Metrics,
		Charts:  domain.ChartChannels{Revenue: result.ChartData},
		Raw:     result.RawData,
		Widgets: domain.DefaultDataset().Widgets,
		Source:  domain.SourceManual,
	})

	importsTotal.WithLabelValues("manual", "succeeded").Inc()
	s.logger.InfoContext(ctx, "manual data imported",
		slog.String("session", sessionID),
		slog.Int("entries", len(entries)))

	return &ImportSummary{
		Format:      "manual",
		RecordCount: len(entries),
		MetricCount: len(result.Metrics),
	}, nil
}

// Template returns the fixed sample CSV offered for download.
func (s *DashboardService) Template() []byte {
	return []byte(domain.TemplateCSV)
}

// Dashboard returns the session's filtered dataset for display.
func (s *DashboardService) Dashboard(ctx context.Context, sessionID string) domain.Dataset {
	return s.store.Filtered(sessionID)
}

// SetDateRange updates the session's date-range filter.
func (s *DashboardService) SetDateRange(ctx context.Context, sessionID, label string) (domain.Dataset, error) {
	if !dashboard.ValidDateRange(label) {
		return domain.Dataset{}, ErrInvalidDateRange
	}
	return s.store.SetDateRange(sessionID, label), nil
}
