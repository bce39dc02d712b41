package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"insightflow/internal/dashboard"
	"insightflow/internal/exporter"
	"insightflow/pkg/contracts/domain"
)

// ExportService snapshots session state and drives the export serializers.
// It performs no in-flight coordination: preventing overlapping exports of
// the same payload is the trigger's (the UI's) responsibility.
type ExportService struct {
	store    *dashboard.Store
	exporter *exporter.Exporter
	validate *validator.Validate
	logger   *slog.Logger
}

// NewExportService creates the export service.
func NewExportService(store *dashboard.Store, exp *exporter.Exporter, logger *slog.Logger) *ExportService {
	return &ExportService{
		store:    store,
		exporter: exp,
		validate: validator.New(),
		logger:   logger.With(slog.String("component", "export_service")),
	}
}

// Export builds an immutable payload snapshot from the session's current
// dataset and serializes it into the requested format.
func (s *ExportService) Export(ctx context.Context, sessionID string, format domain.ExportFormat, filename string) (*exporter.Artifact, error) {
	payload := s.store.Snapshot(sessionID)
	return s.exporter.Export(ctx, format, payload, filename)
}

// Schedule validates a recurring export configuration and returns the
// acknowledgment. Nothing is scheduled for real.
func (s *ExportService) Schedule(ctx context.Context, cfg domain.ScheduleConfig) (*exporter.ScheduleAck, error) {
	if err := s.validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid schedule configuration: %w", err)
	}
	return s.exporter.Schedule(ctx, cfg), nil
}
