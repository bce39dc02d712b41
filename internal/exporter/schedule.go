package exporter

import (
	"context"
	"fmt"
	"log/slog"

	"insightflow/pkg/contracts/domain"
)

// ScheduleAck acknowledges a recurring export request.
type ScheduleAck struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Schedule accepts a recurring export configuration and acknowledges it.
// Nothing is executed, persisted or delivered: scheduling is a stub external
// collaborator, and callers must not rely on any artifact ever appearing.
func (e *Exporter) Schedule(ctx context.Context, cfg domain.ScheduleConfig) *ScheduleAck {
	e.logger.InfoContext(ctx, "export schedule acknowledged",
		slog.String("format", string(cfg.Format)),
		slog.String("frequency", string(cfg.Frequency)),
		slog.Bool("email_delivery", cfg.Email != ""))

	return &ScheduleAck{
		Success: true,
		Message: fmt.Sprintf("Export scheduled for %s delivery", cfg.Frequency),
	}
}
