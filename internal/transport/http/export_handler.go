package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "insightflow/internal/errors"
	"insightflow/internal/exporter"
	"insightflow/internal/services"
	"insightflow/pkg/contracts/domain"
)

// ExportHandler serves dashboard exports and schedule requests.
type ExportHandler struct {
	service      *services.ExportService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewExportHandler creates a new export handler.
func NewExportHandler(service *services.ExportService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ExportHandler {
	return &ExportHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "export_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the export routes.
func (h *ExportHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Export)
	r.Post("/schedule", h.Schedule)

	return r
}

// exportRequest is the body of POST /api/export. Filename is optional; the
// exporter falls back to a dated default.
type exportRequest struct {
	Format   string `json:"format"`
	Filename string `json:"filename"`
}

// Export handles POST /api/export, streaming the generated artifact back as
// a download.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("body", "Request body must be valid JSON"))
		return
	}
	if req.Format == "" {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("format", "Export format is required"))
		return
	}

	artifact, err := h.service.Export(r.Context(), sessionID(r), domain.ExportFormat(req.Format), req.Filename)
	if err != nil {
		h.handleExportError(w, r, req.Format, err)
		return
	}

	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+artifact.Filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(artifact.Data)
}

// Schedule handles POST /api/export/schedule. Scheduling is acknowledged
// but not persisted; there is no background delivery.
func (h *ExportHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	var cfg domain.ScheduleConfig
	if err := render.DecodeJSON(r.Body, &cfg); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("body", "Request body must be valid JSON"))
		return
	}

	ack, err := h.service.Schedule(r.Context(), cfg)
	if err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation(verrs[0].Field(), verrs[0].Error()))
			return
		}
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, ack)
}

// handleExportError maps exporter errors to their API representations.
func (h *ExportHandler) handleExportError(w http.ResponseWriter, r *http.Request, format string, err error) {
	h.logger.ErrorContext(r.Context(), "export failed",
		slog.String("format", format),
		slog.String("error", err.Error()),
	)

	switch {
	case errors.Is(err, exporter.ErrUnsupportedFormat):
		h.errorHandler.HandleError(w, r, apierrors.UnsupportedExportFormat(format))
	case errors.Is(err, exporter.ErrCaptureTargetMissing):
		h.errorHandler.HandleError(w, r, apierrors.CaptureTargetMissing(err))
	default:
		h.errorHandler.HandleError(w, r, apierrors.ExportFailed(err))
	}
}
