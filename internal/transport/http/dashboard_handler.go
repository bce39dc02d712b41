package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "insightflow/internal/errors"
	"insightflow/internal/services"
)

// DashboardHandler serves the dashboard dataset and its date-range filter.
type DashboardHandler struct {
	service      *services.DashboardService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(service *services.DashboardService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the dashboard routes.
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", h.GetDashboard)
	r.Put("/range", h.SetDateRange)

	return r
}

// GetDashboard handles GET /api/dashboard, returning the session's dataset
// filtered to its active date range.
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	dataset := h.service.Dashboard(r.Context(), sessionID(r))

	render.JSON(w, r, map[string]any{
		"status": "success",
		"data":   dataset,
	})
}

// dateRangeRequest is the body of PUT /api/dashboard/range.
type dateRangeRequest struct {
	DateRange string `json:"date_range"`
}

// SetDateRange handles PUT /api/dashboard/range.
func (h *DashboardHandler) SetDateRange(w http.ResponseWriter, r *http.Request) {
	var req dateRangeRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("body", "Request body must be valid JSON"))
		return
	}

	dataset, err := h.service.SetDateRange(r.Context(), sessionID(r), req.DateRange)
	if err != nil {
		if errors.Is(err, services.ErrInvalidDateRange) {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("date_range", "Date range must be one of 7d, 30d, 90d"))
			return
		}
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "date range updated",
		slog.String("session", sessionID(r)),
		slog.String("date_range", req.DateRange),
	)

	render.JSON(w, r, map[string]any{
		"status": "success",
		"data":   dataset,
	})
}
