package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "insightflow/internal/errors"
	"insightflow/internal/importer"
	"insightflow/internal/services"
	"insightflow/internal/transform"
)

// ImportHandler handles file uploads, manual entry and the sample template.
type ImportHandler struct {
	service      *services.DashboardService
	validate     *validator.Validate
	maxUpload    int64
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewImportHandler creates a new import handler.
func NewImportHandler(service *services.DashboardService, maxUpload int64, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ImportHandler {
	return &ImportHandler{
		service:      service,
		validate:     validator.New(),
		maxUpload:    maxUpload,
		logger:       logger.With(slog.String("component", "import_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the import routes.
func (h *ImportHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/file", h.ImportFile)
	r.Post("/manual", h.ImportManual)
	r.Get("/template", h.Template)

	return r
}

// ImportFile handles POST /api/import/file. The upload is either a
// multipart form with a "file" part, or a raw body with the filename
// given as a query parameter.
func (h *ImportHandler) ImportFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	filename, data, err := h.readUpload(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("file", err.Error()))
		return
	}

	summary, err := h.service.ImportFile(r.Context(), sessionID(r), filename, data)
	if err != nil {
		h.handleImportError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]any{
		"status": "success",
		"data":   summary,
	})
}

// readUpload extracts the uploaded filename and content from the request.
func (h *ImportHandler) readUpload(r *http.Request) (string, []byte, error) {
	if file, header, err := r.FormFile("file"); err == nil {
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			return "", nil, err
		}
		return header.Filename, data, nil
	}

	filename := r.URL.Query().Get("filename")
	if filename == "" {
		return "", nil, errors.New("missing multipart \"file\" part or filename query parameter")
	}
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return "", nil, err
	}
	return filename, data, nil
}

// manualImportRequest is the body of POST /api/import/manual.
type manualImportRequest struct {
	Entries []transform.ManualEntry `json:"entries" validate:"required,min=1,dive"`
}

// ImportManual handles POST /api/import/manual.
func (h *ImportHandler) ImportManual(w http.ResponseWriter, r *http.Request) {
	var req manualImportRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("body", "Request body must be valid JSON"))
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("entries", validationDetail(err)))
		return
	}

	summary, err := h.service.ImportManual(r.Context(), sessionID(r), req.Entries)
	if err != nil {
		h.handleImportError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]any{
		"status": "success",
		"data":   summary,
	})
}

// Template handles GET /api/import/template, serving the sample CSV as a
// download.
func (h *ImportHandler) Template(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="sample-data.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write(h.service.Template())
}

// handleImportError maps pipeline errors to their API representations.
func (h *ImportHandler) handleImportError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.WarnContext(r.Context(), "import failed",
		slog.String("error", err.Error()),
		slog.String("path", r.URL.Path),
	)

	var parseErr *importer.ParseError
	switch {
	case errors.Is(err, importer.ErrUnsupportedFormat):
		h.errorHandler.HandleError(w, r, apierrors.UnsupportedImportFormat(err))
	case errors.As(err, &parseErr):
		h.errorHandler.HandleError(w, r, apierrors.ImportParseFailed(err))
	case errors.Is(err, services.ErrNoEntries):
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("entries", "At least one entry is required"))
	default:
		h.errorHandler.HandleError(w, r, err)
	}
}

// validationDetail flattens a validator error into a readable message.
func validationDetail(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Error()
	}
	return err.Error()
}
