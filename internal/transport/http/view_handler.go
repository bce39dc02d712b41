package http

import (
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apierrors "insightflow/internal/errors"
	"insightflow/internal/services"
	"insightflow/pkg/contracts/domain"
)

// viewTemplate is the server-rendered dashboard page the headless browser
// captures. The #dashboard-export region is the screenshot target; keep its
// id in sync with the configured capture selector.
var viewTemplate = template.Must(template.New("view").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>InsightFlow Dashboard</title>
<style>
  body { font-family: Helvetica, Arial, sans-serif; background: #f5f6f8; margin: 0; padding: 24px; }
  #dashboard-export { background: #fff; border-radius: 8px; padding: 24px; }
  h1 { font-size: 22px; margin: 0 0 4px 0; }
  .meta { color: #667; font-size: 13px; margin-bottom: 20px; }
  .metrics { display: grid; grid-template-columns: repeat(3, 1fr); gap: 16px; margin-bottom: 24px; }
  .metric { border: 1px solid #e3e5e8; border-radius: 6px; padding: 14px; }
  .metric .title { font-size: 13px; color: #667; }
  .metric .value { font-size: 24px; font-weight: 600; margin: 4px 0; }
  .metric .change.increase { color: #0a7d33; }
  .metric .change.decrease { color: #c0272d; }
  .chart { margin-bottom: 20px; }
  .chart h2 { font-size: 15px; margin: 0 0 8px 0; }
  .bar-row { display: flex; align-items: center; font-size: 12px; margin-bottom: 3px; }
  .bar-row .label { width: 110px; color: #445; }
  .bar-row .bar { height: 12px; background: #3b82f6; margin-right: 6px; }
</style>
</head>
<body>
  <div id="dashboard-export">
    <h1>Executive Dashboard</h1>
    <div class="meta">Range: {{.DateRange}} &middot; Source: {{.Source}}</div>
    <div class="metrics">
{{range .Metrics}}      <div class="metric">
        <div class="title">{{.Title}}</div>
        <div class="value">{{.DisplayValue}}</div>
        <div class="change {{.ChangeType}}">{{.DisplayChange}}</div>
      </div>
{{end}}    </div>
{{range .ChartBlocks}}    <div class="chart">
      <h2>{{.Title}}</h2>
{{range .Points}}      <div class="bar-row"><span class="label">{{.Name}}</span><span class="bar" style="width: {{.Width}}px"></span>{{.Display}}</div>
{{end}}    </div>
{{end}}  </div>
</body>
</html>
`))

// maxBarWidth bounds the rendered bar length in pixels.
const maxBarWidth = 520

type viewBar struct {
	Name    string
	Width   int
	Display string
}

type viewMetric struct {
	Title         string
	DisplayValue  string
	DisplayChange string
	ChangeType    string
}

type viewChartBlock struct {
	Title  string
	Points []viewBar
}

// ViewHandler renders the capture page consumed by the export pipeline's
// headless browser. The page is plain HTML and CSS so screenshots do not
// depend on client-side rendering.
type ViewHandler struct {
	service      *services.DashboardService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewViewHandler creates a new view handler.
func NewViewHandler(service *services.DashboardService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ViewHandler {
	return &ViewHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "view_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the view routes.
func (h *ViewHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.RenderDashboard)
	return r
}

// RenderDashboard handles GET /dashboard/view. The session may be passed as
// a query parameter because the headless browser carries no cookies.
func (h *ViewHandler) RenderDashboard(w http.ResponseWriter, r *http.Request) {
	session := r.URL.Query().Get("session")
	if session == "" {
		session = sessionID(r)
	}

	dataset := h.service.Dashboard(r.Context(), session)

	blocks := []viewChartBlock{
		chartBlock("Revenue Over Time", dataset.Charts.Revenue),
		chartBlock("Users by Channel", dataset.Charts.Users),
		chartBlock("Sales by Category", dataset.Charts.Sales),
	}

	data := struct {
		DateRange   string
		Source      string
		Metrics     []viewMetric
		ChartBlocks []viewChartBlock
	}{
		DateRange:   dataset.DateRange,
		Source:      string(dataset.Source),
		ChartBlocks: blocks,
	}
	for _, m := range dataset.Metrics {
		data.Metrics = append(data.Metrics, viewMetric{
			Title:         m.Title,
			DisplayValue:  m.DisplayValue(),
			DisplayChange: m.DisplayChange(),
			ChangeType:    string(m.ChangeType),
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := viewTemplate.Execute(w, data); err != nil {
		h.logger.ErrorContext(r.Context(), "view render failed", slog.String("error", err.Error()))
	}
}

// chartBlock scales a series into fixed-width bars for the static page.
func chartBlock(title string, points []domain.ChartPoint) viewChartBlock {
	var max float64
	for _, p := range points {
		if p.Value > max {
			max = p.Value
		}
	}

	block := viewChartBlock{Title: title}
	for _, p := range points {
		width := 0
		if max > 0 && p.Value > 0 {
			width = int(p.Value / max * maxBarWidth)
		}
		block.Points = append(block.Points, viewBar{
			Name:    p.Name,
			Width:   width,
			Display: formatPointValue(p.Value),
		})
	}
	return block
}

// formatPointValue renders a chart value with the shortest exact decimal
// representation.
func formatPointValue(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
