package exporter

import (
	"encoding/base64"
	"html/template"
	"strings"

	"insightflow/pkg/contracts/domain"
)

// metricLinesPerPage is how many metric summary lines fit on one report page.
const metricLinesPerPage = 24

// reportTemplate is the printable report the PDF serializer feeds to the
// browser. The first page carries the dashboard capture scaled to fit,
// centered, under a fixed top margin; subsequent pages list the formatted
// metrics, one line each.
var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  @page { size: A4 landscape; margin: 0; }
  body { font-family: Helvetica, Arial, sans-serif; color: #000; margin: 0; }
  .page { page-break-after: always; padding: 12mm 20mm; box-sizing: border-box; height: 210mm; }
  .page:last-child { page-break-after: auto; }
  h1 { font-size: 20pt; margin: 0 0 4mm 0; }
  h2 { font-size: 16pt; margin: 0 0 8mm 0; }
  .meta { font-size: 12pt; display: flex; justify-content: space-between; margin-bottom: 6mm; }
  .shot { text-align: center; margin-top: 6mm; }
  .shot img { max-width: 100%; max-height: 140mm; }
  .metric-line { font-size: 12pt; line-height: 1.5; display: flex; }
  .metric-line .name { width: 60%; }
</style>
</head>
<body>
  <div class="page">
    <h1>InsightFlow Dashboard Report</h1>
    <div class="meta">
      <span>Date Range: {{.DateRange}}</span>
      <span>Generated: {{.GeneratedAt}}</span>
    </div>
    <div class="shot"><img src="data:image/png;base64,{{.ScreenshotB64}}" alt="dashboard"></div>
  </div>
{{range .MetricPages}}  <div class="page">
    <h2>Key Metrics Summary</h2>
{{range .}}    <div class="metric-line"><span class="name">{{.Name}}</span><span>Change: {{.Change}}</span></div>
{{end}}  </div>
{{end}}</body>
</html>
`))

type reportMetricLine struct {
	Name   string
	Change string
}

type reportData struct {
	DateRange     string
	GeneratedAt   string
	ScreenshotB64 string
	MetricPages   [][]reportMetricLine
}

// buildReportHTML assembles the printable report document from the payload
// and the captured dashboard screenshot.
func buildReportHTML(payload domain.ExportPayload, screenshot []byte) (string, error) {
	lines := make([]reportMetricLine, 0, len(payload.Metrics))
	for _, m := range payload.Metrics {
		lines = append(lines, reportMetricLine{
			Name:   m.Title + ": " + m.DisplayValue(),
			Change: m.DisplayChange(),
		})
	}

	var pages [][]reportMetricLine
	for len(lines) > 0 {
		n := metricLinesPerPage
		if n > len(lines) {
			n = len(lines)
		}
		pages = append(pages, lines[:n])
		lines = lines[n:]
	}
	if len(pages) == 0 {
		// Always emit the summary page, even with no metrics.
		pages = [][]reportMetricLine{{}}
	}

	var b strings.Builder
	err := reportTemplate.Execute(&b, reportData{
		DateRange:     payload.DateRange,
		GeneratedAt:   payload.GeneratedAt,
		ScreenshotB64: base64.StdEncoding.EncodeToString(screenshot),
		MetricPages:   pages,
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}
