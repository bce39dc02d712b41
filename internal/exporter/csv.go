package exporter

import (
	"strings"

	"insightflow/pkg/contracts/domain"
)

// BuildCSV serializes a payload into the fixed CSV report layout: metrics
// table, then one labeled block per chart channel, then export metadata, with
// a blank row between sections. The row order must stay stable; it is covered
// by golden tests.
//
// Values are joined with plain commas and are not quote-escaped. A title
// containing a comma therefore shifts the row's columns; that mirrors the
// import side's no-quoting rule and is a documented limitation.
func BuildCSV(payload domain.ExportPayload) string {
	rows := [][]string{
		{"Metric", "Value", "Change (%)", "Format"},
	}
	for _, m := range payload.Metrics {
		format := m.Format
		if format == "" {
			format = domain.FormatNumber
		}
		rows = append(rows, []string{
			m.Title,
			formatNumber(m.Value),
			formatNumber(m.Change),
			string(format),
		})
	}

	rows = append(rows, nil)
	rows = append(rows, chartBlock("Chart Data - Revenue", "Date", "Revenue", payload.Charts.Revenue)...)
	rows = append(rows, nil)
	rows = append(rows, chartBlock("Chart Data - User Channels", "Channel", "Users", payload.Charts.Users)...)
	rows = append(rows, nil)
	rows = append(rows, chartBlock("Chart Data - Sales by Category", "Category", "Sales", payload.Charts.Sales)...)

	rows = append(rows, nil,
		[]string{"Export Information"},
		[]string{"Date Range", payload.DateRange},
		[]string{"Generated At", payload.GeneratedAt},
	)

	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.Join(row, ","))
	}
	return b.String()
}

// chartBlock renders one labeled chart section: label row, header row, one
// row per point. Empty channels keep the label and header rows.
func chartBlock(label, nameHeader, valueHeader string, points []domain.ChartPoint) [][]string {
	rows := [][]string{
		{label},
		{nameHeader, valueHeader},
	}
	for _, p := range points {
		rows = append(rows, []string{p.Name, formatNumber(p.Value)})
	}
	return rows
}
