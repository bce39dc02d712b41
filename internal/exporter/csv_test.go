package exporter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"insightflow/pkg/contracts/domain"
)

func TestBuildCSVGolden(t *testing.T) {
	payload := domain.ExportPayload{
		Metrics: []domain.Metric{
			{Title: "Total Revenue", Value: 53000, Change: 0.1, Format: domain.FormatCurrency},
			{Title: "Conversion Rate", Value: 0.047, Change: -0.078, Format: domain.FormatPercentage},
			{Title: "Untyped", Value: 7, Change: 0},
		},
		Charts: domain.ChartChannels{
			Revenue: []domain.ChartPoint{
				{Name: "2024-01-01", Value: 25000},
				{Name: "2024-01-02", Value: 28000},
			},
			Users: []domain.ChartPoint{
				{Name: "Organic Search", Value: 4392},
			},
			Sales: []domain.ChartPoint{
				{Name: "Electronics", Value: 847392},
			},
		},
		DateRange:   "7d",
		GeneratedAt: "2024-05-01T10:30:00Z",
	}

	want := `Metric,Value,Change (%),Format
Total Revenue,53000,0.1,currency
Conversion Rate,0.047,-0.078,percentage
Untyped,7,0,number

Chart Data - Revenue
Date,Revenue
2024-01-01,25000
2024-01-02,28000

Chart Data - User Channels
Channel,Users
Organic Search,4392

Chart Data - Sales by Category
Category,Sales
Electronics,847392

Export Information
Date Range,7d
Generated At,2024-05-01T10:30:00Z`

	assert.Equal(t, want, BuildCSV(payload))
}

// Even a fully empty payload keeps the fixed section skeleton: headers,
// labels and the metadata block all survive.
func TestBuildCSVEmptyPayload(t *testing.T) {
	want := `Metric,Value,Change (%),Format

Chart Data - Revenue
Date,Revenue

Chart Data - User Channels
Channel,Users

Chart Data - Sales by Category
Category,Sales

Export Information
Date Range,
Generated At,`

	assert.Equal(t, want, BuildCSV(domain.ExportPayload{}))
}

// Values keep their shortest exact decimal form, never scientific notation
// or trailing zeros.
func TestBuildCSVNumberFormatting(t *testing.T) {
	payload := domain.ExportPayload{
		Metrics: []domain.Metric{
			{Title: "Big", Value: 2847392, Change: 0.12, Format: domain.FormatNumber},
			{Title: "Small", Value: 0.00045, Change: 0.004, Format: domain.FormatNumber},
		},
	}

	out := BuildCSV(payload)
	assert.Contains(t, out, "Big,2847392,0.12,number")
	assert.Contains(t, out, "Small,0.00045,0.004,number")
}
