package transform

import (
	"insightflow/pkg/contracts/domain"
)

// ManualEntry is one hand-entered dashboard row. Unlike file imports the
// schema is fixed, so no field-priority search is needed.
type ManualEntry struct {
	Date        string  `json:"date" validate:"required"`
	Revenue     float64 `json:"revenue"`
	Users       float64 `json:"users"`
	Conversions float64 `json:"conversions"`
}

// TransformManual maps hand-entered rows into dashboard shapes. Two metrics
// are always emitted, summed revenue and summed users, with the same
// synthetic prior-period heuristic as file imports. Chart points use the
// entry date as name and revenue as value directly.
func (t *Transformer) TransformManual(entries []ManualEntry) *Result {
	var totalRevenue, totalUsers float64
	for _, e := range entries {
		totalRevenue += e.Revenue
		totalUsers += e.Users
	}

	result := &Result{
		Metrics: []domain.Metric{
			{
				ID:            "revenue",
				Title:         "Total Revenue",
				Value:         totalRevenue,
				PreviousValue: totalRevenue * prevRevenueFactor,
				Change:        placeholderRevenueChange,
				ChangeType:    domain.ChangeIncrease,
				Format:        domain.FormatCurrency,
				Icon:          "TrendingUp",
			},
			{
				ID:            "users",
				Title:         "Total Users",
				Value:         totalUsers,
				PreviousValue: totalUsers * prevUsersFactor,
				Change:        placeholderUsersChange,
				ChangeType:    domain.ChangeIncrease,
				Format:        domain.FormatNumber,
				Icon:          "Users",
			},
		},
	}

	for _, e := range entries {
		result.ChartData = append(result.ChartData, domain.ChartPoint{Name: e.Date, Value: e.Revenue})

		rec := domain.NewRecord("date", "revenue", "users", "conversions")
		rec.Set("date", domain.String(e.Date))
		rec.Set("revenue", domain.Number(e.Revenue))
		rec.Set("users", domain.Number(e.Users))
		rec.Set("conversions", domain.Number(e.Conversions))
		result.RawData = append(result.RawData, rec)
	}

	return result
}
