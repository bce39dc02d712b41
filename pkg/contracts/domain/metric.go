package domain

import "math"

// ChangeType describes the direction of a metric's period-over-period movement.
type ChangeType string

const (
	ChangeIncrease ChangeType = "increase"
	ChangeDecrease ChangeType = "decrease"
	ChangeNeutral  ChangeType = "neutral"
)

// MetricFormat defines how a metric value is rendered for display and export.
type MetricFormat string

const (
	FormatNumber     MetricFormat = "number"
	FormatCurrency   MetricFormat = "currency"
	FormatPercentage MetricFormat = "percentage"
)

// Metric represents a single KPI value with an optional prior-period comparison.
// Change is a decimal fraction (0.1 == +10%). A zero Change renders as "0" in
// exports, matching an absent comparison.
type Metric struct {
	ID            string       `json:"id" validate:"required"`
	Title         string       `json:"title" validate:"required"`
	Value         float64      `json:"value"`
	PreviousValue float64      `json:"previous_value,omitempty"`
	Change        float64      `json:"change,omitempty"`
	ChangeType    ChangeType   `json:"change_type"`
	Format        MetricFormat `json:"format"`
	Icon          string       `json:"icon,omitempty"`
}

// NewComparisonMetric builds a metric whose change and change type are derived
// from the current and previous values, so the sign of Change always agrees
// with ChangeType. Change is rounded to three decimal places.
func NewComparisonMetric(id, title string, value, previous float64, format MetricFormat, icon string) Metric {
	change := PercentageChange(value, previous)
	changeType := ChangeNeutral
	switch {
	case change > 0:
		changeType = ChangeIncrease
	case change < 0:
		changeType = ChangeDecrease
	}
	return Metric{
		ID:            id,
		Title:         title,
		Value:         value,
		PreviousValue: previous,
		Change:        change,
		ChangeType:    changeType,
		Format:        format,
		Icon:          icon,
	}
}

// PercentageChange returns (current-previous)/previous as a decimal fraction,
// rounded to three decimal places. A zero previous value maps to 1 when the
// current value is positive and 0 otherwise.
func PercentageChange(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 1
		}
		return 0
	}
	return math.Round((current-previous)/previous*1000) / 1000
}
