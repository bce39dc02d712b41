package domain

// ChartPoint is a single (name, value) pair feeding a visualization. Slice
// order is significant for time series and irrelevant for categorical
// breakdowns.
type ChartPoint struct {
	Name     string  `json:"name"`
	Value    float64 `json:"value"`
	Color    string  `json:"color,omitempty"`
	Category string  `json:"category,omitempty"`
}

// ChartChannels groups chart series by their logical channel on the dashboard.
type ChartChannels struct {
	Revenue []ChartPoint `json:"revenue"`
	Users   []ChartPoint `json:"users"`
	Sales   []ChartPoint `json:"sales"`
}
