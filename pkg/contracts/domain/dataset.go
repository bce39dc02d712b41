package domain

import "time"

// DataSource identifies where the active dataset came from.
type DataSource string

const (
	SourceMock   DataSource = "mock"
	SourceFile   DataSource = "file"
	SourceManual DataSource = "manual"
)

// WidgetType identifies the kind of widget on the dashboard grid.
type WidgetType string

const (
	WidgetMetric WidgetType = "metric"
	WidgetChart  WidgetType = "chart"
	WidgetTable  WidgetType = "table"
)

// GridPosition places a widget on the 12-column dashboard grid.
type GridPosition struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Widget describes one tile of the dashboard layout. The layout travels with
// the dataset so the rendered capture view matches what the user arranged; it
// is never part of an export payload.
type Widget struct {
	ID       string       `json:"id"`
	Type     WidgetType   `json:"type"`
	Title    string       `json:"title"`
	Position GridPosition `json:"position"`
}

// Dataset is the dashboard state for one session: KPI metrics, chart channels,
// the raw records they were derived from, the date-range filter label and the
// widget layout. Datasets are transient and rebuilt from the default or the
// last import; nothing is persisted.
type Dataset struct {
	Metrics    []Metric      `json:"metrics"`
	Charts     ChartChannels `json:"charts"`
	Raw        []Record      `json:"-"`
	Widgets    []Widget      `json:"widgets"`
	DateRange  string        `json:"date_range"`
	Source     DataSource    `json:"source"`
	ImportedAt time.Time     `json:"imported_at,omitempty"`
}

// DefaultDateRange is the date-range filter applied to a fresh session.
const DefaultDateRange = "7d"

// DefaultDataset returns the built-in demonstration dataset shown before any
// import has occurred. Callers inject it explicitly (usually into the
// dashboard store constructor); it is a fresh value on every call, never a
// shared singleton.
func DefaultDataset() Dataset {
	return Dataset{
		Metrics: []Metric{
			NewComparisonMetric("revenue", "Total Revenue", 2847392, 2541230, FormatCurrency, "TrendingUp"),
			NewComparisonMetric("users", "Active Users", 12849, 11923, FormatNumber, "Users"),
			NewComparisonMetric("conversion", "Conversion Rate", 0.047, 0.051, FormatPercentage, "Target"),
			NewComparisonMetric("satisfaction", "Customer Satisfaction", 0.942, 0.938, FormatPercentage, "Heart"),
			NewComparisonMetric("orders", "Orders", 1847, 1692, FormatNumber, "ShoppingCart"),
			NewComparisonMetric("bounce-rate", "Bounce Rate", 0.234, 0.267, FormatPercentage, "ArrowRightLeft"),
		},
		Charts: ChartChannels{
			Revenue: []ChartPoint{
				{Name: "Jan", Value: 1847392},
				{Name: "Feb", Value: 1923845},
				{Name: "Mar", Value: 2147293},
				{Name: "Apr", Value: 2034729},
				{Name: "May", Value: 2293847},
				{Name: "Jun", Value: 2458392},
				{Name: "Jul", Value: 2647584},
				{Name: "Aug", Value: 2738492},
				{Name: "Sep", Value: 2584729},
				{Name: "Oct", Value: 2793847},
				{Name: "Nov", Value: 2847392},
				{Name: "Dec", Value: 2947583},
			},
			Users: []ChartPoint{
				{Name: "Organic Search", Value: 4392, Category: "acquisition"},
				{Name: "Social Media", Value: 3274, Category: "acquisition"},
				{Name: "Direct", Value: 2847, Category: "acquisition"},
				{Name: "Email", Value: 1583, Category: "acquisition"},
				{Name: "Paid Ads", Value: 753, Category: "acquisition"},
			},
			Sales: []ChartPoint{
				{Name: "Electronics", Value: 847392, Category: "sales"},
				{Name: "Clothing", Value: 623847, Category: "sales"},
				{Name: "Home & Garden", Value: 484729, Category: "sales"},
				{Name: "Sports", Value: 372945, Category: "sales"},
				{Name: "Books", Value: 184729, Category: "sales"},
				{Name: "Beauty", Value: 334750, Category: "sales"},
			},
		},
		Widgets: []Widget{
			{ID: "widget-revenue", Type: WidgetMetric, Title: "Revenue Overview", Position: GridPosition{X: 0, Y: 0, W: 6, H: 2}},
			{ID: "widget-users", Type: WidgetMetric, Title: "User Metrics", Position: GridPosition{X: 6, Y: 0, W: 6, H: 2}},
			{ID: "widget-revenue-chart", Type: WidgetChart, Title: "Revenue Trend", Position: GridPosition{X: 0, Y: 2, W: 8, H: 4}},
			{ID: "widget-channels", Type: WidgetChart, Title: "User Acquisition", Position: GridPosition{X: 8, Y: 2, W: 4, H: 4}},
			{ID: "widget-categories", Type: WidgetChart, Title: "Sales by Category", Position: GridPosition{X: 4, Y: 6, W: 8, H: 3}},
		},
		DateRange: DefaultDateRange,
		Source:    SourceMock,
	}
}

// TemplateCSV is the fixed sample file offered for download to illustrate the
// expected import shape. It is a static constant, not generated.
const TemplateCSV = `date,revenue,users,conversion_rate
2024-01-01,25000,1200,0.045
2024-01-02,28000,1350,0.048
2024-01-03,32000,1400,0.052
2024-01-04,29000,1320,0.047
2024-01-05,35000,1500,0.055`
