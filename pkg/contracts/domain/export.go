package domain

// ExportFormat identifies a downloadable artifact type.
type ExportFormat string

const (
	ExportCSV ExportFormat = "csv"
	ExportPDF ExportFormat = "pdf"
	ExportPNG ExportFormat = "png"
)

// ExportPayload is the immutable snapshot serialized into an artifact. It is
// constructed at export time from the session's current dataset and never
// persisted or mutated during serialization.
type ExportPayload struct {
	Metrics     []Metric      `json:"metrics"`
	Charts      ChartChannels `json:"charts"`
	DateRange   string        `json:"date_range"`
	GeneratedAt string        `json:"generated_at"`
}

// ScheduleFrequency enumerates recurring export cadences.
type ScheduleFrequency string

const (
	ScheduleDaily   ScheduleFrequency = "daily"
	ScheduleWeekly  ScheduleFrequency = "weekly"
	ScheduleMonthly ScheduleFrequency = "monthly"
)

// ScheduleConfig is a recurring export request. The service validates and
// acknowledges it but never executes it: there is no scheduler, no
// persistence and no delivery mechanism behind this type.
type ScheduleConfig struct {
	Format    ExportFormat      `json:"format" validate:"required,oneof=csv pdf png"`
	Frequency ScheduleFrequency `json:"frequency" validate:"required,oneof=daily weekly monthly"`
	Email     string            `json:"email,omitempty" validate:"omitempty,email"`
	Filename  string            `json:"filename,omitempty"`
}
