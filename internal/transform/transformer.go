// Package transform maps imported record sequences into dashboard-ready
// metrics and chart series. The field precedence used for the mapping is an
// explicit, configurable parameter rather than inline fallback chains.
package transform

import (
	"fmt"
	"log/slog"

	"insightflow/pkg/contracts/domain"
)

// Synthetic prior-period factors. The import pipeline has no second time
// window to compare against, so imported metrics carry a placeholder trend
// rather than a computed one. See DESIGN.md before treating these as product
// behavior.
const (
	prevRevenueFactor = 0.9
	prevUsersFactor   = 0.95

	placeholderRevenueChange = 0.1
	placeholderUsersChange   = 0.05
)

// KeyPriority is the ordered candidate-key configuration driving field
// lookups. Earlier keys win; the fallbacks apply when no key matches.
type KeyPriority struct {
	// LabelKeys name a chart point, falling back to "Period N" (1-indexed).
	LabelKeys []string
	// ValueKeys supply a chart point's value, falling back to 0.
	ValueKeys []string
	// MetricKeys trigger the total-revenue metric when the first record
	// carries any of them; the matching key is summed across all records.
	MetricKeys []string
}

// DefaultKeyPriority mirrors the import shapes the dashboard was designed
// around: time-series rows keyed by date or period with a revenue-like value.
func DefaultKeyPriority() KeyPriority {
	return KeyPriority{
		LabelKeys:  []string{"date", "period"},
		ValueKeys:  []string{"revenue", "sales", "value"},
		MetricKeys: []string{"revenue", "sales"},
	}
}

// Result is the transformer output: summary metrics, a chart-ready series and
// the untouched input records.
type Result struct {
	Metrics   []domain.Metric
	ChartData []domain.ChartPoint
	RawData   []domain.Record
}

// Option configures a Transformer.
type Option func(*Transformer)

// WithStrict makes the transformer fail loudly on records missing the keys a
// rule expects, instead of defaulting to 0/"".
func WithStrict() Option {
	return func(t *Transformer) { t.strict = true }
}

// WithLogger sets the transformer logger.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Transformer) { t.logger = logger }
}

// Transformer maps raw records into dashboard shapes using a fixed key
// precedence.
type Transformer struct {
	keys   KeyPriority
	strict bool
	logger *slog.Logger
}

// New creates a transformer with the given key precedence.
func New(keys KeyPriority, opts ...Option) *Transformer {
	t := &Transformer{keys: keys, logger: slog.Default()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Transform maps a record sequence into metrics, chart points and the raw
// passthrough. An empty input yields an empty result, not an error. In
// non-strict mode missing fields never fail: values default to 0 and labels
// to a generated period name.
func (t *Transformer) Transform(records []domain.Record) (*Result, error) {
	result := &Result{RawData: records}
	if len(records) == 0 {
		return result, nil
	}

	metricKey, hasMetric := t.metricKey(records[0])
	if hasMetric {
		total := 0.0
		for i, rec := range records {
			f, numeric := rec.Get(metricKey).AsNumber()
			if !numeric {
				if t.strict {
					return nil, fmt.Errorf("record %d: key %q is not numeric", i, metricKey)
				}
				continue
			}
			total += f
		}
		result.Metrics = append(result.Metrics, domain.Metric{
			ID:            "revenue",
			Title:         "Total Revenue",
			Value:         total,
			PreviousValue: total * prevRevenueFactor,
			Change:        placeholderRevenueChange,
			ChangeType:    domain.ChangeIncrease,
			Format:        domain.FormatCurrency,
			Icon:          "TrendingUp",
		})
	}

	for i, rec := range records {
		if t.strict {
			if _, ok := rec.Lookup(t.keys.ValueKeys...); !ok {
				return nil, fmt.Errorf("record %d: none of the value keys %v present", i, t.keys.ValueKeys)
			}
		}
		result.ChartData = append(result.ChartData, domain.ChartPoint{
			Name:  rec.LabelOr(fmt.Sprintf("Period %d", i+1), t.keys.LabelKeys...),
			Value: rec.NumberOr(0, t.keys.ValueKeys...),
		})
	}

	t.logger.Debug("transformed imported records",
		slog.Int("records", len(records)),
		slog.Int("metrics", len(result.Metrics)),
		slog.Bool("revenue_metric", hasMetric))

	return result, nil
}

// metricKey returns the first metric-triggering key present on the record.
func (t *Transformer) metricKey(rec domain.Record) (string, bool) {
	for _, k := range t.keys.MetricKeys {
		if rec.Has(k) {
			return k, true
		}
	}
	return "", false
}
