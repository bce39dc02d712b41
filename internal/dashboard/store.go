// Package dashboard owns the per-session dashboard state: the active dataset
// (default or last successful import), the date-range filter and the widget
// layout. State is transient and in-memory; an expired session falls back to
// the injected default dataset.
package dashboard

import (
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"

	"insightflow/pkg/contracts/domain"
)

// CleanupInterval is how often expired sessions are evicted.
const CleanupInterval = 30 * time.Minute

// rangeDays maps date-range filter labels to the number of trailing chart
// points kept in a snapshot.
var rangeDays = map[string]int{
	"7d":  7,
	"30d": 30,
	"90d": 90,
}

// ValidDateRange reports whether the label is a known date-range filter.
func ValidDateRange(label string) bool {
	_, ok := rangeDays[label]
	return ok
}

// Store holds one dataset per session on a TTL cache. The default dataset is
// an explicit constructor argument, not a shared singleton; every session
// starts from its own copy.
type Store struct {
	sessions *cache.Cache
	def      domain.Dataset
	clock    func() time.Time
	logger   *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used for import and snapshot timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.clock = now }
}

// NewStore creates a session store seeded with the given default dataset.
func NewStore(def domain.Dataset, ttl time.Duration, logger *slog.Logger, opts ...Option) *Store {
	s := &Store{
		sessions: cache.New(ttl, CleanupInterval),
		def:      def,
		clock:    time.Now,
		logger:   logger.With(slog.String("component", "dashboard_store")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the session's dataset, or the default when the session is new
// or expired.
func (s *Store) Get(sessionID string) domain.Dataset {
	if v, ok := s.sessions.Get(sessionID); ok {
		return v.(domain.Dataset)
	}
	return s.def
}

// Replace installs a new dataset for the session. Callers must only invoke
// this after a fully successful import, so a failed import leaves the
// previous dataset untouched. The incoming dataset inherits the session's
// current date-range filter.
func (s *Store) Replace(sessionID string, ds domain.Dataset) domain.Dataset {
	ds.DateRange = s.Get(sessionID).DateRange
	ds.ImportedAt = s.clock().UTC()
	s.sessions.SetDefault(sessionID, ds)

	s.logger.Info("dataset replaced",
		slog.String("session", sessionID),
		slog.String("source", string(ds.Source)),
		slog.Int("records", len(ds.Raw)))
	return ds
}

// SetDateRange updates the session's date-range filter label and returns the
// updated dataset.
func (s *Store) SetDateRange(sessionID, label string) domain.Dataset {
	ds := s.Get(sessionID)
	ds.DateRange = label
	s.sessions.SetDefault(sessionID, ds)
	return ds
}

// Snapshot builds the immutable export payload for the session's current
// state: the filtered view of the dataset plus a generation timestamp.
func (s *Store) Snapshot(sessionID string) domain.ExportPayload {
	ds := s.Filtered(sessionID)
	return domain.ExportPayload{
		Metrics:     ds.Metrics,
		Charts:      ds.Charts,
		DateRange:   ds.DateRange,
		GeneratedAt: s.clock().UTC().Format(time.RFC3339),
	}
}

// Filtered returns the session's dataset with the date-range filter applied:
// the revenue time series keeps only its trailing N points. Categorical
// channels are not filtered.
func (s *Store) Filtered(sessionID string) domain.Dataset {
	ds := s.Get(sessionID)
	days, ok := rangeDays[ds.DateRange]
	if !ok {
		days = rangeDays[domain.DefaultDateRange]
	}
	if len(ds.Charts.Revenue) > days {
		ds.Charts.Revenue = ds.Charts.Revenue[len(ds.Charts.Revenue)-days:]
	}
	return ds
}
